package calculator

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/testutil"

	"github.com/go-chi/chi/v5"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	if err := InitMetrics(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestRouter() http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r)
	return r
}

func renderCalculator(t *testing.T) *testutil.Page {
	t.Helper()
	return testutil.Render(t, newTestRouter(), "/")
}

func TestPageRendersCalculator(t *testing.T) {
	page := renderCalculator(t)

	if !page.HasText("Calculator") {
		t.Fatal("expected heading text")
	}
	for _, id := range []string{"first-number", "second-number", "operation-select", "calculate-button", "clear-button", "result"} {
		if !page.Has(id) {
			t.Fatalf("expected element %q", id)
		}
	}

	if got := page.Text("result"); got != "Result: " {
		t.Fatalf("expected empty result %q, got %q", "Result: ", got)
	}
	if got := page.Value("operation-select"); got != "" {
		t.Fatalf("expected no operation selected, got %q", got)
	}
}

func TestPageCalculates(t *testing.T) {
	tests := []struct {
		first, second, op string
		want              string
	}{
		{"5", "3", "add", "Result: 8"},
		{"10", "3", "subtract", "Result: 7"},
		{"4", "3", "multiply", "Result: 12"},
		{"15", "3", "divide", "Result: 5"},
		{"10", "0", "divide", "Result: Cannot divide by zero"},
		{"abc", "3", "add", "Result: Invalid input"},
	}

	for _, tc := range tests {
		t.Run(tc.op+" "+tc.first+" "+tc.second, func(t *testing.T) {
			page := renderCalculator(t)

			page.Change("first-number", tc.first)
			page.Change("second-number", tc.second)
			page.Select("operation-select", tc.op)
			page.Click("calculate-button")

			if got := page.Text("result"); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}

			// Inputs are rendered back unchanged.
			if got := page.Value("first-number"); got != tc.first {
				t.Fatalf("expected first number %q, got %q", tc.first, got)
			}
			if got := page.Value("operation-select"); got != tc.op {
				t.Fatalf("expected operation %q, got %q", tc.op, got)
			}
		})
	}
}

func TestPageWithoutOperation(t *testing.T) {
	page := renderCalculator(t)

	page.Change("first-number", "5")
	page.Change("second-number", "3")
	page.Click("calculate-button")

	if got, want := page.Text("result"), "Result: Please select an operation"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestPageClear(t *testing.T) {
	page := renderCalculator(t)

	page.Change("first-number", "5")
	page.Change("second-number", "3")
	page.Select("operation-select", "add")
	page.Click("calculate-button")
	page.Click("clear-button")

	for _, id := range []string{"first-number", "second-number", "operation-select"} {
		if got := page.Value(id); got != "" {
			t.Fatalf("expected %q to be empty, got %q", id, got)
		}
	}
	if got := page.Text("result"); got != "Result: " {
		t.Fatalf("expected %q, got %q", "Result: ", got)
	}

	page.Click("clear-button")
	if got := page.Text("result"); got != "Result: " {
		t.Fatalf("expected %q after second clear, got %q", "Result: ", got)
	}
}

func TestPageCalculateTwiceIsStable(t *testing.T) {
	page := renderCalculator(t)

	page.Change("first-number", "15")
	page.Change("second-number", "3")
	page.Select("operation-select", "divide")
	page.Click("calculate-button")
	first := page.Text("result")
	page.Click("calculate-button")

	if got := page.Text("result"); got != first {
		t.Fatalf("expected %q on repeat, got %q", first, got)
	}
}

func TestSubmitUnknownActionKeepsState(t *testing.T) {
	values := url.Values{
		fieldFirst:     {"5"},
		fieldSecond:    {"3"},
		fieldOperation: {"add"},
		fieldResult:    {"8"},
		fieldAction:    {"noop"},
	}
	w := testutil.ExecuteRequest(testutil.NewFormRequest("/", values), newTestRouter())
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	if !strings.Contains(w.Body.String(), `data-testid="result">Result: 8</div>`) {
		t.Fatalf("expected previous result to be kept, got body:\n%s", w.Body.String())
	}
}

func TestSubmitEscapesUserInput(t *testing.T) {
	values := url.Values{
		fieldFirst:  {`"><script>alert(1)</script>`},
		fieldAction: {actionCalculate},
	}
	w := testutil.ExecuteRequest(testutil.NewFormRequest("/", values), newTestRouter())
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	if strings.Contains(w.Body.String(), "<script>") {
		t.Fatal("expected user input to be escaped")
	}
}

func TestSubmitRejectsMalformedForm(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("first=%zz"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := testutil.ExecuteRequest(req, newTestRouter())
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
}

func TestCalculateAPI(t *testing.T) {
	tests := []struct {
		req     CalcRequest
		result  string
		outcome OutcomeKind
	}{
		{CalcRequest{First: "5", Second: "3", Operation: "add"}, "8", OutcomeOK},
		{CalcRequest{First: "10", Second: "0", Operation: "divide"}, "Cannot divide by zero", OutcomeDivisionByZero},
		{CalcRequest{First: "abc", Second: "3", Operation: "add"}, "Invalid input", OutcomeInvalidInput},
		{CalcRequest{First: "5", Second: "3"}, "Please select an operation", OutcomeMissingOperation},
	}

	for _, tc := range tests {
		t.Run(string(tc.outcome), func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/api/calculate", tc.req)
			req = req.WithContext(observability.ContextWithRequestID(req.Context(), "req-42"))

			w := testutil.ExecuteRequest(req, newTestRouter())
			testutil.CheckResponseCode(t, http.StatusOK, w.Code)

			var resp CalcResponse
			testutil.DecodeJSONBody(t, w.Body, &resp)

			if resp.Result != tc.result {
				t.Fatalf("expected result %q, got %q", tc.result, resp.Result)
			}
			if resp.Display != "Result: "+tc.result {
				t.Fatalf("expected display %q, got %q", "Result: "+tc.result, resp.Display)
			}
			if resp.Outcome != tc.outcome {
				t.Fatalf("expected outcome %q, got %q", tc.outcome, resp.Outcome)
			}
			if resp.First != tc.req.First || resp.Second != tc.req.Second || resp.Operation != tc.req.Operation {
				t.Fatalf("expected inputs to be echoed, got %#v", resp)
			}
			if resp.RequestID != "req-42" {
				t.Fatalf("expected request_id %q, got %q", "req-42", resp.RequestID)
			}
		})
	}
}

func TestCalculateAPIRejectsMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", bytes.NewReader([]byte(`{"first":`)))
	w := testutil.ExecuteRequest(req, newTestRouter())

	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	testutil.DecodeJSONBody(t, w.Body, &body)
	if body["error"] != "invalid request body" {
		t.Fatalf("expected error %q, got %q", "invalid request body", body["error"])
	}
}

func TestRunCalculateLogsAndCounts(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	oldLogger := observability.Logger
	observability.Logger = zap.New(core)
	t.Cleanup(func() { observability.Logger = oldLogger })

	ok := outcomesTotal.WithLabelValues("add", string(OutcomeOK))
	rejected := outcomesTotal.WithLabelValues("divide", string(OutcomeDivisionByZero))
	okBefore, rejectedBefore := promtest.ToFloat64(ok), promtest.ToFloat64(rejected)

	ctx := observability.ContextWithRequestID(t.Context(), "req-7")

	f := Form{First: "2", Second: "3", Operation: "add"}
	runCalculate(ctx, &f)

	f = Form{First: "2", Second: "0", Operation: "divide"}
	runCalculate(ctx, &f)

	if got := promtest.ToFloat64(ok) - okBefore; got != 1 {
		t.Fatalf("expected ok counter to increase by 1, got %v", got)
	}
	if got := promtest.ToFloat64(rejected) - rejectedBefore; got != 1 {
		t.Fatalf("expected division_by_zero counter to increase by 1, got %v", got)
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}

	if entries[0].Message != "calculator operation completed" {
		t.Fatalf("expected completion message, got %q", entries[0].Message)
	}
	fields := entries[0].ContextMap()
	if fields["result"] != "5" || fields["request_id"] != "req-7" {
		t.Fatalf("unexpected fields %#v", fields)
	}

	if entries[1].Message != "calculator operation rejected" {
		t.Fatalf("expected rejection message, got %q", entries[1].Message)
	}
	if got := entries[1].ContextMap()["outcome"]; got != string(OutcomeDivisionByZero) {
		t.Fatalf("expected outcome %q, got %#v", OutcomeDivisionByZero, got)
	}
}
