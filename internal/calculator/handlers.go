package calculator

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

const maxBodyBytes = 1 << 20

// ---------------------------------------------------------------------------
// Handlers — HTML form
// ---------------------------------------------------------------------------

// Page handles GET / and renders an empty calculator.
func Page(w http.ResponseWriter, r *http.Request) {
	writePage(w, r, NewForm())
}

// Submit handles POST /, the target of the Calculate and Clear buttons. The posted
// fields are the current state; the response renders the updated state.
func Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		span := trace.SpanFromContext(ctx)
		observability.RecordPageError(ctx, span, logger, errorCounter, "form", "invalid form submission", err, http.StatusBadRequest, w)
		return
	}

	form := Form{
		First:     r.PostFormValue(fieldFirst),
		Second:    r.PostFormValue(fieldSecond),
		Operation: r.PostFormValue(fieldOperation),
		Result:    r.PostFormValue(fieldResult),
	}

	switch action := r.PostFormValue(fieldAction); action {
	case actionCalculate:
		runCalculate(ctx, &form)
	case actionClear:
		form.Clear()
		logger.Debug("calculator form cleared",
			zap.String("request_id", observability.RequestIDFromContext(ctx)),
		)
	default:
		logger.Debug("ignoring unknown form action", zap.String("action", action))
	}

	writePage(w, r, form)
}

func writePage(w http.ResponseWriter, r *http.Request, f Form) {
	var buf bytes.Buffer
	if err := RenderForm(&buf, f); err != nil {
		ctx := r.Context()
		observability.RecordPageError(ctx, trace.SpanFromContext(ctx), observability.LoggerWithTrace(ctx),
			errorCounter, "render", "failed to render page", err, http.StatusInternalServerError, w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// ---------------------------------------------------------------------------
// Handler — JSON API
// ---------------------------------------------------------------------------

// Calculate handles POST /api/calculate. Every calculator outcome, including
// invalid input and division by zero, is a 200 with the display text; only a
// malformed body is an HTTP error.
func Calculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	var req CalcRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		observability.RecordError(ctx, trace.SpanFromContext(ctx), logger, errorCounter, "calculate", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	form := Form{First: req.First, Second: req.Second, Operation: req.Operation}
	out := runCalculate(ctx, &form)

	handlers.WriteJSON(w, http.StatusOK, CalcResponse{
		First:     form.First,
		Second:    form.Second,
		Operation: form.Operation,
		Result:    form.Result,
		Display:   form.Display(),
		Outcome:   out.Kind,
		RequestID: requestID,
	})
}

// runCalculate wraps Form.Calculate with a child span, metrics and a
// trace-correlated log line.
func runCalculate(ctx context.Context, f *Form) Outcome {
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.calculate",
		trace.WithAttributes(
			attribute.String("calculator.operation", f.Operation),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	start := time.Now()
	out := f.Calculate()
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	recordOutcome(ctx, out, elapsed)

	span.SetAttributes(
		attribute.String("calculator.outcome", string(out.Kind)),
		attribute.String("calculator.result", f.Result),
	)

	fields := []zap.Field{
		zap.String("operation", operationLabel(out.Operation)),
		zap.String("first", f.First),
		zap.String("second", f.Second),
		zap.String("outcome", string(out.Kind)),
		zap.String("result", f.Result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	}

	if out.Failed() {
		span.RecordError(out.Err)
		span.SetStatus(codes.Error, f.Result)
		logger.Info("calculator operation rejected", append(fields, zap.Error(out.Err))...)
		return out
	}

	span.SetAttributes(
		attribute.Float64("calculator.operand.a", out.A),
		attribute.Float64("calculator.operand.b", out.B),
	)
	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", out.Value),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed", fields...)
	return out
}
