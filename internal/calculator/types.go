package calculator

// CalcRequest is the JSON body for POST /api/calculate. Operands are the raw
// text a user would type into the form.
type CalcRequest struct {
	First     string `json:"first"`
	Second    string `json:"second"`
	Operation string `json:"operation"`
}

// CalcResponse is the JSON response for POST /api/calculate.
type CalcResponse struct {
	First     string      `json:"first"`
	Second    string      `json:"second"`
	Operation string      `json:"operation"`
	Result    string      `json:"result"`
	Display   string      `json:"display"`
	Outcome   OutcomeKind `json:"outcome"`
	RequestID string      `json:"request_id"`
}

// Form field and action names posted by the calculator page.
const (
	fieldFirst     = "first"
	fieldSecond    = "second"
	fieldOperation = "operation"
	fieldResult    = "result"
	fieldAction    = "action"

	actionCalculate = "calculate"
	actionClear     = "clear"
)
