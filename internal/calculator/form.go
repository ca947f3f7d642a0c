package calculator

import "errors"

// Fixed result messages for the non-arithmetic outcomes.
const (
	MsgInvalidInput    = "Invalid input"
	MsgSelectOperation = "Please select an operation"
)

const resultPrefix = "Result: "

// OutcomeKind classifies what a Calculate call did.
type OutcomeKind string

const (
	OutcomeOK               OutcomeKind = "ok"
	OutcomeInvalidInput     OutcomeKind = "invalid_input"
	OutcomeMissingOperation OutcomeKind = "missing_operation"
	OutcomeDivisionByZero   OutcomeKind = "division_by_zero"
)

// Outcome describes the result of a single Calculate call. A, B and Value are
// only meaningful once the operands parsed.
type Outcome struct {
	Kind      OutcomeKind
	Operation Operation
	A, B      float64
	Value     float64
	Err       error
}

// Failed reports whether the outcome is one of the error conditions.
func (o Outcome) Failed() bool { return o.Kind != OutcomeOK }

// Form holds the state of one calculator form: the raw operand text, the
// selected operation tag and the text of the last result.
type Form struct {
	First     string
	Second    string
	Operation string
	Result    string
}

// NewForm returns a form with every field empty.
func NewForm() Form { return Form{} }

// Calculate validates the operands and operation, computes the result and
// stores its display text in f.Result. No other field is modified.
func (f *Form) Calculate() Outcome {
	op, opOK := ParseOperation(f.Operation)

	a, okA := ParseLeadingFloat(f.First)
	b, okB := ParseLeadingFloat(f.Second)
	if !okA || !okB {
		f.Result = MsgInvalidInput
		return Outcome{Kind: OutcomeInvalidInput, Operation: op, Err: errInvalidOperand(okA, okB)}
	}

	if !opOK {
		f.Result = MsgSelectOperation
		return Outcome{Kind: OutcomeMissingOperation, A: a, B: b, Err: errUnknownOperation}
	}

	out := Outcome{Operation: op, A: a, B: b}
	v, err := op.Apply(a, b)
	if err != nil {
		// Divide is the only operation that can fail.
		f.Result = err.Error()
		out.Kind = OutcomeDivisionByZero
		out.Err = err
		return out
	}

	f.Result = FormatNumber(v)
	out.Kind = OutcomeOK
	out.Value = v
	return out
}

// Clear resets every field of the form.
func (f *Form) Clear() {
	*f = Form{}
}

// Display is the text shown in the result region.
func (f Form) Display() string {
	return resultPrefix + f.Result
}

var (
	errFirstOperand  = errors.New("first operand is not a number")
	errSecondOperand = errors.New("second operand is not a number")
)

func errInvalidOperand(okA, okB bool) error {
	switch {
	case !okA && !okB:
		return errors.Join(errFirstOperand, errSecondOperand)
	case !okA:
		return errFirstOperand
	default:
		return errSecondOperand
	}
}
