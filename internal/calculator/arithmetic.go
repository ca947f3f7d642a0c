package calculator

import "errors"

// ErrDivisionByZero is returned by Divide when the divisor is zero. Its message
// is shown to the user verbatim.
var ErrDivisionByZero = errors.New("Cannot divide by zero")

// Operation identifies one of the arithmetic operations a form can select.
type Operation string

const (
	OpNone     Operation = ""
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpMultiply Operation = "multiply"
	OpDivide   Operation = "divide"
)

// Operations returns the selectable operations in display order.
func Operations() []Operation {
	return []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide}
}

// ParseOperation maps a raw tag to an Operation. The second return value is
// false for the empty tag and for anything unrecognised.
func ParseOperation(tag string) (Operation, bool) {
	switch op := Operation(tag); op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return op, true
	default:
		return OpNone, false
	}
}

// Label is the human-readable option text for op.
func (op Operation) Label() string {
	switch op {
	case OpAdd:
		return "Add"
	case OpSubtract:
		return "Subtract"
	case OpMultiply:
		return "Multiply"
	case OpDivide:
		return "Divide"
	default:
		return "Select operation"
	}
}

// Apply runs op on a and b.
func (op Operation) Apply(a, b float64) (float64, error) {
	switch op {
	case OpAdd:
		return Add(a, b), nil
	case OpSubtract:
		return Subtract(a, b), nil
	case OpMultiply:
		return Multiply(a, b), nil
	case OpDivide:
		return Divide(a, b)
	default:
		return 0, errUnknownOperation
	}
}

var errUnknownOperation = errors.New("unknown operation")

func Add(a, b float64) float64 { return a + b }

func Subtract(a, b float64) float64 { return a - b }

func Multiply(a, b float64) float64 { return a * b }

// Divide returns a/b, or ErrDivisionByZero when b is zero (including -0).
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}
