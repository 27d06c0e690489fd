// Package widget holds the independent demo widgets: a four-function
// calculator, a persisted to-do list, and a countdown timer. Each
// widget owns its own state, is constructed at startup and discarded at
// teardown, and shares nothing with the record synchronizer.
package widget

import (
	"errors"
	"fmt"
	"math"
)

// Operation selects a calculator function.
type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpMultiply Operation = "multiply"
	OpDivide   Operation = "divide"
)

// ErrDivideByZero is returned by Calculate for x/0.
var ErrDivideByZero = errors.New("cannot divide by zero")

// ErrNegativeSqrt is returned by SquareRoot for negative input.
var ErrNegativeSqrt = errors.New("cannot take the square root of a negative number")

// Calculate applies op to a and b.
func Calculate(op Operation, a, b float64) (float64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSubtract:
		return a - b, nil
	case OpMultiply:
		return a * b, nil
	case OpDivide:
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a / b, nil
	}
	return 0, fmt.Errorf("unknown operation %q", op)
}

// SquareRoot returns the square root of x.
func SquareRoot(x float64) (float64, error) {
	if x < 0 {
		return 0, ErrNegativeSqrt
	}
	return math.Sqrt(x), nil
}

// FormatResult renders a calculator result to two decimal places, the
// way the page displays it.
func FormatResult(x float64) string {
	return fmt.Sprintf("%.2f", x)
}
