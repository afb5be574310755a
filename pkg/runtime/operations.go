package runtime

import (
	"fmt"
	"strings"

	"pysub/interpreter-go/pkg/bigint"
)

// BinaryOperator enumerates the arithmetic operators.
type BinaryOperator int

const (
	OpAdd BinaryOperator = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpFloorDivide
	OpModulo
)

// BinaryOperators lists every arithmetic operator.
var BinaryOperators = []BinaryOperator{OpAdd, OpSubtract, OpMultiply, OpDivide, OpFloorDivide, OpModulo}

func (op BinaryOperator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpFloorDivide:
		return "//"
	case OpModulo:
		return "%"
	default:
		return fmt.Sprintf("op(%d)", int(op))
	}
}

// ParseBinaryOperator maps an operator token (with or without a trailing
// "=") to its BinaryOperator.
func ParseBinaryOperator(token string) (BinaryOperator, bool) {
	switch strings.TrimSuffix(token, "=") {
	case "+":
		return OpAdd, true
	case "-":
		return OpSubtract, true
	case "*":
		return OpMultiply, true
	case "/":
		return OpDivide, true
	case "//":
		return OpFloorDivide, true
	case "%":
		return OpModulo, true
	default:
		return 0, false
	}
}

// maxRepeatBytes bounds the size of a repeated string.
const maxRepeatBytes = 1 << 30

// ApplyBinary evaluates left op right and reports whether the operand
// combination is supported; when it is not the result is None.
func ApplyBinary(op BinaryOperator, left, right Value) (Value, bool) {
	switch op {
	case OpAdd:
		if l, ok := left.(StringValue); ok {
			if r, ok := right.(StringValue); ok {
				return StringValue{Val: l.Val + r.Val}, true
			}
			return None, false
		}
		return numeric(left, right, bigint.Int.Add, func(a, b float64) float64 { return a + b })
	case OpSubtract:
		return numeric(left, right, bigint.Int.Sub, func(a, b float64) float64 { return a - b })
	case OpMultiply:
		if l, ok := left.(StringValue); ok {
			if r, ok := right.(IntegerValue); ok {
				return repeat(l.Val, r.Val)
			}
			return None, false
		}
		return numeric(left, right, bigint.Int.Mul, func(a, b float64) float64 { return a * b })
	case OpDivide:
		a, ok := numericFloat(left)
		if !ok {
			return None, false
		}
		b, ok := numericFloat(right)
		if !ok {
			return None, false
		}
		return FloatValue{Val: a / b}, true
	case OpFloorDivide, OpModulo:
		l, ok := left.(IntegerValue)
		if !ok {
			return None, false
		}
		r, ok := right.(IntegerValue)
		if !ok {
			return None, false
		}
		if op == OpFloorDivide {
			return IntegerValue{Val: l.Val.FloorDiv(r.Val)}, true
		}
		return IntegerValue{Val: l.Val.FloorMod(r.Val)}, true
	default:
		return None, false
	}
}

// numeric applies the int/float coercion shared by +, - and *: two integers
// stay integral, any float operand turns the result into a float.
func numeric(left, right Value, ints func(bigint.Int, bigint.Int) bigint.Int, floats func(float64, float64) float64) (Value, bool) {
	switch l := left.(type) {
	case IntegerValue:
		switch r := right.(type) {
		case IntegerValue:
			return IntegerValue{Val: ints(l.Val, r.Val)}, true
		case FloatValue:
			return FloatValue{Val: floats(l.Val.Float64(), r.Val)}, true
		}
	case FloatValue:
		switch r := right.(type) {
		case IntegerValue:
			return FloatValue{Val: floats(l.Val, r.Val.Float64())}, true
		case FloatValue:
			return FloatValue{Val: floats(l.Val, r.Val)}, true
		}
	}
	return None, false
}

func numericFloat(v Value) (float64, bool) {
	switch val := v.(type) {
	case IntegerValue:
		return val.Val.Float64(), true
	case FloatValue:
		return val.Val, true
	default:
		return 0, false
	}
}

func repeat(s string, count bigint.Int) (Value, bool) {
	if count.Sign() <= 0 || s == "" {
		return StringValue{Val: ""}, true
	}
	n, ok := count.Int64()
	if !ok || n > maxRepeatBytes/int64(len(s)) {
		return None, false
	}
	return StringValue{Val: strings.Repeat(s, int(n))}, true
}

// Negate implements unary minus. Non-numeric values are returned unchanged.
func Negate(v Value) Value {
	switch val := v.(type) {
	case IntegerValue:
		return IntegerValue{Val: val.Val.Neg()}
	case FloatValue:
		return FloatValue{Val: -val.Val}
	default:
		return v
	}
}
