package runtime

import (
	"fmt"
	"math"
	"strconv"

	"pysub/interpreter-go/pkg/bigint"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindBool
	KindString
	KindNone
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "str"
	case KindNone:
		return "NoneType"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Kinds lists every value category, in declaration order.
var Kinds = []Kind{KindInteger, KindFloat, KindBool, KindString, KindNone}

// Value is the closed set of runtime values. Only the types in this package
// implement it.
type Value interface {
	Kind() Kind
	sealed()
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type IntegerValue struct {
	Val bigint.Int
}

func (v IntegerValue) Kind() Kind { return KindInteger }
func (IntegerValue) sealed()      {}

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }
func (FloatValue) sealed()      {}

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }
func (BoolValue) sealed()      {}

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }
func (StringValue) sealed()      {}

type NoneValue struct{}

func (NoneValue) Kind() Kind { return KindNone }
func (NoneValue) sealed()    {}

// None is the shared None value.
var None Value = NoneValue{}

// Int wraps a machine integer.
func Int(v int64) IntegerValue {
	return IntegerValue{Val: bigint.FromInt64(v)}
}

// Bool wraps a Go bool.
func Bool(v bool) BoolValue {
	return BoolValue{Val: v}
}

// Str wraps a Go string.
func Str(v string) StringValue {
	return StringValue{Val: v}
}

// Float wraps a float64.
func Float(v float64) FloatValue {
	return FloatValue{Val: v}
}

// Truthy reports the boolean interpretation of v.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case IntegerValue:
		return !val.Val.IsZero()
	case FloatValue:
		return val.Val != 0
	case BoolValue:
		return val.Val
	case StringValue:
		return val.Val != ""
	default:
		return false
	}
}

// Stringify renders v the way print and str do.
func Stringify(v Value) string {
	switch val := v.(type) {
	case IntegerValue:
		return val.Val.String()
	case FloatValue:
		return formatFloat(val.Val)
	case BoolValue:
		if val.Val {
			return "True"
		}
		return "False"
	case StringValue:
		return val.Val
	default:
		return "None"
	}
}

// formatFloat prints six fixed decimals; non-finite values use the C
// spellings inf, -inf and nan.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', 6, 64)
}
