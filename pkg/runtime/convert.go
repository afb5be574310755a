package runtime

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"pysub/interpreter-go/pkg/bigint"
)

// ToInteger implements int(v). Floats truncate toward zero (non-finite
// floats give 0) and strings use the best-effort decimal parse.
func ToInteger(v Value) IntegerValue {
	switch val := v.(type) {
	case IntegerValue:
		return val
	case BoolValue:
		if val.Val {
			return IntegerValue{Val: bigint.One()}
		}
		return IntegerValue{Val: bigint.Zero()}
	case FloatValue:
		if math.IsNaN(val.Val) || math.IsInf(val.Val, 0) {
			return IntegerValue{Val: bigint.Zero()}
		}
		text := strconv.FormatFloat(math.Trunc(val.Val), 'f', 0, 64)
		return IntegerValue{Val: bigint.FromDecimalString(text)}
	case StringValue:
		return IntegerValue{Val: bigint.FromDecimalString(val.Val)}
	default:
		return IntegerValue{Val: bigint.Zero()}
	}
}

// ToFloat implements float(v). Strings parse the longest numeric prefix;
// text with no numeric prefix gives 0.0.
func ToFloat(v Value) FloatValue {
	switch val := v.(type) {
	case FloatValue:
		return val
	case IntegerValue:
		return FloatValue{Val: val.Val.Float64()}
	case BoolValue:
		if val.Val {
			return FloatValue{Val: 1}
		}
		return FloatValue{Val: 0}
	case StringValue:
		return FloatValue{Val: parseFloatPrefix(val.Val)}
	default:
		return FloatValue{Val: 0}
	}
}

func parseFloatPrefix(s string) float64 {
	s = strings.TrimSpace(s)
	for end := len(s); end > 0; end-- {
		f, err := strconv.ParseFloat(s[:end], 64)
		if err == nil {
			return f
		}
		if errors.Is(err, strconv.ErrRange) {
			return f
		}
	}
	return 0
}

// ToStr implements str(v).
func ToStr(v Value) StringValue {
	if s, ok := v.(StringValue); ok {
		return s
	}
	return StringValue{Val: Stringify(v)}
}

// ToBool implements bool(v).
func ToBool(v Value) BoolValue {
	return BoolValue{Val: Truthy(v)}
}
