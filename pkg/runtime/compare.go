package runtime

import (
	"fmt"
	"strings"

	"pysub/interpreter-go/pkg/bigint"
)

// CompareOperator enumerates the comparison operators.
type CompareOperator int

const (
	CmpEqual CompareOperator = iota
	CmpNotEqual
	CmpLess
	CmpGreater
	CmpLessEqual
	CmpGreaterEqual
)

// CompareOperators lists every comparison operator.
var CompareOperators = []CompareOperator{CmpEqual, CmpNotEqual, CmpLess, CmpGreater, CmpLessEqual, CmpGreaterEqual}

func (op CompareOperator) String() string {
	switch op {
	case CmpEqual:
		return "=="
	case CmpNotEqual:
		return "!="
	case CmpLess:
		return "<"
	case CmpGreater:
		return ">"
	case CmpLessEqual:
		return "<="
	case CmpGreaterEqual:
		return ">="
	default:
		return fmt.Sprintf("cmp(%d)", int(op))
	}
}

// ParseCompareOperator maps an operator token to its CompareOperator. The
// legacy "<>" spelling is accepted as "!=".
func ParseCompareOperator(token string) (CompareOperator, bool) {
	switch token {
	case "==":
		return CmpEqual, true
	case "!=", "<>":
		return CmpNotEqual, true
	case "<":
		return CmpLess, true
	case ">":
		return CmpGreater, true
	case "<=":
		return CmpLessEqual, true
	case ">=":
		return CmpGreaterEqual, true
	default:
		return 0, false
	}
}

func (op CompareOperator) isEquality() bool {
	return op == CmpEqual || op == CmpNotEqual
}

// holds interprets a three-way comparison result under op.
func (op CompareOperator) holds(c int) bool {
	switch op {
	case CmpEqual:
		return c == 0
	case CmpNotEqual:
		return c != 0
	case CmpLess:
		return c < 0
	case CmpGreater:
		return c > 0
	case CmpLessEqual:
		return c <= 0
	case CmpGreaterEqual:
		return c >= 0
	default:
		return false
	}
}

// Compare evaluates left op right.
//
// Strings only compare with strings: mixed equality is false (true for !=)
// and mixed ordering is false. For equality, None equals only None. Any float
// operand promotes both sides to float64; otherwise both sides are compared as
// integers. Booleans promote to 0/1 and None to 0 in the numeric cases.
func Compare(op CompareOperator, left, right Value) bool {
	ls, lok := left.(StringValue)
	rs, rok := right.(StringValue)
	if lok || rok {
		if !lok || !rok {
			return op == CmpNotEqual
		}
		return op.holds(strings.Compare(ls.Val, rs.Val))
	}

	if op.isEquality() {
		_, lnone := left.(NoneValue)
		_, rnone := right.(NoneValue)
		if lnone || rnone {
			return op.holds(boolCompare(lnone, rnone))
		}
	}

	_, lf := left.(FloatValue)
	_, rf := right.(FloatValue)
	if lf || rf {
		a, b := promoteFloat(left), promoteFloat(right)
		switch op {
		case CmpEqual:
			return a == b
		case CmpNotEqual:
			return a != b
		case CmpLess:
			return a < b
		case CmpGreater:
			return a > b
		case CmpLessEqual:
			return a <= b
		case CmpGreaterEqual:
			return a >= b
		default:
			return false
		}
	}

	return op.holds(promoteInt(left).Cmp(promoteInt(right)))
}

// boolCompare yields 0 when both flags agree.
func boolCompare(a, b bool) int {
	if a == b {
		return 0
	}
	return 1
}

func promoteFloat(v Value) float64 {
	switch val := v.(type) {
	case FloatValue:
		return val.Val
	case IntegerValue:
		return val.Val.Float64()
	case BoolValue:
		if val.Val {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func promoteInt(v Value) bigint.Int {
	switch val := v.(type) {
	case IntegerValue:
		return val.Val
	case BoolValue:
		if val.Val {
			return bigint.One()
		}
		return bigint.Zero()
	default:
		return bigint.Zero()
	}
}
