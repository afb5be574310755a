package runtime

import (
	"math"
	"testing"

	"pysub/interpreter-go/pkg/bigint"
)

func sampleValue(k Kind) Value {
	switch k {
	case KindInteger:
		return Int(7)
	case KindFloat:
		return Float(2.5)
	case KindBool:
		return Bool(true)
	case KindString:
		return Str("ab")
	default:
		return None
	}
}

// expectedKind encodes the coercion table; ok=false marks an unsupported pair.
func expectedKind(op BinaryOperator, l, r Kind) (Kind, bool) {
	numeric := func(k Kind) bool { return k == KindInteger || k == KindFloat }
	switch op {
	case OpAdd, OpSubtract, OpMultiply:
		if numeric(l) && numeric(r) {
			if l == KindInteger && r == KindInteger {
				return KindInteger, true
			}
			return KindFloat, true
		}
		if op == OpAdd && l == KindString && r == KindString {
			return KindString, true
		}
		if op == OpMultiply && l == KindString && r == KindInteger {
			return KindString, true
		}
	case OpDivide:
		if numeric(l) && numeric(r) {
			return KindFloat, true
		}
	case OpFloorDivide, OpModulo:
		if l == KindInteger && r == KindInteger {
			return KindInteger, true
		}
	}
	return KindNone, false
}

func TestBinaryOperatorTableIsTotal(t *testing.T) {
	for _, op := range BinaryOperators {
		for _, lk := range Kinds {
			for _, rk := range Kinds {
				got, ok := ApplyBinary(op, sampleValue(lk), sampleValue(rk))
				if got == nil {
					t.Fatalf("%s %s %s returned nil", lk, op, rk)
				}
				wantKind, wantOK := expectedKind(op, lk, rk)
				if ok != wantOK || got.Kind() != wantKind {
					t.Fatalf("%s %s %s = %s (ok=%v), want %s (ok=%v)", lk, op, rk, got.Kind(), ok, wantKind, wantOK)
				}
			}
		}
	}
}

func apply(op BinaryOperator, left, right Value) Value {
	result, _ := ApplyBinary(op, left, right)
	return result
}

func TestArithmeticResults(t *testing.T) {
	big := IntegerValue{Val: bigint.FromDecimalString("100000000000000000000")}
	cases := []struct {
		name  string
		op    BinaryOperator
		left  Value
		right Value
		want  string
	}{
		{"int add", OpAdd, Int(2), Int(3), "5"},
		{"big add", OpAdd, big, Int(1), "100000000000000000001"},
		{"mixed add", OpAdd, Int(1), Float(0.5), "1.500000"},
		{"mixed add reversed", OpAdd, Float(0.5), Int(1), "1.500000"},
		{"concat", OpAdd, Str("foo"), Str("bar"), "foobar"},
		{"sub", OpSubtract, Int(2), Int(5), "-3"},
		{"float sub", OpSubtract, Float(1), Int(3), "-2.000000"},
		{"mul", OpMultiply, Int(-4), Int(5), "-20"},
		{"repeat", OpMultiply, Str("ab"), Int(3), "ababab"},
		{"repeat zero", OpMultiply, Str("ab"), Int(0), ""},
		{"repeat negative", OpMultiply, Str("ab"), Int(-1), ""},
		{"true divide ints", OpDivide, Int(7), Int(2), "3.500000"},
		{"true divide by zero", OpDivide, Int(1), Int(0), "inf"},
		{"negative divide by zero", OpDivide, Int(-1), Float(0), "-inf"},
		{"floor div", OpFloorDivide, Int(-7), Int(2), "-4"},
		{"floor div zero", OpFloorDivide, Int(5), Int(0), "0"},
		{"mod", OpModulo, Int(-7), Int(2), "1"},
		{"mod negative divisor", OpModulo, Int(7), Int(-2), "-1"},
		{"mod zero", OpModulo, Int(5), Int(0), "0"},
		{"int repeat unsupported", OpMultiply, Int(3), Str("ab"), "None"},
		{"bool add unsupported", OpAdd, Bool(true), Int(1), "None"},
		{"float floor div unsupported", OpFloorDivide, Float(7), Int(2), "None"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Stringify(apply(tc.op, tc.left, tc.right)); got != tc.want {
				t.Fatalf("%s %s %s = %q, want %q", Stringify(tc.left), tc.op, Stringify(tc.right), got, tc.want)
			}
		})
	}
}

func TestRepeatTooLargeIsNone(t *testing.T) {
	huge := IntegerValue{Val: bigint.FromDecimalString("1000000000000000000000")}
	if got, ok := ApplyBinary(OpMultiply, Str("ab"), huge); ok || got.Kind() != KindNone {
		t.Fatalf("expected None for oversized repeat, got %s", Stringify(got))
	}
}

func TestAddAndMultiplyCommute(t *testing.T) {
	values := []Value{Int(0), Int(-3), Int(12345678901), Float(0.25), Float(-7.5),
		IntegerValue{Val: bigint.FromDecimalString("-98765432109876543210")}}
	for _, a := range values {
		for _, b := range values {
			for _, op := range []BinaryOperator{OpAdd, OpMultiply} {
				ab, ba := apply(op, a, b), apply(op, b, a)
				if ab.Kind() != ba.Kind() || Stringify(ab) != Stringify(ba) {
					t.Fatalf("%s %s %s = %s but reversed = %s", Stringify(a), op, Stringify(b), Stringify(ab), Stringify(ba))
				}
			}
		}
	}
}

func TestNegate(t *testing.T) {
	if got := Stringify(Negate(Int(5))); got != "-5" {
		t.Fatalf("-5 = %q", got)
	}
	if got := Stringify(Negate(Int(0))); got != "0" {
		t.Fatalf("-0 = %q", got)
	}
	if got := Negate(Float(1.5)).(FloatValue).Val; got != -1.5 {
		t.Fatalf("-1.5 = %v", got)
	}
	for _, v := range []Value{Bool(true), Str("x"), None} {
		if got := Negate(v); got != v {
			t.Fatalf("Negate(%s) should be a no-op, got %s", Stringify(v), Stringify(got))
		}
	}
}

func TestParseBinaryOperator(t *testing.T) {
	for token, want := range map[string]BinaryOperator{
		"+": OpAdd, "-=": OpSubtract, "*": OpMultiply, "/=": OpDivide, "//": OpFloorDivide, "%=": OpModulo,
	} {
		got, ok := ParseBinaryOperator(token)
		if !ok || got != want {
			t.Fatalf("ParseBinaryOperator(%q) = %v (ok=%v), want %v", token, got, ok, want)
		}
	}
	if _, ok := ParseBinaryOperator("**"); ok {
		t.Fatalf("** should not be accepted")
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Int(0), false},
		{Int(-1), true},
		{Float(0), false},
		{Float(math.Copysign(0, -1)), false},
		{Float(0.1), true},
		{Bool(false), false},
		{Bool(true), true},
		{Str(""), false},
		{Str("0"), true},
		{None, false},
	}
	for _, tc := range cases {
		if got := Truthy(tc.v); got != tc.want {
			t.Fatalf("Truthy(%s %q) = %v, want %v", tc.v.Kind(), Stringify(tc.v), got, tc.want)
		}
	}
}

func TestStringify(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Int(-42), "-42"},
		{Float(2.5), "2.500000"},
		{Float(1.0 / 3.0), "0.333333"},
		{Float(1e20), "100000000000000000000.000000"},
		{Float(math.NaN()), "nan"},
		{Bool(true), "True"},
		{Bool(false), "False"},
		{Str("hi"), "hi"},
		{None, "None"},
	}
	for _, tc := range cases {
		if got := Stringify(tc.v); got != tc.want {
			t.Fatalf("Stringify = %q, want %q", got, tc.want)
		}
	}
}
