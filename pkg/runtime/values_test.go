package runtime

import "testing"

func TestNumberPromotion(t *testing.T) {
	sum := IntegerOf(1).Add(FloatOf(2.5))
	if !sum.IsFloat || sum.Float != 3.5 {
		t.Fatalf("expected float 3.5, got %#v", sum)
	}
	prod := IntegerOf(3).Mul(IntegerOf(4))
	if prod.IsFloat || prod.Int != 12 {
		t.Fatalf("expected integer 12, got %#v", prod)
	}
}

func TestFloorDivRoundsTowardNegativeInfinity(t *testing.T) {
	cases := []struct {
		a, b, want int64
	}{
		{7, 2, 3},
		{-7, 2, -4},
		{7, -2, -4},
		{-7, -2, 3},
		{6, 3, 2},
	}
	for _, tc := range cases {
		got := IntegerOf(tc.a).FloorDiv(IntegerOf(tc.b))
		if got.IsFloat || got.Int != tc.want {
			t.Fatalf("%d // %d: expected %d, got %#v", tc.a, tc.b, tc.want, got)
		}
	}
	f := FloatOf(7.5).FloorDiv(IntegerOf(2))
	if !f.IsFloat || f.Float != 3 {
		t.Fatalf("7.5 // 2: expected 3.0, got %#v", f)
	}
}

func TestEqualityPromotesMixedNumbers(t *testing.T) {
	if !Equal(IntegerOf(2), FloatOf(2.0)) {
		t.Fatalf("2 == 2.0 should hold")
	}
	if Equal(IntegerOf(2), FloatOf(2.5)) {
		t.Fatalf("2 == 2.5 should not hold")
	}
}

func TestEqualityIsStructuralAndCrossKindFalse(t *testing.T) {
	a := NewTuple(IntegerOf(1), StringValue{Val: "x"})
	b := NewTuple(IntegerOf(1), StringValue{Val: "x"})
	if !Equal(a, b) {
		t.Fatalf("structurally equal tuples compared unequal")
	}
	if Equal(IntegerOf(1), StringValue{Val: "1"}) {
		t.Fatalf("cross-kind equality must be false")
	}
	if Equal(BoolValue{Val: true}, IntegerOf(1)) {
		t.Fatalf("cross-kind equality must be false")
	}
}

func TestTruthinessIsTotal(t *testing.T) {
	cases := []struct {
		value Value
		want  bool
	}{
		{BoolValue{Val: true}, true},
		{BoolValue{Val: false}, false},
		{IntegerOf(0), false},
		{IntegerOf(-3), true},
		{FloatOf(0), false},
		{FloatOf(0.1), true},
		{StringValue{Val: ""}, false},
		{StringValue{Val: "x"}, true},
		{NewTuple(), false},
		{NewTuple(IntegerOf(1)), true},
		{NewNativeReturning("f", CallSign{}, nil), true},
	}
	for _, tc := range cases {
		if got := Truthy(tc.value); got != tc.want {
			t.Fatalf("Truthy(%#v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestToString(t *testing.T) {
	cases := []struct {
		value Value
		want  string
	}{
		{IntegerOf(42), "42"},
		{FloatOf(2.5), "2.5"},
		{FloatOf(2), "2"},
		{BoolValue{Val: true}, "true"},
		{StringValue{Val: "abc"}, "abc"},
		{NewTuple(IntegerOf(1), StringValue{Val: "x"}), "(1, x)"},
		{NewNativeReturning("len", CallSign{}, nil), "<function len>"},
	}
	for _, tc := range cases {
		if got := ToString(tc.value); got != tc.want {
			t.Fatalf("ToString(%#v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}
