package sat

import "testing"

func TestLiteralPositiveNegative(t *testing.T) {
	for v := 0; v < 5; v++ {
		pos := PositiveLiteral(v)
		neg := NegativeLiteral(v)

		if !pos.IsPositive() {
			t.Errorf("PositiveLiteral(%d).IsPositive() = false, want true", v)
		}
		if neg.IsPositive() {
			t.Errorf("NegativeLiteral(%d).IsPositive() = true, want false", v)
		}
		if pos.VarID() != v || neg.VarID() != v {
			t.Errorf("VarID mismatch: pos=%d neg=%d, want %d", pos.VarID(), neg.VarID(), v)
		}
		if pos.Opposite() != neg || neg.Opposite() != pos {
			t.Errorf("Opposite() is not involutive for var %d", v)
		}
	}
}

func TestLiteralUndefined(t *testing.T) {
	if !UndefinedLiteral.IsUndefined() {
		t.Errorf("UndefinedLiteral.IsUndefined() = false, want true")
	}
	if PositiveLiteral(0).IsUndefined() {
		t.Errorf("PositiveLiteral(0).IsUndefined() = true, want false")
	}
}

func TestLiteralString(t *testing.T) {
	cases := []struct {
		l    Literal
		want string
	}{
		{PositiveLiteral(0), "1"},
		{NegativeLiteral(0), "-1"},
		{PositiveLiteral(4), "5"},
		{UndefinedLiteral, "undef"},
	}
	for _, c := range cases {
		if got := c.l.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestLBoolOpposite(t *testing.T) {
	if True.Opposite() != False {
		t.Errorf("True.Opposite() != False")
	}
	if False.Opposite() != True {
		t.Errorf("False.Opposite() != True")
	}
	if Undef.Opposite() != Undef {
		t.Errorf("Undef.Opposite() != Undef")
	}
}

func TestLift(t *testing.T) {
	if Lift(true) != True {
		t.Errorf("Lift(true) != True")
	}
	if Lift(false) != False {
		t.Errorf("Lift(false) != False")
	}
}
