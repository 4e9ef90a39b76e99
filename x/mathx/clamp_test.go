package mathx

import "testing"

func TestClamp(t *testing.T) {
	type C struct{ v, lo, hi, want int }
	for _, c := range []C{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{5, 10, 0, 5}, // swapped bounds
		{-1, 10, 0, 0},
	} {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Fatalf("Clamp(%d,%d,%d) = %d, want %d", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestBetween(t *testing.T) {
	if !Between(3, 1, 5) || Between(6, 1, 5) || !Between(3, 5, 1) {
		t.Fatal("Between misbehaves")
	}
}
