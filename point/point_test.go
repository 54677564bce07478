package point

import (
	"math"
	"testing"
)

func TestNewAndCoord(t *testing.T) {
	p := New[int, float64]([]int{3, 4}, 1.5)
	if p.AxisCount() != 2 {
		t.Fatalf("AxisCount() = %d, want 2", p.AxisCount())
	}
	x, err := p.Coord(0)
	if err != nil || x != 3 {
		t.Errorf("Coord(0) = %v, %v, want 3, nil", x, err)
	}
	if _, err := p.Coord(2); err == nil {
		t.Error("Coord(2) should fail out of range")
	}
}

func TestNewFromSeqTruncateAndPad(t *testing.T) {
	p := NewFromSeq[int, int, float64]([]int{1, 2, 3}, 2, 0)
	if p.AxisCount() != 2 {
		t.Fatalf("AxisCount() = %d, want 2", p.AxisCount())
	}
	c0, _ := p.Coord(0)
	c1, _ := p.Coord(1)
	if c0 != 1 || c1 != 2 {
		t.Errorf("truncated coords = (%d, %d), want (1, 2)", c0, c1)
	}

	padded := NewFromSeq[int, int, float64]([]int{5}, 3, 0)
	c2, _ := padded.Coord(2)
	if c2 != 0 {
		t.Errorf("zero-padded coord = %d, want 0", c2)
	}
}

func TestNewFromSeqAbsBeforeConvert(t *testing.T) {
	p := NewFromSeq[int, uint, float64]([]int{-5, 3}, 2, 0)
	c0, _ := p.Coord(0)
	if c0 != 5 {
		t.Errorf("signed->unsigned coord = %d, want 5 (abs)", c0)
	}
}

func TestLessOnAxis(t *testing.T) {
	a := New[int, float64]([]int{1, 5}, 0)
	b := New[int, float64]([]int{2, 1}, 0)

	less, err := a.LessOnAxis(b, 0)
	if err != nil || !less {
		t.Errorf("a.LessOnAxis(b, 0) = %v, %v, want true, nil", less, err)
	}
	less, err = a.LessOnAxis(b, 1)
	if err != nil || less {
		t.Errorf("a.LessOnAxis(b, 1) = %v, %v, want false, nil", less, err)
	}
	if _, err := a.LessOnAxis(b, 5); err == nil {
		t.Error("LessOnAxis with out-of-range axis should fail")
	}
}

func TestLessLex(t *testing.T) {
	a := New[int, float64]([]int{1, 5}, 0)
	b := New[int, float64]([]int{1, 6}, 0)
	if !a.LessLex(b) {
		t.Error("a.LessLex(b) should be true: tie on axis 0, a < b on axis 1")
	}
	if a.LessLex(a) {
		t.Error("a.LessLex(a) should be false")
	}
}

func TestEqualAndExactlyEqual(t *testing.T) {
	a := New[int, float64]([]int{1, 2}, 3.0)
	b := New[int, float64]([]int{1, 2}, 4.0)
	if !a.Equal(b) {
		t.Error("Equal should ignore value")
	}
	if a.ExactlyEqual(b) {
		t.Error("ExactlyEqual should consider the differing value")
	}
}

func TestDistanceOnAxisWidening(t *testing.T) {
	a := New[int8, float64]([]int8{-128}, 0)
	b := New[int8, float64]([]int8{127}, 0)
	d, err := a.DistanceOnAxis(b, 0)
	if err != nil {
		t.Fatal(err)
	}
	if d != -255 {
		t.Errorf("DistanceOnAxis = %v, want -255", d)
	}
}

func TestDistanceEuclidean(t *testing.T) {
	a := New[int, float64]([]int{0, 0}, 0)
	b := New[int, float64]([]int{3, 4}, 0)
	if got := a.Distance(b); math.Abs(got-5.0) > 1e-9 {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestStringFormat(t *testing.T) {
	p := New[int, float64]([]int{1, 2}, 3.5)
	want := "(1, 2) = 3.5"
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
