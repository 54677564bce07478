package numeric

import "testing"

func TestIsZeroInteger(t *testing.T) {
	if !IsZero(0) {
		t.Error("IsZero(0) = false, want true")
	}
	if IsZero(1) {
		t.Error("IsZero(1) = true, want false")
	}
	if IsZero(-1) {
		t.Error("IsZero(-1) = true, want false")
	}
}

func TestIsZeroFloat(t *testing.T) {
	if !IsZero(0.0) {
		t.Error("IsZero(0.0) = false, want true")
	}
	if !IsZero(1e-12) {
		t.Error("IsZero(1e-12) = false, want true (within tolerance)")
	}
	if IsZero(1e-4) {
		t.Error("IsZero(1e-4) = true, want false (outside tolerance)")
	}
}

func TestIsEqualInteger(t *testing.T) {
	if !IsEqual(5, 5) {
		t.Error("IsEqual(5, 5) = false, want true")
	}
	if IsEqual(5, 6) {
		t.Error("IsEqual(5, 6) = true, want false")
	}
}

func TestIsEqualFloat(t *testing.T) {
	if !IsEqual(1.0, 1.0+1e-12) {
		t.Error("IsEqual should tolerate sub-epsilon differences")
	}
	if IsEqual(1.0, 1.0001) {
		t.Error("IsEqual should not tolerate 1e-4 differences")
	}
}

func TestWidenAxisNoOverflow(t *testing.T) {
	a := int8(-128)
	b := int8(127)
	diff := WidenAxis(a) - WidenAxis(b)
	if diff != -255 {
		t.Errorf("WidenAxis diff = %v, want -255", diff)
	}
}

func TestAbsBeforeConvert(t *testing.T) {
	var u uint32 = AbsBeforeConvert[int32, uint32](-5)
	if u != 5 {
		t.Errorf("AbsBeforeConvert(-5) = %d, want 5", u)
	}

	var u2 uint32 = AbsBeforeConvert[int32, uint32](5)
	if u2 != 5 {
		t.Errorf("AbsBeforeConvert(5) = %d, want 5", u2)
	}
}

func TestEpsilonFloats(t *testing.T) {
	if Epsilon[float64]() < 1e-8 {
		t.Error("Epsilon[float64]() should be at least 1e-8")
	}
	if Epsilon[float32]() < 1e-8 {
		t.Error("Epsilon[float32]() should be at least 1e-8")
	}
}
