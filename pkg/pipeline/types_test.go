package pipeline

import (
	"math"
	"testing"
)

func TestWindowAt_FirstFrame(t *testing.T) {
	w := WindowAt(0, 0.0004, 1920, 1080)

	if w.Scale != 1.0 {
		t.Errorf("expected scale 1.0, got %v", w.Scale)
	}
	if w.MarginRows != 0 || w.MarginCols != 0 {
		t.Errorf("expected zero margins, got rows=%d cols=%d", w.MarginRows, w.MarginCols)
	}
}

func TestWindowAt_Frame249(t *testing.T) {
	w := WindowAt(249, 0.0004, 1920, 1080)

	if math.Abs(w.Scale-1.0996) > 1e-9 {
		t.Errorf("expected scale 1.0996, got %v", w.Scale)
	}
	if w.MarginRows != 107 {
		t.Errorf("expected 107 margin rows, got %d", w.MarginRows)
	}
	if w.MarginCols != 191 {
		t.Errorf("expected 191 margin cols, got %d", w.MarginCols)
	}
}

func TestWindowAt_ZeroRate(t *testing.T) {
	for _, i := range []int{0, 1, 100, 249} {
		w := WindowAt(i, 0, 1920, 1080)
		if w.Scale != 1.0 || w.MarginRows != 0 || w.MarginCols != 0 {
			t.Errorf("index %d: expected identity window, got %+v", i, w)
		}
	}
}

func TestWindowAt_Monotonic(t *testing.T) {
	prev := WindowAt(0, 0.0004, 1920, 1080)
	for i := 1; i < 250; i++ {
		w := WindowAt(i, 0.0004, 1920, 1080)
		if w.Scale <= prev.Scale {
			t.Fatalf("index %d: scale must strictly increase (%v -> %v)", i, prev.Scale, w.Scale)
		}
		if w.MarginRows < prev.MarginRows || w.MarginCols < prev.MarginCols {
			t.Fatalf("index %d: margins must not decrease (%+v -> %+v)", i, prev, w)
		}
		prev = w
	}

	first := WindowAt(0, 0.0004, 1920, 1080)
	if prev.MarginRows <= first.MarginRows || prev.MarginCols <= first.MarginCols {
		t.Errorf("margins must grow across the sequence: first=%+v last=%+v", first, prev)
	}
}
