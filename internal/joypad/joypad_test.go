package joypad

import (
	"testing"

	"github.com/claude/nes2a03/internal/adapter"
)

func TestReadOrderIsAFirstThenRight(t *testing.T) {
	j := New()
	j.SetButtons(0, adapter.ButtonSet(adapter.ButtonA|adapter.ButtonRight))
	j.Write(1) // strobe on
	j.Write(0) // strobe off, latches

	want := []uint8{1, 0, 0, 0, 0, 0, 0, 1} // A, B, Select, Start, Up, Down, Left, Right
	for i, w := range want {
		if got := j.Read(0); got != w {
			t.Fatalf("read %d = %d, want %d", i, got, w)
		}
	}
}

func TestReadSaturatesAtOneAfterEighthBit(t *testing.T) {
	j := New()
	j.SetButtons(0, 0)
	j.Write(1)
	j.Write(0)
	for i := 0; i < 8; i++ {
		j.Read(0)
	}
	for i := 0; i < 3; i++ {
		if got := j.Read(0); got != 1 {
			t.Fatalf("read past 8th bit = %d, want 1 (saturated)", got)
		}
	}
}

func TestStrobeHighAlwaysReturnsLiveAState(t *testing.T) {
	j := New()
	j.SetButtons(0, adapter.ButtonSet(adapter.ButtonA))
	j.Write(1) // strobe stays armed
	if got := j.Read(0); got != 1 {
		t.Fatalf("read while strobed with A held = %d, want 1", got)
	}
	if got := j.Read(0); got != 1 {
		t.Fatalf("second read while strobed = %d, want 1 (re-reads A every time)", got)
	}
}

func TestStrobeResetsBothControllerIndices(t *testing.T) {
	j := New()
	j.SetButtons(0, 0)
	j.SetButtons(1, 0)
	j.Write(1)
	j.Write(0)
	j.Read(0)
	j.Read(0)
	j.Read(1)
	j.Write(1) // re-arm: both indices should reset to 0
	j.Write(0)
	if j.index[0] != 0 || j.index[1] != 0 {
		t.Fatalf("indices after re-strobe = %d/%d, want 0/0", j.index[0], j.index[1])
	}
}
