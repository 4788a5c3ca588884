package display

import (
	"testing"

	"github.com/claude/nes2a03/internal/adapter"
)

func TestTriangleSampleFollowsThirtyTwoStepRamp(t *testing.T) {
	h := NewHeadlessAdapter()
	tones := adapter.Tones{}
	tones[2] = adapter.Tone{Waveform: adapter.Triangle, FrequencyHz: 220, Volume: 1}

	first := h.TriangleSample()
	if first != 15 {
		t.Fatalf("triangle sample before any PlaySound = %d, want 15 (ramp start)", first)
	}
	h.PlaySound(tones)
	if got := h.TriangleSample(); got != 14 {
		t.Fatalf("triangle sample after one sounding tick = %d, want 14", got)
	}
}

func TestTriangleSampleSilentWhenMuted(t *testing.T) {
	h := NewHeadlessAdapter()
	tones := adapter.Tones{}
	tones[2] = adapter.Tone{Silent: true}
	h.PlaySound(tones)
	if got := h.TriangleSample(); got != 0 {
		t.Fatalf("triangle sample while silent = %d, want 0", got)
	}
}

func TestPulseSampleTracksDutyCycle(t *testing.T) {
	h := NewHeadlessAdapter()
	tones := adapter.Tones{}
	tones[0] = adapter.Tone{Waveform: adapter.Pulse50, Volume: 1}
	// Pulse50 duty table is {0,1,1,1,1,0,0,0}; phase starts at 0 and
	// advances to 1 on the first sounding PlaySound call.
	h.PlaySound(tones)
	if got := h.PulseSample(0); got == 0 {
		t.Fatalf("pulse1 sample at duty-table index 1 (50%% duty) = %d, want > 0", got)
	}
}
