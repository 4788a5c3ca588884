package display

import (
	"github.com/claude/nes2a03/internal/adapter"
	"github.com/claude/nes2a03/internal/apu"
)

// waveformPhase tracks each channel's position in its real hardware
// sequence, so HeadlessAdapter can assert on waveform *shape* (spec.md
// §9's triangle-rendering open question permits either choice; this
// adapter exercises the stepped-sequencer alternative for tests even
// though the core itself only publishes frequency+volume).
type waveformPhase struct {
	pulse1, pulse2 uint8
	triangle       uint8
}

// stepWaveforms advances each channel's phase by one tick whenever the
// channel is sounding, using the same duty/triangle tables the real 2A03
// sequencer steps through.
func (h *HeadlessAdapter) stepWaveforms(tones adapter.Tones) {
	if !tones[0].Silent {
		h.wave.pulse1 = (h.wave.pulse1 + 1) % 8
	}
	if !tones[1].Silent {
		h.wave.pulse2 = (h.wave.pulse2 + 1) % 8
	}
	if !tones[2].Silent {
		h.wave.triangle = (h.wave.triangle + 1) % 32
	}
}

func dutyIndexFor(w adapter.Waveform) int {
	switch w {
	case adapter.Pulse12:
		return 0
	case adapter.Pulse25:
		return 1
	case adapter.Pulse50:
		return 2
	default:
		return 3
	}
}

// PulseSample returns the 0/1 duty-cycle sample (scaled by the channel's
// current volume into 0..15) that channel's sequencer is on right now:
// channel 0 or 1 selects pulse1/pulse2.
func (h *HeadlessAdapter) PulseSample(channel int) uint8 {
	tone := h.lastTones[channel]
	if tone.Silent {
		return 0
	}
	phase := h.wave.pulse1
	if channel == 1 {
		phase = h.wave.pulse2
	}
	bit := apu.DutyTable[dutyIndexFor(tone.Waveform)][phase]
	return bit * uint8(tone.Volume*15)
}

// TriangleSample returns the current 0..15 sample of the triangle
// channel's 32-step ramp.
func (h *HeadlessAdapter) TriangleSample() uint8 {
	if h.lastTones[2].Silent {
		return 0
	}
	return apu.TriangleTable[h.wave.triangle]
}
