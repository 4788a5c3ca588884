package apu

import "github.com/claude/nes2a03/internal/adapter"

// lengthTable converts a 5-bit length-counter load value (from the top
// bits of $4003/$4007/$400B/$400F) into the actual number of frame-
// sequencer half-frame ticks remaining.
var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

// DutyTable holds the four pulse duty-cycle waveforms, each an 8-step
// sequence of 0/1. Exported so a host adapter that wants to drive an
// actual sample-level oscillator (rather than just frequency+volume) can
// reuse the real hardware sequence instead of re-deriving it.
var DutyTable = [4][8]uint8{
	{0, 1, 0, 0, 0, 0, 0, 0}, // 12.5%
	{0, 1, 1, 0, 0, 0, 0, 0}, // 25%
	{0, 1, 1, 1, 1, 0, 0, 0}, // 50%
	{1, 0, 0, 1, 1, 1, 1, 1}, // 75% (inverted 25%)
}

// pulseDuty maps a dutyCycle index to the Waveform an adapter should
// synthesize.
var pulseDuty = [4]adapter.Waveform{adapter.Pulse12, adapter.Pulse25, adapter.Pulse50, adapter.Pulse75}

// TriangleTable is the 32-step 15..0..15 ramp a real 2A03 triangle
// sequencer drives through. This implementation hands frequency+volume
// to the adapter (spec.md §4.4/§9's simpler permitted choice), so the
// table is exported for a host that wants to drive the stepped waveform
// instead (internal/display's headless adapter does, for test assertions
// on waveform shape).
var TriangleTable = [32]uint8{
	15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
}

// noisePeriodTable holds the 16 NTSC noise-channel timer periods.
var noisePeriodTable = [16]uint16{
	4, 8, 16, 32, 64, 96, 128, 160, 202, 254, 380, 508, 762, 1016, 2034, 4068,
}

// cpuClockHz is the NTSC 2A03 clock rate used for Tone frequency
// conversion (spec.md §4.4 "Sampled output").
const cpuClockHz = 1789773.0
