// Package adapter defines the host boundary: frame presentation, input
// sampling, and sound sinking. The core never touches a window, a GPU, or
// an audio device directly; it only ever talks to an Adapter.
package adapter

// Frame is a 256x240 buffer of palette indices, as produced by the PPU.
// The adapter owns the actual 64-entry RGB palette; the core only ever
// hands out indices into it.
type Frame = [256 * 240]uint8

// Palette is the fixed 64-entry NTSC NES palette, expressed as packed
// 0xRRGGBB values. It lives here rather than in the PPU because the
// spec treats the palette as host-owned: the core only produces indices.
var Palette = [64]uint32{
	0x626262, 0x001FB2, 0x2404C8, 0x5200B2, 0x730076, 0x800024, 0x730B00, 0x522800,
	0x244400, 0x005700, 0x005C00, 0x005324, 0x003C76, 0x000000, 0x000000, 0x000000,
	0xABABAB, 0x0D57FF, 0x4B30FF, 0x8A13FF, 0xBC08D6, 0xD21269, 0xC72E00, 0x9D5400,
	0x607B00, 0x209800, 0x00A300, 0x009942, 0x007DB4, 0x000000, 0x000000, 0x000000,
	0xFFFFFF, 0x53AEFF, 0x9085FF, 0xD365FF, 0xFF57FF, 0xFF5DCF, 0xFF7757, 0xFA9E00,
	0xBDC700, 0x7AE700, 0x43F611, 0x26EF7E, 0x2CD5F6, 0x4E4E4E, 0x000000, 0x000000,
	0xFFFFFF, 0xB6E1FF, 0xCED1FF, 0xE9C3FF, 0xFFBCFF, 0xFFBDF4, 0xFFC6C3, 0xFFD59A,
	0xE9E681, 0xCEF481, 0xB6FB9A, 0xA9FAC3, 0xA9F0F4, 0xB8B8B8, 0x000000, 0x000000,
}

// ButtonBit identifies a single controller button within a ButtonSet, in
// the bit order the joypad's shift register reads them back in.
type ButtonBit uint8

const (
	ButtonA ButtonBit = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// ButtonSet is a bitmask of currently-held buttons for one controller.
type ButtonSet uint8

func (b ButtonSet) Pressed(bit ButtonBit) bool { return b&ButtonSet(bit) != 0 }

// Waveform identifies the shape an adapter should synthesize for a Tone.
type Waveform uint8

const (
	Pulse12 Waveform = iota
	Pulse25
	Pulse50
	Pulse75
	Triangle
	Noise
)

// Tone is one channel's instantaneous sound description. The core computes
// frequency and volume from its internal timer/envelope state each step;
// synthesis (oscillators, mixing, actually producing PCM) is entirely the
// adapter's responsibility.
type Tone struct {
	FrequencyHz float64
	Volume      float64 // 0..1
	Waveform    Waveform
	Silent      bool // true when the channel is gated off (muted); a sounding channel may still report Volume 0
}

// Tones is the four-channel snapshot published once per step: pulse1,
// pulse2, triangle, noise. DMC is out of scope.
type Tones [4]Tone

// Adapter is the host boundary the console drives every step. Concrete
// implementations (an ebiten-backed window, a headless test double) live
// outside the core.
type Adapter interface {
	// IsActive reports whether the host wants the emulation to keep
	// running; the console's Step loop terminates the first time this
	// returns false.
	IsActive() bool

	// DrawFramebuffer is called once per emitted frame, on the step in
	// which the PPU reports its frame wrap (scanline 261 back to 0). The
	// Frame is only valid for the duration of the call.
	DrawFramebuffer(frame *Frame)

	// PadP1 and PadP2 sample the current button state for each
	// controller, read once per step after presentation.
	PadP1() ButtonSet
	PadP2() ButtonSet

	// PlaySound receives the current four-channel tone snapshot every
	// step, whether or not a frame was drawn.
	PlaySound(tones Tones)
}
