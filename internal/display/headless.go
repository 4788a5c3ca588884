package display

import (
	"github.com/claude/nes2a03/internal/adapter"
)

// HeadlessAdapter implements adapter.Adapter without any window, audio
// device, or real input source: it stores the most recent frame/tones
// and serves scripted or zero button state. Grounded on the teacher's
// HeadlessBackend, used here for automated tests and batch/CI runs of
// the console rather than interactive ROMs.
type HeadlessAdapter struct {
	active     bool
	frameCount int

	lastFrame adapter.Frame
	lastTones adapter.Tones

	pad1, pad2 adapter.ButtonSet

	wave waveformPhase

	// MaxFrames, if non-zero, stops the adapter after that many frames
	// have been drawn; 0 means run until explicitly stopped.
	MaxFrames int
}

// NewHeadlessAdapter creates an active headless adapter.
func NewHeadlessAdapter() *HeadlessAdapter {
	return &HeadlessAdapter{active: true}
}

func (h *HeadlessAdapter) IsActive() bool { return h.active }

// Stop marks the adapter inactive, ending the console's step loop on
// its next Step call.
func (h *HeadlessAdapter) Stop() { h.active = false }

func (h *HeadlessAdapter) DrawFramebuffer(frame *adapter.Frame) {
	h.lastFrame = *frame
	h.frameCount++
	if h.MaxFrames > 0 && h.frameCount >= h.MaxFrames {
		h.active = false
	}
}

func (h *HeadlessAdapter) PadP1() adapter.ButtonSet { return h.pad1 }
func (h *HeadlessAdapter) PadP2() adapter.ButtonSet { return h.pad2 }

// SetPads lets a driving test or scripted input source push button
// state the adapter will report on the next sampling.
func (h *HeadlessAdapter) SetPads(p1, p2 adapter.ButtonSet) {
	h.pad1, h.pad2 = p1, p2
}

func (h *HeadlessAdapter) PlaySound(tones adapter.Tones) {
	h.lastTones = tones
	h.stepWaveforms(tones)
}

// LastFrame returns the most recently drawn framebuffer, for tests.
func (h *HeadlessAdapter) LastFrame() adapter.Frame { return h.lastFrame }

// LastTones returns the most recently published tone snapshot, for tests.
func (h *HeadlessAdapter) LastTones() adapter.Tones { return h.lastTones }

// FrameCount reports how many frames have been drawn so far.
func (h *HeadlessAdapter) FrameCount() int { return h.frameCount }
