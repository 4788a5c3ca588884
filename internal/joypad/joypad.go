// Package joypad implements the two-controller serial read interface
// exposed at $4016/$4017, per spec.md §4.5.
package joypad

import "github.com/claude/nes2a03/internal/adapter"

// Joypad holds the strobe latch and per-controller shift state for both
// controllers.
type Joypad struct {
	strobe bool

	state [2]adapter.ButtonSet
	index [2]uint8
}

// New creates a Joypad with the strobe cleared and both shift indices at
// 0, so reads shift out button state from A onward.
func New() *Joypad {
	return &Joypad{}
}

// Reset clears strobe and shift indices.
func (j *Joypad) Reset() {
	j.strobe = false
	j.index[0], j.index[1] = 0, 0
}

// SetButtons latches the current button state for one controller (0 or
// 1), called once per step from the values the adapter reports.
func (j *Joypad) SetButtons(controller int, buttons adapter.ButtonSet) {
	j.state[controller] = buttons
}

// Write handles a CPU write to $4016. Bit 0 set arms the strobe,
// resetting both serial indices to 0; clearing it latches the current
// shift position.
func (j *Joypad) Write(value uint8) {
	strobe := value&0x01 != 0
	if strobe {
		j.index[0] = 0
		j.index[1] = 0
	}
	j.strobe = strobe
}

// Read handles a CPU read of $4016 (controller 0) or $4017
// (controller 1): returns the next bit of the controller's button
// state. The state is stored MSB-first as Right, Left, Down, Up, Start,
// Select, B, A and shifted out LSB-first, so reads return A, B, Select,
// Start, Up, Down, Left, Right, saturating at 1 once all 8 buttons have
// been read.
func (j *Joypad) Read(controller int) uint8 {
	if j.strobe {
		// While strobed, every read returns button A's live state.
		if j.state[controller].Pressed(adapter.ButtonA) {
			return 1
		}
		return 0
	}
	idx := j.index[controller]
	if idx >= 8 {
		return 1
	}
	j.index[controller]++
	if j.state[controller]&adapter.ButtonSet(1<<idx) != 0 {
		return 1
	}
	return 0
}
