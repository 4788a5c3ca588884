package apu

import "github.com/claude/nes2a03/internal/adapter"

// pulseChannel models one of the two pulse (square) generators: duty
// sequencer, sweep unit, envelope, and length counter, per spec.md §4.4.
type pulseChannel struct {
	dutyCycle       uint8
	lengthHalt      bool // doubles as envelope loop, like real hardware
	envelopeDisable bool
	volume          uint8

	sweepEnable  bool
	sweepPeriod  uint8
	sweepNegate  bool
	sweepShift   uint8
	sweepReload  bool
	sweepCounter uint8

	timer        uint16
	timerCounter uint16

	lengthCounter uint8

	envelopeStart   bool
	envelopeCounter uint8
	envelopeDivider uint8

	dutyIndex uint8
}

func (p *pulseChannel) writeControl(value uint8) {
	p.dutyCycle = (value >> 6) & 0x03
	p.lengthHalt = value&0x20 != 0
	p.envelopeDisable = value&0x10 != 0
	p.volume = value & 0x0F
	p.envelopeStart = true
}

func (p *pulseChannel) writeSweep(value uint8) {
	p.sweepEnable = value&0x80 != 0
	p.sweepPeriod = (value >> 4) & 0x07
	p.sweepNegate = value&0x08 != 0
	p.sweepShift = value & 0x07
	p.sweepReload = true
}

func (p *pulseChannel) writeTimerLow(value uint8) {
	p.timer = (p.timer & 0xFF00) | uint16(value)
}

func (p *pulseChannel) writeTimerHigh(value uint8, enabled bool) {
	p.timer = (p.timer & 0x00FF) | (uint16(value&0x07) << 8)
	if enabled {
		p.lengthCounter = lengthTable[(value>>3)&0x1F]
	}
	p.envelopeStart = true
	p.dutyIndex = 0
}

// stepTimer is clocked once per CPU cycle and counts the 11-bit period
// down at that full rate (no divide-by-two), advancing the duty sequencer
// on each reload.
func (p *pulseChannel) stepTimer() {
	if p.timerCounter == 0 {
		p.timerCounter = p.timer
		p.dutyIndex = (p.dutyIndex + 1) & 0x07
	} else {
		p.timerCounter--
	}
}

func (p *pulseChannel) clockEnvelope() {
	if p.envelopeStart {
		p.envelopeStart = false
		p.envelopeCounter = 15
		p.envelopeDivider = p.volume
	} else if p.envelopeDivider == 0 {
		p.envelopeDivider = p.volume
		if p.envelopeCounter > 0 {
			p.envelopeCounter--
		} else if p.lengthHalt {
			p.envelopeCounter = 15
		}
	} else {
		p.envelopeDivider--
	}
}

func (p *pulseChannel) clockLength() {
	if !p.lengthHalt && p.lengthCounter > 0 {
		p.lengthCounter--
	}
}

// targetPeriod computes the sweep unit's candidate period without
// mutating state, so mute-on-overflow can be checked before committing.
func (p *pulseChannel) targetPeriod(onesComplement bool) uint16 {
	change := p.timer >> p.sweepShift
	if !p.sweepNegate {
		return p.timer + change
	}
	if onesComplement {
		return p.timer - change - 1
	}
	return p.timer - change
}

// clockSweep clocks the sweep unit. onesComplement is true for pulse 1,
// which subtracts one extra per spec.md §4.4's "a one-less adjustment on
// pulse 1 vs pulse 2" note (pulse 2 uses two's complement subtraction).
func (p *pulseChannel) clockSweep(onesComplement bool) {
	muted := p.timer < 8 || p.targetPeriod(onesComplement) > 0x7FF
	if p.sweepCounter == 0 && p.sweepEnable && p.sweepShift > 0 && !muted {
		p.timer = p.targetPeriod(onesComplement)
	}
	if p.sweepCounter == 0 || p.sweepReload {
		p.sweepCounter = p.sweepPeriod
		p.sweepReload = false
	} else {
		p.sweepCounter--
	}
}

func (p *pulseChannel) muted(onesComplement bool) bool {
	return p.lengthCounter == 0 || p.timer < 8 || p.targetPeriod(onesComplement) > 0x7FF
}

// tone converts the channel's current timer/envelope state into the
// Tone snapshot described by spec.md §4.4: frequency = CPU_CLOCK /
// (16 * (period + 1)).
func (p *pulseChannel) tone(onesComplement bool) adapter.Tone {
	if p.muted(onesComplement) {
		return adapter.Tone{Waveform: pulseDuty[p.dutyCycle], Silent: true}
	}
	vol := p.envelopeCounter
	if p.envelopeDisable {
		vol = p.volume
	}
	return adapter.Tone{
		FrequencyHz: cpuClockHz / (16 * float64(p.timer+1)),
		Volume:      float64(vol) / 15,
		Waveform:    pulseDuty[p.dutyCycle],
	}
}
