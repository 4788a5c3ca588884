// Package console wires the CPU, PPU, APU, cartridge, and joypad onto a
// shared bus and drives the top-level step loop described by spec.md
// §4.6, grounded on the original source's Nes::step and the teacher's
// Bus.Step.
package console

import (
	"github.com/claude/nes2a03/internal/adapter"
	"github.com/claude/nes2a03/internal/apu"
	"github.com/claude/nes2a03/internal/cartridge"
	"github.com/claude/nes2a03/internal/cpu"
	"github.com/claude/nes2a03/internal/joypad"
	"github.com/claude/nes2a03/internal/membus"
	"github.com/claude/nes2a03/internal/ppu"
)

// Nes is the top-level console: all component state created once from
// ROM bytes at construction, reset (power-on), and driven solely through
// Step thereafter.
type Nes struct {
	bus  *membus.Bus
	cart *cartridge.Cartridge
	cpu  *cpu.CPU
	ppu  *ppu.PPU
	apu  *apu.APU
	pad  *joypad.Joypad

	adapter adapter.Adapter

	totalCycles uint64
	dmaStall    uint64
}

// New parses romBytes as an iNES image, wires every component onto a
// fresh bus, and resets the machine (implicit power-on), per spec.md §3
// "Lifecycles".
func New(romBytes []uint8, host adapter.Adapter) (*Nes, error) {
	cart, err := cartridge.Load(romBytes)
	if err != nil {
		return nil, err
	}

	bus := membus.New()
	n := &Nes{
		bus:     bus,
		cart:    cart,
		ppu:     ppu.New(),
		apu:     apu.New(),
		pad:     joypad.New(),
		adapter: host,
	}
	n.cpu = cpu.New(bus)

	switch cart.MirrorMode() {
	case cartridge.MirrorHorizontal:
		n.ppu.SetCHR(cart, ppu.MirrorHorizontal)
	case cartridge.MirrorVertical:
		n.ppu.SetCHR(cart, ppu.MirrorVertical)
	default:
		n.ppu.SetCHR(cart, ppu.MirrorFourScreen)
	}

	bus.Register(0x6000, 0xFFFF, cartridgeHandler{cart: cart})
	bus.Register(0x2000, 0x3FFF, ppuHandler{ppu: n.ppu})
	bus.Register(0x4014, 0x4014, dmaHandler{nes: n})
	bus.Register(0x4000, 0x4013, apuHandler{apu: n.apu})
	bus.Register(0x4015, 0x4015, apuHandler{apu: n.apu})
	bus.Register(0x4017, 0x4017, apuHandler{apu: n.apu})
	bus.Register(0x4016, 0x4017, joypadHandler{pad: n.pad})

	n.cpu.Reset()
	n.ppu.Reset()
	n.apu.Reset()
	n.pad.Reset()

	return n, nil
}

// Step executes exactly one driver cycle per spec.md §4.6: service a
// pending NMI or execute one instruction, advance the PPU by 3x and the
// APU by 1x the elapsed CPU cycles, present a frame and sound on the
// appropriate boundaries, then sample fresh input. It returns whether
// the host wants another step.
func (n *Nes) Step() bool {
	if n.ppu.NMI() {
		n.cpu.RequestNMI()
	}

	cycles := n.cpu.Step()
	n.totalCycles += cycles

	if n.dmaStall > 0 {
		cycles += n.dmaStall
		n.totalCycles += n.dmaStall
		n.dmaStall = 0
	}

	crossedFrame := n.ppu.Step(int(cycles) * 3)
	tones := n.apu.Step(cycles)

	if crossedFrame {
		n.adapter.DrawFramebuffer(n.ppu.FrameBuffer())
	}
	n.adapter.PlaySound(tones)

	n.pad.SetButtons(0, n.adapter.PadP1())
	n.pad.SetButtons(1, n.adapter.PadP2())

	return n.adapter.IsActive()
}
