package console

import (
	"github.com/claude/nes2a03/internal/apu"
	"github.com/claude/nes2a03/internal/cartridge"
	"github.com/claude/nes2a03/internal/joypad"
	"github.com/claude/nes2a03/internal/membus"
	"github.com/claude/nes2a03/internal/ppu"
)

// cartridgeHandler delegates the 0x6000-0xFFFF range straight to the
// cartridge's mapper, which itself distinguishes PRG-RAM from PRG-ROM.
type cartridgeHandler struct{ cart *cartridge.Cartridge }

func (h cartridgeHandler) Read(bus *membus.Bus, addr uint16) membus.ReadResult {
	return membus.Value(h.cart.ReadPRG(addr))
}

func (h cartridgeHandler) Write(bus *membus.Bus, addr uint16, value uint8) (membus.WriteResult, uint8) {
	h.cart.WritePRG(addr, value)
	return membus.WriteBlock, 0
}

// ppuHandler covers the mirrored 0x2000-0x3FFF register window.
type ppuHandler struct{ ppu *ppu.PPU }

func (h ppuHandler) Read(bus *membus.Bus, addr uint16) membus.ReadResult {
	return membus.Value(h.ppu.ReadRegister(addr))
}

func (h ppuHandler) Write(bus *membus.Bus, addr uint16, value uint8) (membus.WriteResult, uint8) {
	h.ppu.WriteRegister(addr, value)
	return membus.WriteBlock, 0
}

// apuHandler covers 0x4000-0x4013, 0x4015, and the write side of 0x4017
// (the frame-counter register). It passes on reads of 0x4017 so the
// joypad handler, registered afterward over the same address, can serve
// controller 2's serial read there.
type apuHandler struct{ apu *apu.APU }

func (h apuHandler) Read(bus *membus.Bus, addr uint16) membus.ReadResult {
	if addr == 0x4015 {
		return membus.Value(h.apu.ReadStatus())
	}
	return membus.Pass()
}

func (h apuHandler) Write(bus *membus.Bus, addr uint16, value uint8) (membus.WriteResult, uint8) {
	h.apu.WriteRegister(addr, value)
	return membus.WriteBlock, 0
}

// dmaHandler implements the $4014 OAM DMA trigger: it copies 256 bytes
// from the written page directly into PPU OAM and charges the CPU a
// 513/514-cycle stall, per spec.md §9's recommendation (the original
// source omits the stall entirely, which the spec calls a likely bug).
type dmaHandler struct{ nes *Nes }

func (h dmaHandler) Read(bus *membus.Bus, addr uint16) membus.ReadResult {
	return membus.Pass()
}

func (h dmaHandler) Write(bus *membus.Bus, addr uint16, value uint8) (membus.WriteResult, uint8) {
	sourceBase := uint16(value) << 8
	for i := 0; i < 256; i++ {
		data := bus.RawRead(sourceBase + uint16(i))
		h.nes.ppu.DMAWrite(uint8(i), data)
	}
	stall := uint64(513)
	if h.nes.totalCycles%2 == 1 {
		stall = 514
	}
	h.nes.dmaStall += stall
	return membus.WriteBlock, 0
}

// joypadHandler covers 0x4016 (strobe write, controller 1 read) and the
// read side of 0x4017 (controller 2 read); it passes on writes to 0x4017
// since those belong to the APU frame counter.
type joypadHandler struct{ pad *joypad.Joypad }

func (h joypadHandler) Read(bus *membus.Bus, addr uint16) membus.ReadResult {
	switch addr {
	case 0x4016:
		return membus.Value(h.pad.Read(0))
	case 0x4017:
		return membus.Value(h.pad.Read(1))
	}
	return membus.Pass()
}

func (h joypadHandler) Write(bus *membus.Bus, addr uint16, value uint8) (membus.WriteResult, uint8) {
	if addr != 0x4016 {
		return membus.WritePass, 0
	}
	h.pad.Write(value)
	return membus.WriteBlock, 0
}
