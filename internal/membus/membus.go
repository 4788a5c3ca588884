// Package membus implements the 64 KiB CPU-visible address space: a flat
// byte array overlaid with ordered range handlers for the cartridge, PPU,
// APU, and joypad registers.
package membus

import "fmt"

// ReadResult is returned by a handler's Read. Value means the handler owns
// that address and supplies the byte; Pass means "not mine, try the next
// handler (or the backing RAM)".
type ReadResult struct {
	value uint8
	ok    bool
}

// Value wraps a concrete byte returned by a handler.
func Value(b uint8) ReadResult { return ReadResult{value: b, ok: true} }

// Pass indicates the handler does not own this address.
func Pass() ReadResult { return ReadResult{} }

// WriteResult is returned by a handler's Write.
type WriteResult int

const (
	// WritePass means "not mine, try the next handler (or fall back to RAM)".
	WritePass WriteResult = iota
	// WriteValue means the byte should be written through to backing RAM.
	WriteValue
	// WriteBlock means the write is fully absorbed; nothing reaches RAM.
	WriteBlock
)

// Handler is an overlay responder bound to an address range.
type Handler interface {
	Read(bus *Bus, addr uint16) ReadResult
	Write(bus *Bus, addr uint16, value uint8) (WriteResult, uint8)
}

type binding struct {
	lo, hi  uint16
	handler Handler
}

// Bus is the 64 KiB NES CPU address space.
type Bus struct {
	ram      [0x0800]uint8
	bindings []binding

	// inCall guards against a handler re-entering Read/Write while already
	// dispatching one — the source's device.rs catches this via a runtime
	// borrow check; here the console is the sole owner of all component
	// state, so an explicit flag plays the same "primary handler" role.
	inCall bool
}

// New creates an empty bus. Handlers are registered with Register.
func New() *Bus {
	return &Bus{}
}

// Register binds a handler to an inclusive address range. Ranges may
// overlap; handlers are consulted in registration order.
func (b *Bus) Register(lo, hi uint16, h Handler) {
	b.bindings = append(b.bindings, binding{lo: lo, hi: hi, handler: h})
}

// ReadByte reads a single byte, consulting overlay handlers in order before
// falling back to internal RAM (mirrored every 0x0800 bytes below 0x2000).
func (b *Bus) ReadByte(addr uint16) uint8 {
	if b.inCall {
		panic(fmt.Sprintf("membus: reentrant read at $%04X", addr))
	}
	for _, bd := range b.bindings {
		if addr < bd.lo || addr > bd.hi {
			continue
		}
		b.inCall = true
		res := bd.handler.Read(b, addr)
		b.inCall = false
		if res.ok {
			return res.value
		}
	}
	if addr < 0x2000 {
		return b.ram[addr&0x07FF]
	}
	return 0
}

// WriteByte writes a single byte, consulting overlay handlers in order.
func (b *Bus) WriteByte(addr uint16, value uint8) {
	if b.inCall {
		panic(fmt.Sprintf("membus: reentrant write at $%04X", addr))
	}
	for _, bd := range b.bindings {
		if addr < bd.lo || addr > bd.hi {
			continue
		}
		b.inCall = true
		res, out := bd.handler.Write(b, addr, value)
		b.inCall = false
		switch res {
		case WriteBlock:
			return
		case WriteValue:
			value = out
			if addr < 0x2000 {
				b.ram[addr&0x07FF] = value
			}
			return
		case WritePass:
			continue
		}
	}
	if addr < 0x2000 {
		b.ram[addr&0x07FF] = value
	}
}

// ReadWord reads a little-endian 16-bit value from addr and addr+1. The
// addition wraps implicitly via uint16 arithmetic, matching real hardware
// behavior at the top of the address space.
func (b *Bus) ReadWord(addr uint16) uint16 {
	lo := uint16(b.ReadByte(addr))
	hi := uint16(b.ReadByte(addr + 1))
	return lo | hi<<8
}

// ReadWordZeroPageWrap reads a little-endian 16-bit value where the high
// byte address wraps within the zero page, the pointer fetch IndirectX/
// IndirectY perform (the CPU package computes that wrap itself and does not
// call this helper).
func (b *Bus) ReadWordZeroPageWrap(addr uint8) uint16 {
	lo := uint16(b.ReadByte(uint16(addr)))
	hi := uint16(b.ReadByte(uint16(addr + 1)))
	return lo | hi<<8
}

// RawRead reads backing RAM/handlers without the reentrancy guard, for use
// by mediator-style callers (OAM DMA) that must read arbitrary memory while
// already inside a dispatch. It still walks handlers, but neither checks
// nor sets inCall, so it runs whether or not a dispatch is in progress.
func (b *Bus) RawRead(addr uint16) uint8 {
	for _, bd := range b.bindings {
		if addr < bd.lo || addr > bd.hi {
			continue
		}
		res := bd.handler.Read(b, addr)
		if res.ok {
			return res.value
		}
	}
	if addr < 0x2000 {
		return b.ram[addr&0x07FF]
	}
	return 0
}
