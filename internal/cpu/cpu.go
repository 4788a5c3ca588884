// Package cpu implements the 6502-derived 2A03 processor: registers,
// addressing modes, the 151-opcode official instruction set, interrupts,
// and per-instruction cycle accounting.
package cpu

import "fmt"

// Memory is the bus interface the CPU reads/writes through.
type Memory interface {
	ReadByte(addr uint16) uint8
	WriteByte(addr uint16, value uint8)
}

// Status flag bit positions within P.
const (
	flagC uint8 = 1 << 0
	flagZ uint8 = 1 << 1
	flagI uint8 = 1 << 2
	flagD uint8 = 1 << 3
	flagB uint8 = 1 << 4
	flagU uint8 = 1 << 5 // unused/Break2, always set in the flags byte
	flagV uint8 = 1 << 6
	flagN uint8 = 1 << 7
)

const (
	stackBase   uint16 = 0x0100
	nmiVector   uint16 = 0xFFFA
	irqVector   uint16 = 0xFFFE
	resetVector uint16 = 0xFFFC
)

// CPU holds the 2A03 register file and interrupt latches.
type CPU struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16

	C, Z, I, D, B, V, N bool

	mem Memory

	nmiPending bool
	irqPending bool

	table [256]instruction
}

// New creates a CPU wired to mem. Call Reset before first use.
func New(mem Memory) *CPU {
	c := &CPU{mem: mem}
	c.initTable()
	return c
}

// Reset sets the documented 6502 power-on register state and loads PC from
// the reset vector.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.C, c.Z, c.D, c.V, c.N = false, false, false, false, false
	c.I = true
	c.B = false
	c.PC = uint16(c.mem.ReadByte(resetVector)) | uint16(c.mem.ReadByte(resetVector+1))<<8
	c.nmiPending = false
	c.irqPending = false
}

// statusByte packs the flags into the P register layout used by PHP/BRK.
func (c *CPU) statusByte(breakFlag bool) uint8 {
	var p uint8
	if c.C {
		p |= flagC
	}
	if c.Z {
		p |= flagZ
	}
	if c.I {
		p |= flagI
	}
	if c.D {
		p |= flagD
	}
	if breakFlag {
		p |= flagB
	}
	p |= flagU
	if c.V {
		p |= flagV
	}
	if c.N {
		p |= flagN
	}
	return p
}

func (c *CPU) setStatusByte(p uint8) {
	c.C = p&flagC != 0
	c.Z = p&flagZ != 0
	c.I = p&flagI != 0
	c.D = p&flagD != 0
	c.V = p&flagV != 0
	c.N = p&flagN != 0
	// B/U are not stored as CPU state; they only exist in the pushed byte.
}

func (c *CPU) push(v uint8) {
	c.mem.WriteByte(stackBase|uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.mem.ReadByte(stackBase | uint16(c.SP))
}

func (c *CPU) pushWord(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) popWord() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return lo | hi<<8
}

func (c *CPU) setZN(v uint8) {
	c.Z = v == 0
	c.N = v&0x80 != 0
}

// NMIPending reports whether the CPU still has to service a latched NMI.
func (c *CPU) NMIPending() bool { return c.nmiPending }

// RequestNMI latches a non-maskable interrupt to be serviced before the
// next instruction fetch.
func (c *CPU) RequestNMI() { c.nmiPending = true }

// RequestIRQ latches a maskable interrupt request.
func (c *CPU) RequestIRQ() { c.irqPending = true }

// ServiceNMI pushes PC/P (Break clear, Break2 set), disables IRQ, and
// vectors through 0xFFFA. Returns a cycle cost of 2 (spec.md §4.2); the
// rest of a hardware 7-cycle interrupt sequence is not charged anywhere.
func (c *CPU) ServiceNMI() uint64 {
	c.nmiPending = false
	c.pushWord(c.PC)
	c.push(c.statusByte(false) | flagU)
	c.I = true
	c.PC = uint16(c.mem.ReadByte(nmiVector)) | uint16(c.mem.ReadByte(nmiVector+1))<<8
	return 2
}

func (c *CPU) serviceIRQ() uint64 {
	c.irqPending = false
	c.pushWord(c.PC)
	c.push(c.statusByte(false) | flagU)
	c.I = true
	c.PC = uint16(c.mem.ReadByte(irqVector)) | uint16(c.mem.ReadByte(irqVector+1))<<8
	return 7
}

// Step services a pending interrupt, or else fetches/decodes/executes one
// instruction, and returns the elapsed CPU cycle count.
func (c *CPU) Step() uint64 {
	if c.nmiPending {
		return c.ServiceNMI()
	}
	if c.irqPending && !c.I {
		return c.serviceIRQ()
	}

	opcode := c.mem.ReadByte(c.PC)
	inst := c.table[opcode]
	if inst.handler == nil {
		panic(fmt.Sprintf("cpu: unimplemented opcode $%02X at PC=$%04X", opcode, c.PC))
	}

	addr, pageCrossed := c.resolveAddress(inst.mode)
	startPC := c.PC
	c.PC += uint16(inst.size)

	extra, branched := inst.handler(c, addr, pageCrossed, startPC)
	_ = branched
	return uint64(inst.base) + extra
}
