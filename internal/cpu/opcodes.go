package cpu

// handlerFunc implements one opcode's side effects and returns the elapsed
// cycle count. startPC is the PC value before Step's size advance, used by
// JSR and BRK to compute the return address they push.
type handlerFunc func(c *CPU, addr uint16, pageCrossed bool, startPC uint16) (cycles uint64, branched bool)

type instruction struct {
	name    string
	mode    AddressingMode
	size    uint8
	base    uint8
	handler handlerFunc
}

func (c *CPU) initTable() {
	add := func(op uint8, name string, mode AddressingMode, size, base uint8, h handlerFunc) {
		c.table[op] = instruction{name: name, mode: mode, size: size, base: base, handler: h}
	}

	// Load/Store
	add(0xA9, "LDA", Immediate, 2, 2, readOp(func(c *CPU, v uint8) { c.A = v; c.setZN(v) }))
	add(0xA5, "LDA", ZeroPage, 2, 3, readOp(func(c *CPU, v uint8) { c.A = v; c.setZN(v) }))
	add(0xB5, "LDA", ZeroPageX, 2, 4, readOp(func(c *CPU, v uint8) { c.A = v; c.setZN(v) }))
	add(0xAD, "LDA", Absolute, 3, 4, readOp(func(c *CPU, v uint8) { c.A = v; c.setZN(v) }))
	add(0xBD, "LDA", AbsoluteX, 3, 4, readOpPage(func(c *CPU, v uint8) { c.A = v; c.setZN(v) }))
	add(0xB9, "LDA", AbsoluteY, 3, 4, readOpPage(func(c *CPU, v uint8) { c.A = v; c.setZN(v) }))
	add(0xA1, "LDA", IndirectX, 2, 6, readOp(func(c *CPU, v uint8) { c.A = v; c.setZN(v) }))
	add(0xB1, "LDA", IndirectY, 2, 5, readOpPage(func(c *CPU, v uint8) { c.A = v; c.setZN(v) }))

	add(0xA2, "LDX", Immediate, 2, 2, readOp(func(c *CPU, v uint8) { c.X = v; c.setZN(v) }))
	add(0xA6, "LDX", ZeroPage, 2, 3, readOp(func(c *CPU, v uint8) { c.X = v; c.setZN(v) }))
	add(0xB6, "LDX", ZeroPageY, 2, 4, readOp(func(c *CPU, v uint8) { c.X = v; c.setZN(v) }))
	add(0xAE, "LDX", Absolute, 3, 4, readOp(func(c *CPU, v uint8) { c.X = v; c.setZN(v) }))
	add(0xBE, "LDX", AbsoluteY, 3, 4, readOpPage(func(c *CPU, v uint8) { c.X = v; c.setZN(v) }))

	add(0xA0, "LDY", Immediate, 2, 2, readOp(func(c *CPU, v uint8) { c.Y = v; c.setZN(v) }))
	add(0xA4, "LDY", ZeroPage, 2, 3, readOp(func(c *CPU, v uint8) { c.Y = v; c.setZN(v) }))
	add(0xB4, "LDY", ZeroPageX, 2, 4, readOp(func(c *CPU, v uint8) { c.Y = v; c.setZN(v) }))
	add(0xAC, "LDY", Absolute, 3, 4, readOp(func(c *CPU, v uint8) { c.Y = v; c.setZN(v) }))
	add(0xBC, "LDY", AbsoluteX, 3, 4, readOpPage(func(c *CPU, v uint8) { c.Y = v; c.setZN(v) }))

	add(0x85, "STA", ZeroPage, 2, 3, storeOp(func(c *CPU) uint8 { return c.A }))
	add(0x95, "STA", ZeroPageX, 2, 4, storeOp(func(c *CPU) uint8 { return c.A }))
	add(0x8D, "STA", Absolute, 3, 4, storeOp(func(c *CPU) uint8 { return c.A }))
	add(0x9D, "STA", AbsoluteX, 3, 5, storeOp(func(c *CPU) uint8 { return c.A }))
	add(0x99, "STA", AbsoluteY, 3, 5, storeOp(func(c *CPU) uint8 { return c.A }))
	add(0x81, "STA", IndirectX, 2, 6, storeOp(func(c *CPU) uint8 { return c.A }))
	add(0x91, "STA", IndirectY, 2, 6, storeOp(func(c *CPU) uint8 { return c.A }))

	add(0x86, "STX", ZeroPage, 2, 3, storeOp(func(c *CPU) uint8 { return c.X }))
	add(0x96, "STX", ZeroPageY, 2, 4, storeOp(func(c *CPU) uint8 { return c.X }))
	add(0x8E, "STX", Absolute, 3, 4, storeOp(func(c *CPU) uint8 { return c.X }))

	add(0x84, "STY", ZeroPage, 2, 3, storeOp(func(c *CPU) uint8 { return c.Y }))
	add(0x94, "STY", ZeroPageX, 2, 4, storeOp(func(c *CPU) uint8 { return c.Y }))
	add(0x8C, "STY", Absolute, 3, 4, storeOp(func(c *CPU) uint8 { return c.Y }))

	// Transfers
	add(0xAA, "TAX", Implied, 1, 2, implied(func(c *CPU) { c.X = c.A; c.setZN(c.X) }))
	add(0x8A, "TXA", Implied, 1, 2, implied(func(c *CPU) { c.A = c.X; c.setZN(c.A) }))
	add(0xA8, "TAY", Implied, 1, 2, implied(func(c *CPU) { c.Y = c.A; c.setZN(c.Y) }))
	add(0x98, "TYA", Implied, 1, 2, implied(func(c *CPU) { c.A = c.Y; c.setZN(c.A) }))
	add(0xBA, "TSX", Implied, 1, 2, implied(func(c *CPU) { c.X = c.SP; c.setZN(c.X) }))
	add(0x9A, "TXS", Implied, 1, 2, implied(func(c *CPU) { c.SP = c.X }))

	// Stack
	add(0x48, "PHA", Implied, 1, 3, implied(func(c *CPU) { c.push(c.A) }))
	add(0x68, "PLA", Implied, 1, 4, implied(func(c *CPU) { c.A = c.pop(); c.setZN(c.A) }))
	add(0x08, "PHP", Implied, 1, 3, implied(func(c *CPU) { c.push(c.statusByte(true)) }))
	add(0x28, "PLP", Implied, 1, 4, implied(func(c *CPU) { c.setStatusByte(c.pop()) }))

	// Arithmetic
	add(0x69, "ADC", Immediate, 2, 2, readOp(adc))
	add(0x65, "ADC", ZeroPage, 2, 3, readOp(adc))
	add(0x75, "ADC", ZeroPageX, 2, 4, readOp(adc))
	add(0x6D, "ADC", Absolute, 3, 4, readOp(adc))
	add(0x7D, "ADC", AbsoluteX, 3, 4, readOpPage(adc))
	add(0x79, "ADC", AbsoluteY, 3, 4, readOpPage(adc))
	add(0x61, "ADC", IndirectX, 2, 6, readOp(adc))
	add(0x71, "ADC", IndirectY, 2, 5, readOpPage(adc))

	add(0xE9, "SBC", Immediate, 2, 2, readOp(sbc))
	add(0xE5, "SBC", ZeroPage, 2, 3, readOp(sbc))
	add(0xF5, "SBC", ZeroPageX, 2, 4, readOp(sbc))
	add(0xED, "SBC", Absolute, 3, 4, readOp(sbc))
	add(0xFD, "SBC", AbsoluteX, 3, 4, readOpPage(sbc))
	add(0xF9, "SBC", AbsoluteY, 3, 4, readOpPage(sbc))
	add(0xE1, "SBC", IndirectX, 2, 6, readOp(sbc))
	add(0xF1, "SBC", IndirectY, 2, 5, readOpPage(sbc))

	// Logic
	add(0x29, "AND", Immediate, 2, 2, readOp(func(c *CPU, v uint8) { c.A &= v; c.setZN(c.A) }))
	add(0x25, "AND", ZeroPage, 2, 3, readOp(func(c *CPU, v uint8) { c.A &= v; c.setZN(c.A) }))
	add(0x35, "AND", ZeroPageX, 2, 4, readOp(func(c *CPU, v uint8) { c.A &= v; c.setZN(c.A) }))
	add(0x2D, "AND", Absolute, 3, 4, readOp(func(c *CPU, v uint8) { c.A &= v; c.setZN(c.A) }))
	add(0x3D, "AND", AbsoluteX, 3, 4, readOpPage(func(c *CPU, v uint8) { c.A &= v; c.setZN(c.A) }))
	add(0x39, "AND", AbsoluteY, 3, 4, readOpPage(func(c *CPU, v uint8) { c.A &= v; c.setZN(c.A) }))
	add(0x21, "AND", IndirectX, 2, 6, readOp(func(c *CPU, v uint8) { c.A &= v; c.setZN(c.A) }))
	add(0x31, "AND", IndirectY, 2, 5, readOpPage(func(c *CPU, v uint8) { c.A &= v; c.setZN(c.A) }))

	add(0x09, "ORA", Immediate, 2, 2, readOp(func(c *CPU, v uint8) { c.A |= v; c.setZN(c.A) }))
	add(0x05, "ORA", ZeroPage, 2, 3, readOp(func(c *CPU, v uint8) { c.A |= v; c.setZN(c.A) }))
	add(0x15, "ORA", ZeroPageX, 2, 4, readOp(func(c *CPU, v uint8) { c.A |= v; c.setZN(c.A) }))
	add(0x0D, "ORA", Absolute, 3, 4, readOp(func(c *CPU, v uint8) { c.A |= v; c.setZN(c.A) }))
	add(0x1D, "ORA", AbsoluteX, 3, 4, readOpPage(func(c *CPU, v uint8) { c.A |= v; c.setZN(c.A) }))
	add(0x19, "ORA", AbsoluteY, 3, 4, readOpPage(func(c *CPU, v uint8) { c.A |= v; c.setZN(c.A) }))
	add(0x01, "ORA", IndirectX, 2, 6, readOp(func(c *CPU, v uint8) { c.A |= v; c.setZN(c.A) }))
	add(0x11, "ORA", IndirectY, 2, 5, readOpPage(func(c *CPU, v uint8) { c.A |= v; c.setZN(c.A) }))

	add(0x49, "EOR", Immediate, 2, 2, readOp(func(c *CPU, v uint8) { c.A ^= v; c.setZN(c.A) }))
	add(0x45, "EOR", ZeroPage, 2, 3, readOp(func(c *CPU, v uint8) { c.A ^= v; c.setZN(c.A) }))
	add(0x55, "EOR", ZeroPageX, 2, 4, readOp(func(c *CPU, v uint8) { c.A ^= v; c.setZN(c.A) }))
	add(0x4D, "EOR", Absolute, 3, 4, readOp(func(c *CPU, v uint8) { c.A ^= v; c.setZN(c.A) }))
	add(0x5D, "EOR", AbsoluteX, 3, 4, readOpPage(func(c *CPU, v uint8) { c.A ^= v; c.setZN(c.A) }))
	add(0x59, "EOR", AbsoluteY, 3, 4, readOpPage(func(c *CPU, v uint8) { c.A ^= v; c.setZN(c.A) }))
	add(0x41, "EOR", IndirectX, 2, 6, readOp(func(c *CPU, v uint8) { c.A ^= v; c.setZN(c.A) }))
	add(0x51, "EOR", IndirectY, 2, 5, readOpPage(func(c *CPU, v uint8) { c.A ^= v; c.setZN(c.A) }))

	// Shifts/rotates (memory and accumulator forms)
	add(0x0A, "ASL", Accumulator, 1, 2, accShift(asl))
	add(0x06, "ASL", ZeroPage, 2, 5, memShift(asl))
	add(0x16, "ASL", ZeroPageX, 2, 6, memShift(asl))
	add(0x0E, "ASL", Absolute, 3, 6, memShift(asl))
	add(0x1E, "ASL", AbsoluteX, 3, 7, memShift(asl))

	add(0x4A, "LSR", Accumulator, 1, 2, accShift(lsr))
	add(0x46, "LSR", ZeroPage, 2, 5, memShift(lsr))
	add(0x56, "LSR", ZeroPageX, 2, 6, memShift(lsr))
	add(0x4E, "LSR", Absolute, 3, 6, memShift(lsr))
	add(0x5E, "LSR", AbsoluteX, 3, 7, memShift(lsr))

	add(0x2A, "ROL", Accumulator, 1, 2, accShift(rol))
	add(0x26, "ROL", ZeroPage, 2, 5, memShift(rol))
	add(0x36, "ROL", ZeroPageX, 2, 6, memShift(rol))
	add(0x2E, "ROL", Absolute, 3, 6, memShift(rol))
	add(0x3E, "ROL", AbsoluteX, 3, 7, memShift(rol))

	add(0x6A, "ROR", Accumulator, 1, 2, accShift(ror))
	add(0x66, "ROR", ZeroPage, 2, 5, memShift(ror))
	add(0x76, "ROR", ZeroPageX, 2, 6, memShift(ror))
	add(0x6E, "ROR", Absolute, 3, 6, memShift(ror))
	add(0x7E, "ROR", AbsoluteX, 3, 7, memShift(ror))

	// Compares
	add(0xC9, "CMP", Immediate, 2, 2, readOp(func(c *CPU, v uint8) { compare(c, c.A, v) }))
	add(0xC5, "CMP", ZeroPage, 2, 3, readOp(func(c *CPU, v uint8) { compare(c, c.A, v) }))
	add(0xD5, "CMP", ZeroPageX, 2, 4, readOp(func(c *CPU, v uint8) { compare(c, c.A, v) }))
	add(0xCD, "CMP", Absolute, 3, 4, readOp(func(c *CPU, v uint8) { compare(c, c.A, v) }))
	add(0xDD, "CMP", AbsoluteX, 3, 4, readOpPage(func(c *CPU, v uint8) { compare(c, c.A, v) }))
	add(0xD9, "CMP", AbsoluteY, 3, 4, readOpPage(func(c *CPU, v uint8) { compare(c, c.A, v) }))
	add(0xC1, "CMP", IndirectX, 2, 6, readOp(func(c *CPU, v uint8) { compare(c, c.A, v) }))
	add(0xD1, "CMP", IndirectY, 2, 5, readOpPage(func(c *CPU, v uint8) { compare(c, c.A, v) }))

	add(0xE0, "CPX", Immediate, 2, 2, readOp(func(c *CPU, v uint8) { compare(c, c.X, v) }))
	add(0xE4, "CPX", ZeroPage, 2, 3, readOp(func(c *CPU, v uint8) { compare(c, c.X, v) }))
	add(0xEC, "CPX", Absolute, 3, 4, readOp(func(c *CPU, v uint8) { compare(c, c.X, v) }))

	add(0xC0, "CPY", Immediate, 2, 2, readOp(func(c *CPU, v uint8) { compare(c, c.Y, v) }))
	add(0xC4, "CPY", ZeroPage, 2, 3, readOp(func(c *CPU, v uint8) { compare(c, c.Y, v) }))
	add(0xCC, "CPY", Absolute, 3, 4, readOp(func(c *CPU, v uint8) { compare(c, c.Y, v) }))

	// Increment/decrement
	add(0xE6, "INC", ZeroPage, 2, 5, memOp(func(c *CPU, v uint8) uint8 { v++; c.setZN(v); return v }))
	add(0xF6, "INC", ZeroPageX, 2, 6, memOp(func(c *CPU, v uint8) uint8 { v++; c.setZN(v); return v }))
	add(0xEE, "INC", Absolute, 3, 6, memOp(func(c *CPU, v uint8) uint8 { v++; c.setZN(v); return v }))
	add(0xFE, "INC", AbsoluteX, 3, 7, memOp(func(c *CPU, v uint8) uint8 { v++; c.setZN(v); return v }))

	add(0xC6, "DEC", ZeroPage, 2, 5, memOp(func(c *CPU, v uint8) uint8 { v--; c.setZN(v); return v }))
	add(0xD6, "DEC", ZeroPageX, 2, 6, memOp(func(c *CPU, v uint8) uint8 { v--; c.setZN(v); return v }))
	add(0xCE, "DEC", Absolute, 3, 6, memOp(func(c *CPU, v uint8) uint8 { v--; c.setZN(v); return v }))
	add(0xDE, "DEC", AbsoluteX, 3, 7, memOp(func(c *CPU, v uint8) uint8 { v--; c.setZN(v); return v }))

	add(0xE8, "INX", Implied, 1, 2, implied(func(c *CPU) { c.X++; c.setZN(c.X) }))
	add(0xCA, "DEX", Implied, 1, 2, implied(func(c *CPU) { c.X--; c.setZN(c.X) }))
	add(0xC8, "INY", Implied, 1, 2, implied(func(c *CPU) { c.Y++; c.setZN(c.Y) }))
	add(0x88, "DEY", Implied, 1, 2, implied(func(c *CPU) { c.Y--; c.setZN(c.Y) }))

	// Flags
	add(0x18, "CLC", Implied, 1, 2, implied(func(c *CPU) { c.C = false }))
	add(0x38, "SEC", Implied, 1, 2, implied(func(c *CPU) { c.C = true }))
	add(0x58, "CLI", Implied, 1, 2, implied(func(c *CPU) { c.I = false }))
	add(0x78, "SEI", Implied, 1, 2, implied(func(c *CPU) { c.I = true }))
	add(0xB8, "CLV", Implied, 1, 2, implied(func(c *CPU) { c.V = false }))
	add(0xD8, "CLD", Implied, 1, 2, implied(func(c *CPU) { c.D = false }))
	add(0xF8, "SED", Implied, 1, 2, implied(func(c *CPU) { c.D = true }))

	// Bit test
	add(0x24, "BIT", ZeroPage, 2, 3, readOp(bit))
	add(0x2C, "BIT", Absolute, 3, 4, readOp(bit))

	// Jumps/calls
	add(0x4C, "JMP", Absolute, 3, 3, jmp)
	add(0x6C, "JMP", Indirect, 3, 5, jmp)
	add(0x20, "JSR", Absolute, 3, 6, jsr)
	add(0x60, "RTS", Implied, 1, 6, rts)
	add(0x40, "RTI", Implied, 1, 6, rti)
	add(0x00, "BRK", Implied, 1, 7, brk)
	add(0xEA, "NOP", Implied, 1, 2, implied(func(c *CPU) {}))

	// Branches
	add(0x90, "BCC", Relative, 2, 2, branch(func(c *CPU) bool { return !c.C }))
	add(0xB0, "BCS", Relative, 2, 2, branch(func(c *CPU) bool { return c.C }))
	add(0xD0, "BNE", Relative, 2, 2, branch(func(c *CPU) bool { return !c.Z }))
	add(0xF0, "BEQ", Relative, 2, 2, branch(func(c *CPU) bool { return c.Z }))
	add(0x10, "BPL", Relative, 2, 2, branch(func(c *CPU) bool { return !c.N }))
	add(0x30, "BMI", Relative, 2, 2, branch(func(c *CPU) bool { return c.N }))
	add(0x50, "BVC", Relative, 2, 2, branch(func(c *CPU) bool { return !c.V }))
	add(0x70, "BVS", Relative, 2, 2, branch(func(c *CPU) bool { return c.V }))
}

// --- handler builders -------------------------------------------------

func readOp(f func(c *CPU, v uint8)) handlerFunc {
	return func(c *CPU, addr uint16, pageCrossed bool, startPC uint16) (uint64, bool) {
		f(c, c.mem.ReadByte(addr))
		return uint64(0), false
	}
}

// readOpPage is readOp for indexed modes that charge +1 cycle on a page
// crossing (the base cost already reflects the non-crossing case in the
// instruction table; Step adds this delta).
func readOpPage(f func(c *CPU, v uint8)) handlerFunc {
	return func(c *CPU, addr uint16, pageCrossed bool, startPC uint16) (uint64, bool) {
		f(c, c.mem.ReadByte(addr))
		if pageCrossed {
			return 1, false
		}
		return 0, false
	}
}

func storeOp(f func(c *CPU) uint8) handlerFunc {
	return func(c *CPU, addr uint16, pageCrossed bool, startPC uint16) (uint64, bool) {
		c.mem.WriteByte(addr, f(c))
		return 0, false
	}
}

func implied(f func(c *CPU)) handlerFunc {
	return func(c *CPU, addr uint16, pageCrossed bool, startPC uint16) (uint64, bool) {
		f(c)
		return 0, false
	}
}

func memOp(f func(c *CPU, v uint8) uint8) handlerFunc {
	return func(c *CPU, addr uint16, pageCrossed bool, startPC uint16) (uint64, bool) {
		v := c.mem.ReadByte(addr)
		c.mem.WriteByte(addr, f(c, v))
		return 0, false
	}
}

func accShift(f func(c *CPU, v uint8) uint8) handlerFunc {
	return func(c *CPU, addr uint16, pageCrossed bool, startPC uint16) (uint64, bool) {
		c.A = f(c, c.A)
		return 0, false
	}
}

func memShift(f func(c *CPU, v uint8) uint8) handlerFunc {
	return func(c *CPU, addr uint16, pageCrossed bool, startPC uint16) (uint64, bool) {
		v := c.mem.ReadByte(addr)
		c.mem.WriteByte(addr, f(c, v))
		return 0, false
	}
}

// branch costs base(2) + 1 if taken + 1 more if the taken target crosses a
// page, per spec.md §4.2.
func branch(cond func(c *CPU) bool) handlerFunc {
	return func(c *CPU, addr uint16, pageCrossed bool, startPC uint16) (uint64, bool) {
		if !cond(c) {
			return 0, false
		}
		var extra uint64 = 1
		if pageCrossed {
			extra++
		}
		c.PC = addr
		return extra, true
	}
}

// --- shared instruction semantics --------------------------------------

func adc(c *CPU, v uint8) {
	carry := uint16(0)
	if c.C {
		carry = 1
	}
	sum := uint16(c.A) + uint16(v) + carry
	result := uint8(sum)
	c.C = sum > 0xFF
	c.V = (c.A^v)&0x80 == 0 && (c.A^result)&0x80 != 0
	c.A = result
	c.setZN(c.A)
}

func sbc(c *CPU, v uint8) {
	// SBC computes A + ~M + C.
	adc(c, ^v)
}

func asl(c *CPU, v uint8) uint8 {
	c.C = v&0x80 != 0
	v <<= 1
	c.setZN(v)
	return v
}

func lsr(c *CPU, v uint8) uint8 {
	c.C = v&0x01 != 0
	v >>= 1
	c.setZN(v)
	return v
}

func rol(c *CPU, v uint8) uint8 {
	carryIn := uint8(0)
	if c.C {
		carryIn = 1
	}
	c.C = v&0x80 != 0
	v = v<<1 | carryIn
	c.setZN(v)
	return v
}

func ror(c *CPU, v uint8) uint8 {
	carryIn := uint8(0)
	if c.C {
		carryIn = 0x80
	}
	c.C = v&0x01 != 0
	v = v>>1 | carryIn
	c.setZN(v)
	return v
}

func compare(c *CPU, reg, v uint8) {
	c.C = reg >= v
	c.setZN(reg - v)
}

func bit(c *CPU, v uint8) {
	c.Z = (c.A & v) == 0
	c.N = v&0x80 != 0
	c.V = v&0x40 != 0
}

func jmp(c *CPU, addr uint16, pageCrossed bool, startPC uint16) (uint64, bool) {
	c.PC = addr
	return 0, true
}

func jsr(c *CPU, addr uint16, pageCrossed bool, startPC uint16) (uint64, bool) {
	// Push the address of the last byte of JSR (startPC+2), not PC+1.
	c.pushWord(startPC + 2)
	c.PC = addr
	return 0, true
}

func rts(c *CPU, addr uint16, pageCrossed bool, startPC uint16) (uint64, bool) {
	c.PC = c.popWord() + 1
	return 0, true
}

func rti(c *CPU, addr uint16, pageCrossed bool, startPC uint16) (uint64, bool) {
	c.setStatusByte(c.pop())
	c.PC = c.popWord()
	return 0, true
}

func brk(c *CPU, addr uint16, pageCrossed bool, startPC uint16) (uint64, bool) {
	c.pushWord(startPC + 2) // BRK's signature byte is skipped
	c.push(c.statusByte(true))
	c.I = true
	c.PC = uint16(c.mem.ReadByte(irqVector)) | uint16(c.mem.ReadByte(irqVector+1))<<8
	return 0, true
}
