package cpu

// AddressingMode identifies how an instruction's operand address is formed.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX // (zp,X)
	IndirectY // (zp),Y
)

// resolveAddress computes the effective address for the instruction at PC
// (post-opcode-byte) and whether an indexed read crossed a page boundary.
// It does not itself advance PC; Step does that from the instruction size.
func (c *CPU) resolveAddress(mode AddressingMode) (addr uint16, pageCrossed bool) {
	operand := c.PC + 1
	switch mode {
	case Implied, Accumulator:
		return 0, false
	case Immediate:
		return operand, false
	case ZeroPage:
		return uint16(c.mem.ReadByte(operand)), false
	case ZeroPageX:
		return uint16(c.mem.ReadByte(operand)+c.X) & 0xFF, false
	case ZeroPageY:
		return uint16(c.mem.ReadByte(operand)+c.Y) & 0xFF, false
	case Relative:
		offset := int8(c.mem.ReadByte(operand))
		// The branch target is relative to PC *after* this instruction's
		// length; Step hasn't advanced PC yet at this point, so add size (2).
		base := c.PC + 2
		target := uint16(int32(base) + int32(offset))
		return target, (base & 0xFF00) != (target & 0xFF00)
	case Absolute:
		return c.readWord16(operand), false
	case AbsoluteX:
		base := c.readWord16(operand)
		result := base + uint16(c.X)
		return result, (base & 0xFF00) != (result & 0xFF00)
	case AbsoluteY:
		base := c.readWord16(operand)
		result := base + uint16(c.Y)
		return result, (base & 0xFF00) != (result & 0xFF00)
	case Indirect:
		ptr := c.readWord16(operand)
		return c.readIndirectBug(ptr), false
	case IndirectX:
		zp := c.mem.ReadByte(operand) + c.X
		lo := uint16(c.mem.ReadByte(uint16(zp)))
		hi := uint16(c.mem.ReadByte(uint16(zp + 1)))
		return lo | hi<<8, false
	case IndirectY:
		zp := c.mem.ReadByte(operand)
		lo := uint16(c.mem.ReadByte(uint16(zp)))
		hi := uint16(c.mem.ReadByte(uint16(zp + 1)))
		base := lo | hi<<8
		result := base + uint16(c.Y)
		return result, (base & 0xFF00) != (result & 0xFF00)
	default:
		return 0, false
	}
}

func (c *CPU) readWord16(addr uint16) uint16 {
	lo := uint16(c.mem.ReadByte(addr))
	hi := uint16(c.mem.ReadByte(addr + 1))
	return lo | hi<<8
}

// readIndirectBug reproduces the 6502 JMP (abs) page-wrap bug: when the
// pointer's low byte is 0xFF, the high byte is fetched from the start of
// the same page instead of the next page.
func (c *CPU) readIndirectBug(ptr uint16) uint16 {
	lo := uint16(c.mem.ReadByte(ptr))
	var hiAddr uint16
	if ptr&0x00FF == 0x00FF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	hi := uint16(c.mem.ReadByte(hiAddr))
	return lo | hi<<8
}
