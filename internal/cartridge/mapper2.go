package cartridge

// mapper2 implements UxROM: a switchable 16 KiB PRG bank at 0x8000-0xBFFF
// selected by the low nibble of any write in 0x8000-0xFFFF, and the last
// PRG bank fixed at 0xC000-0xFFFF. CHR is always RAM (8 KiB).
type mapper2 struct {
	cart       *Cartridge
	prgBanks   int
	selectBank int
}

func newMapper2(cart *Cartridge) *mapper2 {
	return &mapper2{cart: cart, prgBanks: len(cart.prgROM) / 0x4000}
}

func (m *mapper2) ReadPRG(addr uint16) uint8 {
	switch {
	case addr >= 0xC000:
		base := (m.prgBanks - 1) * 0x4000
		return m.cart.prgROM[base+int(addr-0xC000)]
	case addr >= 0x8000:
		base := m.selectBank * 0x4000
		return m.cart.prgROM[base+int(addr-0x8000)]
	case addr >= 0x6000:
		return m.cart.prgRAM[addr-0x6000]
	default:
		return 0
	}
}

func (m *mapper2) WritePRG(addr uint16, value uint8) {
	switch {
	case addr >= 0x8000:
		m.selectBank = int(value&0x0F) % m.prgBanks
	case addr >= 0x6000:
		m.cart.prgRAM[addr-0x6000] = value
	}
}

func (m *mapper2) ReadCHR(addr uint16) uint8 {
	if addr < 0x2000 {
		return m.cart.chrROM[addr]
	}
	return 0
}

func (m *mapper2) WriteCHR(addr uint16, value uint8) {
	// UxROM CHR is always RAM.
	if addr < 0x2000 {
		m.cart.chrROM[addr] = value
	}
}
