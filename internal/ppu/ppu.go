// Package ppu implements the Picture Processing Unit (2C02): register
// semantics, VRAM/palette access, scroll/address latches, a whole-frame
// background+sprite renderer, sprite-0 hit, VBlank/NMI, and OAM DMA.
package ppu

// MirrorMode mirrors cartridge.MirrorMode without importing the cartridge
// package (the PPU only needs to know how to fold nametable addresses).
type MirrorMode uint8

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorFourScreen
)

// CHR is the pattern-table accessor the cartridge provides to the PPU.
type CHR interface {
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, value uint8)
}

const (
	ctrlNMIEnable      uint8 = 1 << 7
	ctrlSpriteHeight16 uint8 = 1 << 5
	ctrlBGTable        uint8 = 1 << 4
	ctrlSpriteTable    uint8 = 1 << 3
	ctrlIncrement32    uint8 = 1 << 2
	ctrlNametableMask  uint8 = 0x03

	maskGreyscale    uint8 = 1 << 0
	maskShowBGLeft   uint8 = 1 << 1
	maskShowSprLeft  uint8 = 1 << 2
	maskShowBG       uint8 = 1 << 3
	maskShowSprites  uint8 = 1 << 4

	statusSpriteOverflow uint8 = 1 << 5
	statusSprite0Hit     uint8 = 1 << 6
	statusVBlank         uint8 = 1 << 7
)

// PPU holds all register and memory state described by spec.md §3/§4.3.
type PPU struct {
	ctrl   uint8
	mask   uint8
	status uint8

	oamAddr uint8
	oam     [256]uint8

	scrollX, scrollY uint8
	scrollLatch      bool // shared write-toggle for $2005

	vramAddr  uint16 // 14-bit current VRAM address
	addrLatch bool   // separate write-toggle for $2006
	addrHi    uint8

	readBuffer uint8

	nametables [2048]uint8
	palette    [32]uint8

	chr    CHR
	mirror MirrorMode

	scanline int // 0..261 (261 is pre-render in this encoding)
	dot      int // 0..340
	oddFrame bool

	frame       [256 * 240]uint8
	nmiPending  bool
	ignoreNMI   bool
	justWrapped bool
}

// New creates a PPU with no cartridge attached; call SetCHR before Step.
func New() *PPU {
	p := &PPU{}
	p.Reset()
	return p
}

// Reset restores power-on register/timing state.
func (p *PPU) Reset() {
	p.ctrl, p.mask, p.status = 0, 0, 0
	p.oamAddr = 0
	p.scrollX, p.scrollY = 0, 0
	p.scrollLatch = false
	p.vramAddr, p.addrLatch, p.addrHi = 0, false, 0
	p.readBuffer = 0
	p.scanline, p.dot = 0, 0
	p.oddFrame = false
	p.nmiPending = false
	p.ignoreNMI = false
	for i := range p.palette {
		p.palette[i] = 0
	}
}

// SetCHR attaches the cartridge's CHR accessor and mirroring mode.
func (p *PPU) SetCHR(chr CHR, mirror MirrorMode) {
	p.chr = chr
	p.mirror = mirror
}

// NMI reports and clears the latched NMI request (polled once per console
// step per spec.md §4.3 "Emits").
func (p *PPU) NMI() bool {
	v := p.nmiPending
	p.nmiPending = false
	return v
}

// FrameBuffer returns the current palette-index framebuffer.
func (p *PPU) FrameBuffer() *[256 * 240]uint8 { return &p.frame }

// WriteOAM writes a single OAM byte at an absolute index, ignoring OAMADDR
// (OAM DMA goes through DMAWrite instead).
func (p *PPU) WriteOAM(index uint8, value uint8) { p.oam[index] = value }

// DMAWrite writes the offset-th byte of an OAM DMA transfer, starting at
// and wrapping around the current OAMADDR per spec.md §4.3 "OAM DMA": the
// index wraps at 8 bits, so 256 writes land back on the starting
// address without the caller needing to track the wraparound itself.
func (p *PPU) DMAWrite(offset uint8, value uint8) { p.oam[p.oamAddr+offset] = value }

// renderingEnabled reports whether background or sprite rendering is on.
func (p *PPU) renderingEnabled() bool {
	return p.mask&(maskShowBG|maskShowSprites) != 0
}

// Step advances the PPU by n dots (n = 3 * cpu cycles elapsed) and returns
// whether a frame boundary (wrap from scanline 261 to 0) was crossed.
func (p *PPU) Step(dots int) bool {
	crossedFrame := false
	for i := 0; i < dots; i++ {
		p.tick()
		if p.justWrapped {
			crossedFrame = true
			p.justWrapped = false
		}
	}
	return crossedFrame
}
