package ppu

import "testing"

// stepToDot advances the PPU one dot at a time until it reaches the given
// (scanline, dot), used by tests that need to land on a specific VBlank
// timing edge (spec.md §8's VBlank race property).
func stepToDot(p *PPU, scanline, dot int) {
	for p.scanline != scanline || p.dot != dot {
		p.tick()
	}
}

func TestAddrDataRoundTripIsBufferDelayed(t *testing.T) {
	p := New()
	p.nametables[0] = 0x42 // lands at PPU addr 0x2000

	p.WriteRegister(6, 0x20) // high byte
	p.WriteRegister(6, 0x00) // low byte -> addr = 0x2000

	first := p.ReadRegister(7)
	if first != 0 {
		t.Fatalf("first $2007 read = %#02x, want 0 (stale buffer before any read)", first)
	}
	second := p.ReadRegister(7)
	if second != 0x42 {
		t.Fatalf("second $2007 read = %#02x, want 0x42 (buffer now holds the addr=0x2000 byte)", second)
	}
}

func TestPaletteMirrorLaw(t *testing.T) {
	pairs := [][2]uint16{{0x3F10, 0x3F00}, {0x3F14, 0x3F04}, {0x3F18, 0x3F08}, {0x3F1C, 0x3F0C}}
	for _, pr := range pairs {
		p := New()
		p.writePalette(pr[0], 0x17)
		if got := p.readPalette(pr[1]); got != 0x17 {
			t.Fatalf("write %#04x then read %#04x = %#02x, want 0x17", pr[0], pr[1], got)
		}
		p2 := New()
		p2.writePalette(pr[1], 0x2B)
		if got := p2.readPalette(pr[0]); got != 0x2B {
			t.Fatalf("write %#04x then read %#04x = %#02x, want 0x2B", pr[1], pr[0], got)
		}
	}
}

func TestNametableMirroringHorizontal(t *testing.T) {
	p := New()
	p.SetCHR(nil, MirrorHorizontal)
	p.writeNametableMirror(0x2000, 0x55)
	if got := p.readNametableMirror(0x2400); got != 0x55 {
		t.Fatalf("horizontal mirror: read(0x2400) = %#02x, want 0x55", got)
	}
}

func TestNametableMirroringVertical(t *testing.T) {
	p := New()
	p.SetCHR(nil, MirrorVertical)
	p.writeNametableMirror(0x2000, 0x66)
	if got := p.readNametableMirror(0x2800); got != 0x66 {
		t.Fatalf("vertical mirror: read(0x2800) = %#02x, want 0x66", got)
	}
}

func TestVBlankSetsStatusAndNMI(t *testing.T) {
	p := New()
	p.ctrl |= ctrlNMIEnable
	stepToDot(p, 241, 2) // past the status-read race window, checked separately below
	if p.status&statusVBlank == 0 {
		t.Fatal("VBlank bit should be set entering scanline 241")
	}
	if !p.NMI() {
		t.Fatal("NMI should be pending after VBlank entry with ctrl.NMI_enable set")
	}
}

func TestStatusReadClearsVBlankAndLatches(t *testing.T) {
	p := New()
	stepToDot(p, 241, 5)
	if p.status&statusVBlank == 0 {
		t.Fatal("expected VBlank set by scanline 241 dot 5")
	}
	p.scrollLatch = true
	p.addrLatch = true
	_ = p.ReadRegister(2)
	if p.status&statusVBlank != 0 {
		t.Fatal("reading $2002 should clear VBlank")
	}
	if p.scrollLatch || p.addrLatch {
		t.Fatal("reading $2002 should clear both write-toggle latches")
	}
}

// TestStatusReadRaceWindow covers spec.md §8 test 8's three named boundary
// dots (absolute dots 82180/82181/82182): a read one dot before the VBlank
// set edge sees it forced clear, while a read exactly on or one dot after
// the edge sees it forced set and suppresses this frame's NMI.
func TestStatusReadRaceWindow(t *testing.T) {
	cases := []struct {
		name          string
		scanline, dot int
		wantVBlank    bool
		wantIgnoreNMI bool
	}{
		{"dot82180_oneBeforeSetEdge", 240, 340, false, false},
		{"dot82181_onSetEdge", 241, 0, true, true},
		{"dot82182_oneAfterSetEdge", 241, 1, true, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := New()
			stepToDot(p, c.scanline, c.dot)
			got := p.ReadRegister(2)
			gotVBlank := got&statusVBlank != 0
			if gotVBlank != c.wantVBlank {
				t.Fatalf("scanline=%d dot=%d: status bit7 = %v, want %v", c.scanline, c.dot, gotVBlank, c.wantVBlank)
			}
			if p.ignoreNMI != c.wantIgnoreNMI {
				t.Fatalf("scanline=%d dot=%d: ignoreNMI = %v, want %v", c.scanline, c.dot, p.ignoreNMI, c.wantIgnoreNMI)
			}
		})
	}
}

func TestFrameWrapReturnsToScanlineZero(t *testing.T) {
	p := New()
	crossed := false
	for i := 0; i < 262*341; i++ {
		if p.Step(1) {
			crossed = true
		}
	}
	if !crossed {
		t.Fatal("Step never reported a frame boundary across a full 262x341 frame")
	}
	if p.scanline != 0 || p.dot != 0 {
		t.Fatalf("scanline/dot after one full frame = %d/%d, want 0/0", p.scanline, p.dot)
	}
}

func TestOAMDataAutoIncrementsAddr(t *testing.T) {
	p := New()
	p.WriteRegister(3, 0x10) // OAMADDR
	p.WriteRegister(4, 0xAB) // OAMDATA
	if p.oam[0x10] != 0xAB {
		t.Fatalf("oam[0x10] = %#02x, want 0xAB", p.oam[0x10])
	}
	if p.oamAddr != 0x11 {
		t.Fatalf("OAMADDR after write = %#02x, want 0x11", p.oamAddr)
	}
}

func TestDMAWriteWrapsFromCurrentOAMAddr(t *testing.T) {
	p := New()
	p.WriteRegister(3, 0xFE) // OAMADDR starts near the wrap point
	for i := 0; i < 256; i++ {
		p.DMAWrite(uint8(i), uint8(i))
	}
	if p.oam[0xFE] != 0 {
		t.Fatalf("oam[0xFE] = %d, want 0 (first byte written at the starting OAMADDR)", p.oam[0xFE])
	}
	if p.oam[0xFD] != 255 {
		t.Fatalf("oam[0xFD] = %d, want 255 (last byte wraps back to just before the start)", p.oam[0xFD])
	}
}
