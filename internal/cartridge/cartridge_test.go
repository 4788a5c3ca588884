package cartridge

import "testing"

func buildHeader(prgBanks, chrBanks, flags6, flags7 uint8) []uint8 {
	h := make([]uint8, 16)
	copy(h[0:4], []uint8{'N', 'E', 'S', 0x1A})
	h[4] = prgBanks
	h[5] = chrBanks
	h[6] = flags6
	h[7] = flags7
	return h
}

func TestLoadRejectsBadMagic(t *testing.T) {
	data := buildHeader(1, 1, 0, 0)
	data[0] = 'X'
	data = append(data, make([]uint8, 16384+8192)...)
	if _, err := Load(data); err != ErrInvalidROM {
		t.Fatalf("Load with bad magic = %v, want ErrInvalidROM", err)
	}
}

func TestLoadRejectsZeroPRG(t *testing.T) {
	data := append(buildHeader(0, 1, 0, 0), make([]uint8, 8192)...)
	if _, err := Load(data); err != ErrInvalidROM {
		t.Fatalf("Load with 0 PRG banks = %v, want ErrInvalidROM", err)
	}
}

func TestLoadRejectsNES20ReservedBits(t *testing.T) {
	data := append(buildHeader(1, 1, 0, 0x08), make([]uint8, 16384+8192)...)
	if _, err := Load(data); err != ErrInvalidROM {
		t.Fatalf("Load with Flags7 reserved bits set = %v, want ErrInvalidROM", err)
	}
}

func TestLoadMapper0Mirrors16KPRG(t *testing.T) {
	data := buildHeader(1, 1, 0, 0)
	prg := make([]uint8, 16384)
	prg[0] = 0xAA
	prg[16383] = 0xBB
	data = append(data, prg...)
	data = append(data, make([]uint8, 8192)...)

	cart, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cart.ReadPRG(0x8000); got != 0xAA {
		t.Fatalf("ReadPRG(0x8000) = %#02x, want 0xAA", got)
	}
	if got := cart.ReadPRG(0xC000); got != 0xAA {
		t.Fatalf("ReadPRG(0xC000) = %#02x, want 0xAA (16K PRG mirrors into upper half)", got)
	}
	if got := cart.ReadPRG(0xFFFF); got != 0xBB {
		t.Fatalf("ReadPRG(0xFFFF) = %#02x, want 0xBB", got)
	}
}

func TestLoadMapper0PRGRAM(t *testing.T) {
	data := buildHeader(1, 1, 0, 0)
	data = append(data, make([]uint8, 16384+8192)...)
	cart, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cart.WritePRG(0x6000, 0x77)
	if got := cart.ReadPRG(0x6000); got != 0x77 {
		t.Fatalf("PRG RAM round trip = %#02x, want 0x77", got)
	}
}

func TestLoadMapper0NoCHRMeansCHRRAM(t *testing.T) {
	data := buildHeader(1, 0, 0, 0)
	data = append(data, make([]uint8, 16384)...)
	cart, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cart.WriteCHR(0x0000, 0x42)
	if got := cart.ReadCHR(0x0000); got != 0x42 {
		t.Fatalf("CHR RAM round trip = %#02x, want 0x42", got)
	}
}

func TestMapper2BankSwitch(t *testing.T) {
	data := buildHeader(4, 0, 0x20, 0) // mapper 2 (flags6 high nibble = 2)
	prg := make([]uint8, 4*16384)
	prg[0*16384] = 0x01   // bank 0
	prg[1*16384] = 0x02   // bank 1
	prg[3*16384] = 0xFF   // last bank, fixed at 0xC000
	prg[3*16384+16383] = 0xEE
	data = append(data, prg...)

	cart, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cart.ReadPRG(0xC000); got != 0xFF {
		t.Fatalf("fixed last bank at 0xC000 = %#02x, want 0xFF", got)
	}
	if got := cart.ReadPRG(0xFFFF); got != 0xEE {
		t.Fatalf("fixed last bank at 0xFFFF = %#02x, want 0xEE", got)
	}
	if got := cart.ReadPRG(0x8000); got != 0x01 {
		t.Fatalf("switchable bank before select = %#02x, want 0x01 (bank 0)", got)
	}

	cart.WritePRG(0x8000, 1)
	if got := cart.ReadPRG(0x8000); got != 0x02 {
		t.Fatalf("switchable bank after select = %#02x, want 0x02 (bank 1)", got)
	}
	// The fixed bank must not move.
	if got := cart.ReadPRG(0xC000); got != 0xFF {
		t.Fatalf("fixed bank moved after switchable-bank select: got %#02x", got)
	}
}

func TestMirrorModeFromFlags6(t *testing.T) {
	cases := []struct {
		flags6 uint8
		want   MirrorMode
	}{
		{0x00, MirrorHorizontal},
		{0x01, MirrorVertical},
		{0x08, MirrorFourScreen},
	}
	for _, tc := range cases {
		data := buildHeader(1, 1, tc.flags6, 0)
		data = append(data, make([]uint8, 16384+8192)...)
		cart, err := Load(data)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cart.MirrorMode() != tc.want {
			t.Fatalf("flags6=%#02x: mirror = %v, want %v", tc.flags6, cart.MirrorMode(), tc.want)
		}
	}
}
