package ppu

// nametableIndex folds a 0x2000-0x3EFF PPU address onto the 2 KiB of
// physical VRAM per spec.md §4.3 Nametable mirroring.
func (p *PPU) nametableIndex(addr uint16) uint16 {
	idx := (addr & 0x2FFF) - 0x2000
	table := idx / 0x400
	offset := idx % 0x400
	switch p.mirror {
	case MirrorHorizontal:
		// Tables 1,3 collapse onto 0,2.
		if table == 1 {
			table = 0
		} else if table == 3 {
			table = 2
		}
	case MirrorVertical:
		// Tables 2,3 collapse onto 0,1.
		if table == 2 {
			table = 0
		} else if table == 3 {
			table = 1
		}
	case MirrorFourScreen:
		// All four tables are distinct; with only 2 KiB of physical VRAM
		// this design mirrors 2,3 onto 0,1 same as vertical (four-screen
		// cartridges are expected to carry their own extra VRAM, which is
		// out of scope per spec.md mapper support).
		if table == 2 {
			table = 0
		} else if table == 3 {
			table = 1
		}
	}
	// Horizontal/Vertical both use 2 of the 4 logical slots; fold further
	// into the physical 2 KiB (vertical 0/1, horizontal 0/2 -> 0x000/0x400).
	physicalTable := table % 2
	if p.mirror == MirrorHorizontal {
		physicalTable = table / 2
	}
	return physicalTable*0x400 + offset
}

func (p *PPU) readNametableMirror(addr uint16) uint8 {
	return p.nametables[p.nametableIndex(addr)]
}

func (p *PPU) writeNametableMirror(addr uint16, value uint8) {
	p.nametables[p.nametableIndex(addr)] = value
}

// paletteIndex folds a 0x3F00-0x3FFF address into the 32-byte palette
// table, applying the background-color aliasing quirk from spec.md §3:
// $3F10/14/18/1C alias $3F00/04/08/0C.
func paletteIndex(addr uint16) uint16 {
	idx := (addr - 0x3F00) % 32
	if idx%4 == 0 {
		idx &^= 0x10
	}
	return idx
}

func (p *PPU) readPalette(addr uint16) uint8 {
	return p.palette[paletteIndex(addr)]
}

func (p *PPU) writePalette(addr uint16, value uint8) {
	p.palette[paletteIndex(addr)] = value
}
