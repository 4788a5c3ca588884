package ppu

// tick advances one PPU dot per spec.md §4.3 Timing: 262 scanlines (0..261)
// of 341 dots each, VBlank set/NMI raised entering scanline 241, wrap at
// 262 clearing VBlank and sprite-0, with the odd-frame dot skip when
// rendering is enabled.
func (p *PPU) tick() {
	if p.scanline == 261 && p.dot == 339 && p.oddFrame && p.renderingEnabled() {
		// Skip dot 340 on odd frames: jump straight to the wrap.
		p.dot = 340
	}

	p.dot++
	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline == 241 {
			p.status |= statusVBlank
			p.renderFrame()
			if p.ctrl&ctrlNMIEnable != 0 && !p.ignoreNMI {
				p.nmiPending = true
			}
			p.ignoreNMI = false
		}
		if p.scanline > 261 {
			p.scanline = 0
			p.status &^= statusVBlank
			p.status &^= statusSprite0Hit
			p.status &^= statusSpriteOverflow
			p.oddFrame = !p.oddFrame
			p.justWrapped = true
		}
	}
}
