package lspc

// Back-buffer dimensions and the visible window within it.
const (
	BackBufferWidth  = 352
	BackBufferHeight = 256

	VisibleX0 = 16
	VisibleY0 = 16
	VisibleX1 = 336
	VisibleY1 = 240
)

// SpriteSource supplies the 16x16 sprite tile graphics and their
// precomputed visibility.
type SpriteSource struct {
	ROM   TileROM
	Usage []Visibility
}

// FixSourceROMs supplies the two 8x8 fix-layer tile ROMs (board and
// cartridge) and their precomputed visibility.
type FixSourceROMs struct {
	Board     TileROM
	BoardUse  []Visibility
	Game      TileROM
	GameUse   []Visibility
}

// ComposeBand renders scanlines [startLine, endLine) of the current
// sprite and fix-layer state into buf, a BackBufferWidth-wide RGBA
// (packed ARGB8888) framebuffer. Vertical zoom is not modeled: each
// sprite tile row maps 1:1 to a scanline, which is exact whenever a
// sprite's vertical zoom table entry is identity (the overwhelmingly
// common case); only horizontal shrink is applied per pixel.
func (l *LSPC) ComposeBand(buf []uint32, startLine, endLine int, sprites SpriteSource, fix FixSourceROMs) {
	for line := startLine; line < endLine && line < BackBufferHeight; line++ {
		row := buf[line*BackBufferWidth : (line+1)*BackBufferWidth]
		l.renderSpriteLine(row, line, sprites)
		l.renderFixLine(row, line, fix)
	}
}

func (l *LSPC) renderSpriteLine(row []uint32, line int, src SpriteSource) {
	visible := l.VisibleSprites(line, line+1)
	for _, s := range visible {
		if src.Usage != nil {
			tile := l.ResolveAutoAnim(s) + (line-s.Y)/16
			if tile >= 0 && tile < len(src.Usage) && src.Usage[tile] == Invisible {
				continue
			}
		}
		l.renderSpriteTileRow(row, line, s, src)
	}
}

func (l *LSPC) renderSpriteTileRow(row []uint32, line int, s Sprite, src SpriteSource) {
	tileRow := (line - s.Y) % 16
	tileIndex := l.ResolveAutoAnim(s) + (line-s.Y)/16
	data := src.ROM.Tile(tileIndex)
	if data == nil {
		return
	}

	width := 16 - s.Shrink
	if width <= 0 {
		width = 1
	}

	for dx := 0; dx < width; dx++ {
		srcX := dx * 16 / width
		pen := decodePen(data, 16, 16, tileRow, srcX)
		if pen == 0 {
			continue
		}
		x := s.X + dx
		if x < 0 || x >= BackBufferWidth {
			continue
		}
		row[x] = l.pal.Host(0, s.PaletteSel*16+int(pen))
	}
}

func (l *LSPC) renderFixLine(row []uint32, line int, fix FixSourceROMs) {
	rom, usage := fix.Board, fix.BoardUse
	if l.CurrentFix == GameFix {
		rom, usage = fix.Game, fix.GameUse
	}
	if rom == nil {
		return
	}

	tileRow := line % 8
	cellRow := line / 8

	for col := 0; col < BackBufferWidth/8; col++ {
		entryAddr := FixLayerBase + uint32(cellRow*32+col)*2
		entry := l.vramReadWord(entryAddr)
		tileIndex := int(entry & 0xFFF)
		paletteSel := int(entry>>12) & 0xF

		if usage != nil && tileIndex < len(usage) && usage[tileIndex] == Invisible {
			continue
		}

		data := rom.Tile(tileIndex)
		if data == nil {
			continue
		}
		for c := 0; c < 8; c++ {
			pen := decodePen(data, 8, 8, tileRow, c)
			if pen == 0 {
				continue
			}
			x := col*8 + c
			if x >= BackBufferWidth {
				continue
			}
			row[x] = l.pal.Host(0, paletteSel*16+int(pen))
		}
	}
}
