package machine

import "github.com/sekai-retro/neocore/hardware/video/lspc"

// ROMs carries the raw ROM images a loader supplies to New, named after
// the regions the collaborator contract in hardware/memory and
// hardware/video/lspc expect: the main program cartridge and its
// optional SMA scramble tables, the BIOS, and the sprite/fix-layer tile
// graphics. Sound CPU and sample ROMs are not listed here: they belong
// to the Z80/YM2610 backends, which are wired to a Machine as opaque
// collaborators, not as bus regions this package maps.
type ROMs struct {
	MainCPUCartridge []byte
	MainCPUBIOS      []byte

	// UnscrambleTable and BankOffsets are only set for SMA-protected
	// cartridges; when UnscrambleTable is empty, MainCPUCartridge is
	// wired through the plain bank-switching scheme.
	UnscrambleTable []byte
	BankOffsets     []uint32

	FixedLayerBoard []byte // board (BIOS) fix-layer tile ROM
	FixedLayerGame  []byte // cartridge fix-layer tile ROM
	Sprites         []byte // sprite tile ROM
}

// tileSheet is a flat byte image sliced into fixed-size tiles,
// implementing lspc.TileROM for whichever of the sprite (16x16, 128
// bytes/tile) or fix-layer (8x8, 32 bytes/tile) graphics it wraps.
type tileSheet struct {
	data     []byte
	tileSize int
}

func newTileSheet(data []byte, tileSize int) *tileSheet {
	return &tileSheet{data: data, tileSize: tileSize}
}

func (s *tileSheet) Tile(index int) []byte {
	off := index * s.tileSize
	if s == nil || off < 0 || off+s.tileSize > len(s.data) {
		return nil
	}
	return s.data[off : off+s.tileSize]
}

func (s *tileSheet) count() int {
	if s.tileSize == 0 {
		return 0
	}
	return len(s.data) / s.tileSize
}

const (
	spriteTileSize = 128 // 16x16 planar-4bpp
	fixTileSize    = 32  // 8x8 planar-4bpp
)

// buildSpriteSource precomputes tile visibility over the sprite sheet.
func buildSpriteSource(rom []byte) lspc.SpriteSource {
	sheet := newTileSheet(rom, spriteTileSize)
	return lspc.SpriteSource{ROM: sheet, Usage: lspc.PenUsage(sheet, sheet.count(), 16, 16)}
}

// buildFixSource precomputes tile visibility over both fix-layer sheets.
func buildFixSource(board, game []byte) lspc.FixSourceROMs {
	boardSheet := newTileSheet(board, fixTileSize)
	gameSheet := newTileSheet(game, fixTileSize)
	return lspc.FixSourceROMs{
		Board:    boardSheet,
		BoardUse: lspc.PenUsage(boardSheet, boardSheet.count(), 8, 8),
		Game:     gameSheet,
		GameUse:  lspc.PenUsage(gameSheet, gameSheet.count(), 8, 8),
	}
}
