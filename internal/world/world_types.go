package world

// TileType is the closed set of tile behaviours the engine understands.
// Map symbols are classified into a TileType once, so no other package needs to
// compare raw characters.
type TileType int

const (
	TileUnknown  TileType = iota // Unrecognized symbol - passable
	TileEmpty                    // Walkable empty space
	TileWall                     // Solid opaque wall, several symbol variants
	TileDoor                     // Blocking, but usable
	TileGoal                     // Level exit - walking onto it wins
	TileSpawn                    // Player starting cell
	TileScreamer                 // Screamer trigger cell
)

// Canonical map symbols.
const (
	SymbolEmpty    = ' '
	SymbolFloor    = '.'
	SymbolWall     = '#'
	SymbolDoor     = 'D'
	SymbolGoal     = 'g'
	SymbolSpawn    = 'P'
	SymbolScreamer = 's'
)

// symbolTypes maps every recognized symbol to its tile type.
var symbolTypes = map[rune]TileType{
	SymbolEmpty:    TileEmpty,
	SymbolFloor:    TileEmpty,
	SymbolWall:     TileWall,
	'1':            TileWall,
	'2':            TileWall,
	'3':            TileWall,
	'+':            TileWall,
	'-':            TileWall,
	'|':            TileWall,
	SymbolDoor:     TileDoor,
	SymbolGoal:     TileGoal,
	'G':            TileGoal,
	SymbolSpawn:    TileSpawn,
	SymbolScreamer: TileScreamer,
	'S':            TileScreamer,
}

// Classify returns the tile type of a map symbol.
func Classify(symbol rune) TileType {
	if t, ok := symbolTypes[symbol]; ok {
		return t
	}
	return TileUnknown
}

// IsBlocking reports whether the tile stops movement and rays.
func (t TileType) IsBlocking() bool {
	return t == TileWall || t == TileDoor
}

// IsOpaque reports whether the tile blocks sight.
func (t TileType) IsOpaque() bool {
	return t.IsBlocking()
}

// IsUsable reports whether the player can interact with the tile.
func (t TileType) IsUsable() bool {
	return t == TileDoor
}

// IsTrigger reports whether the tile is a screamer trigger marker.
func (t TileType) IsTrigger() bool {
	return t == TileScreamer
}

// IsGoal reports whether the tile is a win marker.
func (t TileType) IsGoal() bool {
	return t == TileGoal
}

func (t TileType) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileWall:
		return "wall"
	case TileDoor:
		return "door"
	case TileGoal:
		return "goal"
	case TileSpawn:
		return "spawn"
	case TileScreamer:
		return "screamer"
	default:
		return "unknown"
	}
}
