package grid

// TileType tags what occupies a grid cell.
type TileType string

const (
	Empty  TileType = "empty"
	Wall   TileType = "wall"
	Weight TileType = "weight"
	Start  TileType = "start"
	Goal   TileType = "goal"
)

// Passable reports whether an agent may occupy a tile of this type.
func (t TileType) Passable() bool {
	return t != Wall
}

// Tile is a single cell. Cost is the movement cost of entering the cell.
//
// Visited, Distance and Parent are pathfinding scratch owned by pkg/path;
// they are reset between searches and never read during script execution.
type Tile struct {
	Type TileType
	Cost int

	Visited  bool
	Distance int
	Parent   *Position
}

// NewTile returns a tile of the given type with the default cost of 1.
func NewTile(t TileType) Tile {
	return Tile{Type: t, Cost: 1, Distance: Unreached}
}

// Unreached is the Distance sentinel for tiles no search has touched.
const Unreached = int(^uint(0) >> 1)

// ResetPathfinding clears search scratch before a new search.
func (t *Tile) ResetPathfinding() {
	t.Visited = false
	t.Distance = Unreached
	t.Parent = nil
}
