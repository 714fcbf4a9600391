// Package world holds the tile map the raycaster walks through.
package world

import (
	"fmt"
	"io"
	"strings"

	"github.com/tomz197/raycaster/internal/geom"
)

// Tile is a single map cell. Any non-zero tile is a wall and its value is
// also the character drawn for it.
type Tile byte

// Empty is returned for open cells and for reads outside the grid.
const Empty Tile = 0

// Open is the character that marks an open cell in map text.
const Open = ' '

// PlayerMarker overwrites the player's cell when the map is rendered.
const PlayerMarker = 'P'

// IsEmpty reports whether the tile is open.
func (t Tile) IsEmpty() bool {
	return t == Empty
}

// Map is a fixed-size grid of tiles plus the wall segments rays are tested
// against. The grid is never modified after construction.
type Map struct {
	name   string
	width  int
	height int
	tiles  []byte // Flat slice: [row * width + col]
	walls  []geom.Line
	start  geom.Direction

	// player is only read when rendering the overlay.
	player *geom.Direction
}

// New creates a map from equally long rows of printable ASCII. walls are the
// segments used for ray intersection and start is the initial player pose.
func New(name string, rows []string, walls []geom.Line, start geom.Direction) (*Map, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("map %q has no rows", name)
	}
	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("map %q has an empty first row", name)
	}

	tiles := make([]byte, 0, width*len(rows))
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("map %q row %d is %d wide, expected %d", name, i, len(row), width)
		}
		if strings.IndexByte(row, PlayerMarker) >= 0 {
			return nil, fmt.Errorf("map %q row %d uses the reserved player marker %q", name, i, PlayerMarker)
		}
		for j := 0; j < len(row); j++ {
			if c := row[j]; c < 0x20 || c >= 0x7f {
				return nil, fmt.Errorf("map %q row %d column %d has non-printable byte %#02x", name, i, j, c)
			}
		}
		tiles = append(tiles, row...)
	}

	m := &Map{
		name:   name,
		width:  width,
		height: len(rows),
		tiles:  tiles,
		walls:  append([]geom.Line(nil), walls...),
		start:  start,
	}

	if len(m.walls) == 0 {
		return nil, fmt.Errorf("map %q has no wall segments", name)
	}
	col, row := geom.Round(start.Point)
	if !m.InBounds(col, row) {
		return nil, fmt.Errorf("map %q start %v is outside the grid", name, start.Point)
	}
	if !m.Tile(start.Point).IsEmpty() {
		return nil, fmt.Errorf("map %q start %v is inside a wall", name, start.Point)
	}
	return m, nil
}

// Name returns the map name.
func (m *Map) Name() string { return m.name }

// Width returns the number of columns.
func (m *Map) Width() int { return m.width }

// Height returns the number of rows.
func (m *Map) Height() int { return m.height }

// Walls returns the wall segments.
func (m *Map) Walls() []geom.Line { return m.walls }

// Start returns the initial player pose.
func (m *Map) Start() geom.Direction { return m.start }

// Clone returns a map sharing the immutable grid and walls but tracking no
// player, so each session can track its own pose.
func (m *Map) Clone() *Map {
	c := *m
	c.player = nil
	return &c
}

// Track sets the pose drawn as the player marker.
func (m *Map) Track(player *geom.Direction) {
	m.player = player
}

// InBounds reports whether (col, row) is within the grid.
func (m *Map) InBounds(col, row int) bool {
	return col >= 0 && col < m.width && row >= 0 && row < m.height
}

// Tile rounds p to the nearest cell and returns its tile. Open cells and
// cells outside the grid are Empty.
func (m *Map) Tile(p geom.Point) Tile {
	if !p.Valid() {
		return Empty
	}
	col, row := geom.Round(p)
	if !m.InBounds(col, row) {
		return Empty
	}
	ch := m.tiles[row*m.width+col]
	if ch == Open {
		return Empty
	}
	return Tile(ch)
}

// Overlay returns the grid as one flat row-major block with the player
// marker applied. It is sized so a window exactly as wide as the map wraps
// it into rows on its own.
func (m *Map) Overlay() []byte {
	out := make([]byte, len(m.tiles))
	copy(out, m.tiles)
	if m.player != nil {
		col, row := geom.Round(m.player.Point)
		if m.InBounds(col, row) {
			out[row*m.width+col] = PlayerMarker
		}
	}
	return out
}

// String renders the grid one row per line with the player marker applied.
func (m *Map) String() string {
	var sb strings.Builder
	sb.Grow((m.width + 1) * m.height)
	overlay := m.Overlay()
	for row := 0; row < m.height; row++ {
		sb.Write(overlay[row*m.width : (row+1)*m.width])
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteTo writes String() to w.
func (m *Map) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, m.String())
	return int64(n), err
}

// FindMarker locates the player marker in text produced by String.
func FindMarker(text string) (col, row int, ok bool) {
	for r, line := range strings.Split(text, "\n") {
		if c := strings.IndexByte(line, PlayerMarker); c >= 0 {
			return c, r, true
		}
	}
	return 0, 0, false
}
