package loop

import (
	"math"

	"github.com/tomz197/raycaster/internal/draw"
	"github.com/tomz197/raycaster/internal/geom"
	"github.com/tomz197/raycaster/internal/loop/config"
	"github.com/tomz197/raycaster/internal/world"
)

// Hit is the nearest wall intersection for one column.
type Hit struct {
	Point    geom.Point
	Distance float64
	Tile     world.Tile
}

// ViewPlane returns the segment the rays are cast through: perpendicular to
// the sight line at the projection distance.
func ViewPlane(player geom.Direction) geom.Line {
	vanish := geom.Point{
		X: player.X + config.ProjectionDistance*math.Cos(player.Angle),
		Y: player.Y - config.ProjectionDistance*math.Sin(player.Angle),
	}
	return geom.Perpendicular(geom.Line{A: player.Point, B: vanish})
}

// Cast returns the nearest intersection of the ray from the player through
// target with any of the walls.
func Cast(m *world.Map, from, target geom.Point) (Hit, bool) {
	ray := geom.Line{A: from, B: target}

	var best Hit
	found := false
	for _, wall := range m.Walls() {
		p := geom.IntersectSegment(ray, wall)
		if !p.Valid() {
			continue
		}
		d := geom.Distance(from, p)
		if !found || d < best.Distance {
			best = Hit{Point: p, Distance: d}
			found = true
		}
	}
	if found {
		best.Tile = m.Tile(best.Point)
	}
	return best, found
}

// ColumnHeight converts a hit distance to the half-height of the wall column,
// capped at half the frame.
func ColumnHeight(dist float64, frameHeight int) int {
	half := frameHeight / 2
	if dist <= 0 {
		return half
	}
	h := float64(frameHeight) / dist
	if h >= float64(half) {
		return half
	}
	return int(h)
}

// RenderFrame blanks f and draws one column per view plane point. It returns
// the number of columns that fell back to the placeholder tile.
func RenderFrame(f *draw.Frame, m *world.Map, player geom.Direction) int {
	f.Clear(' ')
	mid := f.Height() / 2
	fallbacks := 0

	for col, target := range geom.NewSlice(ViewPlane(player), f.Width()).All() {
		hit, ok := Cast(m, player.Point, target)
		if !ok {
			continue
		}
		ch := byte(hit.Tile)
		if hit.Tile.IsEmpty() {
			ch = config.FallbackTile
			fallbacks++
		}
		height := ColumnHeight(hit.Distance, f.Height())
		if height == 0 {
			continue
		}
		f.FillColumn(col, mid-height+1, mid, ch)
	}
	return fallbacks
}
