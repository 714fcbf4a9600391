package loop

import (
	"math"
	"strings"
	"testing"

	"github.com/tomz197/raycaster/internal/draw"
	"github.com/tomz197/raycaster/internal/geom"
	"github.com/tomz197/raycaster/internal/loop/config"
	"github.com/tomz197/raycaster/internal/world"
)

func near(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestViewPlane(t *testing.T) {
	plane := ViewPlane(geom.Direction{Point: geom.Point{X: 5, Y: 5}})
	if !near(plane.A, geom.Point{X: 65, Y: 35}) || !near(plane.B, geom.Point{X: 65, Y: -25}) {
		t.Errorf("view plane = %v, expected [(65,35),(65,-25)]", plane)
	}

	// Facing +y on screen (angle pi/2) moves the vanishing point to y-60.
	plane = ViewPlane(geom.Direction{Point: geom.Point{X: 5, Y: 5}, Angle: math.Pi / 2})
	mid := geom.Point{X: (plane.A.X + plane.B.X) / 2, Y: (plane.A.Y + plane.B.Y) / 2}
	if math.Abs(mid.X-5) > 1e-9 || math.Abs(mid.Y+55) > 1e-9 {
		t.Errorf("view plane midpoint = %v, expected (5,-55)", mid)
	}
}

func TestColumnHeight(t *testing.T) {
	tests := []struct {
		dist     float64
		expected int
	}{
		{6, 5},
		{6.5, 4},
		{1, 15},
		{2, 15},
		{3, 10},
		{31, 0},
		{0, 15},
	}
	for _, tc := range tests {
		if got := ColumnHeight(tc.dist, 30); got != tc.expected {
			t.Errorf("ColumnHeight(%v, 30) = %d, expected %d", tc.dist, got, tc.expected)
		}
	}
}

func TestCastEastWall(t *testing.T) {
	m := world.Default()
	from := geom.Point{X: 5, Y: 5}

	hit, ok := Cast(m, from, geom.Point{X: 65, Y: 5})
	if !ok {
		t.Fatal("expected a hit")
	}
	if !near(hit.Point, geom.Point{X: 11, Y: 5}) {
		t.Errorf("hit at %v, expected (11,5)", hit.Point)
	}
	if hit.Tile != '|' {
		t.Errorf("tile = %q, expected '|'", byte(hit.Tile))
	}
	if math.Abs(hit.Distance-6) > 1e-9 {
		t.Errorf("distance = %v, expected 6", hit.Distance)
	}
	if h := ColumnHeight(hit.Distance, config.ScreenHeight); h != 5 {
		t.Errorf("height = %d, expected 5", h)
	}

	if _, ok := Cast(m, from, geom.Point{X: -55, Y: 5}); ok {
		t.Error("hit behind the player")
	}
}

func TestCastNearestWall(t *testing.T) {
	rows := []string{"     ", "     ", "     ", "     ", "     "}
	walls := []geom.Line{
		{A: geom.Point{X: 4, Y: -10}, B: geom.Point{X: 4, Y: 10}},
		{A: geom.Point{X: 3, Y: -10}, B: geom.Point{X: 3, Y: 10}},
	}
	m, err := world.New("two walls", rows, walls, geom.Direction{Point: geom.Point{X: 1, Y: 2}})
	if err != nil {
		t.Fatal(err)
	}

	hit, ok := Cast(m, geom.Point{X: 1, Y: 2}, geom.Point{X: 10, Y: 2})
	if !ok {
		t.Fatal("expected a hit")
	}
	if !near(hit.Point, geom.Point{X: 3, Y: 2}) {
		t.Errorf("hit at %v, expected the nearer wall at (3,2)", hit.Point)
	}
	if !hit.Tile.IsEmpty() {
		t.Errorf("tile = %q, expected empty", byte(hit.Tile))
	}
}

func TestRenderFrameDefaultMap(t *testing.T) {
	m := world.Default()
	player := m.Start()
	f := draw.NewFrame(config.ScreenWidth, config.ScreenHeight)

	if n := RenderFrame(f, m, player); n != 0 {
		t.Errorf("fallback columns = %d, expected 0", n)
	}

	mid := f.Height() / 2
	seen := map[byte]bool{}
	plane := geom.NewSlice(ViewPlane(player), f.Width())
	for col, target := range plane.All() {
		hit, ok := Cast(m, player.Point, target)
		if !ok {
			t.Fatalf("column %d: no hit", col)
		}
		height := ColumnHeight(hit.Distance, f.Height())
		if height < 4 || height > 5 {
			t.Errorf("column %d: height %d at distance %v", col, height, hit.Distance)
		}
		for row := 0; row < f.Height(); row++ {
			got := f.At(col, row)
			filled := row > mid-height && row <= mid
			switch {
			case filled && got != byte(hit.Tile):
				t.Errorf("cell %d,%d = %q, expected %q", col, row, got, byte(hit.Tile))
			case !filled && got != ' ':
				t.Errorf("cell %d,%d = %q, expected blank", col, row, got)
			}
		}
		seen[byte(hit.Tile)] = true
	}

	// The east wall spans rows 2..8 of the map.
	for _, ch := range []byte{'#', '|', 'B', 'A', '/'} {
		if !seen[ch] {
			t.Errorf("tile %q never drawn", ch)
		}
	}
}

func TestRenderFrameNoHits(t *testing.T) {
	m := world.Default()
	f := draw.NewFrame(config.ScreenWidth, config.ScreenHeight)
	f.Clear('?')

	RenderFrame(f, m, geom.Direction{Point: geom.Point{X: 5, Y: 5}, Angle: math.Pi})

	if strings.Trim(f.String(), " \n") != "" {
		t.Error("facing away from every wall should leave the frame blank")
	}
}

func TestRenderFrameFallbackTile(t *testing.T) {
	rows := []string{"     ", "     ", "     ", "     ", "     "}
	walls := []geom.Line{{A: geom.Point{X: 3, Y: -100}, B: geom.Point{X: 3, Y: 100}}}
	start := geom.Direction{Point: geom.Point{X: 1, Y: 2}}
	m, err := world.New("open", rows, walls, start)
	if err != nil {
		t.Fatal(err)
	}

	f := draw.NewFrame(20, 10)
	if n := RenderFrame(f, m, start); n != f.Width() {
		t.Errorf("fallback columns = %d, expected %d", n, f.Width())
	}
	for col := 0; col < f.Width(); col++ {
		if got := f.At(col, f.Height()/2); got != config.FallbackTile {
			t.Errorf("column %d mid = %q, expected %q", col, got, config.FallbackTile)
		}
	}
}
