package loop

import (
	"bytes"

	"github.com/tomz197/raycaster/internal/draw"
	"github.com/tomz197/raycaster/internal/loop/config"
	"github.com/tomz197/raycaster/internal/world"
)

// screen owns the windows of one terminal. All of them draw through the same
// ChunkWriter, so nothing reaches the terminal until it is flushed.
type screen struct {
	out      *draw.ChunkWriter
	backdrop *draw.Window
	viewport *draw.Window
	overlay  *draw.Window
	debug    *draw.Window
}

// layout clears the terminal and rebuilds every window. The backdrop covers
// the whole terminal and the panels are drawn on top of it.
func (s *screen) layout(termWidth, termHeight int, frame *draw.Frame, m *world.Map) {
	s.out.ClearScreen()
	s.out.SetColor(config.BackdropColor)
	s.backdrop = draw.NewWindow(s.out, 1, 1, termWidth, termHeight, config.BackdropFill)
	s.out.ResetColor()
	s.viewport = draw.NewWindow(s.out, config.ViewportRow, config.ViewportCol,
		frame.Width(), frame.Height(), config.PanelFill)
	s.overlay = draw.NewWindow(s.out, config.MapRow, config.MapCol,
		m.Width(), m.Height(), config.PanelFill)
	s.debug = draw.NewWindow(s.out, config.DebugRow, config.DebugCol,
		config.DebugWidth, config.DebugHeight, config.PanelFill)
}

// draw writes the frame to the viewport and the map overlay to its panel.
// Both are exactly window-sized, so the write cursor ends where it started.
// The player marker is drawn in reverse video.
func (s *screen) draw(frame *draw.Frame, m *world.Map) error {
	if err := frame.Render(s.viewport); err != nil {
		return err
	}
	for _, c := range m.Overlay() {
		if c != world.PlayerMarker {
			if err := s.overlay.WriteByte(c); err != nil {
				return err
			}
			continue
		}
		s.out.SetMode(draw.ModeReverse)
		err := s.overlay.WriteByte(c)
		s.out.SetMode(draw.ModeNormal)
		if err != nil {
			return err
		}
	}
	return nil
}

// panelWriter feeds log lines into the debug window, one row per line. The
// rest of each row is blanked so a wrapped panel does not show stale text.
type panelWriter struct {
	screen *screen
}

func (p panelWriter) Write(b []byte) (int, error) {
	win := p.screen.debug
	if win == nil {
		return len(b), nil
	}
	if _, err := win.Write(bytes.TrimRight(b, "\n")); err != nil {
		return 0, err
	}
	for _, col := win.Cursor(); col != 0; _, col = win.Cursor() {
		if err := win.WriteByte(' '); err != nil {
			return 0, err
		}
	}
	return len(b), nil
}
