// Package loop provides the raycaster render loop and state management.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/tomz197/raycaster/internal/draw"
	"github.com/tomz197/raycaster/internal/input"
	"github.com/tomz197/raycaster/internal/loop/config"
	"github.com/tomz197/raycaster/internal/world"
)

// Options configures a session.
type Options struct {
	Map          *world.Map        // Defaults to world.Default()
	TermSizeFunc draw.TermSizeFunc // Defaults to draw.DefaultTermSizeFunc
}

// Session runs the render loop for a single terminal.
type Session struct {
	state        *State
	decoder      *input.Decoder
	out          *draw.ChunkWriter
	screen       *screen
	frame        *draw.Frame
	log          *log.Logger // Writes into the debug panel
	termSizeFunc draw.TermSizeFunc
	fallbacks    int
}

// NewSession creates a session reading keys from r and drawing to w. The map
// is cloned so sessions never share a player.
func NewSession(r io.Reader, w io.Writer, opts Options) *Session {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	m := opts.Map
	if m == nil {
		m = world.Default()
	}

	out := draw.NewChunkWriter(w)
	scr := &screen{out: out}
	logger := log.NewWithOptions(panelWriter{screen: scr}, log.Options{
		Level: log.DebugLevel,
	})

	return &Session{
		state:        NewState(m.Clone(), logger),
		decoder:      input.NewDecoder(r),
		out:          out,
		screen:       scr,
		frame:        draw.NewFrame(config.ScreenWidth, config.ScreenHeight),
		log:          logger,
		termSizeFunc: termSizeFunc,
	}
}

// Decoder returns the session's input decoder, for injecting keys such as
// KeyResize from another goroutine.
func (s *Session) Decoder() *input.Decoder {
	return s.decoder
}

// State returns the session state.
func (s *Session) State() *State {
	return s.state
}

// Run draws a frame, waits for one key, applies it, and repeats until the quit
// key, the end of input, or ctx is done. Those all return nil; read and write
// failures are returned.
func (s *Session) Run(ctx context.Context) error {
	defer s.decoder.Close()
	s.out.HideCursor()
	s.layout()
	defer func() {
		s.out.ResetColor()
		s.out.ClearScreen()
		s.out.ShowCursor()
		_ = s.out.Flush()
	}()

	for s.state.Running() {
		if err := s.drawFrame(); err != nil {
			return fmt.Errorf("failed to draw frame: %w", err)
		}

		k, err := s.decoder.Get(ctx)
		if err != nil {
			if endOfSession(err) {
				s.state.Exit()
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if k == input.KeyResize {
			s.resize()
		}
		s.state.Dispatch(k)
	}
	return nil
}

// Run starts a session with the given options and blocks until it ends.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	return NewSession(r, w, opts).Run(ctx)
}

// layout sizes the backdrop from the terminal and rebuilds the windows.
func (s *Session) layout() (width, height int) {
	width, height, err := s.termSizeFunc()
	if err != nil || width <= 0 || height <= 0 {
		width, height = config.FallbackTermWidth, config.FallbackTermHeight
	}
	s.screen.layout(width, height, s.frame, s.state.Map)
	return width, height
}

// resize redraws the layout for the new terminal size.
func (s *Session) resize() {
	width, height := s.layout()
	s.log.Info("resize", "width", width, "height", height)
}

// drawFrame renders the view and overlay and flushes them to the terminal.
func (s *Session) drawFrame() error {
	n := RenderFrame(s.frame, s.state.Map, s.state.Player)
	if n > 0 && n != s.fallbacks {
		s.log.Debug("fallback tile", "columns", n)
	}
	s.fallbacks = n

	if err := s.screen.draw(s.frame, s.state.Map); err != nil {
		return err
	}
	return s.out.Flush()
}

func endOfSession(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
