package loop

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/tomz197/raycaster/internal/geom"
	"github.com/tomz197/raycaster/internal/input"
	"github.com/tomz197/raycaster/internal/loop/config"
	"github.com/tomz197/raycaster/internal/world"
)

// RunState represents the current phase of a session.
type RunState int

const (
	RunStateRunning RunState = iota // Reading keys and drawing frames
	RunStateExiting                 // Loop stops after the current cycle
)

func (s RunState) String() string {
	switch s {
	case RunStateRunning:
		return "running"
	case RunStateExiting:
		return "exiting"
	}
	return fmt.Sprintf("RunState(%d)", int(s))
}

// State holds the per-session game state. The player pose is owned here and
// shared with the map only for the overlay.
type State struct {
	RunState RunState
	Player   geom.Direction
	Map      *world.Map

	log *log.Logger
}

// NewState creates a running state with the player at the map's start pose.
// A nil logger discards messages.
func NewState(m *world.Map, logger *log.Logger) *State {
	s := &State{
		RunState: RunStateRunning,
		Player:   m.Start(),
		Map:      m,
		log:      logger,
	}
	m.Track(&s.Player)
	return s
}

// Running reports whether the loop should keep going.
func (s *State) Running() bool {
	return s.RunState == RunStateRunning
}

// Exit moves the state to Exiting.
func (s *State) Exit() {
	s.RunState = RunStateExiting
}

// Dispatch applies one key press. Movement is refused when the target cell is
// not empty; rotation always succeeds. Unrecognized keys are ignored.
func (s *State) Dispatch(k input.Key) {
	switch k {
	case config.KeyForward:
		s.move(config.MoveStep, 0)
	case config.KeyBack:
		s.move(-config.MoveStep, 0)
	case config.KeyRight:
		s.move(0, config.MoveStep)
	case config.KeyLeft:
		s.move(0, -config.MoveStep)
	case config.KeyTurnLeft:
		s.Player.Angle -= config.RotationStep
	case config.KeyTurnRight:
		s.Player.Angle += config.RotationStep
	case config.KeyReport:
		s.logf("Player: %g,%g", s.Player.X, s.Player.Y)
	case config.KeyQuit:
		s.Exit()
	}
}

// move commits the step only if it lands on an empty tile.
func (s *State) move(dx, dy float64) {
	next := geom.Point{X: s.Player.X + dx, Y: s.Player.Y + dy}
	if tile := s.Map.Tile(next); !tile.IsEmpty() {
		s.debug("blocked", "at", next, "tile", string(rune(tile)))
		return
	}
	s.Player.Point = next
}

func (s *State) logf(format string, args ...any) {
	if s.log != nil {
		s.log.Infof(format, args...)
	}
}

func (s *State) debug(msg string, keyvals ...any) {
	if s.log != nil {
		s.log.Debug(msg, keyvals...)
	}
}
