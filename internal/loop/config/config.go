// Package config centralizes all tunable raycaster parameters.
package config

import (
	"math"

	"github.com/charmbracelet/x/ansi"
)

// Movement
const (
	MoveStep     = 0.25         // Map units per key press
	RotationStep = math.Pi / 30 // Radians per key press
)

// Projection
const (
	ProjectionDistance = 60.0 // Distance from the player to the view plane
	ScreenWidth        = 158  // Viewport columns, one ray each
	ScreenHeight       = 30   // Viewport rows
)

// FallbackTile is drawn when a ray hits a wall segment over an open cell.
const FallbackTile = 'X'

// Background bytes for the panels.
const (
	BackdropFill = '.'
	PanelFill    = ' '
)

// BackdropColor dims the backdrop so the panels stand out.
const BackdropColor = ansi.BrightBlack

// Window placements as (row, col, width, height), 1-based.
const (
	ViewportRow = 2
	ViewportCol = 2

	MapRow = 33
	MapCol = 140

	DebugRow    = 33
	DebugCol    = 2
	DebugWidth  = 120
	DebugHeight = 12
)

// Backdrop size used when the terminal size cannot be read.
const (
	FallbackTermWidth  = 200
	FallbackTermHeight = 50
)

// Key bindings.
const (
	KeyForward   = 'w'
	KeyBack      = 's'
	KeyRight     = 'd'
	KeyLeft      = 'a'
	KeyTurnLeft  = 'q'
	KeyTurnRight = 'e'
	KeyReport    = 'p'
	KeyQuit      = 0x03 // Ctrl-C
)
