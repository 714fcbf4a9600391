package draw

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// maxChunkSize is the maximum bytes to write at once. It stays under a typical
// 1500 byte MTU so SSH frames are not split.
const maxChunkSize = 1400

// Color is a basic ANSI colour used by SetColor.
type Color = ansi.BasicColor

// Mode is a text attribute used by SetMode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeBold
	ModeUnderline
	ModeBlink
	ModeReverse
	ModeConceal
)

// ChunkWriter accumulates text for terminal output and writes in chunks for optimal
// network flow (e.g. over SSH). It is the terminal styling capability: windows
// position output through MoveCursor, and the remaining directives (colour, text
// mode, erase, cursor visibility, scroll region) are emitted with x/ansi.
// Nothing reaches the underlying writer until Flush.
type ChunkWriter struct {
	buf  strings.Builder
	bufw *bufio.Writer // Buffers writes to underlying writer for fewer syscalls

	// Terminal cursor position after the last directive or byte, when known.
	// Lets MoveCursor skip sequences that would not move the cursor.
	tracked bool
	col     int
	row     int
}

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer) *ChunkWriter {
	return &ChunkWriter{bufw: bufio.NewWriterSize(w, 8192)}
}

// MoveCursor appends an ANSI cursor position sequence. col and row are
// 1-based terminal coordinates.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	if cw.tracked && cw.col == col && cw.row == row {
		return
	}
	cw.buf.WriteString(ansi.CursorPosition(col, row))
	cw.tracked = true
	cw.col = col
	cw.row = row
}

// Write implements io.Writer. The content is opaque, so the cursor position
// is forgotten.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	cw.tracked = false
	return cw.buf.Write(p)
}

// WriteString appends a string to the buffer.
func (cw *ChunkWriter) WriteString(s string) {
	cw.tracked = false
	cw.buf.WriteString(s)
}

// WriteAt writes a string at a specific position. col and row are 1-based.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.WriteString(s)
}

// WriteByte appends one printable byte and advances the tracked cursor.
func (cw *ChunkWriter) WriteByte(c byte) error {
	if c < 0x20 || c == 0x7f {
		cw.tracked = false
	} else {
		cw.col++
	}
	return cw.buf.WriteByte(c)
}

// Len returns the number of buffered bytes.
func (cw *ChunkWriter) Len() int {
	return cw.buf.Len()
}

// Ensure ChunkWriter satisfies io.Writer.
var _ io.Writer = (*ChunkWriter)(nil)

// Flush writes the accumulated buffer to the underlying writer in chunks,
// then resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.bufw.Flush()
}

// SetColor sets the foreground colour.
func (cw *ChunkWriter) SetColor(c Color) {
	cw.buf.WriteString(ansi.Style{}.ForegroundColor(c).String())
}

// SetBackground sets the background colour.
func (cw *ChunkWriter) SetBackground(c Color) {
	cw.buf.WriteString(ansi.Style{}.BackgroundColor(c).String())
}

// SetRGB sets a 24-bit foreground colour.
func (cw *ChunkWriter) SetRGB(r, g, b uint8) {
	cw.buf.WriteString(ansi.Style{}.ForegroundColor(ansi.RGBColor{R: r, G: g, B: b}).String())
}

// ResetColor restores the default foreground and background.
func (cw *ChunkWriter) ResetColor() {
	cw.buf.WriteString(ansi.Style{}.DefaultForegroundColor().DefaultBackgroundColor().String())
}

// SetMode sets a text attribute. ModeNormal resets all attributes.
func (cw *ChunkWriter) SetMode(m Mode) {
	var s ansi.Style
	switch m {
	case ModeBold:
		s = s.Bold()
	case ModeUnderline:
		s = s.Underline()
	case ModeBlink:
		s = s.SlowBlink()
	case ModeReverse:
		s = s.Reverse()
	case ModeConceal:
		s = s.Conceal()
	default:
		cw.buf.WriteString(ansi.ResetStyle)
		return
	}
	cw.buf.WriteString(s.String())
}

// Erase erases n characters from the cursor without moving it.
func (cw *ChunkWriter) Erase(n int) {
	cw.buf.WriteString(ansi.EraseCharacter(n))
}

// EraseLine erases part of the current line: 0 cursor to end, 1 start to
// cursor, 2 the whole line.
func (cw *ChunkWriter) EraseLine(n int) {
	cw.buf.WriteString(ansi.EraseLine(n))
}

// HideCursor hides the terminal cursor.
func (cw *ChunkWriter) HideCursor() {
	cw.buf.WriteString(ansi.HideCursor)
}

// ShowCursor shows the terminal cursor.
func (cw *ChunkWriter) ShowCursor() {
	cw.buf.WriteString(ansi.ShowCursor)
}

// SaveCursor saves the cursor position.
func (cw *ChunkWriter) SaveCursor() {
	cw.buf.WriteString(ansi.SaveCurrentCursorPosition)
}

// RestoreCursor restores the cursor position saved by SaveCursor.
func (cw *ChunkWriter) RestoreCursor() {
	cw.tracked = false
	cw.buf.WriteString(ansi.RestoreCurrentCursorPosition)
}

// ScrollRegion limits scrolling to rows top..bottom (1-based, inclusive).
func (cw *ChunkWriter) ScrollRegion(top, bottom int) {
	cw.tracked = false
	cw.buf.WriteString(ansi.SetTopBottomMargins(top, bottom))
}

// ResetScrollRegion makes the whole screen scrollable again.
func (cw *ChunkWriter) ResetScrollRegion() {
	cw.tracked = false
	cw.buf.WriteString(ansi.SetTopBottomMargins(0, 0))
}

// ScrollUp scrolls the scroll region up by n lines.
func (cw *ChunkWriter) ScrollUp(n int) {
	cw.buf.WriteString(ansi.ScrollUp(n))
}

// ScrollDown scrolls the scroll region down by n lines.
func (cw *ChunkWriter) ScrollDown(n int) {
	cw.buf.WriteString(ansi.ScrollDown(n))
}

// ClearScreen clears the terminal and moves cursor to top-left.
func (cw *ChunkWriter) ClearScreen() {
	cw.tracked = false
	cw.buf.WriteString(ansi.CursorHomePosition + ansi.EraseEntireScreen)
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}
