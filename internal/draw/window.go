package draw

import "io"

// Styler is the part of the terminal styling capability a Window needs:
// absolute cursor positioning and raw bytes. *ChunkWriter implements it.
type Styler interface {
	MoveCursor(col, row int)
	WriteByte(c byte) error
}

// Window maps a stream of bytes onto a fixed rectangle of the terminal.
// Each printable byte lands at (row+rowOffset, col+colOffset) and advances
// the column; reaching the width wraps to the next row, and the last row
// wraps back to the first. There is no scroll-back.
type Window struct {
	out        Styler
	row        int // 1-based terminal row of the top edge
	col        int // 1-based terminal column of the left edge
	width      int
	height     int
	background byte

	rowOffset int
	colOffset int
}

// NewWindow creates a window at (row, col) and clears it to background.
// Non-positive sizes are raised to 1.
func NewWindow(out Styler, row, col, width, height int, background byte) *Window {
	w := &Window{
		out:        out,
		row:        row,
		col:        col,
		width:      max(width, 1),
		height:     max(height, 1),
		background: background,
	}
	w.Clear()
	return w
}

// Write implements io.Writer. '\x00' is dropped, '\n' starts the next row,
// every other byte is drawn and advances the cursor. On error n counts the
// bytes written before the failing one.
func (w *Window) Write(p []byte) (n int, err error) {
	for i, c := range p {
		if err := w.WriteByte(c); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// WriteString writes s as Write does.
func (w *Window) WriteString(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if err := w.WriteByte(s[i]); err != nil {
			return i, err
		}
	}
	return len(s), nil
}

// WriteByte writes a single byte with the same rules as Write.
func (w *Window) WriteByte(c byte) error {
	switch c {
	case 0:
		return nil
	case '\n':
		w.newLine()
		return nil
	}

	w.out.MoveCursor(w.col+w.colOffset, w.row+w.rowOffset)
	if err := w.out.WriteByte(c); err != nil {
		return err
	}
	w.nextChar()
	return nil
}

// Clear fills every cell with the background byte and moves the write
// cursor back to the top-left corner.
func (w *Window) Clear() {
	for i := 0; i < w.height; i++ {
		w.out.MoveCursor(w.col, w.row+i)
		for j := 0; j < w.width; j++ {
			_ = w.out.WriteByte(w.background)
		}
	}
	w.rowOffset = 0
	w.colOffset = 0
}

// Cursor returns the current write offsets within the window.
func (w *Window) Cursor() (rowOffset, colOffset int) {
	return w.rowOffset, w.colOffset
}

// Width returns the window width in columns.
func (w *Window) Width() int { return w.width }

// Height returns the window height in rows.
func (w *Window) Height() int { return w.height }

// Origin returns the 1-based terminal row and column of the top-left cell.
func (w *Window) Origin() (row, col int) { return w.row, w.col }

func (w *Window) newLine() {
	w.rowOffset = (w.rowOffset + 1) % w.height
	w.colOffset = 0
}

func (w *Window) nextChar() {
	w.colOffset = (w.colOffset + 1) % w.width
	if w.colOffset == 0 {
		w.newLine()
	}
}

// Ensure Window satisfies io.Writer.
var _ io.Writer = (*Window)(nil)
