package draw

import (
	"io"
	"strings"
)

// Frame is a full-screen character buffer. The render pass fills it column
// by column and it is then written to a Window in one call.
type Frame struct {
	width  int
	height int
	cells  []byte // Flat slice: [row * width + col]
}

// NewFrame creates a frame of width x height cells filled with spaces.
func NewFrame(width, height int) *Frame {
	f := &Frame{
		width:  max(width, 0),
		height: max(height, 0),
	}
	f.cells = make([]byte, f.width*f.height)
	f.Clear(' ')
	return f
}

// Width returns the frame width.
func (f *Frame) Width() int { return f.width }

// Height returns the frame height.
func (f *Frame) Height() int { return f.height }

// Clear overwrites every cell with fill.
func (f *Frame) Clear(fill byte) {
	for i := range f.cells {
		f.cells[i] = fill
	}
}

// Set writes ch at (col, row). Out-of-range cells are ignored.
func (f *Frame) Set(col, row int, ch byte) {
	if col >= 0 && col < f.width && row >= 0 && row < f.height {
		f.cells[row*f.width+col] = ch
	}
}

// At returns the cell at (col, row), or 0 when out of range.
func (f *Frame) At(col, row int) byte {
	if col >= 0 && col < f.width && row >= 0 && row < f.height {
		return f.cells[row*f.width+col]
	}
	return 0
}

// FillColumn writes ch into rows top..bottom (inclusive) of column col.
func (f *Frame) FillColumn(col, top, bottom int, ch byte) {
	if top > bottom {
		top, bottom = bottom, top
	}
	for row := max(top, 0); row <= bottom && row < f.height; row++ {
		f.Set(col, row, ch)
	}
}

// Bytes returns the backing cells. The slice is reused by the next frame.
func (f *Frame) Bytes() []byte {
	return f.cells
}

// Render writes the whole frame to w in a single Write.
func (f *Frame) Render(w io.Writer) error {
	_, err := w.Write(f.cells)
	return err
}

// String returns the frame one row per line.
func (f *Frame) String() string {
	var sb strings.Builder
	sb.Grow((f.width + 1) * f.height)
	for row := 0; row < f.height; row++ {
		sb.Write(f.cells[row*f.width : (row+1)*f.width])
		sb.WriteByte('\n')
	}
	return sb.String()
}
