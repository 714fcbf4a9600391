package draw

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// screen is a Styler that records which byte lands in which cell.
type screen struct {
	col, row int
	cells    map[[2]int]byte
	moves    int
	fail     error
	allow    int // Bytes accepted before fail applies
}

func newScreen() *screen {
	return &screen{cells: make(map[[2]int]byte)}
}

func (s *screen) MoveCursor(col, row int) {
	s.col, s.row = col, row
	s.moves++
}

func (s *screen) WriteByte(c byte) error {
	if s.fail != nil {
		if s.allow == 0 {
			return s.fail
		}
		s.allow--
	}
	s.cells[[2]int{s.row, s.col}] = c
	s.col++
	return nil
}

func (s *screen) at(row, col int) byte {
	return s.cells[[2]int{row, col}]
}

func TestWindowClear(t *testing.T) {
	s := newScreen()
	w := NewWindow(s, 3, 4, 5, 2, '.')

	if len(s.cells) != 10 {
		t.Fatalf("clear touched %d cells, expected 10", len(s.cells))
	}
	for row := 3; row < 5; row++ {
		for col := 4; col < 9; col++ {
			if got := s.at(row, col); got != '.' {
				t.Errorf("cell %d,%d = %q, expected '.'", row, col, got)
			}
		}
	}
	if s.moves != 2 {
		t.Errorf("clear addressed %d rows, expected 2", s.moves)
	}
	if r, c := w.Cursor(); r != 0 || c != 0 {
		t.Errorf("cursor after clear = %d,%d", r, c)
	}
}

func TestWindowWritePlacement(t *testing.T) {
	s := newScreen()
	w := NewWindow(s, 10, 20, 4, 3, ' ')

	if _, err := w.Write([]byte("abcdef")); err != nil {
		t.Fatal(err)
	}

	expected := map[[2]int]byte{
		{10, 20}: 'a', {10, 21}: 'b', {10, 22}: 'c', {10, 23}: 'd',
		{11, 20}: 'e', {11, 21}: 'f',
	}
	for pos, ch := range expected {
		if got := s.at(pos[0], pos[1]); got != ch {
			t.Errorf("cell %v = %q, expected %q", pos, got, ch)
		}
	}
	if r, c := w.Cursor(); r != 1 || c != 2 {
		t.Errorf("cursor = %d,%d, expected 1,2", r, c)
	}
}

func TestWindowControlBytes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantRow int
		wantCol int
	}{
		{"terminator is swallowed", "ab\x00\x00c", 0, 3},
		{"newline resets column", "ab\nc", 1, 1},
		{"double newline", "\n\n", 2, 0},
		{"newline wraps rows", "\n\n\n", 0, 0},
		{"newline after full row", "abcd\n", 2, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWindow(newScreen(), 1, 1, 4, 3, ' ')
			if _, err := w.WriteString(tc.input); err != nil {
				t.Fatal(err)
			}
			if r, c := w.Cursor(); r != tc.wantRow || c != tc.wantCol {
				t.Errorf("cursor = %d,%d, expected %d,%d", r, c, tc.wantRow, tc.wantCol)
			}
		})
	}
}

func TestWindowTerminatorWritesNothing(t *testing.T) {
	s := newScreen()
	w := NewWindow(s, 1, 1, 3, 1, '.')
	moves := s.moves
	if err := w.WriteByte(0); err != nil {
		t.Fatal(err)
	}
	if s.moves != moves {
		t.Error("terminator emitted a cursor move")
	}
	if got := s.at(1, 1); got != '.' {
		t.Errorf("terminator overwrote a cell with %q", got)
	}
}

func TestWindowWrapInvariant(t *testing.T) {
	const width, height = 7, 4

	for k := 0; k <= 9; k++ {
		w := NewWindow(newScreen(), 2, 2, width, height, ' ')
		if _, err := w.Write(bytes.Repeat([]byte{'x'}, width*k)); err != nil {
			t.Fatal(err)
		}
		r, c := w.Cursor()
		if r != k%height || c != 0 {
			t.Errorf("k=%d: cursor = %d,%d, expected %d,0", k, r, c, k%height)
		}
	}
}

func TestWindowStaysInRectangle(t *testing.T) {
	s := newScreen()
	w := NewWindow(s, 5, 8, 6, 3, ' ')
	if _, err := w.WriteString(strings.Repeat("0123456789\n", 7) + strings.Repeat("z", 50)); err != nil {
		t.Fatal(err)
	}

	for pos := range s.cells {
		row, col := pos[0], pos[1]
		if row < 5 || row >= 8 || col < 8 || col >= 14 {
			t.Errorf("wrote outside the window at %d,%d", row, col)
		}
	}
}

func TestWindowWriteError(t *testing.T) {
	errBoom := errors.New("boom")
	tests := []struct {
		name     string
		input    string
		allow    int
		expected int
	}{
		{"first byte fails", "abc", 0, 0},
		{"fails midway", "abcdef", 4, 4},
		{"dropped terminator counts", "a\x00bc", 2, 3},
		{"newline counts", "a\nbc", 2, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newScreen()
			w := NewWindow(s, 1, 1, 3, 3, ' ')
			s.fail, s.allow = errBoom, tc.allow

			n, err := w.Write([]byte(tc.input))
			if !errors.Is(err, errBoom) || n != tc.expected {
				t.Errorf("Write() = %d, %v, expected %d, %v", n, err, tc.expected, errBoom)
			}

			s.allow = tc.allow
			n, err = w.WriteString(tc.input)
			if !errors.Is(err, errBoom) || n != tc.expected {
				t.Errorf("WriteString() = %d, %v, expected %d, %v", n, err, tc.expected, errBoom)
			}
		})
	}
}

func TestWindowMinimumSize(t *testing.T) {
	w := NewWindow(newScreen(), 1, 1, 0, -3, ' ')
	if w.Width() != 1 || w.Height() != 1 {
		t.Errorf("size = %dx%d, expected 1x1", w.Width(), w.Height())
	}
	if _, err := w.WriteString("abc"); err != nil {
		t.Fatal(err)
	}
}

func TestWindowOverChunkWriter(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out)
	w := NewWindow(cw, 2, 3, 2, 2, ' ')
	cw.Flush()
	out.Reset()

	if _, err := w.WriteString("abc"); err != nil {
		t.Fatal(err)
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}

	// "ab" share one cursor move; the wrap to row 3 needs another.
	if got, want := out.String(), "\x1b[2;3Hab\x1b[3;3Hc"; got != want {
		t.Errorf("output = %q, expected %q", got, want)
	}
}
