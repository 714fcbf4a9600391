// Package input turns a raw terminal byte stream into logical key presses.
package input

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// escapeTimeout is how long to wait after ESC (or inside a sequence) before
// deciding the sequence is not going to be completed.
const escapeTimeout = 50 * time.Millisecond

// maxSequence bounds the parameter bytes read for one CSI sequence.
const maxSequence = 16

// pendingFlag marks the pending slot as occupied so KeyNone can be stored.
const pendingFlag = 1 << 31

// errTimeout is returned internally when a continuation byte did not arrive.
var errTimeout = errors.New("input: escape timeout")

// Stream delivers input bytes via a channel.
type Stream struct {
	ch   chan byte
	err  error // Set before ch is closed
	done chan struct{}
	stop sync.Once

	exited chan struct{} // Closed when the reading goroutine returns
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine runs until r fails or Stop is called.
func StartStream(r io.Reader) *Stream {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	s := &Stream{
		ch:     make(chan byte, 128),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go func() {
		defer close(s.exited)
		defer close(s.ch)
		for {
			b, err := br.ReadByte()
			if err != nil {
				s.err = err
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Stop releases the reading goroutine once it is blocked on a full buffer or
// its next read returns. A read already blocked in r is not interrupted.
// Stop is safe to call more than once.
func (s *Stream) Stop() {
	s.stop.Do(func() { close(s.done) })
}

// Decoder produces one logical key per Get call. Put may be called from any
// goroutine to inject a key ahead of the byte stream.
type Decoder struct {
	stream  *Stream
	pending atomic.Uint32
	wake    chan struct{}
	timeout time.Duration
}

// NewDecoder creates a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		stream:  StartStream(r),
		wake:    make(chan struct{}, 1),
		timeout: escapeTimeout,
	}
}

// Close stops reading input. Bytes already buffered can still be read; after
// them Get reports io.EOF.
func (d *Decoder) Close() {
	d.stream.Stop()
}

// Put stores k in the single pending slot and wakes a blocked Get. It never
// blocks or allocates. If a key was already pending it is replaced and
// returned; otherwise KeyNone is returned.
func (d *Decoder) Put(k Key) Key {
	prev := d.pending.Swap(uint32(k) | pendingFlag)
	select {
	case d.wake <- struct{}{}:
	default:
	}
	if prev&pendingFlag == 0 {
		return KeyNone
	}
	return Key(prev &^ pendingFlag)
}

// takePending empties the pending slot.
func (d *Decoder) takePending() (Key, bool) {
	v := d.pending.Swap(0)
	if v&pendingFlag == 0 {
		return KeyNone, false
	}
	return Key(v &^ pendingFlag), true
}

// Get blocks until a key is available. An injected key takes priority over
// buffered input; input bytes are never discarded to deliver it. Get returns
// the stream's read error (io.EOF when input closes) or ctx.Err().
func (d *Decoder) Get(ctx context.Context) (Key, error) {
	for {
		if k, ok := d.takePending(); ok {
			return k, nil
		}

		select {
		case <-ctx.Done():
			return KeyNone, ctx.Err()
		case <-d.wake:
			continue
		case b, ok := <-d.stream.ch:
			if !ok {
				return KeyNone, d.streamErr()
			}
			return d.decode(ctx, b)
		}
	}
}

// decode turns a first byte, plus any continuation bytes, into a key.
func (d *Decoder) decode(ctx context.Context, b byte) (Key, error) {
	switch b {
	case 0x1b:
		return d.decodeEscape(ctx)
	case '\r':
		return KeyCtrlM, nil
	}
	return Key(b), nil
}

// decodeEscape handles the bytes after ESC. A lone ESC is reported as
// KeyEscape.
func (d *Decoder) decodeEscape(ctx context.Context) (Key, error) {
	b, err := d.next(ctx)
	if incomplete(err) {
		return KeyEscape, nil
	}
	if err != nil {
		return KeyNone, err
	}

	switch b {
	case '[':
		return d.decodeCSI(ctx)
	case 'O':
		final, err := d.next(ctx)
		if incomplete(err) {
			return KeyUnknown, nil
		}
		if err != nil {
			return KeyNone, err
		}
		return lookupSS3(final), nil
	}
	return KeyUnknown, nil
}

// decodeCSI reads parameter bytes up to the final byte of a CSI sequence.
func (d *Decoder) decodeCSI(ctx context.Context) (Key, error) {
	var params [maxSequence]byte
	n := 0
	for {
		b, err := d.next(ctx)
		if incomplete(err) {
			return KeyUnknown, nil
		}
		if err != nil {
			return KeyNone, err
		}

		// Final byte (or rxvt's '^' / '$' modifier suffixes) ends the sequence.
		if (b >= 0x40 && b <= 0x7e) || b == '$' {
			return lookupCSI(string(params[:n]), b), nil
		}
		if b < 0x20 || b > 0x7e {
			return KeyUnknown, nil
		}
		if n == len(params) {
			return d.drainCSI(ctx)
		}
		params[n] = b
		n++
	}
}

// drainCSI consumes the rest of an overlong sequence so its tail is not
// decoded as ordinary keys.
func (d *Decoder) drainCSI(ctx context.Context) (Key, error) {
	for {
		b, err := d.next(ctx)
		if incomplete(err) {
			return KeyUnknown, nil
		}
		if err != nil {
			return KeyNone, err
		}
		if b >= 0x40 && b <= 0x7e {
			return KeyUnknown, nil
		}
	}
}

// next waits up to the escape timeout for a continuation byte.
func (d *Decoder) next(ctx context.Context) (byte, error) {
	timer := time.NewTimer(d.timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-timer.C:
		return 0, errTimeout
	case b, ok := <-d.stream.ch:
		if !ok {
			return 0, d.streamErr()
		}
		return b, nil
	}
}

// incomplete reports whether a sequence was cut short by the timeout or by
// the end of input. The end of input is then reported by the next Get.
func incomplete(err error) bool {
	return errors.Is(err, errTimeout) || errors.Is(err, io.EOF)
}

func (d *Decoder) streamErr() error {
	if d.stream.err != nil {
		return d.stream.err
	}
	return io.EOF
}

// lookupCSI maps "ESC [ params final" to a key.
func lookupCSI(params string, final byte) Key {
	switch params {
	case "":
		switch final {
		case 'A':
			return KeyUp
		case 'B':
			return KeyDown
		case 'C':
			return KeyRight
		case 'D':
			return KeyLeft
		case 'H':
			return KeyHome
		case 'F':
			return KeyEnd
		}
	case "1;5", "5":
		switch final {
		case 'A':
			return KeyCtrlUp
		case 'B':
			return KeyCtrlDown
		case 'C':
			return KeyCtrlRight
		case 'D':
			return KeyCtrlLeft
		case 'H':
			return KeyCtrlHome
		case 'F':
			return KeyCtrlEnd
		}
	case "1", "7":
		switch final {
		case '~':
			return KeyHome
		case '^':
			return KeyCtrlHome
		}
	case "4", "8":
		switch final {
		case '~':
			return KeyEnd
		case '^':
			return KeyCtrlEnd
		}
	case "3":
		if final == '~' {
			return KeyDelete
		}
	}
	return KeyUnknown
}

// lookupSS3 maps "ESC O final" to a key. Lowercase finals are rxvt's
// Ctrl+arrow encoding.
func lookupSS3(final byte) Key {
	switch final {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	case 'H':
		return KeyHome
	case 'F':
		return KeyEnd
	case 'a':
		return KeyCtrlUp
	case 'b':
		return KeyCtrlDown
	case 'c':
		return KeyCtrlRight
	case 'd':
		return KeyCtrlLeft
	}
	return KeyUnknown
}
