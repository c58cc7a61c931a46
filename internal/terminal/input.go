package terminal

import (
	"io"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

const esc = 0x1b

// escapeTimeout is how long an unfinished sequence waits for the rest of
// its bytes. A lone ESC still pending after it is the Escape key.
const escapeTimeout = 50 * time.Millisecond

type chunk struct {
	data []byte
	err  error
}

// Decoder turns raw-mode input into tcell key events. Bytes of an
// unfinished escape sequence or UTF-8 rune are kept until the next read
// completes them or escapeTimeout passes.
type Decoder struct {
	r       io.Reader
	start   sync.Once
	chunks  chan chunk
	buf     []byte
	pending []tcell.Event
	err     error
	timeout time.Duration
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r:       r,
		chunks:  make(chan chunk, 16),
		buf:     make([]byte, 0, 256),
		timeout: escapeTimeout,
	}
}

// readLoop owns the blocking reads so Next can time out on a partial
// sequence. It stops after the first read error.
func (d *Decoder) readLoop() {
	for {
		buf := make([]byte, 256)
		n, err := d.r.Read(buf)
		if n > 0 {
			d.chunks <- chunk{data: buf[:n]}
		}
		if err != nil {
			d.chunks <- chunk{err: err}
			return
		}
	}
}

// Next blocks until a key event is decoded. The reader goroutine starts on
// the first call, so nothing is read before the caller asks for input.
func (d *Decoder) Next() (tcell.Event, error) {
	d.start.Do(func() { go d.readLoop() })
	for len(d.pending) == 0 {
		if d.err != nil {
			if len(d.buf) == 0 {
				return nil, d.err
			}
			d.flush()
			continue
		}

		var c chunk
		if len(d.buf) > 0 {
			select {
			case c = <-d.chunks:
			case <-time.After(d.timeout):
				d.flush()
				continue
			}
		} else {
			c = <-d.chunks
		}
		if c.err != nil {
			d.err = c.err
			continue
		}

		d.buf = append(d.buf, c.data...)
		evs, n := parse(d.buf, false)
		d.pending = evs
		d.buf = d.buf[:copy(d.buf, d.buf[n:])]
	}
	ev := d.pending[0]
	d.pending = d.pending[1:]
	return ev, nil
}

// flush decodes the kept tail as final input.
func (d *Decoder) flush() {
	d.pending, _ = parse(d.buf, true)
	d.buf = d.buf[:0]
}

// Parse decodes a complete chunk of input. Unknown sequences are dropped and
// a trailing ESC is the Escape key.
func Parse(data []byte) []tcell.Event {
	evs, _ := parse(data, true)
	return evs
}

// parse decodes data and returns the events with the number of bytes
// consumed. Unless final is set it stops before an unfinished sequence.
func parse(data []byte, final bool) ([]tcell.Event, int) {
	var out []tcell.Event
	i := 0
	for i < len(data) {
		b := data[i]
		switch {
		case b == esc:
			n, ev := parseEscape(data[i:], final)
			if n == 0 {
				return out, i
			}
			if ev != nil {
				out = append(out, ev)
			}
			i += n
		case b == 0x7f:
			out = append(out, tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
			i++
		case b < 0x20:
			out = append(out, tcell.NewEventKey(tcell.KeyRune, rune(b), tcell.ModNone))
			i++
		default:
			if !final && !utf8.FullRune(data[i:]) {
				return out, i
			}
			r, size := utf8.DecodeRune(data[i:])
			if r != utf8.RuneError || size > 1 {
				out = append(out, tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
			}
			i += size
		}
	}
	return out, i
}

var csiFinal = map[byte]tcell.Key{
	'A': tcell.KeyUp,
	'B': tcell.KeyDown,
	'C': tcell.KeyRight,
	'D': tcell.KeyLeft,
	'H': tcell.KeyHome,
	'F': tcell.KeyEnd,
	'Z': tcell.KeyBacktab,
}

var csiTilde = map[string]tcell.Key{
	"1": tcell.KeyHome,
	"2": tcell.KeyInsert,
	"3": tcell.KeyDelete,
	"4": tcell.KeyEnd,
	"5": tcell.KeyPgUp,
	"6": tcell.KeyPgDn,
	"7": tcell.KeyHome,
	"8": tcell.KeyEnd,
}

// parseEscape decodes a sequence starting at ESC and returns the number of
// bytes consumed, or 0 when the sequence is unfinished and final is unset.
func parseEscape(data []byte, final bool) (int, tcell.Event) {
	if len(data) == 1 {
		if !final {
			return 0, nil
		}
		return 1, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
	}
	switch data[1] {
	case '[':
		return parseCSI(data, final)
	case 'O':
		if len(data) < 3 {
			if !final {
				return 0, nil
			}
			return len(data), nil
		}
		if k, ok := csiFinal[data[2]]; ok {
			return 3, tcell.NewEventKey(k, 0, tcell.ModNone)
		}
		return 3, nil
	case esc:
		return 1, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
	}
	if !final && !utf8.FullRune(data[1:]) {
		return 0, nil
	}
	r, size := utf8.DecodeRune(data[1:])
	return 1 + size, tcell.NewEventKey(tcell.KeyRune, r, tcell.ModAlt)
}

// parseCSI handles ESC [ params final. Modifiers follow the xterm
// convention "1;m" where m-1 is a shift/alt/ctrl/meta bitmask.
func parseCSI(data []byte, final bool) (int, tcell.Event) {
	i := 2
	for i < len(data) && data[i] >= 0x30 && data[i] <= 0x3f {
		i++
	}
	if i >= len(data) {
		if !final {
			return 0, nil
		}
		return len(data), nil
	}
	last := data[i]
	params := string(data[2:i])
	n := i + 1

	base, mod := params, tcell.ModNone
	for j := 0; j < len(params); j++ {
		if params[j] == ';' {
			base = params[:j]
			mod = xtermModifiers(params[j+1:])
			break
		}
	}

	if last == '~' {
		if k, ok := csiTilde[base]; ok {
			return n, tcell.NewEventKey(k, 0, mod)
		}
		return n, nil
	}
	if base != "" && base != "1" {
		return n, nil
	}
	if k, ok := csiFinal[last]; ok {
		if k == tcell.KeyBacktab {
			mod |= tcell.ModShift
		}
		return n, tcell.NewEventKey(k, 0, mod)
	}
	return n, nil
}

func xtermModifiers(s string) tcell.ModMask {
	v := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return tcell.ModNone
		}
		v = v*10 + int(s[i]-'0')
	}
	if v < 1 {
		return tcell.ModNone
	}
	bits := v - 1
	var mod tcell.ModMask
	if bits&1 != 0 {
		mod |= tcell.ModShift
	}
	if bits&2 != 0 {
		mod |= tcell.ModAlt
	}
	if bits&4 != 0 {
		mod |= tcell.ModCtrl
	}
	if bits&8 != 0 {
		mod |= tcell.ModMeta
	}
	return mod
}
