package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/tabedit/internal/grid"
)

type Kind int

const (
	MoveUp Kind = iota
	MoveDown
	MoveLeft
	MoveRight
	Print
	ClearLine
	CarriageReturn
)

func (k Kind) String() string {
	switch k {
	case MoveUp:
		return "up"
	case MoveDown:
		return "down"
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case Print:
		return "print"
	case ClearLine:
		return "clear"
	case CarriageReturn:
		return "cr"
	}
	return "unknown"
}

// Directive is a single relative terminal operation. N is the count for
// moves; Text is only used by Print.
type Directive struct {
	Kind Kind
	N    int
	Text string
}

const newline = "\r\n"

// Frame repaints all tracks and leaves the terminal cursor on (row, col).
// The terminal cursor is assumed to rest on oldRow from the previous frame,
// and the frame starts one line above the first track because every track
// is printed after a newline.
func Frame(oldRow, row, col int, tracks []string) []Directive {
	out := make([]Directive, 0, 4*len(tracks)+3)
	out = appendMove(out, MoveUp, oldRow+1)
	for _, t := range tracks {
		out = append(out,
			Directive{Kind: Print, Text: newline},
			Directive{Kind: Print, Text: t},
			Directive{Kind: ClearLine},
			Directive{Kind: CarriageReturn},
		)
	}
	out = appendMove(out, MoveUp, len(tracks)-1-row)
	if row >= 0 && row < len(tracks) {
		out = appendMove(out, MoveRight, cursorOffset(tracks[row], col))
	}
	return out
}

// Restore moves the terminal cursor below the last track.
func Restore(row int) []Directive {
	out := appendMove(nil, MoveDown, grid.LastRow-row)
	return append(out, Directive{Kind: Print, Text: newline})
}

// cursorOffset is the display width of the prefix and the first col
// content runes of a track. Past the end of the track each column counts
// as one cell. For narrow content this equals PrefixLen+col; a wide rune
// before col adds its extra cell so the cursor lands on the column's
// glyph instead of inside the wide one.
func cursorOffset(track string, col int) int {
	r := []rune(track)
	n := grid.PrefixLen + col
	if n <= len(r) {
		return runewidth.StringWidth(string(r[:n]))
	}
	return runewidth.StringWidth(track) + n - len(r)
}

func appendMove(out []Directive, kind Kind, n int) []Directive {
	if n <= 0 {
		return out
	}
	return append(out, Directive{Kind: kind, N: n})
}

// Renderer remembers the row the terminal cursor was left on, since only
// relative moves are available to get back to the top of the grid.
type Renderer struct {
	oldRow int
}

func New() *Renderer {
	return &Renderer{}
}

// Redraw returns the frame for g and records the new resting row.
func (r *Renderer) Redraw(g *grid.Grid) []Directive {
	c := g.Cursor()
	out := Frame(r.oldRow, c.Row, c.Col, g.Tracks())
	r.oldRow = c.Row
	return out
}

func (r *Renderer) LastRow() int {
	return r.oldRow
}
