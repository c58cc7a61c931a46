package grid

import "fmt"

const (
	TrackCount = 6
	LastRow    = TrackCount - 1
	PrefixLen  = 2

	Filler    = '-'
	Separator = '|'
)

// DefaultLabels are the string names from the highest string to the lowest.
var DefaultLabels = []string{"e", "B", "G", "D", "A", "E"}

type Cursor struct {
	Row int
	Col int
}

// Grid holds six tracks that always share the same length. Column
// arguments are content columns: index 0 is the first rune after the
// track prefix.
type Grid struct {
	tracks [TrackCount][]rune
	cursor Cursor
}

// New builds an empty grid. Each label must be a single rune.
func New(labels []string) *Grid {
	if len(labels) != TrackCount {
		panic(fmt.Sprintf("grid: want %d labels, got %d", TrackCount, len(labels)))
	}
	g := &Grid{}
	for i, label := range labels {
		r := []rune(label)
		if len(r) != 1 {
			panic(fmt.Sprintf("grid: label %q is not a single rune", label))
		}
		g.tracks[i] = []rune{r[0], Separator}
	}
	return g
}

func (g *Grid) Cursor() Cursor {
	return g.cursor
}

// Width is the shared number of content columns.
func (g *Grid) Width() int {
	return g.rowWidth(0)
}

func (g *Grid) rowWidth(row int) int {
	return len(g.tracks[row]) - PrefixLen
}

// Track returns the full line for a track, prefix included.
func (g *Grid) Track(row int) string {
	return string(g.tracks[row])
}

// Content returns a track without its prefix.
func (g *Grid) Content(row int) string {
	return string(g.tracks[row][PrefixLen:])
}

func (g *Grid) Tracks() []string {
	out := make([]string, TrackCount)
	for i := range g.tracks {
		out[i] = string(g.tracks[i])
	}
	return out
}

// Aligned reports whether every track has the same length.
func (g *Grid) Aligned() bool {
	n := len(g.tracks[0])
	for i := 1; i < TrackCount; i++ {
		if len(g.tracks[i]) != n {
			return false
		}
	}
	return true
}

func (g *Grid) MoveUp() bool {
	if g.cursor.Row == 0 {
		return false
	}
	g.cursor.Row--
	return true
}

func (g *Grid) MoveDown() bool {
	if g.cursor.Row >= LastRow {
		return false
	}
	g.cursor.Row++
	return true
}

func (g *Grid) MoveLeft() bool {
	if g.cursor.Col == 0 {
		return false
	}
	g.cursor.Col--
	return true
}

// MoveRight stops at the last content column. The append position is only
// reached by typing.
func (g *Grid) MoveRight() bool {
	if g.cursor.Col >= g.Width()-1 {
		return false
	}
	g.cursor.Col++
	return true
}

// InsertColumn inserts fill at content column at in every track.
func (g *Grid) InsertColumn(at int, fill rune) bool {
	if at < 0 || at > g.Width() {
		return false
	}
	for i := range g.tracks {
		g.insertAt(i, at, fill)
	}
	return true
}

// DeleteColumn removes content column at from every track.
func (g *Grid) DeleteColumn(at int) bool {
	if g.Width() == 0 || at < 0 || at >= g.Width() {
		return false
	}
	for i := range g.tracks {
		pos := PrefixLen + at
		g.tracks[i] = append(g.tracks[i][:pos], g.tracks[i][pos+1:]...)
	}
	return true
}

// Overwrite replaces a single rune in one track. The append position has no
// rune to replace.
func (g *Grid) Overwrite(row, col int, ch rune) bool {
	if row < 0 || row > LastRow || col < 0 || col >= g.rowWidth(row) {
		return false
	}
	g.tracks[row][PrefixLen+col] = ch
	return true
}

// WidenLeft inserts a filler column under the cursor.
func (g *Grid) WidenLeft() bool {
	return g.InsertColumn(g.cursor.Col, Filler)
}

// WidenRight inserts a filler column after the cursor and moves onto it.
func (g *Grid) WidenRight() bool {
	if g.cursor.Col >= g.Width()-1 {
		return false
	}
	g.cursor.Col++
	return g.InsertColumn(g.cursor.Col, Filler)
}

// TypeChar writes ch at the cursor and advances. At the append position the
// grid grows by one column: sibling tracks get a filler unless ch is the
// separator, which is kept so bar lines stay aligned.
func (g *Grid) TypeChar(ch rune) bool {
	if ch == ' ' {
		ch = Filler
	}
	col := g.cursor.Col
	if col >= g.rowWidth(g.cursor.Row) {
		for i := range g.tracks {
			switch {
			case i == g.cursor.Row:
				g.insertAt(i, col, ch)
			case col >= g.rowWidth(i):
				fill := Filler
				if ch == Separator {
					fill = Separator
				}
				g.insertAt(i, col, fill)
			}
		}
	} else {
		g.tracks[g.cursor.Row][PrefixLen+col] = ch
	}
	g.cursor.Col++
	return true
}

// Backspace deletes the column left of the cursor when it sits at the
// append position, otherwise the column under it.
func (g *Grid) Backspace() bool {
	if g.Width() == 0 {
		return false
	}
	at := g.cursor.Col
	if at >= g.Width() {
		at = g.Width() - 1
	}
	if !g.DeleteColumn(at) {
		return false
	}
	g.cursor.Col = at
	return true
}

func (g *Grid) insertAt(row, col int, ch rune) {
	pos := PrefixLen + col
	t := append(g.tracks[row], 0)
	copy(t[pos+1:], t[pos:])
	t[pos] = ch
	g.tracks[row] = t
}
