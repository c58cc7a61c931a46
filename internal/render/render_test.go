package render

import (
	"reflect"
	"testing"

	"github.com/kobzarvs/tabedit/internal/grid"
)

var sampleTracks = []string{"e|3", "B|-", "G|-", "D|-", "A|-", "E|-"}

// withTrackLines appends the repaint of sampleTracks to head.
func withTrackLines(head []Directive) []Directive {
	out := head
	for _, t := range sampleTracks {
		out = append(out,
			Directive{Kind: Print, Text: "\r\n"},
			Directive{Kind: Print, Text: t},
			Directive{Kind: ClearLine},
			Directive{Kind: CarriageReturn},
		)
	}
	return out
}

func TestFrameFromTopRow(t *testing.T) {
	got := Frame(0, 0, 1, sampleTracks)
	want := withTrackLines([]Directive{{Kind: MoveUp, N: 1}})
	want = append(want,
		Directive{Kind: MoveUp, N: 5},
		Directive{Kind: MoveRight, N: 3},
	)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Frame = %+v\nwant %+v", got, want)
	}
}

func TestFrameUsesPreviousRowForUpMove(t *testing.T) {
	got := Frame(3, 1, 0, sampleTracks)
	if got[0] != (Directive{Kind: MoveUp, N: 4}) {
		t.Fatalf("first directive = %+v, want up 4", got[0])
	}
	tail := got[len(got)-2:]
	want := []Directive{{Kind: MoveUp, N: 4}, {Kind: MoveRight, N: 2}}
	if !reflect.DeepEqual(tail, want) {
		t.Fatalf("tail = %+v, want %+v", tail, want)
	}
}

func TestFrameBottomRowSkipsUpMove(t *testing.T) {
	got := Frame(2, grid.LastRow, 1, sampleTracks)
	want := withTrackLines([]Directive{{Kind: MoveUp, N: 3}})
	want = append(want, Directive{Kind: MoveRight, N: 3})
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Frame = %+v\nwant %+v", got, want)
	}
}

func TestFrameWideRunes(t *testing.T) {
	tracks := []string{"e|世1", "B|--", "G|--", "D|--", "A|--", "E|--"}
	got := Frame(0, 0, 1, tracks)
	last := got[len(got)-1]
	if last != (Directive{Kind: MoveRight, N: 4}) {
		t.Fatalf("last directive = %+v, want right 4", last)
	}
	got = Frame(0, 0, 2, tracks)
	last = got[len(got)-1]
	if last != (Directive{Kind: MoveRight, N: 5}) {
		t.Fatalf("append column directive = %+v, want right 5", last)
	}
}

func TestRendererTracksRow(t *testing.T) {
	g := grid.New(grid.DefaultLabels)
	r := New()
	first := r.Redraw(g)
	if first[0] != (Directive{Kind: MoveUp, N: 1}) {
		t.Fatalf("initial up move = %+v, want up 1", first[0])
	}
	g.MoveDown()
	g.MoveDown()
	r.Redraw(g)
	if r.LastRow() != 2 {
		t.Fatalf("LastRow = %d, want 2", r.LastRow())
	}
	g.MoveUp()
	next := r.Redraw(g)
	if next[0] != (Directive{Kind: MoveUp, N: 3}) {
		t.Fatalf("up move after row 2 = %+v, want up 3", next[0])
	}
	tail := next[len(next)-2:]
	want := []Directive{{Kind: MoveUp, N: 4}, {Kind: MoveRight, N: 2}}
	if !reflect.DeepEqual(tail, want) {
		t.Fatalf("tail = %+v, want %+v", tail, want)
	}
}

func TestRestore(t *testing.T) {
	got := Restore(1)
	want := []Directive{{Kind: MoveDown, N: 4}, {Kind: Print, Text: "\r\n"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Restore(1) = %+v, want %+v", got, want)
	}
	got = Restore(grid.LastRow)
	want = []Directive{{Kind: Print, Text: "\r\n"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Restore(last) = %+v, want %+v", got, want)
	}
}
