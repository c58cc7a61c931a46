package app

import (
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/tabedit/internal/config"
	"github.com/kobzarvs/tabedit/internal/render"
)

type fakeTerminal struct {
	events   []tcell.Event
	frames   [][]render.Directive
	initErr  error
	finiErr  error
	applyErr error
	inited   bool
	finied   bool
}

func (f *fakeTerminal) Init() error {
	f.inited = true
	return f.initErr
}

func (f *fakeTerminal) Fini() error {
	f.finied = true
	return f.finiErr
}

func (f *fakeTerminal) PollEvent() (tcell.Event, error) {
	if len(f.events) == 0 {
		return nil, io.EOF
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev, nil
}

func (f *fakeTerminal) Apply(ds []render.Directive) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.frames = append(f.frames, ds)
	return nil
}

func keys(s string) []tcell.Event {
	var out []tcell.Event
	for _, r := range s {
		out = append(out, tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	return out
}

func TestRunEditsUntilEsc(t *testing.T) {
	term := &fakeTerminal{}
	term.events = append(term.events, keys("3-2")...)
	term.events = append(term.events,
		tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
	)

	if err := New(config.Default(), term).Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !term.inited || !term.finied {
		t.Fatalf("raw mode not entered and left: init=%v fini=%v", term.inited, term.finied)
	}
	// initial frame, three typed runes, one move, restore; F5 draws nothing
	if len(term.frames) != 6 {
		t.Fatalf("frames = %d, want 6", len(term.frames))
	}

	last := term.frames[4]
	var printed []string
	for _, d := range last {
		if d.Kind == render.Print && d.Text != "\r\n" {
			printed = append(printed, d.Text)
		}
	}
	want := []string{"e|3-2", "B|---", "G|---", "D|---", "A|---", "E|---"}
	if !reflect.DeepEqual(printed, want) {
		t.Fatalf("printed = %q, want %q", printed, want)
	}
	if last[0] != (render.Directive{Kind: render.MoveUp, N: 1}) {
		t.Fatalf("first directive = %+v, want up 1", last[0])
	}

	restore := term.frames[5]
	wantRestore := []render.Directive{{Kind: render.MoveDown, N: 4}, {Kind: render.Print, Text: "\r\n"}}
	if !reflect.DeepEqual(restore, wantRestore) {
		t.Fatalf("restore = %+v, want %+v", restore, wantRestore)
	}
}

func TestRunReturnsReadError(t *testing.T) {
	term := &fakeTerminal{events: keys("1")}
	err := New(config.Default(), term).Run()
	if !errors.Is(err, io.EOF) {
		t.Fatalf("Run error = %v, want EOF", err)
	}
	if !term.finied {
		t.Fatalf("raw mode not left after read failure")
	}
}

func TestRunCombinesTeardownError(t *testing.T) {
	writeErr := errors.New("terminal gone")
	finiErr := errors.New("restore failed")
	term := &fakeTerminal{applyErr: writeErr, finiErr: finiErr}
	err := New(config.Default(), term).Run()
	if !errors.Is(err, writeErr) || !errors.Is(err, finiErr) {
		t.Fatalf("Run error = %v, want both failures", err)
	}
}

func TestRunInitFailure(t *testing.T) {
	initErr := errors.New("no tty")
	term := &fakeTerminal{initErr: initErr}
	if err := New(config.Default(), term).Run(); !errors.Is(err, initErr) {
		t.Fatalf("Run error = %v, want %v", err, initErr)
	}
	if term.finied {
		t.Fatalf("Fini called after failed Init")
	}
}
