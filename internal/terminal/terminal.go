// Package terminal is the raw-mode terminal collaborator for the tab editor:
// it enters and leaves raw mode, decodes stdin bytes into tcell key events
// and writes render directives as ANSI sequences. It never switches to the
// alternate screen, so the grid is drawn inline below the shell prompt.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/kobzarvs/tabedit/internal/render"
)

var ErrNotTerminal = errors.New("stdin is not a terminal")

type Terminal struct {
	in    io.Reader
	out   *bufio.Writer
	dec   *Decoder
	fd    int
	state *term.State
}

func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:  in,
		out: bufio.NewWriter(out),
		dec: NewDecoder(in),
		fd:  -1,
	}
}

// Init puts the input terminal into raw mode.
func (t *Terminal) Init() error {
	f, ok := t.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return ErrNotTerminal
	}
	t.fd = int(f.Fd())
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	t.state = state
	return nil
}

// Fini restores the terminal mode saved by Init. Safe to call more than once.
func (t *Terminal) Fini() error {
	if t.state == nil {
		return nil
	}
	state := t.state
	t.state = nil
	if err := term.Restore(t.fd, state); err != nil {
		return fmt.Errorf("leave raw mode: %w", err)
	}
	return nil
}

// PollEvent blocks until the next input event is decoded.
func (t *Terminal) PollEvent() (tcell.Event, error) {
	ev, err := t.dec.Next()
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return ev, nil
}

// Apply encodes directives and flushes them in a single write.
func (t *Terminal) Apply(ds []render.Directive) error {
	for _, d := range ds {
		if err := encode(t.out, d); err != nil {
			return err
		}
	}
	if err := t.out.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
