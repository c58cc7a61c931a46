package terminal

import (
	"bufio"
	"fmt"

	"github.com/charmbracelet/x/ansi"

	"github.com/kobzarvs/tabedit/internal/render"
)

func encode(w *bufio.Writer, d render.Directive) error {
	if isMove(d.Kind) && d.N <= 0 {
		// a zero count still moves one cell on most terminals
		return nil
	}
	var s string
	switch d.Kind {
	case render.MoveUp:
		s = ansi.CursorUp(d.N)
	case render.MoveDown:
		s = ansi.CursorDown(d.N)
	case render.MoveRight:
		s = ansi.CursorForward(d.N)
	case render.MoveLeft:
		s = ansi.CursorBackward(d.N)
	case render.Print:
		s = d.Text
	case render.ClearLine:
		s = ansi.EraseLineRight
	case render.CarriageReturn:
		s = "\r"
	default:
		return fmt.Errorf("unknown directive %v", d.Kind)
	}
	_, err := w.WriteString(s)
	return err
}

func isMove(k render.Kind) bool {
	switch k {
	case render.MoveUp, render.MoveDown, render.MoveLeft, render.MoveRight:
		return true
	}
	return false
}
