package editor

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/tabedit/internal/config"
	"github.com/kobzarvs/tabedit/internal/grid"
	"github.com/kobzarvs/tabedit/internal/logger"
	"github.com/kobzarvs/tabedit/internal/render"
)

const (
	actionQuit       = "quit"
	actionMoveUp     = "move_up"
	actionMoveDown   = "move_down"
	actionMoveLeft   = "move_left"
	actionMoveRight  = "move_right"
	actionWidenLeft  = "widen_left"  // Shift+Left - filler column under the cursor
	actionWidenRight = "widen_right" // Shift+Right - filler column after the cursor
	actionBackspace  = "backspace"
)

var knownActions = map[string]bool{
	actionQuit:       true,
	actionMoveUp:     true,
	actionMoveDown:   true,
	actionMoveLeft:   true,
	actionMoveRight:  true,
	actionWidenLeft:  true,
	actionWidenRight: true,
	actionBackspace:  true,
}

// Output receives the directives of a redraw.
type Output interface {
	Apply(ds []render.Directive) error
}

type Editor struct {
	grid     *grid.Grid
	renderer *render.Renderer
	keymap   map[string]string
	dirty    bool

	actionHook func(action string) // called for every dispatched action (tests)
}

func New(cfg config.Config) *Editor {
	// Unknown actions are not bound, so a printable key keeps typing itself.
	keymap := make(map[string]string, len(cfg.Keymap))
	for k, v := range cfg.Keymap {
		if !knownActions[v] {
			logger.Info("ignoring unknown action in keymap", "key", k, "action", v)
			continue
		}
		keymap[k] = v
	}
	return &Editor{
		grid:     grid.New(cfg.Editor.Labels),
		renderer: render.New(),
		keymap:   keymap,
		dirty:    true,
	}
}

func (e *Editor) Grid() *grid.Grid {
	return e.grid
}

// HandleKey applies one key event and reports whether the editor should
// exit. Keys that hit a boundary leave the grid untouched.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	if key := keyString(ev); key != "" {
		if action, ok := e.keymap[key]; ok {
			return e.execAction(action)
		}
	}
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) == 0 {
		r := ev.Rune()
		if unicode.IsPrint(r) {
			e.apply("type_char", e.grid.TypeChar(r))
		}
	}
	return false
}

func (e *Editor) execAction(action string) bool {
	if e.actionHook != nil {
		e.actionHook(action)
	}
	switch action {
	case actionQuit:
		return true
	case actionMoveUp:
		e.apply(action, e.grid.MoveUp())
	case actionMoveDown:
		e.apply(action, e.grid.MoveDown())
	case actionMoveLeft:
		e.apply(action, e.grid.MoveLeft())
	case actionMoveRight:
		e.apply(action, e.grid.MoveRight())
	case actionWidenLeft:
		e.apply(action, e.grid.WidenLeft())
	case actionWidenRight:
		e.apply(action, e.grid.WidenRight())
	case actionBackspace:
		e.apply(action, e.grid.Backspace())
	default:
		logger.Debug("unknown action", "action", action)
	}
	return false
}

func (e *Editor) apply(action string, changed bool) {
	c := e.grid.Cursor()
	if !changed {
		logger.Debug("edit rejected", "action", action, "row", c.Row, "col", c.Col, "width", e.grid.Width())
		return
	}
	logger.Debug("edit", "action", action, "row", c.Row, "col", c.Col, "width", e.grid.Width())
	if !e.grid.Aligned() {
		logger.Error("tracks out of alignment", "action", action, "tracks", e.grid.Tracks())
	}
	e.dirty = true
}

// Render repaints the grid if anything changed since the last call.
func (e *Editor) Render(out Output) error {
	if !e.dirty {
		return nil
	}
	if err := out.Apply(e.renderer.Redraw(e.grid)); err != nil {
		return err
	}
	e.dirty = false
	return nil
}

// Restore leaves the terminal cursor on the line below the grid.
func (e *Editor) Restore(out Output) error {
	return out.Apply(render.Restore(e.renderer.LastRow()))
}
