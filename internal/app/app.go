package app

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/multierr"

	"github.com/kobzarvs/tabedit/internal/config"
	"github.com/kobzarvs/tabedit/internal/editor"
	"github.com/kobzarvs/tabedit/internal/logger"
	"github.com/kobzarvs/tabedit/internal/render"
	"github.com/kobzarvs/tabedit/internal/terminal"
)

// Terminal is what the event loop needs from the terminal: raw mode
// control, one blocking event source and a directive sink.
type Terminal interface {
	Init() error
	Fini() error
	PollEvent() (tcell.Event, error)
	Apply(ds []render.Directive) error
}

// App is the top-level runtime for tabedit.
type App struct {
	cfg  config.Config
	term Terminal
}

func New(cfg config.Config, term Terminal) *App {
	return &App{cfg: cfg, term: term}
}

// Run loads the configuration and edits on the process terminal until Esc.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log.File, cfg.Log.Debug); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	return New(cfg, terminal.New(os.Stdin, os.Stdout)).Run()
}

func (a *App) Run() (err error) {
	if err := a.term.Init(); err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, a.term.Fini())
	}()
	logger.Info("editor started", "labels", a.cfg.Editor.Labels)

	ed := editor.New(a.cfg)
	if err := ed.Render(a.term); err != nil {
		return a.fail(err)
	}
	for {
		ev, err := a.term.PollEvent()
		if err != nil {
			return a.fail(err)
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ed.HandleKey(ev) {
				if err := ed.Restore(a.term); err != nil {
					return a.fail(err)
				}
				logger.Info("editor stopped", "width", ed.Grid().Width())
				return nil
			}
		}
		if err := ed.Render(a.term); err != nil {
			return a.fail(err)
		}
	}
}

func (a *App) fail(err error) error {
	logger.Error("terminal failure", "error", err)
	return err
}
