package editor

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// keyString names a key event the way keymaps spell it, e.g. "shift+left",
// "backspace", "ctrl+c" or a bare rune.
func keyString(ev *tcell.EventKey) string {
	mods := ev.Modifiers()
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		name := string(r)
		if r == ' ' {
			name = "space"
		}
		if mods&tcell.ModAlt != 0 {
			return "alt+" + name
		}
		return name
	}

	var name string
	switch ev.Key() {
	case tcell.KeyUp:
		name = "up"
	case tcell.KeyDown:
		name = "down"
	case tcell.KeyLeft:
		name = "left"
	case tcell.KeyRight:
		name = "right"
	case tcell.KeyHome:
		name = "home"
	case tcell.KeyEnd:
		name = "end"
	case tcell.KeyPgUp:
		name = "pgup"
	case tcell.KeyPgDn:
		name = "pgdn"
	case tcell.KeyInsert:
		name = "ins"
	case tcell.KeyDelete:
		name = "del"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyTab:
		return "tab"
	case tcell.KeyBacktab:
		return "shift+tab"
	case tcell.KeyEscape:
		return "esc"
	default:
		return ctrlKeyName(ev.Key())
	}
	return modifierPrefix(mods) + name
}

// modifierPrefix spells modifiers in a fixed order so "ctrl+shift+left"
// has a single form.
func modifierPrefix(mods tcell.ModMask) string {
	var b strings.Builder
	if mods&tcell.ModMeta != 0 {
		b.WriteString("cmd+")
	}
	if mods&tcell.ModCtrl != 0 {
		b.WriteString("ctrl+")
	}
	if mods&tcell.ModAlt != 0 {
		b.WriteString("alt+")
	}
	if mods&tcell.ModShift != 0 {
		b.WriteString("shift+")
	}
	return b.String()
}

func ctrlKeyName(key tcell.Key) string {
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+int(key-tcell.KeyCtrlA)))
	}
	return ""
}
