package style

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/cory-johannsen/ttrpg/internal/game/dice"
)

// Mode selects when colour is used.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeAlways Mode = "always"
	ModeNever  Mode = "never"
)

// ParseMode validates a colour mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeAuto, ModeAlways, ModeNever:
		return m, nil
	default:
		return "", fmt.Errorf("color mode must be one of [auto, always, never], got %q", s)
	}
}

// fdWriter is satisfied by *os.File.
type fdWriter interface {
	Fd() uintptr
}

// For returns the Styler for output written to w.
//
// ModeAuto colours only when w is a terminal and NO_COLOR is unset.
func For(mode Mode, w io.Writer) dice.Styler {
	switch mode {
	case ModeAlways:
		return ANSI{}
	case ModeNever:
		return Plain{}
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return Plain{}
	}
	f, ok := w.(fdWriter)
	if !ok {
		return Plain{}
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return ANSI{}
	}
	return Plain{}
}
