// Package style provides terminal decoration for rendered rolls.
package style

import (
	"fmt"
	"regexp"

	"github.com/cory-johannsen/ttrpg/internal/game/dice"
)

// ANSI escape code constants for the roll markers.
const (
	Reset         = "\033[0m"
	Strikethrough = "\033[9m"
	Red           = "\033[31m"
	Green         = "\033[32m"
)

// sgr matches a Select Graphic Rendition sequence such as "\033[31m".
var sgr = regexp.MustCompile("\033\\[[0-9;]*m")

// Colorize wraps text with the given ANSI code and a reset suffix.
//
// Precondition: code must be a valid ANSI escape sequence.
func Colorize(code, text string) string {
	return code + text + Reset
}

// StripANSI removes styling sequences, leaving the text a reader would see.
// Roll results are logged through it so log lines carry no escape codes.
func StripANSI(s string) string {
	return sgr.ReplaceAllString(s, "")
}

// ANSI decorates values with terminal escape codes: red for a critical
// failure, green for a critical success, strikethrough for a discarded die.
type ANSI struct{}

var _ dice.Styler = ANSI{}

func (ANSI) CriticalFailure(s string) string { return Colorize(Red, s) }
func (ANSI) CriticalSuccess(s string) string { return Colorize(Green, s) }
func (ANSI) Struck(s string) string          { return Colorize(Strikethrough, s) }

// Plain is used when colour is disabled. Criticals are left unmarked and a
// discarded die is wrapped in "~~" so it stays distinguishable in logs and
// pipes.
type Plain struct{}

var _ dice.Styler = Plain{}

func (Plain) CriticalFailure(s string) string { return s }
func (Plain) CriticalSuccess(s string) string { return s }
func (Plain) Struck(s string) string          { return fmt.Sprintf("~~%s~~", s) }
