// Package dice implements dice notation parsing and the roll engine used by
// the ttrpg command line tool.
package dice

import "errors"

var (
	// ErrInvalidFormat is returned by Parse when the expression does not match
	// "[count]d<sides>" or "<sides>".
	ErrInvalidFormat = errors.New("invalid dice format")

	// ErrInvalidSides is returned when fewer than two sides are requested.
	ErrInvalidSides = errors.New("invalid sides")

	// ErrInvalidCount is returned when fewer than one roll is requested.
	ErrInvalidCount = errors.New("invalid count")
)

// Separator joins the rendered result of each roll iteration.
const Separator = ", "

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Styler decorates rendered die values. Implementations are pure string
// transformations and must not inspect the terminal.
type Styler interface {
	// CriticalFailure marks a die that rolled 1.
	CriticalFailure(s string) string
	// CriticalSuccess marks a die that rolled its maximum face.
	CriticalSuccess(s string) string
	// Struck marks the discarded die of an advantage or disadvantage pair.
	Struck(s string) string
}

// Group is the outcome of a single roll iteration: one die, or an
// advantage/disadvantage pair in draw order.
//
// Invariant: 1 <= len(Values) <= 2 and 0 <= Kept < len(Values).
type Group struct {
	Values []int // die faces in draw order
	Kept   int   // index of the value that counts
}

// Paired reports whether the group holds an advantage or disadvantage pair.
func (g Group) Paired() bool {
	return len(g.Values) == 2
}

// Value returns the face that counts for this group.
func (g Group) Value() int {
	return g.Values[g.Kept]
}
