package dice

import (
	"fmt"
	"strings"
)

// Options selects advantage or disadvantage rolling.
//
// When both are set, advantage takes precedence: the higher die is kept.
type Options struct {
	Advantage    bool
	Disadvantage bool
}

// Paired reports whether each roll iteration draws two dice.
func (o Options) Paired() bool {
	return o.Advantage || o.Disadvantage
}

// Validate checks the roll parameters.
//
// Postcondition: Returns nil when sides >= 2 and count >= 1; otherwise an
// error wrapping ErrInvalidSides or ErrInvalidCount (sides checked first).
func Validate(sides, count int) error {
	if sides < 2 {
		return fmt.Errorf("%w: a die needs at least 2 sides, got %d", ErrInvalidSides, sides)
	}
	if count < 1 {
		return fmt.Errorf("%w: at least 1 roll is required, got %d", ErrInvalidCount, count)
	}
	return nil
}

// Draw validates the parameters and rolls count groups from src.
//
// Precondition: src must be non-nil.
// Postcondition: len(groups) == count; every value is in [1, sides]; groups
// are in draw order. No randomness is consumed when validation fails.
func Draw(sides, count int, opts Options, src Source) ([]Group, error) {
	if err := Validate(sides, count); err != nil {
		return nil, err
	}

	groups := make([]Group, 0, count)
	for i := 0; i < count; i++ {
		if !opts.Paired() {
			groups = append(groups, Group{Values: []int{rollDie(src, sides)}})
			continue
		}

		first := rollDie(src, sides)
		second := rollDie(src, sides)
		firstWins := first <= second
		if opts.Advantage {
			firstWins = first >= second
		}
		kept := 1
		if firstWins {
			kept = 0
		}
		groups = append(groups, Group{Values: []int{first, second}, Kept: kept})
	}
	return groups, nil
}

// Format renders groups as a single line.
//
// Each value is decorated independently: 1 as a critical failure, sides as a
// critical success. A pair renders as "(a b)" in draw order with the
// discarded value struck. Groups are joined by Separator.
//
// Precondition: st must be non-nil.
func Format(groups []Group, sides int, st Styler) string {
	rendered := make([]string, len(groups))
	for i, g := range groups {
		if !g.Paired() {
			rendered[i] = FormatValue(g.Values[0], sides, st)
			continue
		}
		pair := make([]string, 2)
		for j, v := range g.Values {
			pair[j] = FormatValue(v, sides, st)
			if j != g.Kept {
				pair[j] = st.Struck(pair[j])
			}
		}
		rendered[i] = "(" + pair[0] + " " + pair[1] + ")"
	}
	return strings.Join(rendered, Separator)
}

// FormatValue renders one die face with its critical marker, if any.
func FormatValue(value, sides int, st Styler) string {
	s := fmt.Sprintf("%d", value)
	switch value {
	case 1:
		return st.CriticalFailure(s)
	case sides:
		return st.CriticalSuccess(s)
	default:
		return s
	}
}

// Roll draws and formats count rolls of a sides-faced die.
//
// Precondition: src and st must be non-nil.
// Postcondition: Returns the formatted line, or a validation error with no
// partial result.
func Roll(sides, count int, opts Options, src Source, st Styler) (string, error) {
	groups, err := Draw(sides, count, opts, src)
	if err != nil {
		return "", err
	}
	return Format(groups, sides, st), nil
}

func rollDie(src Source, sides int) int {
	return src.Intn(sides) + 1
}
