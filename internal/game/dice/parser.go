package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Spec is a parsed dice expression.
//
// Parse performs no range checks; Count >= 1 and Sides >= 2 are enforced by
// Draw before any randomness is consumed.
type Spec struct {
	Count int // number of dice (or pairs, under advantage/disadvantage)
	Sides int // faces per die
}

// String renders the spec in canonical "<count>d<sides>" form.
func (s Spec) String() string {
	return fmt.Sprintf("%dd%d", s.Count, s.Sides)
}

// Parse parses a dice expression into a Spec.
// Supported forms: "2d20", "d20" (count 1), "20" (count 1).
//
// Postcondition: Returns a Spec, or an error wrapping ErrInvalidFormat.
func Parse(text string) (Spec, error) {
	parts := strings.Split(text, "d")
	switch len(parts) {
	case 1:
		sides, err := parseNumber(parts[0])
		if err != nil {
			return Spec{}, fmt.Errorf("%w: sides in %q: %v", ErrInvalidFormat, text, err)
		}
		return Spec{Count: 1, Sides: sides}, nil
	case 2:
		count := 1
		if parts[0] != "" {
			var err error
			count, err = parseNumber(parts[0])
			if err != nil {
				return Spec{}, fmt.Errorf("%w: count in %q: %v", ErrInvalidFormat, text, err)
			}
		}
		sides, err := parseNumber(parts[1])
		if err != nil {
			return Spec{}, fmt.Errorf("%w: sides in %q: %v", ErrInvalidFormat, text, err)
		}
		return Spec{Count: count, Sides: sides}, nil
	default:
		return Spec{}, fmt.Errorf("%w: %q has more than one 'd'", ErrInvalidFormat, text)
	}
}

// MustParse parses text and panics on error. Useful for package-level values.
//
// Precondition: text must be a valid dice expression.
func MustParse(text string) Spec {
	s, err := Parse(text)
	if err != nil {
		panic("dice: MustParse failed for expression " + text + ": " + err.Error())
	}
	return s
}

// parseNumber accepts a non-empty run of ASCII digits that fits in an int.
// strconv.Atoi alone would also accept a leading sign.
func parseNumber(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("missing number")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("unexpected character %q", s[i])
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("number %q out of range", s)
	}
	return n, nil
}
