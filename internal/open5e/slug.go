package open5e

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slug converts a display name into the lowercase, hyphen-joined identifier
// Open5e uses: "Mordenkainen's Sword" becomes "mordenkainens-sword" and
// "Mélf's Acid Arrow" becomes "melfs-acid-arrow".
//
// Diacritics are removed, apostrophes are dropped and every other run of
// characters that are not letters or digits separates words.
func Slug(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	folded = strings.NewReplacer("'", "", "’", "").Replace(cases.Lower(language.Und).String(folded))

	words := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(words, "-")
}
