// Package open5e looks up rule reference records from the Open5e API.
package open5e

// Page is the list envelope returned by every Open5e collection endpoint.
type Page[T any] struct {
	Count    int     `json:"count" yaml:"count"`
	Next     *string `json:"next" yaml:"next"`
	Previous *string `json:"previous" yaml:"previous"`
	Results  []T     `json:"results" yaml:"results"`
}

// Class is a character class record.
type Class struct {
	Slug string `json:"slug" yaml:"slug"`
	Name string `json:"name" yaml:"name"`
}

// Spell is a spell record. Level and DndClass are free text as served by
// the API, e.g. "1st-level" and "Sorcerer, Wizard".
type Spell struct {
	Slug     string `json:"slug" yaml:"slug"`
	Name     string `json:"name" yaml:"name"`
	Desc     string `json:"desc" yaml:"desc"`
	Level    string `json:"level" yaml:"level"`
	School   string `json:"school" yaml:"school"`
	DndClass string `json:"dnd_class" yaml:"dnd_class"`
}
