// Package testutil provides deterministic collaborators for tests.
package testutil

import (
	"fmt"
	"sync"
	"testing"
)

// SequenceSource replays fixed die faces. Each call to Intn(n) returns the
// next face minus one, so faces are written the way they appear on the die.
type SequenceSource struct {
	t     testing.TB
	mu    sync.Mutex
	faces []int
	calls int
}

// NewSequenceSource returns a source that yields faces in order.
//
// Postcondition: The test fails if more draws are requested than faces given,
// or if a face is outside [1, n] for the requested n.
func NewSequenceSource(t testing.TB, faces ...int) *SequenceSource {
	t.Helper()
	return &SequenceSource{t: t, faces: faces}
}

// Intn implements dice.Source.
func (s *SequenceSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls >= len(s.faces) {
		s.t.Fatalf("sequence source exhausted after %d draws", s.calls)
		return 0
	}
	face := s.faces[s.calls]
	s.calls++
	if face < 1 || face > n {
		s.t.Fatalf("face %d outside [1, %d]", face, n)
		return 0
	}
	return face - 1
}

// Calls returns how many draws have been made.
func (s *SequenceSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// MarkerStyler decorates values with readable text markers:
// "!v!" for a critical failure, "*v*" for a critical success and "~v~" for
// a struck value.
type MarkerStyler struct{}

func (MarkerStyler) CriticalFailure(s string) string { return fmt.Sprintf("!%s!", s) }
func (MarkerStyler) CriticalSuccess(s string) string { return fmt.Sprintf("*%s*", s) }
func (MarkerStyler) Struck(s string) string          { return fmt.Sprintf("~%s~", s) }
