/*
Package anagram answers "which words can be made from these letters" queries
against a dictionary.Index.

	solver := anagram.NewSolver(idx)
	result, err := solver.Solve("ca*", anagram.ModePrefix)
	switch {
	case errors.Is(err, anagram.ErrUnavailable):
		// index not loaded yet, retry later
	case errors.Is(err, anagram.ErrRejectedKey):
		// bad input
	}

A Result maps word length to the words of that length. In ModePrefix it holds
every length up to the key length, in ModeExact only the key length. An
empty Result with a nil error means nothing matched.
*/
package anagram

import (
	"slices"
	"sync/atomic"

	"github.com/bastiangx/anaserve/pkg/dictionary"
	"github.com/charmbracelet/log"
)

// Mode selects which result lengths a query may produce.
type Mode int

const (
	// ModePrefix returns words of any length up to the key length.
	ModePrefix Mode = iota
	// ModeExact returns only words as long as the key.
	ModeExact
)

func (m Mode) String() string {
	if m == ModeExact {
		return "exact"
	}
	return "prefix"
}

// Result groups matched words by their length.
type Result map[int][]string

// Lengths returns the populated lengths in ascending order.
func (r Result) Lengths() []int {
	lengths := make([]int, 0, len(r))
	for n := range r {
		lengths = append(lengths, n)
	}
	slices.Sort(lengths)
	return lengths
}

// Count returns the number of words across all lengths.
func (r Result) Count() int {
	total := 0
	for _, words := range r {
		total += len(words)
	}
	return total
}

// Solver runs queries against the currently attached index.
// It is safe for concurrent use.
type Solver struct {
	index atomic.Pointer[dictionary.Index]
}

// NewSolver creates a solver. idx may be nil; queries then fail with
// ErrUnavailable until SetIndex attaches a loaded index.
func NewSolver(idx *dictionary.Index) *Solver {
	s := &Solver{}
	if idx != nil {
		s.index.Store(idx)
	}
	return s
}

// SetIndex attaches idx. Indexes that are not loaded are refused.
func (s *Solver) SetIndex(idx *dictionary.Index) bool {
	if !idx.Loaded() {
		return false
	}
	s.index.Store(idx)
	return true
}

// Index returns the attached index, which may be nil.
func (s *Solver) Index() *dictionary.Index {
	return s.index.Load()
}

// Ready reports whether queries can be served.
func (s *Solver) Ready() bool {
	return s.index.Load().Loaded()
}

// Solve finds every entry formable from key, grouped by length.
func (s *Solver) Solve(key string, mode Mode) (Result, error) {
	idx := s.index.Load()
	if !idx.Loaded() {
		return nil, ErrUnavailable
	}

	k, err := ParseKey(key)
	if err != nil {
		log.Debugf("Rejected key %q: %v", key, err)
		return nil, err
	}

	var candidates []*dictionary.Entry
	if mode == ModeExact {
		candidates = idx.ByExactLength(k.Length)
	} else {
		candidates = idx.ByMaxLength(k.Length)
	}

	result := make(Result)
	for _, e := range candidates {
		if !Formable(k, e) {
			continue
		}
		// Appending to a nil bucket copies, so index word slices are never shared.
		result[e.Length] = append(result[e.Length], e.Words...)
	}
	return result, nil
}
