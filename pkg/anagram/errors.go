package anagram

import "errors"

var (
	// ErrUnavailable is returned while no loaded index is attached to the solver.
	ErrUnavailable = errors.New("anagram: service unavailable")

	// ErrRejectedKey is returned for keys holding anything but letters and '*'.
	ErrRejectedKey = errors.New("anagram: key could not be processed")
)
