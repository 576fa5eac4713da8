package anagram

import "github.com/bastiangx/anaserve/pkg/dictionary"

// Formable reports whether the words of e can be spelled from k.
//
// Without wildcards every letter of e must be supplied by k in at least the
// same quantity. With wildcards, e must share at least one letter with k,
// and the shared letters (each counted up to the smaller of supply and
// demand) plus the wildcards must cover e's length. The wildcard test only
// compares totals; it does not check which letters the wildcards replace.
func Formable(k Key, e *dictionary.Entry) bool {
	if k.Wildcards == 0 {
		for r, need := range e.Letters {
			if k.Letters[r] < need {
				return false
			}
		}
		return true
	}

	shared, covered := 0, 0
	for r, need := range e.Letters {
		have, ok := k.Letters[r]
		if !ok {
			continue
		}
		shared++
		covered += min(have, need)
	}
	if shared == 0 {
		return false
	}
	return covered+k.Wildcards >= e.Length
}
