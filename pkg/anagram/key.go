package anagram

import (
	"fmt"
	"unicode"
)

// Wildcard stands in for any single letter.
const Wildcard = '*'

// Key is a validated, lowercased query.
type Key struct {
	Raw       string
	Letters   map[rune]int
	Wildcards int
	// Length counts every rune of the key, wildcards included.
	Length int
}

// ParseKey validates raw and counts its letters.
// Any rune that is neither a letter nor '*' rejects the key.
func ParseKey(raw string) (Key, error) {
	k := Key{Raw: raw, Letters: make(map[rune]int, len(raw))}
	for i, r := range raw {
		switch {
		case r == Wildcard:
			k.Wildcards++
		case unicode.IsLetter(r):
			k.Letters[unicode.ToLower(r)]++
		default:
			return Key{}, fmt.Errorf("%w: %q at offset %d", ErrRejectedKey, r, i)
		}
		k.Length++
	}
	return k, nil
}

// Normalized returns the lowercased key text.
func (k Key) Normalized() string {
	runes := make([]rune, 0, k.Length)
	for _, r := range k.Raw {
		runes = append(runes, unicode.ToLower(r))
	}
	return string(runes)
}
