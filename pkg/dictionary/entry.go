package dictionary

import (
	"slices"
	"strings"
	"unicode"
)

// Item is one value of a JSON index, stored under its composition key.
type Item struct {
	Letters map[string]int `json:"letters" msgpack:"l"`
	Words   []string       `json:"words" msgpack:"w"`
}

// Entry groups the dictionary words that share one letter composition.
// Entries are owned by an Index and must not be modified.
type Entry struct {
	Key     string
	Length  int
	Letters map[rune]int
	Words   []string
}

// Signature returns the entry's letters in sorted order, each repeated by its count.
func (e *Entry) Signature() string {
	return signature(e.Letters)
}

func (e *Entry) item() Item {
	letters := make(map[string]int, len(e.Letters))
	for r, n := range e.Letters {
		letters[string(r)] = n
	}
	return Item{Letters: letters, Words: e.Words}
}

func signature(counts map[rune]int) string {
	runes := make([]rune, 0, len(counts))
	for r := range counts {
		runes = append(runes, r)
	}
	slices.Sort(runes)

	var sb strings.Builder
	for _, r := range runes {
		for i := 0; i < counts[r]; i++ {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// countLetters folds s to lowercase and counts its letters.
// ok is false when s holds anything but letters.
func countLetters(s string) (counts map[rune]int, ok bool) {
	counts = make(map[rune]int, len(s))
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return nil, false
		}
		counts[unicode.ToLower(r)]++
	}
	return counts, true
}
