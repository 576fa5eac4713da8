package dictionary

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

var (
	// ErrMalformedItem is returned by Builder.Add and Builder.AddWord for items
	// that are skipped instead of indexed.
	ErrMalformedItem = errors.New("dictionary: malformed item")

	// ErrBuilderFinished is returned when a Builder is used after Finish.
	ErrBuilderFinished = errors.New("dictionary: builder already finished")
)

// Builder accumulates entries for a single Index.
// Entry order follows the order of Add and AddWord calls.
type Builder struct {
	entries    []*Entry
	keys       map[string]int
	maxLength  int
	words      int
	skipped    int
	mismatched int
	source     string
	checksum   uint64
	finished   bool
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{keys: make(map[string]int)}
}

// Source records where the data came from and its checksum.
func (b *Builder) Source(name string, checksum uint64) {
	b.source = name
	b.checksum = checksum
}

// Add validates a source item and appends it as a new entry.
// The entry length is the rune length of key; a disagreement with the
// letter counts is logged and otherwise tolerated.
func (b *Builder) Add(key string, item Item) error {
	if b.finished {
		return ErrBuilderFinished
	}
	if err := b.add(key, item); err != nil {
		b.skipped++
		return err
	}
	return nil
}

func (b *Builder) add(key string, item Item) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrMalformedItem)
	}
	if _, dup := b.keys[key]; dup {
		return fmt.Errorf("%w: duplicate key %q", ErrMalformedItem, key)
	}
	if len(item.Letters) == 0 {
		return fmt.Errorf("%w: key %q has no letters", ErrMalformedItem, key)
	}
	if len(item.Words) == 0 {
		return fmt.Errorf("%w: key %q has no words", ErrMalformedItem, key)
	}

	letters := make(map[rune]int, len(item.Letters))
	sum := 0
	for s, n := range item.Letters {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError || size != len(s) || !unicode.IsLetter(r) {
			return fmt.Errorf("%w: key %q has invalid letter %q", ErrMalformedItem, key, s)
		}
		if n < 1 {
			return fmt.Errorf("%w: key %q has count %d for %q", ErrMalformedItem, key, n, s)
		}
		letters[unicode.ToLower(r)] += n
		sum += n
	}

	length := utf8.RuneCountInString(key)
	if sum != length {
		b.mismatched++
		log.Warnf("Key %q has length %d but its letters sum to %d", key, length, sum)
	}

	words := make([]string, len(item.Words))
	copy(words, item.Words)
	b.push(&Entry{Key: key, Length: length, Letters: letters, Words: words})
	return nil
}

// AddWord indexes a single word under its sorted, lowercased letters.
// Words sharing a composition are grouped in the order they are added.
func (b *Builder) AddWord(word string) error {
	if b.finished {
		return ErrBuilderFinished
	}
	word = strings.TrimSpace(word)
	if word == "" {
		b.skipped++
		return fmt.Errorf("%w: empty word", ErrMalformedItem)
	}
	counts, ok := countLetters(word)
	if !ok {
		b.skipped++
		return fmt.Errorf("%w: word %q contains non-letters", ErrMalformedItem, word)
	}

	key := signature(counts)
	if i, exists := b.keys[key]; exists {
		e := b.entries[i]
		e.Words = append(e.Words, word)
		b.words++
		return nil
	}
	b.push(&Entry{Key: key, Length: utf8.RuneCountInString(key), Letters: counts, Words: []string{word}})
	return nil
}

func (b *Builder) push(e *Entry) {
	b.keys[e.Key] = len(b.entries)
	b.entries = append(b.entries, e)
	b.words += len(e.Words)
	b.maxLength = max(b.maxLength, e.Length)
}

// Skipped reports how many items were rejected so far.
func (b *Builder) Skipped() int {
	return b.skipped
}

// Finish freezes the accumulated entries into a loaded Index.
// The builder cannot be used afterwards.
func (b *Builder) Finish() *Index {
	b.finished = true

	// offsets[n] is the position of the first entry of length n in sorted.
	offsets := make([]int, b.maxLength+2)
	for _, e := range b.entries {
		offsets[e.Length+1]++
	}
	for n := 1; n < len(offsets); n++ {
		offsets[n] += offsets[n-1]
	}
	sorted := make([]*Entry, len(b.entries))
	next := make([]int, len(offsets))
	copy(next, offsets)
	for _, e := range b.entries {
		sorted[next[e.Length]] = e
		next[e.Length]++
	}

	trie := patricia.NewTrie()
	for _, e := range b.entries {
		sig := patricia.Prefix(e.Signature())
		if item := trie.Get(sig); item != nil {
			trie.Set(sig, append(item.([]*Entry), e))
			continue
		}
		trie.Insert(sig, []*Entry{e})
	}

	if b.mismatched > 0 {
		log.Warnf("%d entries have a key length that disagrees with their letter counts", b.mismatched)
	}
	log.Debugf("Index built: %d entries, %d words, %d skipped, longest key %d",
		len(b.entries), b.words, b.skipped, b.maxLength)

	idx := &Index{
		entries:   b.entries,
		sorted:    sorted,
		offsets:   offsets,
		trie:      trie,
		maxLength: b.maxLength,
		words:     b.words,
		skipped:   b.skipped,
		source:    b.source,
		checksum:  b.checksum,
		loaded:    true,
	}
	b.entries = nil
	b.keys = nil
	return idx
}
