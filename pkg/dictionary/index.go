package dictionary

import (
	"github.com/tchap/go-patricia/v2/patricia"
)

// Index is the read-only word index. It is produced by Builder.Finish and
// may be shared between goroutines without locking.
//
// A nil or zero Index is not loaded and holds no entries.
type Index struct {
	entries   []*Entry // source order
	sorted    []*Entry // by length, source order within a length
	offsets   []int
	trie      *patricia.Trie
	maxLength int
	words     int
	skipped   int
	source    string
	checksum  uint64
	loaded    bool
}

// Loaded reports whether the index was completely built.
func (idx *Index) Loaded() bool {
	return idx != nil && idx.loaded
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// WordCount returns the number of words across all entries.
func (idx *Index) WordCount() int {
	if idx == nil {
		return 0
	}
	return idx.words
}

// MaxLength returns the length of the longest entry.
func (idx *Index) MaxLength() int {
	if idx == nil {
		return 0
	}
	return idx.maxLength
}

// Skipped returns how many source items were dropped while loading.
func (idx *Index) Skipped() int {
	if idx == nil {
		return 0
	}
	return idx.skipped
}

// Source returns the path or name the index was loaded from.
func (idx *Index) Source() string {
	if idx == nil {
		return ""
	}
	return idx.source
}

// Checksum returns the xxhash of the source data, or 0 if unknown.
func (idx *Index) Checksum() uint64 {
	if idx == nil {
		return 0
	}
	return idx.checksum
}

// All returns every entry in source order.
func (idx *Index) All() []*Entry {
	if idx == nil {
		return nil
	}
	return idx.entries[:len(idx.entries):len(idx.entries)]
}

// ByMaxLength returns all entries whose length is at most n,
// ordered by length.
func (idx *Index) ByMaxLength(n int) []*Entry {
	if !idx.Loaded() || n < 1 {
		return nil
	}
	if n > idx.maxLength {
		n = idx.maxLength
	}
	hi := idx.offsets[n+1]
	return idx.sorted[:hi:hi]
}

// ByExactLength returns all entries of length n.
func (idx *Index) ByExactLength(n int) []*Entry {
	if !idx.Loaded() || n < 1 || n > idx.maxLength {
		return nil
	}
	lo, hi := idx.offsets[n], idx.offsets[n+1]
	return idx.sorted[lo:hi:hi]
}

// Lookup returns the entries made of exactly the letters of word,
// ignoring case. Words containing non-letters never match.
func (idx *Index) Lookup(word string) []*Entry {
	if idx == nil || idx.trie == nil {
		return nil
	}
	counts, ok := countLetters(word)
	if !ok || len(counts) == 0 {
		return nil
	}
	item := idx.trie.Get(patricia.Prefix(signature(counts)))
	if item == nil {
		return nil
	}
	entries := item.([]*Entry)
	return entries[:len(entries):len(entries)]
}

// Anagrams returns the words of every entry matching Lookup(word).
func (idx *Index) Anagrams(word string) []string {
	var words []string
	for _, e := range idx.Lookup(word) {
		words = append(words, e.Words...)
	}
	return words
}
