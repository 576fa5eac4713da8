/*
Package dictionary builds the in-memory word index used for anagram queries.

The main source is a JSON object mapping composition keys to their letter
counts and words:

	{
	    "aet": {"letters": {"a": 1, "e": 1, "t": 1}, "words": ["ate", "eat", "tea"]},
	    "at":  {"letters": {"a": 1, "t": 1}, "words": ["at"]}
	}

Plain word lists (.txt) and msgpack snapshots (.msgpack) are accepted too.
Items that are malformed are logged and skipped; a file that cannot be read
or decoded at all yields a *LoadError and no Index.
*/
package dictionary

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash"
	"github.com/charmbracelet/log"
)

// LoadError reports a dictionary source that could not be read or decoded as a whole.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("dictionary: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads a dictionary file and builds its Index.
// The format is chosen by extension, see DetectFileFormat.
func Load(path string) (*Index, error) {
	log.Debugf("Loading dictionary index from %s", path)

	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	b := NewBuilder()
	b.Source(path, xxhash.Sum64(data))

	switch format {
	case FormatJSON:
		err = decodeJSON(bytes.NewReader(data), b)
	case FormatWordList:
		err = decodeWordList(bytes.NewReader(data), b)
	case FormatSnapshot:
		err = decodeSnapshot(bytes.NewReader(data), b)
	default:
		err = fmt.Errorf("unsupported format %v", format)
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	idx := b.Finish()
	log.Debugf("Correctly loaded %d entries from %s (%s); longest key: %d",
		idx.Len(), path, format, idx.MaxLength())
	return idx, nil
}

// Decode builds an Index from a JSON composition index.
func Decode(r io.Reader) (*Index, error) {
	b := NewBuilder()
	if err := decodeJSON(r, b); err != nil {
		return nil, &LoadError{Path: "<reader>", Err: err}
	}
	return b.Finish(), nil
}

// decodeJSON streams the top-level object so entries keep their file order.
func decodeJSON(r io.Reader, b *Builder) error {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read index: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("index must be a JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		key, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("read value of %q: %w", key, err)
		}

		var item Item
		if err := json.Unmarshal(raw, &item); err != nil {
			b.skipped++
			log.Warnf("Skipping dictionary item %q: %v", key, err)
			continue
		}
		if err := b.Add(key, item); err != nil {
			log.Warnf("Skipping dictionary item: %v", err)
		}
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("read end of index: %w", err)
	}
	return nil
}

func decodeWordList(r io.Reader, b *Builder) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		if len(bytes.TrimSpace(scanner.Bytes())) == 0 {
			continue
		}
		if err := b.AddWord(scanner.Text()); err != nil {
			log.Warnf("Skipping line %d: %v", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read word list: %w", err)
	}
	return nil
}

// WriteJSON writes idx as a JSON composition index, keeping entry order.
func WriteJSON(w io.Writer, idx *Index) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("{"); err != nil {
		return err
	}
	for i, e := range idx.All() {
		key, err := json.Marshal(e.Key)
		if err != nil {
			return err
		}
		value, err := json.Marshal(e.item())
		if err != nil {
			return fmt.Errorf("encode %q: %w", e.Key, err)
		}
		sep := ","
		if i == 0 {
			sep = ""
		}
		if _, err := fmt.Fprintf(bw, "%s\n    %s: %s", sep, key, value); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("\n}\n"); err != nil {
		return err
	}
	return bw.Flush()
}
