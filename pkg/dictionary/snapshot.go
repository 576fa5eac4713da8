package dictionary

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

const snapshotVersion = 1

// snapshot keeps keys and items in parallel so entry order survives the round trip.
type snapshot struct {
	Version int      `msgpack:"v"`
	Keys    []string `msgpack:"k"`
	Items   []Item   `msgpack:"i"`
}

// WriteSnapshot encodes idx as msgpack.
func WriteSnapshot(w io.Writer, idx *Index) error {
	entries := idx.All()
	snap := snapshot{
		Version: snapshotVersion,
		Keys:    make([]string, len(entries)),
		Items:   make([]Item, len(entries)),
	}
	for i, e := range entries {
		snap.Keys[i] = e.Key
		snap.Items[i] = e.item()
	}
	return msgpack.NewEncoder(w).Encode(&snap)
}

func decodeSnapshot(r io.Reader, b *Builder) error {
	var snap snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return fmt.Errorf("snapshot version %d, want %d", snap.Version, snapshotVersion)
	}
	if len(snap.Keys) != len(snap.Items) {
		return fmt.Errorf("snapshot has %d keys but %d items", len(snap.Keys), len(snap.Items))
	}
	for i, key := range snap.Keys {
		if err := b.Add(key, snap.Items[i]); err != nil {
			log.Warnf("Skipping snapshot item: %v", err)
		}
	}
	return nil
}
