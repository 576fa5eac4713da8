package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

const sampleIndex = `{
    "aet": {"letters": {"a": 1, "e": 1, "t": 1}, "words": ["ate", "eat", "tea"]},
    "at": {"letters": {"a": 1, "t": 1}, "words": ["at"]},
    "act": {"letters": {"c": 1, "a": 1, "t": 1}, "words": ["cat", "act"]},
    "dgo": {"letters": {"d": 1, "o": 1, "g": 1}, "words": ["dog", "god"]},
    "a": {"letters": {"a": 1}, "words": ["a"]}
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func keys(entries []*Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Key
	}
	return out
}
