package anagram

import (
	"strings"
	"sync"
	"testing"

	"github.com/bastiangx/anaserve/pkg/dictionary"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

const testIndex = `{
    "aet": {"letters": {"a": 1, "e": 1, "t": 1}, "words": ["ate", "eat", "tea"]},
    "at": {"letters": {"a": 1, "t": 1}, "words": ["at"]},
    "act": {"letters": {"c": 1, "a": 1, "t": 1}, "words": ["cat"]},
    "dgo": {"letters": {"d": 1, "o": 1, "g": 1}, "words": ["dog"]},
    "a": {"letters": {"a": 1}, "words": ["a"]},
    "ta": {"letters": {"t": 1, "a": 1}, "words": ["ta"]},
    "aabt": {"letters": {"a": 2, "b": 1, "t": 1}, "words": ["abat"]},
    "eestt": {"letters": {"e": 2, "s": 1, "t": 2}, "words": ["tests", "setts"]}
}`

func newTestSolver(t *testing.T) *Solver {
	t.Helper()
	idx, err := dictionary.Decode(strings.NewReader(testIndex))
	require.NoError(t, err)
	return NewSolver(idx)
}

func TestSolvePrefix(t *testing.T) {
	s := newTestSolver(t)

	result, err := s.Solve("eat", ModePrefix)
	require.NoError(t, err)
	assert.Equal(t, Result{
		1: {"a"},
		2: {"at", "ta"},
		3: {"ate", "eat", "tea"},
	}, result)
	assert.Equal(t, 6, result.Count())
	assert.Equal(t, []int{1, 2, 3}, result.Lengths())
}

func TestSolveExact(t *testing.T) {
	s := newTestSolver(t)

	result, err := s.Solve("EAT", ModeExact)
	require.NoError(t, err)
	assert.Equal(t, Result{3: {"ate", "eat", "tea"}}, result)
}

func TestSolveRepeatedLetters(t *testing.T) {
	s := newTestSolver(t)

	result, err := s.Solve("abt", ModePrefix)
	require.NoError(t, err)
	assert.NotContains(t, result, 4, "abat needs two a's")

	result, err = s.Solve("tabat", ModePrefix)
	require.NoError(t, err)
	assert.Equal(t, []string{"abat"}, result[4])
}

func TestSolveWildcard(t *testing.T) {
	s := newTestSolver(t)

	result, err := s.Solve("ca*", ModePrefix)
	require.NoError(t, err)
	assert.Contains(t, result[3], "cat")
	assert.NotContains(t, result[3], "dog", "no shared letter with the key")

	result, err = s.Solve("ca*", ModeExact)
	require.NoError(t, err)
	// "aet" shares a, and a + 1 wildcard falls short of 3.
	assert.Equal(t, Result{3: {"cat"}}, result)
}

func TestSolveWildcardCountsTotalsOnly(t *testing.T) {
	s := newTestSolver(t)

	// Shares only "t" with tests/setts; one t plus four wildcards covers five letters.
	result, err := s.Solve("t****", ModeExact)
	require.NoError(t, err)
	assert.Equal(t, []string{"tests", "setts"}, result[5])
}

func TestSolveWildcardsAloneMatchNothing(t *testing.T) {
	s := newTestSolver(t)

	result, err := s.Solve("***", ModePrefix)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestSolveNoMatches(t *testing.T) {
	s := newTestSolver(t)

	result, err := s.Solve("xyz", ModePrefix)
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)

	result, err = s.Solve("", ModePrefix)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestSolveRejected(t *testing.T) {
	s := newTestSolver(t)

	for _, key := range []string{"ea1", "e a", "eat!", "e-a"} {
		result, err := s.Solve(key, ModePrefix)
		assert.ErrorIs(t, err, ErrRejectedKey, key)
		assert.Nil(t, result, key)
	}
}

func TestSolveUnavailable(t *testing.T) {
	s := NewSolver(nil)
	assert.False(t, s.Ready())

	_, err := s.Solve("eat", ModePrefix)
	assert.ErrorIs(t, err, ErrUnavailable)

	// Unavailable wins over rejection.
	_, err = s.Solve("e4t", ModeExact)
	assert.ErrorIs(t, err, ErrUnavailable)

	assert.False(t, s.SetIndex(&dictionary.Index{}))
	_, err = s.Solve("eat", ModePrefix)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSolveSetIndex(t *testing.T) {
	idx, err := dictionary.Decode(strings.NewReader(testIndex))
	require.NoError(t, err)

	s := NewSolver(nil)
	require.True(t, s.SetIndex(idx))
	assert.True(t, s.Ready())

	result, err := s.Solve("at", ModeExact)
	require.NoError(t, err)
	assert.Equal(t, Result{2: {"at", "ta"}}, result)
}

func TestSolveIdempotent(t *testing.T) {
	s := newTestSolver(t)

	first, err := s.Solve("teats", ModePrefix)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := s.Solve("teats", ModePrefix)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSolveDoesNotShareIndexWords(t *testing.T) {
	s := newTestSolver(t)

	result, err := s.Solve("eat", ModeExact)
	require.NoError(t, err)
	result[3][0] = "mutated"
	result[3] = append(result[3], "extra")

	again, err := s.Solve("eat", ModeExact)
	require.NoError(t, err)
	assert.Equal(t, []string{"ate", "eat", "tea"}, again[3])
}

func TestSolveBucketLengths(t *testing.T) {
	s := newTestSolver(t)

	for _, key := range []string{"a", "eat", "ca*", "tabat", "settee", "t****", "zz"} {
		k, err := ParseKey(key)
		require.NoError(t, err)

		prefix, err := s.Solve(key, ModePrefix)
		require.NoError(t, err)
		for n := range prefix {
			assert.LessOrEqual(t, n, k.Length, key)
		}

		exact, err := s.Solve(key, ModeExact)
		require.NoError(t, err)
		for n := range exact {
			assert.Equal(t, k.Length, n, key)
		}
	}
}

func TestSolveWithoutWildcardsIsSubMultiset(t *testing.T) {
	s := newTestSolver(t)
	idx := s.Index()

	for _, key := range []string{"eat", "settee", "tabat", "god", "tast"} {
		k, err := ParseKey(key)
		require.NoError(t, err)
		result, err := s.Solve(key, ModePrefix)
		require.NoError(t, err)

		for _, e := range idx.All() {
			formable := true
			for r, n := range e.Letters {
				if k.Letters[r] < n {
					formable = false
				}
			}
			for _, w := range e.Words {
				if formable && e.Length <= k.Length {
					assert.Contains(t, result[e.Length], w, key)
				} else {
					assert.NotContains(t, result[e.Length], w, key)
				}
			}
		}
	}
}

func TestSolveConcurrent(t *testing.T) {
	s := newTestSolver(t)
	want, err := s.Solve("settea", ModePrefix)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got, err := s.Solve("settea", ModePrefix)
				assert.NoError(t, err)
				assert.Equal(t, want, got)
			}
		}()
	}
	wg.Wait()
}
