package server

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/anaserve/pkg/anagram"
	"github.com/bastiangx/anaserve/pkg/config"
	"github.com/bastiangx/anaserve/pkg/dictionary"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

const testIndex = `{
    "aet": {"letters": {"a": 1, "e": 1, "t": 1}, "words": ["ate", "eat", "tea"]},
    "at": {"letters": {"a": 1, "t": 1}, "words": ["at"]},
    "act": {"letters": {"c": 1, "a": 1, "t": 1}, "words": ["cat"]},
    "a": {"letters": {"a": 1}, "words": ["a"]}
}`

func loadedSolver(t *testing.T) *anagram.Solver {
	t.Helper()
	idx, err := dictionary.Decode(strings.NewReader(testIndex))
	require.NoError(t, err)
	return anagram.NewSolver(idx)
}

// session feeds the requests to a server and returns a decoder over its
// output, positioned after the ready frame.
func session(t *testing.T, solver *anagram.Solver, cfg *config.Config, requests ...any) *msgpack.Decoder {
	t.Helper()
	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, req := range requests {
		require.NoError(t, enc.Encode(req))
	}

	s := NewServerWithIO(solver, cfg, "test", &in, &out)
	require.NoError(t, s.Start())

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	require.NoError(t, dec.Decode(&ready))
	assert.Equal(t, StatusReady, ready.Status)
	return dec
}

func TestSolveRequest(t *testing.T) {
	dec := session(t, loadedSolver(t), nil,
		Request{ID: "r1", Key: "eat"},
		Request{ID: "r2", Key: "EAT", Exact: true},
	)

	var resp SolveResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "r1", resp.ID)
	assert.Equal(t, map[int][]string{
		1: {"a"},
		2: {"at"},
		3: {"ate", "eat", "tea"},
	}, resp.Groups)
	assert.Equal(t, 5, resp.Count)
	assert.False(t, resp.Cached)

	resp = SolveResponse{}
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "r2", resp.ID)
	assert.Equal(t, map[int][]string{3: {"ate", "eat", "tea"}}, resp.Groups)
}

func TestSolveNoMatchesIsNotAnError(t *testing.T) {
	dec := session(t, loadedSolver(t), nil, Request{ID: "r1", Key: "xyz"})

	var resp map[string]any
	require.NoError(t, dec.Decode(&resp))
	assert.NotContains(t, resp, "e")
	assert.EqualValues(t, 0, resp["c"])
}

func TestSolveCached(t *testing.T) {
	dec := session(t, loadedSolver(t), nil,
		Request{ID: "r1", Key: "cat"},
		Request{ID: "r2", Key: "CAT"},
		Request{ID: "r3", Key: "cat", Exact: true},
	)

	var first, second, third SolveResponse
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))
	require.NoError(t, dec.Decode(&third))

	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Groups, second.Groups)
	assert.False(t, third.Cached, "modes are cached separately")
}

func TestSolveCacheDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.CacheSize = 0
	dec := session(t, loadedSolver(t), cfg,
		Request{ID: "r1", Key: "cat"},
		Request{ID: "r2", Key: "cat"},
	)

	for i := 0; i < 2; i++ {
		var resp SolveResponse
		require.NoError(t, dec.Decode(&resp))
		assert.False(t, resp.Cached)
	}
}

func TestSolveRejected(t *testing.T) {
	dec := session(t, loadedSolver(t), nil, Request{ID: "r1", Key: "ea7"})

	var resp ErrorResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "r1", resp.ID)
	assert.Equal(t, CodeRejected, resp.Code)
	assert.Contains(t, resp.Error, "'7'")
}

func TestSolveUnavailable(t *testing.T) {
	dec := session(t, anagram.NewSolver(nil), nil,
		Request{ID: "r1", Key: "eat"},
		Request{ID: "r2", Key: "e4t"},
		Request{ID: "r3", Action: "lookup", Key: "eat"},
	)

	for _, id := range []string{"r1", "r2", "r3"} {
		var resp ErrorResponse
		require.NoError(t, dec.Decode(&resp))
		assert.Equal(t, id, resp.ID)
		assert.Equal(t, CodeUnavailable, resp.Code)
	}
}

func TestHealth(t *testing.T) {
	dec := session(t, loadedSolver(t), nil, Request{ID: "h1", Action: "health"})
	var resp StatusResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, StatusResponse{ID: "h1", Status: StatusOK}, resp)

	dec = session(t, anagram.NewSolver(nil), nil, Request{ID: "h2", Action: "health"})
	resp = StatusResponse{}
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, StatusResponse{ID: "h2", Status: StatusUnavailable}, resp)
}

func TestInfo(t *testing.T) {
	dec := session(t, loadedSolver(t), nil, Request{ID: "i1", Action: "info"})

	var resp InfoResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "i1", resp.ID)
	assert.Equal(t, StatusOK, resp.Status)
	assert.Equal(t, "test", resp.Version)
	assert.Equal(t, 4, resp.Entries)
	assert.Equal(t, 6, resp.Words)
	assert.Equal(t, 3, resp.MaxLength)
}

func TestLookup(t *testing.T) {
	dec := session(t, loadedSolver(t), nil,
		Request{ID: "l1", Action: "lookup", Key: "Tea"},
		Request{ID: "l2", Action: "lookup", Key: "zzz"},
		Request{ID: "l3", Action: "lookup", Key: "te*"},
	)

	var resp LookupResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, LookupResponse{ID: "l1", Words: []string{"ate", "eat", "tea"}, Count: 3}, resp)

	resp = LookupResponse{}
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "l2", resp.ID)
	assert.Empty(t, resp.Words)
	assert.Zero(t, resp.Count)

	var errResp ErrorResponse
	require.NoError(t, dec.Decode(&errResp))
	assert.Equal(t, CodeRejected, errResp.Code)
}

func TestUnknownAction(t *testing.T) {
	dec := session(t, loadedSolver(t), nil, Request{ID: "u1", Action: "shuffle"})

	var resp ErrorResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "u1", resp.ID)
	assert.Equal(t, CodeUnknown, resp.Code)
}

func TestGeneratedID(t *testing.T) {
	dec := session(t, loadedSolver(t), nil, Request{Key: "at"})

	var resp SolveResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Len(t, resp.ID, 36)
}

func TestInvalidFrameKeepsServing(t *testing.T) {
	dec := session(t, loadedSolver(t), nil,
		"not a request",
		Request{ID: "r1", Key: "at"},
	)

	var errResp ErrorResponse
	require.NoError(t, dec.Decode(&errResp))
	assert.Equal(t, CodeRejected, errResp.Code)

	var resp SolveResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "r1", resp.ID)
	assert.Equal(t, 2, resp.Count)
}
