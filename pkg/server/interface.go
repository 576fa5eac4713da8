/*
Package server implements msgpack IPC for anagram queries.

Clients write msgpack maps to stdin and read one msgpack map per request from
stdout. The first frame written by the server is {"status": "ready"}.

# Requests

A solve request carries the key and, optionally, exact mode:

	{"id": "req_001", "k": "ca*"}
	{"id": "req_002", "k": "eat", "x": true}

The response groups the words by length. Time is in microseconds, "h" is set
when the result came from the cache:

	{"id": "req_002", "g": {3: ["ate", "eat", "tea"]}, "c": 3, "t": 41}

Other actions:

	{"id": "h1", "action": "health"}          -> {"id": "h1", "status": "ok"}
	{"id": "i1", "action": "info"}            -> index size, longest key, checksum
	{"id": "l1", "action": "lookup", "k": "tea"} -> {"id": "l1", "w": ["ate", "eat", "tea"], "c": 3}

Requests without an id get a generated one.

# Errors

	{"id": "req_003", "e": "anagram: key could not be processed: '1' at offset 2", "c": 400}

Codes: 400 rejected key, 404 unknown action, 503 dictionary not loaded,
500 anything else.
*/
package server

// Request is a single client message.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action,omitempty"` // "solve" (default), "lookup", "health", "info"
	Key    string `msgpack:"k,omitempty"`
	Exact  bool   `msgpack:"x,omitempty"`
}

// SolveResponse carries the words of a solve request grouped by length.
type SolveResponse struct {
	ID        string           `msgpack:"id"`
	Groups    map[int][]string `msgpack:"g"`
	Count     int              `msgpack:"c"`
	TimeTaken int64            `msgpack:"t"`
	Cached    bool             `msgpack:"h,omitempty"`
}

// LookupResponse lists the exact anagrams of a word.
type LookupResponse struct {
	ID    string   `msgpack:"id"`
	Words []string `msgpack:"w"`
	Count int      `msgpack:"c"`
}

// StatusResponse answers health checks and announces readiness.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// InfoResponse describes the loaded dictionary.
type InfoResponse struct {
	ID        string `msgpack:"id"`
	Status    string `msgpack:"status"`
	Version   string `msgpack:"version"`
	Source    string `msgpack:"source,omitempty"`
	Entries   int    `msgpack:"entries"`
	Words     int    `msgpack:"words"`
	Skipped   int    `msgpack:"skipped"`
	MaxLength int    `msgpack:"max_length"`
	Checksum  string `msgpack:"checksum,omitempty"`
}

// ErrorResponse holds basic error information for failed requests.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

const (
	StatusOK          = "ok"
	StatusReady       = "ready"
	StatusUnavailable = "unavailable"
)

const (
	CodeRejected    = 400
	CodeUnknown     = 404
	CodeInternal    = 500
	CodeUnavailable = 503
)
