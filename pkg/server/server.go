package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/bastiangx/anaserve/internal/logger"
	"github.com/bastiangx/anaserve/pkg/anagram"
	"github.com/bastiangx/anaserve/pkg/config"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for anagram queries
type Server struct {
	solver  *anagram.Solver
	cache   *ResultCache
	version string
	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
	log     *log.Logger
}

// NewServer creates a server using stdin/stdout for IPC
func NewServer(solver *anagram.Solver, cfg *config.Config, version string) *Server {
	return NewServerWithIO(solver, cfg, version, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server reading requests from r and writing responses to w
func NewServerWithIO(solver *anagram.Solver, cfg *config.Config, version string, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		solver:  solver,
		cache:   NewResultCache(cfg.Server.CacheSize),
		version: version,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
		log:     logger.New("ipc"),
	}
}

// Start announces readiness and serves requests until the input is closed.
func (s *Server) Start() error {
	s.log.Debug("Starting server")
	if idx := s.solver.Index(); idx.Loaded() {
		observeIndex(idx)
	} else {
		s.log.Warn("Dictionary not loaded, solve requests will be refused")
	}

	if err := s.send(StatusResponse{Status: StatusReady}); err != nil {
		return err
	}

	for {
		// Frames are read raw first so a badly typed field does not desync the stream.
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.log.Errorf("Reading request: %v", err)
			return err
		}

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.log.Debugf("Invalid request frame: %v", err)
			s.sendError("", "Invalid msgpack request", CodeRejected)
			RequestCount.WithLabelValues("invalid", "rejected").Inc()
			continue
		}
		s.handleRequest(req)
	}
}

// handleRequest dispatches a request by action
func (s *Server) handleRequest(req Request) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	switch req.Action {
	case "", "solve":
		s.handleSolve(req)
	case "lookup":
		s.handleLookup(req)
	case "health":
		status := StatusOK
		if !s.solver.Ready() {
			status = StatusUnavailable
		}
		RequestCount.WithLabelValues("health", status).Inc()
		s.send(StatusResponse{ID: req.ID, Status: status})
	case "info":
		s.handleInfo(req)
	default:
		RequestCount.WithLabelValues("unknown", "rejected").Inc()
		s.sendError(req.ID, fmt.Sprintf("Unknown action: %s", req.Action), CodeUnknown)
	}
}

func (s *Server) handleSolve(req Request) {
	mode := anagram.ModePrefix
	if req.Exact {
		mode = anagram.ModeExact
	}

	idx := s.solver.Index()
	if !idx.Loaded() {
		s.fail("solve", req.ID, anagram.ErrUnavailable)
		return
	}

	start := time.Now()
	if result, ok := s.cache.Get(idx, req.Key, mode); ok {
		CacheHits.Inc()
		RequestCount.WithLabelValues("solve", "ok").Inc()
		s.send(SolveResponse{
			ID:        req.ID,
			Groups:    result,
			Count:     result.Count(),
			TimeTaken: time.Since(start).Microseconds(),
			Cached:    true,
		})
		return
	}

	result, err := s.solver.Solve(req.Key, mode)
	elapsed := time.Since(start)
	if err != nil {
		s.fail("solve", req.ID, err)
		return
	}
	SolveDuration.WithLabelValues(mode.String()).Observe(elapsed.Seconds())
	s.cache.Add(idx, req.Key, mode, result)

	s.log.Debugf("Solved %q (%s) in %v: %d words", req.Key, mode, elapsed, result.Count())
	RequestCount.WithLabelValues("solve", "ok").Inc()
	s.send(SolveResponse{
		ID:        req.ID,
		Groups:    result,
		Count:     result.Count(),
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) handleLookup(req Request) {
	idx := s.solver.Index()
	if !idx.Loaded() {
		s.fail("lookup", req.ID, anagram.ErrUnavailable)
		return
	}
	key, err := anagram.ParseKey(req.Key)
	if err != nil {
		s.fail("lookup", req.ID, err)
		return
	}
	if key.Wildcards > 0 {
		s.fail("lookup", req.ID, fmt.Errorf("%w: wildcards are not allowed in lookups", anagram.ErrRejectedKey))
		return
	}

	words := idx.Anagrams(req.Key)
	if words == nil {
		words = []string{}
	}
	RequestCount.WithLabelValues("lookup", "ok").Inc()
	s.send(LookupResponse{ID: req.ID, Words: words, Count: len(words)})
}

func (s *Server) handleInfo(req Request) {
	idx := s.solver.Index()
	resp := InfoResponse{
		ID:      req.ID,
		Status:  StatusUnavailable,
		Version: s.version,
	}
	if idx.Loaded() {
		resp.Status = StatusOK
		resp.Source = idx.Source()
		resp.Entries = idx.Len()
		resp.Words = idx.WordCount()
		resp.Skipped = idx.Skipped()
		resp.MaxLength = idx.MaxLength()
		if sum := idx.Checksum(); sum != 0 {
			resp.Checksum = strconv.FormatUint(sum, 16)
		}
	}
	RequestCount.WithLabelValues("info", resp.Status).Inc()
	s.send(resp)
}

// fail maps solver errors onto response codes
func (s *Server) fail(action, id string, err error) {
	switch {
	case errors.Is(err, anagram.ErrUnavailable):
		RequestCount.WithLabelValues(action, "unavailable").Inc()
		s.sendError(id, "Anagram service unavailable", CodeUnavailable)
	case errors.Is(err, anagram.ErrRejectedKey):
		RequestCount.WithLabelValues(action, "rejected").Inc()
		s.sendError(id, err.Error(), CodeRejected)
	default:
		RequestCount.WithLabelValues(action, "error").Inc()
		s.log.Errorf("%s request %s failed: %v", action, id, err)
		s.sendError(id, "Internal server error", CodeInternal)
	}
}

// send encodes one response frame
func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
		return err
	}
	return nil
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
