// Package cli handles interactive anagram queries for debugging and testing
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/anaserve/internal/utils"
	"github.com/bastiangx/anaserve/pkg/anagram"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/ergochat/readline"
)

var completer = readline.NewPrefixCompleter(
	readline.PcItem(":help"),
	readline.PcItem(":exact"),
	readline.PcItem(":info"),
	readline.PcItem(":anagrams"),
	readline.PcItem("exit"),
	readline.PcItem("quit"),
)

var (
	lengthStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	wordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
)

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// InputHandler reads keys from the terminal and prints their anagrams
// grouped by length. A key starting with '=' is solved in exact mode.
type InputHandler struct {
	solver   *anagram.Solver
	exact    bool
	maxWords int
	out      io.Writer
}

// NewInputHandler creates a handler. maxWords limits the words printed per
// length, 0 prints all of them.
func NewInputHandler(solver *anagram.Solver, exact bool, maxWords int) *InputHandler {
	return &InputHandler{
		solver:   solver,
		exact:    exact,
		maxWords: maxWords,
		out:      os.Stdout,
	}
}

// Start runs the prompt loop until EOF, interrupt or "exit".
func (h *InputHandler) Start() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:              "> ",
		AutoComplete:        completer,
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprintln(h.out, "AnaServe CLI [BETA]")
	fmt.Fprintln(h.out, "type letters (use * as a wildcard, prefix with = for exact length), :help for commands")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) != 0 {
				continue
			}
			return nil
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if !h.handleInput(strings.TrimSpace(line)) {
			return nil
		}
	}
}

// handleInput processes one line. It returns false when the user asked to leave.
func (h *InputHandler) handleInput(line string) bool {
	switch {
	case line == "":
		return true
	case line == "exit" || line == "quit":
		return false
	case line == ":help":
		fmt.Fprintln(h.out, "  <letters>         words of any length up to the key length")
		fmt.Fprintln(h.out, "  =<letters>        words exactly as long as the key")
		fmt.Fprintln(h.out, "  :exact            toggle exact mode for plain keys")
		fmt.Fprintln(h.out, "  :anagrams <word>  words made of exactly these letters")
		fmt.Fprintln(h.out, "  :info             dictionary statistics")
		return true
	case line == ":exact":
		h.exact = !h.exact
		fmt.Fprintf(h.out, "exact mode: %v\n", h.exact)
		return true
	case line == ":info":
		h.printInfo()
		return true
	case strings.HasPrefix(line, ":anagrams"):
		h.printAnagrams(strings.TrimSpace(strings.TrimPrefix(line, ":anagrams")))
		return true
	}

	mode := anagram.ModePrefix
	if h.exact {
		mode = anagram.ModeExact
	}
	if strings.HasPrefix(line, "=") {
		mode = anagram.ModeExact
		line = line[1:]
	}
	h.solve(line, mode)
	return true
}

func (h *InputHandler) solve(key string, mode anagram.Mode) {
	start := time.Now()
	result, err := h.solver.Solve(key, mode)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for key '%s' (%s)", elapsed, key, mode)

	switch {
	case errors.Is(err, anagram.ErrUnavailable):
		log.Error("Dictionary is not loaded")
		return
	case err != nil:
		log.Errorf("Invalid key '%s': only letters and '*' are allowed", key)
		return
	}
	if len(result) == 0 {
		log.Warnf("No anagrams found for key: '%s'", key)
		return
	}

	fmt.Fprintf(h.out, "Found %s words for '%s' (%s):\n", utils.FormatWithCommas(result.Count()), key, mode)
	for _, n := range result.Lengths() {
		words := result[n]
		header := lengthStyle.Render(fmt.Sprintf("%2d letters (%d)", n, len(words)))
		fmt.Fprintf(h.out, "%s  %s\n", header, wordStyle.Render(utils.JoinLimited(words, " ", h.maxWords)))
	}
}

func (h *InputHandler) printAnagrams(word string) {
	idx := h.solver.Index()
	if !idx.Loaded() {
		log.Error("Dictionary is not loaded")
		return
	}
	words := idx.Anagrams(word)
	if len(words) == 0 {
		log.Warnf("No anagrams found for word: '%s'", word)
		return
	}
	fmt.Fprintln(h.out, wordStyle.Render(utils.JoinLimited(words, " ", h.maxWords)))
}

func (h *InputHandler) printInfo() {
	idx := h.solver.Index()
	if !idx.Loaded() {
		log.Error("Dictionary is not loaded")
		return
	}
	fmt.Fprintf(h.out, "source:     %s\n", idx.Source())
	fmt.Fprintf(h.out, "entries:    %s\n", utils.FormatWithCommas(idx.Len()))
	fmt.Fprintf(h.out, "words:      %s\n", utils.FormatWithCommas(idx.WordCount()))
	fmt.Fprintf(h.out, "skipped:    %s\n", utils.FormatWithCommas(idx.Skipped()))
	fmt.Fprintf(h.out, "longest:    %d\n", idx.MaxLength())
	fmt.Fprintf(h.out, "checksum:   %016x\n", idx.Checksum())
}
