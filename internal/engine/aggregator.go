package engine

import (
	"sort"
	"strings"

	"github.com/boardlab/chessdesk/internal/uci"
)

// historyCap bounds the rolling raw-output history kept for display.
const historyCap = 100

// Aggregator folds classified engine output into the rolling output history
// and the current per-variation analysis map. It is not safe for concurrent
// use; the Controller serializes access under its own lock.
type Aggregator struct {
	history  []uci.OutputLine
	lines    map[int]uci.Info
	bestMove string
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{lines: make(map[int]uci.Info)}
}

// Ingest records one classified output line. Info lines carrying a complete
// analysis update (depth + score + pv) replace the entry for their multipv
// index; partial info lines only land in history. A bestmove line records
// the engine's chosen move.
func (a *Aggregator) Ingest(out uci.OutputLine) {
	a.history = append(a.history, out)
	if excess := len(a.history) - historyCap; excess > 0 {
		a.history = a.history[excess:]
	}

	switch out.Kind {
	case uci.KindInfo:
		inf := uci.ParseInfo(out.Body)
		if inf.HasAnalysis() {
			a.lines[inf.MultiPVOr1()] = inf
		}
	case uci.KindBestMove:
		if fields := strings.Fields(out.Body); len(fields) > 0 {
			a.bestMove = fields[0]
		}
	}
}

// AddMarker appends a synthetic line (e.g. "[Engine started]") to history.
func (a *Aggregator) AddMarker(text string) {
	a.Ingest(uci.Classify(text))
}

// SortedLines returns the current analysis lines ascending by multipv
// index, so the primary line comes first.
func (a *Aggregator) SortedLines() []uci.Info {
	lines := make([]uci.Info, 0, len(a.lines))
	for _, inf := range a.lines {
		lines = append(lines, inf)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].MultiPVOr1() < lines[j].MultiPVOr1()
	})
	return lines
}

// History returns a copy of the rolling output history, oldest first.
func (a *Aggregator) History() []uci.OutputLine {
	return append([]uci.OutputLine(nil), a.history...)
}

// BestMove returns the move from the most recent bestmove line, or "".
func (a *Aggregator) BestMove() string { return a.bestMove }

// Reset clears the analysis map and recorded best move so stale lines from
// the previous position never leak into a new search. History is untouched.
func (a *Aggregator) Reset() {
	a.lines = make(map[int]uci.Info)
	a.bestMove = ""
}
