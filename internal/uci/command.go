// Package uci implements the engine side of the Universal Chess Interface
// text protocol: encoding commands to wire lines, classifying engine output,
// and parsing "info" analysis lines into structured form.
//
// The codec is pure; process handling lives in internal/engine.
package uci

import (
	"strconv"
	"strings"
)

// Command is a UCI command that can be encoded to a single wire line
// (no trailing newline).
type Command interface {
	Encode() string
}

// Uci initializes UCI mode.
type Uci struct{}

// IsReady asks the engine to confirm it is ready.
type IsReady struct{}

// NewGame tells the engine the next position is from a new game.
type NewGame struct{}

// SetOption sets a named engine option.
type SetOption struct {
	Name  string
	Value string
}

// Position sets the position to analyze. An empty FEN means the standard
// starting position. Moves are applied on top, in order.
type Position struct {
	FEN   string
	Moves []string
}

// GoInfinite starts an unbounded analysis (until "stop").
type GoInfinite struct{}

// GoDepth starts an analysis limited to the given search depth.
type GoDepth int

// Stop halts the current search; the engine replies with "bestmove".
type Stop struct{}

// Quit asks the engine process to exit.
type Quit struct{}

func (Uci) Encode() string     { return "uci" }
func (IsReady) Encode() string { return "isready" }
func (NewGame) Encode() string { return "ucinewgame" }
func (Stop) Encode() string    { return "stop" }
func (Quit) Encode() string    { return "quit" }

func (o SetOption) Encode() string {
	return "setoption name " + o.Name + " value " + o.Value
}

func (p Position) Encode() string {
	var b strings.Builder
	b.WriteString("position ")
	if p.FEN != "" {
		b.WriteString("fen ")
		b.WriteString(p.FEN)
	} else {
		b.WriteString("startpos")
	}
	if len(p.Moves) > 0 {
		b.WriteString(" moves ")
		b.WriteString(strings.Join(p.Moves, " "))
	}
	return b.String()
}

func (GoInfinite) Encode() string { return "go infinite" }

func (d GoDepth) Encode() string { return "go depth " + strconv.Itoa(int(d)) }
