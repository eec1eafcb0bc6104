package uci

import (
	"strconv"
	"strings"
)

// Info is a parsed "info" line. Integer fields use zero for "not reported"
// (engines report depth starting at 1); Score carries an explicit HasScore
// flag because a centipawn score of 0 is legal.
type Info struct {
	Depth          int
	SelDepth       int
	MultiPV        int
	Score          Score
	HasScore       bool
	Nodes          uint64
	NPS            uint64
	TimeMS         uint64
	Hashfull       int
	CurrMove       string
	CurrMoveNumber int
	PV             []string
}

// HasAnalysis reports whether the line carries a complete analysis update:
// a depth, a score, and a non-empty principal variation. Partial updates
// (e.g. bare currmove progress lines) return false.
func (inf Info) HasAnalysis() bool {
	return inf.Depth > 0 && inf.HasScore && len(inf.PV) > 0
}

// MultiPVOr1 returns the multipv index, treating an absent index as the
// primary line.
func (inf Info) MultiPVOr1() int {
	if inf.MultiPV > 0 {
		return inf.MultiPV
	}
	return 1
}

// infoKeywords are the tokens that terminate a pv move list.
var infoKeywords = map[string]bool{
	"depth": true, "seldepth": true, "multipv": true, "score": true,
	"nodes": true, "nps": true, "time": true, "hashfull": true,
	"currmove": true, "currmovenumber": true,
	"string": true, "refutation": true, "currline": true,
}

// ParseInfo parses the body of an "info" line (everything after "info ").
// It is deliberately lenient: unrecognized tokens are skipped, malformed
// values leave the field unset, and a key appearing twice keeps the last
// value. It never fails.
func ParseInfo(body string) Info {
	var inf Info
	tokens := strings.Fields(body)

	i := 0
	for i < len(tokens) {
		switch tokens[i] {
		case "depth":
			i = takeInt(tokens, i, &inf.Depth)
		case "seldepth":
			i = takeInt(tokens, i, &inf.SelDepth)
		case "multipv":
			i = takeInt(tokens, i, &inf.MultiPV)
		case "hashfull":
			i = takeInt(tokens, i, &inf.Hashfull)
		case "currmovenumber":
			i = takeInt(tokens, i, &inf.CurrMoveNumber)
		case "nodes":
			i = takeUint(tokens, i, &inf.Nodes)
		case "nps":
			i = takeUint(tokens, i, &inf.NPS)
		case "time":
			i = takeUint(tokens, i, &inf.TimeMS)
		case "currmove":
			if i+1 < len(tokens) {
				inf.CurrMove = tokens[i+1]
				i += 2
			} else {
				i++
			}
		case "score":
			// "score cp <n>" or "score mate <n>": three tokens.
			if i+2 < len(tokens) {
				switch tokens[i+1] {
				case "cp":
					if n, err := strconv.Atoi(tokens[i+2]); err == nil {
						inf.Score = Centipawns(n)
						inf.HasScore = true
					}
					i += 3
				case "mate":
					if n, err := strconv.Atoi(tokens[i+2]); err == nil {
						inf.Score = MateIn(n)
						inf.HasScore = true
					}
					i += 3
				default:
					i++
				}
			} else {
				i++
			}
		case "pv":
			i++
			start := i
			for i < len(tokens) && !infoKeywords[tokens[i]] {
				i++
			}
			inf.PV = append([]string(nil), tokens[start:i]...)
		default:
			// Unknown token (lowerbound, tbhits, future extensions): skip.
			i++
		}
	}
	return inf
}

func takeInt(tokens []string, i int, dst *int) int {
	if i+1 >= len(tokens) {
		return i + 1
	}
	if n, err := strconv.Atoi(tokens[i+1]); err == nil {
		*dst = n
	}
	return i + 2
}

func takeUint(tokens []string, i int, dst *uint64) int {
	if i+1 >= len(tokens) {
		return i + 1
	}
	if n, err := strconv.ParseUint(tokens[i+1], 10, 64); err == nil {
		*dst = n
	}
	return i + 2
}
