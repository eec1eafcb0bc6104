package uci

import "fmt"

// Score is an engine evaluation. When Mate is false, Value is centipawns
// from white's perspective. When Mate is true, Value is the number of moves
// to mate: positive means white mates in Value, negative means black mates
// in -Value.
type Score struct {
	Mate  bool
	Value int
}

// Centipawns returns a centipawn score.
func Centipawns(cp int) Score { return Score{Value: cp} }

// MateIn returns a mate score.
func MateIn(moves int) Score { return Score{Mate: true, Value: moves} }

// Comparable collapses the score to a single centipawn-scale value for
// sorting. Mates map near +/-10000 so that a shorter mate always outranks
// a longer one, and being mated sooner always ranks below being mated later.
func (s Score) Comparable() int {
	if !s.Mate {
		return s.Value
	}
	if s.Value > 0 {
		return 10000 - s.Value
	}
	return -10000 - s.Value
}

// String formats the score for display: sign-explicit pawns with two
// decimals ("+0.35", "-1.25"), or "M3" / "-M2" for mates.
func (s Score) String() string {
	if s.Mate {
		if s.Value > 0 {
			return fmt.Sprintf("M%d", s.Value)
		}
		return fmt.Sprintf("-M%d", -s.Value)
	}
	return fmt.Sprintf("%+.2f", float64(s.Value)/100.0)
}
