package uci

import (
	"reflect"
	"testing"
)

func TestParseInfoRealStockfishLine(t *testing.T) {
	inf := ParseInfo("depth 24 seldepth 31 multipv 1 score cp 28 nodes 2847613 nps 2431482 hashfull 457 time 1171 pv e2e4 e7e5 g1f3 b8c6 f1b5 a7a6 b5a4 g8f6 e1g1")

	if inf.Depth != 24 {
		t.Errorf("Depth = %d, want 24", inf.Depth)
	}
	if inf.SelDepth != 31 {
		t.Errorf("SelDepth = %d, want 31", inf.SelDepth)
	}
	if inf.MultiPV != 1 {
		t.Errorf("MultiPV = %d, want 1", inf.MultiPV)
	}
	if !inf.HasScore || inf.Score != Centipawns(28) {
		t.Errorf("Score = %+v (has=%v), want cp 28", inf.Score, inf.HasScore)
	}
	if inf.Nodes != 2847613 {
		t.Errorf("Nodes = %d, want 2847613", inf.Nodes)
	}
	if inf.NPS != 2431482 {
		t.Errorf("NPS = %d, want 2431482", inf.NPS)
	}
	if inf.Hashfull != 457 {
		t.Errorf("Hashfull = %d, want 457", inf.Hashfull)
	}
	if inf.TimeMS != 1171 {
		t.Errorf("TimeMS = %d, want 1171", inf.TimeMS)
	}
	if len(inf.PV) != 9 || inf.PV[0] != "e2e4" {
		t.Errorf("PV = %v, want 9 moves starting with e2e4", inf.PV)
	}
	if !inf.HasAnalysis() {
		t.Error("HasAnalysis() = false, want true")
	}
}

func TestParseInfoScores(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Score
	}{
		{"cp positive", "depth 20 score cp 35 pv e2e4", Centipawns(35)},
		{"cp negative", "depth 18 score cp -125 pv d7d5", Centipawns(-125)},
		{"cp zero", "depth 10 score cp 0 pv e2e4", Centipawns(0)},
		{"mate white", "depth 15 score mate 3 pv e2e4 e7e5 d1h5", MateIn(3)},
		{"mate black", "depth 12 score mate -2 pv g8f6", MateIn(-2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inf := ParseInfo(tt.body)
			if !inf.HasScore {
				t.Fatal("HasScore = false, want true")
			}
			if inf.Score != tt.want {
				t.Errorf("Score = %+v, want %+v", inf.Score, tt.want)
			}
		})
	}
}

func TestParseInfoPartialLine(t *testing.T) {
	inf := ParseInfo("depth 15 currmove g1f3 currmovenumber 5")
	if len(inf.PV) != 0 {
		t.Errorf("PV = %v, want empty", inf.PV)
	}
	if inf.HasAnalysis() {
		t.Error("HasAnalysis() = true for a currmove progress line")
	}
	if inf.CurrMove != "g1f3" || inf.CurrMoveNumber != 5 {
		t.Errorf("CurrMove = %q (%d), want g1f3 (5)", inf.CurrMove, inf.CurrMoveNumber)
	}
}

func TestParseInfoHasAnalysisGates(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"complete", "depth 20 score cp 35 pv e2e4", true},
		{"no score", "depth 20 pv e2e4", false},
		{"no pv", "depth 20 score cp 35", false},
		{"no depth", "score cp 35 pv e2e4", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseInfo(tt.body).HasAnalysis(); got != tt.want {
				t.Errorf("HasAnalysis() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseInfoLenient(t *testing.T) {
	// Unknown tokens (score bounds, tbhits, future extensions) are skipped;
	// every recognized field still lands.
	inf := ParseInfo("depth 20 score cp 35 lowerbound nodes 1000 tbhits 0 wdl 512 401 87 pv e2e4 e7e5")
	if inf.Depth != 20 || !inf.HasScore || inf.Score != Centipawns(35) || inf.Nodes != 1000 {
		t.Errorf("recognized fields lost: %+v", inf)
	}
	if !reflect.DeepEqual(inf.PV, []string{"e2e4", "e7e5"}) {
		t.Errorf("PV = %v, want [e2e4 e7e5]", inf.PV)
	}
}

func TestParseInfoPVStopsAtKeyword(t *testing.T) {
	inf := ParseInfo("depth 8 score cp 10 pv e2e4 e7e5 string this is a comment")
	if !reflect.DeepEqual(inf.PV, []string{"e2e4", "e7e5"}) {
		t.Errorf("PV = %v, want [e2e4 e7e5]", inf.PV)
	}
}

func TestParseInfoLastWriteWins(t *testing.T) {
	inf := ParseInfo("depth 10 score cp 50 score cp 75 pv e2e4")
	if inf.Score != Centipawns(75) {
		t.Errorf("Score = %+v, want the later cp 75", inf.Score)
	}
}

func TestParseInfoMalformedValues(t *testing.T) {
	// A garbage value leaves the field unset but parsing continues.
	inf := ParseInfo("depth xx score cp 12 pv e2e4")
	if inf.Depth != 0 {
		t.Errorf("Depth = %d, want 0 for unparseable value", inf.Depth)
	}
	if !inf.HasScore || inf.Score != Centipawns(12) {
		t.Errorf("Score = %+v, want cp 12", inf.Score)
	}

	// Truncated input never panics.
	for _, body := range []string{"", "depth", "score", "score cp", "currmove", "pv"} {
		_ = ParseInfo(body)
	}
}

func TestMultiPVOr1(t *testing.T) {
	if got := ParseInfo("depth 20 multipv 2 score cp 15 pv d2d4").MultiPVOr1(); got != 2 {
		t.Errorf("MultiPVOr1() = %d, want 2", got)
	}
	if got := ParseInfo("depth 20 score cp 15 pv d2d4").MultiPVOr1(); got != 1 {
		t.Errorf("MultiPVOr1() = %d, want 1 when absent", got)
	}
}
