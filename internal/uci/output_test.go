package uci

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantKind Kind
		wantBody string
	}{
		{"uciok", "uciok", KindUciOk, ""},
		{"uciok padded", "  uciok \n", KindUciOk, ""},
		{"readyok", "readyok", KindReadyOk, ""},
		{"info", "info depth 20 score cp 35 pv e2e4 e7e5", KindInfo, "depth 20 score cp 35 pv e2e4 e7e5"},
		{"bestmove", "bestmove e2e4 ponder e7e5", KindBestMove, "e2e4 ponder e7e5"},
		{"id", "id name Stockfish 17", KindID, "name Stockfish 17"},
		{"option", "option name Hash type spin default 16 min 1 max 33554432", KindOption, "name Hash type spin default 16 min 1 max 33554432"},
		{"other", "Stockfish 17 by the Stockfish developers", KindOther, "Stockfish 17 by the Stockfish developers"},
		{"empty", "", KindOther, ""},
		// Bare keywords with no payload are not the prefixed forms.
		{"bare info", "info", KindOther, "info"},
		{"bare bestmove", "bestmove", KindOther, "bestmove"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Classify(tt.line)
			if out.Kind != tt.wantKind {
				t.Errorf("Classify(%q).Kind = %v, want %v", tt.line, out.Kind, tt.wantKind)
			}
			if out.Body != tt.wantBody {
				t.Errorf("Classify(%q).Body = %q, want %q", tt.line, out.Body, tt.wantBody)
			}
		})
	}
}

func TestClassifyKeepsRaw(t *testing.T) {
	out := Classify("  info depth 1 ")
	if out.Raw != "info depth 1" {
		t.Errorf("Raw = %q, want trimmed original", out.Raw)
	}
}
