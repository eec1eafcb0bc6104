package uci

import "strings"

// Kind categorizes a line of engine output.
type Kind int

const (
	// KindOther is any line that matches no known response.
	KindOther Kind = iota
	// KindUciOk is the "uciok" handshake response.
	KindUciOk
	// KindReadyOk is the "readyok" response.
	KindReadyOk
	// KindInfo is an "info ..." search update.
	KindInfo
	// KindBestMove is a "bestmove ..." search result.
	KindBestMove
	// KindID is an "id ..." engine identification line.
	KindID
	// KindOption is an "option ..." option declaration.
	KindOption
)

// OutputLine is a single classified line of engine output. Raw is the line
// as received (trimmed); Body is the payload after the recognized prefix,
// or the whole trimmed line for KindOther.
type OutputLine struct {
	Raw  string
	Kind Kind
	Body string
}

// Classify trims a raw output line and categorizes it. It never fails:
// unrecognized lines come back as KindOther.
func Classify(line string) OutputLine {
	trimmed := strings.TrimSpace(line)
	out := OutputLine{Raw: trimmed, Kind: KindOther, Body: trimmed}

	switch {
	case trimmed == "uciok":
		out.Kind, out.Body = KindUciOk, ""
	case trimmed == "readyok":
		out.Kind, out.Body = KindReadyOk, ""
	case strings.HasPrefix(trimmed, "info "):
		out.Kind, out.Body = KindInfo, trimmed[len("info "):]
	case strings.HasPrefix(trimmed, "bestmove "):
		out.Kind, out.Body = KindBestMove, trimmed[len("bestmove "):]
	case strings.HasPrefix(trimmed, "id "):
		out.Kind, out.Body = KindID, trimmed[len("id "):]
	case strings.HasPrefix(trimmed, "option "):
		out.Kind, out.Body = KindOption, trimmed[len("option "):]
	}
	return out
}
