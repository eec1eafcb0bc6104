// Command analyze runs a one-shot engine analysis of a position: it starts
// the engine, searches the given FEN to a fixed depth, and prints the
// resulting lines best-first along with the engine's chosen move.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/freeeve/pgn/v3"

	"github.com/boardlab/chessdesk/internal/engine"
	"github.com/boardlab/chessdesk/internal/logx"
)

const startposFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func main() {
	defaultEngine := "stockfish"
	if envPath := os.Getenv("STOCKFISH_PATH"); envPath != "" {
		defaultEngine = envPath
	}

	var (
		enginePath = flag.String("engine", defaultEngine, "path to UCI engine executable")
		fen        = flag.String("fen", startposFEN, "position to analyze (FEN)")
		depth      = flag.Int("depth", 24, "search depth")
		multiPV    = flag.Int("multipv", 3, "number of lines to request")
		timeout    = flag.Duration("timeout", 2*time.Minute, "give up after this long")
	)
	flag.Parse()

	logger := logx.NewLogger()

	if _, err := pgn.PackedPositionFromFEN(*fen); err != nil {
		logger.Fatal().Err(err).Str("fen", *fen).Msg("invalid FEN")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctrl := engine.New(engine.Config{
		Path:    *enginePath,
		MultiPV: *multiPV,
		Logger:  logger.With().Str("component", "engine").Logger(),
	})
	if err := ctrl.Start(); err != nil {
		logger.Fatal().Err(err).Str("path", *enginePath).Msg("start engine")
	}
	defer ctrl.Stop()

	ctrl.AnalyzeDepth(*fen, *depth)

	deadline := time.NewTimer(*timeout)
	defer deadline.Stop()

wait:
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("interrupted")
			break wait
		case <-deadline.C:
			logger.Warn().Dur("timeout", *timeout).Msg("search timed out")
			break wait
		case <-ctrl.Updates():
			if !ctrl.Running() {
				logger.Error().Msg("engine exited before finishing")
				os.Exit(1)
			}
			if !ctrl.Analyzing() {
				break wait
			}
		}
	}

	for i, line := range ctrl.Lines() {
		score := line.Score
		if ctrl.BlackToMove() {
			// Engine scores are from the side to move; show white's view.
			score.Value = -score.Value
		}
		fmt.Printf("%d. %-7s depth %-2d  %s\n", i+1, score, line.Depth, strings.Join(line.PV, " "))
	}
	if bm := ctrl.BestMove(); bm != "" {
		fmt.Printf("bestmove %s\n", bm)
	}
}
