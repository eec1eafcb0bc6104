// Command probe starts a UCI engine, captures its identification and option
// declarations from the handshake, prints them, and shuts the engine down.
// Useful for checking what an engine build supports before wiring it into
// the editor's settings.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/boardlab/chessdesk/internal/engine"
	"github.com/boardlab/chessdesk/internal/logx"
	"github.com/boardlab/chessdesk/internal/uci"
)

func main() {
	defaultEngine := "stockfish"
	if envPath := os.Getenv("STOCKFISH_PATH"); envPath != "" {
		defaultEngine = envPath
	}

	var (
		enginePath = flag.String("engine", defaultEngine, "path to UCI engine executable")
		wait       = flag.Duration("wait", 2*time.Second, "how long to wait for the handshake")
	)
	flag.Parse()

	logger := logx.NewLogger()

	ctrl := engine.New(engine.Config{
		Path:   *enginePath,
		Logger: logger.With().Str("component", "engine").Logger(),
	})
	if err := ctrl.Start(); err != nil {
		logger.Fatal().Err(err).Str("path", *enginePath).Msg("start engine")
	}
	defer ctrl.Stop()

	// The id/option lines arrive in response to "uci"; give the engine a
	// moment, then read whatever landed in history.
	deadline := time.After(*wait)
	done := false
	for !done {
		select {
		case <-deadline:
			done = true
		case <-ctrl.Updates():
			for _, line := range ctrl.History() {
				if line.Kind == uci.KindUciOk {
					done = true
				}
			}
		}
	}

	ids, options := 0, 0
	for _, line := range ctrl.History() {
		switch line.Kind {
		case uci.KindID:
			fmt.Println("id:", line.Body)
			ids++
		case uci.KindOption:
			fmt.Println("option:", line.Body)
			options++
		}
	}
	if ids == 0 && options == 0 {
		logger.Warn().Msg("no handshake output; is this a UCI engine?")
		os.Exit(1)
	}
	logger.Info().Int("ids", ids).Int("options", options).Msg("probe complete")
}
