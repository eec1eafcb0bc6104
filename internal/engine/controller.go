package engine

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
	"weak"

	"github.com/freeeve/pgn/v3"
	"github.com/rs/zerolog"

	"github.com/boardlab/chessdesk/internal/uci"
)

const (
	// DefaultMultiPV is the number of parallel lines requested from the
	// engine when the config leaves it unset.
	DefaultMultiPV = 3
	// DefaultPollInterval is the event-drain cadence (~60 ticks/second,
	// matching a display refresh).
	DefaultPollInterval = 16 * time.Millisecond
)

// Config configures a Controller. Zero fields get defaults in New; only
// Path is required (checked at Start, not construction, so a controller for
// a not-yet-configured engine is still constructible).
type Config struct {
	Path         string
	MultiPV      int
	PollInterval time.Duration
	Logger       zerolog.Logger
}

type searchMode int

const (
	modeNone searchMode = iota
	modeInfinite
	modeDepth
)

// Controller is the public face of the engine core: session lifecycle,
// analysis lifecycle, and the polling drain that feeds the aggregator.
// All methods are safe for concurrent use. Consumers read state through
// the query methods and watch Updates for change notifications.
//
// Stop releases the engine process; if the owner drops the controller
// without calling it, a runtime cleanup tears the process down once the
// controller becomes unreachable.
type Controller struct {
	cfg     Config
	log     zerolog.Logger
	updates chan struct{}

	mu          sync.Mutex
	channel     transport
	agg         *Aggregator
	running     bool
	analyzing   bool
	mode        searchMode
	blackToMove bool
	currentFEN  string
	cleanup     runtime.Cleanup
}

// New returns a stopped controller. Call Start to launch the engine.
func New(cfg Config) *Controller {
	if cfg.MultiPV <= 0 {
		cfg.MultiPV = DefaultMultiPV
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	return &Controller{
		cfg:     cfg,
		log:     cfg.Logger,
		agg:     NewAggregator(),
		updates: make(chan struct{}, 1),
	}
}

// Start launches the engine process, begins the poll loop, and sends the
// UCI handshake (uci, isready, MultiPV option). A spawn failure is returned
// as-is and leaves the session stopped with no resources allocated.
// Starting an already-running session is a no-op.
func (c *Controller) Start() error {
	c.mu.Lock()
	running := c.running
	c.mu.Unlock()
	if running {
		return nil
	}
	if c.cfg.Path == "" {
		return fmt.Errorf("engine path required")
	}
	ch, err := Spawn(c.cfg.Path)
	if err != nil {
		return err
	}
	c.install(ch)
	return nil
}

// install wires a transport into the session. Split from Start so tests can
// drive the controller with a stub transport.
func (c *Controller) install(t transport) {
	c.mu.Lock()
	if c.running {
		// Lost a start race; the session already has a live engine.
		c.mu.Unlock()
		t.Teardown()
		return
	}
	c.channel = t
	c.running = true
	c.analyzing = false
	c.mode = modeNone

	// Backstop: if the controller is dropped without Stop, kill the engine
	// once the controller becomes unreachable. The poll loop below holds
	// only a weak pointer, so it never keeps the controller alive.
	c.cleanup = runtime.AddCleanup(c, func(t transport) { t.Teardown() }, t)

	c.sendLocked(uci.Uci{})
	c.sendLocked(uci.IsReady{})
	c.sendLocked(uci.SetOption{Name: "MultiPV", Value: strconv.Itoa(c.cfg.MultiPV)})
	c.agg.AddMarker("[Engine started]")
	interval := c.cfg.PollInterval
	c.mu.Unlock()

	go pollLoop(weak.Make(c), interval)

	c.log.Info().Str("path", c.cfg.Path).Int("multipv", c.cfg.MultiPV).Msg("engine started")
	c.notify()
}

// pollLoop drains engine events into the controller at a fixed cadence.
// It holds only a weak pointer: when the controller is gone, or the session
// has stopped, the next tick observes that and the loop self-terminates.
func pollLoop(wp weak.Pointer[Controller], interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		c := wp.Value()
		if c == nil || !c.tick() {
			return
		}
	}
}

// tick drains every currently queued event, then notifies the consumer once
// if anything was processed. Returns false when the loop should stop.
func (c *Controller) tick() bool {
	c.mu.Lock()
	if !c.running || c.channel == nil {
		c.mu.Unlock()
		return false
	}
	events := c.channel.Events()
	processed := 0
drain:
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				break drain
			}
			processed++
			c.handleEventLocked(ev)
		default:
			break drain
		}
	}
	stillRunning := c.running
	c.mu.Unlock()

	if processed > 0 {
		c.notify()
	}
	return stillRunning
}

func (c *Controller) handleEventLocked(ev Event) {
	switch ev.Kind {
	case EventLine:
		out := uci.Classify(ev.Text)
		c.agg.Ingest(out)
		if out.Kind == uci.KindBestMove && c.mode == modeDepth {
			// Depth-limited search finished on its own.
			c.analyzing = false
			c.mode = modeNone
		}
	case EventErr:
		c.log.Warn().Str("error", ev.Text).Msg("engine stream error")
		c.agg.AddMarker("[Error: " + ev.Text + "]")
	case EventExit:
		c.log.Info().Msg("engine process exited")
		c.running = false
		c.analyzing = false
		c.mode = modeNone
		c.agg.AddMarker("[Engine exited]")
		c.cleanup.Stop()
		if ch := c.channel; ch != nil {
			c.channel = nil
			// Reap the child. The event queue is already closed, so this
			// returns promptly.
			ch.Teardown()
		}
	}
}

// Stop quits and tears down the engine process. Stopping an already-stopped
// session is a no-op; the teardown order guarantees no orphaned process.
func (c *Controller) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	if c.analyzing {
		c.sendLocked(uci.Stop{})
		c.analyzing = false
		c.mode = modeNone
	}
	c.sendLocked(uci.Quit{})
	ch := c.channel
	c.channel = nil
	c.running = false
	c.cleanup.Stop()
	c.agg.AddMarker("[Engine stopped]")
	c.mu.Unlock()

	if ch != nil {
		ch.Teardown()
	}
	c.log.Info().Msg("engine stopped")
	c.notify()
}

// StartAnalysis begins an infinite analysis of the given FEN position,
// replacing any search in progress. No-op if the engine is not running or
// the FEN does not parse.
func (c *Controller) StartAnalysis(fen string) {
	c.beginSearch(fen, uci.GoInfinite{}, modeInfinite)
}

// AnalyzeDepth begins a depth-limited analysis of the given FEN position.
// The session returns to idle when the engine reports its best move.
func (c *Controller) AnalyzeDepth(fen string, depth int) {
	if depth <= 0 {
		return
	}
	c.beginSearch(fen, uci.GoDepth(depth), modeDepth)
}

func (c *Controller) beginSearch(fen string, goCmd uci.Command, mode searchMode) {
	if _, err := pgn.PackedPositionFromFEN(fen); err != nil {
		c.log.Warn().Err(err).Str("fen", fen).Msg("ignoring invalid FEN")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	if c.analyzing {
		// Engines acknowledge a pending stop before the next bestmove, so
		// the position/go pair can follow immediately.
		c.sendLocked(uci.Stop{})
	}
	c.agg.Reset()
	c.currentFEN = fen
	c.blackToMove = sideToMoveIsBlack(fen)
	c.sendLocked(uci.Position{FEN: fen})
	c.sendLocked(goCmd)
	c.analyzing = true
	c.mode = mode
	c.log.Debug().Str("fen", fen).Msg("analysis started")
	c.notify()
}

// StopAnalysis halts the current search but keeps the engine running.
// No-op if nothing is being analyzed.
func (c *Controller) StopAnalysis() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running || !c.analyzing {
		return
	}
	c.sendLocked(uci.Stop{})
	c.analyzing = false
	c.mode = modeNone
	c.notify()
}

// NewGame tells the engine to reset game state (hash, history heuristics).
// Only meaningful between searches; no-op while analyzing or stopped.
func (c *Controller) NewGame() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running || c.analyzing {
		return
	}
	c.sendLocked(uci.NewGame{})
	c.sendLocked(uci.IsReady{})
}

func (c *Controller) sendLocked(cmd uci.Command) {
	if c.channel != nil {
		c.channel.Send(cmd.Encode())
	}
}

// notify signals the consumer that observable state changed. Coalescing:
// an unread signal absorbs later ones.
func (c *Controller) notify() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}

// Updates returns the change-notification channel. It receives at most one
// pending signal; consumers re-query state after each receive.
func (c *Controller) Updates() <-chan struct{} { return c.updates }

// Running reports whether the engine process is live.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Analyzing reports whether a search is in progress.
func (c *Controller) Analyzing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.analyzing
}

// BlackToMove reports whether the position under analysis has black to
// move (consumers flip the evaluation display on this).
func (c *Controller) BlackToMove() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blackToMove
}

// CurrentFEN returns the position under analysis, or "" before the first
// search.
func (c *Controller) CurrentFEN() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentFEN
}

// Lines returns the current analysis lines, best line first.
func (c *Controller) Lines() []uci.Info {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.agg.SortedLines()
}

// History returns a copy of the rolling raw-output history.
func (c *Controller) History() []uci.OutputLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.agg.History()
}

// BestMove returns the move from the engine's most recent bestmove line.
func (c *Controller) BestMove() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.agg.BestMove()
}

// sideToMoveIsBlack reads the FEN's second field ("w" or "b").
func sideToMoveIsBlack(fen string) bool {
	fields := strings.Fields(fen)
	return len(fields) >= 2 && fields[1] == "b"
}
