// Package engine drives an external UCI chess engine process and aggregates
// its streamed analysis output into queryable state for a display layer.
//
// The Channel owns the process and the two goroutines doing blocking pipe
// I/O; the Aggregator folds classified output into per-variation analysis;
// the Controller ties lifecycle, handshake, and the polling drain together.
package engine

import (
	"bufio"
	"fmt"
	"os/exec"
	"sync"
)

// EventKind tags an event coming off the reader goroutine.
type EventKind int

const (
	// EventLine is one line of engine output.
	EventLine EventKind = iota
	// EventErr is a read error; the reader always follows it with EventExit.
	EventErr
	// EventExit means the engine's output stream closed. Emitted exactly
	// once, as the reader's final event before closing the event channel.
	EventExit
)

// Event is a message from the engine process to the controller.
type Event struct {
	Kind EventKind
	// Text is the output line for EventLine, or the error message for
	// EventErr. Empty for EventExit.
	Text string
}

// transport is the controller's view of a channel. Split out so controller
// tests can drive the drain loop without a real process.
type transport interface {
	Send(line string)
	Events() <-chan Event
	Teardown()
}

const (
	commandBuffer = 64
	eventBuffer   = 256
	// maxLineBytes bounds a single output line; deep multipv pv lines can
	// exceed bufio.Scanner's 64KiB default.
	maxLineBytes = 1 << 20
)

// Channel owns one engine process plus the reader and writer goroutines
// bridging its pipes to the command and event queues. All cross-goroutine
// communication goes through those two queues.
type Channel struct {
	cmd      *exec.Cmd
	commands chan string
	events   chan Event

	mu     sync.Mutex
	closed bool
}

// Spawn launches the engine executable with piped stdin/stdout and stderr
// discarded. A launch failure (missing binary, permissions) is returned
// synchronously; no goroutines or process are left behind in that case.
func Spawn(path string) (*Channel, error) {
	cmd := exec.Command(path)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("engine stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("engine stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn engine: %w", err)
	}

	ch := &Channel{
		cmd:      cmd,
		commands: make(chan string, commandBuffer),
		events:   make(chan Event, eventBuffer),
	}

	// Reader: blocking line reads from the engine's stdout. Ends with a
	// single EventExit and closes the event queue, whatever the cause.
	go func() {
		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for scanner.Scan() {
			ch.events <- Event{Kind: EventLine, Text: scanner.Text()}
		}
		if err := scanner.Err(); err != nil {
			ch.events <- Event{Kind: EventErr, Text: err.Error()}
		}
		ch.events <- Event{Kind: EventExit}
		close(ch.events)
	}()

	// Writer: blocking receive from the command queue, one line per write,
	// flushed. Exits when the queue closes or the process is gone.
	go func() {
		w := bufio.NewWriter(stdin)
		for line := range ch.commands {
			if _, err := w.WriteString(line + "\n"); err != nil {
				break
			}
			if err := w.Flush(); err != nil {
				break
			}
		}
		stdin.Close()
	}()

	return ch, nil
}

// Events returns the queue of engine events. The channel is closed after
// the final EventExit.
func (ch *Channel) Events() <-chan Event { return ch.events }

// Send enqueues one command line for the writer. Best-effort: once the
// channel is torn down, or if the writer has died and the queue is full,
// the line is silently dropped (the caller will observe EventExit instead).
func (ch *Channel) Send(line string) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.closed {
		return
	}
	select {
	case ch.commands <- line:
	default:
	}
}

// Teardown releases everything the channel owns, in an order that cannot
// leak: close the command queue (stops the writer), kill and wait the
// process (unblocks and finishes the reader), then drain the event queue
// until the reader closes it. Idempotent.
func (ch *Channel) Teardown() {
	ch.mu.Lock()
	if ch.closed {
		ch.mu.Unlock()
		return
	}
	ch.closed = true
	close(ch.commands)
	ch.mu.Unlock()

	_ = ch.cmd.Process.Kill()
	_ = ch.cmd.Wait()

	for range ch.events {
	}
}
