package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Reporter receives progress for long-running dataset operations.
// Implementations must tolerate Update being called from the worker
// at a high rate; Cancelled is polled at the same cadence and should
// be cheap.
type Reporter interface {
	// Update reports that current of total steps are done. message is
	// a short description of the phase, may be empty.
	Update(current, total int, message string)

	// Finish marks the operation complete or failed.
	Finish(success bool, message string)

	// Cancelled reports whether the user asked the operation to stop.
	Cancelled() bool
}

// Nop is a Reporter that does nothing and never cancels.
type Nop struct{}

func (Nop) Update(int, int, string) {}
func (Nop) Finish(bool, string)     {}
func (Nop) Cancelled() bool         { return false }

// Func adapts a plain update callback to a Reporter with no
// cancellation. A nil Func is valid and ignores everything.
type Func func(current, total int, message string)

func (f Func) Update(current, total int, message string) {
	if f != nil {
		f(current, total, message)
	}
}

func (f Func) Finish(bool, string) {}

func (f Func) Cancelled() bool { return false }

// paintInterval throttles console repaints; the final update always
// paints.
const paintInterval = 100 * time.Millisecond

// Console renders a progress bar with percentage and ETA to a writer,
// stderr by default (stdout belongs to the protocol). It is safe to
// call from one worker goroutine while another calls Cancel.
type Console struct {
	mu        sync.Mutex
	w         io.Writer
	label     string
	start     time.Time
	lastPaint time.Time
	painted   bool
	cancelled bool
}

// NewConsole creates a console reporter labeled with the operation
// name.
func NewConsole(label string) *Console {
	return &Console{w: os.Stderr, label: label, start: time.Now()}
}

// NewConsoleWriter is NewConsole writing to an explicit writer.
func NewConsoleWriter(label string, w io.Writer) *Console {
	return &Console{w: w, label: label, start: time.Now()}
}

// Update repaints the bar, at most every 100ms except for the final
// step.
func (c *Console) Update(current, total int, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if current < total && c.painted && now.Sub(c.lastPaint) < paintInterval {
		return
	}
	c.lastPaint = now
	c.painted = true

	fmt.Fprintf(c.w, "\r%s %s %3.0f%% (%d/%d)%s%s",
		c.label, bar(current, total), percent(current, total),
		current, total, eta(c.start, current, total), suffix(message))
}

// Finish terminates the bar line with an outcome.
func (c *Console) Finish(success bool, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	outcome := "done"
	if !success {
		outcome = "failed"
	}
	if c.painted {
		fmt.Fprintln(c.w)
	}
	fmt.Fprintf(c.w, "%s: %s%s\n", c.label, outcome, suffix(message))
}

// Cancel asks the operation driving this reporter to stop at its next
// checkpoint.
func (c *Console) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelled = true
}

// Cancelled reports whether Cancel was called.
func (c *Console) Cancelled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelled
}

func bar(current, total int) string {
	const width = 20
	filled := 0
	if total > 0 {
		filled = width * current / total
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

func percent(current, total int) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * float64(current) / float64(total)
}

func eta(start time.Time, current, total int) string {
	if current <= 0 || current >= total {
		return ""
	}
	elapsed := time.Since(start)
	remaining := time.Duration(float64(elapsed) / float64(current) * float64(total-current))
	return fmt.Sprintf(" ETA %s", remaining.Round(time.Second))
}

func suffix(message string) string {
	if message == "" {
		return ""
	}
	return " " + message
}
