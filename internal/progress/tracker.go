package progress

import (
	"log"
	"time"
)

// slowThreshold is how long an operation may run before Done logs it.
const slowThreshold = time.Second

// Tracker times one named operation and logs it if it turns out slow.
// Cheap enough to wrap every orchestration entry point:
//
//	defer progress.StartTracking("dataset load").Done()
type Tracker struct {
	name      string
	start     time.Time
	threshold time.Duration
}

// StartTracking begins timing an operation.
func StartTracking(name string) *Tracker {
	return &Tracker{name: name, start: time.Now(), threshold: slowThreshold}
}

// Done stops the clock and logs the duration when it exceeded the
// threshold.
func (t *Tracker) Done() {
	elapsed := time.Since(t.start)
	if elapsed >= t.threshold {
		log.Printf("progress: %s took %.1fs", t.name, elapsed.Seconds())
	}
}

// Elapsed returns the time since tracking started.
func (t *Tracker) Elapsed() time.Duration {
	return time.Since(t.start)
}
