// Package event defines the SimEvent record emitted by every tick and the
// monotonic per-run sequence counter that orders them.
//
// Grounded on the teacher's engine.Event/EmitEvent (engine/simulation.go):
// same "kind string + site + message + payload map" shape, collapsed from
// a channel-based pub/sub broadcast (the teacher's engine runs goroutines
// that subscribe to a live event bus) to a plain append, since the core
// here is single-threaded and callers just want the final ordered slice.
package event

import "github.com/talgya/worldsim/internal/worldmap"

// Visibility controls who can witness/ingest an event.
type Visibility uint8

const (
	VisibilityPrivate Visibility = iota
	VisibilityPublic
	VisibilitySystem
)

// SimEvent is one structured occurrence emitted during a tick.
type SimEvent struct {
	ID         uint64
	Tick       uint64
	Seq        uint64
	Kind       string // dotted taxonomy, e.g. "attempt.recorded", "npc.died"
	Visibility Visibility
	SiteID     worldmap.SiteID
	Message    string
	Data       map[string]any
}

// Counter is the monotonic, within-run sequence generator for events. It
// is reset to 1 at the start of every tick, per spec.md §4.1 step 1.
type Counter struct {
	seq uint64
}

// Reset restarts the counter, called once per tick before any event is
// emitted.
func (c *Counter) Reset() { c.seq = 0 }

// Next returns the next strictly increasing sequence number.
func (c *Counter) Next() uint64 {
	c.seq++
	return c.seq
}

// Log accumulates events in emission order and is the final output of a
// run.
type Log struct {
	events []SimEvent
}

// Emit appends an event, stamping it with the next sequence number.
func (l *Log) Emit(counter *Counter, tick uint64, kind string, vis Visibility, siteID worldmap.SiteID, message string, data map[string]any) SimEvent {
	seq := counter.Next()
	e := SimEvent{
		ID:         seq,
		Tick:       tick,
		Seq:        seq,
		Kind:       kind,
		Visibility: vis,
		SiteID:     siteID,
		Message:    message,
		Data:       data,
	}
	l.events = append(l.events, e)
	return e
}

// All returns every event emitted so far, in ascending (tick, seq) order.
func (l *Log) All() []SimEvent { return l.events }

// Since returns events with ID strictly greater than afterID, useful for
// incremental consumption within a single tick (IDs restart at 1 every
// tick).
func (l *Log) Since(afterID uint64) []SimEvent {
	out := make([]SimEvent, 0)
	for _, e := range l.events {
		if e.ID > afterID {
			out = append(out, e)
		}
	}
	return out
}
