// Package narrative reduces the event stream into chronicle entries,
// story beats, and 3-act operation arcs, per spec.md §4.8.
//
// Grounded on the teacher's engine/factions.go operation-milestone
// pattern and the event-kind mapping shape of llm/newspaper.go (prose
// generation itself stays out — only the kind-to-entry dispatch is
// kept). uuid.NewSHA1 stands in for the teacher's auto-increment ids
// since operation/arc identifiers must be reproducible across runs
// with the same seed, not merely unique within one.
package narrative

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/talgya/worldsim/internal/event"
	"github.com/talgya/worldsim/internal/worldmap"
)

// narrativeNamespace anchors every deterministic id this package mints.
var narrativeNamespace = uuid.MustParse("6f6e2b0a-6e61-4172-9172-617469766500")

// NewID derives a deterministic id from the run seed and a caller-chosen
// discriminator, so the same (seed, tick, kind, counter) always produces
// the same id across runs.
func NewID(seed int64, parts ...string) string {
	data := strconv.FormatInt(seed, 10)
	for _, p := range parts {
		data += "|" + p
	}
	return uuid.NewSHA1(narrativeNamespace, []byte(data)).String()
}

// Act tags which of the three stages an operation arc is in.
type Act uint8

const (
	ActPlanning Act = iota
	ActExecution
	ActOutcome
)

// ChronicleEntry is a single reduced narrative record derived from one
// event.
type ChronicleEntry struct {
	EventID uint64
	Tick    uint64
	Kind    string
	SiteID  worldmap.SiteID
	Summary string
}

// StoryBeat groups related chronicle entries into a coarser narrative
// moment (e.g. all entries from one attempt's witnesses).
type StoryBeat struct {
	Tick    uint64
	Kind    string
	EntryRefs []int
}

// NarrativeArc tracks a multi-step faction operation through its three
// acts.
type NarrativeArc struct {
	ID          string
	OperationID string
	Act         Act
	StartedTick uint64
	EndedTick   uint64
	Aborted     bool
}

const (
	maxBeats    = 400
	maxEntries  = 1200
	maxArcs     = 200
)

// Chronicle is the bounded-collection narrative projection of a run.
type Chronicle struct {
	Entries []ChronicleEntry
	Beats   []StoryBeat
	Arcs    []*NarrativeArc
}

// NewChronicle returns an empty chronicle.
func NewChronicle() *Chronicle { return &Chronicle{} }

// chronicleKinds maps event kinds this package recognizes to a summary
// template; everything else is ignored by the reducer.
var chronicleKinds = map[string]string{
	"npc.died":         "%s died",
	"attempt.recorded":  "an attempt was recorded",
	"world.food.consumed": "food was consumed",
	"cult.incident":     "a cult incident occurred",
}

// Reduce folds one event into the chronicle, appending a ChronicleEntry
// when the event's kind is recognized, evicting the oldest entry once
// maxEntries is exceeded (FIFO).
func (c *Chronicle) Reduce(e event.SimEvent) {
	template, ok := chronicleKinds[e.Kind]
	if !ok {
		return
	}
	summary := template
	if name, ok := e.Data["name"].(string); ok {
		summary = sprintfOne(template, name)
	} else {
		summary = e.Message
	}
	c.Entries = append(c.Entries, ChronicleEntry{
		EventID: e.ID,
		Tick:    e.Tick,
		Kind:    e.Kind,
		SiteID:  e.SiteID,
		Summary: summary,
	})
	if len(c.Entries) > maxEntries {
		c.Entries = c.Entries[len(c.Entries)-maxEntries:]
	}
}

func sprintfOne(template, arg string) string {
	out := make([]byte, 0, len(template)+len(arg))
	for i := 0; i < len(template); i++ {
		if i+1 < len(template) && template[i] == '%' && template[i+1] == 's' {
			out = append(out, arg...)
			i++
			continue
		}
		out = append(out, template[i])
	}
	return string(out)
}

// AddBeat appends a story beat, evicting the oldest once maxBeats is
// exceeded.
func (c *Chronicle) AddBeat(b StoryBeat) {
	c.Beats = append(c.Beats, b)
	if len(c.Beats) > maxBeats {
		c.Beats = c.Beats[len(c.Beats)-maxBeats:]
	}
}

// StartArc begins a new operation arc in the Planning act, evicting the
// oldest arc once maxArcs is exceeded.
func (c *Chronicle) StartArc(seed int64, operationID string, tick uint64) *NarrativeArc {
	arc := &NarrativeArc{
		ID:          NewID(seed, "arc", operationID),
		OperationID: operationID,
		Act:         ActPlanning,
		StartedTick: tick,
	}
	c.Arcs = append(c.Arcs, arc)
	if len(c.Arcs) > maxArcs {
		c.Arcs = c.Arcs[len(c.Arcs)-maxArcs:]
	}
	return arc
}

// AdvanceArc moves an arc to the next act, or marks it aborted/ended.
func AdvanceArc(arc *NarrativeArc, milestone string, tick uint64) {
	switch milestone {
	case "phase":
		if arc.Act == ActPlanning {
			arc.Act = ActExecution
		}
	case "completed":
		arc.Act = ActOutcome
		arc.EndedTick = tick
	case "aborted":
		arc.Aborted = true
		arc.EndedTick = tick
	}
}

// Operation is a multi-step faction undertaking (e.g. a raid or a cult
// ritual) tracked across several ticks.
type Operation struct {
	ID          string
	Kind        string
	FactionOrCultID string
	TargetSiteID worldmap.SiteID
	CreatedTick uint64
	PhasesDone  int
	Completed   bool
	Aborted     bool
}

// NewOperation constructs an operation with a deterministic id.
func NewOperation(seed int64, kind, ownerID string, targetSiteID worldmap.SiteID, tick uint64, discriminator string) *Operation {
	return &Operation{
		ID:              NewID(seed, "op", kind, ownerID, discriminator),
		Kind:            kind,
		FactionOrCultID: ownerID,
		TargetSiteID:    targetSiteID,
		CreatedTick:     tick,
	}
}
