package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/worldsim/internal/event"
)

func TestNewIDIsDeterministicForSameInputs(t *testing.T) {
	a := NewID(1, "attempt", "n1", "5")
	b := NewID(1, "attempt", "n1", "5")
	assert.Equal(t, a, b)
}

func TestNewIDDiffersOnSeed(t *testing.T) {
	a := NewID(1, "attempt", "n1", "5")
	b := NewID(2, "attempt", "n1", "5")
	assert.NotEqual(t, a, b)
}

func TestReduceIgnoresUnrecognizedKind(t *testing.T) {
	c := NewChronicle()
	c.Reduce(event.SimEvent{Kind: "unrecognized.thing"})
	assert.Empty(t, c.Entries)
}

func TestReduceAppendsRecognizedKindWithMessageFallback(t *testing.T) {
	c := NewChronicle()
	c.Reduce(event.SimEvent{ID: 1, Tick: 2, Kind: "cult.incident", Message: "a shrine burned"})
	require.Len(t, c.Entries, 1)
	assert.Equal(t, "a shrine burned", c.Entries[0].Summary)
}

func TestReduceSubstitutesNameFromData(t *testing.T) {
	c := NewChronicle()
	c.Reduce(event.SimEvent{Kind: "npc.died", Data: map[string]any{"name": "Toby"}})
	require.Len(t, c.Entries, 1)
	assert.Equal(t, "Toby died", c.Entries[0].Summary)
}

func TestReduceEvictsOldestEntryPastMax(t *testing.T) {
	c := NewChronicle()
	for i := 0; i < maxEntries+5; i++ {
		c.Reduce(event.SimEvent{ID: uint64(i), Kind: "cult.incident", Message: "x"})
	}
	assert.Len(t, c.Entries, maxEntries)
	assert.Equal(t, uint64(5), c.Entries[0].EventID)
}

func TestAddBeatEvictsOldestPastMax(t *testing.T) {
	c := NewChronicle()
	for i := 0; i < maxBeats+3; i++ {
		c.AddBeat(StoryBeat{Tick: uint64(i)})
	}
	assert.Len(t, c.Beats, maxBeats)
	assert.Equal(t, uint64(3), c.Beats[0].Tick)
}

func TestStartArcBeginsInPlanningAct(t *testing.T) {
	c := NewChronicle()
	arc := c.StartArc(1, "op-1", 10)
	require.NotNil(t, arc)
	assert.Equal(t, ActPlanning, arc.Act)
	assert.Equal(t, uint64(10), arc.StartedTick)
}

func TestAdvanceArcTransitionsThroughActs(t *testing.T) {
	c := NewChronicle()
	arc := c.StartArc(1, "op-1", 10)

	AdvanceArc(arc, "phase", 11)
	assert.Equal(t, ActExecution, arc.Act)

	AdvanceArc(arc, "completed", 12)
	assert.Equal(t, ActOutcome, arc.Act)
	assert.Equal(t, uint64(12), arc.EndedTick)
}

func TestAdvanceArcAborted(t *testing.T) {
	c := NewChronicle()
	arc := c.StartArc(1, "op-1", 10)
	AdvanceArc(arc, "aborted", 15)
	assert.True(t, arc.Aborted)
	assert.Equal(t, uint64(15), arc.EndedTick)
}

func TestNewOperationDeterministicID(t *testing.T) {
	a := NewOperation(1, "raid", "cult-1", "s1", 5, "d1")
	b := NewOperation(1, "raid", "cult-1", "s1", 5, "d1")
	assert.Equal(t, a.ID, b.ID)
}
