package npc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBeliefMergesSameClaim(t *testing.T) {
	n := New("npc-1", "Alda", CategoryFarmer, "site-1")
	n.AddBelief(Belief{SubjectID: "npc-2", Predicate: "witnessed_crime", Object: "theft", Confidence: 0.4, Tick: 1}, 10)
	n.AddBelief(Belief{SubjectID: "npc-2", Predicate: "witnessed_crime", Object: "theft", Confidence: 0.8, Tick: 2}, 10)

	require.Len(t, n.Beliefs, 1)
	assert.Equal(t, 0.8, n.Beliefs[0].Confidence)
	assert.Equal(t, uint64(2), n.Beliefs[0].Tick)
}

func TestAddBeliefKeepsHigherConfidenceOnStaleUpdate(t *testing.T) {
	n := New("npc-1", "Alda", CategoryFarmer, "site-1")
	n.AddBelief(Belief{SubjectID: "npc-2", Predicate: "witnessed_crime", Object: "theft", Confidence: 0.9, Tick: 5}, 10)
	n.AddBelief(Belief{SubjectID: "npc-2", Predicate: "witnessed_crime", Object: "theft", Confidence: 0.2, Tick: 1}, 10)

	require.Len(t, n.Beliefs, 1)
	assert.Equal(t, 0.9, n.Beliefs[0].Confidence)
	assert.Equal(t, uint64(5), n.Beliefs[0].Tick)
}

func TestAddBeliefEvictsOldestDistinctClaim(t *testing.T) {
	n := New("npc-1", "Alda", CategoryFarmer, "site-1")
	n.AddBelief(Belief{SubjectID: "a", Predicate: "heard_rumor", Object: "x", Tick: 1}, 2)
	n.AddBelief(Belief{SubjectID: "b", Predicate: "heard_rumor", Object: "y", Tick: 2}, 2)
	n.AddBelief(Belief{SubjectID: "c", Predicate: "heard_rumor", Object: "z", Tick: 3}, 2)

	require.Len(t, n.Beliefs, 2)
	assert.Equal(t, ID("b"), n.Beliefs[0].SubjectID)
	assert.Equal(t, ID("c"), n.Beliefs[1].SubjectID)
}

func TestAddFactEvictsOldest(t *testing.T) {
	k := &Knowledge{}
	k.AddFact(Fact{Kind: "a"}, 1)
	k.AddFact(Fact{Kind: "b"}, 1)
	require.Len(t, k.Facts, 1)
	assert.Equal(t, "b", k.Facts[0].Kind)
}
