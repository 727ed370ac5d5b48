package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterResetAndNext(t *testing.T) {
	c := &Counter{}
	c.Reset()
	assert.Equal(t, uint64(1), c.Next())
	assert.Equal(t, uint64(2), c.Next())
	c.Reset()
	assert.Equal(t, uint64(1), c.Next())
}

func TestLogEmitStampsIDAndSeq(t *testing.T) {
	log := &Log{}
	c := &Counter{}
	c.Reset()

	e1 := log.Emit(c, 5, "attempt.recorded", VisibilityPublic, "site-1", "ok", nil)
	e2 := log.Emit(c, 5, "npc.died", VisibilityPublic, "site-1", "dead", nil)

	assert.Equal(t, uint64(1), e1.Seq)
	assert.Equal(t, uint64(2), e2.Seq)
	assert.Equal(t, e1.Seq, e1.ID)
}

func TestLogAllPreservesEmissionOrder(t *testing.T) {
	log := &Log{}
	c := &Counter{}
	c.Reset()
	log.Emit(c, 1, "a", VisibilityPublic, "", "", nil)
	log.Emit(c, 1, "b", VisibilityPublic, "", "", nil)
	log.Emit(c, 2, "c", VisibilityPublic, "", "", nil)

	all := log.All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{all[0].Kind, all[1].Kind, all[2].Kind})
}

func TestLogSinceFiltersByID(t *testing.T) {
	log := &Log{}
	c := &Counter{}
	c.Reset()
	log.Emit(c, 1, "a", VisibilityPublic, "", "", nil)
	log.Emit(c, 1, "b", VisibilityPublic, "", "", nil)
	log.Emit(c, 1, "c", VisibilityPublic, "", "", nil)

	since := log.Since(1)
	require.Len(t, since, 2)
	assert.Equal(t, "b", since[0].Kind)
	assert.Equal(t, "c", since[1].Kind)
}

func TestLogSinceAcrossTickResetIsCallerResponsibility(t *testing.T) {
	log := &Log{}
	c := &Counter{}
	c.Reset()
	log.Emit(c, 1, "tick1-a", VisibilityPublic, "", "", nil) // ID 1

	c.Reset()
	log.Emit(c, 2, "tick2-a", VisibilityPublic, "", "", nil) // ID 1 again, different tick

	since := log.Since(0)
	require.Len(t, since, 2)
	assert.Equal(t, uint64(1), since[0].ID)
	assert.Equal(t, uint64(1), since[1].ID)
}
