package process

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/worldsim/internal/config"
	"github.com/talgya/worldsim/internal/entropy"
	"github.com/talgya/worldsim/internal/event"
	"github.com/talgya/worldsim/internal/simworld"
)

func newTestContext(seed int64) *Context {
	return &Context{
		RNG:     entropy.New(seed),
		Log:     &event.Log{},
		Counter: &event.Counter{},
		Config:  config.Default(),
	}
}

func TestRunEclipsingPressureBlendsTowardSourceNearRuin(t *testing.T) {
	ctx := newTestContext(1)
	ctx.Counter.Reset()
	w := simworld.NewWorld(ctx.RNG, 1)

	before := w.Sites[simworld.AncientRuin].EclipsingPressure
	RunEclipsingPressure(ctx, w)
	after := w.Sites[simworld.AncientRuin].EclipsingPressure

	assert.GreaterOrEqual(t, after, 0.0)
	assert.LessOrEqual(t, after, 100.0)
	assert.NotEqual(t, before, after)
}

func TestRunAnchoringStaysWithinBounds(t *testing.T) {
	ctx := newTestContext(2)
	ctx.Counter.Reset()
	w := simworld.NewWorld(ctx.RNG, 2)

	for i := 0; i < 20; i++ {
		RunAnchoring(ctx, w)
	}
	for _, id := range w.SortedSiteIDs() {
		s := w.Sites[id]
		assert.GreaterOrEqual(t, s.AnchoringStrength, 0.0)
		assert.LessOrEqual(t, s.AnchoringStrength, 100.0)
	}
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0.0, clampPercent(-10))
	assert.Equal(t, 100.0, clampPercent(150))
	assert.Equal(t, 50.0, clampPercent(50))
}
