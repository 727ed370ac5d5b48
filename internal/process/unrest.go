package process

import (
	"math"

	"github.com/talgya/worldsim/internal/simworld"
)

// RunUnrest applies the hourly unrest/morale drift described in
// spec.md §4.3. Cult and pressure/sickness stress terms are rounded
// individually before summing (spec.md §9), while the hunger term stays
// unrounded.
func RunUnrest(ctx *Context, w *simworld.World) {
	for _, id := range w.SortedSiteIDs() {
		s := w.Sites[id]
		if !s.IsSettlement() {
			continue
		}

		relief := 0.0
		if s.Hunger < 5 {
			relief = 0.6
		}

		hungerStress := (s.Hunger / 100) * 0.9 * 1.6
		cultStress := math.Round(s.CultInfluence / 100 * 0.3)
		pressureStress := math.Round(s.EclipsingPressure / 100 * 0.2)
		sicknessStress := math.Round(s.Sickness / 100 * 0.2)
		noise := ctx.RNG.Float64()*2 - 1

		delta := hungerStress - relief*0.4 + cultStress + pressureStress + sicknessStress + noise

		s.Unrest += delta
		s.Morale -= delta * 0.6
		s.ClampStats()
	}
}
