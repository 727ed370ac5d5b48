// Package process implements the six automatic processes from spec.md
// §4.3, run in the fixed order spec.md §2 names: eclipsing pressure,
// anchoring, food, population (daily-gated), unrest, cult (daily-gated).
//
// Grounded on the teacher's engine package: seasons.go (season-derived
// multipliers), production.go (per-settlement daily production loop),
// population.go (daily aging/death/birth pipeline shape), crime.go
// (incident-roll-then-branch idiom, reused for cult incidents),
// governance.go (neighbor-diffusion averaging, generalized via
// worldmap.WeightedNeighborAverage).
package process

import (
	"github.com/talgya/worldsim/internal/config"
	"github.com/talgya/worldsim/internal/entropy"
	"github.com/talgya/worldsim/internal/event"
	"github.com/talgya/worldsim/internal/worldmap"
)

// Context bundles the per-tick dependencies every process needs: the
// shared RNG, the event log/counter, and the run configuration.
type Context struct {
	RNG     *entropy.RNG
	Log     *event.Log
	Counter *event.Counter
	Config  config.Config
}

// Emit records an event at the given site with the supplied payload.
func (c *Context) Emit(tick uint64, kind string, vis event.Visibility, siteID worldmap.SiteID, message string, data map[string]any) {
	c.Log.Emit(c.Counter, tick, kind, vis, siteID, message, data)
}
