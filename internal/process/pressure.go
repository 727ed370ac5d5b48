package process

import (
	"github.com/talgya/worldsim/internal/event"
	"github.com/talgya/worldsim/internal/simworld"
	"github.com/talgya/worldsim/internal/site"
	"github.com/talgya/worldsim/internal/worldmap"
)

// eclipsingSource returns the local eclipsing-pressure source term for a
// site: AncientRuin=90, any hideout=55, else 0.
func eclipsingSource(id worldmap.SiteID, s *site.Site) float64 {
	if id == simworld.AncientRuin {
		return 90
	}
	if s.Kind == site.KindHideout {
		return 55
	}
	return 0
}

// RunEclipsingPressure blends each site's eclipsing pressure with its
// neighbor-weighted average and a local source term, hourly.
func RunEclipsingPressure(ctx *Context, w *simworld.World) {
	ids := w.SortedSiteIDs()
	next := make(map[worldmap.SiteID]float64, len(ids))
	for _, id := range ids {
		s := w.Sites[id]
		neighborAvg := worldmap.WeightedNeighborAverage(w.Map, id, func(n worldmap.SiteID) float64 {
			return w.Sites[n].EclipsingPressure
		})
		source := eclipsingSource(id, s)
		v := (neighborAvg*0.55 + source) * 0.985
		next[id] = clampPercent(v)
	}
	for _, id := range ids {
		s := w.Sites[id]
		before := s.EclipsingPressure
		s.EclipsingPressure = next[id]
		if s.EclipsingPressure != before {
			ctx.Emit(w.Tick, "world.eclipsing.pressure", publicIfSettlement(s), id, "", map[string]any{
				"before": before, "after": s.EclipsingPressure,
			})
		}
	}
}

// anchoringSource returns the local anchoring-strength source term:
// ElvenCity=85, ElvenTownFortified=65, else 0.
func anchoringSource(id worldmap.SiteID) float64 {
	switch id {
	case simworld.ElvenCity:
		return 85
	case simworld.ElvenTownFortified:
		return 65
	default:
		return 0
	}
}

// RunAnchoring blends each site's anchoring strength with its
// neighbor-weighted average and a local source term, hourly.
func RunAnchoring(ctx *Context, w *simworld.World) {
	ids := w.SortedSiteIDs()
	next := make(map[worldmap.SiteID]float64, len(ids))
	for _, id := range ids {
		neighborAvg := worldmap.WeightedNeighborAverage(w.Map, id, func(n worldmap.SiteID) float64 {
			return w.Sites[n].AnchoringStrength
		})
		source := anchoringSource(id)
		v := (neighborAvg*0.60 + source) * 0.99
		next[id] = clampPercent(v)
	}
	for _, id := range ids {
		s := w.Sites[id]
		before := s.AnchoringStrength
		s.AnchoringStrength = next[id]
		if s.AnchoringStrength != before {
			ctx.Emit(w.Tick, "world.anchoring.strength", publicIfSettlement(s), id, "", map[string]any{
				"before": before, "after": s.AnchoringStrength,
			})
		}
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func publicIfSettlement(s *site.Site) event.Visibility {
	if s.IsSettlement() {
		return event.VisibilityPublic
	}
	return event.VisibilitySystem
}
