// Package site implements the Site tagged variant from spec.md §3:
// settlement, terrain, special, and hideout sites.
//
// Grounded on the teacher's social.Settlement (clamped stat fields,
// governance/culture shape) and world.Hex (tagged-variant-by-enum
// idiom, Terrain constants) — the teacher splits "what is this tile"
// (world.Hex.Terrain) from "who lives here" (social.Settlement); spec.md
// folds both into one Site value per location, so this package merges
// the two shapes into a single Kind-tagged struct.
package site

import "github.com/talgya/worldsim/internal/worldmap"

// Kind tags which variant of Site this value holds.
type Kind uint8

const (
	KindSettlement Kind = iota
	KindTerrain
	KindSpecial
	KindHideout
)

// Culture enumerates the two authored cultures from spec.md §3.
type Culture uint8

const (
	CultureHuman Culture = iota
	CultureElven
)

func (c Culture) String() string {
	if c == CultureElven {
		return "elven"
	}
	return "human"
}

// FoodType enumerates the three food categories.
type FoodType uint8

const (
	FoodGrain FoodType = iota
	FoodFish
	FoodMeat
)

var allFoodTypes = [...]FoodType{FoodGrain, FoodFish, FoodMeat}

// AllFoodTypes returns the fixed iteration order over food types, used
// wherever per-type totals must be summed deterministically.
func AllFoodTypes() []FoodType { return allFoodTypes[:] }

func (f FoodType) String() string {
	switch f {
	case FoodGrain:
		return "grain"
	case FoodFish:
		return "fish"
	case FoodMeat:
		return "meat"
	default:
		return "unknown"
	}
}

// ExpiryDays returns the spoilage threshold in sim-days for a food type
// (spec.md §4.3).
func (f FoodType) ExpiryDays() int {
	switch f {
	case FoodGrain:
		return 60
	case FoodMeat:
		return 4
	case FoodFish:
		return 2
	default:
		return 0
	}
}

// Lot is one batch of stored food with a known production day, so the
// oldest lot can be identified for spoilage and the shortest-remaining
// lot can be identified for consumption (spec.md §4.3).
type Lot struct {
	Amount      float64
	ProducedDay int
}

// Cohorts is the coarse population breakdown of a settlement.
type Cohorts struct {
	Children float64
	Adults   float64
	Elders   float64
}

// Total returns the sum of all cohorts.
func (c Cohorts) Total() float64 { return c.Children + c.Adults + c.Elders }

// Rumor is a local, site-bound piece of information (spec.md §3/§4.5).
type Rumor struct {
	Tick       uint64
	Kind       string
	ActorID    string // empty if unattributed
	SiteID     worldmap.SiteID
	Confidence float64
	Label      string
}

// MaxRumorsPerSite bounds the per-site rumor FIFO (spec.md §3).
const MaxRumorsPerSite = 64

// Site is the tagged variant covering every location kind in spec.md §3.
type Site struct {
	ID      worldmap.SiteID
	Kind    Kind
	Name    string
	Culture Culture

	// Shared scalar fields (terrain/special/hideout carry only these
	// two plus Hidden; settlement carries the full set below).
	EclipsingPressure float64
	AnchoringStrength float64
	Hidden            bool // hideout only

	// Settlement-only fields.
	Cohorts           Cohorts
	HousingCapacity   float64
	FoodStock         map[FoodType][]Lot
	ProductionPerDay  map[FoodType]float64
	FieldsCondition   float64
	Hunger            float64
	Unrest            float64
	Morale            float64
	Sickness          float64
	CultInfluence     float64
	LaborWorkedToday  map[FoodType]float64
	Rumors            []Rumor
	DeathsToday       int
	Local             *worldmap.LocalGraph
}

// NewSettlement constructs a settlement site with zeroed stock maps.
func NewSettlement(id worldmap.SiteID, name string, culture Culture) *Site {
	return &Site{
		ID:               id,
		Kind:             KindSettlement,
		Name:             name,
		Culture:          culture,
		FoodStock:        make(map[FoodType][]Lot),
		ProductionPerDay: make(map[FoodType]float64),
		LaborWorkedToday: make(map[FoodType]float64),
		Morale:           50,
	}
}

// NewNonSettlement constructs a terrain/special/hideout site.
func NewNonSettlement(id worldmap.SiteID, kind Kind, name string, culture Culture) *Site {
	return &Site{ID: id, Kind: kind, Name: name, Culture: culture}
}

// IsSettlement reports whether this site carries population/economy state.
func (s *Site) IsSettlement() bool { return s.Kind == KindSettlement }

// clamp01to100 clamps a percent-scale stat into [0, 100].
func clamp01to100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// clamp01 clamps a unit-scale stat into [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClampStats enforces every percent/unit invariant from spec.md §3 in
// one place, after any process or attempt mutates a settlement's stats.
func (s *Site) ClampStats() {
	s.EclipsingPressure = clamp01to100(s.EclipsingPressure)
	s.AnchoringStrength = clamp01to100(s.AnchoringStrength)
	if !s.IsSettlement() {
		return
	}
	s.Hunger = clamp01to100(s.Hunger)
	s.Unrest = clamp01to100(s.Unrest)
	s.Morale = clamp01to100(s.Morale)
	s.Sickness = clamp01to100(s.Sickness)
	s.CultInfluence = clamp01to100(s.CultInfluence)
	s.FieldsCondition = clamp01(s.FieldsCondition)
	if s.Cohorts.Children < 0 {
		s.Cohorts.Children = 0
	}
	if s.Cohorts.Adults < 0 {
		s.Cohorts.Adults = 0
	}
	if s.Cohorts.Elders < 0 {
		s.Cohorts.Elders = 0
	}
}

// FoodTotal sums the amount across all lots of a given type.
func (s *Site) FoodTotal(t FoodType) float64 {
	total := 0.0
	for _, lot := range s.FoodStock[t] {
		total += lot.Amount
	}
	return total
}

// AddRumor appends a rumor to the site's bounded FIFO, evicting the
// oldest entry once MaxRumorsPerSite is exceeded.
func (s *Site) AddRumor(r Rumor) {
	s.Rumors = append(s.Rumors, r)
	if len(s.Rumors) > MaxRumorsPerSite {
		s.Rumors = s.Rumors[len(s.Rumors)-MaxRumorsPerSite:]
	}
}
