package simworld

import (
	"github.com/talgya/worldsim/internal/entropy"
	"github.com/talgya/worldsim/internal/narrative"
	"github.com/talgya/worldsim/internal/npc"
	"github.com/talgya/worldsim/internal/site"
	"github.com/talgya/worldsim/internal/worldmap"
)

// Hand-authored site ids, named the way spec.md §3/§8 names them so the
// scenario tests have stable handles to build on.
const (
	HumanVillageA      worldmap.SiteID = "HumanVillageA"
	HumanCityPort      worldmap.SiteID = "HumanCityPort"
	ElvenCity          worldmap.SiteID = "ElvenCity"
	ElvenTownFortified worldmap.SiteID = "ElvenTownFortified"
	AncientRuin        worldmap.SiteID = "AncientRuin"
	CultHideout1       worldmap.SiteID = "CultHideout1"
)

// BuildSeedMap constructs the fixed six-site graph: a loop of settlements
// around one special site and one initially hidden hideout, the way
// social.SeedFactions hand-authors a fixed faction roster.
func BuildSeedMap() *worldmap.Map {
	m := worldmap.NewMap()
	m.AddSite(HumanVillageA)
	m.AddSite(HumanCityPort)
	m.AddSite(ElvenCity)
	m.AddSite(ElvenTownFortified)
	m.AddSite(AncientRuin)
	m.AddSite(CultHideout1)

	m.AddEdge(HumanVillageA, HumanCityPort, 18, worldmap.QualityRoad)
	m.AddEdge(HumanCityPort, AncientRuin, 32, worldmap.QualityRough)
	m.AddEdge(AncientRuin, ElvenCity, 28, worldmap.QualityRough)
	m.AddEdge(ElvenCity, ElvenTownFortified, 15, worldmap.QualityRoad)
	m.AddEdge(ElvenTownFortified, HumanVillageA, 40, worldmap.QualityRough)
	m.AddEdge(HumanVillageA, AncientRuin, 24, worldmap.QualityRough)
	m.AddEdge(CultHideout1, AncientRuin, 9, worldmap.QualityRough)
	return m
}

// BuildSeedSites constructs the six hand-authored sites with their
// starting stats.
func BuildSeedSites() map[worldmap.SiteID]*site.Site {
	sites := make(map[worldmap.SiteID]*site.Site)

	villageA := site.NewSettlement(HumanVillageA, "Village A", site.CultureHuman)
	villageA.Cohorts = site.Cohorts{Children: 40, Adults: 120, Elders: 20}
	villageA.HousingCapacity = 220
	villageA.ProductionPerDay[site.FoodGrain] = 80
	villageA.FieldsCondition = 0.8
	villageA.Morale = 60
	sites[HumanVillageA] = villageA

	cityPort := site.NewSettlement(HumanCityPort, "City Port", site.CultureHuman)
	cityPort.Cohorts = site.Cohorts{Children: 90, Adults: 300, Elders: 50}
	cityPort.HousingCapacity = 500
	cityPort.ProductionPerDay[site.FoodFish] = 150
	cityPort.ProductionPerDay[site.FoodGrain] = 40
	cityPort.FieldsCondition = 0.7
	cityPort.Morale = 55
	cityPort.Local = buildPortLocalGraph()
	sites[HumanCityPort] = cityPort

	elvenCity := site.NewSettlement(ElvenCity, "Elven City", site.CultureElven)
	elvenCity.Cohorts = site.Cohorts{Children: 60, Adults: 220, Elders: 60}
	elvenCity.HousingCapacity = 400
	elvenCity.ProductionPerDay[site.FoodGrain] = 60
	elvenCity.ProductionPerDay[site.FoodMeat] = 30
	elvenCity.FieldsCondition = 0.9
	elvenCity.Morale = 70
	elvenCity.AnchoringStrength = 55
	sites[ElvenCity] = elvenCity

	elvenTown := site.NewSettlement(ElvenTownFortified, "Elven Town, Fortified", site.CultureElven)
	elvenTown.Cohorts = site.Cohorts{Children: 30, Adults: 110, Elders: 25}
	elvenTown.HousingCapacity = 200
	elvenTown.ProductionPerDay[site.FoodMeat] = 50
	elvenTown.FieldsCondition = 0.75
	elvenTown.Morale = 65
	elvenTown.AnchoringStrength = 65
	sites[ElvenTownFortified] = elvenTown

	ruin := site.NewNonSettlement(AncientRuin, site.KindSpecial, "Ancient Ruin", site.CultureHuman)
	ruin.EclipsingPressure = 40
	sites[AncientRuin] = ruin

	hideout := site.NewNonSettlement(CultHideout1, site.KindHideout, "Cult Hideout", site.CultureHuman)
	hideout.Hidden = true
	hideout.EclipsingPressure = 70
	sites[CultHideout1] = hideout

	return sites
}

func buildPortLocalGraph() *worldmap.LocalGraph {
	g := &worldmap.LocalGraph{
		Nodes: []worldmap.LocalNode{
			{ID: "gate", Kind: worldmap.NodeGate, Name: "Port Gate"},
			{ID: "market", Kind: worldmap.NodeMarket, Name: "Fish Market"},
			{ID: "docks", Kind: worldmap.NodeDocks, Name: "Docks"},
			{ID: "guardhouse", Kind: worldmap.NodeGuardhouse, Name: "Guardhouse"},
			{ID: "storage", Kind: worldmap.NodeStorage, Name: "Granary"},
			{ID: "tavern", Kind: worldmap.NodeTavern, Name: "The Salted Rope"},
			{ID: "clinic", Kind: worldmap.NodeClinic, Name: "Clinic"},
			{ID: "streets", Kind: worldmap.NodeStreets, Name: "Market Streets"},
		},
		Edges: []worldmap.LocalEdge{
			{From: "gate", To: "streets", Meters: 150},
			{From: "streets", To: "market", Meters: 100},
			{From: "streets", To: "docks", Meters: 200},
			{From: "streets", To: "guardhouse", Meters: 120},
			{From: "streets", To: "tavern", Meters: 90},
			{From: "market", To: "storage", Meters: 60},
			{From: "docks", To: "clinic", Meters: 140},
		},
	}
	g.Build()
	return g
}

// populationPlan describes how many NPCs of each category to spawn for a
// settlement, proportional to its adult cohort.
func populationPlan(adults float64) map[npc.Category]int {
	total := int(adults)
	return map[npc.Category]int{
		npc.CategoryFarmer:      total * 25 / 100,
		npc.CategoryFisher:      total * 10 / 100,
		npc.CategoryHunter:      total * 5 / 100,
		npc.CategoryCrafter:     total * 10 / 100,
		npc.CategoryMerchant:    total * 8 / 100,
		npc.CategoryGuard:       total * 8 / 100,
		npc.CategoryPriest:      total * 3 / 100,
		npc.CategoryScholar:     total * 3 / 100,
		npc.CategoryHealer:      total * 3 / 100,
		npc.CategoryNoble:       total * 2 / 100,
		npc.CategoryLeader:      1,
		npc.CategoryLaborer:     total * 15 / 100,
		npc.CategoryMiner:       total * 4 / 100,
		npc.CategoryCultDevotee: total * 2 / 100,
		npc.CategoryWanderer:    total * 2 / 100,
	}
}

// BuildSeedNPCs spawns the starting roster across every settlement site,
// plus a small bandit cell at the cult hideout, using the given spawner
// (which keeps minting ids for the rest of the run).
func BuildSeedNPCs(spawner *npc.Spawner, sites map[worldmap.SiteID]*site.Site) map[npc.ID]*npc.NPC {
	out := make(map[npc.ID]*npc.NPC)

	for _, id := range worldmap.SortedSiteIDs(sites) {
		s := sites[id]
		if !s.IsSettlement() {
			continue
		}
		for _, cat := range sortedCategories(populationPlan(s.Cohorts.Adults)) {
			count := populationPlan(s.Cohorts.Adults)[cat]
			for _, n := range spawner.Spawn(count, cat, id) {
				out[n.ID] = n
			}
		}
	}

	for _, n := range spawner.Spawn(6, npc.CategoryBandit, CultHideout1) {
		n.SiteID = CultHideout1
		n.Cult = npc.CultStanding{Member: true, Role: npc.CultRoleDevotee}
		out[n.ID] = n
	}

	return out
}

func sortedCategories(plan map[npc.Category]int) []npc.Category {
	cats := make([]npc.Category, 0, len(plan))
	for c := range plan {
		cats = append(cats, c)
	}
	// Category is a small uint8 enum; sort ascending for deterministic
	// spawn-order across settlements.
	for i := 1; i < len(cats); i++ {
		for j := i; j > 0 && cats[j] < cats[j-1]; j-- {
			cats[j], cats[j-1] = cats[j-1], cats[j]
		}
	}
	return cats
}

// NewWorld assembles a fresh World from the hand-authored seed map, sites,
// and NPC roster, handing rng to the spawner — the same RNG instance the caller's tick loop will keep consuming from, per
// spec.md §4.2's single-stream determinism contract.
func NewWorld(rng *entropy.RNG, seed int64) *World {
	spawner := npc.NewSpawner(rng, seed)
	m := BuildSeedMap()
	sites := BuildSeedSites()
	npcs := BuildSeedNPCs(spawner, sites)
	return &World{
		Seed:      seed,
		Map:       m,
		Sites:     sites,
		NPCs:      npcs,
		Chronicle: narrative.NewChronicle(),
		Spawner:   spawner,
	}
}
