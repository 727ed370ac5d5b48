// Package npc implements the NPC entity from spec.md §3: traits, needs,
// beliefs, relationships, goals, plans, intents, knowledge, inventory,
// emotions, and the bounded-collection eviction rules that govern them.
//
// Grounded on the teacher's agents.Agent (demographic/economic/social
// field layout), agents.Memory (importance-ranked bounded eviction, see
// AddMemory in memory.go) and agents.BehaviorTemplate/archetype naming
// (archetype.go) for the category roster.
package npc

import "github.com/talgya/worldsim/internal/worldmap"

// ID identifies an NPC.
type ID string

// Category is one of the ~20 social/economic roles an NPC can occupy.
type Category uint8

const (
	CategoryFarmer Category = iota
	CategoryFisher
	CategoryHunter
	CategoryCrafter
	CategoryMerchant
	CategoryGuard
	CategoryPriest
	CategoryScholar
	CategoryHealer
	CategoryNoble
	CategoryLeader
	CategoryLaborer
	CategoryMiner
	CategoryBandit
	CategoryCultDevotee
	CategoryCultLeader
	CategoryChild
	CategoryElder
	CategoryWanderer
	CategoryOutcast
)

// DeathCause enumerates why an NPC died.
type DeathCause uint8

const (
	CauseNone DeathCause = iota
	CauseMurder
	CauseStarvation
	CauseIllness
	CauseRaid
	CauseUnknown
)

func (c DeathCause) String() string {
	switch c {
	case CauseMurder:
		return "murder"
	case CauseStarvation:
		return "starvation"
	case CauseIllness:
		return "illness"
	case CauseRaid:
		return "raid"
	case CauseUnknown:
		return "unknown"
	default:
		return "none"
	}
}

// Death records the circumstances of an NPC's death.
type Death struct {
	Tick      uint64
	Cause     DeathCause
	ByNPCID   ID
	AtSiteID  worldmap.SiteID
}

// Traits are static-ish personality scalars in [0, 100].
type Traits struct {
	Aggression       float64
	Courage          float64
	Discipline       float64
	Integrity        float64
	Empathy          float64
	Greed            float64
	Fear             float64
	Suspicion        float64
	Curiosity        float64
	Ambition         float64
	NeedForCertainty float64
}

// Needs are volatile drives in [0, 100]; higher means more urgent.
type Needs struct {
	Food      float64
	Safety    float64
	Duty      float64
	Freedom   float64
	Meaning   float64
	Belonging float64
	Wealth    float64
	Health    float64
}

// CultRole tags an NPC's standing within the cult, if any.
type CultRole uint8

const (
	CultRoleNone CultRole = iota
	CultRoleDevotee
	CultRoleCellLeader
	CultRoleEnforcer
)

// CultStanding records cult membership state.
type CultStanding struct {
	Member     bool
	Role       CultRole
	JoinedTick uint64
}

// Relationship is directional affect one NPC holds toward another.
type Relationship struct {
	Trust   float64
	Fear    float64
	Loyalty float64
}

// Debt is an amount one NPC owes another, decaying over time.
type Debt struct {
	ToNPCID ID
	Amount  float64
}

// Emotions are short-lived affective scalars, each in [0, 100].
type Emotions struct {
	Stress     float64
	Fear       float64
	Anger      float64
	Grief      float64
	Gratitude  float64
	Pride      float64
	Shame      float64
}

// Inventory is an NPC's carried wealth and food.
type Inventory struct {
	Coins float64
	Food  map[string]float64
}

// Status holds transient control flags and the detention record naming
// who is holding the NPC, where, and until when (spec.md §4.4 kidnap).
type Status struct {
	Detained  bool
	ByNPCID   ID
	AtSiteID  worldmap.SiteID
	UntilTick uint64
	Eclipsing bool
}

// Travel tracks progress along an inter-site edge.
type Travel struct {
	FromSiteID   worldmap.SiteID
	ToSiteID     worldmap.SiteID
	KmRemaining  float64
	StartedTick  uint64
}

// LocalTravel tracks progress along an intra-site path.
type LocalTravel struct {
	Path           []string
	NextIndex      int
	MetersRemaining float64
}

// NPC is one character in the simulation.
type NPC struct {
	ID         ID
	Name       string
	Category   Category
	SiteID     worldmap.SiteID
	HomeSiteID worldmap.SiteID
	Alive      bool
	Death      *Death

	Traits Traits
	Needs  Needs

	HP, MaxHP float64
	Trauma    float64
	Notability float64

	Cult          CultStanding
	Beliefs       []Belief
	Relationships map[ID]Relationship
	Goals         []Goal
	Plan          *Plan
	Intents       []Intent
	ReactiveStates []ReactiveState
	StateTriggerMemory StateTriggerMemory
	Knowledge     *Knowledge
	Inventory     *Inventory
	Debts         []Debt
	RecentActions []RecentAction

	ConsecutiveHungerHours int
	BusyUntilTick          uint64
	BusyKind               string
	LastAttemptTick        uint64
	ForcedActiveUntilTick  uint64

	Travel      *Travel
	LocalTravel *LocalTravel
	Status      Status

	AwayFromHomeSinceTick uint64
	FamilyIDs             []ID
	EpisodicMemory        []EpisodicMemory
	Emotions              Emotions
	LastVisitTick         map[worldmap.SiteID]uint64
}

// RecentAction is a bounded log entry of an NPC's own past attempts.
type RecentAction struct {
	Tick uint64
	Kind string
}

// EpisodicMemory is a notable experience retained for belief/plan context,
// mirroring the teacher's importance-ranked Memory record.
type EpisodicMemory struct {
	Tick       uint64
	Content    string
	Importance float64
}

// New constructs a living NPC with default stats.
func New(id ID, name string, category Category, homeSiteID worldmap.SiteID) *NPC {
	return &NPC{
		ID:            id,
		Name:          name,
		Category:      category,
		SiteID:        homeSiteID,
		HomeSiteID:    homeSiteID,
		Alive:         true,
		HP:            100,
		MaxHP:         100,
		Relationships: make(map[ID]Relationship),
		StateTriggerMemory: make(StateTriggerMemory),
		LastVisitTick: make(map[worldmap.SiteID]uint64),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampStats enforces every [0,100] invariant on traits, needs, state
// scalars, and emotions (spec.md §3).
func (n *NPC) ClampStats() {
	n.Traits.Aggression = clamp(n.Traits.Aggression, 0, 100)
	n.Traits.Courage = clamp(n.Traits.Courage, 0, 100)
	n.Traits.Discipline = clamp(n.Traits.Discipline, 0, 100)
	n.Traits.Integrity = clamp(n.Traits.Integrity, 0, 100)
	n.Traits.Empathy = clamp(n.Traits.Empathy, 0, 100)
	n.Traits.Greed = clamp(n.Traits.Greed, 0, 100)
	n.Traits.Fear = clamp(n.Traits.Fear, 0, 100)
	n.Traits.Suspicion = clamp(n.Traits.Suspicion, 0, 100)
	n.Traits.Curiosity = clamp(n.Traits.Curiosity, 0, 100)
	n.Traits.Ambition = clamp(n.Traits.Ambition, 0, 100)
	n.Traits.NeedForCertainty = clamp(n.Traits.NeedForCertainty, 0, 100)

	n.Needs.Food = clamp(n.Needs.Food, 0, 100)
	n.Needs.Safety = clamp(n.Needs.Safety, 0, 100)
	n.Needs.Duty = clamp(n.Needs.Duty, 0, 100)
	n.Needs.Freedom = clamp(n.Needs.Freedom, 0, 100)
	n.Needs.Meaning = clamp(n.Needs.Meaning, 0, 100)
	n.Needs.Belonging = clamp(n.Needs.Belonging, 0, 100)
	n.Needs.Wealth = clamp(n.Needs.Wealth, 0, 100)
	n.Needs.Health = clamp(n.Needs.Health, 0, 100)

	n.Trauma = clamp(n.Trauma, 0, 100)
	n.Notability = clamp(n.Notability, 0, 100)
	if n.HP < 0 {
		n.HP = 0
	}
	if n.HP > n.MaxHP {
		n.HP = n.MaxHP
	}

	n.Emotions.Stress = clamp(n.Emotions.Stress, 0, 100)
	n.Emotions.Fear = clamp(n.Emotions.Fear, 0, 100)
	n.Emotions.Anger = clamp(n.Emotions.Anger, 0, 100)
	n.Emotions.Grief = clamp(n.Emotions.Grief, 0, 100)
	n.Emotions.Gratitude = clamp(n.Emotions.Gratitude, 0, 100)
	n.Emotions.Pride = clamp(n.Emotions.Pride, 0, 100)
	n.Emotions.Shame = clamp(n.Emotions.Shame, 0, 100)
}

// Die marks the NPC dead with the given death record and clears transient
// state that no longer applies to a corpse.
func (n *NPC) Die(d Death) {
	n.Alive = false
	n.Death = &d
	n.Travel = nil
	n.LocalTravel = nil
	n.Plan = nil
}

// AddRecentAction appends to the bounded recent-actions log, evicting the
// oldest entry once the cap is exceeded.
func (n *NPC) AddRecentAction(tick uint64, kind string, cap int) {
	n.RecentActions = append(n.RecentActions, RecentAction{Tick: tick, Kind: kind})
	if len(n.RecentActions) > cap {
		n.RecentActions = n.RecentActions[len(n.RecentActions)-cap:]
	}
}

// AddEpisodicMemory inserts a memory, evicting the least-important entry
// once the cap is exceeded — mirrors the teacher's AddMemory eviction
// rule (agents/memory.go), generalized to any cap instead of a package
// constant.
func (n *NPC) AddEpisodicMemory(m EpisodicMemory, cap int) {
	if len(n.EpisodicMemory) < cap {
		n.EpisodicMemory = append(n.EpisodicMemory, m)
		return
	}
	minIdx := 0
	for i := 1; i < len(n.EpisodicMemory); i++ {
		if n.EpisodicMemory[i].Importance < n.EpisodicMemory[minIdx].Importance {
			minIdx = i
		}
	}
	if m.Importance > n.EpisodicMemory[minIdx].Importance {
		n.EpisodicMemory[minIdx] = m
	}
}

// SetRelationship upserts a relationship. Once the map holds cap entries,
// a relationship with a new party is ignored; existing entries are never
// evicted to make room. The map itself has no stable order, so callers needing deterministic
// iteration must sort keys (worldmap.SortedSiteIDs-style) themselves.
func (n *NPC) SetRelationship(other ID, r Relationship, cap int) {
	if _, exists := n.Relationships[other]; !exists && len(n.Relationships) >= cap {
		return
	}
	n.Relationships[other] = r
}
