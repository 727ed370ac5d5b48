// Package reactive implements the reactive-state catalog, belief-to-intent
// mapping, and multi-step plan synthesis from spec.md §4.7.
//
// Grounded on the teacher's agents.archetypeTemplates (archetype.go): a
// fixed map keyed by id, each entry carrying threshold overrides and a
// preferred-action bias, the same shape this package uses for reactive
// state definitions. The per-tick scan-then-activate loop follows
// engine/crime.go's incident-roll-then-branch idiom, generalized from a
// single incident check to a full trigger catalog scan.
package reactive

import (
	"github.com/talgya/worldsim/internal/attempt"
	"github.com/talgya/worldsim/internal/config"
	"github.com/talgya/worldsim/internal/event"
	"github.com/talgya/worldsim/internal/npc"
	"github.com/talgya/worldsim/internal/site"
)

// TriggerKind is the closed set of reactive-state triggers named in
// spec.md §4.7.
type TriggerKind uint8

const (
	TriggerWitnessedAttempt TriggerKind = iota
	TriggerNPCDied
	TriggerNeedThreshold
	TriggerSiteCondition
	TriggerRepeatedAction
	TriggerAwayFromHome
	TriggerBeliefGained
	TriggerReceivedHelp
	TriggerTimeOfDay
)

// Trigger is a single trigger spec. Which fields matter depends on Kind;
// unused fields are left zero. Keeping one struct rather than an
// interface per kind matches the closed, exhaustively-switched style
// spec.md §9 asks for ("tagged variants... compile-time guarantee").
type Trigger struct {
	Kind TriggerKind

	AttemptKind string // TriggerWitnessedAttempt: "" matches any kind

	Need           string // TriggerNeedThreshold: field name in npc.Needs
	SiteField      attempt.SiteConditionField
	Op             attempt.CompareOp
	Threshold      float64
	DurationHours  int // hours the condition must hold before activating

	RepeatedActionKind string // TriggerRepeatedAction
	RepeatedCount      int

	AwayHoursThreshold uint64 // TriggerAwayFromHome

	BeliefPredicate string // TriggerBeliefGained: "" matches any predicate

	TimeOfDayHour int // TriggerTimeOfDay: hour-of-day (0-23)
}

// StateDef is one entry of the reactive-state catalog: trigger,
// per-kind scoring modifiers, decay shape, and conflict metadata.
type StateDef struct {
	ID                string
	Trigger           Trigger
	WeightModifiers   map[attempt.Kind]float64
	BaseDurationHours float64
	DecayRateModifier float64
	ResistanceTraits  map[string]float64 // trait name -> weight; trait*weight/10 hours come off the trigger hold-duration requirement
	Priority          int
	Stackable         bool
	ConflictGroup     string
}

func needValue(n *npc.NPC, name string) float64 {
	switch name {
	case "Food":
		return n.Needs.Food
	case "Safety":
		return n.Needs.Safety
	case "Duty":
		return n.Needs.Duty
	case "Freedom":
		return n.Needs.Freedom
	case "Meaning":
		return n.Needs.Meaning
	case "Belonging":
		return n.Needs.Belonging
	case "Wealth":
		return n.Needs.Wealth
	case "Health":
		return n.Needs.Health
	default:
		return 0
	}
}

func compare(v float64, op attempt.CompareOp, threshold float64) bool {
	switch op {
	case attempt.OpLT:
		return v < threshold
	case attempt.OpLTE:
		return v <= threshold
	case attempt.OpGT:
		return v > threshold
	case attempt.OpGTE:
		return v >= threshold
	case attempt.OpEQ:
		return v == threshold
	default:
		return false
	}
}

func siteFieldValue(s *site.Site, f attempt.SiteConditionField) float64 {
	switch f {
	case attempt.SiteFieldHunger:
		return s.Hunger
	case attempt.SiteFieldUnrest:
		return s.Unrest
	case attempt.SiteFieldMorale:
		return s.Morale
	case attempt.SiteFieldSickness:
		return s.Sickness
	case attempt.SiteFieldCultInfluence:
		return s.CultInfluence
	case attempt.SiteFieldEclipsingPressure:
		return s.EclipsingPressure
	case attempt.SiteFieldAnchoringStrength:
		return s.AnchoringStrength
	case attempt.SiteFieldFieldsCondition:
		return s.FieldsCondition
	default:
		return 0
	}
}

// resistedDuration reduces a trigger's required hold duration by the
// npc's resistance traits (spec.md's resistanceTraits field): the sum of
// trait value times the def's weight, divided by 10 and truncated, comes
// off in whole hours, floored at 1 hour.
func resistedDuration(def StateDef, n *npc.NPC, baseHours int) int {
	reduction := 0.0
	for trait, weight := range def.ResistanceTraits {
		reduction += traitValue(n, trait) * weight
	}
	hours := baseHours - int(reduction/10)
	if hours < 1 {
		hours = 1
	}
	return hours
}

func traitValue(n *npc.NPC, name string) float64 {
	switch name {
	case "Aggression":
		return n.Traits.Aggression
	case "Courage":
		return n.Traits.Courage
	case "Discipline":
		return n.Traits.Discipline
	case "Integrity":
		return n.Traits.Integrity
	case "Empathy":
		return n.Traits.Empathy
	case "Greed":
		return n.Traits.Greed
	case "Fear":
		return n.Traits.Fear
	case "Suspicion":
		return n.Traits.Suspicion
	case "Curiosity":
		return n.Traits.Curiosity
	case "Ambition":
		return n.Traits.Ambition
	case "NeedForCertainty":
		return n.Traits.NeedForCertainty
	default:
		return 0
	}
}

// Signals bundles the per-tick, per-NPC facts the trigger scan needs
// that aren't already on the NPC or its site — derived by the caller
// from this tick's emitted events (spec.md §4.1 step 6: "update
// reactive states from events").
type Signals struct {
	WitnessedAttemptKinds []string
	NPCDiedAtSite         bool
	ReceivedHelp          bool
	NewBeliefPredicates   []string
}

// holds reports whether the trigger's instantaneous condition is true
// this tick (before any duration/hold-counter bookkeeping).
func holds(t Trigger, tick uint64, n *npc.NPC, s *site.Site, sig Signals) bool {
	switch t.Kind {
	case TriggerWitnessedAttempt:
		for _, k := range sig.WitnessedAttemptKinds {
			if t.AttemptKind == "" || k == t.AttemptKind {
				return true
			}
		}
		return false
	case TriggerNPCDied:
		return sig.NPCDiedAtSite
	case TriggerNeedThreshold:
		return compare(needValue(n, t.Need), t.Op, t.Threshold)
	case TriggerSiteCondition:
		return s != nil && compare(siteFieldValue(s, t.SiteField), t.Op, t.Threshold)
	case TriggerRepeatedAction:
		count := 0
		for _, a := range n.RecentActions {
			if a.Kind == t.RepeatedActionKind {
				count++
			}
		}
		return count >= t.RepeatedCount
	case TriggerAwayFromHome:
		return n.AwayFromHomeSinceTick != 0 && tick-n.AwayFromHomeSinceTick >= t.AwayHoursThreshold
	case TriggerBeliefGained:
		for _, p := range sig.NewBeliefPredicates {
			if t.BeliefPredicate == "" || p == t.BeliefPredicate {
				return true
			}
		}
		return false
	case TriggerReceivedHelp:
		return sig.ReceivedHelp
	case TriggerTimeOfDay:
		return int(tick%24) == t.TimeOfDayHour
	default:
		return false
	}
}

// updateAwayFromHome tracks how long n has been away from HomeSiteID,
// since nothing else in the simulation maintains that field.
func updateAwayFromHome(n *npc.NPC, tick uint64) {
	if n.SiteID == n.HomeSiteID {
		n.AwayFromHomeSinceTick = 0
		return
	}
	if n.AwayFromHomeSinceTick == 0 {
		n.AwayFromHomeSinceTick = tick
	}
}

// EvaluateTick scans the catalog against one NPC, activates any state
// whose trigger has held for its required duration, and decays every
// currently-active state. Called once per alive NPC per tick, after
// attempt resolution (spec.md §4.1 step 6).
func EvaluateTick(cfg config.Config, tick uint64, n *npc.NPC, s *site.Site, sig Signals) {
	updateAwayFromHome(n, tick)

	for _, def := range Catalog {
		baseHours := def.Trigger.DurationHours
		if baseHours <= 0 {
			baseHours = 1
		}
		required := resistedDuration(def, n, baseHours)

		if holds(def.Trigger, tick, n, s, sig) {
			n.StateTriggerMemory[def.ID]++
		} else {
			n.StateTriggerMemory[def.ID] = 0
		}

		if n.StateTriggerMemory[def.ID] < required {
			continue
		}

		activateState(cfg, def, n, tick)
	}

	rates := make(map[string]float64, len(n.ReactiveStates))
	for _, def := range Catalog {
		rates[def.ID] = def.DecayRateModifier * (1 / def.BaseDurationHours) * 100
	}
	n.DecayReactiveStates(rates)
}

func activateState(cfg config.Config, def StateDef, n *npc.NPC, tick uint64) {
	stateCap := cfg.Limits.MaxReactiveStatesPerEntity
	if existing, found := activeState(n, def.ID); found && def.Stackable {
		existing.Intensity += 100
		if existing.Intensity > 100 {
			existing.Intensity = 100
		}
		n.ActivateReactiveState(*existing, stateCap)
		return
	}
	n.ActivateReactiveState(npc.ReactiveState{
		ID:            def.ID,
		Intensity:     100,
		Priority:      def.Priority,
		ConflictGroup: def.ConflictGroup,
		ActivatedTick: tick,
	}, stateCap)
}

func activeState(n *npc.NPC, id string) (*npc.ReactiveState, bool) {
	for i := range n.ReactiveStates {
		if n.ReactiveStates[i].ID == id {
			return &n.ReactiveStates[i], true
		}
	}
	return nil, false
}

func defByID(id string) (StateDef, bool) {
	for _, d := range Catalog {
		if d.ID == id {
			return d, true
		}
	}
	return StateDef{}, false
}

// ScoreModifiers aggregates every active reactive state's weight
// modifiers for the given attempt kind, halving any state's
// contribution that isn't the highest-priority member of its conflict
// group (spec.md §4.7: "within a group, only the highest-priority
// state's modifiers apply full; lower ones are halved").
func ScoreModifiers(n *npc.NPC) map[attempt.Kind]float64 {
	bestInGroup := make(map[string]int) // conflictGroup -> highest priority seen
	for _, rs := range n.ReactiveStates {
		if rs.ConflictGroup == "" {
			continue
		}
		if p, ok := bestInGroup[rs.ConflictGroup]; !ok || rs.Priority > p {
			bestInGroup[rs.ConflictGroup] = rs.Priority
		}
	}

	out := make(map[attempt.Kind]float64)
	for _, rs := range n.ReactiveStates {
		def, ok := defByID(rs.ID)
		if !ok {
			continue
		}
		scale := rs.Intensity / 100
		if rs.ConflictGroup != "" && rs.Priority < bestInGroup[rs.ConflictGroup] {
			scale *= 0.5
		}
		for kind, w := range def.WeightModifiers {
			out[kind] += w * scale
		}
	}
	return out
}

// CombinedModifiers merges reactive-state and plan-step scoring bias
// into the single map attempt.GenerateScoredAttempt expects as
// extraModifiers.
func CombinedModifiers(n *npc.NPC) map[attempt.Kind]float64 {
	out := ScoreModifiers(n)
	for kind, w := range PlanBias(n) {
		out[kind] += w
	}
	return out
}

// BuildSignals scans this tick's emitted events and derives the Signals
// one NPC needs for its trigger scan: attempts it witnessed at its own
// site, whether someone died there, and any belief predicates it
// gained this tick (belief.Witness/IngestOnReturn both stamp new
// beliefs with the current tick, so a plain scan of n.Beliefs finds
// them without needing a separate event match).
func BuildSignals(tickEvents []event.SimEvent, n *npc.NPC, tick uint64, receivedHelp bool) Signals {
	sig := Signals{ReceivedHelp: receivedHelp}
	for _, e := range tickEvents {
		if e.SiteID != n.SiteID {
			continue
		}
		switch e.Kind {
		case "attempt.recorded":
			if a, ok := e.Data["attempt"].(map[string]any); ok {
				if actorID, _ := a["actorId"].(string); actorID != string(n.ID) {
					if k, ok := a["kind"].(string); ok {
						sig.WitnessedAttemptKinds = append(sig.WitnessedAttemptKinds, k)
					}
				}
			}
		case "npc.died":
			sig.NPCDiedAtSite = true
		}
	}
	for _, b := range n.Beliefs {
		if b.Tick == tick {
			sig.NewBeliefPredicates = append(sig.NewBeliefPredicates, b.Predicate)
		}
	}
	return sig
}
