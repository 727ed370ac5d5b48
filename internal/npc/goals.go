package npc

import "github.com/talgya/worldsim/internal/worldmap"

// Goal is a longer-lived objective synthesized from a newly gained belief
// (reactive.UpdateGoals), with priority taken from the
// GoalPriorityFromMemory tuning value.
type Goal struct {
	Kind        string
	Priority    float64
	SpawnedTick uint64
}

// HasGoalKind reports whether the NPC currently holds a goal of the
// given kind.
func (n *NPC) HasGoalKind(kind string) bool {
	for _, g := range n.Goals {
		if g.Kind == kind {
			return true
		}
	}
	return false
}

// AddGoal inserts a new goal or refreshes an existing one of the same
// kind, evicting the lowest-priority goal once cap is exceeded.
func (n *NPC) AddGoal(g Goal, cap int) {
	for i, existing := range n.Goals {
		if existing.Kind == g.Kind {
			n.Goals[i] = g
			return
		}
	}
	n.Goals = append(n.Goals, g)
	if len(n.Goals) <= cap {
		return
	}
	minIdx := 0
	for i := 1; i < len(n.Goals); i++ {
		if n.Goals[i].Priority < n.Goals[minIdx].Priority {
			minIdx = i
		}
	}
	n.Goals = append(n.Goals[:minIdx], n.Goals[minIdx+1:]...)
}

// DecayGoals reduces every goal's priority by perDay, abandoning
// (removing) any goal whose priority falls below abandonThreshold.
func (n *NPC) DecayGoals(perDay, abandonThreshold float64) {
	kept := n.Goals[:0]
	for _, g := range n.Goals {
		g.Priority -= perDay
		if g.Priority >= abandonThreshold {
			kept = append(kept, g)
		}
	}
	n.Goals = kept
}

// PlanStep is one action kind in a multi-step plan.
type PlanStep struct {
	Kind string
}

// Plan is an ordered sequence of steps working toward a goal (e.g.
// get_food = [travel_to_market, trade]).
type Plan struct {
	GoalKind    string
	Steps       []PlanStep
	StepIndex   int
	StartedTick uint64
}

// CurrentStep returns the plan's active step, or ok=false if complete.
func (p *Plan) CurrentStep() (PlanStep, bool) {
	if p == nil || p.StepIndex >= len(p.Steps) {
		return PlanStep{}, false
	}
	return p.Steps[p.StepIndex], true
}

// Advance moves the plan to its next step. It only increments StepIndex;
// once Done reports true the caller (reactive.AdvancePlans) nils the NPC's
// Plan field.
func (p *Plan) Advance() {
	p.StepIndex++
}

// Done reports whether every step of the plan has executed.
func (p *Plan) Done() bool {
	return p.StepIndex >= len(p.Steps)
}

// Intent is a lightweight, longer-lived urge mapped from a belief (e.g.
// witnessed_crime + high Aggression -> attack intent).
type Intent struct {
	Kind          string
	Intensity     float64
	TargetSiteID  worldmap.SiteID
	TargetNPCID   ID
	ExecuteAtTick uint64
}

// DecayIntents reduces every intent's intensity by the given per-hour
// rate, removing any intent whose intensity has reached zero.
func (n *NPC) DecayIntents(perHour float64) {
	kept := n.Intents[:0]
	for _, it := range n.Intents {
		it.Intensity -= perHour
		if it.Intensity > 0 {
			kept = append(kept, it)
		}
	}
	n.Intents = kept
}

// AddIntent appends an intent, dropping the lowest-intensity intent once
// cap is exceeded.
func (n *NPC) AddIntent(it Intent, cap int) {
	n.Intents = append(n.Intents, it)
	if len(n.Intents) <= cap {
		return
	}
	minIdx := 0
	for i := 1; i < len(n.Intents); i++ {
		if n.Intents[i].Intensity < n.Intents[minIdx].Intensity {
			minIdx = i
		}
	}
	n.Intents = append(n.Intents[:minIdx], n.Intents[minIdx+1:]...)
}

// ReactiveState is one active instance of the reactive-state catalog on
// a given NPC: an id, its current decaying intensity, and the
// conflict/priority metadata needed to halve lower-priority modifiers
// within the same conflict group.
type ReactiveState struct {
	ID            string
	Intensity     float64
	Priority      int
	ConflictGroup string
	ActivatedTick uint64
}

// HasReactiveState reports whether the NPC currently carries the named
// state.
func (n *NPC) HasReactiveState(id string) bool {
	for _, rs := range n.ReactiveStates {
		if rs.ID == id {
			return true
		}
	}
	return false
}

// ActivateReactiveState inserts or refreshes a reactive state, evicting
// the lowest-intensity entry once cap is exceeded.
func (n *NPC) ActivateReactiveState(rs ReactiveState, cap int) {
	for i, existing := range n.ReactiveStates {
		if existing.ID == rs.ID {
			n.ReactiveStates[i] = rs
			return
		}
	}
	n.ReactiveStates = append(n.ReactiveStates, rs)
	if len(n.ReactiveStates) <= cap {
		return
	}
	minIdx := 0
	for i := 1; i < len(n.ReactiveStates); i++ {
		if n.ReactiveStates[i].Intensity < n.ReactiveStates[minIdx].Intensity {
			minIdx = i
		}
	}
	n.ReactiveStates = append(n.ReactiveStates[:minIdx], n.ReactiveStates[minIdx+1:]...)
}

// DecayReactiveStates reduces every active state's intensity by its own
// per-hour rate, removing any state whose intensity reaches zero.
func (n *NPC) DecayReactiveStates(perHourRates map[string]float64) {
	kept := n.ReactiveStates[:0]
	for _, rs := range n.ReactiveStates {
		rs.Intensity -= perHourRates[rs.ID]
		if rs.Intensity > 0 {
			kept = append(kept, rs)
		}
	}
	n.ReactiveStates = kept
}

// StateTriggerMemory counts consecutive hours a reactive state's
// threshold trigger has held, keyed by state id, so duration-gated
// triggers (needThreshold, siteCondition) can require sustained truth
// before activating.
type StateTriggerMemory map[string]int
