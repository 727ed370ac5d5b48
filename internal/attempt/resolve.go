package attempt

import (
	"github.com/talgya/worldsim/internal/belief"
	"github.com/talgya/worldsim/internal/event"
	"github.com/talgya/worldsim/internal/movement"
	"github.com/talgya/worldsim/internal/npc"
	"github.com/talgya/worldsim/internal/process"
	"github.com/talgya/worldsim/internal/simworld"
	"github.com/talgya/worldsim/internal/site"
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func visEvent(v Visibility) event.Visibility {
	switch v {
	case VisibilityPrivate:
		return event.VisibilityPrivate
	case VisibilitySystem:
		return event.VisibilitySystem
	default:
		return event.VisibilityPublic
	}
}

// outcome is the internal result of resolving one attempt: whether the
// roll succeeded, the consequence payload to attach to attempt.recorded,
// and — if the attempt never reached resolution — the abort reason.
type outcome struct {
	success       bool
	consequences  map[string]any
	abortedReason string
}

func aborted(reason string) outcome { return outcome{abortedReason: reason} }

// Resolve runs the shared resolution contract from spec.md §4.4 for one
// attempt: started → per-kind chance/mutation → recorded → completed (or
// aborted), plus witnessing on public visibility.
func Resolve(ctx *process.Context, w *simworld.World, a Attempt) {
	ctx.Emit(a.Tick, "attempt.started", visEvent(a.Visibility), a.SiteID, "", map[string]any{
		"attempt": attemptPayload(a),
	})

	actor, ok := w.NPCs[a.ActorID]
	if !ok || !actor.Alive {
		ctx.Emit(a.Tick, "attempt.aborted", visEvent(a.Visibility), a.SiteID, "", map[string]any{
			"attempt": attemptPayload(a), "reason": "actor_unavailable",
		})
		return
	}
	s, ok := w.Sites[a.SiteID]
	if !ok {
		ctx.Emit(a.Tick, "attempt.aborted", visEvent(a.Visibility), a.SiteID, "", map[string]any{
			"attempt": attemptPayload(a), "reason": "unknown_site",
		})
		return
	}

	var target *npc.NPC
	if a.TargetID != "" {
		target = w.NPCs[a.TargetID]
	}

	out := dispatch(ctx, w, s, actor, target, a)
	if out.abortedReason != "" {
		ctx.Emit(a.Tick, "attempt.aborted", visEvent(a.Visibility), a.SiteID, "", map[string]any{
			"attempt": attemptPayload(a), "reason": out.abortedReason,
		})
		return
	}

	ctx.Emit(a.Tick, "attempt.recorded", visEvent(a.Visibility), a.SiteID, "", map[string]any{
		"attempt":      attemptPayload(a),
		"success":      out.success,
		"consequences": out.consequences,
	})
	ctx.Emit(a.Tick, "attempt.completed", visEvent(a.Visibility), a.SiteID, "", map[string]any{
		"attempt": attemptPayload(a),
	})

	if a.Visibility == VisibilityPublic {
		witnesses := w.NPCsAtSite(a.SiteID)
		belief.Witness(a.Tick, string(a.Kind), string(a.ActorID), a.SiteID, s, witnesses, ctx.Config.Limits.MaxMemoriesPerEntity)
	}
}

func attemptPayload(a Attempt) map[string]any {
	return map[string]any{
		"id":       a.ID,
		"kind":     string(a.Kind),
		"actorId":  string(a.ActorID),
		"targetId": string(a.TargetID),
		"siteId":   string(a.SiteID),
	}
}

func dispatch(ctx *process.Context, w *simworld.World, s *site.Site, actor, target *npc.NPC, a Attempt) outcome {
	switch a.Kind {
	case KindWorkFarm, KindWorkFish, KindWorkHunt:
		return resolveWork(s, a.Kind, a.Tick)
	case KindSteal:
		return resolveSteal(ctx, s, actor)
	case KindAssault:
		return resolveAssault(ctx, actor, target)
	case KindKill:
		return resolveKill(ctx, w, s, actor, target, a.Tick)
	case KindKidnap:
		return resolveKidnap(ctx, w, s, actor, target, a.Tick)
	case KindForcedEclipse:
		return resolveForcedEclipse(target)
	case KindAnchorSever:
		return resolveAnchorSever(actor, target)
	case KindInvestigate:
		return resolveInvestigate(ctx, w, s, actor, target, a.Tick)
	case KindRaid:
		return resolveRaid(ctx, w, s, actor, a.Tick)
	case KindPreachFixedPath:
		return resolvePreach(ctx, s)
	case KindTravel:
		return resolveTravel(w, actor, a)
	case KindHeal:
		return resolveHeal(ctx, actor, target)
	case KindTrade:
		return resolveTrade(ctx, w, s, actor, target)
	case KindPatrol:
		return resolvePatrol(ctx, s, actor)
	case KindGossip:
		return resolveGossip(ctx, actor, target)
	case KindArrest:
		return resolveArrest(ctx, actor, target, a.Tick)
	case KindRecon:
		return resolveRecon(ctx, s, actor, a.Tick)
	case KindBlackmail:
		return resolveBlackmail(ctx, actor, target)
	case KindIdle:
		return outcome{success: true, consequences: map[string]any{}}
	default:
		return aborted("unresolved_kind")
	}
}

func roll(ctx *process.Context, score float64) bool {
	r := ctx.RNG.IntRange(0, 99)
	return float64(r) < clamp(score, 0, 100)
}

// resolveWork handles the farm/fish/hunt family: amount = 2*hours*
// fieldsCondition (hours=1 per hourly tick), added as a new lot and
// counted toward the day's labor (spec.md §4.4).
func resolveWork(s *site.Site, k Kind, tick uint64) outcome {
	t := site.FoodGrain
	switch k {
	case KindWorkFish:
		t = site.FoodFish
	case KindWorkHunt:
		t = site.FoodMeat
	}
	amount := 2 * s.FieldsCondition
	if amount < 0 {
		amount = 0
	}
	s.FoodStock[t] = append(s.FoodStock[t], site.Lot{Amount: amount, ProducedDay: int(tick / 24)})
	s.LaborWorkedToday[t] += amount
	return outcome{success: true, consequences: map[string]any{"amount": amount, "foodType": t.String()}}
}

func newestLotIndex(lots []site.Lot) int {
	idx := 0
	for i, l := range lots {
		if l.ProducedDay > lots[idx].ProducedDay {
			idx = i
		}
	}
	return idx
}

func resolveSteal(ctx *process.Context, s *site.Site, actor *npc.NPC) outcome {
	score := 40 + actor.Traits.Greed*0.3 - s.Unrest*0.1
	success := roll(ctx, score)
	cons := map[string]any{}
	if success {
		for _, t := range site.AllFoodTypes() {
			lots := s.FoodStock[t]
			if len(lots) == 0 {
				continue
			}
			idx := newestLotIndex(lots)
			taken := lots[idx].Amount * 0.2
			lots[idx].Amount -= taken
			s.FoodStock[t] = lots
			cons["stolen"] = taken
			cons["foodType"] = t.String()
			break
		}
	}
	return outcome{success: success, consequences: cons}
}

// assaultDamageRange is the clamped hp-damage span both combatants draw
// from, per spec.md §4.4's "damage drawn from clamped ranges".
const assaultDamageRange = 18.0

func resolveAssault(ctx *process.Context, actor, target *npc.NPC) outcome {
	if target == nil {
		return aborted("no_target")
	}
	score := 40 + actor.Traits.Aggression*0.3 - target.Traits.Discipline*0.2
	success := roll(ctx, score)

	actorDmg := ctx.RNG.Float64() * assaultDamageRange * 0.4
	targetDmg := ctx.RNG.Float64() * assaultDamageRange
	if !success {
		actorDmg, targetDmg = targetDmg, actorDmg*0.5
	}
	actor.HP -= actorDmg
	target.HP -= targetDmg
	actor.ClampStats()
	target.ClampStats()
	return outcome{success: success, consequences: map[string]any{"actorDamage": actorDmg, "targetDamage": targetDmg}}
}

// decrementCohortForDeath removes one person from the cohort matching
// the dead NPC's category, so named-NPC deaths stay consistent with the
// aggregate cohort totals.
func decrementCohortForDeath(s *site.Site, n *npc.NPC) {
	if !s.IsSettlement() {
		return
	}
	switch n.Category {
	case npc.CategoryChild:
		if s.Cohorts.Children > 0 {
			s.Cohorts.Children--
		}
	case npc.CategoryElder:
		if s.Cohorts.Elders > 0 {
			s.Cohorts.Elders--
		}
	default:
		if s.Cohorts.Adults > 0 {
			s.Cohorts.Adults--
		}
	}
}

func resolveKill(ctx *process.Context, w *simworld.World, s *site.Site, actor, target *npc.NPC, tick uint64) outcome {
	if target == nil {
		return aborted("no_target")
	}
	score := 30 + actor.Traits.Aggression + actor.Traits.Courage + actor.Traits.Discipline -
		(target.Traits.Aggression + target.Traits.Courage + target.Traits.Discipline)
	success := roll(ctx, score)
	cons := map[string]any{}
	if success {
		target.Die(npc.Death{Tick: tick, Cause: npc.CauseMurder, ByNPCID: actor.ID, AtSiteID: s.ID})
		decrementCohortForDeath(s, target)
		ctx.Emit(tick, "npc.died", event.VisibilityPublic, s.ID, "", map[string]any{
			"npcId": string(target.ID), "cause": target.Death.Cause.String(), "byNpcId": string(actor.ID),
		})
		cons["victim"] = string(target.ID)
	}
	return outcome{success: success, consequences: cons}
}

func countCultAlliesAtSite(w *simworld.World, s *site.Site, actor *npc.NPC) int {
	count := 0
	for _, n := range w.NPCsAtSite(s.ID) {
		if n.ID != actor.ID && n.Cult.Member {
			count++
		}
	}
	return count
}

const kidnapDetentionHours = 48

func resolveKidnap(ctx *process.Context, w *simworld.World, s *site.Site, actor, target *npc.NPC, tick uint64) outcome {
	if target == nil {
		return aborted("no_target")
	}
	score := 23 + 10*float64(countCultAlliesAtSite(w, s, actor))
	success := roll(ctx, score)
	cons := map[string]any{}
	if success {
		target.Status.Detained = true
		target.Status.ByNPCID = actor.ID
		target.Status.AtSiteID = s.ID
		target.Status.UntilTick = tick + kidnapDetentionHours
		cons["detainedUntil"] = target.Status.UntilTick
	}
	return outcome{success: success, consequences: cons}
}

func resolveForcedEclipse(target *npc.NPC) outcome {
	if target == nil {
		return aborted("no_target")
	}
	if !target.Status.Detained {
		return aborted("target_not_detained")
	}
	target.Status.Eclipsing = true
	return outcome{success: true, consequences: map[string]any{"eclipsing": true}}
}

func resolveAnchorSever(actor, target *npc.NPC) outcome {
	if actor.Category != npc.CategoryPriest {
		return aborted("not_anchor_mage")
	}
	if target == nil {
		return aborted("no_target")
	}
	target.Status.Eclipsing = false
	return outcome{success: true, consequences: map[string]any{"eclipsing": false}}
}

func resolveInvestigate(ctx *process.Context, w *simworld.World, s *site.Site, actor, target *npc.NPC, tick uint64) outcome {
	score := actor.Traits.Suspicion*0.5 + actor.Traits.Discipline*0.3
	if s.Kind == site.KindHideout && !s.Hidden {
		score *= 2
	}
	score = clamp(score, 5, 80)
	success := roll(ctx, score)
	cons := map[string]any{}
	if success && target != nil && target.Cult.Member {
		actor.AddBelief(npc.Belief{
			SubjectID: target.ID, Predicate: "identified_cult_member", Object: target.Category.String(),
			Confidence: 80, Source: npc.SourceWitnessed, Tick: tick,
		}, ctx.Config.Limits.MaxMemoriesPerEntity)
		for _, n := range w.NPCsAtSite(s.ID) {
			if n.Category == npc.CategoryGuard && n.ID != actor.ID {
				n.AddBelief(npc.Belief{
					SubjectID: target.ID, Predicate: "identified_cult_member", Object: target.Category.String(),
					Confidence: 60, Source: npc.SourceReport, Tick: tick,
				}, ctx.Config.Limits.MaxMemoriesPerEntity)
			}
		}
		for _, e := range w.Map.Neighbors(s.ID) {
			for _, n := range w.NPCsAtSite(e.To) {
				if n.Category == npc.CategoryGuard {
					n.AddBelief(npc.Belief{
						SubjectID: target.ID, Predicate: "identified_cult_member", Object: target.Category.String(),
						Confidence: 45, Source: npc.SourceReport, Tick: tick,
					}, ctx.Config.Limits.MaxMemoriesPerEntity)
				}
			}
		}
		cons["identified"] = string(target.ID)
	}
	return outcome{success: success, consequences: cons}
}

func countBanditsAtSite(w *simworld.World, s *site.Site, actor *npc.NPC) int {
	count := 0
	for _, n := range w.NPCsAtSite(s.ID) {
		if n.ID != actor.ID && n.Category == npc.CategoryBandit {
			count++
		}
	}
	return count
}

const raidKillRollChance = 0.35

func resolveRaid(ctx *process.Context, w *simworld.World, s *site.Site, actor *npc.NPC, tick uint64) outcome {
	score := 20 + 10*float64(countBanditsAtSite(w, s, actor))
	success := roll(ctx, score)
	cons := map[string]any{}
	if success {
		loss := 0.05 + ctx.RNG.Float64()*0.10
		s.FieldsCondition -= loss
		s.ClampStats()
		cons["fieldsConditionLoss"] = loss
		if ctx.RNG.Chance(raidKillRollChance) {
			residents := w.NPCsAtSite(s.ID)
			if len(residents) > 0 {
				victim := residents[ctx.RNG.IntRange(0, len(residents)-1)]
				victim.Die(npc.Death{Tick: tick, Cause: npc.CauseRaid, ByNPCID: actor.ID, AtSiteID: s.ID})
				cons["victim"] = string(victim.ID)
			}
		}
	}
	return outcome{success: success, consequences: cons}
}

func resolvePreach(ctx *process.Context, s *site.Site) outcome {
	anchorMult := 1 - s.AnchoringStrength/100
	saturationMult := 1.0
	if s.CultInfluence > 80 {
		saturationMult = 0.5
	}
	highAnchorPenalty := 1.0
	if s.AnchoringStrength >= 60 {
		highAnchorPenalty = 0.5
	}
	chance := 1.0 * anchorMult * saturationMult * highAnchorPenalty
	success := ctx.RNG.Chance(chance)
	if success {
		s.CultInfluence += 1
		s.ClampStats()
	}
	return outcome{success: success, consequences: map[string]any{}}
}

func resolveTravel(w *simworld.World, actor *npc.NPC, a Attempt) outcome {
	if a.DestSiteID == "" {
		return aborted("no_destination")
	}
	ok := movement.StartTravel(actor, w.Map, w.Sites, a.DestSiteID, a.Tick)
	if !ok {
		return aborted("no_route_or_hidden")
	}
	return outcome{success: true, consequences: map[string]any{"to": string(a.DestSiteID)}}
}

const healBaseChance = 60

func resolveHeal(ctx *process.Context, actor, target *npc.NPC) outcome {
	if target == nil {
		return aborted("no_target")
	}
	success := roll(ctx, healBaseChance)
	cons := map[string]any{}
	if success {
		amount := clamp(20+actor.Traits.Empathy*0.2, 0, target.MaxHP-target.HP)
		target.HP += amount
		target.ClampStats()

		rel := target.Relationships[actor.ID]
		rel.Trust += 12
		rel.Loyalty += 6
		rel.Fear -= 2
		target.SetRelationship(actor.ID, rel, ctx.Config.Limits.MaxRelationshipsPerEntity)
		target.Debts = append(target.Debts, npc.Debt{ToNPCID: actor.ID, Amount: amount})
		cons["healed"] = amount
	}
	return outcome{success: success, consequences: cons}
}

const tradeBaseChance = 60
const tradeTrustThreshold = 20
const tradeLossFraction = 0.10
const tradeStaleDays = 7

// resolveTrade moves one stale (≥7-day) lot from the site's stock into
// the target's personal inventory, 10% lost in the exchange. Both
// parties share a site for this resolution; a cross-site exporter/
// importer trade run is not modeled (spec.md names it as between
// settlements, but every attempt is anchored at one site).
func resolveTrade(ctx *process.Context, w *simworld.World, s *site.Site, actor, target *npc.NPC) outcome {
	if target == nil {
		return aborted("no_target")
	}
	if rel, ok := target.Relationships[actor.ID]; ok && rel.Trust < tradeTrustThreshold {
		return aborted("trust_too_low")
	}
	score := float64(tradeBaseChance)
	if countBanditsAtSite(w, s, actor) > 0 {
		score *= 0.8
	}
	success := roll(ctx, score)
	cons := map[string]any{}
	if success {
		day := int(w.Tick / 24)
		for _, t := range site.AllFoodTypes() {
			lots := s.FoodStock[t]
			for i, l := range lots {
				age := day - l.ProducedDay
				if age < tradeStaleDays {
					continue
				}
				transfer := l.Amount * (1 - tradeLossFraction)
				lots[i].Amount = 0
				s.FoodStock[t] = lots
				if actor.Inventory == nil {
					actor.Inventory = &npc.Inventory{Food: map[string]float64{}}
				}
				if target.Inventory == nil {
					target.Inventory = &npc.Inventory{Food: map[string]float64{}}
				}
				target.Inventory.Food[t.String()] += transfer
				cons["transferred"] = transfer
				cons["foodType"] = t.String()
				break
			}
			if cons["transferred"] != nil {
				break
			}
		}
	}
	return outcome{success: success, consequences: cons}
}

// patrolUnrestReduction is the unrest points a successful patrol removes
// from its site, a deterrence effect.
const patrolUnrestReduction = 3.0

func resolvePatrol(ctx *process.Context, s *site.Site, actor *npc.NPC) outcome {
	score := 20 + actor.Traits.Discipline*0.3
	success := roll(ctx, score)
	cons := map[string]any{}
	if success {
		s.Unrest -= patrolUnrestReduction
		s.ClampStats()
		cons["unrestReduced"] = patrolUnrestReduction
	}
	return outcome{success: success, consequences: cons}
}

func resolveGossip(ctx *process.Context, actor, target *npc.NPC) outcome {
	if target == nil {
		return aborted("no_target")
	}
	if len(actor.Beliefs) == 0 {
		return aborted("nothing_to_share")
	}
	score := 40 + actor.Traits.Curiosity*0.2
	success := roll(ctx, score)
	cons := map[string]any{}
	if success {
		shared := actor.Beliefs[len(actor.Beliefs)-1]
		target.AddBelief(npc.Belief{
			SubjectID: shared.SubjectID, Predicate: shared.Predicate, Object: shared.Object,
			Confidence: shared.Confidence * 0.6, Source: npc.SourceReport, Tick: shared.Tick,
		}, ctx.Config.Limits.MaxMemoriesPerEntity)
		rel := target.Relationships[actor.ID]
		rel.Trust += 3
		target.SetRelationship(actor.ID, rel, ctx.Config.Limits.MaxRelationshipsPerEntity)
		cons["shared"] = shared.Predicate
	}
	return outcome{success: success, consequences: cons}
}

const arrestDetentionHours = 24

func resolveArrest(ctx *process.Context, actor, target *npc.NPC, tick uint64) outcome {
	if actor.Category != npc.CategoryGuard && actor.Category != npc.CategoryLeader {
		return aborted("not_authorized")
	}
	if target == nil {
		return aborted("no_target")
	}
	score := 20 + actor.Traits.Discipline*0.3 + actor.Traits.Suspicion*0.2
	success := roll(ctx, score)
	cons := map[string]any{}
	if success {
		target.Status.Detained = true
		target.Status.ByNPCID = actor.ID
		target.Status.AtSiteID = actor.SiteID
		target.Status.UntilTick = tick + arrestDetentionHours
		cons["detainedUntil"] = target.Status.UntilTick
	}
	return outcome{success: success, consequences: cons}
}

func resolveRecon(ctx *process.Context, s *site.Site, actor *npc.NPC, tick uint64) outcome {
	score := 30 + actor.Traits.Curiosity*0.3 + actor.Traits.Suspicion*0.2
	success := roll(ctx, score)
	cons := map[string]any{}
	if success {
		if actor.Knowledge == nil {
			actor.Knowledge = &npc.Knowledge{}
		}
		actor.Knowledge.AddFact(npc.Fact{Kind: "discovered_location", Object: string(s.ID), Tick: tick}, ctx.Config.Limits.MaxMemoriesPerEntity)
		cons["discovered"] = string(s.ID)
	}
	return outcome{success: success, consequences: cons}
}

// leverageBelief finds a belief the actor holds about the target that
// can be used as blackmail material (a witnessed crime or identified
// cult membership), or ok=false if the actor has no such leverage.
func leverageBelief(actor, target *npc.NPC) (npc.Belief, bool) {
	for _, b := range actor.Beliefs {
		if b.SubjectID != target.ID {
			continue
		}
		if b.Predicate == "witnessed_crime" || b.Predicate == "identified_cult_member" {
			return b, true
		}
	}
	return npc.Belief{}, false
}

const blackmailCoinShare = 0.25

func resolveBlackmail(ctx *process.Context, actor, target *npc.NPC) outcome {
	if target == nil {
		return aborted("no_target")
	}
	leverage, ok := leverageBelief(actor, target)
	if !ok {
		return aborted("no_leverage")
	}
	score := 30 + actor.Traits.Greed*0.3 - target.Traits.Courage*0.2
	success := roll(ctx, score)
	cons := map[string]any{}
	if success {
		if target.Inventory == nil {
			target.Inventory = &npc.Inventory{Food: map[string]float64{}}
		}
		if actor.Inventory == nil {
			actor.Inventory = &npc.Inventory{Food: map[string]float64{}}
		}
		paid := target.Inventory.Coins * blackmailCoinShare
		target.Inventory.Coins -= paid
		actor.Inventory.Coins += paid

		rel := target.Relationships[actor.ID]
		rel.Fear += 20
		rel.Trust -= 15
		target.SetRelationship(actor.ID, rel, ctx.Config.Limits.MaxRelationshipsPerEntity)

		cons["paid"] = paid
		cons["leverage"] = leverage.Predicate
	}
	return outcome{success: success, consequences: cons}
}
