package reactive

import "github.com/talgya/worldsim/internal/attempt"

// Catalog is the fixed reactive-state catalog from spec.md §4.7 (~30
// entries). Order only matters for iteration determinism within a
// single EvaluateTick call, which never depends on map order since
// Catalog is a slice.
var Catalog = []StateDef{
	{
		ID:      "traumatized",
		Trigger: Trigger{Kind: TriggerWitnessedAttempt, AttemptKind: string(attempt.KindAssault), DurationHours: 1},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindWorkFarm: -15, attempt.KindTrade: -10, attempt.KindIdle: 20,
		},
		BaseDurationHours: 48, DecayRateModifier: 1, Priority: 8, ConflictGroup: "mood",
		ResistanceTraits: map[string]float64{"Courage": 1},
	},
	{
		ID:      "provoked",
		Trigger: Trigger{Kind: TriggerWitnessedAttempt, AttemptKind: string(attempt.KindAssault), DurationHours: 1},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindAssault: 20,
		},
		BaseDurationHours: 12, DecayRateModifier: 2, Priority: 6, ConflictGroup: "mood",
		ResistanceTraits: map[string]float64{"Discipline": 1},
	},
	{
		ID:      "vigilant",
		Trigger: Trigger{Kind: TriggerSiteCondition, SiteField: attempt.SiteFieldUnrest, Op: attempt.OpGT, Threshold: 60, DurationHours: 2},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindInvestigate: 15, attempt.KindPatrol: 20,
		},
		BaseDurationHours: 24, DecayRateModifier: 1, Priority: 6,
	},
	{
		ID:      "grieving",
		Trigger: Trigger{Kind: TriggerNPCDied, DurationHours: 1},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindWorkFarm: -10, attempt.KindTrade: -10, attempt.KindIdle: 25,
		},
		BaseDurationHours: 72, DecayRateModifier: 1, Priority: 7, ConflictGroup: "mood",
		ResistanceTraits: map[string]float64{"Discipline": 0.5},
	},
	{
		ID:      "emboldened",
		Trigger: Trigger{Kind: TriggerReceivedHelp, DurationHours: 1},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindTrade: 10, attempt.KindHeal: 10,
		},
		BaseDurationHours: 24, DecayRateModifier: 1, Priority: 3, Stackable: true,
	},
	{
		ID:      "suspicious",
		Trigger: Trigger{Kind: TriggerBeliefGained, BeliefPredicate: "identified_cult_member", DurationHours: 1},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindInvestigate: 20, attempt.KindArrest: 10,
		},
		BaseDurationHours: 36, DecayRateModifier: 1, Priority: 6, ConflictGroup: "mood",
	},
	{
		ID:      "complacent",
		Trigger: Trigger{Kind: TriggerTimeOfDay, TimeOfDayHour: 12, DurationHours: 1},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindWorkFarm: 5,
		},
		BaseDurationHours: 12, DecayRateModifier: 1, Priority: 2, ConflictGroup: "mood",
	},
	{
		ID:      "devout",
		Trigger: Trigger{Kind: TriggerBeliefGained, BeliefPredicate: "divine_sign", DurationHours: 1},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindPreachFixedPath: 25,
		},
		BaseDurationHours: 48, DecayRateModifier: 1, Priority: 7, ConflictGroup: "cult_stance",
	},
	{
		ID:      "doubtful",
		Trigger: Trigger{Kind: TriggerSiteCondition, SiteField: attempt.SiteFieldAnchoringStrength, Op: attempt.OpGT, Threshold: 60, DurationHours: 4},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindPreachFixedPath: -20,
		},
		BaseDurationHours: 24, DecayRateModifier: 1, Priority: 4, ConflictGroup: "cult_stance",
	},
	{
		ID:      "famished",
		Trigger: Trigger{Kind: TriggerNeedThreshold, Need: "Food", Op: attempt.OpGT, Threshold: 80, DurationHours: 3},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindWorkFarm: 25, attempt.KindSteal: 15, attempt.KindTrade: 15,
		},
		BaseDurationHours: 24, DecayRateModifier: 2, Priority: 9,
	},
	{
		ID:      "destitute",
		Trigger: Trigger{Kind: TriggerNeedThreshold, Need: "Wealth", Op: attempt.OpGT, Threshold: 80, DurationHours: 5},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindSteal: 20, attempt.KindTrade: 15,
		},
		BaseDurationHours: 36, DecayRateModifier: 1, Priority: 6,
	},
	{
		ID:      "restless",
		Trigger: Trigger{Kind: TriggerNeedThreshold, Need: "Freedom", Op: attempt.OpGT, Threshold: 75, DurationHours: 4},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindTravel: 20,
		},
		BaseDurationHours: 24, DecayRateModifier: 1, Priority: 4,
	},
	{
		ID:      "lonely",
		Trigger: Trigger{Kind: TriggerNeedThreshold, Need: "Belonging", Op: attempt.OpGT, Threshold: 70, DurationHours: 6},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindGossip: 20,
		},
		BaseDurationHours: 24, DecayRateModifier: 1, Priority: 3,
	},
	{
		ID:      "driven",
		Trigger: Trigger{Kind: TriggerNeedThreshold, Need: "Meaning", Op: attempt.OpGT, Threshold: 70, DurationHours: 6},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindPreachFixedPath: 15,
		},
		BaseDurationHours: 24, DecayRateModifier: 1, Priority: 3,
	},
	{
		ID:      "seeking_aid",
		Trigger: Trigger{Kind: TriggerNeedThreshold, Need: "Health", Op: attempt.OpLT, Threshold: 30, DurationHours: 2},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindTravel: 15,
		},
		BaseDurationHours: 24, DecayRateModifier: 2, Priority: 8,
	},
	{
		ID:      "wary",
		Trigger: Trigger{Kind: TriggerNeedThreshold, Need: "Safety", Op: attempt.OpGT, Threshold: 75, DurationHours: 3},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindPatrol: 15, attempt.KindTravel: -10,
		},
		BaseDurationHours: 24, DecayRateModifier: 1, Priority: 5,
	},
	{
		ID:      "hungry_site",
		Trigger: Trigger{Kind: TriggerSiteCondition, SiteField: attempt.SiteFieldHunger, Op: attempt.OpGT, Threshold: 60, DurationHours: 2},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindWorkFarm: 15, attempt.KindSteal: 10,
		},
		BaseDurationHours: 24, DecayRateModifier: 1, Priority: 7,
	},
	{
		ID:      "unrest_site",
		Trigger: Trigger{Kind: TriggerSiteCondition, SiteField: attempt.SiteFieldUnrest, Op: attempt.OpGT, Threshold: 70, DurationHours: 1},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindAssault: 10, attempt.KindInvestigate: 10,
		},
		BaseDurationHours: 24, DecayRateModifier: 1, Priority: 8, ConflictGroup: "site_order",
	},
	{
		ID:      "orderly_site",
		Trigger: Trigger{Kind: TriggerSiteCondition, SiteField: attempt.SiteFieldUnrest, Op: attempt.OpLT, Threshold: 20, DurationHours: 4},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindTrade: 10, attempt.KindWorkFarm: 10,
		},
		BaseDurationHours: 24, DecayRateModifier: 1, Priority: 2, ConflictGroup: "site_order",
	},
	{
		ID:      "sick_site",
		Trigger: Trigger{Kind: TriggerSiteCondition, SiteField: attempt.SiteFieldSickness, Op: attempt.OpGT, Threshold: 50, DurationHours: 2},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindHeal: 20,
		},
		BaseDurationHours: 24, DecayRateModifier: 1, Priority: 6,
	},
	{
		ID:      "cult_saturated",
		Trigger: Trigger{Kind: TriggerSiteCondition, SiteField: attempt.SiteFieldCultInfluence, Op: attempt.OpGT, Threshold: 70, DurationHours: 2},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindPreachFixedPath: 10, attempt.KindRecon: 10,
		},
		BaseDurationHours: 24, DecayRateModifier: 1, Priority: 6,
	},
	{
		ID:      "eclipsing_pressure_high",
		Trigger: Trigger{Kind: TriggerSiteCondition, SiteField: attempt.SiteFieldEclipsingPressure, Op: attempt.OpGT, Threshold: 70, DurationHours: 2},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindAnchorSever: 25, attempt.KindPreachFixedPath: -10,
		},
		BaseDurationHours: 24, DecayRateModifier: 1, Priority: 7,
	},
	{
		ID:      "anchored_strong",
		Trigger: Trigger{Kind: TriggerSiteCondition, SiteField: attempt.SiteFieldAnchoringStrength, Op: attempt.OpGT, Threshold: 70, DurationHours: 3},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindForcedEclipse: -20,
		},
		BaseDurationHours: 24, DecayRateModifier: 1, Priority: 5,
	},
	{
		ID:      "fields_depleted",
		Trigger: Trigger{Kind: TriggerSiteCondition, SiteField: attempt.SiteFieldFieldsCondition, Op: attempt.OpLT, Threshold: 20, DurationHours: 3},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindTrade: 15, attempt.KindWorkFarm: -10,
		},
		BaseDurationHours: 24, DecayRateModifier: 1, Priority: 6,
	},
	{
		ID:      "habitual_worker",
		Trigger: Trigger{Kind: TriggerRepeatedAction, RepeatedActionKind: string(attempt.KindWorkFarm), RepeatedCount: 5, DurationHours: 1},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindWorkFarm: 5,
		},
		BaseDurationHours: 48, DecayRateModifier: 1, Priority: 2, Stackable: true,
	},
	{
		ID:      "habitual_thief",
		Trigger: Trigger{Kind: TriggerRepeatedAction, RepeatedActionKind: string(attempt.KindSteal), RepeatedCount: 3, DurationHours: 1},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindSteal: 15,
		},
		BaseDurationHours: 48, DecayRateModifier: 1, Priority: 5, Stackable: true,
	},
	{
		ID:      "restless_wanderer",
		Trigger: Trigger{Kind: TriggerAwayFromHome, AwayHoursThreshold: 72, DurationHours: 1},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindTravel: 10,
		},
		BaseDurationHours: 48, DecayRateModifier: 1, Priority: 4, ConflictGroup: "wander",
	},
	{
		ID:      "homesick",
		Trigger: Trigger{Kind: TriggerAwayFromHome, AwayHoursThreshold: 120, DurationHours: 1},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindTravel: 25,
		},
		BaseDurationHours: 48, DecayRateModifier: 1, Priority: 7, ConflictGroup: "wander",
	},
	{
		ID:      "nightfall_caution",
		Trigger: Trigger{Kind: TriggerTimeOfDay, TimeOfDayHour: 22, DurationHours: 1},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindTravel: -10, attempt.KindTrade: -10,
		},
		BaseDurationHours: 8, DecayRateModifier: 2, Priority: 3,
	},
	{
		ID:      "market_hours",
		Trigger: Trigger{Kind: TriggerTimeOfDay, TimeOfDayHour: 9, DurationHours: 1},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindTrade: 10,
		},
		BaseDurationHours: 8, DecayRateModifier: 2, Priority: 3,
	},
	{
		ID:      "gossip_prone",
		Trigger: Trigger{Kind: TriggerBeliefGained, BeliefPredicate: "heard_rumor", DurationHours: 1},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindGossip: 15,
		},
		BaseDurationHours: 24, DecayRateModifier: 1, Priority: 4,
	},
	{
		ID:      "informant_zeal",
		Trigger: Trigger{Kind: TriggerBeliefGained, BeliefPredicate: "identified_cult_member", DurationHours: 1},
		WeightModifiers: map[attempt.Kind]float64{
			attempt.KindArrest: 15,
		},
		BaseDurationHours: 24, DecayRateModifier: 1, Priority: 7,
		// Only guards and leaders act on this; arrest's own
		// HasCategory(Guard, Leader) precondition keeps the modifier a no-op
		// for everyone else.
	},
}
