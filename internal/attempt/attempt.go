// Package attempt implements the action pipeline from spec.md §4.4:
// preconditions, scoring, weighted selection, generation paths, and the
// per-kind resolution contract with its belief/rumor/relationship side
// effects.
//
// Grounded on the teacher's engine.crime.go (motivation-check-then-branch
// resolution idiom, damageRelationship helper) and agents/behavior.go
// (needs-driven scoring shape, Tier0Decide's priority routing), enriched
// with engine/factions.go's operation-bias idiom for the plan/faction
// scoring modifier.
package attempt

import (
	"github.com/talgya/worldsim/internal/npc"
	"github.com/talgya/worldsim/internal/worldmap"
)

// Visibility mirrors event.Visibility but is kept local so attempt
// construction doesn't need the event package for this field alone.
type Visibility = string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
	VisibilitySystem  Visibility = "system"
)

// Kind is one of the closed vocabulary of action kinds named in
// spec.md §3.
type Kind string

const (
	KindIdle             Kind = "idle"
	KindTravel           Kind = "travel"
	KindWorkFarm         Kind = "work_farm"
	KindWorkFish         Kind = "work_fish"
	KindWorkHunt         Kind = "work_hunt"
	KindTrade            Kind = "trade"
	KindPatrol           Kind = "patrol"
	KindInvestigate      Kind = "investigate"
	KindAssault          Kind = "assault"
	KindKill             Kind = "kill"
	KindKidnap           Kind = "kidnap"
	KindRaid             Kind = "raid"
	KindSteal            Kind = "steal"
	KindHeal             Kind = "heal"
	KindPreachFixedPath  Kind = "preach_fixed_path"
	KindForcedEclipse    Kind = "forced_eclipse"
	KindAnchorSever      Kind = "anchor_sever"
	KindArrest           Kind = "arrest"
	KindGossip           Kind = "gossip"
	KindBlackmail        Kind = "blackmail"
	KindRecon            Kind = "recon"
)

// IntentMagnitude classifies how consequential an attempt is meant to be.
type IntentMagnitude uint8

const (
	MagnitudeMinor IntentMagnitude = iota
	MagnitudeNormal
	MagnitudeMajor
)

// Why records the scoring drivers behind a generated attempt, kept for
// diagnostics and narrative color.
type Why struct {
	Text    string
	Drivers []string
}

// Attempt is a structured action an actor tries, per spec.md §3.
type Attempt struct {
	ID              string
	Tick            uint64
	Kind            Kind
	Visibility      Visibility
	ActorID         npc.ID
	TargetID        npc.ID
	SiteID          worldmap.SiteID
	DestSiteID      worldmap.SiteID // travel only
	DurationHours   int
	IntentMagnitude IntentMagnitude
	Resources       map[string]float64
	Why             Why
}
