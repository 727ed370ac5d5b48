package npc

// BeliefSource records how a belief was acquired.
type BeliefSource uint8

const (
	SourceWitnessed BeliefSource = iota
	SourceRumor
	SourceReport
	SourceInferred
)

// Belief is a single piece of subjective information an NPC carries.
// Predicate is drawn from a closed vocabulary (witnessed_crime, npc_died,
// identified_cult_member, discovered_location, heard_rumor, divine_sign,
// threat_to_family, resisted_eclipsing, ...).
type Belief struct {
	SubjectID  ID
	Predicate  string
	Object     string
	Confidence float64
	Source     BeliefSource
	Tick       uint64
}

// sameClaim reports whether two beliefs refer to the same subject,
// predicate, and object, ignoring confidence/source/tick.
func sameClaim(a, b Belief) bool {
	return a.SubjectID == b.SubjectID && a.Predicate == b.Predicate && a.Object == b.Object
}

// AddBelief inserts a belief, merging with any existing belief about the
// same subject+predicate+object by keeping the max confidence and latest
// tick, and evicting the oldest belief once cap is exceeded.
func (n *NPC) AddBelief(b Belief, cap int) {
	for i, existing := range n.Beliefs {
		if sameClaim(existing, b) {
			if b.Confidence > existing.Confidence {
				n.Beliefs[i].Confidence = b.Confidence
			}
			if b.Tick > existing.Tick {
				n.Beliefs[i].Tick = b.Tick
			}
			return
		}
	}
	n.Beliefs = append(n.Beliefs, b)
	if len(n.Beliefs) > cap {
		n.Beliefs = n.Beliefs[len(n.Beliefs)-cap:]
	}
}

// Fact is a typed piece of retained knowledge.
type Fact struct {
	Kind   string
	Object string
	Tick   uint64
}

// Secret is a private-attempt outcome only the actor learns directly.
type Secret struct {
	ID      string
	Kind    string
	OwnerID ID
	Tick    uint64
}

// Knowledge holds an NPC's retained facts and secrets.
type Knowledge struct {
	Facts   []Fact
	Secrets []Secret
}

// AddFact appends a fact, evicting the oldest once cap is exceeded.
func (k *Knowledge) AddFact(f Fact, cap int) {
	k.Facts = append(k.Facts, f)
	if len(k.Facts) > cap {
		k.Facts = k.Facts[len(k.Facts)-cap:]
	}
}
