package organism

// RuleCount is the number of rule slots in every solution.
const RuleCount = 16

// Rule is one growth rule: when a cell of kind Target sees Neighbor in
// NeighborDir, it performs Reaction. Neighbor KindIgnore makes the rule
// unconditional, and Target KindIgnore marks an unused slot.
type Rule struct {
	Target      CellKind
	Neighbor    CellKind
	NeighborDir Direction
	Reaction    Reaction
}

// Rules is a full, ordered rule set. Earlier rules take precedence.
type Rules [RuleCount]Rule

// EmptyRule returns an unused slot.
func EmptyRule() Rule {
	return Rule{Target: KindIgnore, Neighbor: KindIgnore, NeighborDir: Right, Reaction: Ignore{}}
}

// EmptyRules returns a rule set where every slot is unused.
func EmptyRules() Rules {
	var rs Rules
	for i := range rs {
		rs[i] = EmptyRule()
	}
	return rs
}

// ReactionKind returns the kind of r's reaction; a nil reaction is IGNORE.
func (r Rule) ReactionKind() ReactionKind {
	if r.Reaction == nil {
		return ReactionIgnore
	}
	return r.Reaction.Kind()
}

// Active reports whether the slot holds a rule at all.
func (r Rule) Active() bool { return r.Target != KindIgnore }

// Conditional reports whether the rule depends on a neighbour.
func (r Rule) Conditional() bool { return r.Neighbor != KindIgnore }

// Count returns the number of active and conditional rules.
func (rs *Rules) Count() (active, conditional int) {
	for _, r := range rs {
		if r.Active() {
			active++
		}
		if r.Conditional() {
			conditional++
		}
	}
	return active, conditional
}
