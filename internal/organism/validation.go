package organism

import (
	"fmt"
	"strings"
)

// ViolationReason names the first constraint a rule breaks.
type ViolationReason int

const (
	ReasonInvalidTarget ViolationReason = iota + 1
	ReasonInvalidNeighbor
	ReasonNoOpHasNeighbor
	ReasonNoOpHasReaction
	ReasonInvalidPayload
	ReasonSpineInert
	ReasonEyeCannotDivide
	ReasonInvalidSpecialization
	ReasonDivideIntoNeighbor
	ReasonFuseIntoNonCell
)

var reasonText = map[ViolationReason]string{
	ReasonInvalidTarget:         "target cannot be METAL, ANY or NONE",
	ReasonInvalidNeighbor:       "unknown neighbor kind or direction",
	ReasonNoOpHasNeighbor:       "rules with no target must have no neighbor",
	ReasonNoOpHasReaction:       "rules with no target must have no reaction",
	ReasonInvalidPayload:        "reaction payload is not a known direction or cell kind",
	ReasonSpineInert:            "spine cells cannot perform any action",
	ReasonEyeCannotDivide:       "eye cells cannot divide",
	ReasonInvalidSpecialization: "invalid specialization",
	ReasonDivideIntoNeighbor:    "cannot divide into conditional neighbor",
	ReasonFuseIntoNonCell:       "cannot fuse into non-cell neighbor",
}

func (r ViolationReason) String() string {
	if s, ok := reasonText[r]; ok {
		return s
	}
	return fmt.Sprintf("violation %d", int(r))
}

// RuleError reports why a single rule is unusable.
type RuleError struct {
	Rule   Rule
	Reason ViolationReason
}

func (e *RuleError) Error() string {
	return "invalid rule: " + e.Reason.String()
}

// ValidateRule checks r's internal consistency. It returns a *RuleError
// naming the first failed check, or nil.
func ValidateRule(r Rule) error {
	if reason, ok := checkRule(r); !ok {
		return &RuleError{Rule: r, Reason: reason}
	}
	return nil
}

func checkRule(r Rule) (ViolationReason, bool) {
	switch r.Target {
	case KindMetal, KindAny, KindNone:
		return ReasonInvalidTarget, false
	}
	if !r.Target.Valid() || !r.Neighbor.Valid() || !r.NeighborDir.Valid() {
		return ReasonInvalidNeighbor, false
	}

	reaction := r.ReactionKind()
	if r.Target == KindIgnore {
		if r.Neighbor != KindIgnore {
			return ReasonNoOpHasNeighbor, false
		}
		if reaction != ReactionIgnore {
			return ReasonNoOpHasReaction, false
		}
	}

	switch rx := r.Reaction.(type) {
	case Divide:
		if !rx.Dir.Valid() {
			return ReasonInvalidPayload, false
		}
	case Fuse:
		if !rx.Dir.Valid() {
			return ReasonInvalidPayload, false
		}
	case Specialize:
		if !rx.Into.Valid() {
			return ReasonInvalidPayload, false
		}
	}

	if r.Target == KindSpine && reaction != ReactionIgnore {
		return ReasonSpineInert, false
	}
	if r.Target == KindEye && reaction == ReactionDivide {
		return ReasonEyeCannotDivide, false
	}

	if spec, ok := r.Reaction.(Specialize); ok && !r.Target.CanSpecializeInto(spec.Into) {
		return ReasonInvalidSpecialization, false
	}

	if r.Conditional() {
		switch rx := r.Reaction.(type) {
		case Divide:
			if rx.Dir == r.NeighborDir && r.Neighbor != KindNone {
				return ReasonDivideIntoNeighbor, false
			}
		case Fuse:
			if rx.Dir == r.NeighborDir && (r.Neighbor == KindMetal || r.Neighbor == KindNone) {
				return ReasonFuseIntoNonCell, false
			}
		}
	}
	return 0, true
}

// ValidationError collects the problems of a whole rule set.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid rules: unknown validation error"
	}
	if len(e.Issues) == 1 {
		return e.Issues[0]
	}
	return "rule validation errors: " + strings.Join(e.Issues, "; ")
}

func (e *ValidationError) Add(issue string) {
	e.Issues = append(e.Issues, issue)
}

func (e *ValidationError) HasIssues() bool {
	return len(e.Issues) > 0
}

// ValidateRules runs ValidateRule over every slot and reports all failures.
func ValidateRules(rules *Rules) error {
	verr := &ValidationError{}
	for i, r := range rules {
		if err := ValidateRule(r); err != nil {
			verr.Add(fmt.Sprintf("rule %d: %v", i, err))
		}
	}
	if verr.HasIssues() {
		return verr
	}
	return nil
}
