package organism

import "fmt"

// ReactionKind identifies what a matching rule does. Values are wire codes.
type ReactionKind uint8

const (
	ReactionIgnore     ReactionKind = 0
	ReactionDivide     ReactionKind = 1
	ReactionSpecialize ReactionKind = 2
	ReactionFuse       ReactionKind = 3
	ReactionDie        ReactionKind = 4
)

func (k ReactionKind) Valid() bool { return k <= ReactionDie }

func (k ReactionKind) String() string {
	switch k {
	case ReactionIgnore:
		return "IGNORE"
	case ReactionDivide:
		return "DIVIDE"
	case ReactionSpecialize:
		return "SPECIALIZE"
	case ReactionFuse:
		return "FUSE"
	case ReactionDie:
		return "DIE"
	}
	return fmt.Sprintf("ReactionKind(%d)", uint8(k))
}

// Reaction is the effect of a rule. Each variant carries exactly the payload
// its kind needs: Ignore, Divide, Die, Fuse or Specialize.
type Reaction interface {
	Kind() ReactionKind
	isReaction()
}

// Ignore does nothing. A rule with this reaction never stops the rule scan.
type Ignore struct{}

// Divide copies the cell into the empty square in Dir and links the two.
type Divide struct {
	Dir Direction
}

// Die removes the cell at the end of the tick.
type Die struct{}

// Fuse links the cell to the living neighbour in Dir.
type Fuse struct {
	Dir Direction
}

// Specialize turns the cell into Into.
type Specialize struct {
	Into CellKind
}

func (Ignore) Kind() ReactionKind     { return ReactionIgnore }
func (Divide) Kind() ReactionKind     { return ReactionDivide }
func (Die) Kind() ReactionKind        { return ReactionDie }
func (Fuse) Kind() ReactionKind       { return ReactionFuse }
func (Specialize) Kind() ReactionKind { return ReactionSpecialize }

func (Ignore) isReaction()     {}
func (Divide) isReaction()     {}
func (Die) isReaction()        {}
func (Fuse) isReaction()       {}
func (Specialize) isReaction() {}
