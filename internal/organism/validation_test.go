package organism

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRule(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
		want ViolationReason
	}{
		{"empty slot", EmptyRule(), 0},
		{"seed specializes to flesh", unconditional(KindSeed, Specialize{Into: KindFlesh}), 0},
		{"flesh divides", unconditional(KindFlesh, Divide{Dir: Up}), 0},
		{"eye dies", unconditional(KindEye, Die{}), 0},
		{"spine idles", when(KindSpine, KindAny, Left, Ignore{}), 0},
		{"nil reaction is ignore", Rule{Target: KindBone, Neighbor: KindIgnore, NeighborDir: Up}, 0},
		{"divide into empty neighbor", when(KindSkin, KindNone, Right, Divide{Dir: Right}), 0},
		{"divide away from neighbor", when(KindSkin, KindFlesh, Left, Divide{Dir: Right}), 0},
		{"fuse into living neighbor", when(KindBone, KindFlesh, Down, Fuse{Dir: Down}), 0},
		{"fuse into any", when(KindBone, KindAny, Down, Fuse{Dir: Down}), 0},

		{"metal target", unconditional(KindMetal, Ignore{}), ReasonInvalidTarget},
		{"any target", unconditional(KindAny, Die{}), ReasonInvalidTarget},
		{"none target", unconditional(KindNone, Ignore{}), ReasonInvalidTarget},
		{"unknown neighbor", when(KindSeed, CellKind(40), Up, Die{}), ReasonInvalidNeighbor},
		{"unknown neighbor direction", when(KindSeed, KindFlesh, Direction(3), Die{}), ReasonInvalidNeighbor},
		{"no-op with neighbor", when(KindIgnore, KindFlesh, Up, Ignore{}), ReasonNoOpHasNeighbor},
		{"no-op with reaction", unconditional(KindIgnore, Die{}), ReasonNoOpHasReaction},
		{"divide without direction", unconditional(KindFlesh, Divide{}), ReasonInvalidPayload},
		{"fuse without direction", unconditional(KindFlesh, Fuse{Dir: 16}), ReasonInvalidPayload},
		{"specialize into unknown", unconditional(KindFlesh, Specialize{Into: 99}), ReasonInvalidPayload},
		{"spine divides", unconditional(KindSpine, Divide{Dir: Up}), ReasonSpineInert},
		{"spine dies", unconditional(KindSpine, Die{}), ReasonSpineInert},
		{"eye divides", unconditional(KindEye, Divide{Dir: Left}), ReasonEyeCannotDivide},
		{"seed into muscle", unconditional(KindSeed, Specialize{Into: KindMuscle}), ReasonInvalidSpecialization},
		{"flesh into bone", unconditional(KindFlesh, Specialize{Into: KindBone}), ReasonInvalidSpecialization},
		{"bone into hair", unconditional(KindBone, Specialize{Into: KindHair}), ReasonInvalidSpecialization},
		{"skin into spine", unconditional(KindSkin, Specialize{Into: KindSpine}), ReasonInvalidSpecialization},
		{"fat specializes", unconditional(KindFat, Specialize{Into: KindFat}), ReasonInvalidSpecialization},
		{"divide into conditional neighbor", when(KindFlesh, KindFlesh, Up, Divide{Dir: Up}), ReasonDivideIntoNeighbor},
		{"divide into any", when(KindFlesh, KindAny, Up, Divide{Dir: Up}), ReasonDivideIntoNeighbor},
		{"fuse into empty", when(KindFlesh, KindNone, Left, Fuse{Dir: Left}), ReasonFuseIntoNonCell},
		{"fuse into metal", when(KindFlesh, KindMetal, Left, Fuse{Dir: Left}), ReasonFuseIntoNonCell},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRule(tt.rule)
			if tt.want == 0 {
				assert.NoError(t, err)
				return
			}
			var rerr *RuleError
			require.True(t, errors.As(err, &rerr), "expected *RuleError, got %v", err)
			assert.Equal(t, tt.want, rerr.Reason)
			assert.Contains(t, err.Error(), tt.want.String())
		})
	}
}

func TestValidateRule_PriorityOrder(t *testing.T) {
	// Spine with an illegal specialization reports the spine check first.
	err := ValidateRule(unconditional(KindSpine, Specialize{Into: KindFlesh}))
	var rerr *RuleError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, ReasonSpineInert, rerr.Reason)
}

func TestValidateRules_CollectsEverySlot(t *testing.T) {
	rs := rulesOf(
		unconditional(KindSeed, Specialize{Into: KindFlesh}),
		unconditional(KindMetal, Ignore{}),
		unconditional(KindEye, Divide{Dir: Up}),
	)

	err := ValidateRules(rs)
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok, "expected ValidationError, got %T", err)
	assert.Len(t, verr.Issues, 2)
	assert.Contains(t, err.Error(), "rule 1")
	assert.Contains(t, err.Error(), "rule 2")

	assert.NoError(t, ValidateRules(rulesOf()))
}
