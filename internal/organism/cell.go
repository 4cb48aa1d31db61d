package organism

import "fmt"

// CellKind is the material occupying a board square, or a rule wildcard.
// The numeric values are the wire codes used by the solution codec.
type CellKind int32

const (
	KindIgnore CellKind = 0
	KindSeed   CellKind = 1
	KindFlesh  CellKind = 2
	// Heart and muscle are transposed relative to their display order.
	KindHeart  CellKind = 3
	KindMuscle CellKind = 4
	KindFat    CellKind = 5
	KindBone   CellKind = 6
	KindSpine  CellKind = 7
	KindSkin   CellKind = 8
	KindHair   CellKind = 9
	KindEye    CellKind = 10
	KindMetal  CellKind = 11
	KindAny    CellKind = 12
	KindNone   CellKind = 13
)

var kindNames = map[CellKind]string{
	KindIgnore: "IGNORE",
	KindSeed:   "SEED",
	KindFlesh:  "FLESH",
	KindHeart:  "FLESH_HEART",
	KindMuscle: "FLESH_MUSCLE",
	KindFat:    "FLESH_FAT",
	KindBone:   "BONE",
	KindSpine:  "BONE_SPINE",
	KindSkin:   "SKIN",
	KindHair:   "SKIN_HAIR",
	KindEye:    "SKIN_EYE",
	KindMetal:  "METAL",
	KindAny:    "ANY",
	KindNone:   "NONE",
}

var kindSymbols = map[CellKind]rune{
	KindIgnore: ' ',
	KindSeed:   '*',
	KindFlesh:  'f',
	KindMuscle: 'M',
	KindHeart:  'H',
	KindFat:    'F',
	KindBone:   'b',
	KindSpine:  'B',
	KindSkin:   's',
	KindHair:   'W',
	KindEye:    'O',
	KindMetal:  '█',
	KindAny:    '?',
	KindNone:   '_',
}

// symbolKinds is the inverse of kindSymbols plus legacy aliases.
var symbolKinds = func() map[rune]CellKind {
	m := make(map[rune]CellKind, len(kindSymbols)+1)
	for k, s := range kindSymbols {
		m[s] = k
	}
	m['X'] = KindMetal
	return m
}()

// Valid reports whether k is one of the fourteen known kinds.
func (k CellKind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// IsLiving reports whether k is organic tissue, i.e. anything but the
// empty marker, metal, the wildcard and an empty square.
func (k CellKind) IsLiving() bool {
	switch k {
	case KindIgnore, KindMetal, KindAny, KindNone:
		return false
	}
	return k.Valid()
}

// Symbol returns the single-character rendering of k.
func (k CellKind) Symbol() rune {
	if s, ok := kindSymbols[k]; ok {
		return s
	}
	return '?'
}

func (k CellKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("CellKind(%d)", int32(k))
}

// KindFromSymbol decodes a rendering symbol. 'X' is accepted as metal.
func KindFromSymbol(r rune) (CellKind, error) {
	k, ok := symbolKinds[r]
	if !ok {
		return 0, fmt.Errorf("unknown cell symbol %q", r)
	}
	return k, nil
}

// specializations lists the kinds each kind may specialize into.
var specializations = map[CellKind][]CellKind{
	KindSeed:  {KindFlesh, KindBone, KindSkin},
	KindFlesh: {KindMuscle, KindHeart, KindFat},
	KindBone:  {KindSpine},
	KindSkin:  {KindHair, KindEye},
}

// CanSpecializeInto reports whether a cell of kind k may turn into child.
func (k CellKind) CanSpecializeInto(child CellKind) bool {
	for _, c := range specializations[k] {
		if c == child {
			return true
		}
	}
	return false
}
