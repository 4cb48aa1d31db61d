package savefile

import (
	"encoding/binary"
	"fmt"

	"github.com/daniacca/xbpgh/internal/organism"
)

// Format versions. Legacy payloads carry no metal section.
const (
	VersionLegacy  int32 = 1002
	VersionCurrent int32 = 1003
)

// reader walks a little-endian payload and tracks the byte offset for errors.
type reader struct {
	data []byte
	off  int
}

func (r *reader) errAt(off int, err error) error {
	return &DecodeError{Offset: off, Err: err}
}

func (r *reader) int32() (int32, error) {
	if len(r.data)-r.off < 4 {
		return 0, r.errAt(r.off, ErrTruncated)
	}
	v := int32(binary.LittleEndian.Uint32(r.data[r.off:]))
	r.off += 4
	return v, nil
}

func (r *reader) uint8() (uint8, error) {
	if len(r.data)-r.off < 1 {
		return 0, r.errAt(r.off, ErrTruncated)
	}
	v := r.data[r.off]
	r.off++
	return v, nil
}

func (r *reader) coords() (organism.Coords, error) {
	off := r.off
	x, err := r.int32()
	if err != nil {
		return organism.Coords{}, err
	}
	y, err := r.int32()
	if err != nil {
		return organism.Coords{}, err
	}
	c := organism.Coords{X: int(x), Y: int(y)}
	if !c.InBounds() {
		return organism.Coords{}, r.errAt(off, fmt.Errorf("%w: %v", ErrOutOfBounds, c))
	}
	return c, nil
}

func (r *reader) kind() (organism.CellKind, error) {
	off := r.off
	v, err := r.int32()
	if err != nil {
		return 0, err
	}
	k := organism.CellKind(v)
	if !k.Valid() {
		return 0, r.errAt(off, fmt.Errorf("%w: cell kind %d", ErrUnknownCode, v))
	}
	return k, nil
}

func (r *reader) direction() (organism.Direction, error) {
	off := r.off
	v, err := r.int32()
	if err != nil {
		return 0, err
	}
	d := organism.Direction(v)
	if !d.Valid() {
		return 0, r.errAt(off, fmt.Errorf("%w: direction %d", ErrUnknownCode, v))
	}
	return d, nil
}

// DecodeBinary parses a decompressed solution payload. Decoded rules always
// carry a non-nil Reaction. Every failure is a *DecodeError.
func DecodeBinary(data []byte) (organism.Solution, error) {
	r := &reader{data: data}
	var sol organism.Solution

	version, err := r.int32()
	if err != nil {
		return sol, err
	}
	if version != VersionLegacy && version != VersionCurrent {
		return sol, r.errAt(0, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version))
	}

	count, err := r.int32()
	if err != nil {
		return sol, err
	}
	if count != organism.RuleCount {
		return sol, r.errAt(4, fmt.Errorf("%w: got %d", ErrRuleCount, count))
	}

	for i := range sol.Rules {
		rule, err := decodeRule(r)
		if err != nil {
			return organism.Solution{}, err
		}
		sol.Rules[i] = rule
	}

	if sol.Start, err = r.coords(); err != nil {
		return organism.Solution{}, err
	}

	sol.Metal = []organism.Coords{}
	if version == VersionCurrent {
		if sol.Metal, err = decodeMetal(r); err != nil {
			return organism.Solution{}, err
		}
	}

	if r.off != len(data) {
		return organism.Solution{}, r.errAt(r.off, fmt.Errorf("%w: %d left", ErrTrailingBytes, len(data)-r.off))
	}
	return sol, nil
}

func decodeRule(r *reader) (organism.Rule, error) {
	start := r.off
	var (
		rule organism.Rule
		err  error
	)
	if rule.Target, err = r.kind(); err != nil {
		return rule, err
	}
	if rule.Neighbor, err = r.kind(); err != nil {
		return rule, err
	}
	if rule.NeighborDir, err = r.direction(); err != nil {
		return rule, err
	}

	off := r.off
	code, err := r.uint8()
	if err != nil {
		return rule, err
	}
	switch organism.ReactionKind(code) {
	case organism.ReactionIgnore:
		rule.Reaction = organism.Ignore{}
	case organism.ReactionDie:
		rule.Reaction = organism.Die{}
	case organism.ReactionDivide:
		deltaOff := r.off
		dx, err := r.int32()
		if err != nil {
			return rule, err
		}
		dy, err := r.int32()
		if err != nil {
			return rule, err
		}
		dir, ok := organism.DirectionFromDelta(organism.Coords{X: int(dx), Y: int(dy)})
		if !ok {
			return rule, r.errAt(deltaOff, fmt.Errorf("%w: divide delta (%d, %d)", ErrUnknownCode, dx, dy))
		}
		rule.Reaction = organism.Divide{Dir: dir}
	case organism.ReactionFuse:
		dir, err := r.direction()
		if err != nil {
			return rule, err
		}
		rule.Reaction = organism.Fuse{Dir: dir}
	case organism.ReactionSpecialize:
		into, err := r.kind()
		if err != nil {
			return rule, err
		}
		rule.Reaction = organism.Specialize{Into: into}
	default:
		return rule, r.errAt(off, fmt.Errorf("%w: reaction %d", ErrUnknownCode, code))
	}

	if err := organism.ValidateRule(rule); err != nil {
		return rule, r.errAt(start, fmt.Errorf("%w: %w", ErrInvalidRule, err))
	}
	return rule, nil
}

func decodeMetal(r *reader) ([]organism.Coords, error) {
	off := r.off
	n, err := r.int32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, r.errAt(off, fmt.Errorf("%w: metal count %d", ErrNegativeCount, n))
	}

	metal := make([]organism.Coords, 0, min(int(n), organism.Width*organism.Height))
	seen := make(map[organism.Coords]struct{})
	for range n {
		at := r.off
		c, err := r.coords()
		if err != nil {
			return nil, err
		}
		if _, dup := seen[c]; dup {
			return nil, r.errAt(at, fmt.Errorf("%w: %v", ErrDuplicateMetal, c))
		}
		seen[c] = struct{}{}
		metal = append(metal, c)
	}
	return metal, nil
}

// EncodeBinary is the inverse of DecodeBinary. It always writes the current
// version with a metal section.
func EncodeBinary(sol organism.Solution) ([]byte, error) {
	if err := sol.Validate(); err != nil {
		return nil, fmt.Errorf("encode solution: %w", err)
	}

	buf := make([]byte, 0, 512)
	put := func(v int32) { buf = binary.LittleEndian.AppendUint32(buf, uint32(v)) }

	put(VersionCurrent)
	put(organism.RuleCount)
	for _, rule := range sol.Rules {
		put(int32(rule.Target))
		put(int32(rule.Neighbor))
		put(int32(rule.NeighborDir))
		buf = append(buf, uint8(rule.ReactionKind()))

		switch rx := rule.Reaction.(type) {
		case organism.Divide:
			d := rx.Dir.Delta()
			put(int32(d.X))
			put(int32(d.Y))
		case organism.Fuse:
			put(int32(rx.Dir))
		case organism.Specialize:
			put(int32(rx.Into))
		}
	}

	put(int32(sol.Start.X))
	put(int32(sol.Start.Y))

	put(int32(len(sol.Metal)))
	for _, m := range sol.Metal {
		put(int32(m.X))
		put(int32(m.Y))
	}
	return buf, nil
}
