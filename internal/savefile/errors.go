package savefile

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedVersion = errors.New("unsupported version")
	ErrRuleCount          = errors.New("rule count must be 16")
	ErrUnknownCode        = errors.New("unknown enumerated code")
	ErrOutOfBounds        = errors.New("coordinate out of bounds")
	ErrDuplicateMetal     = errors.New("duplicate metal coordinate")
	ErrNegativeCount      = errors.New("negative count")
	ErrTrailingBytes      = errors.New("trailing bytes")
	ErrTruncated          = errors.New("unexpected end of data")
	ErrInvalidRule        = errors.New("invalid rule")
	ErrPayloadEncoding    = errors.New("malformed payload encoding")
)

// DecodeError reports why a solution payload could not be decoded. Offset is
// the byte offset into the decompressed data, or -1 for text-layer failures.
type DecodeError struct {
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("decode solution: %v", e.Err)
	}
	return fmt.Sprintf("decode solution at byte %d: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsDecode reports whether err is a *DecodeError.
func IsDecode(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
