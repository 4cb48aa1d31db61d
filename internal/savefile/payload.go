package savefile

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zlib"

	"github.com/daniacca/xbpgh/internal/organism"
)

// maxPayloadSize bounds the inflated payload. Real solutions are a few
// hundred bytes.
const maxPayloadSize = 64 << 10

// ErrNotCanonical means re-encoding a decoded payload did not reproduce it.
var ErrNotCanonical = errors.New("re-encoded payload differs from input")

// DecodePayload decodes the textual form used in save files: base64 of a
// zlib stream holding the binary payload. The decoded solution keeps the
// trimmed text in Encoded.
//
// The decoded solution is re-encoded and compared with the inflated bytes; a
// mismatch is reported as an *organism.InvariantError since it can only come
// from a codec defect.
func DecodePayload(text string) (organism.Solution, error) {
	text = strings.TrimSpace(text)
	raw, err := inflate(text)
	if err != nil {
		return organism.Solution{}, err
	}

	sol, err := DecodeBinary(raw)
	if err != nil {
		return organism.Solution{}, err
	}

	again, err := EncodeBinary(sol)
	if err != nil {
		return organism.Solution{}, &organism.InvariantError{Err: ErrNotCanonical, Detail: err.Error()}
	}
	if !bytes.Equal(normalize(raw), again) {
		return organism.Solution{}, &organism.InvariantError{Err: ErrNotCanonical}
	}

	sol.Encoded = text
	return sol, nil
}

// EncodePayload produces the textual form of sol.
func EncodePayload(sol organism.Solution) (string, error) {
	raw, err := EncodeBinary(sol)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return "", fmt.Errorf("compress solution: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("compress solution: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func inflate(text string) ([]byte, error) {
	compressed, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, &DecodeError{Offset: -1, Err: fmt.Errorf("%w: base64: %v", ErrPayloadEncoding, err)}
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, &DecodeError{Offset: -1, Err: fmt.Errorf("%w: zlib: %v", ErrPayloadEncoding, err)}
	}
	defer zr.Close()

	raw, err := io.ReadAll(io.LimitReader(zr, maxPayloadSize+1))
	if err != nil {
		return nil, &DecodeError{Offset: -1, Err: fmt.Errorf("%w: zlib: %v", ErrPayloadEncoding, err)}
	}
	if len(raw) > maxPayloadSize {
		return nil, &DecodeError{Offset: -1, Err: fmt.Errorf("%w: payload larger than %d bytes", ErrPayloadEncoding, maxPayloadSize)}
	}
	return raw, nil
}

// normalize rewrites a legacy payload into the current layout: the version
// tag changes and an empty metal section is appended.
func normalize(raw []byte) []byte {
	if len(raw) < 4 || int32(binary.LittleEndian.Uint32(raw)) != VersionLegacy {
		return raw
	}
	out := bytes.Clone(raw)
	binary.LittleEndian.PutUint32(out, uint32(VersionCurrent))
	return binary.LittleEndian.AppendUint32(out, 0)
}
