package savefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/daniacca/xbpgh/internal/organism"
)

// Key tokens that mark a puzzle-solution record.
const (
	keyGame     = "Toronto"
	keySolution = "Solution"
)

// SlotCount is the number of save slots per level.
const SlotCount = 4

// ErrMalformedKey means a solution record's key could not be parsed.
var ErrMalformedKey = errors.New("malformed solution key")

// Record is one `Toronto.Solution.<level>.<slot> = <payload>` line.
type Record struct {
	Line    int
	LevelID int
	Slot    int
	Payload string
	// Err is set when the key was recognised but could not be parsed.
	Err error
}

// ReadRecords scans a save file and returns every solution record in file
// order. Unrelated lines are skipped. A record with a malformed key is still
// returned, carrying Err, so one bad line never hides the others.
func ReadRecords(r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4<<20)

	var out []Record
	for n := 1; sc.Scan(); n++ {
		key, value, ok := strings.Cut(sc.Text(), " = ")
		if !ok {
			continue
		}
		parts := strings.Split(strings.TrimSpace(key), ".")
		if len(parts) < 2 || parts[0] != keyGame || parts[1] != keySolution {
			continue
		}

		rec := Record{Line: n, Payload: strings.TrimSpace(value)}
		rec.LevelID, rec.Slot, rec.Err = parseKey(parts)
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("reading save file: %w", err)
	}
	return out, nil
}

func parseKey(parts []string) (level, slot int, err error) {
	if len(parts) != 4 {
		return 0, 0, fmt.Errorf("%w: expected 4 dot-separated tokens, got %d", ErrMalformedKey, len(parts))
	}
	if level, err = strconv.Atoi(parts[2]); err != nil {
		return 0, 0, fmt.Errorf("%w: level id %q", ErrMalformedKey, parts[2])
	}
	if slot, err = strconv.Atoi(parts[3]); err != nil {
		return 0, 0, fmt.Errorf("%w: slot %q", ErrMalformedKey, parts[3])
	}
	if slot < 0 || slot >= SlotCount {
		return level, slot, fmt.Errorf("%w: slot %d not in 0..%d", ErrMalformedKey, slot, SlotCount-1)
	}
	return level, slot, nil
}

// Decode returns the record's solution.
func (r Record) Decode() (organism.Solution, error) {
	if r.Err != nil {
		return organism.Solution{}, r.Err
	}
	return DecodePayload(r.Payload)
}

// FormatRecord renders a save-file line for sol.
func FormatRecord(levelID, slot int, sol organism.Solution) (string, error) {
	payload := sol.Encoded
	if payload == "" {
		var err error
		if payload, err = EncodePayload(sol); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("%s.%s.%d.%d = %s", keyGame, keySolution, levelID, slot, payload), nil
}
