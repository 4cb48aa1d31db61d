// Package levels holds the puzzle table: which target each level asks for,
// whether metal may be placed and the best achievable waste.
package levels

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/daniacca/xbpgh/internal/organism"
)

// PerColumn is the number of levels in one column of the level select screen.
const PerColumn = 3

// ErrUnknownLevel means a level name, id or position did not resolve.
var ErrUnknownLevel = errors.New("unknown level")

//go:embed levels.yaml
var embedded []byte

// Default returns the built-in level table. It is parsed once.
var Default = sync.OnceValues(func() (*Set, error) {
	return Parse(embedded)
})

// Set is an immutable level table in play order.
type Set struct {
	levels []organism.Level
	byID   map[int]int
	base   []int
	bonus  []int
}

// Load reads a level table from a YAML file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level table: %w", err)
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Parse decodes, validates and builds a level table. Every target must render
// back to a board equal to itself.
func Parse(data []byte) (*Set, error) {
	var cfg TableConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode level table: %w", err)
	}
	if err := ValidateTableConfig(cfg); err != nil {
		return nil, err
	}
	return build(cfg)
}

func build(cfg TableConfig) (*Set, error) {
	levels := make([]organism.Level, 0, len(cfg.Levels))
	for _, lc := range cfg.Levels {
		target, err := organism.ParseState(lc.Target)
		if err != nil {
			return nil, fmt.Errorf("level %d (%s): target: %w", lc.ID, lc.Name, err)
		}
		back, err := organism.ParseState(target.Render())
		if err != nil || !back.Equal(target) {
			return nil, &organism.InvariantError{
				Err:    organism.ErrCorruptState,
				Detail: fmt.Sprintf("level %d (%s): target does not survive rendering", lc.ID, lc.Name),
			}
		}
		levels = append(levels, organism.Level{
			ID:       lc.ID,
			Name:     strings.TrimSpace(lc.Name),
			Index:    lc.Index,
			Bonus:    lc.Bonus,
			Target:   target,
			CanMetal: lc.CanMetal,
			MinWaste: lc.MinWaste,
		})
	}
	slices.SortFunc(levels, func(a, b organism.Level) int { return a.Index - b.Index })

	s := &Set{levels: levels, byID: make(map[int]int, len(levels))}
	for i, l := range levels {
		s.byID[l.ID] = i
		if l.Bonus {
			s.bonus = append(s.bonus, i)
		} else {
			s.base = append(s.base, i)
		}
	}
	return s, nil
}

// All returns every level in play order.
func (s *Set) All() []organism.Level {
	return slices.Clone(s.levels)
}

// Len returns the number of levels.
func (s *Set) Len() int { return len(s.levels) }

// ByID returns the level stored under id in save files.
func (s *Set) ByID(id int) (organism.Level, bool) {
	i, ok := s.byID[id]
	if !ok {
		return organism.Level{}, false
	}
	return s.levels[i], true
}

// Editor returns the puzzle editor level, which is always the last one.
func (s *Set) Editor() organism.Level {
	return s.levels[len(s.levels)-1]
}

// Lookup resolves a user-supplied level name. It accepts, in order: the exact
// name in any case, anything mentioning "editor", the last word of a bonus
// level's name, and a column-row position such as "1-2" ("b4-3" or
// "bonus 4-3" for bonus levels).
func (s *Set) Lookup(name string) (organism.Level, error) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return organism.Level{}, fmt.Errorf("%w: empty name", ErrUnknownLevel)
	}

	for _, l := range s.levels {
		if strings.ToLower(l.Name) == q {
			return l, nil
		}
	}

	if strings.Contains(q, "editor") {
		return s.Editor(), nil
	}

	for _, i := range s.bonus {
		if i == len(s.levels)-1 {
			continue
		}
		words := strings.Fields(strings.ToLower(s.levels[i].Name))
		if len(words) > 0 && strings.Contains(q, words[len(words)-1]) {
			return s.levels[i], nil
		}
	}

	if l, ok := s.byPosition(q); ok {
		return l, nil
	}
	return organism.Level{}, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
}

// byPosition handles "C-R" style names: exactly two digits, column then row,
// both counted from 1.
func (s *Set) byPosition(q string) (organism.Level, bool) {
	var digits []int
	for _, r := range q {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		}
	}
	if len(digits) != 2 {
		return organism.Level{}, false
	}
	col, row := digits[0], digits[1]
	if col < 1 || row < 1 || row > PerColumn {
		return organism.Level{}, false
	}

	group := s.base
	if strings.HasPrefix(q, "b") {
		group = s.bonus
	}
	pos := (col-1)*PerColumn + (row - 1)
	if pos >= len(group) {
		return organism.Level{}, false
	}
	return s.levels[group[pos]], true
}

// Position returns the level-select label of l: "C-R" for base levels and
// "BC-R" for bonus levels. It is empty for levels outside the table.
func (s *Set) Position(l organism.Level) string {
	i, ok := s.byID[l.ID]
	if !ok {
		return ""
	}
	group, prefix := s.base, ""
	if s.levels[i].Bonus {
		group, prefix = s.bonus, "B"
	}
	pos := slices.Index(group, i)
	return fmt.Sprintf("%s%d-%d", prefix, pos/PerColumn+1, pos%PerColumn+1)
}
