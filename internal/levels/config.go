package levels

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// LevelConfig is one entry of the level table file.
type LevelConfig struct {
	ID       int    `yaml:"id" validate:"gte=0"`
	Name     string `yaml:"name" validate:"required"`
	Index    int    `yaml:"index" validate:"gte=0"`
	Bonus    bool   `yaml:"bonus,omitempty"`
	CanMetal bool   `yaml:"can_place_metal,omitempty"`
	MinWaste int    `yaml:"min_waste" validate:"gte=0"`
	// Target is the goal board in its bordered text rendering.
	Target string `yaml:"target" validate:"required"`
}

// TableConfig is the whole level table file.
type TableConfig struct {
	Levels []LevelConfig `yaml:"levels" validate:"required,min=1,unique=ID,dive"`
}

var validate = validator.New()

// ValidationError collects multiple problems found in a level table.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid level table: unknown validation error"
	}
	if len(e.Issues) == 1 {
		return e.Issues[0]
	}
	return "level table errors: " + strings.Join(e.Issues, "; ")
}

func (e *ValidationError) Add(issue string) {
	e.Issues = append(e.Issues, issue)
}

func (e *ValidationError) HasIssues() bool {
	return len(e.Issues) > 0
}

// ValidateTableConfig checks field constraints and the cross-entry rules the
// struct tags cannot express: names and indexes are unique and the last
// level in play order is a bonus level.
func ValidateTableConfig(cfg TableConfig) error {
	verr := &ValidationError{}

	if err := validate.Struct(cfg); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				verr.Add(fmt.Sprintf("%s: failed %q constraint", fe.Namespace(), tagWithParam(fe)))
			}
		} else {
			verr.Add(err.Error())
		}
	}

	names := make(map[string]bool)
	indexes := make(map[int]bool)
	last := -1
	for i, lc := range cfg.Levels {
		key := strings.ToLower(strings.TrimSpace(lc.Name))
		if key != "" {
			if names[key] {
				verr.Add("duplicate level name: " + lc.Name)
			}
			names[key] = true
		}
		if indexes[lc.Index] {
			verr.Add(fmt.Sprintf("duplicate level index: %d", lc.Index))
		}
		indexes[lc.Index] = true
		if last < 0 || lc.Index > cfg.Levels[last].Index {
			last = i
		}
	}
	if last >= 0 && !cfg.Levels[last].Bonus {
		verr.Add(fmt.Sprintf("last level %q must be the bonus editor level", cfg.Levels[last].Name))
	}

	if verr.HasIssues() {
		return verr
	}
	return nil
}

func tagWithParam(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
