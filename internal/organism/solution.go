package organism

import "fmt"

// Solution is a player's submission for one level.
type Solution struct {
	Rules Rules
	Start Coords
	Metal []Coords
	// Encoded is the canonical payload the solution was decoded from.
	Encoded string
}

// Validate checks the start square, the metal squares and every rule.
func (s *Solution) Validate() error {
	if !s.Start.InBounds() {
		return fmt.Errorf("start %v is off the board", s.Start)
	}
	seen := make(map[Coords]struct{}, len(s.Metal))
	for _, m := range s.Metal {
		if !m.InBounds() {
			return fmt.Errorf("metal %v is off the board", m)
		}
		if _, dup := seen[m]; dup {
			return fmt.Errorf("metal %v listed twice", m)
		}
		seen[m] = struct{}{}
	}
	return ValidateRules(&s.Rules)
}
