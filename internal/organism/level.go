package organism

// Level is one puzzle: the target shape plus scoring data.
type Level struct {
	ID       int
	Name     string
	Index    int
	Bonus    bool
	Target   State
	CanMetal bool
	// MinWaste is the theoretical minimum waste of a correct solution.
	MinWaste int
}

// Metrics summarises one simulated solution.
type Metrics struct {
	IsCorrect           bool `json:"is_correct"`
	NumRules            int  `json:"num_rules"`
	NumRulesConditional int  `json:"num_rules_conditional"`
	NumFrames           int  `json:"num_frames"`
	IsStable            bool `json:"is_stable"`
	NumWaste            int  `json:"num_waste"`
	IsWasteful          bool `json:"is_wasteful"`
}
