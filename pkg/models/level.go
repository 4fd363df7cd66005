package models

// Level is an instruction-detail tier. It controls how many guidelines
// are included for a given verbosity setting: each tier includes every
// guideline of the tiers below it.
type Level string

const (
	// LevelBasic includes only the essential guidelines.
	LevelBasic Level = "basic"

	// LevelStandard includes basic plus everyday-practice guidelines (default).
	LevelStandard Level = "standard"

	// LevelExpert includes standard plus advanced guidelines.
	LevelExpert Level = "expert"

	// LevelFull includes every guideline in the corpus.
	LevelFull Level = "full"
)

// levelRanks orders the tiers from least to most verbose.
var levelRanks = map[Level]int{
	LevelBasic:    0,
	LevelStandard: 1,
	LevelExpert:   2,
	LevelFull:     3,
}

// ValidLevels returns all valid level values in ascending order.
func ValidLevels() []Level {
	return []Level{LevelBasic, LevelStandard, LevelExpert, LevelFull}
}

// IsValid checks if the level is a known tier.
func (l Level) IsValid() bool {
	_, ok := levelRanks[l]
	return ok
}

// Rank returns the ordinal position of the level, or -1 for unknown levels.
func (l Level) Rank() int {
	r, ok := levelRanks[l]
	if !ok {
		return -1
	}
	return r
}

// Includes reports whether a request at this level includes content
// whose minimum tier is other. LevelFull includes everything.
func (l Level) Includes(other Level) bool {
	lr, or := l.Rank(), other.Rank()
	if lr < 0 || or < 0 {
		return false
	}
	return lr >= or
}
