package models

import "testing"

func TestLevelIsValid(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		want  bool
	}{
		{"basic", LevelBasic, true},
		{"standard", LevelStandard, true},
		{"expert", LevelExpert, true},
		{"full", LevelFull, true},
		{"empty", Level(""), false},
		{"unknown", Level("verbose"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.IsValid(); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestLevelIncludes(t *testing.T) {
	tests := []struct {
		name      string
		requested Level
		minimum   Level
		want      bool
	}{
		{"full_includes_expert", LevelFull, LevelExpert, true},
		{"full_includes_basic", LevelFull, LevelBasic, true},
		{"standard_includes_basic", LevelStandard, LevelBasic, true},
		{"standard_includes_standard", LevelStandard, LevelStandard, true},
		{"basic_excludes_standard", LevelBasic, LevelStandard, false},
		{"expert_excludes_full", LevelExpert, LevelFull, false},
		{"unknown_requested", Level("loud"), LevelBasic, false},
		{"unknown_minimum", LevelFull, Level("loud"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.requested.Includes(tt.minimum); got != tt.want {
				t.Errorf("%q.Includes(%q) = %v, want %v", tt.requested, tt.minimum, got, tt.want)
			}
		})
	}
}

func TestLevelRankOrdering(t *testing.T) {
	levels := ValidLevels()
	for i := 1; i < len(levels); i++ {
		if levels[i].Rank() <= levels[i-1].Rank() {
			t.Errorf("level %q rank %d not above %q rank %d",
				levels[i], levels[i].Rank(), levels[i-1], levels[i-1].Rank())
		}
	}
}

func TestTargetIsValid(t *testing.T) {
	for _, target := range ValidTargets() {
		if !target.IsValid() {
			t.Errorf("target %q should be valid", target)
		}
	}
	if Target("zed").IsValid() {
		t.Error("unknown target should be invalid")
	}
}
