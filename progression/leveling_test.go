package progression

import "testing"

func TestLevelOf(t *testing.T) {
	tests := []struct {
		name    string
		xp      int
		level   int
		inLevel int
		needed  int
		percent float64
	}{
		{name: "zero", xp: 0, level: 1, inLevel: 0, needed: 100, percent: 0},
		{name: "negative treated as zero", xp: -40, level: 1, inLevel: 0, needed: 100, percent: 0},
		{name: "half way", xp: 50, level: 1, inLevel: 50, needed: 100, percent: 50},
		{name: "first threshold", xp: 100, level: 2, inLevel: 0, needed: 150, percent: 0},
		{name: "second threshold", xp: 250, level: 3, inLevel: 0, needed: 225, percent: 0},
		{name: "floored growth", xp: 250 + 225, level: 4, inLevel: 0, needed: 337, percent: 0},
		{name: "one decimal", xp: 101, level: 2, inLevel: 1, needed: 150, percent: 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LevelOf(tt.xp)
			if got.Level != tt.level {
				t.Fatalf("level = %d, want %d", got.Level, tt.level)
			}
			if got.CurrentXPInLevel != tt.inLevel {
				t.Fatalf("current xp in level = %d, want %d", got.CurrentXPInLevel, tt.inLevel)
			}
			if got.XPNeededForNext != tt.needed {
				t.Fatalf("xp needed = %d, want %d", got.XPNeededForNext, tt.needed)
			}
			if got.ProgressPercent != tt.percent {
				t.Fatalf("progress = %v, want %v", got.ProgressPercent, tt.percent)
			}
		})
	}
}

func TestLevelOfMonotonic(t *testing.T) {
	prev := LevelOf(0).Level
	for xp := 1; xp <= 20000; xp += 7 {
		level := LevelOf(xp).Level
		if level < prev {
			t.Fatalf("level decreased at xp %d: %d < %d", xp, level, prev)
		}
		prev = level
	}
}
