package progression

import "math"

// BaseLevelThreshold is the XP needed to go from level 1 to level 2.
const BaseLevelThreshold = 100

type LevelInfo struct {
	Level            int     `json:"level"`
	CurrentXPInLevel int     `json:"current_xp_in_level"`
	XPNeededForNext  int     `json:"xp_needed_for_next"`
	ProgressPercent  float64 `json:"progress_percent"`
	TotalXP          int     `json:"total_xp"`
}

// LevelOf derives the level from cumulative XP. Each threshold is the
// previous one times 1.5, floored.
func LevelOf(xp int) LevelInfo {
	if xp < 0 {
		xp = 0
	}

	level := 1
	threshold := BaseLevelThreshold
	remaining := xp
	for remaining >= threshold {
		remaining -= threshold
		level++
		threshold = threshold * 3 / 2
	}

	percent := math.Round(float64(remaining)/float64(threshold)*1000) / 10

	return LevelInfo{
		Level:            level,
		CurrentXPInLevel: remaining,
		XPNeededForNext:  threshold,
		ProgressPercent:  percent,
		TotalXP:          xp,
	}
}
