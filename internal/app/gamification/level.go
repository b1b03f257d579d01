package gamification

import (
	"math"

	"github.com/benjisbeans/kapaiputea-app/internal/infra/catalog"
)

// LevelFromXP returns the level for a given total XP.
// Scans the threshold table from the top down.
func LevelFromXP(xp int) int {
	for i := len(catalog.LevelThresholds) - 1; i >= 0; i-- {
		if xp >= catalog.LevelThresholds[i] {
			return i + 1
		}
	}
	return 1
}

// LevelName returns the display name for a level. Out-of-range levels
// clamp to the nearest named level.
func LevelName(level int) string {
	if level < 1 {
		level = 1
	}
	if level > len(catalog.LevelNames) {
		level = len(catalog.LevelNames)
	}
	return catalog.LevelNames[level-1]
}

// XPForNextLevel returns the cumulative XP needed to reach the level after
// the given one. At max level it returns the final threshold.
func XPForNextLevel(level int) int {
	if level >= len(catalog.LevelThresholds) {
		return catalog.LevelThresholds[len(catalog.LevelThresholds)-1]
	}
	return catalog.LevelThresholds[level]
}

// LevelProgress returns the percentage progress (0-100) through the current
// level for a given total XP. Max level reports 100.
func LevelProgress(xp int) int {
	if xp < 0 {
		xp = 0
	}
	level := LevelFromXP(xp)
	current := catalog.LevelThresholds[level-1]
	next := XPForNextLevel(level)
	if next <= current {
		return 100
	}
	pct := math.Round(float64(xp-current) / float64(next-current) * 100)
	if pct > 100 {
		pct = 100
	}
	return int(pct)
}
