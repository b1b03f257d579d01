// Package hustle implements the virtual side-hustle: one business per node
// accruing passive income between collections.
package hustle

import (
	"math"
	"time"

	"github.com/benjisbeans/kapaiputea-app/internal/domain"
)

// accrualCapHours bounds how long income accrues without a collection.
const accrualCapHours = 24

// PendingIncomeAt computes uncollected income at now. Accrual is capped at
// 24 hours since the last collection and never goes negative, even when
// costs exceed revenue. Income rounds to cents, elapsed hours to one
// decimal place for display.
func PendingIncomeAt(b domain.BusinessState, now time.Time) domain.PendingIncome {
	hours := now.Sub(b.LastCollectedAt).Hours()
	if hours < 0 {
		hours = 0
	}
	if hours > accrualCapHours {
		hours = accrualCapHours
	}

	profitPerHour := b.RevenuePerHour - b.CostPerHour
	income := math.Max(profitPerHour*hours, 0)

	return domain.PendingIncome{
		Income:       math.Round(income*100) / 100,
		HoursElapsed: math.Round(hours*10) / 10,
	}
}

// UpgradeLevel counts how many times an upgrade id appears in the applied
// list, which is that upgrade's current level.
func UpgradeLevel(applied []string, upgradeID string) int {
	n := 0
	for _, id := range applied {
		if id == upgradeID {
			n++
		}
	}
	return n
}

// UpgradeCost returns the price of the next purchase of an upgrade, or
// domain.ErrUpgradeMaxed past the last defined level.
func UpgradeCost(u domain.Upgrade, currentLevel int) (float64, error) {
	if currentLevel >= len(u.LevelCosts) {
		return 0, domain.ErrUpgradeMaxed
	}
	return u.LevelCosts[currentLevel], nil
}
