package gamification

import (
	"math"

	"github.com/benjisbeans/kapaiputea-app/internal/domain"
)

// Streak bonus tuning. Each streak day adds 10% of the base award,
// capped at 50%. Single-day "streaks" earn nothing extra.
const (
	streakBonusPerDay = 0.10
	streakBonusCap    = 0.50
	dailyFirstBonus   = 25
)

// CalculateXPAward computes the XP breakdown for a completed activity.
// The base award is always granted; the streak bonus scales with the
// active streak; the daily bonus rewards the first lesson of the day.
func CalculateXPAward(req domain.XPAwardRequest) domain.XPBreakdown {
	b := domain.XPBreakdown{Base: req.BaseXP}

	if req.StreakDays > 1 {
		mult := float64(req.StreakDays) * streakBonusPerDay
		if mult > streakBonusCap {
			mult = streakBonusCap
		}
		b.Streak = int(math.Floor(float64(req.BaseXP) * mult))
	}

	if req.IsFirstLessonToday {
		b.DailyBonus = dailyFirstBonus
	}

	b.Total = b.Base + b.Streak + b.DailyBonus
	return b
}
