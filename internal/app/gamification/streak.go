// Package gamification implements the Ka Pai Putea progression engine:
// XP awards, levels, daily streaks, and badge evaluation.
package gamification

import (
	"time"

	"github.com/benjisbeans/kapaiputea-app/internal/domain"
)

// sameCalendarDay reports whether two times fall on the same local date.
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// NextStreak advances a streak for activity happening at now.
// Same-day repeats leave the streak untouched; activity on the calendar
// day after the last one extends it; anything else resets to 1.
// A zero LastActivityDate means no prior activity.
func NextStreak(s domain.StreakState, now time.Time) domain.StreakState {
	next := s

	switch {
	case !s.LastActivityDate.IsZero() && sameCalendarDay(s.LastActivityDate, now):
		// Already counted today.
	case !s.LastActivityDate.IsZero() && sameCalendarDay(s.LastActivityDate, now.AddDate(0, 0, -1)):
		next.CurrentStreak = s.CurrentStreak + 1
	default:
		next.CurrentStreak = 1
	}

	next.LastActivityDate = now
	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	return next
}

// EffectiveStreak returns the streak as it stands at now, without recording
// activity. A streak whose last activity is older than yesterday reads as
// broken (0) even though the stored counter has not been reset yet.
func EffectiveStreak(s domain.StreakState, now time.Time) int {
	if s.LastActivityDate.IsZero() {
		return 0
	}
	if sameCalendarDay(s.LastActivityDate, now) || sameCalendarDay(s.LastActivityDate, now.AddDate(0, 0, -1)) {
		return s.CurrentStreak
	}
	return 0
}
