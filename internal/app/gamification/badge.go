package gamification

import "github.com/benjisbeans/kapaiputea-app/internal/domain"

// CriteriaSatisfied reports whether a badge criterion holds against a
// progress snapshot. Unknown criteria types never match, so a catalog
// entry from a newer build degrades to "not yet earned".
func CriteriaSatisfied(c domain.BadgeCriteria, p domain.ProgressSnapshot) bool {
	switch c.Type {
	case domain.CriteriaLessonsCompleted:
		return p.LessonsCompleted >= c.Value()
	case domain.CriteriaModulesCompleted:
		return p.ModulesCompleted >= c.Value()
	case domain.CriteriaStreakDays:
		return p.CurrentStreak >= c.Value()
	case domain.CriteriaTotalXP:
		return p.TotalXP >= c.Value()
	case domain.CriteriaModuleCompleted:
		return c.ModuleSlug != "" && c.ModuleSlug == p.JustCompletedModuleSlug
	case domain.CriteriaQuizCompleted:
		return p.OnboardingCompleted
	case domain.CriteriaLessonsInDay:
		return p.LessonsCompletedToday >= c.Value()
	default:
		return false
	}
}

// FindNewBadges returns the catalog badges that are satisfied by the
// snapshot and not yet in earned, preserving catalog order. The result is
// never nil.
func FindNewBadges(all []domain.Badge, earned map[string]bool, p domain.ProgressSnapshot) []domain.Badge {
	out := []domain.Badge{}
	for _, b := range all {
		if earned[b.ID] {
			continue
		}
		if CriteriaSatisfied(b.Criteria, p) {
			out = append(out, b)
		}
	}
	return out
}
