// Package domain holds the plain value types shared by every layer.
// The gamification core only computes derived values from these snapshots;
// nothing in this package touches storage or the network.
package domain

import "time"

// ─── XP Award Types ─────────────────────────────────────────────────────────

// XPAwardRequest carries the inputs for a single lesson-completion award.
// Callers clamp/default all fields before invoking the calculator.
type XPAwardRequest struct {
	BaseXP             int  `json:"base_xp"`
	StreakDays         int  `json:"streak_days"`
	IsFirstLessonToday bool `json:"is_first_lesson_today"`
}

// XPBreakdown itemizes one XP award. Streak and DailyBonus are zero when the
// corresponding bonus did not apply; Total is always the sum of the parts.
// All fields stay on the wire so clients see the full breakdown.
type XPBreakdown struct {
	Base       int `json:"base"`
	Streak     int `json:"streak"`
	DailyBonus int `json:"daily_bonus"`
	Total      int `json:"total"`
}

// XPSource categorizes how XP was earned, recorded on each transaction.
type XPSource string

const (
	XPLessonComplete XPSource = "lesson-complete"
	XPQuizComplete   XPSource = "quiz-complete"
	XPBadgeBonus     XPSource = "badge-bonus"
)

// ─── Streak Types ───────────────────────────────────────────────────────────

// StreakState is a snapshot of a learner's activity streak.
// LastActivityDate is zero when the learner has never been active.
type StreakState struct {
	LastActivityDate time.Time `json:"last_activity_date"`
	CurrentStreak    int       `json:"current_streak"`
	LongestStreak    int       `json:"longest_streak"`
}

// ─── Badge Types ────────────────────────────────────────────────────────────

// CriteriaType discriminates badge criteria variants. The evaluator switches
// exhaustively over these; anything else evaluates to false.
type CriteriaType string

const (
	CriteriaLessonsCompleted CriteriaType = "lessons_completed"
	CriteriaModulesCompleted CriteriaType = "modules_completed"
	CriteriaStreakDays       CriteriaType = "streak_days"
	CriteriaTotalXP          CriteriaType = "total_xp"
	CriteriaModuleCompleted  CriteriaType = "module_completed"
	CriteriaQuizCompleted    CriteriaType = "quiz_completed"
	CriteriaLessonsInDay     CriteriaType = "lessons_in_day"
)

// BadgeCriteria is the tagged variant a badge is checked against.
// Threshold wins over Count when both are set; both absent means 0.
type BadgeCriteria struct {
	Type       CriteriaType `json:"type"`
	Threshold  *int         `json:"threshold,omitempty"`
	Count      *int         `json:"count,omitempty"`
	ModuleSlug string       `json:"module_slug,omitempty"`
}

// Value resolves the numeric threshold for counting criteria.
func (c BadgeCriteria) Value() int {
	if c.Threshold != nil {
		return *c.Threshold
	}
	if c.Count != nil {
		return *c.Count
	}
	return 0
}

// Badge is one entry in the badge catalog.
type Badge struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Emoji       string        `json:"emoji"`
	Criteria    BadgeCriteria `json:"criteria"`
	XPBonus     int           `json:"xp_bonus"`
}

// EarnedBadge records when a badge was earned.
type EarnedBadge struct {
	BadgeID  string    `json:"badge_id"`
	EarnedAt time.Time `json:"earned_at"`
}

// ProgressSnapshot is the read-only view of learner progress fed to badge
// evaluation. LessonsCompletedToday and JustCompletedModuleSlug are optional
// per-evaluation context; their zero values mean "not supplied".
type ProgressSnapshot struct {
	LessonsCompleted        int    `json:"lessons_completed"`
	ModulesCompleted        int    `json:"modules_completed"`
	CurrentStreak           int    `json:"current_streak"`
	TotalXP                 int    `json:"total_xp"`
	OnboardingCompleted     bool   `json:"onboarding_completed"`
	LessonsCompletedToday   int    `json:"lessons_completed_today,omitempty"`
	JustCompletedModuleSlug string `json:"just_completed_module_slug,omitempty"`
}

// ─── Profile Types ──────────────────────────────────────────────────────────

// Profile is the persisted learner state this node tracks.
type Profile struct {
	DisplayName         string    `json:"display_name"`
	Stream              Stream    `json:"stream"`
	ProfileTag          string    `json:"profile_tag"`
	ProfileTagEmoji     string    `json:"profile_tag_emoji"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	TotalXP             int       `json:"total_xp"`
	CurrentLevel        int       `json:"current_level"`
	CurrentStreak       int       `json:"current_streak"`
	LongestStreak       int       `json:"longest_streak"`
	LastActivityDate    time.Time `json:"last_activity_date"`
	LessonsCompleted    int       `json:"lessons_completed"`
	ModulesCompleted    int       `json:"modules_completed"`
	BankBalance         float64   `json:"bank_balance"`
}

// Snapshot converts the profile into the shape badge evaluation consumes.
func (p Profile) Snapshot() ProgressSnapshot {
	return ProgressSnapshot{
		LessonsCompleted:    p.LessonsCompleted,
		ModulesCompleted:    p.ModulesCompleted,
		CurrentStreak:       p.CurrentStreak,
		TotalXP:             p.TotalXP,
		OnboardingCompleted: p.OnboardingCompleted,
	}
}

// XPTransaction is one row in the XP ledger.
type XPTransaction struct {
	ID          string    `json:"id"`
	Amount      int       `json:"amount"`
	Source      XPSource  `json:"source"`
	ReferenceID string    `json:"reference_id,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Lesson describes a completable lesson. Content lives elsewhere; the
// gamification engine only needs identity, parent module, and reward.
type Lesson struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	ModuleSlug string `json:"module_slug"`
	XPReward   int    `json:"xp_reward"`
}

// LessonResult aggregates everything one completion produced.
type LessonResult struct {
	Breakdown       XPBreakdown `json:"breakdown"`
	LeveledUp       bool        `json:"leveled_up"`
	NewLevel        int         `json:"new_level"`
	LevelName       string      `json:"level_name"`
	CurrentStreak   int         `json:"current_streak"`
	ModuleCompleted bool        `json:"module_completed"`
	NewBadges       []Badge     `json:"new_badges"`
	BadgeBonusXP    int         `json:"badge_bonus_xp"`
	TotalXP         int         `json:"total_xp"`
}
