package gamification

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/benjisbeans/kapaiputea-app/internal/domain"
	"github.com/benjisbeans/kapaiputea-app/internal/infra/catalog"
	"github.com/benjisbeans/kapaiputea-app/internal/infra/metrics"
	"github.com/benjisbeans/kapaiputea-app/internal/infra/sqlite"
)

// Service orchestrates lesson completion: streak update, XP award, level
// change, module completion, and badge unlocks, all against one sqlite DB.
type Service struct {
	db *sqlite.DB
}

// NewService creates a gamification service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// CompleteLesson records a lesson completion and applies every progression
// effect in order. Completing the same lesson twice returns
// domain.ErrAlreadyCompleted and changes nothing.
func (s *Service) CompleteLesson(lessonID string, now time.Time) (*domain.LessonResult, error) {
	lesson := catalog.LessonByID(lessonID)
	if lesson == nil {
		return nil, domain.ErrLessonNotFound
	}

	before, err := s.db.Profile()
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	levelBefore := LevelFromXP(before.TotalXP)

	inserted, err := s.db.RecordLessonCompletion(lesson.ID, lesson.ModuleSlug, now)
	if err != nil {
		return nil, fmt.Errorf("record completion: %w", err)
	}
	if !inserted {
		return nil, domain.ErrAlreadyCompleted
	}

	// Count includes the lesson just recorded.
	lessonsToday, err := s.db.CountLessonsCompletedOn(now)
	if err != nil {
		return nil, fmt.Errorf("count lessons today: %w", err)
	}

	streak := NextStreak(domain.StreakState{
		LastActivityDate: before.LastActivityDate,
		CurrentStreak:    before.CurrentStreak,
		LongestStreak:    before.LongestStreak,
	}, now)
	if err := s.db.SaveStreak(streak); err != nil {
		return nil, fmt.Errorf("save streak: %w", err)
	}

	breakdown := CalculateXPAward(domain.XPAwardRequest{
		BaseXP:             lesson.XPReward,
		StreakDays:         streak.CurrentStreak,
		IsFirstLessonToday: lessonsToday == 1,
	})

	total, err := s.AwardXP(breakdown.Total, domain.XPLessonComplete, lesson.ID,
		fmt.Sprintf("Completed lesson %q", lesson.Title), now)
	if err != nil {
		return nil, err
	}

	moduleCompleted, err := s.checkModuleCompletion(lesson.ModuleSlug, now)
	if err != nil {
		return nil, err
	}

	snap := domain.ProgressSnapshot{
		CurrentStreak:         streak.CurrentStreak,
		TotalXP:               total,
		OnboardingCompleted:   before.OnboardingCompleted,
		LessonsCompletedToday: lessonsToday,
	}
	snap.LessonsCompleted, err = s.db.CountLessonsCompleted()
	if err != nil {
		return nil, fmt.Errorf("count lessons: %w", err)
	}
	snap.ModulesCompleted, err = s.db.CountModulesCompleted()
	if err != nil {
		return nil, fmt.Errorf("count modules: %w", err)
	}
	if moduleCompleted {
		snap.JustCompletedModuleSlug = lesson.ModuleSlug
	}

	newBadges, bonusXP, err := s.unlockNewBadges(snap, now)
	if err != nil {
		return nil, err
	}
	if bonusXP > 0 {
		total, err = s.db.AddXP(0) // re-read after badge bonuses
		if err != nil {
			return nil, fmt.Errorf("reload xp: %w", err)
		}
	}

	newLevel := LevelFromXP(total)
	metrics.LessonsCompleted.WithLabelValues(lesson.ModuleSlug).Inc()
	metrics.CurrentLevel.Set(float64(newLevel))
	metrics.CurrentStreak.Set(float64(streak.CurrentStreak))

	if newLevel > levelBefore {
		log.Printf("[gamification] level up: %d -> %d (%s)", levelBefore, newLevel, LevelName(newLevel))
	}

	return &domain.LessonResult{
		Breakdown:       breakdown,
		LeveledUp:       newLevel > levelBefore,
		NewLevel:        newLevel,
		LevelName:       LevelName(newLevel),
		CurrentStreak:   streak.CurrentStreak,
		ModuleCompleted: moduleCompleted,
		NewBadges:       newBadges,
		BadgeBonusXP:    bonusXP,
		TotalXP:         total,
	}, nil
}

// AwardXP adds XP, records the ledger row, and bumps the award counter.
func (s *Service) AwardXP(amount int, source domain.XPSource, refID, desc string, now time.Time) (int, error) {
	total, err := s.db.AddXP(amount)
	if err != nil {
		return 0, fmt.Errorf("add xp: %w", err)
	}
	err = s.db.InsertXPTransaction(domain.XPTransaction{
		ID:          uuid.NewString(),
		Amount:      amount,
		Source:      source,
		ReferenceID: refID,
		Description: desc,
		CreatedAt:   now,
	})
	if err != nil {
		return 0, fmt.Errorf("record xp transaction: %w", err)
	}
	metrics.XPAwarded.WithLabelValues(string(source)).Add(float64(amount))
	return total, nil
}

// checkModuleCompletion records module completion when every catalog lesson
// in the module is done. Returns true only on the completing transition.
func (s *Service) checkModuleCompletion(moduleSlug string, now time.Time) (bool, error) {
	moduleLessons := catalog.LessonsInModule(moduleSlug)
	if len(moduleLessons) == 0 {
		return false, nil
	}
	done, err := s.db.CountLessonsInModule(moduleSlug)
	if err != nil {
		return false, fmt.Errorf("count module lessons: %w", err)
	}
	if done < len(moduleLessons) {
		return false, nil
	}
	inserted, err := s.db.RecordModuleCompletion(moduleSlug, now)
	if err != nil {
		return false, fmt.Errorf("record module completion: %w", err)
	}
	return inserted, nil
}

// unlockNewBadges evaluates the catalog against the snapshot, persists any
// unlocks, and grants the badge bonus XP. Evaluation is a single pass: a
// bonus that pushes TotalXP over another badge's threshold counts next time.
func (s *Service) unlockNewBadges(snap domain.ProgressSnapshot, now time.Time) ([]domain.Badge, int, error) {
	earned, err := s.db.EarnedBadgeIDs()
	if err != nil {
		return nil, 0, fmt.Errorf("load earned badges: %w", err)
	}

	newBadges := FindNewBadges(catalog.Badges, earned, snap)
	bonus := 0
	for _, b := range newBadges {
		inserted, err := s.db.UnlockBadge(b.ID, now)
		if err != nil {
			return nil, 0, fmt.Errorf("unlock badge %s: %w", b.ID, err)
		}
		if !inserted {
			continue
		}
		metrics.BadgesUnlocked.Inc()
		log.Printf("[gamification] badge unlocked: %s %s", b.Emoji, b.Name)
		if b.XPBonus > 0 {
			if _, err := s.AwardXP(b.XPBonus, domain.XPBadgeBonus, b.ID,
				fmt.Sprintf("Badge bonus: %s", b.Name), now); err != nil {
				return nil, 0, err
			}
			bonus += b.XPBonus
		}
	}
	return newBadges, bonus, nil
}

// EvaluateBadges re-checks the catalog against current progress outside a
// lesson completion (used after quiz submission).
func (s *Service) EvaluateBadges(now time.Time) ([]domain.Badge, int, error) {
	p, err := s.db.Profile()
	if err != nil {
		return nil, 0, fmt.Errorf("load profile: %w", err)
	}
	snap := p.Snapshot()
	snap.CurrentStreak = EffectiveStreak(domain.StreakState{
		LastActivityDate: p.LastActivityDate,
		CurrentStreak:    p.CurrentStreak,
	}, now)
	return s.unlockNewBadges(snap, now)
}

// RecentTransactions returns the newest XP ledger rows.
func (s *Service) RecentTransactions(limit int) ([]domain.XPTransaction, error) {
	return s.db.ListXPTransactions(limit)
}

// LessonDone reports whether a lesson has been completed.
func (s *Service) LessonDone(lessonID string) (bool, error) {
	return s.db.LessonCompleted(lessonID)
}

// BadgeStatus pairs a catalog badge with its earned state.
type BadgeStatus struct {
	domain.Badge
	Earned   bool      `json:"earned"`
	EarnedAt time.Time `json:"earned_at,omitzero"`
}

// Badges returns the full catalog annotated with earned state.
func (s *Service) Badges() ([]BadgeStatus, error) {
	earned, err := s.db.ListEarnedBadges()
	if err != nil {
		return nil, fmt.Errorf("list earned badges: %w", err)
	}
	when := make(map[string]time.Time, len(earned))
	for _, e := range earned {
		when[e.BadgeID] = e.EarnedAt
	}

	out := make([]BadgeStatus, 0, len(catalog.Badges))
	for _, b := range catalog.Badges {
		at, ok := when[b.ID]
		out = append(out, BadgeStatus{Badge: b, Earned: ok, EarnedAt: at})
	}
	return out, nil
}

// Progress is the level-centric progress view served by the API and CLI.
type Progress struct {
	TotalXP        int    `json:"total_xp"`
	Level          int    `json:"level"`
	LevelName      string `json:"level_name"`
	XPForNextLevel int    `json:"xp_for_next_level"`
	LevelProgress  int    `json:"level_progress"`
	CurrentStreak  int    `json:"current_streak"`
	LongestStreak  int    `json:"longest_streak"`
	Lessons        int    `json:"lessons_completed"`
	Modules        int    `json:"modules_completed"`
	BadgesEarned   int    `json:"badges_earned"`
}

// CurrentProgress assembles the progress view at now.
func (s *Service) CurrentProgress(now time.Time) (Progress, error) {
	var pr Progress
	p, err := s.db.Profile()
	if err != nil {
		return pr, fmt.Errorf("load profile: %w", err)
	}
	earned, err := s.db.EarnedBadgeIDs()
	if err != nil {
		return pr, fmt.Errorf("load earned badges: %w", err)
	}

	pr.TotalXP = p.TotalXP
	pr.Level = LevelFromXP(p.TotalXP)
	pr.LevelName = LevelName(pr.Level)
	pr.XPForNextLevel = XPForNextLevel(pr.Level)
	pr.LevelProgress = LevelProgress(p.TotalXP)
	pr.CurrentStreak = EffectiveStreak(domain.StreakState{
		LastActivityDate: p.LastActivityDate,
		CurrentStreak:    p.CurrentStreak,
	}, now)
	pr.LongestStreak = p.LongestStreak
	pr.Lessons = p.LessonsCompleted
	pr.Modules = p.ModulesCompleted
	pr.BadgesEarned = len(earned)
	return pr, nil
}
