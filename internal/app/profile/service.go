package profile

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/benjisbeans/kapaiputea-app/internal/app/gamification"
	"github.com/benjisbeans/kapaiputea-app/internal/domain"
	"github.com/benjisbeans/kapaiputea-app/internal/infra/sqlite"
)

// QuizCompletionXP is the flat award for finishing the onboarding quiz.
const QuizCompletionXP = 100

// Service handles onboarding submission and profile reads.
type Service struct {
	db  *sqlite.DB
	gam *gamification.Service
	rng *rand.Rand
}

// NewService creates a profile service. A nil rng gets a time-seeded one;
// tests inject a fixed seed for deterministic tag draws.
func NewService(db *sqlite.DB, gam *gamification.Service, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{db: db, gam: gam, rng: rng}
}

// QuizResult is everything one onboarding submission produced.
type QuizResult struct {
	Stream    domain.Stream     `json:"stream"`
	Tag       domain.ProfileTag `json:"tag"`
	XPAwarded int               `json:"xp_awarded"`
	NewBadges []domain.Badge    `json:"new_badges"`
}

// SubmitQuiz stores the answers, resolves the learner's stream, draws a
// persona tag, and completes onboarding. The completion XP is granted once;
// re-submitting regenerates the tag without re-awarding.
func (s *Service) SubmitQuiz(displayName string, answers domain.QuizAnswers, now time.Time) (*QuizResult, error) {
	before, err := s.db.Profile()
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	stream := ResolveStream(single(answers, "stream"))
	tag := GenerateTag(answers, s.rng)

	if err := s.db.SaveQuizAnswers(answers, now); err != nil {
		return nil, fmt.Errorf("save answers: %w", err)
	}
	if err := s.db.SetIdentity(displayName, stream, tag); err != nil {
		return nil, fmt.Errorf("save identity: %w", err)
	}
	if err := s.db.SetOnboardingCompleted(true); err != nil {
		return nil, fmt.Errorf("complete onboarding: %w", err)
	}

	res := &QuizResult{Stream: stream, Tag: tag}
	if !before.OnboardingCompleted {
		if _, err := s.gam.AwardXP(QuizCompletionXP, domain.XPQuizComplete, "onboarding",
			"Completed the onboarding quiz", now); err != nil {
			return nil, err
		}
		res.XPAwarded = QuizCompletionXP
	}

	newBadges, _, err := s.gam.EvaluateBadges(now)
	if err != nil {
		return nil, err
	}
	res.NewBadges = newBadges

	log.Printf("[profile] onboarding complete: stream=%s tag=%q %s", stream, tag.Name, tag.Emoji)
	return res, nil
}

// Get returns the stored profile.
func (s *Service) Get() (domain.Profile, error) {
	return s.db.Profile()
}
