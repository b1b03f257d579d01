package profile_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/benjisbeans/kapaiputea-app/internal/app/gamification"
	"github.com/benjisbeans/kapaiputea-app/internal/app/profile"
	"github.com/benjisbeans/kapaiputea-app/internal/domain"
	"github.com/benjisbeans/kapaiputea-app/internal/infra/sqlite"
)

func testService(t *testing.T) (*profile.Service, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	gam := gamification.NewService(db)
	return profile.NewService(db, gam, rand.New(rand.NewSource(7))), db
}

var quizTime = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

func TestSubmitQuiz(t *testing.T) {
	svc, db := testService(t)

	answers := domain.QuizAnswers{
		"stream": one("trade"),
		"gender": one("male"),
	}
	res, err := svc.SubmitQuiz("Tama", answers, quizTime)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if res.Stream != domain.StreamTrade {
		t.Errorf("stream = %q", res.Stream)
	}
	if res.XPAwarded != profile.QuizCompletionXP {
		t.Errorf("xp awarded = %d, want %d", res.XPAwarded, profile.QuizCompletionXP)
	}

	p, err := db.Profile()
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if !p.OnboardingCompleted {
		t.Error("onboarding not marked complete")
	}
	if p.DisplayName != "Tama" || p.Stream != domain.StreamTrade {
		t.Errorf("identity = %q/%q", p.DisplayName, p.Stream)
	}
	if p.ProfileTag == "" || p.ProfileTagEmoji == "" {
		t.Error("persona tag not stored")
	}
	// Quiz award plus the Know Thyself badge bonus
	if p.TotalXP != profile.QuizCompletionXP+20 {
		t.Errorf("total xp = %d, want %d", p.TotalXP, profile.QuizCompletionXP+20)
	}

	// Know Thyself badge unlocks off the quiz
	var knowThyself bool
	for _, b := range res.NewBadges {
		if b.ID == "quiz-done" {
			knowThyself = true
		}
	}
	if !knowThyself {
		t.Errorf("quiz badge missing from %v", res.NewBadges)
	}
}

func TestSubmitQuiz_ResubmitAwardsNothing(t *testing.T) {
	svc, db := testService(t)

	answers := domain.QuizAnswers{"stream": one("unsure")}
	if _, err := svc.SubmitQuiz("Aroha", answers, quizTime); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	answers["stream"] = one("uni")
	res, err := svc.SubmitQuiz("Aroha", answers, quizTime.Add(time.Hour))
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if res.XPAwarded != 0 {
		t.Errorf("resubmit awarded %d xp", res.XPAwarded)
	}
	if res.Stream != domain.StreamUni {
		t.Errorf("stream not updated: %q", res.Stream)
	}

	p, _ := db.Profile()
	if p.TotalXP != profile.QuizCompletionXP+20 { // quiz award + badge bonus
		t.Errorf("total xp = %d, want %d", p.TotalXP, profile.QuizCompletionXP+20)
	}
}

func TestSubmitQuiz_PersistsAnswers(t *testing.T) {
	svc, db := testService(t)

	answers := domain.QuizAnswers{
		"stream": one("uni"),
		"goals":  many("job", "travel"),
	}
	if _, err := svc.SubmitQuiz("Mia", answers, quizTime); err != nil {
		t.Fatalf("submit: %v", err)
	}

	stored, err := db.QuizAnswers()
	if err != nil {
		t.Fatalf("load answers: %v", err)
	}
	if stored["stream"].Value != "uni" {
		t.Errorf("stream answer = %+v", stored["stream"])
	}
	goals := stored["goals"]
	if !goals.IsList() || len(goals.Values) != 2 {
		t.Errorf("goals answer = %+v", goals)
	}
}
