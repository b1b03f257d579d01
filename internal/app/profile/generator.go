// Package profile implements onboarding: quiz intake, stream resolution,
// and persona-tag generation.
package profile

import (
	"math/rand"

	"github.com/benjisbeans/kapaiputea-app/internal/domain"
)

// tagRule maps a set of quiz-answer conditions to a pool of persona tags.
// Rules are checked top to bottom; the first match wins and one of its tags
// is drawn at random. Zero-valued condition fields are ignored.
type tagRule struct {
	Stream              string
	Gender              string
	FinancialConfidence []string // answer must be one of these
	MoneyPersonality    string
	GoalsIncludes       []string // goals list must contain any of these
	HasPartTimeJob      string
	Tags                []domain.ProfileTag
}

var tagRules = []tagRule{
	// Trade-focused males
	{
		Stream: "trade", Gender: "male",
		Tags: []domain.ProfileTag{
			{Name: "Mr. Ute", Emoji: "🚗"},
			{Name: "Sparky", Emoji: "⚡"},
			{Name: "Tradie Legend", Emoji: "🔧"},
			{Name: "Hammer Time", Emoji: "🔨"},
		},
	},
	// Trade-focused females
	{
		Stream: "trade", Gender: "female",
		Tags: []domain.ProfileTag{
			{Name: "She Builds", Emoji: "👷‍♀️"},
			{Name: "Boss Tradie", Emoji: "💪"},
			{Name: "Grind Queen", Emoji: "👑"},
		},
	},
	// Trade-focused (any gender)
	{
		Stream: "trade",
		Tags: []domain.ProfileTag{
			{Name: "Tool Belt", Emoji: "🧰"},
			{Name: "Hard Yakka", Emoji: "💪"},
			{Name: "Sparky", Emoji: "⚡"},
		},
	},
	// Uni-bound + high confidence
	{
		Stream: "uni", FinancialConfidence: []string{"4", "5"},
		Tags: []domain.ProfileTag{
			{Name: "Finance Bro", Emoji: "📈"},
			{Name: "Wolf of Wall Street", Emoji: "🐺"},
			{Name: "Scholarship Hunter", Emoji: "🎯"},
		},
	},
	// Uni-bound + wants job/business
	{
		Stream: "uni", GoalsIncludes: []string{"job", "business"},
		Tags: []domain.ProfileTag{
			{Name: "LinkedIn Warrior", Emoji: "💼"},
			{Name: "CEO in Training", Emoji: "🚀"},
			{Name: "Hustle Student", Emoji: "📚"},
		},
	},
	// Uni-bound + low confidence
	{
		Stream: "uni", FinancialConfidence: []string{"1", "2"},
		Tags: []domain.ProfileTag{
			{Name: "Noodle Budget", Emoji: "🍜"},
			{Name: "Textbook Broke", Emoji: "📖"},
			{Name: "Study Grinder", Emoji: "☕"},
		},
	},
	// Uni-bound general
	{
		Stream: "uni",
		Tags: []domain.ProfileTag{
			{Name: "Campus Cash", Emoji: "🎓"},
			{Name: "Degree Dealer", Emoji: "📜"},
			{Name: "Study Saver", Emoji: "🐷"},
		},
	},
	// Military
	{
		Stream: "military",
		Tags: []domain.ProfileTag{
			{Name: "Navy Captain", Emoji: "⚓"},
			{Name: "Cadet Cash", Emoji: "🎖️"},
			{Name: "Sergeant Savings", Emoji: "💂"},
			{Name: "Boot Camp Boss", Emoji: "🪖"},
		},
	},
	// Early leaver + spender
	{
		Stream: "early-leaver", MoneyPersonality: "spender",
		Tags: []domain.ProfileTag{
			{Name: "YOLO Earner", Emoji: "🔥"},
			{Name: "Pay Day King", Emoji: "👑"},
			{Name: "Cash Flash", Emoji: "💸"},
		},
	},
	// Early leaver + saver
	{
		Stream: "early-leaver", MoneyPersonality: "saver",
		Tags: []domain.ProfileTag{
			{Name: "Stack Builder", Emoji: "🏗️"},
			{Name: "Silent Grinder", Emoji: "🤫"},
			{Name: "Kiwi Saver", Emoji: "🥝"},
		},
	},
	// Early leaver general
	{
		Stream: "early-leaver",
		Tags: []domain.ProfileTag{
			{Name: "Real World Ready", Emoji: "🌏"},
			{Name: "Boss Mode", Emoji: "😎"},
			{Name: "Grind Time", Emoji: "⏰"},
		},
	},
	// Unsure + saver
	{
		Stream: "unsure", MoneyPersonality: "saver",
		Tags: []domain.ProfileTag{
			{Name: "Secret Saver", Emoji: "🤫"},
			{Name: "Quiet Achiever", Emoji: "🧠"},
		},
	},
	// Unsure + has job
	{
		Stream: "unsure", HasPartTimeJob: "true",
		Tags: []domain.ProfileTag{
			{Name: "Side Hustler", Emoji: "💰"},
			{Name: "Working It Out", Emoji: "🤔"},
		},
	},
	// Unsure general
	{
		Stream: "unsure",
		Tags: []domain.ProfileTag{
			{Name: "Fresh Start", Emoji: "🌱"},
			{Name: "Open Book", Emoji: "📖"},
			{Name: "Vibe Check", Emoji: "✌️"},
		},
	},
}

var fallbackTags = []domain.ProfileTag{
	{Name: "Money Rookie", Emoji: "💰"},
	{Name: "Kiwi Learner", Emoji: "🥝"},
	{Name: "Fresh Start", Emoji: "🌱"},
}

// single returns the single-valued answer for key, or "" when absent or a
// list. Lists never satisfy exact-match conditions.
func single(answers domain.QuizAnswers, key string) string {
	a, ok := answers[key]
	if !ok || a.IsList() {
		return ""
	}
	return a.Value
}

func (r tagRule) matches(answers domain.QuizAnswers) bool {
	if r.Stream != "" && single(answers, "stream") != r.Stream {
		return false
	}
	if r.Gender != "" && single(answers, "gender") != r.Gender {
		return false
	}
	if len(r.FinancialConfidence) > 0 {
		val := single(answers, "financial_confidence")
		found := false
		for _, want := range r.FinancialConfidence {
			if val == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if r.MoneyPersonality != "" && single(answers, "money_personality") != r.MoneyPersonality {
		return false
	}
	if len(r.GoalsIncludes) > 0 {
		goals, ok := answers["goals"]
		if !ok || !goals.IsList() {
			return false
		}
		found := false
		for _, want := range r.GoalsIncludes {
			for _, g := range goals.Values {
				if g == want {
					found = true
					break
				}
			}
		}
		if !found {
			return false
		}
	}
	if r.HasPartTimeJob != "" && single(answers, "has_part_time_job") != r.HasPartTimeJob {
		return false
	}
	return true
}

// GenerateTag picks a persona tag for the given answers. The first matching
// rule wins; rng selects among its tags. No rule matching falls back to a
// generic pool.
func GenerateTag(answers domain.QuizAnswers, rng *rand.Rand) domain.ProfileTag {
	for _, rule := range tagRules {
		if rule.matches(answers) {
			return rule.Tags[rng.Intn(len(rule.Tags))]
		}
	}
	return fallbackTags[rng.Intn(len(fallbackTags))]
}

// ResolveStream maps a raw stream answer onto the closed Stream enum.
// Anything unrecognized resolves to StreamUnsure.
func ResolveStream(answer string) domain.Stream {
	switch s := domain.Stream(answer); s {
	case domain.StreamTrade, domain.StreamUni, domain.StreamEarlyLeaver,
		domain.StreamMilitary, domain.StreamUnsure:
		return s
	}
	return domain.StreamUnsure
}
