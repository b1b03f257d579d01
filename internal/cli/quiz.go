package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/benjisbeans/kapaiputea-app/internal/daemon"
	"github.com/benjisbeans/kapaiputea-app/internal/domain"
)

func init() {
	rootCmd.AddCommand(quizCmd)
}

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take the onboarding quiz and get your profile tag",
	RunE:  runQuiz,
}

// quizQuestion is one prompt in the interactive onboarding flow. Multi
// answers are comma-separated at the prompt.
type quizQuestion struct {
	Key     string
	Prompt  string
	Options []string
	Multi   bool
}

var quizQuestions = []quizQuestion{
	{Key: "stream", Prompt: "What's your plan after school?",
		Options: []string{"trade", "uni", "early-leaver", "military", "unsure"}},
	{Key: "gender", Prompt: "How do you identify?",
		Options: []string{"male", "female", "other", "prefer-not-to-say"}},
	{Key: "financial_confidence", Prompt: "How confident are you with money? (1 = not at all, 5 = very)",
		Options: []string{"1", "2", "3", "4", "5"}},
	{Key: "money_personality", Prompt: "What's your money personality?",
		Options: []string{"saver", "spender", "balanced"}},
	{Key: "goals", Prompt: "What are you aiming for? (pick any, comma-separated)",
		Options: []string{"job", "business", "savings", "car", "travel", "flat"}, Multi: true},
	{Key: "has_part_time_job", Prompt: "Do you have a part-time job?",
		Options: []string{"yes", "no"}},
}

func runQuiz(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	scanner := newLineScanner(os.Stdin)

	fmt.Println("Kia ora! A few quick questions to set up your profile.")
	fmt.Print("What should we call you? ")
	if !scanner.Scan() {
		return fmt.Errorf("quiz aborted")
	}
	name := strings.TrimSpace(scanner.Text())

	answers := domain.QuizAnswers{}
	for _, q := range quizQuestions {
		fmt.Printf("\n%s\n  options: %s\n> ", q.Prompt, strings.Join(q.Options, ", "))
		if !scanner.Scan() {
			return fmt.Errorf("quiz aborted")
		}
		input := strings.TrimSpace(scanner.Text())
		if q.Multi {
			var values []string
			for _, v := range strings.Split(input, ",") {
				if v = strings.TrimSpace(v); v != "" {
					values = append(values, v)
				}
			}
			answers[q.Key] = domain.Answer{Values: values}
		} else {
			answers[q.Key] = domain.Answer{Value: input}
		}
	}

	res, err := d.Profiles.SubmitQuiz(name, answers, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("\nKa pai, %s! You're on the %s pathway.\n", name, res.Stream)
	fmt.Printf("Your tag: %s %s\n", res.Tag.Emoji, res.Tag.Name)
	if res.XPAwarded > 0 {
		fmt.Printf("+%d XP for finishing onboarding\n", res.XPAwarded)
	}
	for _, b := range res.NewBadges {
		fmt.Printf("Badge unlocked: %s %s (+%d XP)\n", b.Emoji, b.Name, b.XPBonus)
	}
	return nil
}
