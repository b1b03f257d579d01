package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/benjisbeans/kapaiputea-app/internal/daemon"
	"github.com/benjisbeans/kapaiputea-app/internal/infra/catalog"
)

func init() {
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(completeCmd)
}

var lessonsCmd = &cobra.Command{
	Use:     "lessons",
	Aliases: []string{"ls"},
	Short:   "List lessons and their completion state",
	RunE:    runLessons,
}

func runLessons(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODULE\tTITLE\tXP\tSTATUS")
	for _, l := range catalog.Lessons {
		done, err := d.Gamification.LessonDone(l.ID)
		if err != nil {
			return err
		}
		status := "-"
		if done {
			status = "done"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", l.ID, l.ModuleSlug, l.Title, l.XPReward, status)
	}
	return w.Flush()
}

var completeCmd = &cobra.Command{
	Use:   "complete LESSON_ID",
	Short: "Mark a lesson complete and collect the XP",
	Args:  cobra.ExactArgs(1),
	RunE:  runComplete,
}

func runComplete(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	res, err := d.Gamification.CompleteLesson(args[0], time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("+%d XP", res.Breakdown.Total)
	if res.Breakdown.Streak > 0 {
		fmt.Printf(" (includes %d streak bonus)", res.Breakdown.Streak)
	}
	fmt.Println()

	if res.LeveledUp {
		fmt.Printf("Level up! You're now level %d — %s\n", res.NewLevel, res.LevelName)
	}
	if res.ModuleCompleted {
		fmt.Println("Module complete, ka pai!")
	}
	for _, b := range res.NewBadges {
		fmt.Printf("Badge unlocked: %s %s (+%d XP)\n", b.Emoji, b.Name, b.XPBonus)
	}
	fmt.Printf("Streak: %d day(s) | Total XP: %d\n", res.CurrentStreak, res.TotalXP)
	return nil
}
