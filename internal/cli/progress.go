package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/benjisbeans/kapaiputea-app/internal/daemon"
)

func init() {
	rootCmd.AddCommand(progressCmd)
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show your level, XP, and streak",
	RunE:  runProgress,
}

const levelBarWidth = 20

func runProgress(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	pr, err := d.Gamification.CurrentProgress(time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Level %d — %s\n", pr.Level, pr.LevelName)
	fmt.Printf("  %s %d%%\n", levelBar(pr.LevelProgress), pr.LevelProgress)
	fmt.Printf("  XP:      %d (next level at %d)\n", pr.TotalXP, pr.XPForNextLevel)
	fmt.Printf("  Streak:  %d day(s), best %d\n", pr.CurrentStreak, pr.LongestStreak)
	fmt.Printf("  Lessons: %d completed, %d module(s) finished\n", pr.Lessons, pr.Modules)
	fmt.Printf("  Badges:  %d earned\n", pr.BadgesEarned)
	return nil
}

func levelBar(pct int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * levelBarWidth / 100
	return "[" + strings.Repeat("=", filled) + strings.Repeat(".", levelBarWidth-filled) + "]"
}
