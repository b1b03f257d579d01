package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/benjisbeans/kapaiputea-app/internal/daemon"
)

func init() {
	rootCmd.AddCommand(badgesCmd)
}

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "List badges and which you've earned",
	RunE:  runBadges,
}

func runBadges(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	badges, err := d.Gamification.Badges()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BADGE\tDESCRIPTION\tXP\tEARNED")
	for _, b := range badges {
		earned := "-"
		if b.Earned {
			earned = b.EarnedAt.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s %s\t%s\t%d\t%s\n", b.Emoji, b.Name, b.Description, b.XPBonus, earned)
	}
	return w.Flush()
}
