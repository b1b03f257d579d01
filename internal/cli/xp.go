package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/benjisbeans/kapaiputea-app/internal/daemon"
)

func init() {
	xpCmd.Flags().IntVar(&xpLimit, "limit", 20, "Number of transactions to show")
	rootCmd.AddCommand(xpCmd)
}

var xpLimit int

var xpCmd = &cobra.Command{
	Use:   "xp",
	Short: "Show recent XP transactions",
	RunE:  runXP,
}

func runXP(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	txns, err := d.Gamification.RecentTransactions(xpLimit)
	if err != nil {
		return err
	}
	if len(txns) == 0 {
		fmt.Println("No XP yet. Run 'kapai lessons' to find your first lesson.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tXP\tSOURCE\tDESCRIPTION")
	for _, t := range txns {
		fmt.Fprintf(w, "%s\t%+d\t%s\t%s\n",
			t.CreatedAt.Format("2006-01-02 15:04"),
			t.Amount,
			t.Source,
			t.Description,
		)
	}
	return w.Flush()
}
