package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/benjisbeans/kapaiputea-app/internal/app/hustle"
	"github.com/benjisbeans/kapaiputea-app/internal/daemon"
	"github.com/benjisbeans/kapaiputea-app/internal/infra/catalog"
)

func init() {
	hustleCmd.AddCommand(hustleStartCmd)
	hustleCmd.AddCommand(hustleCollectCmd)
	hustleCmd.AddCommand(hustleUpgradeCmd)
	rootCmd.AddCommand(hustleCmd)
}

var hustleCmd = &cobra.Command{
	Use:   "hustle",
	Short: "Run your virtual side hustle",
	RunE:  runHustleStatus,
}

func runHustleStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	st, err := d.Hustle.Status(time.Now())
	if err != nil {
		return err
	}

	if st.Business == nil {
		fmt.Println("No business yet. Pick one with 'kapai hustle start TYPE':")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TYPE\tNAME\tREVENUE/H\tCOST/H")
		for _, bt := range catalog.BusinessTypes {
			fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\n",
				bt.ID, bt.Emoji, bt.Name, money(bt.BaseRevenue), money(bt.BaseCost))
		}
		return w.Flush()
	}

	b := st.Business
	bt := catalog.BusinessTypeByID(b.BusinessType)
	name := b.BusinessType
	if bt != nil {
		name = fmt.Sprintf("%s %s", bt.Emoji, bt.Name)
	}

	fmt.Printf("%s (level %d)\n", name, b.BusinessLevel)
	fmt.Printf("  Rates:        %s/h revenue, %s/h costs\n", money(b.RevenuePerHour), money(b.CostPerHour))
	fmt.Printf("  Pending:      %s (%.1fh since last collect)\n", money(st.Pending.Income), st.Pending.HoursElapsed)
	fmt.Printf("  Total earned: %s\n", money(b.TotalEarned))
	fmt.Printf("  Bank balance: %s\n", money(st.BankBalance))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nUPGRADE\tEFFECT\tOWNED\tNEXT COST")
	for _, u := range catalog.Upgrades {
		owned := hustle.UpgradeLevel(b.Upgrades, u.ID)
		next := "maxed"
		if cost, err := hustle.UpgradeCost(u, owned); err == nil {
			next = money(cost)
		}
		fmt.Fprintf(w, "%s\t+%s/h rev, +%s/h cost\t%d\t%s\n",
			u.ID, money(u.RevenueBoost), money(u.CostIncrease), owned, next)
	}
	return w.Flush()
}

var hustleStartCmd = &cobra.Command{
	Use:   "start TYPE",
	Short: "Start a business",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		b, err := d.Hustle.Start(args[0], time.Now())
		if err != nil {
			return err
		}
		fmt.Printf("Started %s. Come back later and 'kapai hustle collect'.\n", b.BusinessType)
		return nil
	},
}

var hustleCollectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Bank the income your business has earned",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		res, err := d.Hustle.Collect(time.Now())
		if err != nil {
			return err
		}
		fmt.Printf("Collected %s. Bank balance: %s\n",
			money(res.Collected), money(res.BankBalance))
		return nil
	},
}

var hustleUpgradeCmd = &cobra.Command{
	Use:   "upgrade UPGRADE_ID",
	Short: "Buy a business upgrade",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		res, err := d.Hustle.Upgrade(args[0], time.Now())
		if err != nil {
			return err
		}
		fmt.Printf("Bought %s for %s. Business is now level %d.\n",
			args[0], money(res.Cost), res.Business.BusinessLevel)
		return nil
	},
}
