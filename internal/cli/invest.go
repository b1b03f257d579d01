package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/benjisbeans/kapaiputea-app/internal/daemon"
)

func init() {
	historyCmd.Flags().IntVar(&historyDays, "days", 30, "Days of price history")
	investCmd.AddCommand(buyCmd)
	investCmd.AddCommand(sellCmd)
	investCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(investCmd)
}

var investCmd = &cobra.Command{
	Use:   "invest",
	Short: "View the virtual stock market and your portfolio",
	RunE:  runInvest,
}

func runInvest(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	now := time.Now()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tNAME\tPRICE\tCHANGE")
	for _, l := range d.Market.Listings(now) {
		fmt.Fprintf(w, "%s %s\t%s\t%s\t%+.2f (%+.2f%%)\n",
			l.Emoji, l.Symbol, l.Name, money(l.Quote.Price),
			l.Quote.Change, l.Quote.ChangePercent,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	p, err := d.Market.Portfolio(now)
	if err != nil {
		return err
	}

	fmt.Printf("\nCash: %s | Portfolio value: %s\n", money(p.BankBalance), money(p.TotalValue))
	if len(p.Positions) == 0 {
		return nil
	}

	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "HOLDING\tSHARES\tAVG\tNOW\tVALUE\tGAIN/LOSS")
	for _, pos := range p.Positions {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s (%+.2f%%)\n",
			pos.Symbol, pos.Shares, money(pos.AvgBuyPrice),
			money(pos.CurrentPrice), money(pos.MarketValue),
			signedMoney(pos.GainLoss), pos.GainLossPct,
		)
	}
	return w.Flush()
}

var buyCmd = &cobra.Command{
	Use:   "buy SYMBOL SHARES",
	Short: "Buy shares at today's price",
	Args:  cobra.ExactArgs(2),
	RunE:  func(cmd *cobra.Command, args []string) error { return runTrade(args, true) },
}

var sellCmd = &cobra.Command{
	Use:   "sell SYMBOL SHARES",
	Short: "Sell shares at today's price",
	Args:  cobra.ExactArgs(2),
	RunE:  func(cmd *cobra.Command, args []string) error { return runTrade(args, false) },
}

func runTrade(args []string, buy bool) error {
	shares, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid share count %q", args[1])
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	now := time.Now()
	trade := d.Market.Sell
	if buy {
		trade = d.Market.Buy
	}
	t, err := trade(args[0], shares, now)
	if err != nil {
		return err
	}

	fmt.Printf("%s %d %s @ %s = %s\n",
		t.Type, t.Shares, t.Symbol, money(t.PricePerShare), money(t.TotalAmount))

	p, err := d.Market.Portfolio(now)
	if err != nil {
		return err
	}
	fmt.Printf("Cash: %s\n", money(p.BankBalance))
	return nil
}

var historyDays int

var historyCmd = &cobra.Command{
	Use:   "history SYMBOL",
	Short: "Show recent closing prices for a stock",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	now := time.Now()
	prices, err := d.Market.History(args[0], now, historyDays)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tPRICE")
	for i, p := range prices {
		day := now.AddDate(0, 0, i-len(prices)+1)
		fmt.Fprintf(w, "%s\t%s\n", day.Format("2006-01-02"), money(p))
	}
	return w.Flush()
}
