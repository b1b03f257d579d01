package market_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/benjisbeans/kapaiputea-app/internal/app/market"
	"github.com/benjisbeans/kapaiputea-app/internal/domain"
	"github.com/benjisbeans/kapaiputea-app/internal/infra/catalog"
	"github.com/benjisbeans/kapaiputea-app/internal/infra/sqlite"
)

func testService(t *testing.T) (*market.Service, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return market.NewService(db), db
}

var tradeDay = time.Date(2026, 6, 15, 14, 30, 0, 0, time.UTC)

func TestBuy(t *testing.T) {
	svc, db := testService(t)

	price := market.Price(*catalog.StockBySymbol("KIWI"), tradeDay)
	trade, err := svc.Buy("KIWI", 10, tradeDay)
	if err != nil {
		t.Fatalf("buy: %v", err)
	}

	if trade.Type != domain.TradeBuy || trade.Shares != 10 {
		t.Errorf("trade = %+v", trade)
	}
	if trade.PricePerShare != price {
		t.Errorf("trade price %v, want simulator price %v", trade.PricePerShare, price)
	}
	wantTotal := math.Round(10*price*100) / 100
	if trade.TotalAmount != wantTotal {
		t.Errorf("total %v, want %v", trade.TotalAmount, wantTotal)
	}

	balance, _ := db.BankBalance()
	if balance != math.Round((sqlite.StartingBankBalance-wantTotal)*100)/100 {
		t.Errorf("balance = %v", balance)
	}

	h, _ := db.Holding("KIWI")
	if h == nil || h.Shares != 10 || h.AvgBuyPrice != price {
		t.Errorf("holding = %+v", h)
	}
}

func TestBuy_AveragesCost(t *testing.T) {
	svc, db := testService(t)

	if _, err := svc.Buy("KIWI", 10, tradeDay); err != nil {
		t.Fatalf("first buy: %v", err)
	}
	nextDay := tradeDay.AddDate(0, 0, 1)
	if _, err := svc.Buy("KIWI", 30, nextDay); err != nil {
		t.Fatalf("second buy: %v", err)
	}

	p1 := market.Price(*catalog.StockBySymbol("KIWI"), tradeDay)
	p2 := market.Price(*catalog.StockBySymbol("KIWI"), nextDay)
	wantAvg := math.Round((10*p1+30*p2)/40*100) / 100

	h, _ := db.Holding("KIWI")
	if h.Shares != 40 {
		t.Errorf("shares = %d, want 40", h.Shares)
	}
	if h.AvgBuyPrice != wantAvg {
		t.Errorf("avg = %v, want %v", h.AvgBuyPrice, wantAvg)
	}
}

func TestBuy_InsufficientFunds(t *testing.T) {
	svc, db := testService(t)

	// PAUA trades well above $100; 10000 shares far exceeds the balance
	_, err := svc.Buy("PAUA", 10000, tradeDay)
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}

	balance, _ := db.BankBalance()
	if balance != sqlite.StartingBankBalance {
		t.Errorf("balance changed on rejected buy: %v", balance)
	}
	if h, _ := db.Holding("PAUA"); h != nil {
		t.Errorf("holding created on rejected buy: %+v", h)
	}
}

func TestBuy_UnknownSymbol(t *testing.T) {
	svc, _ := testService(t)
	_, err := svc.Buy("NOPE", 1, tradeDay)
	if !errors.Is(err, domain.ErrStockNotFound) {
		t.Fatalf("err = %v, want ErrStockNotFound", err)
	}
}

func TestBuy_ShareBounds(t *testing.T) {
	svc, _ := testService(t)
	for _, shares := range []int{0, -5, market.MaxSharesPerTrade + 1} {
		_, err := svc.Buy("KIWI", shares, tradeDay)
		if !errors.Is(err, domain.ErrInvalidTrade) {
			t.Errorf("shares=%d err = %v, want ErrInvalidTrade", shares, err)
		}
	}
}

func TestSell(t *testing.T) {
	svc, db := testService(t)

	if _, err := svc.Buy("KIWI", 10, tradeDay); err != nil {
		t.Fatalf("buy: %v", err)
	}
	balanceAfterBuy, _ := db.BankBalance()

	nextDay := tradeDay.AddDate(0, 0, 1)
	trade, err := svc.Sell("KIWI", 4, nextDay)
	if err != nil {
		t.Fatalf("sell: %v", err)
	}

	p2 := market.Price(*catalog.StockBySymbol("KIWI"), nextDay)
	wantTotal := math.Round(4*p2*100) / 100
	if trade.TotalAmount != wantTotal {
		t.Errorf("total %v, want %v", trade.TotalAmount, wantTotal)
	}

	balance, _ := db.BankBalance()
	if balance != math.Round((balanceAfterBuy+wantTotal)*100)/100 {
		t.Errorf("balance = %v", balance)
	}

	// Partial sell keeps the average buy price
	h, _ := db.Holding("KIWI")
	p1 := market.Price(*catalog.StockBySymbol("KIWI"), tradeDay)
	if h.Shares != 6 || h.AvgBuyPrice != p1 {
		t.Errorf("holding = %+v", h)
	}
}

func TestSell_AllRemovesHolding(t *testing.T) {
	svc, db := testService(t)

	_, _ = svc.Buy("MOA", 5, tradeDay)
	if _, err := svc.Sell("MOA", 5, tradeDay); err != nil {
		t.Fatalf("sell: %v", err)
	}
	if h, _ := db.Holding("MOA"); h != nil {
		t.Errorf("holding survived full sell: %+v", h)
	}
}

func TestSell_InsufficientShares(t *testing.T) {
	svc, _ := testService(t)

	_, _ = svc.Buy("KIWI", 3, tradeDay)
	_, err := svc.Sell("KIWI", 5, tradeDay)
	if !errors.Is(err, domain.ErrInsufficientShares) {
		t.Fatalf("err = %v, want ErrInsufficientShares", err)
	}

	// Never held at all
	_, err = svc.Sell("TUI", 1, tradeDay)
	if !errors.Is(err, domain.ErrInsufficientShares) {
		t.Fatalf("err = %v, want ErrInsufficientShares", err)
	}
}

func TestPortfolio(t *testing.T) {
	svc, _ := testService(t)

	_, _ = svc.Buy("KIWI", 10, tradeDay)
	_, _ = svc.Buy("MOA", 20, tradeDay)

	p, err := svc.Portfolio(tradeDay)
	if err != nil {
		t.Fatalf("portfolio: %v", err)
	}
	if len(p.Positions) != 2 {
		t.Fatalf("positions = %d, want 2", len(p.Positions))
	}
	if len(p.Trades) != 2 {
		t.Errorf("trades = %d, want 2", len(p.Trades))
	}

	// Bought and valued on the same day: no gain, total equals starting cash
	for _, pos := range p.Positions {
		if pos.GainLoss != 0 {
			t.Errorf("%s gain = %v on purchase day", pos.Symbol, pos.GainLoss)
		}
	}
	if math.Abs(p.TotalValue-sqlite.StartingBankBalance) > 0.05 {
		t.Errorf("total value = %v, want ~%v", p.TotalValue, sqlite.StartingBankBalance)
	}
}

func TestListings(t *testing.T) {
	svc, _ := testService(t)
	listings := svc.Listings(tradeDay)
	if len(listings) != len(catalog.Stocks) {
		t.Fatalf("listings = %d, want %d", len(listings), len(catalog.Stocks))
	}
	for _, l := range listings {
		if l.Quote.Price < 0.01 {
			t.Errorf("%s quote price %v", l.Symbol, l.Quote.Price)
		}
	}
}

func TestHistory_UnknownSymbol(t *testing.T) {
	svc, _ := testService(t)
	_, err := svc.History("NOPE", tradeDay, 7)
	if !errors.Is(err, domain.ErrStockNotFound) {
		t.Fatalf("err = %v, want ErrStockNotFound", err)
	}
}
