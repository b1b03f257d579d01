package market

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/benjisbeans/kapaiputea-app/internal/domain"
	"github.com/benjisbeans/kapaiputea-app/internal/infra/catalog"
	"github.com/benjisbeans/kapaiputea-app/internal/infra/metrics"
	"github.com/benjisbeans/kapaiputea-app/internal/infra/sqlite"
)

// MaxSharesPerTrade caps a single order.
const MaxSharesPerTrade = 10000

// Service executes virtual trades against the learner's bank balance and
// holdings. Prices always come from the simulator, never from the caller.
type Service struct {
	db *sqlite.DB
}

// NewService creates a market service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// Listing is one stock with its live quote.
type Listing struct {
	domain.StockSeed
	Quote domain.Quote `json:"quote"`
}

// Listings returns every listed stock with its quote for the given date,
// catalog order.
func (s *Service) Listings(date time.Time) []Listing {
	out := make([]Listing, 0, len(catalog.Stocks))
	for _, seed := range catalog.Stocks {
		out = append(out, Listing{StockSeed: seed, Quote: QuoteFor(seed, date)})
	}
	return out
}

// History returns the last days closing prices for a symbol, oldest first.
func (s *Service) History(symbol string, date time.Time, days int) ([]float64, error) {
	seed := catalog.StockBySymbol(symbol)
	if seed == nil {
		return nil, domain.ErrStockNotFound
	}
	return PriceHistory(*seed, date, days), nil
}

// Buy purchases shares at the current simulated price. Returns the logged
// trade. Fails with domain.ErrInsufficientFunds when the balance cannot
// cover the order.
func (s *Service) Buy(symbol string, shares int, now time.Time) (*domain.Trade, error) {
	seed, err := validateOrder(symbol, shares)
	if err != nil {
		return nil, err
	}

	price := Price(*seed, now)
	total := round2(float64(shares) * price)

	balance, err := s.db.BankBalance()
	if err != nil {
		return nil, fmt.Errorf("load balance: %w", err)
	}
	if balance < total {
		return nil, domain.ErrInsufficientFunds
	}
	if err := s.db.SetBankBalance(round2(balance - total)); err != nil {
		return nil, fmt.Errorf("debit balance: %w", err)
	}

	holding, err := s.db.Holding(symbol)
	if err != nil {
		return nil, fmt.Errorf("load holding: %w", err)
	}
	if holding != nil {
		totalShares := holding.Shares + shares
		totalCost := float64(holding.Shares)*holding.AvgBuyPrice + float64(shares)*price
		holding.Shares = totalShares
		holding.AvgBuyPrice = round2(totalCost / float64(totalShares))
	} else {
		holding = &domain.Holding{Symbol: symbol, Shares: shares, AvgBuyPrice: price}
	}
	if err := s.db.UpsertHolding(*holding); err != nil {
		return nil, fmt.Errorf("save holding: %w", err)
	}

	return s.logTrade(symbol, domain.TradeBuy, shares, price, total, now)
}

// Sell disposes shares at the current simulated price. The average buy
// price of the remainder is unchanged; selling out removes the holding.
func (s *Service) Sell(symbol string, shares int, now time.Time) (*domain.Trade, error) {
	seed, err := validateOrder(symbol, shares)
	if err != nil {
		return nil, err
	}

	holding, err := s.db.Holding(symbol)
	if err != nil {
		return nil, fmt.Errorf("load holding: %w", err)
	}
	if holding == nil || holding.Shares < shares {
		return nil, domain.ErrInsufficientShares
	}

	price := Price(*seed, now)
	total := round2(float64(shares) * price)

	balance, err := s.db.BankBalance()
	if err != nil {
		return nil, fmt.Errorf("load balance: %w", err)
	}
	if err := s.db.SetBankBalance(round2(balance + total)); err != nil {
		return nil, fmt.Errorf("credit balance: %w", err)
	}

	remaining := holding.Shares - shares
	if remaining == 0 {
		if err := s.db.DeleteHolding(symbol); err != nil {
			return nil, fmt.Errorf("remove holding: %w", err)
		}
	} else {
		holding.Shares = remaining
		if err := s.db.UpsertHolding(*holding); err != nil {
			return nil, fmt.Errorf("save holding: %w", err)
		}
	}

	return s.logTrade(symbol, domain.TradeSell, shares, price, total, now)
}

func validateOrder(symbol string, shares int) (*domain.StockSeed, error) {
	if shares < 1 || shares > MaxSharesPerTrade {
		return nil, fmt.Errorf("shares must be 1-%d: %w", MaxSharesPerTrade, domain.ErrInvalidTrade)
	}
	seed := catalog.StockBySymbol(symbol)
	if seed == nil {
		return nil, domain.ErrStockNotFound
	}
	return seed, nil
}

func (s *Service) logTrade(symbol string, side domain.TradeType, shares int, price, total float64, now time.Time) (*domain.Trade, error) {
	trade := domain.Trade{
		ID:            uuid.NewString(),
		Symbol:        symbol,
		Type:          side,
		Shares:        shares,
		PricePerShare: price,
		TotalAmount:   total,
		CreatedAt:     now,
	}
	if err := s.db.InsertTrade(trade); err != nil {
		return nil, fmt.Errorf("log trade: %w", err)
	}

	balance, err := s.db.BankBalance()
	if err == nil {
		metrics.BankBalance.Set(balance)
	}
	metrics.TradesExecuted.WithLabelValues(string(side)).Inc()
	log.Printf("[market] %s %d %s @ $%.2f ($%.2f)", side, shares, symbol, price, total)
	return &trade, nil
}

// Position is one holding with its live valuation.
type Position struct {
	domain.Holding
	CurrentPrice float64 `json:"current_price"`
	MarketValue  float64 `json:"market_value"`
	GainLoss     float64 `json:"gain_loss"`
	GainLossPct  float64 `json:"gain_loss_pct"`
}

// Portfolio is the full investment view: cash, positions, recent trades.
type Portfolio struct {
	BankBalance float64        `json:"bank_balance"`
	Positions   []Position     `json:"positions"`
	TotalValue  float64        `json:"total_value"`
	Trades      []domain.Trade `json:"trades"`
}

// Portfolio assembles the investment view at now.
func (s *Service) Portfolio(now time.Time) (*Portfolio, error) {
	balance, err := s.db.BankBalance()
	if err != nil {
		return nil, fmt.Errorf("load balance: %w", err)
	}
	holdings, err := s.db.ListHoldings()
	if err != nil {
		return nil, fmt.Errorf("load holdings: %w", err)
	}
	trades, err := s.db.ListTrades(20)
	if err != nil {
		return nil, fmt.Errorf("load trades: %w", err)
	}

	p := &Portfolio{BankBalance: balance, Positions: []Position{}, Trades: trades}
	total := balance
	for _, h := range holdings {
		seed := catalog.StockBySymbol(h.Symbol)
		if seed == nil {
			continue // delisted, should not happen with a static catalog
		}
		price := Price(*seed, now)
		value := round2(float64(h.Shares) * price)
		cost := float64(h.Shares) * h.AvgBuyPrice
		gain := round2(value - cost)
		pct := 0.0
		if cost > 0 {
			pct = round2(gain / cost * 100)
		}
		p.Positions = append(p.Positions, Position{
			Holding:      h,
			CurrentPrice: price,
			MarketValue:  value,
			GainLoss:     gain,
			GainLossPct:  pct,
		})
		total += value
	}
	p.TotalValue = math.Round(total*100) / 100
	return p, nil
}
