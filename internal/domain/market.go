package domain

import "time"

// ─── Virtual Stock Types ────────────────────────────────────────────────────

// StockSeed fully determines a virtual stock's price curve. There is no
// stored price history; every quote derives from these three fields and a
// calendar date.
type StockSeed struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Sector     string  `json:"sector"`
	Emoji      string  `json:"emoji"`
	BasePrice  float64 `json:"base_price"`
	Volatility float64 `json:"volatility"`
}

// Quote is a stock's derived state for one day.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

// TradeType is the side of a virtual trade.
type TradeType string

const (
	TradeBuy  TradeType = "buy"
	TradeSell TradeType = "sell"
)

// Holding is a learner's position in one stock.
type Holding struct {
	Symbol      string  `json:"symbol"`
	Shares      int     `json:"shares"`
	AvgBuyPrice float64 `json:"avg_buy_price"`
}

// Trade is one executed virtual trade.
type Trade struct {
	ID            string    `json:"id"`
	Symbol        string    `json:"symbol"`
	Type          TradeType `json:"type"`
	Shares        int       `json:"shares"`
	PricePerShare float64   `json:"price_per_share"`
	TotalAmount   float64   `json:"total_amount"`
	CreatedAt     time.Time `json:"created_at"`
}
