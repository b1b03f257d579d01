// Package market implements the deterministic virtual stock market.
// Prices are pure functions of (symbol, base price, volatility, calendar
// day), so every node derives the same quote for the same day with no
// external feed and no stored history.
package market

import (
	"fmt"
	"math"
	"time"

	"github.com/benjisbeans/kapaiputea-app/internal/domain"
)

const msPerDay = 1000 * 60 * 60 * 24

// hashString is a 31x rolling hash over the string's code points with
// signed 32-bit wraparound, returned as an absolute value.
func hashString(s string) int32 {
	var hash int32
	for _, r := range s {
		hash = (hash << 5) - hash + int32(r)
	}
	if hash < 0 {
		hash = -hash
	}
	return hash
}

// dayNumber converts a time to a whole-day index since the Unix epoch.
func dayNumber(t time.Time) int64 {
	return int64(math.Floor(float64(t.UnixMilli()) / msPerDay))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// priceOnDay computes the price for one epoch-day index.
func priceOnDay(seed domain.StockSeed, day int64) float64 {
	symSeed := float64(hashString(seed.Symbol))

	// Three overlapping waves at different frequencies for natural-looking
	// movement, plus per-day micro-noise and a slow upward drift.
	wave1 := math.Sin(float64(day)*0.05+symSeed*0.01) * 0.12
	wave2 := math.Sin(float64(day)*0.15+symSeed*0.03) * 0.06
	wave3 := math.Sin(float64(day)*0.4+symSeed*0.07) * 0.03

	dayHash := hashString(fmt.Sprintf("%s-%d", seed.Symbol, day))
	noise := float64(dayHash%100-50) / 1000 // -0.05 to +0.05

	drift := float64(day) * 0.00008

	change := (wave1+wave2+wave3+noise)*seed.Volatility + drift

	price := seed.BasePrice * (1 + change)
	return round2(math.Max(price, 0.01))
}

// Price returns the stock's price on the given date.
func Price(seed domain.StockSeed, date time.Time) float64 {
	return priceOnDay(seed, dayNumber(date))
}

// DailyChange returns the absolute and percentage move against the prior
// day, both rounded to two decimal places.
func DailyChange(seed domain.StockSeed, date time.Time) (change, changePercent float64) {
	day := dayNumber(date)
	today := priceOnDay(seed, day)
	yesterday := priceOnDay(seed, day-1)

	change = today - yesterday
	changePercent = change / yesterday * 100
	return round2(change), round2(changePercent)
}

// PriceHistory returns the last days prices ending at date, oldest first.
func PriceHistory(seed domain.StockSeed, date time.Time, days int) []float64 {
	day := dayNumber(date)
	prices := make([]float64, 0, days)
	for i := int64(days - 1); i >= 0; i-- {
		prices = append(prices, priceOnDay(seed, day-i))
	}
	return prices
}

// QuoteFor derives the full quote for one stock on a date.
func QuoteFor(seed domain.StockSeed, date time.Time) domain.Quote {
	change, pct := DailyChange(seed, date)
	return domain.Quote{
		Symbol:        seed.Symbol,
		Price:         Price(seed, date),
		Change:        change,
		ChangePercent: pct,
	}
}
