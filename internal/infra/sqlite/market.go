package sqlite

import (
	"database/sql"
	"time"

	"github.com/benjisbeans/kapaiputea-app/internal/domain"
)

// ─── Holdings ───────────────────────────────────────────────────────────────

// Holding returns the position for one symbol, or nil when none is held.
func (d *DB) Holding(symbol string) (*domain.Holding, error) {
	row := d.db.QueryRow(
		`SELECT symbol, shares, avg_buy_price FROM holdings WHERE symbol = ?`, symbol,
	)
	return scanHolding(row)
}

// ListHoldings returns every open position, ordered by symbol.
func (d *DB) ListHoldings() ([]domain.Holding, error) {
	rows, err := d.db.Query(
		`SELECT symbol, shares, avg_buy_price FROM holdings ORDER BY symbol`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Holding
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	return out, rows.Err()
}

// UpsertHolding inserts or replaces the position for a symbol.
func (d *DB) UpsertHolding(h domain.Holding) error {
	_, err := d.db.Exec(
		`INSERT INTO holdings (symbol, shares, avg_buy_price) VALUES (?, ?, ?)
		 ON CONFLICT(symbol) DO UPDATE SET shares=excluded.shares, avg_buy_price=excluded.avg_buy_price`,
		h.Symbol, h.Shares, h.AvgBuyPrice,
	)
	return err
}

// DeleteHolding removes a fully-sold position.
func (d *DB) DeleteHolding(symbol string) error {
	_, err := d.db.Exec(`DELETE FROM holdings WHERE symbol = ?`, symbol)
	return err
}

func scanHolding(s scanner) (*domain.Holding, error) {
	var h domain.Holding
	err := s.Scan(&h.Symbol, &h.Shares, &h.AvgBuyPrice)
	if err == sql.ErrNoRows {
		return nil, nil // Not held, no error
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// ─── Trade Log ──────────────────────────────────────────────────────────────

// InsertTrade appends one executed trade to the log.
func (d *DB) InsertTrade(t domain.Trade) error {
	_, err := d.db.Exec(
		`INSERT INTO trades (id, symbol, type, shares, price_per_share, total_amount, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Symbol, string(t.Type), t.Shares, t.PricePerShare, t.TotalAmount, t.CreatedAt.Unix(),
	)
	return err
}

// ListTrades returns the most recent trades, newest first.
func (d *DB) ListTrades(limit int) ([]domain.Trade, error) {
	rows, err := d.db.Query(
		`SELECT id, symbol, type, shares, price_per_share, total_amount, created_at
		 FROM trades ORDER BY created_at DESC, id LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Trade
	for rows.Next() {
		var t domain.Trade
		var typ string
		var at int64
		if err := rows.Scan(&t.ID, &t.Symbol, &typ, &t.Shares, &t.PricePerShare, &t.TotalAmount, &at); err != nil {
			return nil, err
		}
		t.Type = domain.TradeType(typ)
		t.CreatedAt = time.Unix(at, 0)
		out = append(out, t)
	}
	return out, rows.Err()
}
