package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/benjisbeans/kapaiputea-app/internal/domain"
)

// Business returns the learner's business, or nil when none has been started.
func (d *DB) Business() (*domain.BusinessState, error) {
	row := d.db.QueryRow(
		`SELECT business_type, revenue_per_hour, cost_per_hour, last_collected_at,
		        total_earned, business_level, upgrades
		 FROM business WHERE id = 1`,
	)

	var b domain.BusinessState
	var lastCollected int64
	var upgrades string
	err := row.Scan(&b.BusinessType, &b.RevenuePerHour, &b.CostPerHour,
		&lastCollected, &b.TotalEarned, &b.BusinessLevel, &upgrades)
	if err == sql.ErrNoRows {
		return nil, nil // No business yet, no error
	}
	if err != nil {
		return nil, err
	}

	b.LastCollectedAt = time.Unix(lastCollected, 0)
	if err := json.Unmarshal([]byte(upgrades), &b.Upgrades); err != nil {
		return nil, fmt.Errorf("unmarshal upgrades: %w", err)
	}
	return &b, nil
}

// SaveBusiness inserts or replaces the single business row.
func (d *DB) SaveBusiness(b domain.BusinessState) error {
	upgrades := b.Upgrades
	if upgrades == nil {
		upgrades = []string{}
	}
	raw, err := json.Marshal(upgrades)
	if err != nil {
		return fmt.Errorf("marshal upgrades: %w", err)
	}

	_, err = d.db.Exec(
		`INSERT INTO business (id, business_type, revenue_per_hour, cost_per_hour,
		                       last_collected_at, total_earned, business_level, upgrades)
		 VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			business_type=excluded.business_type,
			revenue_per_hour=excluded.revenue_per_hour,
			cost_per_hour=excluded.cost_per_hour,
			last_collected_at=excluded.last_collected_at,
			total_earned=excluded.total_earned,
			business_level=excluded.business_level,
			upgrades=excluded.upgrades`,
		b.BusinessType, b.RevenuePerHour, b.CostPerHour,
		b.LastCollectedAt.Unix(), b.TotalEarned, b.BusinessLevel, string(raw),
	)
	return err
}
