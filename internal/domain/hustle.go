package domain

import "time"

// ─── Virtual Business Types ─────────────────────────────────────────────────

// BusinessType is a startable side-hustle template.
type BusinessType struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Emoji       string  `json:"emoji"`
	Description string  `json:"description"`
	BaseRevenue float64 `json:"base_revenue"`
	BaseCost    float64 `json:"base_cost"`
}

// Upgrade is a purchasable business improvement. LevelCosts holds the price
// for each repeat purchase; past the last index the upgrade is maxed.
type Upgrade struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Emoji        string    `json:"emoji"`
	Description  string    `json:"description"`
	RevenueBoost float64   `json:"revenue_boost"`
	CostIncrease float64   `json:"cost_increase"`
	LevelCosts   []float64 `json:"level_costs"`
}

// BusinessState is the persisted state of a learner's business.
// Upgrades is an append-only list of applied upgrade ids; the count of one
// id is that upgrade's current level.
type BusinessState struct {
	BusinessType    string    `json:"business_type"`
	RevenuePerHour  float64   `json:"revenue_per_hour"`
	CostPerHour     float64   `json:"cost_per_hour"`
	LastCollectedAt time.Time `json:"last_collected_at"`
	TotalEarned     float64   `json:"total_earned"`
	BusinessLevel   int       `json:"business_level"`
	Upgrades        []string  `json:"upgrades"`
}

// PendingIncome is the accrued-but-uncollected income for a business.
type PendingIncome struct {
	Income       float64 `json:"income"`
	HoursElapsed float64 `json:"hours_elapsed"`
}
