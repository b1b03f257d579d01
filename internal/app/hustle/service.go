package hustle

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/benjisbeans/kapaiputea-app/internal/domain"
	"github.com/benjisbeans/kapaiputea-app/internal/infra/catalog"
	"github.com/benjisbeans/kapaiputea-app/internal/infra/metrics"
	"github.com/benjisbeans/kapaiputea-app/internal/infra/sqlite"
)

// Service runs the side-hustle lifecycle: start, accrue, collect, upgrade.
type Service struct {
	db *sqlite.DB
}

// NewService creates a hustle service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// Status is the business view with its live accrual.
type Status struct {
	Business    *domain.BusinessState `json:"business"`
	Pending     domain.PendingIncome  `json:"pending"`
	BankBalance float64               `json:"bank_balance"`
}

// Status returns the current business, its pending income at now, and the
// bank balance. Business is nil when none has been started.
func (s *Service) Status(now time.Time) (*Status, error) {
	balance, err := s.db.BankBalance()
	if err != nil {
		return nil, fmt.Errorf("load balance: %w", err)
	}
	b, err := s.db.Business()
	if err != nil {
		return nil, fmt.Errorf("load business: %w", err)
	}
	st := &Status{Business: b, BankBalance: balance}
	if b != nil {
		st.Pending = PendingIncomeAt(*b, now)
	}
	return st, nil
}

// Start opens a business of the given type. Only one business can exist;
// starting a second fails with domain.ErrBusinessExists.
func (s *Service) Start(businessType string, now time.Time) (*domain.BusinessState, error) {
	bt := catalog.BusinessTypeByID(businessType)
	if bt == nil {
		return nil, domain.ErrUnknownBusinessType
	}

	existing, err := s.db.Business()
	if err != nil {
		return nil, fmt.Errorf("load business: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrBusinessExists
	}

	b := domain.BusinessState{
		BusinessType:    bt.ID,
		RevenuePerHour:  bt.BaseRevenue,
		CostPerHour:     bt.BaseCost,
		LastCollectedAt: now,
		BusinessLevel:   1,
		Upgrades:        []string{},
	}
	if err := s.db.SaveBusiness(b); err != nil {
		return nil, fmt.Errorf("save business: %w", err)
	}

	log.Printf("[hustle] started %s %s", bt.Emoji, bt.Name)
	return &b, nil
}

// CollectResult reports one collection.
type CollectResult struct {
	Business    domain.BusinessState `json:"business"`
	Collected   float64              `json:"collected"`
	BankBalance float64              `json:"bank_balance"`
}

// Collect banks the pending income and resets the accrual clock. Collecting
// with nothing pending is valid and banks zero.
func (s *Service) Collect(now time.Time) (*CollectResult, error) {
	b, err := s.db.Business()
	if err != nil {
		return nil, fmt.Errorf("load business: %w", err)
	}
	if b == nil {
		return nil, domain.ErrNoBusiness
	}

	pending := PendingIncomeAt(*b, now)

	balance, err := s.db.BankBalance()
	if err != nil {
		return nil, fmt.Errorf("load balance: %w", err)
	}
	balance = math.Round((balance+pending.Income)*100) / 100
	if err := s.db.SetBankBalance(balance); err != nil {
		return nil, fmt.Errorf("credit balance: %w", err)
	}

	b.TotalEarned = math.Round((b.TotalEarned+pending.Income)*100) / 100
	b.LastCollectedAt = now
	if err := s.db.SaveBusiness(*b); err != nil {
		return nil, fmt.Errorf("save business: %w", err)
	}

	metrics.HustleIncomeCollected.Add(pending.Income)
	metrics.BankBalance.Set(balance)
	log.Printf("[hustle] collected $%.2f (%.1fh)", pending.Income, pending.HoursElapsed)

	return &CollectResult{Business: *b, Collected: pending.Income, BankBalance: balance}, nil
}

// UpgradeResult reports one upgrade purchase.
type UpgradeResult struct {
	Business    domain.BusinessState `json:"business"`
	Cost        float64              `json:"cost"`
	BankBalance float64              `json:"bank_balance"`
}

// Upgrade buys the next level of an upgrade, debiting the bank and boosting
// the business's revenue and cost rates.
func (s *Service) Upgrade(upgradeID string, now time.Time) (*UpgradeResult, error) {
	u := catalog.UpgradeByID(upgradeID)
	if u == nil {
		return nil, domain.ErrUnknownUpgrade
	}

	b, err := s.db.Business()
	if err != nil {
		return nil, fmt.Errorf("load business: %w", err)
	}
	if b == nil {
		return nil, domain.ErrNoBusiness
	}

	level := UpgradeLevel(b.Upgrades, u.ID)
	cost, err := UpgradeCost(*u, level)
	if err != nil {
		return nil, err
	}

	balance, err := s.db.BankBalance()
	if err != nil {
		return nil, fmt.Errorf("load balance: %w", err)
	}
	if balance < cost {
		return nil, domain.ErrInsufficientFunds
	}
	balance = math.Round((balance-cost)*100) / 100
	if err := s.db.SetBankBalance(balance); err != nil {
		return nil, fmt.Errorf("debit balance: %w", err)
	}

	b.Upgrades = append(b.Upgrades, u.ID)
	b.RevenuePerHour += u.RevenueBoost
	b.CostPerHour += u.CostIncrease
	b.BusinessLevel++
	if err := s.db.SaveBusiness(*b); err != nil {
		return nil, fmt.Errorf("save business: %w", err)
	}

	metrics.BankBalance.Set(balance)
	log.Printf("[hustle] upgrade %s -> level %d ($%.2f)", u.ID, level+1, cost)

	return &UpgradeResult{Business: *b, Cost: cost, BankBalance: balance}, nil
}
