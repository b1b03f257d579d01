package hustle_test

import (
	"errors"
	"testing"
	"time"

	"github.com/benjisbeans/kapaiputea-app/internal/app/hustle"
	"github.com/benjisbeans/kapaiputea-app/internal/domain"
	"github.com/benjisbeans/kapaiputea-app/internal/infra/sqlite"
)

var start = time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)

// ═══════════════════════════════════════════════════════════════════════════
// Accrual Tests
// ═══════════════════════════════════════════════════════════════════════════

func biz(rev, cost float64, last time.Time) domain.BusinessState {
	return domain.BusinessState{
		BusinessType:    "food-truck",
		RevenuePerHour:  rev,
		CostPerHour:     cost,
		LastCollectedAt: last,
		BusinessLevel:   1,
	}
}

func TestPendingIncome(t *testing.T) {
	cases := []struct {
		name      string
		b         domain.BusinessState
		at        time.Time
		wantMoney float64
		wantHours float64
	}{
		{
			name:      "five hours of food truck",
			b:         biz(50, 10, start),
			at:        start.Add(5 * time.Hour),
			wantMoney: 200, // (50-10) * 5
			wantHours: 5,
		},
		{
			name:      "caps at twenty four hours",
			b:         biz(50, 10, start),
			at:        start.Add(72 * time.Hour),
			wantMoney: 960, // (50-10) * 24
			wantHours: 24,
		},
		{
			name:      "unprofitable business clamps to zero",
			b:         biz(10, 50, start),
			at:        start.Add(10 * time.Hour),
			wantMoney: 0,
			wantHours: 10,
		},
		{
			name:      "fractional hours round to cents",
			b:         biz(50, 10, start),
			at:        start.Add(90 * time.Minute),
			wantMoney: 60, // 40 * 1.5
			wantHours: 1.5,
		},
		{
			name:      "clock skew reads as nothing pending",
			b:         biz(50, 10, start),
			at:        start.Add(-time.Hour),
			wantMoney: 0,
			wantHours: 0,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := hustle.PendingIncomeAt(c.b, c.at)
			if got.Income != c.wantMoney {
				t.Errorf("income = %v, want %v", got.Income, c.wantMoney)
			}
			if got.HoursElapsed != c.wantHours {
				t.Errorf("hours = %v, want %v", got.HoursElapsed, c.wantHours)
			}
		})
	}
}

func TestUpgradeLevel(t *testing.T) {
	applied := []string{"marketing", "staff", "marketing", "marketing"}
	if got := hustle.UpgradeLevel(applied, "marketing"); got != 3 {
		t.Errorf("marketing level = %d, want 3", got)
	}
	if got := hustle.UpgradeLevel(applied, "branding"); got != 0 {
		t.Errorf("branding level = %d, want 0", got)
	}
	if got := hustle.UpgradeLevel(nil, "marketing"); got != 0 {
		t.Errorf("nil list level = %d, want 0", got)
	}
}

func TestUpgradeCost(t *testing.T) {
	u := domain.Upgrade{ID: "marketing", LevelCosts: []float64{500, 1500, 4000}}

	if cost, err := hustle.UpgradeCost(u, 0); err != nil || cost != 500 {
		t.Errorf("level 0 = %v/%v", cost, err)
	}
	if cost, err := hustle.UpgradeCost(u, 2); err != nil || cost != 4000 {
		t.Errorf("level 2 = %v/%v", cost, err)
	}
	if _, err := hustle.UpgradeCost(u, 3); !errors.Is(err, domain.ErrUpgradeMaxed) {
		t.Errorf("level 3 err = %v, want ErrUpgradeMaxed", err)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Service Tests
// ═══════════════════════════════════════════════════════════════════════════

func testService(t *testing.T) (*hustle.Service, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return hustle.NewService(db), db
}

func TestStart(t *testing.T) {
	svc, db := testService(t)

	b, err := svc.Start("food-truck", start)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if b.RevenuePerHour != 50 || b.CostPerHour != 10 {
		t.Errorf("rates = %v/%v", b.RevenuePerHour, b.CostPerHour)
	}
	if b.BusinessLevel != 1 {
		t.Errorf("level = %d, want 1", b.BusinessLevel)
	}

	stored, _ := db.Business()
	if stored == nil || stored.BusinessType != "food-truck" {
		t.Errorf("stored business = %+v", stored)
	}
	if len(stored.Upgrades) != 0 {
		t.Errorf("fresh business has upgrades: %v", stored.Upgrades)
	}
}

func TestStart_OnlyOne(t *testing.T) {
	svc, _ := testService(t)
	if _, err := svc.Start("food-truck", start); err != nil {
		t.Fatalf("first start: %v", err)
	}
	_, err := svc.Start("lawn-care", start)
	if !errors.Is(err, domain.ErrBusinessExists) {
		t.Fatalf("err = %v, want ErrBusinessExists", err)
	}
}

func TestStart_UnknownType(t *testing.T) {
	svc, _ := testService(t)
	_, err := svc.Start("crypto-mine", start)
	if !errors.Is(err, domain.ErrUnknownBusinessType) {
		t.Fatalf("err = %v, want ErrUnknownBusinessType", err)
	}
}

func TestCollect(t *testing.T) {
	svc, db := testService(t)
	_, _ = svc.Start("food-truck", start)

	later := start.Add(5 * time.Hour)
	res, err := svc.Collect(later)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if res.Collected != 200 {
		t.Errorf("collected = %v, want 200", res.Collected)
	}
	if res.BankBalance != sqlite.StartingBankBalance+200 {
		t.Errorf("balance = %v", res.BankBalance)
	}
	if !res.Business.LastCollectedAt.Equal(later) {
		t.Errorf("clock not reset: %v", res.Business.LastCollectedAt)
	}
	if res.Business.TotalEarned != 200 {
		t.Errorf("total earned = %v", res.Business.TotalEarned)
	}

	// Immediately collecting again banks nothing
	res, err = svc.Collect(later)
	if err != nil {
		t.Fatalf("second collect: %v", err)
	}
	if res.Collected != 0 {
		t.Errorf("second collect = %v, want 0", res.Collected)
	}

	balance, _ := db.BankBalance()
	if balance != sqlite.StartingBankBalance+200 {
		t.Errorf("final balance = %v", balance)
	}
}

func TestCollect_NoBusiness(t *testing.T) {
	svc, _ := testService(t)
	_, err := svc.Collect(start)
	if !errors.Is(err, domain.ErrNoBusiness) {
		t.Fatalf("err = %v, want ErrNoBusiness", err)
	}
}

func TestUpgrade(t *testing.T) {
	svc, db := testService(t)
	_, _ = svc.Start("food-truck", start)

	res, err := svc.Upgrade("marketing", start)
	if err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	if res.Cost != 500 {
		t.Errorf("cost = %v, want 500", res.Cost)
	}
	if res.BankBalance != sqlite.StartingBankBalance-500 {
		t.Errorf("balance = %v", res.BankBalance)
	}
	// Marketing: +20 revenue, no cost increase
	if res.Business.RevenuePerHour != 70 || res.Business.CostPerHour != 10 {
		t.Errorf("rates = %v/%v", res.Business.RevenuePerHour, res.Business.CostPerHour)
	}
	if res.Business.BusinessLevel != 2 {
		t.Errorf("level = %d, want 2", res.Business.BusinessLevel)
	}

	stored, _ := db.Business()
	if len(stored.Upgrades) != 1 || stored.Upgrades[0] != "marketing" {
		t.Errorf("upgrades = %v", stored.Upgrades)
	}
}

func TestUpgrade_RepeatPurchasesClimbTheCostLadder(t *testing.T) {
	svc, _ := testService(t)
	_, _ = svc.Start("tutoring", start)

	res1, err := svc.Upgrade("marketing", start)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	res2, err := svc.Upgrade("marketing", start)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if res1.Cost != 500 || res2.Cost != 1500 {
		t.Errorf("costs = %v, %v; want 500, 1500", res1.Cost, res2.Cost)
	}

	// Third level costs 4000 and the balance is down to 8000
	res3, err := svc.Upgrade("marketing", start)
	if err != nil {
		t.Fatalf("third: %v", err)
	}
	if res3.Cost != 4000 {
		t.Errorf("third cost = %v", res3.Cost)
	}

	// Maxed out
	_, err = svc.Upgrade("marketing", start)
	if !errors.Is(err, domain.ErrUpgradeMaxed) {
		t.Fatalf("err = %v, want ErrUpgradeMaxed", err)
	}
}

func TestUpgrade_InsufficientFunds(t *testing.T) {
	svc, db := testService(t)
	_, _ = svc.Start("food-truck", start)
	_ = db.SetBankBalance(100)

	_, err := svc.Upgrade("staff", start)
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	balance, _ := db.BankBalance()
	if balance != 100 {
		t.Errorf("balance changed on rejected upgrade: %v", balance)
	}
}

func TestUpgrade_Unknown(t *testing.T) {
	svc, _ := testService(t)
	_, _ = svc.Start("food-truck", start)
	_, err := svc.Upgrade("rocket-fuel", start)
	if !errors.Is(err, domain.ErrUnknownUpgrade) {
		t.Fatalf("err = %v, want ErrUnknownUpgrade", err)
	}
}

func TestStatus(t *testing.T) {
	svc, _ := testService(t)

	st, err := svc.Status(start)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st.Business != nil {
		t.Errorf("business before start: %+v", st.Business)
	}
	if st.BankBalance != sqlite.StartingBankBalance {
		t.Errorf("balance = %v", st.BankBalance)
	}

	_, _ = svc.Start("lawn-care", start)
	st, _ = svc.Status(start.Add(2 * time.Hour))
	if st.Business == nil {
		t.Fatal("business missing after start")
	}
	if st.Pending.Income != 70 { // (40-5) * 2
		t.Errorf("pending = %v, want 70", st.Pending.Income)
	}
}
