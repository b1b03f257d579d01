package sqlite

import (
	"fmt"
	"strconv"
	"time"

	"github.com/benjisbeans/kapaiputea-app/internal/domain"
)

// StartingBankBalance is credited to a fresh profile before any activity.
const StartingBankBalance = 10000.0

// State keys for the single learner profile.
const (
	keyDisplayName     = "display_name"
	keyStream          = "stream"
	keyProfileTag      = "profile_tag"
	keyProfileTagEmoji = "profile_tag_emoji"
	keyOnboardingDone  = "onboarding_completed"
	keyXPTotal         = "xp_total"
	keyStreakCurrent   = "streak_current"
	keyStreakLongest   = "streak_longest"
	keyStreakLastDate  = "streak_last_date"
	keyBankBalance     = "bank_balance"
)

// Profile assembles the learner profile from the state KV plus the progress
// counters. Fresh databases return zero values and the starting balance.
func (d *DB) Profile() (domain.Profile, error) {
	var p domain.Profile

	get := func(key string) (string, error) {
		v, err := d.GetState(key)
		if err != nil {
			return "", fmt.Errorf("get %s: %w", key, err)
		}
		return v, nil
	}

	v, err := get(keyDisplayName)
	if err != nil {
		return p, err
	}
	p.DisplayName = v

	v, err = get(keyStream)
	if err != nil {
		return p, err
	}
	p.Stream = domain.Stream(v)

	v, err = get(keyProfileTag)
	if err != nil {
		return p, err
	}
	p.ProfileTag = v

	v, err = get(keyProfileTagEmoji)
	if err != nil {
		return p, err
	}
	p.ProfileTagEmoji = v

	v, err = get(keyOnboardingDone)
	if err != nil {
		return p, err
	}
	p.OnboardingCompleted = v == "1"

	v, err = get(keyXPTotal)
	if err != nil {
		return p, err
	}
	if v != "" {
		p.TotalXP, _ = strconv.Atoi(v)
	}

	v, err = get(keyStreakCurrent)
	if err != nil {
		return p, err
	}
	if v != "" {
		p.CurrentStreak, _ = strconv.Atoi(v)
	}

	v, err = get(keyStreakLongest)
	if err != nil {
		return p, err
	}
	if v != "" {
		p.LongestStreak, _ = strconv.Atoi(v)
	}

	v, err = get(keyStreakLastDate)
	if err != nil {
		return p, err
	}
	if v != "" {
		ts, _ := strconv.ParseInt(v, 10, 64)
		p.LastActivityDate = time.Unix(ts, 0)
	}

	v, err = get(keyBankBalance)
	if err != nil {
		return p, err
	}
	if v == "" {
		p.BankBalance = StartingBankBalance
	} else {
		p.BankBalance, _ = strconv.ParseFloat(v, 64)
	}

	p.LessonsCompleted, err = d.CountLessonsCompleted()
	if err != nil {
		return p, fmt.Errorf("count lessons: %w", err)
	}
	p.ModulesCompleted, err = d.CountModulesCompleted()
	if err != nil {
		return p, fmt.Errorf("count modules: %w", err)
	}

	return p, nil
}

// SetIdentity stores the onboarding outputs: name, stream, and persona tag.
func (d *DB) SetIdentity(displayName string, stream domain.Stream, tag domain.ProfileTag) error {
	pairs := map[string]string{
		keyDisplayName:     displayName,
		keyStream:          string(stream),
		keyProfileTag:      tag.Name,
		keyProfileTagEmoji: tag.Emoji,
	}
	for k, v := range pairs {
		if err := d.SetState(k, v); err != nil {
			return fmt.Errorf("set %s: %w", k, err)
		}
	}
	return nil
}

// SetOnboardingCompleted flips the onboarding flag.
func (d *DB) SetOnboardingCompleted(done bool) error {
	v := "0"
	if done {
		v = "1"
	}
	return d.SetState(keyOnboardingDone, v)
}

// AddXP adds a (possibly negative) delta to the XP total and returns the new
// total. The pool is single-writer, so read-modify-write is safe.
func (d *DB) AddXP(delta int) (int, error) {
	v, err := d.GetState(keyXPTotal)
	if err != nil {
		return 0, fmt.Errorf("get xp_total: %w", err)
	}
	total := 0
	if v != "" {
		total, _ = strconv.Atoi(v)
	}
	total += delta
	if total < 0 {
		total = 0
	}
	if err := d.SetState(keyXPTotal, strconv.Itoa(total)); err != nil {
		return 0, fmt.Errorf("set xp_total: %w", err)
	}
	return total, nil
}

// SaveStreak persists a streak snapshot.
func (d *DB) SaveStreak(s domain.StreakState) error {
	if err := d.SetState(keyStreakCurrent, strconv.Itoa(s.CurrentStreak)); err != nil {
		return fmt.Errorf("set streak_current: %w", err)
	}
	if err := d.SetState(keyStreakLongest, strconv.Itoa(s.LongestStreak)); err != nil {
		return fmt.Errorf("set streak_longest: %w", err)
	}
	last := ""
	if !s.LastActivityDate.IsZero() {
		last = strconv.FormatInt(s.LastActivityDate.Unix(), 10)
	}
	return d.SetState(keyStreakLastDate, last)
}

// BankBalance returns the current virtual-bank balance.
func (d *DB) BankBalance() (float64, error) {
	v, err := d.GetState(keyBankBalance)
	if err != nil {
		return 0, fmt.Errorf("get bank_balance: %w", err)
	}
	if v == "" {
		return StartingBankBalance, nil
	}
	bal, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parse bank_balance: %w", err)
	}
	return bal, nil
}

// SetBankBalance overwrites the virtual-bank balance.
func (d *DB) SetBankBalance(balance float64) error {
	return d.SetState(keyBankBalance, strconv.FormatFloat(balance, 'f', -1, 64))
}
