package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Lesson errors
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrAlreadyCompleted = errors.New("lesson already completed")

	// Trading errors
	ErrStockNotFound      = errors.New("stock not found")
	ErrInvalidTrade       = errors.New("invalid trade")
	ErrInsufficientFunds  = errors.New("not enough cash")
	ErrInsufficientShares = errors.New("not enough shares")

	// Business errors
	ErrNoBusiness          = errors.New("no business found")
	ErrBusinessExists      = errors.New("business already started")
	ErrUnknownBusinessType = errors.New("unknown business type")
	ErrUnknownUpgrade      = errors.New("unknown upgrade")
	ErrUpgradeMaxed        = errors.New("upgrade already at max level")
)
