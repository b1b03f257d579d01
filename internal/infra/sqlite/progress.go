package sqlite

import (
	"time"

	"github.com/benjisbeans/kapaiputea-app/internal/domain"
)

// ─── Lesson & Module Progress ───────────────────────────────────────────────

// RecordLessonCompletion marks a lesson completed. Returns false when the
// lesson was already completed (the insert is idempotent).
func (d *DB) RecordLessonCompletion(lessonID, moduleSlug string, at time.Time) (bool, error) {
	res, err := d.db.Exec(
		`INSERT OR IGNORE INTO lesson_completions (lesson_id, module_slug, completed_at)
		 VALUES (?, ?, ?)`,
		lessonID, moduleSlug, at.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// LessonCompleted reports whether a lesson has been completed.
func (d *DB) LessonCompleted(lessonID string) (bool, error) {
	var n int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM lesson_completions WHERE lesson_id = ?`, lessonID,
	).Scan(&n)
	return n > 0, err
}

// CountLessonsCompleted returns the all-time lesson completion count.
func (d *DB) CountLessonsCompleted() (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM lesson_completions`).Scan(&n)
	return n, err
}

// CountLessonsCompletedOn counts lessons completed on the given calendar day
// (local time).
func (d *DB) CountLessonsCompletedOn(day time.Time) (int, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	var n int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM lesson_completions WHERE completed_at >= ? AND completed_at < ?`,
		start.Unix(), end.Unix(),
	).Scan(&n)
	return n, err
}

// CountLessonsInModule counts completed lessons within one module.
func (d *DB) CountLessonsInModule(moduleSlug string) (int, error) {
	var n int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM lesson_completions WHERE module_slug = ?`, moduleSlug,
	).Scan(&n)
	return n, err
}

// RecordModuleCompletion marks a module completed. Returns false when the
// module was already recorded.
func (d *DB) RecordModuleCompletion(moduleSlug string, at time.Time) (bool, error) {
	res, err := d.db.Exec(
		`INSERT OR IGNORE INTO module_completions (module_slug, completed_at) VALUES (?, ?)`,
		moduleSlug, at.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// CountModulesCompleted returns the all-time module completion count.
func (d *DB) CountModulesCompleted() (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM module_completions`).Scan(&n)
	return n, err
}

// ─── Badges ─────────────────────────────────────────────────────────────────

// UnlockBadge records a badge as earned. Returns false when already earned.
func (d *DB) UnlockBadge(badgeID string, at time.Time) (bool, error) {
	res, err := d.db.Exec(
		`INSERT OR IGNORE INTO earned_badges (badge_id, earned_at) VALUES (?, ?)`,
		badgeID, at.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// EarnedBadgeIDs returns the set of earned badge ids.
func (d *DB) EarnedBadgeIDs() (map[string]bool, error) {
	rows, err := d.db.Query(`SELECT badge_id FROM earned_badges`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	earned := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		earned[id] = true
	}
	return earned, rows.Err()
}

// ListEarnedBadges returns earned badges ordered by unlock time.
func (d *DB) ListEarnedBadges() ([]domain.EarnedBadge, error) {
	rows, err := d.db.Query(
		`SELECT badge_id, earned_at FROM earned_badges ORDER BY earned_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.EarnedBadge
	for rows.Next() {
		var b domain.EarnedBadge
		var at int64
		if err := rows.Scan(&b.BadgeID, &at); err != nil {
			return nil, err
		}
		b.EarnedAt = time.Unix(at, 0)
		out = append(out, b)
	}
	return out, rows.Err()
}

// ─── XP Ledger ──────────────────────────────────────────────────────────────

// InsertXPTransaction appends one row to the XP ledger.
func (d *DB) InsertXPTransaction(tx domain.XPTransaction) error {
	_, err := d.db.Exec(
		`INSERT INTO xp_transactions (id, amount, source, reference_id, description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.Amount, string(tx.Source), tx.ReferenceID, tx.Description, tx.CreatedAt.Unix(),
	)
	return err
}

// ListXPTransactions returns the most recent ledger rows, newest first.
func (d *DB) ListXPTransactions(limit int) ([]domain.XPTransaction, error) {
	rows, err := d.db.Query(
		`SELECT id, amount, source, reference_id, description, created_at
		 FROM xp_transactions ORDER BY created_at DESC, id LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.XPTransaction
	for rows.Next() {
		var tx domain.XPTransaction
		var source string
		var at int64
		if err := rows.Scan(&tx.ID, &tx.Amount, &source, &tx.ReferenceID, &tx.Description, &at); err != nil {
			return nil, err
		}
		tx.Source = domain.XPSource(source)
		tx.CreatedAt = time.Unix(at, 0)
		out = append(out, tx)
	}
	return out, rows.Err()
}
