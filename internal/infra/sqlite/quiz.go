package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/benjisbeans/kapaiputea-app/internal/domain"
)

// SaveQuizAnswers stores the onboarding answers, one row per question.
// Re-submitting replaces earlier answers.
func (d *DB) SaveQuizAnswers(answers domain.QuizAnswers, at time.Time) error {
	for q, a := range answers {
		raw, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("marshal answer %s: %w", q, err)
		}
		_, err = d.db.Exec(
			`INSERT INTO quiz_answers (question_id, answer, answered_at) VALUES (?, ?, ?)
			 ON CONFLICT(question_id) DO UPDATE SET answer=excluded.answer, answered_at=excluded.answered_at`,
			q, string(raw), at.Unix(),
		)
		if err != nil {
			return fmt.Errorf("save answer %s: %w", q, err)
		}
	}
	return nil
}

// QuizAnswers loads all stored onboarding answers.
func (d *DB) QuizAnswers() (domain.QuizAnswers, error) {
	rows, err := d.db.Query(`SELECT question_id, answer FROM quiz_answers`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := make(domain.QuizAnswers)
	for rows.Next() {
		var q, raw string
		if err := rows.Scan(&q, &raw); err != nil {
			return nil, err
		}
		var a domain.Answer
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			return nil, fmt.Errorf("unmarshal answer %s: %w", q, err)
		}
		answers[q] = a
	}
	return answers, rows.Err()
}
