package database

import (
	"context"
	"fmt"
	"time"
)

// Submission is a user's solution attempt for a level.
type Submission struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	LevelID   int64     `json:"levelId"`
	Code      string    `json:"code"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func (db *DB) CreateSubmission(ctx context.Context, userID, levelID int64, code string) (Submission, error) {
	var s Submission
	err := db.pool.QueryRow(ctx,
		`INSERT INTO submissions (user_id, level_id, code) VALUES ($1, $2, $3)
		 RETURNING id, user_id, level_id, code, status, created_at`,
		userID, levelID, code).
		Scan(&s.ID, &s.UserID, &s.LevelID, &s.Code, &s.Status, &s.CreatedAt)
	if err != nil {
		return Submission{}, fmt.Errorf("failed to insert submission: %w", err)
	}
	return s, nil
}

func (db *DB) ListSubmissionsForUser(ctx context.Context, userID int64) ([]Submission, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, level_id, code, status, created_at
		 FROM submissions WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	submissions := []Submission{}
	for rows.Next() {
		var s Submission
		if err := rows.Scan(&s.ID, &s.UserID, &s.LevelID, &s.Code, &s.Status, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}
