package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Level is a practice level users can submit solutions against.
type Level struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Position    int    `json:"position"`
}

func (db *DB) ListLevels(ctx context.Context) ([]Level, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, description, difficulty, position FROM levels ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query levels: %w", err)
	}
	defer rows.Close()

	levels := []Level{}
	for rows.Next() {
		var l Level
		if err := rows.Scan(&l.ID, &l.Title, &l.Description, &l.Difficulty, &l.Position); err != nil {
			return nil, fmt.Errorf("failed to scan level: %w", err)
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}

func (db *DB) GetLevel(ctx context.Context, id int64) (Level, error) {
	var l Level
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, description, difficulty, position FROM levels WHERE id = $1`, id).
		Scan(&l.ID, &l.Title, &l.Description, &l.Difficulty, &l.Position)
	if errors.Is(err, pgx.ErrNoRows) {
		return Level{}, ErrNotFound
	}
	if err != nil {
		return Level{}, fmt.Errorf("failed to query level: %w", err)
	}
	return l, nil
}
