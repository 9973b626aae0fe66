package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/learnhub-io/learnhub/models"
)

// The canonical course list lives in the courses table; unlike the file-backed
// variant it is decoupled from users and needs no progress fan-out.

func (db *DB) ListCourses(ctx context.Context) ([]models.Course, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, description, content, image FROM courses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Content, &c.Image); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (db *DB) GetCourse(ctx context.Context, id int64) (models.Course, error) {
	var c models.Course
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, description, content, image FROM courses WHERE id = $1`, id).
		Scan(&c.ID, &c.Title, &c.Description, &c.Content, &c.Image)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Course{}, ErrNotFound
	}
	if err != nil {
		return models.Course{}, fmt.Errorf("failed to query course: %w", err)
	}
	return c, nil
}
