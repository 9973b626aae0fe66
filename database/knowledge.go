package database

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// KnowledgeArticle is an entry of the knowledge base.
type KnowledgeArticle struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tags      string    `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListArticles returns the knowledge base, optionally filtered by a
// case-insensitive literal match on title or tags.
func (db *DB) ListArticles(ctx context.Context, query string) ([]KnowledgeArticle, error) {
	stmt := `SELECT id, title, body, tags, created_at FROM knowledge_base`
	args := []any{}
	if query != "" {
		stmt += ` WHERE title ILIKE $1 OR tags ILIKE $1`
		args = append(args, "%"+escapeLikePattern(query)+"%")
	}
	stmt += ` ORDER BY created_at DESC`

	rows, err := db.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query knowledge base: %w", err)
	}
	defer rows.Close()

	articles := []KnowledgeArticle{}
	for rows.Next() {
		var a KnowledgeArticle
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.Tags, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// escapeLikePattern neutralizes LIKE metacharacters so user input matches
// literally instead of acting as a wildcard.
func escapeLikePattern(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
