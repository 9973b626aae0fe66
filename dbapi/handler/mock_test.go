package handler

import (
	"context"
	"strings"

	"github.com/learnhub-io/learnhub/database"
	"github.com/learnhub-io/learnhub/models"
)

// mockStore is an in-memory stand-in for *database.DB. Setting failWith makes
// every operation fail, simulating a lost database connection.
type mockStore struct {
	users       []database.User
	courses     []models.Course
	levels      []database.Level
	submissions []database.Submission
	articles    []database.KnowledgeArticle
	failWith    error
	nextUserID  int64
	nextSubID   int64
}

var _ Store = (*mockStore)(nil)

func newMockStore() *mockStore {
	return &mockStore{
		courses: []models.Course{
			{ID: 1, Title: "Introduction to Programming"},
			{ID: 2, Title: "Web Development Basics"},
		},
		levels: []database.Level{
			{ID: 1, Title: "FizzBuzz", Difficulty: "easy", Position: 1},
			{ID: 2, Title: "Binary Search", Difficulty: "medium", Position: 2},
		},
		articles: []database.KnowledgeArticle{
			{ID: 1, Title: "Getting started", Tags: "basics"},
			{ID: 2, Title: "Debugging tips", Tags: "tooling"},
		},
		nextUserID: 1,
		nextSubID:  1,
	}
}

func (m *mockStore) EmailExists(_ context.Context, email string) (bool, error) {
	if m.failWith != nil {
		return false, m.failWith
	}
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStore) CreateUser(_ context.Context, email, name, passwordHash string) (database.User, error) {
	if m.failWith != nil {
		return database.User{}, m.failWith
	}
	u := database.User{ID: m.nextUserID, Email: email, Name: name, PasswordHash: passwordHash}
	m.nextUserID++
	m.users = append(m.users, u)
	return u, nil
}

func (m *mockStore) GetUserByEmail(_ context.Context, email string) (database.User, error) {
	if m.failWith != nil {
		return database.User{}, m.failWith
	}
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return database.User{}, database.ErrNotFound
}

func (m *mockStore) ListCourses(_ context.Context) ([]models.Course, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.courses, nil
}

func (m *mockStore) GetCourse(_ context.Context, id int64) (models.Course, error) {
	if m.failWith != nil {
		return models.Course{}, m.failWith
	}
	for _, c := range m.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Course{}, database.ErrNotFound
}

func (m *mockStore) ListLevels(_ context.Context) ([]database.Level, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.levels, nil
}

func (m *mockStore) GetLevel(_ context.Context, id int64) (database.Level, error) {
	if m.failWith != nil {
		return database.Level{}, m.failWith
	}
	for _, l := range m.levels {
		if l.ID == id {
			return l, nil
		}
	}
	return database.Level{}, database.ErrNotFound
}

func (m *mockStore) CreateSubmission(_ context.Context, userID, levelID int64, code string) (database.Submission, error) {
	if m.failWith != nil {
		return database.Submission{}, m.failWith
	}
	s := database.Submission{ID: m.nextSubID, UserID: userID, LevelID: levelID, Code: code, Status: "submitted"}
	m.nextSubID++
	m.submissions = append(m.submissions, s)
	return s, nil
}

func (m *mockStore) ListSubmissionsForUser(_ context.Context, userID int64) ([]database.Submission, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []database.Submission{}
	for _, s := range m.submissions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockStore) ListArticles(_ context.Context, query string) ([]database.KnowledgeArticle, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if query == "" {
		return m.articles, nil
	}
	out := []database.KnowledgeArticle{}
	for _, a := range m.articles {
		if strings.Contains(strings.ToLower(a.Title), strings.ToLower(query)) ||
			strings.Contains(strings.ToLower(a.Tags), strings.ToLower(query)) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockStore) Ping(_ context.Context) error {
	return m.failWith
}
