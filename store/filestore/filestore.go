// Package filestore persists users and courses as two JSON documents on disk.
// Every operation reads the whole document fresh, edits it in memory and
// rewrites it entirely; there is no caching across requests. A missing or
// unparsable document counts as an empty dataset, write failures propagate.
package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/learnhub-io/learnhub/models"
	"github.com/learnhub-io/learnhub/store"
	"github.com/samber/lo"
)

const (
	usersFile   = "users.json"
	coursesFile = "courses.json"
)

// Store implements store.Store on top of two JSON documents.
// The mutex serializes the read-modify-write cycle within this process;
// without it two concurrent mutations race and one update is lost.
type Store struct {
	mu          sync.Mutex
	usersPath   string
	coursesPath string
}

var _ store.Store = (*Store)(nil)

// New creates the data directory if needed and returns a store over it.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &Store{
		usersPath:   filepath.Join(dataDir, usersFile),
		coursesPath: filepath.Join(dataDir, coursesFile),
	}, nil
}

// SeedDefaultCourses writes a starter catalog when no courses document exists
// yet, so a fresh deployment has something to register users against.
func (s *Store) SeedDefaultCourses() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.coursesPath); err == nil {
		return nil
	}
	defaults := []models.Course{
		{ID: 1, Title: "Introduction to Programming", Description: "Variables, control flow and functions from scratch.", Content: "## Welcome\nStart with the basics."},
		{ID: 2, Title: "Web Development Basics", Description: "HTML, CSS and the request/response cycle.", Content: "## The web\nHow browsers talk to servers."},
		{ID: 3, Title: "Databases 101", Description: "Tables, rows and your first queries.", Content: "## Data\nWhere state lives."},
	}
	log.Info("seeding default courses", "count", len(defaults), "file", s.coursesPath)
	return s.saveCourses(defaults)
}

func (s *Store) CreateUser(name, email, password string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.loadUsers()
	if _, taken := findByEmail(users, email); taken {
		return models.User{}, store.ErrDuplicateEmail
	}

	courses := s.loadCourses()
	user := models.User{
		ID:       nextUserID(users),
		Name:     name,
		Email:    email,
		Password: password, // stored verbatim, see design notes
		Courses: lo.Map(courses, func(c models.Course, _ int) models.ProgressRecord {
			return models.ProgressRecord{CourseID: c.ID, Progress: 0}
		}),
	}
	users = append(users, user)
	if err := s.saveUsers(users); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *Store) GetUser(id int64) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := lo.Find(s.loadUsers(), func(u models.User) bool { return u.ID == id })
	if !ok {
		return models.User{}, store.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) FindUserByEmail(email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := findByEmail(s.loadUsers(), email)
	if !ok {
		return models.User{}, store.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) ListUsers() ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadUsers(), nil
}

func (s *Store) UpdateUser(id int64, upd store.UserUpdate) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.loadUsers()
	idx := -1
	for i := range users {
		if users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.User{}, store.ErrUserNotFound
	}
	if upd.Email != nil {
		for _, other := range users {
			if other.ID != id && strings.EqualFold(other.Email, *upd.Email) {
				return models.User{}, store.ErrDuplicateEmail
			}
		}
		users[idx].Email = *upd.Email
	}
	if upd.Name != nil {
		users[idx].Name = *upd.Name
	}
	if upd.Password != nil {
		users[idx].Password = *upd.Password
	}
	if err := s.saveUsers(users); err != nil {
		return models.User{}, err
	}
	return users[idx], nil
}

func (s *Store) SetProfilePicture(id int64, path string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.loadUsers()
	for i := range users {
		if users[i].ID == id {
			users[i].ProfilePicture = path
			if err := s.saveUsers(users); err != nil {
				return models.User{}, err
			}
			return users[i], nil
		}
	}
	return models.User{}, store.ErrUserNotFound
}

func (s *Store) UpdateProgress(userID, courseID int64, progress float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.loadUsers()
	for i := range users {
		if users[i].ID != userID {
			continue
		}
		for j := range users[i].Courses {
			if users[i].Courses[j].CourseID == courseID {
				users[i].Courses[j].Progress = progress
				return s.saveUsers(users)
			}
		}
		return store.ErrCourseNotFound
	}
	return store.ErrUserNotFound
}

func (s *Store) CreateCourse(upd store.CourseUpdate) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	courses := s.loadCourses()
	course := models.Course{
		ID:          nextCourseID(courses),
		Title:       lo.FromPtr(upd.Title),
		Description: lo.FromPtr(upd.Description),
		Content:     lo.FromPtr(upd.Content),
		Image:       lo.FromPtr(upd.Image),
	}
	courses = append(courses, course)
	if err := s.saveCourses(courses); err != nil {
		return models.Course{}, err
	}

	// Every existing user starts the new course at zero progress. The user and
	// course documents must stay in sync.
	users := s.loadUsers()
	for i := range users {
		users[i].Courses = append(users[i].Courses, models.ProgressRecord{CourseID: course.ID, Progress: 0})
	}
	if err := s.saveUsers(users); err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func (s *Store) GetCourse(id int64) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	course, ok := lo.Find(s.loadCourses(), func(c models.Course) bool { return c.ID == id })
	if !ok {
		return models.Course{}, store.ErrCourseNotFound
	}
	return course, nil
}

func (s *Store) ListCourses() ([]models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadCourses(), nil
}

func (s *Store) UpdateCourse(id int64, upd store.CourseUpdate) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	courses := s.loadCourses()
	for i := range courses {
		if courses[i].ID != id {
			continue
		}
		if upd.Title != nil {
			courses[i].Title = *upd.Title
		}
		if upd.Description != nil {
			courses[i].Description = *upd.Description
		}
		if upd.Content != nil {
			courses[i].Content = *upd.Content
		}
		if upd.Image != nil {
			courses[i].Image = *upd.Image
		}
		if err := s.saveCourses(courses); err != nil {
			return models.Course{}, err
		}
		return courses[i], nil
	}
	return models.Course{}, store.ErrCourseNotFound
}

func (s *Store) loadUsers() []models.User {
	return loadDocument[models.User](s.usersPath)
}

func (s *Store) saveUsers(users []models.User) error {
	return saveDocument(s.usersPath, users)
}

func (s *Store) loadCourses() []models.Course {
	return loadDocument[models.Course](s.coursesPath)
}

func (s *Store) saveCourses(courses []models.Course) error {
	return saveDocument(s.coursesPath, courses)
}

// loadDocument reads a whole JSON array from disk. Missing or corrupt
// documents read as empty, never as an error.
func loadDocument[T any](path string) []T {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("failed to read document, treating as empty", "file", path, "error", err)
		}
		return []T{}
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Warn("failed to parse document, treating as empty", "file", path, "error", err)
		return []T{}
	}
	return items
}

func saveDocument[T any](path string, items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

func findByEmail(users []models.User, email string) (models.User, bool) {
	return lo.Find(users, func(u models.User) bool { return strings.EqualFold(u.Email, email) })
}

func nextUserID(users []models.User) int64 {
	var max int64
	for _, u := range users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max + 1
}

func nextCourseID(courses []models.Course) int64 {
	var max int64
	for _, c := range courses {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}
