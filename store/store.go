package store

import (
	"errors"

	"github.com/learnhub-io/learnhub/models"
)

var (
	// ErrUserNotFound is returned when no user with the given id or email exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrCourseNotFound is returned when a course is missing from the catalog
	// or from a user's progress records.
	ErrCourseNotFound = errors.New("course not found")
	// ErrDuplicateEmail is returned when an email is already taken, compared case-insensitively.
	ErrDuplicateEmail = errors.New("email already in use")
)

// UserUpdate carries a partial user update. Nil fields are left untouched.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
}

// CourseUpdate carries a partial course update. Nil fields are left untouched.
type CourseUpdate struct {
	Title       *string
	Description *string
	Content     *string
	Image       *string
}

// Store is the persistence boundary of the file-backed variant. Implementations
// decide how state is kept; the filestore rewrites a JSON document on every
// mutation, a transactional store can be dropped in without touching the
// handlers.
type Store interface {
	CreateUser(name, email, password string) (models.User, error)
	GetUser(id int64) (models.User, error)
	FindUserByEmail(email string) (models.User, error)
	ListUsers() ([]models.User, error)
	UpdateUser(id int64, upd UserUpdate) (models.User, error)
	SetProfilePicture(id int64, path string) (models.User, error)
	UpdateProgress(userID, courseID int64, progress float64) error

	CreateCourse(upd CourseUpdate) (models.Course, error)
	GetCourse(id int64) (models.Course, error)
	ListCourses() ([]models.Course, error)
	UpdateCourse(id int64, upd CourseUpdate) (models.Course, error)
}
