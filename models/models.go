package models

// ProgressRecord tracks how far a user got in a single course.
// The JSON field is named "id" because clients treat the record as the course itself.
type ProgressRecord struct {
	CourseID int64   `json:"id"`
	Progress float64 `json:"progress"`
}

// User is the persisted user document of the file-backed store.
// The password is stored verbatim; responses must go through Sanitized.
type User struct {
	ID             int64            `json:"id"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Password       string           `json:"password,omitempty"`
	Courses        []ProgressRecord `json:"courses"`
	ProfilePicture string           `json:"profilePicture,omitempty"`
}

// Sanitized returns a copy of the user with the password stripped.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// Course is a course in the catalog.
type Course struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Image       string `json:"image,omitempty"`
}
