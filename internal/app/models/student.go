package models

// Student defines the student model based on the 'students' table. The email
// is the login key and is stored lower-cased; the password column holds a
// bcrypt hash and is never serialized.
type Student struct {
	ID       int64  `json:"id" db:"id" example:"1"`
	Name     string `json:"name" db:"name" example:"Jane Cruz"`
	Email    string `json:"email" db:"email" example:"jane.cruz@example.com"`
	Password string `json:"-" db:"password"`
	Course   string `json:"course" db:"course" example:"BS Computer Science"`

	// Relations (populated when needed)
	Subjects []*Subject `json:"subjects,omitempty"`
}
