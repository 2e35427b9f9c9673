package models

// Subject represents an entry in the subject catalog. Code and description are
// both globally unique.
type Subject struct {
	ID          int64  `json:"id" db:"id" example:"1"`
	Code        string `json:"code" db:"code" example:"CS101"`
	Description string `json:"description" db:"description" example:"Introduction to Computing"`
	Unit        int    `json:"unit" db:"unit" example:"3"`
}
