package dto

// CreateSubjectRequest represents a catalog subject creation request
type CreateSubjectRequest struct {
	Code        string `json:"code" binding:"required"`
	Description string `json:"description" binding:"required"`
	Unit        int    `json:"unit" binding:"required,min=1"`
}
