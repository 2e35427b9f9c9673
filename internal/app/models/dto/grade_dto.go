package dto

import "github.com/campushub/registrar/internal/app/models"

// UpdateGradesRequest represents a partial grade update. A nil field means
// "leave the stored value unchanged"; a present field overwrites it. Presence
// is carried by the pointer, not by inspecting the raw payload.
type UpdateGradesRequest struct {
	PrelimsGrade  *float64 `json:"prelims_grade" binding:"omitempty,min=0,max=100"`
	MidtermsGrade *float64 `json:"midterms_grade" binding:"omitempty,min=0,max=100"`
	FinalsGrade   *float64 `json:"finals_grade" binding:"omitempty,min=0,max=100"`
}

// GradeResponse is the serialized view of an enrollment with its derived average
type GradeResponse struct {
	ID            int64    `json:"id"`
	StudentID     int64    `json:"student_id"`
	SubjectID     int64    `json:"subject_id"`
	PrelimsGrade  *float64 `json:"prelims_grade"`
	MidtermsGrade *float64 `json:"midterms_grade"`
	FinalsGrade   *float64 `json:"finals_grade"`
	AverageGrade  *float64 `json:"average_grade"`
}

// NewGradeResponse builds the response view for an enrollment, computing the
// derived average.
func NewGradeResponse(enrollment *models.Enrollment) *GradeResponse {
	if enrollment == nil {
		return nil
	}

	return &GradeResponse{
		ID:            enrollment.ID,
		StudentID:     enrollment.StudentID,
		SubjectID:     enrollment.SubjectID,
		PrelimsGrade:  enrollment.PrelimsGrade,
		MidtermsGrade: enrollment.MidtermsGrade,
		FinalsGrade:   enrollment.FinalsGrade,
		AverageGrade:  enrollment.AverageGrade(),
	}
}

// NewGradeResponses maps a list of enrollments preserving order
func NewGradeResponses(enrollments []*models.Enrollment) []*GradeResponse {
	responses := make([]*GradeResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		responses = append(responses, NewGradeResponse(enrollment))
	}
	return responses
}
