package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campushub/registrar/internal/app/models/dto"
	"github.com/campushub/registrar/internal/app/services"
	"github.com/campushub/registrar/internal/middleware"
)

// StudentController handles the authenticated student surface: profile,
// enrollment and grades. The student identity always comes from the token,
// never from the request path.
type StudentController struct {
	studentService    *services.StudentService
	enrollmentService *services.EnrollmentService
	logger            zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(
	studentService *services.StudentService,
	enrollmentService *services.EnrollmentService,
	logger zerolog.Logger,
) *StudentController {
	return &StudentController{
		studentService:    studentService,
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

func studentIDFromContext(ctx *gin.Context) (int64, bool) {
	studentID, ok := middleware.StudentID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
	}
	return studentID, ok
}

func subjectIDFromPath(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid subject ID")
		errorDetail = errorDetail.WithDetails("Subject ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// GetSelf returns the authenticated student with their enrolled subjects
// @Summary Get own profile
// @Description Returns the authenticated student together with the subjects they are enrolled in
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student profile"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /student [get]
func (c *StudentController) GetSelf(ctx *gin.Context) {
	studentID, ok := studentIDFromContext(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetProfile(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// DeleteSelf deletes the authenticated student's account
// @Summary Delete own account
// @Description Deletes the student account and all its enrollments. Requires a fresh access token.
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse} "Account deleted"
// @Failure 401 {object} dto.ErrorResponse "Invalid, missing or non-fresh token"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /student [delete]
func (c *StudentController) DeleteSelf(ctx *gin.Context) {
	studentID, ok := studentIDFromContext(ctx)
	if !ok {
		return
	}

	if err := c.studentService.DeleteAccount(ctx.Request.Context(), studentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.MessageResponse{Message: "Your account has been successfully deleted."}))
}

// GetEnrolledSubject returns subject details for an enrolled subject
// @Summary Get an enrolled subject
// @Description Returns subject details only if the student is enrolled in it
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.APIResponse{data=models.Subject} "Subject"
// @Failure 400 {object} dto.ErrorResponse "Not enrolled in the subject"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /student/subject/{id} [get]
func (c *StudentController) GetEnrolledSubject(ctx *gin.Context) {
	studentID, ok := studentIDFromContext(ctx)
	if !ok {
		return
	}

	subjectID, ok := subjectIDFromPath(ctx)
	if !ok {
		return
	}

	subject, err := c.enrollmentService.GetEnrolledSubject(ctx.Request.Context(), studentID, subjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(subject))
}

// Enroll enrolls the student in a subject
// @Summary Enroll in a subject
// @Description Creates the enrollment linking the student to the subject, with all grades null
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Success 201 {object} dto.APIResponse{data=models.Enrollment} "Enrollment created"
// @Failure 400 {object} dto.ErrorResponse "Already enrolled in the subject"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /student/subject/{id} [post]
func (c *StudentController) Enroll(ctx *gin.Context) {
	studentID, ok := studentIDFromContext(ctx)
	if !ok {
		return
	}

	subjectID, ok := subjectIDFromPath(ctx)
	if !ok {
		return
	}

	enrollment, err := c.enrollmentService.Enroll(ctx.Request.Context(), studentID, subjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(enrollment))
}

// Unenroll removes the student's enrollment in a subject
// @Summary Unenroll from a subject
// @Description Removes the enrollment and the grades carried on it. Requires a fresh access token.
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse} "Unenrolled"
// @Failure 400 {object} dto.ErrorResponse "Not enrolled in the subject"
// @Failure 401 {object} dto.ErrorResponse "Invalid, missing or non-fresh token"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /student/subject/{id} [delete]
func (c *StudentController) Unenroll(ctx *gin.Context) {
	studentID, ok := studentIDFromContext(ctx)
	if !ok {
		return
	}

	subjectID, ok := subjectIDFromPath(ctx)
	if !ok {
		return
	}

	if err := c.enrollmentService.Unenroll(ctx.Request.Context(), studentID, subjectID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.MessageResponse{Message: "Subject was successfully unenrolled."}))
}

// GetGrades returns the student's grades for one subject
// @Summary Get grades for a subject
// @Description Returns the enrollment record with its grades and derived average
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.APIResponse{data=dto.GradeResponse} "Grades"
// @Failure 400 {object} dto.ErrorResponse "Not enrolled in the subject"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /student/subject/{id}/grades [get]
func (c *StudentController) GetGrades(ctx *gin.Context) {
	studentID, ok := studentIDFromContext(ctx)
	if !ok {
		return
	}

	subjectID, ok := subjectIDFromPath(ctx)
	if !ok {
		return
	}

	enrollment, err := c.enrollmentService.GetGrades(ctx.Request.Context(), studentID, subjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewGradeResponse(enrollment)))
}

// UpdateGrades partially updates the student's grades for one subject
// @Summary Update grades for a subject
// @Description Overwrites the provided grade fields and leaves the rest untouched
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Param request body dto.UpdateGradesRequest true "Grade fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.GradeResponse} "Updated grades"
// @Failure 400 {object} dto.ErrorResponse "Not enrolled or invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /student/subject/{id}/grades [put]
func (c *StudentController) UpdateGrades(ctx *gin.Context) {
	studentID, ok := studentIDFromContext(ctx)
	if !ok {
		return
	}

	subjectID, ok := subjectIDFromPath(ctx)
	if !ok {
		return
	}

	var req dto.UpdateGradesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	enrollment, err := c.enrollmentService.UpdateGrades(ctx.Request.Context(), studentID, subjectID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewGradeResponse(enrollment)))
}

// ListSubjects returns the subjects the student is enrolled in
// @Summary List enrolled subjects
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Subject} "Enrolled subjects"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing token"
// @Router /student/subjects [get]
func (c *StudentController) ListSubjects(ctx *gin.Context) {
	studentID, ok := studentIDFromContext(ctx)
	if !ok {
		return
	}

	subjects, err := c.enrollmentService.ListSubjects(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(subjects))
}

// ListAllGrades returns one grade record per enrolled subject
// @Summary List all grades
// @Description One entry per subject the student is enrolled in, in enrollment order
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.GradeResponse} "Grades per subject"
// @Failure 401 {object} dto.ErrorResponse "Invalid or missing token"
// @Router /student/subjects/grades [get]
func (c *StudentController) ListAllGrades(ctx *gin.Context) {
	studentID, ok := studentIDFromContext(ctx)
	if !ok {
		return
	}

	enrollments, err := c.enrollmentService.ListAllGrades(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewGradeResponses(enrollments)))
}
