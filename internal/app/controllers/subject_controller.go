package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campushub/registrar/internal/app/models/dto"
	"github.com/campushub/registrar/internal/app/services"
	"github.com/campushub/registrar/internal/middleware"
)

// SubjectController handles the subject catalog endpoints
type SubjectController struct {
	subjectService *services.SubjectService
	logger         zerolog.Logger
}

// NewSubjectController creates a new SubjectController
func NewSubjectController(subjectService *services.SubjectService, logger zerolog.Logger) *SubjectController {
	return &SubjectController{
		subjectService: subjectService,
		logger:         logger,
	}
}

// ListCatalog returns every subject in the catalog
// @Summary List subjects
// @Description Returns all subjects in the catalog ordered by ID
// @Tags subjects
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Subject} "Subjects"
// @Router /subjects [get]
func (c *SubjectController) ListCatalog(ctx *gin.Context) {
	subjects, err := c.subjectService.ListCatalog(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(subjects))
}

// GetSubject returns a single subject by ID
// @Summary Get a subject
// @Tags subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.APIResponse{data=models.Subject} "Subject"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /subject/{id} [get]
func (c *SubjectController) GetSubject(ctx *gin.Context) {
	subjectID, ok := subjectIDFromPath(ctx)
	if !ok {
		return
	}

	subject, err := c.subjectService.GetSubject(ctx.Request.Context(), subjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(subject))
}

// CreateSubject adds a subject to the catalog
// @Summary Create a subject
// @Tags subjects
// @Accept json
// @Produce json
// @Param request body dto.CreateSubjectRequest true "Subject details"
// @Success 201 {object} dto.APIResponse{data=models.Subject} "Created subject"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 409 {object} dto.ErrorResponse "Subject code already exists"
// @Router /subject [post]
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	subject, err := c.subjectService.CreateSubject(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(subject))
}

// DeleteSubject removes a subject from the catalog
// @Summary Delete a subject
// @Description Fails with a conflict if any student is enrolled in the subject
// @Tags subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse} "Subject deleted"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 409 {object} dto.ErrorResponse "Subject has active enrollments"
// @Router /subject/{id} [delete]
func (c *SubjectController) DeleteSubject(ctx *gin.Context) {
	subjectID, ok := subjectIDFromPath(ctx)
	if !ok {
		return
	}

	if err := c.subjectService.DeleteSubject(ctx.Request.Context(), subjectID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.MessageResponse{Message: "Subject was successfully deleted."}))
}
