package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/labelgrid/labelgrid/internal/http/middleware"
	"github.com/labelgrid/labelgrid/internal/model"
	"github.com/labelgrid/labelgrid/internal/repository"
	"github.com/labelgrid/labelgrid/internal/service"
)

// TemplateController handles HTTP requests for label template operations.
type TemplateController struct {
	templateService *service.TemplateService
}

// NewTemplateController creates a new TemplateController with the given template service.
func NewTemplateController(templateService *service.TemplateService) *TemplateController {
	return &TemplateController{
		templateService: templateService,
	}
}

// TemplateRequest represents the request body for creating or updating a template.
type TemplateRequest struct {
	Name   string  `json:"name" binding:"required"`
	Width  float64 `json:"width" binding:"required,gt=0"`
	Height float64 `json:"height" binding:"required,gt=0"`
}

// TemplateResponse represents the response body for a template.
type TemplateResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	CreatedAt string  `json:"created_at"`
}

// CreateTemplate handles the HTTP POST request for creating a new template.
func (tc *TemplateController) CreateTemplate(c *gin.Context) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := tc.templateService.CreateTemplate(c.Request.Context(), middleware.OwnerID(c), service.TemplateInput{
		Name:   req.Name,
		Width:  req.Width,
		Height: req.Height,
	})
	if err != nil {
		var uniqueErr *repository.UniqueConstraintError
		switch {
		case errors.As(err, &uniqueErr):
			c.JSON(http.StatusConflict, gin.H{"error": "a template with this name already exists"})
		case errors.Is(err, service.ErrInvalidTemplate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create template"})
		}
		return
	}

	c.JSON(http.StatusCreated, toTemplateResponse(created))
}

// ListTemplates handles the HTTP GET request for listing templates. Built-in
// templates are served when the owner has none stored.
func (tc *TemplateController) ListTemplates(c *gin.Context) {
	templates, err := tc.templateService.ListTemplates(c.Request.Context(), middleware.OwnerID(c), *repository.NewQuery())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list templates"})
		return
	}

	responses := make([]TemplateResponse, 0, len(templates))
	for _, template := range templates {
		responses = append(responses, toTemplateResponse(template))
	}

	c.JSON(http.StatusOK, gin.H{"templates": responses})
}

// UpdateTemplate handles the HTTP PUT request for replacing a template's fields.
func (tc *TemplateController) UpdateTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template ID"})
		return
	}

	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := tc.templateService.UpdateTemplate(c.Request.Context(), middleware.OwnerID(c), id, service.TemplateInput{
		Name:   req.Name,
		Width:  req.Width,
		Height: req.Height,
	})
	if err != nil {
		var uniqueErr *repository.UniqueConstraintError
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
		case errors.As(err, &uniqueErr):
			c.JSON(http.StatusConflict, gin.H{"error": "a template with this name already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update template"})
		}
		return
	}

	c.JSON(http.StatusOK, toTemplateResponse(updated))
}

// DeleteTemplate handles the HTTP DELETE request for deleting a template by ID.
func (tc *TemplateController) DeleteTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template ID"})
		return
	}

	if err := tc.templateService.DeleteTemplate(c.Request.Context(), middleware.OwnerID(c), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete template"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "template deleted successfully"})
}

func toTemplateResponse(template *model.LabelTemplate) TemplateResponse {
	return TemplateResponse{
		ID:        template.ID.String(),
		Name:      template.Name,
		Width:     template.Width,
		Height:    template.Height,
		CreatedAt: template.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
