package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/labelgrid/labelgrid/internal/http/middleware"
	"github.com/labelgrid/labelgrid/internal/label"
	"github.com/labelgrid/labelgrid/internal/repository"
	"github.com/labelgrid/labelgrid/internal/service"
)

// LabelController handles HTTP requests for label design sessions.
type LabelController struct {
	designService *service.DesignService
}

// NewLabelController creates a new LabelController with the given design service.
func NewLabelController(designService *service.DesignService) *LabelController {
	return &LabelController{
		designService: designService,
	}
}

// PlacementRequest represents the request body for adding a label to a sheet.
// The label rectangle comes from template_id when set, otherwise from the
// explicit width and height.
type PlacementRequest struct {
	ProductID  string  `json:"product_id" binding:"required"`
	TemplateID string  `json:"template_id"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}

// MovePlacementRequest represents the request body for moving or resizing a label.
type MovePlacementRequest struct {
	X      *float64 `json:"x" binding:"required"`
	Y      *float64 `json:"y" binding:"required"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
}

// ArrangeRequest represents the request body for the grid arrangement.
type ArrangeRequest struct {
	TemplateID string  `json:"template_id"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}

// PlacementResponse represents one placed label on the sheet.
type PlacementResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// CreateSession handles the HTTP POST request for starting a design session.
func (lc *LabelController) CreateSession(c *gin.Context) {
	sessionID := lc.designService.CreateSession(c.Request.Context(), middleware.OwnerID(c))
	c.JSON(http.StatusCreated, gin.H{"session_id": sessionID.String()})
}

// DeleteSession handles the HTTP DELETE request for discarding a session.
func (lc *LabelController) DeleteSession(c *gin.Context) {
	sessionID, ok := lc.sessionID(c)
	if !ok {
		return
	}

	if err := lc.designService.DeleteSession(c.Request.Context(), middleware.OwnerID(c), sessionID); err != nil {
		lc.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "session deleted"})
}

// AddPlacement handles the HTTP POST request for placing a product label.
func (lc *LabelController) AddPlacement(c *gin.Context) {
	sessionID, ok := lc.sessionID(c)
	if !ok {
		return
	}

	var req PlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	templateID, ok := lc.optionalTemplateID(c, req.TemplateID)
	if !ok {
		return
	}

	placement, err := lc.designService.AddPlacement(c.Request.Context(), middleware.OwnerID(c), sessionID, productID, templateID, req.Width, req.Height)
	if err != nil {
		lc.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPlacementResponse(*placement))
}

// UpdatePlacement handles the HTTP PATCH request for moving or resizing a label.
// A request without dimensions is a move; with dimensions it is a resize.
func (lc *LabelController) UpdatePlacement(c *gin.Context) {
	sessionID, ok := lc.sessionID(c)
	if !ok {
		return
	}

	placementID, err := uuid.Parse(c.Param("pid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid placement ID"})
		return
	}

	var req MovePlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerID := middleware.OwnerID(c)
	if req.Width > 0 && req.Height > 0 {
		err = lc.designService.ResizePlacement(c.Request.Context(), ownerID, sessionID, placementID, req.Width, req.Height, *req.X, *req.Y)
	} else {
		err = lc.designService.MovePlacement(c.Request.Context(), ownerID, sessionID, placementID, *req.X, *req.Y)
	}
	if err != nil {
		lc.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "placement updated"})
}

// RemovePlacement handles the HTTP DELETE request for one label.
func (lc *LabelController) RemovePlacement(c *gin.Context) {
	sessionID, ok := lc.sessionID(c)
	if !ok {
		return
	}

	placementID, err := uuid.Parse(c.Param("pid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid placement ID"})
		return
	}

	if err := lc.designService.RemovePlacement(c.Request.Context(), middleware.OwnerID(c), sessionID, placementID); err != nil {
		lc.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "placement removed"})
}

// ClearSheet handles the HTTP DELETE request for all labels on the sheet.
func (lc *LabelController) ClearSheet(c *gin.Context) {
	sessionID, ok := lc.sessionID(c)
	if !ok {
		return
	}

	if err := lc.designService.ClearSheet(c.Request.Context(), middleware.OwnerID(c), sessionID); err != nil {
		lc.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "sheet cleared"})
}

// ListPlacements handles the HTTP GET request for the session's sheet state.
func (lc *LabelController) ListPlacements(c *gin.Context) {
	sessionID, ok := lc.sessionID(c)
	if !ok {
		return
	}

	placements, err := lc.designService.Placements(c.Request.Context(), middleware.OwnerID(c), sessionID)
	if err != nil {
		lc.renderError(c, err)
		return
	}

	responses := make([]PlacementResponse, 0, len(placements))
	for _, p := range placements {
		responses = append(responses, toPlacementResponse(p))
	}

	c.JSON(http.StatusOK, gin.H{"placements": responses})
}

// Arrange handles the HTTP POST request for the grid arrangement.
func (lc *LabelController) Arrange(c *gin.Context) {
	sessionID, ok := lc.sessionID(c)
	if !ok {
		return
	}

	var req ArrangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	templateID, ok := lc.optionalTemplateID(c, req.TemplateID)
	if !ok {
		return
	}

	if err := lc.designService.ArrangeGrid(c.Request.Context(), middleware.OwnerID(c), sessionID, templateID, req.Width, req.Height); err != nil {
		lc.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "sheet arranged"})
}

// ExportSheet handles the HTTP GET request for the printable SVG document.
func (lc *LabelController) ExportSheet(c *gin.Context) {
	sessionID, ok := lc.sessionID(c)
	if !ok {
		return
	}

	out, err := lc.designService.ExportSheet(c.Request.Context(), middleware.OwnerID(c), sessionID)
	if err != nil {
		lc.renderError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/svg+xml", out)
}

func (lc *LabelController) sessionID(c *gin.Context) (uuid.UUID, bool) {
	sessionID, err := uuid.Parse(c.Param("sid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return uuid.Nil, false
	}
	return sessionID, true
}

func (lc *LabelController) optionalTemplateID(c *gin.Context, raw string) (*uuid.UUID, bool) {
	if raw == "" {
		return nil, true
	}

	templateID, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template ID"})
		return nil, false
	}
	return &templateID, true
}

// renderError maps design session errors onto the HTTP taxonomy.
func (lc *LabelController) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, repository.ErrNotFound),
		errors.Is(err, label.ErrPlacementNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSessionForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidTemplate),
		errors.Is(err, label.ErrEmptySheet):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func toPlacementResponse(p label.Placement) PlacementResponse {
	return PlacementResponse{
		ID:        p.ID.String(),
		ProductID: p.Product.ID.String(),
		Width:     p.Width,
		Height:    p.Height,
		X:         p.X,
		Y:         p.Y,
	}
}
