package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/labelgrid/labelgrid/internal/http/middleware"
	"github.com/labelgrid/labelgrid/internal/model"
	"github.com/labelgrid/labelgrid/internal/repository"
	"github.com/labelgrid/labelgrid/internal/service"
)

// OwnerController handles HTTP requests for shop account operations.
type OwnerController struct {
	ownerService *service.OwnerService
}

// NewOwnerController creates a new OwnerController with the given owner service.
func NewOwnerController(ownerService *service.OwnerService) *OwnerController {
	return &OwnerController{
		ownerService: ownerService,
	}
}

// OwnerRequest represents the request body for registering an owner.
type OwnerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	ShopName string `json:"shop_name"`
}

// OwnerResponse represents the response body for an owner.
type OwnerResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	ShopName  string `json:"shop_name"`
	CreatedAt string `json:"created_at"`
}

// RegisterOwner handles the HTTP POST request for registering a shop account.
func (oc *OwnerController) RegisterOwner(c *gin.Context) {
	var req OwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := oc.ownerService.RegisterOwner(c.Request.Context(), service.OwnerInput{
		Email:    req.Email,
		ShopName: req.ShopName,
	})
	if err != nil {
		var uniqueErr *repository.UniqueConstraintError
		switch {
		case errors.As(err, &uniqueErr):
			c.JSON(http.StatusConflict, gin.H{"error": "an account with this email already exists"})
		case errors.Is(err, service.ErrInvalidOwner):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register owner"})
		}
		return
	}

	c.JSON(http.StatusCreated, toOwnerResponse(created))
}

// GetOwner handles the HTTP GET request for the calling owner's own account.
func (oc *OwnerController) GetOwner(c *gin.Context) {
	owner, err := oc.ownerService.GetOwner(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "owner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get owner"})
		return
	}

	c.JSON(http.StatusOK, toOwnerResponse(owner))
}

func toOwnerResponse(owner *model.Owner) OwnerResponse {
	return OwnerResponse{
		ID:        owner.ID.String(),
		Email:     owner.Email,
		ShopName:  owner.ShopName,
		CreatedAt: owner.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
