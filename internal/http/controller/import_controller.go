package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/labelgrid/labelgrid/internal/http/middleware"
	"github.com/labelgrid/labelgrid/internal/service"
)

// ImportController handles bulk product spreadsheet uploads.
type ImportController struct {
	importService *service.ImportService
}

// NewImportController creates a new ImportController with the given import service.
func NewImportController(importService *service.ImportService) *ImportController {
	return &ImportController{
		importService: importService,
	}
}

// ImportProducts handles the HTTP POST request for a multipart .xlsx upload.
// The spreadsheet rides in the "file" form field.
func (ic *ImportController) ImportProducts(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open upload"})
		return
	}
	defer file.Close()

	result, err := ic.importService.ImportProducts(c.Request.Context(), middleware.OwnerID(c), file)
	if err != nil {
		if errors.Is(err, service.ErrEmptySpreadsheet) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid spreadsheet"})
		return
	}

	c.JSON(http.StatusOK, result)
}
