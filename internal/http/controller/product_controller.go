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

// ProductController handles HTTP requests for product operations.
type ProductController struct {
	productService *service.ProductService
}

// NewProductController creates a new ProductController with the given product service.
func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// ProductRequest represents the request body for creating or updating a product.
type ProductRequest struct {
	BrandName      string  `json:"brand_name" binding:"required"`
	ProductName    string  `json:"product_name" binding:"required"`
	ProductNameEst string  `json:"product_name_est"`
	PacketSize     float64 `json:"packet_size" binding:"required,gt=0"`
	Unit           string  `json:"unit" binding:"required"`
	PacketPrice    float64 `json:"packet_price" binding:"required,gt=0"`
}

// ProductResponse represents the response body for a product.
type ProductResponse struct {
	ID             string  `json:"id"`
	BrandName      string  `json:"brand_name"`
	ProductName    string  `json:"product_name"`
	ProductNameEst string  `json:"product_name_est,omitempty"`
	PacketSize     float64 `json:"packet_size"`
	Unit           string  `json:"unit"`
	PacketPrice    float64 `json:"packet_price"`
	PricePerUnit   string  `json:"price_per_unit"`
	CompareUnit    string  `json:"compare_unit"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func (req ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		BrandName:      req.BrandName,
		ProductName:    req.ProductName,
		ProductNameEst: req.ProductNameEst,
		PacketSize:     req.PacketSize,
		Unit:           req.Unit,
		PacketPrice:    req.PacketPrice,
	}
}

// CreateProduct handles the HTTP POST request for creating a new product.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	createdProduct, err := pc.productService.CreateProduct(c.Request.Context(), middleware.OwnerID(c), req.toInput())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(createdProduct))
}

// GetProduct handles the HTTP GET request for fetching a single product.
func (pc *ProductController) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	product, err := pc.productService.GetProduct(c.Request.Context(), middleware.OwnerID(c), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

// UpdateProduct handles the HTTP PUT request for replacing a product's fields.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := pc.productService.UpdateProduct(c.Request.Context(), middleware.OwnerID(c), id, req.toInput())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		return
	}

	c.JSON(http.StatusOK, toProductResponse(updated))
}

// DeleteProduct handles the HTTP DELETE request for deleting a product by ID.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	if err := pc.productService.DeleteProduct(c.Request.Context(), middleware.OwnerID(c), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted successfully"})
}

// ListProductsRequest represents the query parameters for listing products.
type ListProductsRequest struct {
	Limit int32  `form:"limit"`
	Token string `form:"token"`
}

// ListProductsResponse represents the response body for listing products.
type ListProductsResponse struct {
	Products      []ProductResponse `json:"products"`
	NextPageToken string            `json:"next_page_token,omitempty"`
}

// ListProducts handles the HTTP GET request for listing products with pagination.
func (pc *ProductController) ListProducts(c *gin.Context) {
	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := repository.NewQuery()
	if err := query.ApplyPagination(req.Limit, req.Token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	products, err := pc.productService.ListProducts(c.Request.Context(), middleware.OwnerID(c), *query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}

	productResponses := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		productResponses = append(productResponses, toProductResponse(product))
	}

	response := ListProductsResponse{
		Products: productResponses,
	}

	// Generate next page token if we have results
	if len(products) > 0 {
		lastProduct := products[len(products)-1]
		paginator := repository.Paginator{
			LastID:        lastProduct.ID,
			LastCreatedAt: lastProduct.CreatedAt,
		}
		response.NextPageToken = paginator.Encode()
	}

	c.JSON(http.StatusOK, response)
}

func toProductResponse(product *model.Product) ProductResponse {
	return ProductResponse{
		ID:             product.ID.String(),
		BrandName:      product.BrandName,
		ProductName:    product.ProductName,
		ProductNameEst: product.ProductNameEst,
		PacketSize:     product.PacketSize,
		Unit:           product.Unit.String(),
		PacketPrice:    product.PacketPrice,
		PricePerUnit:   product.PricePerUnit,
		CompareUnit:    product.Unit.CompareUnit().String(),
		CreatedAt:      product.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:      product.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
