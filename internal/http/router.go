package http

import (
	"github.com/gin-gonic/gin"
	"github.com/labelgrid/labelgrid/internal/http/controller"
	"github.com/labelgrid/labelgrid/internal/http/middleware"
)

// Controllers bundles the catalog API controllers for route registration.
type Controllers struct {
	Base     *controller.Controller
	Owner    *controller.OwnerController
	Product  *controller.ProductController
	Template *controller.TemplateController
	Import   *controller.ImportController
	Label    *controller.LabelController
}

// InitRouter registers every catalog API route on the given engine. All
// data routes require the owner id header; ping does not.
func InitRouter(server *gin.Engine, ctr Controllers) *gin.Engine {
	// Apply recovery middleware globally to prevent panics from crashing the server
	server.Use(middleware.Recovery())
	server.Use(middleware.Logger())
	server.Use(middleware.CORS())

	server.GET("/ping", ctr.Base.Ping)

	// Registration happens before an owner id exists
	server.POST("/owners", ctr.Owner.RegisterOwner)

	owned := server.Group("/", middleware.RequireOwner())
	owned.GET("/owners/me", ctr.Owner.GetOwner)

	// Product endpoints
	products := owned.Group("/products")
	{
		products.POST("", ctr.Product.CreateProduct)
		products.GET("", ctr.Product.ListProducts)
		products.GET("/:id", ctr.Product.GetProduct)
		products.PUT("/:id", ctr.Product.UpdateProduct)
		products.DELETE("/:id", ctr.Product.DeleteProduct)
		products.POST("/import", ctr.Import.ImportProducts)
	}

	// Template endpoints
	templates := owned.Group("/templates")
	{
		templates.POST("", ctr.Template.CreateTemplate)
		templates.GET("", ctr.Template.ListTemplates)
		templates.PUT("/:id", ctr.Template.UpdateTemplate)
		templates.DELETE("/:id", ctr.Template.DeleteTemplate)
	}

	// Label design session endpoints
	sessions := owned.Group("/labels/sessions")
	{
		sessions.POST("", ctr.Label.CreateSession)
		sessions.DELETE("/:sid", ctr.Label.DeleteSession)
		sessions.GET("/:sid/placements", ctr.Label.ListPlacements)
		sessions.POST("/:sid/placements", ctr.Label.AddPlacement)
		sessions.PATCH("/:sid/placements/:pid", ctr.Label.UpdatePlacement)
		sessions.DELETE("/:sid/placements/:pid", ctr.Label.RemovePlacement)
		sessions.DELETE("/:sid/placements", ctr.Label.ClearSheet)
		sessions.POST("/:sid/arrange", ctr.Label.Arrange)
		sessions.GET("/:sid/export", ctr.Label.ExportSheet)
	}

	return server
}
