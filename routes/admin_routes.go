package routes

import (
	"github.com/Farhan2001M/ecp-admin/controllers"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	{
		// Dashboard
		admin.GET("/dashboard", controllers.GetDashboard)

		// Category management
		admin.POST("/categories", controllers.CreateCategory)
		admin.GET("/categories", controllers.GetCategories)
		admin.GET("/categories/:id", controllers.GetCategoryDetails)
		admin.PUT("/categories/:id", controllers.UpdateCategory)
		admin.DELETE("/categories/:id", controllers.DeleteCategory)

		// Sale lifecycle
		admin.PUT("/categories/:id/update-sale", controllers.UpdateCategorySale)

		// Product management
		admin.POST("/products", controllers.CreateProduct)
		admin.GET("/products", controllers.GetProducts)
		admin.GET("/products/:id", controllers.GetProductDetails)
		admin.PUT("/products/:id", controllers.UpdateProduct)
		admin.PATCH("/products/:id/stock", controllers.UpdateProductStock)
		admin.DELETE("/products/:id", controllers.DeleteProduct)

		// Catalog export
		admin.GET("/catalog/export/excel", controllers.DownloadCatalogExcel)
		admin.GET("/catalog/export/pdf", controllers.DownloadCatalogPDF)
	}
}
