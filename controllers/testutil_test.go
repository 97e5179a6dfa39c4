package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Farhan2001M/ecp-admin/config"
	"github.com/Farhan2001M/ecp-admin/models"
)

// setupTestDB gives each test a fresh in-memory database wired into the
// package-level connection the handlers use.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateModels(db))

	config.DB = db
	return db
}

// newTestRouter registers the admin routes the way the routes package does,
// without importing it (the routes package imports this one).
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	admin := router.Group("/v1/admin")
	{
		admin.GET("/dashboard", GetDashboard)

		admin.POST("/categories", CreateCategory)
		admin.GET("/categories", GetCategories)
		admin.GET("/categories/:id", GetCategoryDetails)
		admin.PUT("/categories/:id", UpdateCategory)
		admin.DELETE("/categories/:id", DeleteCategory)
		admin.PUT("/categories/:id/update-sale", UpdateCategorySale)

		admin.POST("/products", CreateProduct)
		admin.GET("/products", GetProducts)
		admin.GET("/products/:id", GetProductDetails)
		admin.PUT("/products/:id", UpdateProduct)
		admin.PATCH("/products/:id/stock", UpdateProductStock)
		admin.DELETE("/products/:id", DeleteProduct)

		admin.GET("/catalog/export/excel", DownloadCatalogExcel)
		admin.GET("/catalog/export/pdf", DownloadCatalogPDF)
	}

	return router
}

// performRequest sends a JSON request through the router and decodes the
// standard response envelope.
func performRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), "response body: %s", w.Body.String())
	return w, envelope
}

// createTestCategory seeds a category directly through the database.
func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := models.Category{Name: name, Active: true}
	require.NoError(t, db.Create(&category).Error)
	return &category
}

// createTestProduct seeds a product directly through the database.
func createTestProduct(t *testing.T, db *gorm.DB, categoryID uint, name string, price float64, stock int) *models.Product {
	t.Helper()

	product := models.Product{
		Name:       name,
		CategoryID: categoryID,
		Price:      price,
		Stock:      stock,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

// responseData unwraps the data object of a success envelope.
func responseData(t *testing.T, envelope map[string]interface{}) map[string]interface{} {
	t.Helper()

	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok, "envelope has no data object: %v", envelope)
	return data
}

// paginatedData unwraps the inner data object of a paginated envelope.
func paginatedData(t *testing.T, envelope map[string]interface{}) map[string]interface{} {
	t.Helper()

	inner, ok := responseData(t, envelope)["data"].(map[string]interface{})
	require.True(t, ok, "paginated envelope has no inner data object: %v", envelope)
	return inner
}
