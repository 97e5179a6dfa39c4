package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Farhan2001M/ecp-admin/models"
)

func productBody(categoryID uint, name string, price float64) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"category_id": categoryID,
		"price":       price,
	}
}

func TestCreateProduct(t *testing.T) {
	t.Run("creates a product with generated SKU and ordered media", func(t *testing.T) {
		db := setupTestDB(t)
		router := newTestRouter()
		category := createTestCategory(t, db, "Coffee")

		body := productBody(category.ID, "House Blend", 12.50)
		body["brand"] = "Roastery"
		body["stock"] = 8
		body["images"] = []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}

		w, envelope := performRequest(t, router, http.MethodPost, "/v1/admin/products", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		payload := responseData(t, envelope)["product"].(map[string]interface{})
		assert.Equal(t, "House Blend", payload["name"])
		assert.True(t, strings.HasPrefix(payload["sku"].(string), "SKU-"))
		assert.Equal(t, true, payload["in_stock"])
		assert.Equal(t, []interface{}{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}, payload["images"])
		assert.Equal(t, "Coffee", payload["category"])
	})

	t.Run("explicit SKU is uppercased and must be unique", func(t *testing.T) {
		db := setupTestDB(t)
		router := newTestRouter()
		category := createTestCategory(t, db, "Coffee")

		body := productBody(category.ID, "House Blend", 12.50)
		body["sku"] = "hb-001"
		w, envelope := performRequest(t, router, http.MethodPost, "/v1/admin/products", body)
		require.Equal(t, http.StatusCreated, w.Code)
		payload := responseData(t, envelope)["product"].(map[string]interface{})
		assert.Equal(t, "HB-001", payload["sku"])

		body = productBody(category.ID, "Other Blend", 10.00)
		body["sku"] = "HB-001"
		w, _ = performRequest(t, router, http.MethodPost, "/v1/admin/products", body)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown category returns 400", func(t *testing.T) {
		setupTestDB(t)
		router := newTestRouter()

		w, _ := performRequest(t, router, http.MethodPost, "/v1/admin/products", productBody(999, "Orphan", 5.00))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects invalid numeric fields", func(t *testing.T) {
		db := setupTestDB(t)
		router := newTestRouter()
		category := createTestCategory(t, db, "Coffee")

		body := productBody(category.ID, "Bad Stock", 12.50)
		body["stock"] = -1
		w, _ := performRequest(t, router, http.MethodPost, "/v1/admin/products", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		body = productBody(category.ID, "Bad Rating", 12.50)
		body["ratings"] = 5.5
		w, _ = performRequest(t, router, http.MethodPost, "/v1/admin/products", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("updates fields and replaces media", func(t *testing.T) {
		db := setupTestDB(t)
		router := newTestRouter()
		category := createTestCategory(t, db, "Coffee")
		product := createTestProduct(t, db, category.ID, "House Blend", 12.50, 8)

		body := productBody(category.ID, "House Blend Dark", 13.00)
		body["stock"] = 0
		body["images"] = []string{"https://cdn.example.com/new.jpg"}

		w, envelope := performRequest(t, router, http.MethodPut, fmt.Sprintf("/v1/admin/products/%d", product.ID), body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		payload := responseData(t, envelope)["product"].(map[string]interface{})
		assert.Equal(t, "House Blend Dark", payload["name"])
		assert.Equal(t, 13.0, payload["price"])
		assert.Equal(t, false, payload["in_stock"])
		assert.Equal(t, []interface{}{"https://cdn.example.com/new.jpg"}, payload["images"])
	})

	t.Run("changing SKU to another product's returns 409", func(t *testing.T) {
		db := setupTestDB(t)
		router := newTestRouter()
		category := createTestCategory(t, db, "Coffee")
		first := createTestProduct(t, db, category.ID, "First", 10.00, 1)
		second := createTestProduct(t, db, category.ID, "Second", 11.00, 1)

		var taken models.Product
		require.NoError(t, db.First(&taken, first.ID).Error)

		body := productBody(category.ID, "Second", 11.00)
		body["sku"] = taken.SKU
		w, _ := performRequest(t, router, http.MethodPut, fmt.Sprintf("/v1/admin/products/%d", second.ID), body)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown product returns 404", func(t *testing.T) {
		db := setupTestDB(t)
		router := newTestRouter()
		category := createTestCategory(t, db, "Coffee")

		w, _ := performRequest(t, router, http.MethodPut, "/v1/admin/products/999", productBody(category.ID, "Ghost", 1.00))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateProductStock(t *testing.T) {
	t.Run("setting stock rederives the in-stock flag", func(t *testing.T) {
		db := setupTestDB(t)
		router := newTestRouter()
		category := createTestCategory(t, db, "Coffee")
		product := createTestProduct(t, db, category.ID, "House Blend", 12.50, 8)

		w, envelope := performRequest(t, router, http.MethodPatch, fmt.Sprintf("/v1/admin/products/%d/stock", product.ID), map[string]interface{}{"stock": 0})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		payload := responseData(t, envelope)["product"].(map[string]interface{})
		assert.Equal(t, 0.0, payload["stock"])
		assert.Equal(t, false, payload["in_stock"])

		w, envelope = performRequest(t, router, http.MethodPatch, fmt.Sprintf("/v1/admin/products/%d/stock", product.ID), map[string]interface{}{"stock": 3})
		require.Equal(t, http.StatusOK, w.Code)
		payload = responseData(t, envelope)["product"].(map[string]interface{})
		assert.Equal(t, true, payload["in_stock"])
	})

	t.Run("negative stock returns 400", func(t *testing.T) {
		db := setupTestDB(t)
		router := newTestRouter()
		category := createTestCategory(t, db, "Coffee")
		product := createTestProduct(t, db, category.ID, "House Blend", 12.50, 8)

		w, _ := performRequest(t, router, http.MethodPatch, fmt.Sprintf("/v1/admin/products/%d/stock", product.ID), map[string]interface{}{"stock": -2})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 8, func() int {
			var p models.Product
			require.NoError(t, db.First(&p, product.ID).Error)
			return p.Stock
		}())
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("deletes the product and its media", func(t *testing.T) {
		db := setupTestDB(t)
		router := newTestRouter()
		category := createTestCategory(t, db, "Coffee")
		product := createTestProduct(t, db, category.ID, "House Blend", 12.50, 8)
		require.NoError(t, db.Create(&models.ProductImage{ProductID: product.ID, URL: "https://cdn.example.com/a.jpg"}).Error)

		w, _ := performRequest(t, router, http.MethodDelete, fmt.Sprintf("/v1/admin/products/%d", product.ID), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var productCount, imageCount int64
		require.NoError(t, db.Model(&models.Product{}).Count(&productCount).Error)
		require.NoError(t, db.Model(&models.ProductImage{}).Count(&imageCount).Error)
		assert.Zero(t, productCount)
		assert.Zero(t, imageCount)
	})
}

func TestGetProducts(t *testing.T) {
	t.Run("active category sale is reflected in sale pricing", func(t *testing.T) {
		db := setupTestDB(t)
		router := newTestRouter()
		category := createTestCategory(t, db, "Coffee")
		createTestProduct(t, db, category.ID, "House Blend", 100.00, 8)

		start := time.Now().Add(-time.Hour)
		end := time.Now().Add(24 * time.Hour)
		require.NoError(t, category.ScheduleSale(start, end, 25))
		require.NoError(t, category.StartSaleNow())
		require.NoError(t, db.Save(category).Error)

		w, envelope := performRequest(t, router, http.MethodGet, "/v1/admin/products", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		products := paginatedData(t, envelope)["products"].([]interface{})
		require.Len(t, products, 1)
		payload := products[0].(map[string]interface{})
		assert.Equal(t, 100.0, payload["price"])
		assert.Equal(t, 75.0, payload["sale_price"])
		assert.Equal(t, true, payload["on_sale"])
	})

	t.Run("shared expired sale completes once across the listing", func(t *testing.T) {
		db := setupTestDB(t)
		router := newTestRouter()
		category := createTestCategory(t, db, "Coffee")
		createTestProduct(t, db, category.ID, "House Blend", 100.00, 8)
		createTestProduct(t, db, category.ID, "Dark Roast", 80.00, 4)

		pastStart := time.Now().Add(-72 * time.Hour).Truncate(time.Second)
		pastEnd := time.Now().Add(-time.Hour).Truncate(time.Second)
		require.NoError(t, category.ScheduleSale(pastStart, pastEnd, 25))
		require.NoError(t, category.StartSaleNow())
		category.SaleHistory = nil
		require.NoError(t, db.Save(category).Error)

		w, envelope := performRequest(t, router, http.MethodGet, "/v1/admin/products", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var count int64
		require.NoError(t, db.Model(&models.SaleHistoryEntry{}).Where("category_id = ?", category.ID).Count(&count).Error)
		assert.EqualValues(t, 1, count, "one expiry, one history entry, regardless of product count")

		products := paginatedData(t, envelope)["products"].([]interface{})
		require.Len(t, products, 2)
		for _, raw := range products {
			payload := raw.(map[string]interface{})
			assert.Equal(t, false, payload["on_sale"])
			assert.Equal(t, payload["price"], payload["sale_price"])
		}
	})

	t.Run("search and sorting", func(t *testing.T) {
		db := setupTestDB(t)
		router := newTestRouter()
		category := createTestCategory(t, db, "Coffee")
		createTestProduct(t, db, category.ID, "Dark Roast", 15.00, 2)
		createTestProduct(t, db, category.ID, "Light Roast", 10.00, 5)
		createTestProduct(t, db, category.ID, "Decaf", 12.00, 1)

		w, envelope := performRequest(t, router, http.MethodGet, "/v1/admin/products?search=roast&sort=price&order=desc", nil)
		require.Equal(t, http.StatusOK, w.Code)

		products := paginatedData(t, envelope)["products"].([]interface{})
		require.Len(t, products, 2)
		assert.Equal(t, "Dark Roast", products[0].(map[string]interface{})["name"])
		assert.Equal(t, "Light Roast", products[1].(map[string]interface{})["name"])
	})

	t.Run("category filter", func(t *testing.T) {
		db := setupTestDB(t)
		router := newTestRouter()
		coffee := createTestCategory(t, db, "Coffee")
		tea := createTestCategory(t, db, "Tea")
		createTestProduct(t, db, coffee.ID, "House Blend", 12.50, 8)
		createTestProduct(t, db, tea.ID, "Earl Grey", 8.00, 4)

		w, envelope := performRequest(t, router, http.MethodGet, fmt.Sprintf("/v1/admin/products?category_id=%d", tea.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		products := paginatedData(t, envelope)["products"].([]interface{})
		require.Len(t, products, 1)
		assert.Equal(t, "Earl Grey", products[0].(map[string]interface{})["name"])
	})
}
