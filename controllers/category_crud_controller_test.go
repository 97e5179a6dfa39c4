package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Farhan2001M/ecp-admin/models"
)

func TestCreateCategory(t *testing.T) {
	t.Run("creates a category with ordered serving sizes", func(t *testing.T) {
		db := setupTestDB(t)
		router := newTestRouter()

		w, envelope := performRequest(t, router, http.MethodPost, "/v1/admin/categories", map[string]interface{}{
			"name":        "Coffee Beans",
			"description": "Whole and ground beans",
			"servings":    []string{"250g", "500g", "1kg"},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		payload := responseData(t, envelope)["category"].(map[string]interface{})
		assert.Equal(t, "Coffee Beans", payload["name"])
		assert.Equal(t, "Inactive", payload["saleStatus"])
		assert.Equal(t, []interface{}{"250g", "500g", "1kg"}, payload["servings"])

		var sizes []models.ServingSize
		require.NoError(t, db.Order("position ASC").Find(&sizes).Error)
		require.Len(t, sizes, 3)
		assert.Equal(t, "250g", sizes[0].Name)
		assert.Equal(t, 2, sizes[2].Position)
	})

	t.Run("duplicate name returns 409 regardless of case", func(t *testing.T) {
		db := setupTestDB(t)
		router := newTestRouter()
		createTestCategory(t, db, "Coffee Beans")

		w, _ := performRequest(t, router, http.MethodPost, "/v1/admin/categories", map[string]interface{}{
			"name": "coffee beans",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("rejects names with invalid characters", func(t *testing.T) {
		setupTestDB(t)
		router := newTestRouter()

		w, _ := performRequest(t, router, http.MethodPost, "/v1/admin/categories", map[string]interface{}{
			"name": "Coffee <script>",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects duplicate serving sizes", func(t *testing.T) {
		setupTestDB(t)
		router := newTestRouter()

		w, _ := performRequest(t, router, http.MethodPost, "/v1/admin/categories", map[string]interface{}{
			"name":     "Coffee Beans",
			"servings": []string{"250g", "250G"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("updates fields and reorders serving sizes", func(t *testing.T) {
		db := setupTestDB(t)
		router := newTestRouter()
		category := createTestCategory(t, db, "Tea")
		require.NoError(t, db.Create(&models.ServingSize{CategoryID: category.ID, Name: "Small", Position: 0}).Error)
		require.NoError(t, db.Create(&models.ServingSize{CategoryID: category.ID, Name: "Large", Position: 1}).Error)

		w, envelope := performRequest(t, router, http.MethodPut, fmt.Sprintf("/v1/admin/categories/%d", category.ID), map[string]interface{}{
			"name":        "Loose Leaf Tea",
			"highlighted": true,
			"servings":    []string{"Large", "Small", "Family"},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		payload := responseData(t, envelope)["category"].(map[string]interface{})
		assert.Equal(t, "Loose Leaf Tea", payload["name"])
		assert.Equal(t, true, payload["highlighted"])
		assert.Equal(t, []interface{}{"Large", "Small", "Family"}, payload["servings"])
	})

	t.Run("renaming to another category's name returns 409", func(t *testing.T) {
		db := setupTestDB(t)
		router := newTestRouter()
		createTestCategory(t, db, "Tea")
		other := createTestCategory(t, db, "Coffee")

		w, _ := performRequest(t, router, http.MethodPut, fmt.Sprintf("/v1/admin/categories/%d", other.ID), map[string]interface{}{
			"name": "tea",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("keeping the current name is not a conflict", func(t *testing.T) {
		db := setupTestDB(t)
		router := newTestRouter()
		category := createTestCategory(t, db, "Tea")

		w, _ := performRequest(t, router, http.MethodPut, fmt.Sprintf("/v1/admin/categories/%d", category.ID), map[string]interface{}{
			"name":        "Tea",
			"description": "Loose and bagged",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown category returns 404", func(t *testing.T) {
		setupTestDB(t)
		router := newTestRouter()

		w, _ := performRequest(t, router, http.MethodPut, "/v1/admin/categories/999", map[string]interface{}{
			"name": "Tea",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("deleting a category removes its products", func(t *testing.T) {
		db := setupTestDB(t)
		router := newTestRouter()
		category := createTestCategory(t, db, "Discontinued")
		createTestProduct(t, db, category.ID, "Old Blend", 9.99, 3)
		createTestProduct(t, db, category.ID, "Older Blend", 7.99, 0)

		w, envelope := performRequest(t, router, http.MethodDelete, fmt.Sprintf("/v1/admin/categories/%d", category.ID), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, 2.0, responseData(t, envelope)["deleted_products"])

		var categoryCount, productCount int64
		require.NoError(t, db.Model(&models.Category{}).Count(&categoryCount).Error)
		require.NoError(t, db.Model(&models.Product{}).Count(&productCount).Error)
		assert.Zero(t, categoryCount)
		assert.Zero(t, productCount)
	})

	t.Run("unknown category returns 404", func(t *testing.T) {
		setupTestDB(t)
		router := newTestRouter()

		w, _ := performRequest(t, router, http.MethodDelete, "/v1/admin/categories/999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric id returns 400", func(t *testing.T) {
		setupTestDB(t)
		router := newTestRouter()

		w, _ := performRequest(t, router, http.MethodDelete, "/v1/admin/categories/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetCategories(t *testing.T) {
	t.Run("lists categories with product counts", func(t *testing.T) {
		db := setupTestDB(t)
		router := newTestRouter()
		coffee := createTestCategory(t, db, "Coffee")
		createTestCategory(t, db, "Tea")
		createTestProduct(t, db, coffee.ID, "House Blend", 12.50, 10)

		w, envelope := performRequest(t, router, http.MethodGet, "/v1/admin/categories", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		categories := paginatedData(t, envelope)["categories"].([]interface{})
		require.Len(t, categories, 2)
		first := categories[0].(map[string]interface{})
		assert.Equal(t, "Coffee", first["name"])
		assert.Equal(t, 1.0, first["product_count"])
	})

	t.Run("search filters by name", func(t *testing.T) {
		db := setupTestDB(t)
		router := newTestRouter()
		createTestCategory(t, db, "Coffee")
		createTestCategory(t, db, "Tea")

		w, envelope := performRequest(t, router, http.MethodGet, "/v1/admin/categories?search=cof", nil)
		require.Equal(t, http.StatusOK, w.Code)

		categories := paginatedData(t, envelope)["categories"].([]interface{})
		require.Len(t, categories, 1)
		assert.Equal(t, "Coffee", categories[0].(map[string]interface{})["name"])
	})
}
