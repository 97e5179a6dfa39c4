package controllers

import (
	"time"

	"github.com/Farhan2001M/ecp-admin/config"
	"github.com/Farhan2001M/ecp-admin/models"
	"github.com/Farhan2001M/ecp-admin/utils"
	"github.com/gin-gonic/gin"
)

// GetCategories returns the paginated category list with product counts and
// live sale state. Natural sale transitions (scheduled start reached, end
// date elapsed) are persisted before the list is shaped, so the response is
// authoritative.
func GetCategories(c *gin.Context) {
	utils.LogInfo("GetCategories called")

	pagination := utils.NewPagination(c)
	search := c.Query("search")

	query := config.DB.Model(&models.Category{})
	if search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
		utils.LogDebug("Filtering categories by search term: %s", search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count categories: %v", err)
		utils.InternalServerError(c, "Failed to fetch categories", err.Error())
		return
	}
	pagination.SetTotal(total)

	var categories []models.Category
	if err := query.
		Preload("ServingSizes", servingOrder).
		Order("name ASC").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&categories).Error; err != nil {
		utils.LogError("Failed to fetch categories: %v", err)
		utils.InternalServerError(c, "Failed to fetch categories", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d categories", len(categories))

	now := time.Now()
	formatted := make([]gin.H, 0, len(categories))
	for i := range categories {
		category := &categories[i]

		if err := syncSaleState(config.DB, category, now); err != nil {
			utils.LogError("Failed to refresh sale state for category %d: %v", category.ID, err)
			utils.InternalServerError(c, "Failed to refresh sale state", err.Error())
			return
		}

		var productCount int64
		if err := config.DB.Model(&models.Product{}).Where("category_id = ?", category.ID).Count(&productCount).Error; err != nil {
			utils.LogError("Failed to count products for category %d: %v", category.ID, err)
			utils.InternalServerError(c, "Failed to fetch categories", err.Error())
			return
		}

		formatted = append(formatted, formatCategory(category, productCount))
	}

	utils.LogInfo("Successfully retrieved %d categories", len(formatted))
	utils.SendPaginatedResponse(c, gin.H{"categories": formatted}, pagination)
}

// GetCategoryDetails returns a single category including its sale history.
func GetCategoryDetails(c *gin.Context) {
	utils.LogInfo("GetCategoryDetails called")

	id, ok := parseCategoryID(c)
	if !ok {
		return
	}
	utils.LogDebug("Fetching category ID: %d", id)

	var category models.Category
	if err := config.DB.
		Preload("ServingSizes", servingOrder).
		Preload("SaleHistory", historyOrder).
		First(&category, id).Error; err != nil {
		utils.LogError("Category not found: %v", err)
		utils.NotFound(c, "Category not found")
		return
	}

	if err := syncSaleState(config.DB, &category, time.Now()); err != nil {
		utils.LogError("Failed to refresh sale state: %v", err)
		utils.InternalServerError(c, "Failed to refresh sale state", err.Error())
		return
	}

	var productCount int64
	if err := config.DB.Model(&models.Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		utils.LogError("Failed to count products: %v", err)
		utils.InternalServerError(c, "Failed to fetch category", err.Error())
		return
	}

	detail := formatCategory(&category, productCount)
	detail["saleHistory"] = formatSaleHistory(category.SaleHistory)

	utils.LogInfo("Successfully retrieved category %d", id)
	utils.Success(c, "Category retrieved successfully", gin.H{
		"category": detail,
	})
}
