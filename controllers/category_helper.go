package controllers

import (
	"strconv"
	"time"

	"github.com/Farhan2001M/ecp-admin/models"
	"github.com/Farhan2001M/ecp-admin/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// categorySaleFields are the columns owned by the sale lifecycle. Updates go
// through Select so cleared values (NULL dates, zero percentage) are written.
var categorySaleFields = []string{"sale_status", "sale_start_date", "sale_end_date", "sale_percentage", "updated_at"}

// servingOrder is a preload scope keeping serving sizes in admin-chosen order.
func servingOrder(db *gorm.DB) *gorm.DB {
	return db.Order("serving_sizes.position ASC")
}

// historyOrder is a preload scope keeping sale history in record order.
func historyOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sale_history_entries.id ASC")
}

// formatCategory shapes a category for API responses.
func formatCategory(category *models.Category, productCount int64) gin.H {
	return gin.H{
		"id":             category.ID,
		"name":           category.Name,
		"description":    category.Description,
		"active":         category.Active,
		"highlighted":    category.Highlighted,
		"servings":       category.ServingNames(),
		"servings_count": len(category.ServingSizes),
		"product_count":  productCount,
		"saleStatus":     category.SaleStatus,
		"saleStartDate":  formatSaleDate(category.SaleStartDate),
		"saleEndDate":    formatSaleDate(category.SaleEndDate),
		"salePercentage": category.SalePercentage,
	}
}

func formatSaleDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func formatSaleHistory(entries []models.SaleHistoryEntry) []gin.H {
	history := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		history = append(history, gin.H{
			"startDate":  entry.StartDate.UTC().Format(time.RFC3339),
			"endDate":    entry.EndDate.UTC().Format(time.RFC3339),
			"percentage": entry.Percentage,
			"outcome":    entry.Outcome,
		})
	}
	return history
}

// parseCategoryID reads and validates the :id route parameter.
func parseCategoryID(c *gin.Context) (uint, bool) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		utils.LogError("Invalid category ID format: %v", err)
		utils.BadRequest(c, "Invalid category ID format", "Category ID must be a valid number")
		return 0, false
	}
	return uint(id), true
}

// syncSaleState applies the sale's natural timeline progression and persists
// any resulting transition together with its history entry. Called before
// listing or acting on a category so clients always see authoritative state.
func syncSaleState(db *gorm.DB, category *models.Category, now time.Time) error {
	before := category.SaleStatus
	entry := category.RefreshSaleState(now)
	if entry == nil && category.SaleStatus == before {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if entry != nil {
			if err := tx.Create(entry).Error; err != nil {
				return err
			}
		}
		return tx.Model(category).Select(categorySaleFields).Updates(map[string]interface{}{
			"sale_status":     category.SaleStatus,
			"sale_start_date": category.SaleStartDate,
			"sale_end_date":   category.SaleEndDate,
			"sale_percentage": category.SalePercentage,
			"updated_at":      now,
		}).Error
	})
}

// replaceServingSizes swaps a category's serving size list, preserving the
// submitted order via Position.
func replaceServingSizes(tx *gorm.DB, categoryID uint, servings []string) error {
	if err := tx.Where("category_id = ?", categoryID).Delete(&models.ServingSize{}).Error; err != nil {
		return err
	}
	for i, name := range servings {
		size := models.ServingSize{
			CategoryID: categoryID,
			Name:       utils.SanitizeString(name),
			Position:   i,
		}
		if err := tx.Create(&size).Error; err != nil {
			return err
		}
	}
	return nil
}
