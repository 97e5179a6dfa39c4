package controllers

import (
	"strings"
	"time"

	"github.com/Farhan2001M/ecp-admin/config"
	"github.com/Farhan2001M/ecp-admin/models"
	"github.com/Farhan2001M/ecp-admin/utils"
	"github.com/gin-gonic/gin"
)

// CategoryRequest represents the category creation/update request
type CategoryRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=100"`
	Description string   `json:"description"`
	Servings    []string `json:"servings"`
	Active      *bool    `json:"active"`
	Highlighted *bool    `json:"highlighted"`
}

// CreateCategory handles category creation
func CreateCategory(c *gin.Context) {
	utils.LogInfo("CreateCategory called")

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	utils.LogDebug("Received category creation request - Name: %s", req.Name)

	if err := utils.ValidateCategoryName(req.Name); err != nil {
		utils.LogError("Invalid category name: %v", err)
		utils.BadRequest(c, "Invalid category name", err)
		return
	}
	if err := utils.ValidateServingSizes(req.Servings); err != nil {
		utils.LogError("Invalid serving sizes: %v", err)
		utils.BadRequest(c, "Invalid serving sizes", err)
		return
	}

	// Check if category with same name already exists
	var existingCategory models.Category
	if err := config.DB.Where("LOWER(name) = LOWER(?)", strings.TrimSpace(req.Name)).First(&existingCategory).Error; err == nil {
		utils.LogError("Category with name %s already exists", req.Name)
		utils.Conflict(c, "A category with this name already exists", nil)
		return
	}
	utils.LogDebug("No existing category found with name: %s", req.Name)

	category := models.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: utils.SanitizeString(req.Description),
		Active:      true,
	}
	if req.Active != nil {
		category.Active = *req.Active
	}
	if req.Highlighted != nil {
		category.Highlighted = *req.Highlighted
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to create category", nil)
		return
	}

	if err := tx.Create(&category).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create category: %v", err)
		utils.InternalServerError(c, "Failed to create category", err.Error())
		return
	}

	if err := replaceServingSizes(tx, category.ID, req.Servings); err != nil {
		tx.Rollback()
		utils.LogError("Failed to save serving sizes: %v", err)
		utils.InternalServerError(c, "Failed to save serving sizes", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to save changes", err.Error())
		return
	}

	if err := config.DB.Preload("ServingSizes", servingOrder).First(&category, category.ID).Error; err != nil {
		utils.LogError("Failed to reload category: %v", err)
		utils.InternalServerError(c, "Failed to load category", err.Error())
		return
	}

	utils.LogInfo("Category created successfully: %s", category.Name)
	utils.Created(c, "Category created successfully", gin.H{
		"category": formatCategory(&category, 0),
	})
}

// UpdateCategory handles category updates, including serving size reordering
func UpdateCategory(c *gin.Context) {
	utils.LogInfo("UpdateCategory called")

	id, ok := parseCategoryID(c)
	if !ok {
		return
	}
	utils.LogDebug("Processing category ID: %d", id)

	var category models.Category
	if err := config.DB.First(&category, id).Error; err != nil {
		utils.LogError("Category not found: %v", err)
		utils.NotFound(c, "Category not found")
		return
	}
	utils.LogDebug("Found category: %s", category.Name)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	if err := utils.ValidateCategoryName(req.Name); err != nil {
		utils.LogError("Invalid category name: %v", err)
		utils.BadRequest(c, "Invalid category name", err)
		return
	}
	if err := utils.ValidateServingSizes(req.Servings); err != nil {
		utils.LogError("Invalid serving sizes: %v", err)
		utils.BadRequest(c, "Invalid serving sizes", err)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to process update", nil)
		return
	}

	// Check for duplicate name excluding current category
	var existingCategory models.Category
	if err := tx.Where("LOWER(name) = LOWER(?) AND id != ?", strings.TrimSpace(req.Name), id).First(&existingCategory).Error; err == nil {
		tx.Rollback()
		utils.LogError("Duplicate category name found: %s", req.Name)
		utils.Conflict(c, "Category name already exists", "Please choose a different name")
		return
	}

	updates := map[string]interface{}{
		"name":        strings.TrimSpace(req.Name),
		"description": utils.SanitizeString(req.Description),
		"updated_at":  time.Now(),
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.Highlighted != nil {
		updates["highlighted"] = *req.Highlighted
	}

	if err := tx.Model(&category).Updates(updates).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update category: %v", err)
		utils.InternalServerError(c, "Failed to update category", err.Error())
		return
	}

	if err := replaceServingSizes(tx, category.ID, req.Servings); err != nil {
		tx.Rollback()
		utils.LogError("Failed to update serving sizes: %v", err)
		utils.InternalServerError(c, "Failed to update serving sizes", err.Error())
		return
	}

	var productCount int64
	if err := tx.Model(&models.Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to get product count: %v", err)
		utils.InternalServerError(c, "Failed to get category details", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to save changes", err.Error())
		return
	}

	if err := config.DB.Preload("ServingSizes", servingOrder).First(&category, id).Error; err != nil {
		utils.LogError("Failed to reload category: %v", err)
		utils.InternalServerError(c, "Failed to load category", err.Error())
		return
	}

	utils.LogInfo("Category updated successfully: %s", category.Name)
	utils.Success(c, "Category updated successfully", gin.H{
		"category": formatCategory(&category, productCount),
	})
}

// DeleteCategory handles category deletion. Deleting a category cascades to
// its products, matching the warning shown in the admin dialog.
func DeleteCategory(c *gin.Context) {
	utils.LogInfo("DeleteCategory called")

	id, ok := parseCategoryID(c)
	if !ok {
		return
	}
	utils.LogDebug("Processing category ID: %d", id)

	var category models.Category
	if err := config.DB.First(&category, id).Error; err != nil {
		utils.LogError("Category not found: %v", err)
		utils.NotFound(c, "Category not found")
		return
	}
	utils.LogDebug("Found category: %s", category.Name)

	var productCount int64
	if err := config.DB.Model(&models.Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		utils.LogError("Failed to count products: %v", err)
		utils.InternalServerError(c, "Failed to check category usage", err.Error())
		return
	}
	utils.LogDebug("Category has %d products", productCount)

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to delete category", nil)
		return
	}

	if err := tx.Where("category_id = ?", id).Delete(&models.Product{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete category products: %v", err)
		utils.InternalServerError(c, "Failed to delete category products", err.Error())
		return
	}

	if err := tx.Where("category_id = ?", id).Delete(&models.ServingSize{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete serving sizes: %v", err)
		utils.InternalServerError(c, "Failed to delete serving sizes", err.Error())
		return
	}

	if err := tx.Delete(&category).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete category: %v", err)
		utils.InternalServerError(c, "Failed to delete category", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to save changes", err.Error())
		return
	}

	utils.LogInfo("Category deleted successfully: %s (%d products removed)", category.Name, productCount)
	utils.Success(c, "Category deleted successfully", gin.H{
		"deleted_products": productCount,
	})
}
