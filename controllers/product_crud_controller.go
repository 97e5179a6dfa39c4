package controllers

import (
	"strings"

	"github.com/Farhan2001M/ecp-admin/config"
	"github.com/Farhan2001M/ecp-admin/models"
	"github.com/Farhan2001M/ecp-admin/utils"
	"github.com/gin-gonic/gin"
)

// ProductRequest represents the product creation/update request
type ProductRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=200"`
	Brand       string   `json:"brand"`
	SKU         string   `json:"sku"`
	CategoryID  uint     `json:"category_id" binding:"required"`
	Price       float64  `json:"price" binding:"required"`
	Description string   `json:"description"`
	Dimensions  string   `json:"dimensions"`
	Stock       int      `json:"stock"`
	Ratings     float64  `json:"ratings"`
	Images      []string `json:"images"`
	Videos      []string `json:"videos"`
}

// CreateProduct handles product creation
func CreateProduct(c *gin.Context) {
	utils.LogInfo("CreateProduct called")

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	utils.LogDebug("Received product creation request - Name: %s", req.Name)

	if err := utils.ValidateProductFields(req.Price, req.Stock, req.Ratings); err != nil {
		utils.LogError("Invalid product fields: %v", err)
		utils.BadRequest(c, "Invalid product fields", err)
		return
	}

	var category models.Category
	if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.LogError("Category %d not found: %v", req.CategoryID, err)
		utils.BadRequest(c, "Category does not exist", nil)
		return
	}
	utils.LogDebug("Product category verified: %s", category.Name)

	if sku := strings.TrimSpace(req.SKU); sku != "" {
		var existing models.Product
		if err := config.DB.Where("sku = ?", strings.ToUpper(sku)).First(&existing).Error; err == nil {
			utils.LogError("Product with SKU %s already exists", sku)
			utils.Conflict(c, "A product with this SKU already exists", nil)
			return
		}
	}

	product := models.Product{
		Name:        req.Name,
		Brand:       req.Brand,
		SKU:         req.SKU,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		Description: utils.SanitizeString(req.Description),
		Dimensions:  req.Dimensions,
		Stock:       req.Stock,
		Ratings:     req.Ratings,
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to create product", nil)
		return
	}

	if err := tx.Create(&product).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create product: %v", err)
		utils.InternalServerError(c, "Failed to create product", err.Error())
		return
	}

	if err := replaceProductMedia(tx, product.ID, req.Images, req.Videos); err != nil {
		tx.Rollback()
		utils.LogError("Failed to save product media: %v", err)
		utils.InternalServerError(c, "Failed to save product media", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to save changes", err.Error())
		return
	}

	if err := config.DB.Preload("Category").Preload("Images", imageOrder).Preload("Videos", videoOrder).First(&product, product.ID).Error; err != nil {
		utils.LogError("Failed to reload product: %v", err)
		utils.InternalServerError(c, "Failed to load product", err.Error())
		return
	}

	utils.LogInfo("Product created successfully: %s (SKU %s)", product.Name, product.SKU)
	utils.Created(c, "Product created successfully", gin.H{
		"product": formatProduct(&product),
	})
}

// UpdateProduct handles product updates including media replacement
func UpdateProduct(c *gin.Context) {
	utils.LogInfo("UpdateProduct called")

	id, ok := parseProductID(c)
	if !ok {
		return
	}
	utils.LogDebug("Processing product ID: %d", id)

	var product models.Product
	if err := config.DB.First(&product, id).Error; err != nil {
		utils.LogError("Product not found: %v", err)
		utils.NotFound(c, "Product not found")
		return
	}
	utils.LogDebug("Found product: %s", product.Name)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	if err := utils.ValidateProductFields(req.Price, req.Stock, req.Ratings); err != nil {
		utils.LogError("Invalid product fields: %v", err)
		utils.BadRequest(c, "Invalid product fields", err)
		return
	}

	var category models.Category
	if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.LogError("Category %d not found: %v", req.CategoryID, err)
		utils.BadRequest(c, "Category does not exist", nil)
		return
	}

	if sku := strings.ToUpper(strings.TrimSpace(req.SKU)); sku != "" && sku != product.SKU {
		var existing models.Product
		if err := config.DB.Where("sku = ? AND id != ?", sku, id).First(&existing).Error; err == nil {
			utils.LogError("Product with SKU %s already exists", sku)
			utils.Conflict(c, "A product with this SKU already exists", nil)
			return
		}
		product.SKU = sku
	}

	product.Name = req.Name
	product.Brand = req.Brand
	product.CategoryID = req.CategoryID
	product.Price = req.Price
	product.Description = utils.SanitizeString(req.Description)
	product.Dimensions = req.Dimensions
	product.Stock = req.Stock
	product.Ratings = req.Ratings

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to process update", nil)
		return
	}

	if err := tx.Save(&product).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update product: %v", err)
		utils.InternalServerError(c, "Failed to update product", err.Error())
		return
	}

	if err := replaceProductMedia(tx, product.ID, req.Images, req.Videos); err != nil {
		tx.Rollback()
		utils.LogError("Failed to update product media: %v", err)
		utils.InternalServerError(c, "Failed to update product media", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to save changes", err.Error())
		return
	}

	if err := config.DB.Preload("Category").Preload("Images", imageOrder).Preload("Videos", videoOrder).First(&product, id).Error; err != nil {
		utils.LogError("Failed to reload product: %v", err)
		utils.InternalServerError(c, "Failed to load product", err.Error())
		return
	}

	utils.LogInfo("Product updated successfully: %s", product.Name)
	utils.Success(c, "Product updated successfully", gin.H{
		"product": formatProduct(&product),
	})
}

// UpdateProductStockRequest represents the stock adjustment request
type UpdateProductStockRequest struct {
	Stock *int `json:"stock" binding:"required"`
}

// UpdateProductStock adjusts stock and rederives the in-stock flag
func UpdateProductStock(c *gin.Context) {
	utils.LogInfo("UpdateProductStock called")

	id, ok := parseProductID(c)
	if !ok {
		return
	}

	var product models.Product
	if err := config.DB.First(&product, id).Error; err != nil {
		utils.LogError("Product not found: %v", err)
		utils.NotFound(c, "Product not found")
		return
	}

	var req UpdateProductStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	if *req.Stock < 0 {
		utils.LogError("Negative stock %d for product %d", *req.Stock, id)
		utils.BadRequest(c, "Stock cannot be negative", nil)
		return
	}

	product.Stock = *req.Stock
	if err := config.DB.Save(&product).Error; err != nil {
		utils.LogError("Failed to update stock: %v", err)
		utils.InternalServerError(c, "Failed to update stock", err.Error())
		return
	}

	utils.LogInfo("Stock for product %d set to %d (in stock: %v)", id, product.Stock, product.InStock)
	utils.Success(c, "Stock updated successfully", gin.H{
		"product": gin.H{
			"id":       product.ID,
			"stock":    product.Stock,
			"in_stock": product.InStock,
		},
	})
}

// DeleteProduct handles product deletion
func DeleteProduct(c *gin.Context) {
	utils.LogInfo("DeleteProduct called")

	id, ok := parseProductID(c)
	if !ok {
		return
	}
	utils.LogDebug("Processing product ID: %d", id)

	var product models.Product
	if err := config.DB.First(&product, id).Error; err != nil {
		utils.LogError("Product not found: %v", err)
		utils.NotFound(c, "Product not found")
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to delete product", nil)
		return
	}

	if err := replaceProductMedia(tx, product.ID, nil, nil); err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete product media: %v", err)
		utils.InternalServerError(c, "Failed to delete product media", err.Error())
		return
	}

	if err := tx.Delete(&product).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete product: %v", err)
		utils.InternalServerError(c, "Failed to delete product", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to save changes", err.Error())
		return
	}

	utils.LogInfo("Product deleted successfully: %s", product.Name)
	utils.Success(c, "Product deleted successfully", nil)
}
