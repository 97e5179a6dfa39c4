package controllers

import (
	"strconv"

	"github.com/Farhan2001M/ecp-admin/models"
	"github.com/Farhan2001M/ecp-admin/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// imageOrder and videoOrder keep product media in admin-chosen order.
func imageOrder(db *gorm.DB) *gorm.DB {
	return db.Order("product_images.position ASC")
}

func videoOrder(db *gorm.DB) *gorm.DB {
	return db.Order("product_videos.position ASC")
}

// formatProduct shapes a product for API responses. The sale price reflects
// the category's discount only while its sale is Active.
func formatProduct(product *models.Product) gin.H {
	formatted := gin.H{
		"id":          product.ID,
		"name":        product.Name,
		"brand":       product.Brand,
		"sku":         product.SKU,
		"category_id": product.CategoryID,
		"price":       product.Price,
		"description": product.Description,
		"dimensions":  product.Dimensions,
		"stock":       product.Stock,
		"in_stock":    product.InStock,
		"ratings":     product.Ratings,
		"images":      product.ImageURLs(),
		"videos":      product.VideoURLs(),
	}
	if product.Category.ID != 0 {
		formatted["category"] = product.Category.Name
		formatted["sale_price"] = product.Category.SalePrice(product.Price)
		formatted["on_sale"] = product.Category.SaleStatus == models.SaleStatusActive
	}
	return formatted
}

// parseProductID reads and validates the :id route parameter.
func parseProductID(c *gin.Context) (uint, bool) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		utils.LogError("Invalid product ID format: %v", err)
		utils.BadRequest(c, "Invalid product ID format", "Product ID must be a valid number")
		return 0, false
	}
	return uint(id), true
}

// replaceProductMedia swaps a product's image and video lists, preserving
// the submitted order via Position.
func replaceProductMedia(tx *gorm.DB, productID uint, images, videos []string) error {
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductVideo{}).Error; err != nil {
		return err
	}
	for i, url := range images {
		if err := tx.Create(&models.ProductImage{ProductID: productID, URL: url, Position: i}).Error; err != nil {
			return err
		}
	}
	for i, url := range videos {
		if err := tx.Create(&models.ProductVideo{ProductID: productID, URL: url, Position: i}).Error; err != nil {
			return err
		}
	}
	return nil
}
