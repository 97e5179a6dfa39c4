package controllers

import (
	"time"

	"github.com/Farhan2001M/ecp-admin/config"
	"github.com/Farhan2001M/ecp-admin/models"
	"github.com/Farhan2001M/ecp-admin/utils"
	"github.com/gin-gonic/gin"
)

// GetProducts returns the paginated product list. Sale pricing reflects each
// category's refreshed sale state.
func GetProducts(c *gin.Context) {
	utils.LogInfo("GetProducts called")

	pagination := utils.NewPagination(c)
	search := c.Query("search")
	sortBy := c.DefaultQuery("sort", "name")
	order := c.DefaultQuery("order", "asc")

	query := config.DB.Model(&models.Product{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(brand) LIKE LOWER(?) OR LOWER(sku) LIKE LOWER(?)", pattern, pattern, pattern)
		utils.LogDebug("Filtering products by search term: %s", search)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
		utils.LogDebug("Filtering products by category: %s", categoryID)
	}

	switch sortBy {
	case "name", "price", "stock", "ratings", "created_at":
	default:
		sortBy = "name"
	}
	if order != "desc" {
		order = "asc"
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}
	pagination.SetTotal(total)

	var products []models.Product
	if err := query.
		Preload("Category").
		Preload("Images", imageOrder).
		Preload("Videos", videoOrder).
		Order(sortBy + " " + order).
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d products", len(products))

	// Each product carries its own preloaded copy of its category, so sync
	// every distinct category once and share the synced copy. Refreshing the
	// stale copies individually would close an expired sale more than once.
	now := time.Now()
	synced := make(map[uint]*models.Category, len(products))
	formatted := make([]gin.H, 0, len(products))
	for i := range products {
		product := &products[i]
		category, ok := synced[product.CategoryID]
		if !ok {
			category = &product.Category
			if err := syncSaleState(config.DB, category, now); err != nil {
				utils.LogError("Failed to refresh sale state for category %d: %v", product.CategoryID, err)
				utils.InternalServerError(c, "Failed to refresh sale state", err.Error())
				return
			}
			synced[product.CategoryID] = category
		}
		product.Category = *category
		formatted = append(formatted, formatProduct(product))
	}

	utils.LogInfo("Successfully retrieved %d products", len(formatted))
	utils.SendPaginatedResponse(c, gin.H{"products": formatted}, pagination)
}

// GetProductDetails returns a single product with media and sale pricing.
func GetProductDetails(c *gin.Context) {
	utils.LogInfo("GetProductDetails called")

	id, ok := parseProductID(c)
	if !ok {
		return
	}
	utils.LogDebug("Fetching product ID: %d", id)

	var product models.Product
	if err := config.DB.
		Preload("Category").
		Preload("Images", imageOrder).
		Preload("Videos", videoOrder).
		First(&product, id).Error; err != nil {
		utils.LogError("Product not found: %v", err)
		utils.NotFound(c, "Product not found")
		return
	}

	if err := syncSaleState(config.DB, &product.Category, time.Now()); err != nil {
		utils.LogError("Failed to refresh sale state: %v", err)
		utils.InternalServerError(c, "Failed to refresh sale state", err.Error())
		return
	}

	utils.LogInfo("Successfully retrieved product %d", id)
	utils.Success(c, "Product retrieved successfully", gin.H{
		"product": formatProduct(&product),
	})
}
