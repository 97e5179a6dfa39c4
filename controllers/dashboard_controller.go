package controllers

import (
	"github.com/Farhan2001M/ecp-admin/config"
	"github.com/Farhan2001M/ecp-admin/models"
	"github.com/Farhan2001M/ecp-admin/utils"
	"github.com/gin-gonic/gin"
)

// GetDashboard returns headline catalog numbers for the admin landing page.
func GetDashboard(c *gin.Context) {
	utils.LogInfo("GetDashboard called")

	var stats struct {
		Categories   int64
		Products     int64
		ActiveSales  int64
		PendingSales int64
		OutOfStock   int64
		SaleRecords  int64
	}

	counts := []struct {
		name  string
		query *int64
		run   func(*int64) error
	}{
		{"categories", &stats.Categories, func(out *int64) error {
			return config.DB.Model(&models.Category{}).Count(out).Error
		}},
		{"products", &stats.Products, func(out *int64) error {
			return config.DB.Model(&models.Product{}).Count(out).Error
		}},
		{"active sales", &stats.ActiveSales, func(out *int64) error {
			return config.DB.Model(&models.Category{}).Where("sale_status = ?", models.SaleStatusActive).Count(out).Error
		}},
		{"pending sales", &stats.PendingSales, func(out *int64) error {
			return config.DB.Model(&models.Category{}).Where("sale_status = ?", models.SaleStatusPending).Count(out).Error
		}},
		{"out of stock products", &stats.OutOfStock, func(out *int64) error {
			return config.DB.Model(&models.Product{}).Where("in_stock = ?", false).Count(out).Error
		}},
		{"sale history records", &stats.SaleRecords, func(out *int64) error {
			return config.DB.Model(&models.SaleHistoryEntry{}).Count(out).Error
		}},
	}

	for _, count := range counts {
		if err := count.run(count.query); err != nil {
			utils.LogError("Failed to count %s: %v", count.name, err)
			utils.InternalServerError(c, "Failed to load dashboard", err.Error())
			return
		}
	}

	var latestHistory []models.SaleHistoryEntry
	if err := config.DB.Order("id DESC").Limit(5).Find(&latestHistory).Error; err != nil {
		utils.LogError("Failed to fetch recent sale history: %v", err)
		utils.InternalServerError(c, "Failed to load dashboard", err.Error())
		return
	}

	utils.LogInfo("Dashboard stats collected: %d categories, %d products", stats.Categories, stats.Products)
	utils.Success(c, "Dashboard retrieved successfully", gin.H{
		"totals": gin.H{
			"categories":           stats.Categories,
			"products":             stats.Products,
			"active_sales":         stats.ActiveSales,
			"pending_sales":        stats.PendingSales,
			"out_of_stock":         stats.OutOfStock,
			"sale_history_records": stats.SaleRecords,
		},
		"recent_sale_history": formatSaleHistory(latestHistory),
	})
}
