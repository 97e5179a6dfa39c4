package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/Farhan2001M/ecp-admin/config"
	"github.com/Farhan2001M/ecp-admin/models"
	"github.com/Farhan2001M/ecp-admin/utils"
)

func fetchCatalogForExport(c *gin.Context) ([]models.Product, bool) {
	var products []models.Product
	if err := config.DB.
		Preload("Category").
		Order("category_id ASC, name ASC").
		Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products for export: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return nil, false
	}
	return products, true
}

// Admin: Download the product catalog as Excel
func DownloadCatalogExcel(c *gin.Context) {
	utils.LogInfo("DownloadCatalogExcel called")

	products, ok := fetchCatalogForExport(c)
	if !ok {
		return
	}
	utils.LogDebug("Retrieved %d products for Excel export", len(products))

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Catalog")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("Product Catalog")
	dateRow := sheet.AddRow()
	dateRow.AddCell().SetString("Generated: " + time.Now().Format("2006-01-02 15:04"))
	sheet.AddRow() // spacing

	headers := []string{"ID", "Name", "SKU", "Brand", "Category", "Price", "Sale %", "Sale Price", "Stock", "Rating"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, product := range products {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(product.ID))
		row.AddCell().SetString(product.Name)
		row.AddCell().SetString(product.SKU)
		row.AddCell().SetString(product.Brand)
		row.AddCell().SetString(product.Category.Name)
		row.AddCell().SetFloat(product.Price)
		if product.Category.SaleStatus == models.SaleStatusActive {
			row.AddCell().SetFloat(product.Category.SalePercentage)
			row.AddCell().SetFloat(product.Category.SalePrice(product.Price))
		} else {
			row.AddCell().SetString("-")
			row.AddCell().SetFloat(product.Price)
		}
		row.AddCell().SetInt(product.Stock)
		row.AddCell().SetFloat(product.Ratings)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=catalog_%s.xlsx", time.Now().Format("2006-01-02")))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated Excel catalog export with %d products", len(products))
}

// Admin: Download the product catalog as PDF
func DownloadCatalogPDF(c *gin.Context) {
	utils.LogInfo("DownloadCatalogPDF called")

	products, ok := fetchCatalogForExport(c)
	if !ok {
		return
	}
	utils.LogDebug("Retrieved %d products for PDF export", len(products))

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, "Product Catalog")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Generated: "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	headers := []string{"ID", "Name", "SKU", "Brand", "Category", "Price", "Sale %", "Sale Price", "Stock", "Rating"}
	colWidths := []float64{15, 55, 35, 35, 35, 22, 18, 25, 18, 18}
	pdf.SetFont("Arial", "B", 11)
	for i, h := range headers {
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	fill := false
	for _, product := range products {
		pdf.SetFillColor(245, 245, 245)
		if fill {
			pdf.SetFillColor(230, 240, 255)
		}
		fill = !fill
		salePercent := "-"
		salePrice := product.Price
		if product.Category.SaleStatus == models.SaleStatusActive {
			salePercent = fmt.Sprintf("%.0f%%", product.Category.SalePercentage)
			salePrice = product.Category.SalePrice(product.Price)
		}
		pdf.CellFormat(colWidths[0], 8, fmt.Sprintf("%d", product.ID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[1], 8, product.Name, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[2], 8, product.SKU, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[3], 8, product.Brand, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[4], 8, product.Category.Name, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[5], 8, fmt.Sprintf("%.2f", product.Price), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[6], 8, salePercent, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[7], 8, fmt.Sprintf("%.2f", salePrice), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[8], 8, fmt.Sprintf("%d", product.Stock), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[9], 8, fmt.Sprintf("%.1f", product.Ratings), "1", 0, "C", fill, 0, "")
		pdf.Ln(-1)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=catalog_%s.pdf", time.Now().Format("2006-01-02")))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		utils.InternalServerError(c, "Failed to write PDF file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated PDF catalog export with %d products", len(products))
}
