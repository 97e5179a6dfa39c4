package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Farhan2001M/ecp-admin/config"
	"github.com/Farhan2001M/ecp-admin/models"
	"github.com/Farhan2001M/ecp-admin/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateSaleRequest carries the sale form fields and the lifecycle action.
// Dates arrive as RFC3339 strings; all three fields may be absent for the
// bare lifecycle actions (startNow, cancelSale, endNow).
type UpdateSaleRequest struct {
	SaleStartDate  *time.Time `json:"saleStartDate"`
	SaleEndDate    *time.Time `json:"saleEndDate"`
	SalePercentage float64    `json:"salePercentage"`
	Action         string     `json:"action"`
}

// UpdateCategorySale drives the sale lifecycle of a category.
//
// Without an action the request schedules a new sale and is only valid while
// the category is Inactive; a live sale must be changed through an explicit
// action ("updateSale", "startNow", "cancelSale", "endNow"). Every transition
// out of Pending or Active into Inactive appends one history entry, written
// in the same transaction as the status change.
func UpdateCategorySale(c *gin.Context) {
	utils.LogInfo("UpdateCategorySale called")

	id, ok := parseCategoryID(c)
	if !ok {
		return
	}
	utils.LogDebug("Processing sale update for category ID: %d", id)

	var category models.Category
	if err := config.DB.First(&category, id).Error; err != nil {
		utils.LogError("Category not found: %v", err)
		utils.NotFound(c, "Category not found")
		return
	}
	utils.LogDebug("Found category %s with sale status %s", category.Name, category.SaleStatus)

	var req UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request data: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	now := time.Now()

	// Bring the stored state up to date before applying the action so an
	// already-elapsed sale cannot be started or updated.
	if err := syncSaleState(config.DB, &category, now); err != nil {
		utils.LogError("Failed to refresh sale state: %v", err)
		utils.InternalServerError(c, "Failed to refresh sale state", err.Error())
		return
	}

	var (
		entry     *models.SaleHistoryEntry
		actionErr error
	)

	switch req.Action {
	case "":
		if category.HasLiveSale() {
			utils.LogError("Schedule request without action while sale is %s for category %d", category.SaleStatus, id)
			utils.Conflict(c, "Category already has a sale", "Send action \"updateSale\" to change a scheduled or running sale")
			return
		}
		if !saleFieldsPresent(c, &req) {
			return
		}
		actionErr = category.ScheduleSale(*req.SaleStartDate, *req.SaleEndDate, req.SalePercentage)
	case models.SaleActionUpdateSale:
		if !saleFieldsPresent(c, &req) {
			return
		}
		actionErr = category.UpdateSale(*req.SaleStartDate, *req.SaleEndDate, req.SalePercentage)
	case models.SaleActionStartNow:
		actionErr = category.StartSaleNow()
	case models.SaleActionCancelSale:
		entry, actionErr = category.CancelSale()
	case models.SaleActionEndNow:
		entry, actionErr = category.EndSaleNow()
	default:
		utils.LogError("Unknown sale action %q for category %d", req.Action, id)
		utils.BadRequest(c, "Unknown sale action", gin.H{"action": req.Action})
		return
	}

	if actionErr != nil {
		utils.LogError("Sale action %q rejected for category %d: %v", req.Action, id, actionErr)
		respondSaleError(c, actionErr)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to update sale", nil)
		return
	}

	if entry != nil {
		if err := tx.Create(entry).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to append sale history: %v", err)
			utils.InternalServerError(c, "Failed to append sale history", err.Error())
			return
		}
		utils.LogDebug("Appended %s sale history entry for category %d", entry.Outcome, id)
	}

	if err := tx.Model(&category).Select(categorySaleFields).Updates(map[string]interface{}{
		"sale_status":     category.SaleStatus,
		"sale_start_date": category.SaleStartDate,
		"sale_end_date":   category.SaleEndDate,
		"sale_percentage": category.SalePercentage,
		"updated_at":      now,
	}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update sale fields: %v", err)
		utils.InternalServerError(c, "Failed to update sale", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to save changes", err.Error())
		return
	}

	var historyCount int64
	if err := config.DB.Model(&models.SaleHistoryEntry{}).Where("category_id = ?", id).Count(&historyCount).Error; err != nil {
		utils.LogError("Failed to count sale history: %v", err)
		utils.InternalServerError(c, "Failed to load sale history", err.Error())
		return
	}

	utils.LogInfo("Sale for category %d is now %s", id, category.SaleStatus)
	utils.Success(c, "Sale updated successfully", gin.H{
		"category":           formatCategory(&category, countProducts(id)),
		"sale_history_count": historyCount,
	})
}

// saleFieldsPresent enforces the fail-fast contract: schedule and update
// requests must carry both dates and a positive percentage.
func saleFieldsPresent(c *gin.Context, req *UpdateSaleRequest) bool {
	var errs utils.FieldValidationErrors
	if req.SaleStartDate == nil {
		errs = append(errs, utils.FieldValidationError{Field: "saleStartDate", Message: "Start date is required"})
	}
	if req.SaleEndDate == nil {
		errs = append(errs, utils.FieldValidationError{Field: "saleEndDate", Message: "End date is required"})
	}
	if req.SalePercentage <= 0 {
		errs = append(errs, utils.FieldValidationError{Field: "salePercentage", Message: "Percentage must be greater than 0"})
	}
	if len(errs) > 0 {
		utils.LogError("Incomplete sale form: %v", errs)
		utils.BadRequest(c, "Start date, end date, and percentage are required", errs)
		return false
	}
	return true
}

// saleActionError maps state machine errors onto the error taxonomy: bad
// parameters are 400s, transitions not legal from the current state 409s.
func saleActionError(err error) *utils.AppError {
	switch {
	case errors.Is(err, models.ErrSaleWindowInvalid), errors.Is(err, models.ErrSalePercentageInvalid):
		return utils.BadRequestError(err.Error(), err)
	case errors.Is(err, models.ErrSaleAlreadyConfigured),
		errors.Is(err, models.ErrSaleNotPending),
		errors.Is(err, models.ErrSaleNotActive),
		errors.Is(err, models.ErrSaleNotConfigured):
		return utils.ConflictError(err.Error(), err)
	default:
		return utils.NewAppError(http.StatusInternalServerError, "Failed to update sale", err)
	}
}

func respondSaleError(c *gin.Context, err error) {
	appErr := saleActionError(err)
	utils.Error(c, appErr.Code, appErr.Message, nil)
}

func countProducts(categoryID uint) int64 {
	var count int64
	if err := config.DB.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogError("Failed to count products for category %d: %v", categoryID, err)
	}
	return count
}
