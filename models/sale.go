package models

import (
	"errors"
	"time"
)

// SaleStatus is the lifecycle state of a category's sale configuration.
// A cancelled or ended sale normalizes straight back to Inactive once its
// window has been written to the history log, so Inactive doubles as the
// terminal state.
type SaleStatus string

const (
	SaleStatusInactive SaleStatus = "Inactive"
	SaleStatusPending  SaleStatus = "Pending"
	SaleStatusActive   SaleStatus = "Active"
)

// Sale action names as they appear in the update-sale request body.
const (
	SaleActionStartNow   = "startNow"
	SaleActionCancelSale = "cancelSale"
	SaleActionEndNow     = "endNow"
	SaleActionUpdateSale = "updateSale"
)

// Outcomes recorded on a SaleHistoryEntry.
const (
	SaleOutcomeCompleted = "completed"
	SaleOutcomeCancelled = "cancelled"
)

var (
	// ErrSaleWindowInvalid rejects windows where the start does not strictly
	// precede the end. A zero-length window is invalid.
	ErrSaleWindowInvalid = errors.New("sale start date must be before the end date")
	// ErrSalePercentageInvalid rejects discounts outside (0, 100).
	ErrSalePercentageInvalid = errors.New("sale percentage must be greater than 0 and less than 100")
	// ErrSaleAlreadyConfigured is returned when scheduling over a pending or
	// running sale. Only one sale configuration may be live per category.
	ErrSaleAlreadyConfigured = errors.New("category already has a scheduled or running sale")
	// ErrSaleNotPending is returned for startNow/cancelSale outside Pending.
	ErrSaleNotPending = errors.New("category has no pending sale")
	// ErrSaleNotActive is returned for endNow outside Active.
	ErrSaleNotActive = errors.New("category has no active sale")
	// ErrSaleNotConfigured is returned for updateSale when no sale is live.
	ErrSaleNotConfigured = errors.New("category has no scheduled or running sale")
)

// ValidateSaleWindow checks the schedule/update parameters shared by every
// field-carrying transition. The start may lie in the past; the server keeps
// such a sale Pending until the state is next refreshed.
func ValidateSaleWindow(start, end time.Time, percentage float64) error {
	if !start.Before(end) {
		return ErrSaleWindowInvalid
	}
	if percentage <= 0 || percentage >= 100 {
		return ErrSalePercentageInvalid
	}
	return nil
}

// HasLiveSale reports whether a sale configuration is currently scheduled or
// running.
func (c *Category) HasLiveSale() bool {
	return c.SaleStatus == SaleStatusPending || c.SaleStatus == SaleStatusActive
}

// ScheduleSale creates a new sale configuration on an Inactive category,
// moving it to Pending.
func (c *Category) ScheduleSale(start, end time.Time, percentage float64) error {
	if c.HasLiveSale() {
		return ErrSaleAlreadyConfigured
	}
	if err := ValidateSaleWindow(start, end, percentage); err != nil {
		return err
	}
	c.SaleStatus = SaleStatusPending
	c.SaleStartDate = &start
	c.SaleEndDate = &end
	c.SalePercentage = percentage
	return nil
}

// StartSaleNow moves a Pending sale to Active without touching its window or
// percentage.
func (c *Category) StartSaleNow() error {
	if c.SaleStatus != SaleStatusPending {
		return ErrSaleNotPending
	}
	c.SaleStatus = SaleStatusActive
	return nil
}

// CancelSale tears down a Pending sale and returns the history entry for the
// window that was scheduled at the time of the call.
func (c *Category) CancelSale() (*SaleHistoryEntry, error) {
	if c.SaleStatus != SaleStatusPending {
		return nil, ErrSaleNotPending
	}
	entry := c.closeSale(SaleOutcomeCancelled)
	return entry, nil
}

// EndSaleNow tears down an Active sale and returns the history entry for the
// window that was running at the time of the call.
func (c *Category) EndSaleNow() (*SaleHistoryEntry, error) {
	if c.SaleStatus != SaleStatusActive {
		return nil, ErrSaleNotActive
	}
	entry := c.closeSale(SaleOutcomeCompleted)
	return entry, nil
}

// UpdateSale replaces the window and percentage of a live sale. The status is
// preserved: Pending stays Pending and Active stays Active. Applying the same
// payload twice leaves the category unchanged and writes no history.
func (c *Category) UpdateSale(start, end time.Time, percentage float64) error {
	if !c.HasLiveSale() {
		return ErrSaleNotConfigured
	}
	if err := ValidateSaleWindow(start, end, percentage); err != nil {
		return err
	}
	c.SaleStartDate = &start
	c.SaleEndDate = &end
	c.SalePercentage = percentage
	return nil
}

// RefreshSaleState advances the sale along its natural timeline: a Pending
// sale whose start has elapsed becomes Active, and an Active sale whose end
// has elapsed returns to Inactive. The returned entry is non-nil exactly when
// a sale expired and must be appended to the history log.
func (c *Category) RefreshSaleState(now time.Time) *SaleHistoryEntry {
	if c.SaleStatus == SaleStatusPending && c.SaleStartDate != nil && !now.Before(*c.SaleStartDate) {
		c.SaleStatus = SaleStatusActive
	}
	if c.SaleStatus == SaleStatusActive && c.SaleEndDate != nil && now.After(*c.SaleEndDate) {
		return c.closeSale(SaleOutcomeCompleted)
	}
	return nil
}

// closeSale records the live window, clears the sale fields and returns the
// category to Inactive. Callers persist the entry in the same transaction as
// the category update.
func (c *Category) closeSale(outcome string) *SaleHistoryEntry {
	entry := &SaleHistoryEntry{
		CategoryID: c.ID,
		Percentage: c.SalePercentage,
		Outcome:    outcome,
	}
	if c.SaleStartDate != nil {
		entry.StartDate = *c.SaleStartDate
	}
	if c.SaleEndDate != nil {
		entry.EndDate = *c.SaleEndDate
	}
	c.SaleStatus = SaleStatusInactive
	c.SaleStartDate = nil
	c.SaleEndDate = nil
	c.SalePercentage = 0
	c.SaleHistory = append(c.SaleHistory, *entry)
	return entry
}

// SalePrice applies the category's discount to a base price when the sale is
// Active. Prices are rounded to two decimals.
func (c *Category) SalePrice(price float64) float64 {
	if c.SaleStatus != SaleStatusActive || c.SalePercentage <= 0 {
		return price
	}
	discounted := price * (1 - c.SalePercentage/100)
	return float64(int(discounted*100+0.5)) / 100
}
