package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Category groups products sharing serving-size options and carries at most
// one sale configuration at a time.
type Category struct {
	ID             uint               `json:"id" gorm:"primaryKey"`
	Name           string             `json:"name" gorm:"not null;uniqueIndex"`
	Description    string             `json:"description"`
	Active         bool               `json:"active" gorm:"default:true"`
	Highlighted    bool               `json:"highlighted" gorm:"default:false"`
	ServingSizes   []ServingSize      `json:"servings,omitempty" gorm:"foreignKey:CategoryID"`
	SaleStatus     SaleStatus         `json:"saleStatus" gorm:"type:varchar(16);default:'Inactive'"`
	SaleStartDate  *time.Time         `json:"saleStartDate"`
	SaleEndDate    *time.Time         `json:"saleEndDate"`
	SalePercentage float64            `json:"salePercentage"`
	SaleHistory    []SaleHistoryEntry `json:"saleHistory,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `json:"-" gorm:"index"`
}

// ServingSize is a named portion variant of a category. Position preserves
// the admin-chosen ordering.
type ServingSize struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	CategoryID uint   `json:"category_id" gorm:"not null;index"`
	Name       string `json:"name" gorm:"not null"`
	Position   int    `json:"position" gorm:"not null;default:0"`
}

// SaleHistoryEntry is an immutable record of a completed or cancelled sale
// window. Rows are append-only; insertion order is the chronological record
// order.
type SaleHistoryEntry struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CategoryID uint      `json:"category_id" gorm:"not null;index"`
	StartDate  time.Time `json:"startDate" gorm:"not null"`
	EndDate    time.Time `json:"endDate" gorm:"not null"`
	Percentage float64   `json:"percentage" gorm:"not null"`
	Outcome    string    `json:"outcome" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeSave hook to keep category names trimmed
func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}

// ServingNames returns the serving size names in stored order.
func (c *Category) ServingNames() []string {
	names := make([]string, 0, len(c.ServingSizes))
	for _, s := range c.ServingSizes {
		names = append(names, s.Name)
	}
	return names
}
