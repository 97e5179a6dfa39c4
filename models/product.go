package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a catalog item belonging to a category.
type Product struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Brand       string         `json:"brand"`
	SKU         string         `json:"sku" gorm:"uniqueIndex;not null"`
	CategoryID  uint           `json:"category_id" gorm:"not null;index"`
	Category    Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Price       float64        `json:"price" gorm:"not null"`
	Description string         `json:"description"`
	Dimensions  string         `json:"dimensions"`
	Stock       int            `json:"stock" gorm:"default:0"`
	InStock     bool           `json:"in_stock" gorm:"default:false"`
	Ratings     float64        `json:"ratings" gorm:"default:0"`
	Images      []ProductImage `json:"images,omitempty" gorm:"foreignKey:ProductID"`
	Videos      []ProductVideo `json:"videos,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// ProductImage is an image URL attached to a product, ordered by Position.
type ProductImage struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProductID uint   `json:"product_id" gorm:"not null;index"`
	URL       string `json:"url" gorm:"not null"`
	Position  int    `json:"position" gorm:"not null;default:0"`
}

// ProductVideo is a video URL attached to a product, ordered by Position.
type ProductVideo struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProductID uint   `json:"product_id" gorm:"not null;index"`
	URL       string `json:"url" gorm:"not null"`
	Position  int    `json:"position" gorm:"not null;default:0"`
}

// BeforeCreate hook to assign a SKU when none was provided
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(p.SKU) == "" {
		p.SKU = "SKU-" + strings.ToUpper(uuid.New().String()[:8])
	}
	return nil
}

// BeforeSave hook to normalize fields and derive stock status
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Brand = strings.TrimSpace(p.Brand)
	p.SKU = strings.ToUpper(strings.TrimSpace(p.SKU))
	p.InStock = p.Stock > 0
	return nil
}

// ImageURLs returns the product's image URLs in stored order.
func (p *Product) ImageURLs() []string {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.URL)
	}
	return urls
}

// VideoURLs returns the product's video URLs in stored order.
func (p *Product) VideoURLs() []string {
	urls := make([]string, 0, len(p.Videos))
	for _, v := range p.Videos {
		urls = append(urls, v.URL)
	}
	return urls
}
