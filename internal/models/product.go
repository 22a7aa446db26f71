package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents an item sold at the kiosk.
type Product struct {
	ID          string          `json:"productId" gorm:"primaryKey;type:varchar(36)"`
	CategoryID  string          `json:"categoryId" gorm:"index;type:varchar(36);not null"`
	SupplierID  *string         `json:"supplierId" gorm:"index;type:varchar(36)"`
	Name        string          `json:"productName" gorm:"type:varchar(100);not null"`
	Description string          `json:"description" gorm:"type:varchar(500)"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(18,2);not null"`
	Quantity    int             `json:"quantity"`
	IsAvailable bool            `json:"isAvailable"`
	ImageURL    string          `json:"imageUrl,omitempty" gorm:"type:varchar(255)"`
	LastUpdated time.Time       `json:"lastUpdated"`
}
