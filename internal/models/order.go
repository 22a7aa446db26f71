package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem represents a single line of an order. ProductName and UnitPrice
// are snapshots taken when the order was priced.
type OrderItem struct {
	ID          string          `json:"orderItemId" gorm:"primaryKey;type:varchar(36)"`
	OrderID     string          `json:"orderId" gorm:"index;type:varchar(36);not null"`
	ProductID   string          `json:"productId" gorm:"index;type:varchar(36);not null"`
	ProductName string          `json:"productName" gorm:"type:varchar(100)"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	UnitPrice   decimal.Decimal `json:"unitPrice" gorm:"type:decimal(18,2);not null"`
	Subtotal    decimal.Decimal `json:"subtotal" gorm:"type:decimal(18,2);not null"`
}

// Order represents a kiosk checkout.
type Order struct {
	ID                    string          `json:"orderId" gorm:"primaryKey;type:varchar(36)"`
	UserID                string          `json:"userId" gorm:"index;type:varchar(36);not null"`
	OrderDate             time.Time       `json:"orderDate" gorm:"not null"`
	TotalAmount           decimal.Decimal `json:"orderTotalAmount" gorm:"type:decimal(18,2);not null"`
	Status                bool            `json:"orderStatus"`
	CustomerTransactionID *string         `json:"customerTransactionId" gorm:"type:varchar(36)"`
	Items                 []OrderItem     `json:"orderItems" gorm:"foreignKey:OrderID"`
}
