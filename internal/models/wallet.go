package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is a user's stored-value balance. Exactly one per user.
type Wallet struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string          `json:"userId" gorm:"uniqueIndex;type:varchar(36);not null"`
	Balance   decimal.Decimal `json:"balance" gorm:"type:decimal(18,2);not null;default:0"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
