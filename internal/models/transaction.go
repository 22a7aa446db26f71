package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger row types.
const (
	TransactionTypeTopUp = "TopUp"
	TransactionTypeOrder = "Order"
)

// TransactionStatusCompleted is the only status ever written.
const TransactionStatusCompleted = "Completed"

// CustomerTransaction is an append-only ledger row recorded with every
// wallet balance change. OrderID is kept as written even if the order is
// later deleted.
type CustomerTransaction struct {
	ID       string          `json:"customerTransactionId" gorm:"primaryKey;type:varchar(36)"`
	WalletID string          `json:"walletId" gorm:"index;type:varchar(36);not null"`
	OrderID  *string         `json:"orderId" gorm:"index;type:varchar(36)"`
	Amount   decimal.Decimal `json:"amount" gorm:"type:decimal(18,2);not null"`
	Type     string          `json:"type" gorm:"type:varchar(20);not null"`
	Date     time.Time       `json:"date" gorm:"index;not null"`
	Status   string          `json:"status" gorm:"type:varchar(20);not null"`
}
