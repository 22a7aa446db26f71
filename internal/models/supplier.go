package models

// Supplier optionally owns products.
type Supplier struct {
	ID      string `json:"supplierId" gorm:"primaryKey;type:varchar(36)"`
	Name    string `json:"name" gorm:"type:varchar(100)"`
	Surname string `json:"surname" gorm:"type:varchar(100)"`
	Email   string `json:"email" gorm:"type:varchar(255)"`
}
