package models

// Category groups products.
type Category struct {
	ID   string `json:"categoryId" gorm:"primaryKey;type:varchar(36)"`
	Name string `json:"categoryName" gorm:"type:varchar(50);not null"`
}
