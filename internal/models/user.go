package models

import "time"

// Stored role ids. The role is assigned once at registration.
const (
	RoleAdmin = 1
	RoleUser  = 2
)

// Role names carried in the JWT role claim.
const (
	RoleNameAdmin = "admin"
	RoleNameUser  = "user"
)

// User represents a kiosk customer or administrator.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserName  string    `json:"userName" gorm:"type:varchar(100);not null"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Surname   string    `json:"surname" gorm:"type:varchar(100);not null"`
	Email     string    `json:"userEmail" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash
	RoleID    int       `json:"roleId" gorm:"not null;default:2"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RoleName maps the stored role id to the name used in tokens.
func (u User) RoleName() string {
	if u.RoleID == RoleAdmin {
		return RoleNameAdmin
	}
	return RoleNameUser
}
