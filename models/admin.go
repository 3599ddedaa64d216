package models

import "time"

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

type Admin struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      string    `json:"role" gorm:"default:admin;not null"`
	IsActive  bool      `json:"isActive" gorm:"default:true;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AdminRef là phần thông tin admin hiển thị cùng listing
type AdminRef struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func (AdminRef) TableName() string { return "admins" }
