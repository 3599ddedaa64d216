package models

import (
	"time"

	"gorm.io/gorm"
)

const MinPasswordLength = 6

type Student struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	FirstName      string    `json:"firstName" gorm:"not null"`
	LastName       string    `json:"lastName" gorm:"not null"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	Password       string    `json:"-" gorm:"not null"`
	University     string    `json:"university,omitempty"`
	StudentID      string    `json:"studentId,omitempty"`
	PhoneNumber    string    `json:"phoneNumber,omitempty"`
	ProfilePicture Image     `json:"profilePicture" gorm:"embedded;embeddedPrefix:profile_picture_"`
	IsVerified     bool      `json:"isVerified" gorm:"default:false;not null"`
	SavedListings  []Listing `json:"savedListings" gorm:"-"`
	CreatedAt      time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// AfterFind đảm bảo savedListings luôn là mảng khi trả về client
func (s *Student) AfterFind(*gorm.DB) error {
	if s.SavedListings == nil {
		s.SavedListings = []Listing{}
	}
	return nil
}

// SavedListing là bảng nối student <-> listing, khoá chính kép nên không thể trùng
type SavedListing struct {
	StudentID uint      `json:"studentId" gorm:"primaryKey"`
	ListingID uint      `json:"listingId" gorm:"primaryKey;index"`
	CreatedAt time.Time `json:"createdAt"`
}
