package models

import "time"

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 500
)

type Review struct {
	ID         uint          `json:"id" gorm:"primaryKey"`
	ListingID  uint          `json:"listingId" gorm:"not null;uniqueIndex:idx_review_listing_student;index"`
	StudentID  uint          `json:"studentId" gorm:"not null;uniqueIndex:idx_review_listing_student"`
	Rating     int           `json:"rating" gorm:"not null"` // 1..5
	Comment    string        `json:"comment" gorm:"size:500;not null"`
	IsApproved bool          `json:"isApproved" gorm:"default:true;not null"`
	Helpful    int           `json:"helpful" gorm:"default:0;not null"`
	CreatedAt  time.Time     `json:"createdAt" gorm:"index"`
	UpdatedAt  time.Time     `json:"updatedAt"`
	Student    *ReviewAuthor `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Listing    *ListingRef   `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
}

// ReviewAuthor là phần thông tin student hiển thị cùng review
type ReviewAuthor struct {
	ID             uint   `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email,omitempty"`
	ProfilePicture Image  `json:"profilePicture" gorm:"embedded;embeddedPrefix:profile_picture_"`
}

func (ReviewAuthor) TableName() string { return "students" }

// ListingRef chỉ gồm id và title, dùng cho danh sách review của admin
type ListingRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func (ListingRef) TableName() string { return "listings" }
