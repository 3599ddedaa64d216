package models

import (
	"strings"
	"time"

	"github.com/fiam/gounidecode/unidecode"
)

type ListingStatus string

const (
	StatusAvailable ListingStatus = "available"
	StatusRented    ListingStatus = "rented"
	StatusPending   ListingStatus = "pending"
)

// Từ vựng hợp lệ cho các trường enum của listing
var (
	ListingStatuses = []string{string(StatusAvailable), string(StatusRented), string(StatusPending)}
	RoomTypes       = []string{"Single", "Shared", "Studio", "Apartment"}
	Genders         = []string{"Male", "Female", "Mixed"}
	Amenities       = []string{"WiFi", "Parking", "Kitchen", "Laundry", "AC", "Heating", "Gym", "Study Room", "Common Area"}
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 2000
)

type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Location struct {
	Address     string      `json:"address" gorm:"not null"`
	City        string      `json:"city" gorm:"not null;index"`
	Coordinates Coordinates `json:"coordinates" gorm:"embedded"`
}

type ContactInfo struct {
	WhatsApp string `json:"whatsapp" gorm:"not null"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

type Landlord struct {
	Name    string `json:"name,omitempty"`
	Contact string `json:"contact,omitempty"`
}

type Listing struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	Title         string        `json:"title" gorm:"size:100;not null"`
	Description   string        `json:"description" gorm:"size:2000;not null"`
	Price         float64       `json:"price" gorm:"not null;index"`
	Location      Location      `json:"location" gorm:"embedded;embeddedPrefix:location_"`
	Images        []Image       `json:"images" gorm:"type:jsonb;serializer:json"`
	Amenities     []string      `json:"amenities" gorm:"type:jsonb;serializer:json"`
	Rules         []string      `json:"rules" gorm:"type:jsonb;serializer:json"`
	RoomType      string        `json:"roomType" gorm:"not null;index"`
	Gender        string        `json:"gender" gorm:"not null;index"`
	Distance      float64       `json:"distance" gorm:"not null;index"`
	ContactInfo   ContactInfo   `json:"contactInfo" gorm:"embedded;embeddedPrefix:contact_"`
	Landlord      Landlord      `json:"landlord" gorm:"embedded;embeddedPrefix:landlord_"`
	Status        ListingStatus `json:"status" gorm:"default:available;not null;index"`
	AverageRating float64       `json:"averageRating" gorm:"default:0;not null"`
	TotalReviews  int           `json:"totalReviews" gorm:"default:0;not null"`
	Views         int           `json:"views" gorm:"default:0;not null"`
	CreatedBy     uint          `json:"createdBy" gorm:"index"`
	Creator       *AdminRef     `json:"creator,omitempty" gorm:"foreignKey:CreatedBy;-:migration"`
	SearchText    string        `json:"-" gorm:"type:text"`
	Reviews       []Review      `json:"reviews,omitempty" gorm:"foreignKey:ListingID"`
	CreatedAt     time.Time     `json:"createdAt" gorm:"index"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// RefreshSearchText tính lại cột search_text từ title, description, address và city
func (l *Listing) RefreshSearchText() {
	l.SearchText = FoldText(strings.Join([]string{l.Title, l.Description, l.Location.Address, l.Location.City}, " "))
}

// FoldText transliterates to ASCII, lower-cases and collapses whitespace.
func FoldText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(unidecode.Unidecode(s))), " ")
}

func Contains(vocabulary []string, v string) bool {
	for _, item := range vocabulary {
		if item == v {
			return true
		}
	}
	return false
}
