package dto

import "unibordima/models"

// ListingInput là dữ liệu tạo/cập nhật listing. Field nil nghĩa là không gửi lên.
type ListingInput struct {
	Title           *string
	Description     *string
	Price           *float64
	Address         *string
	City            *string
	Lat             *float64
	Lng             *float64
	Amenities       *[]string
	Rules           *[]string
	RoomType        *string
	Gender          *string
	Distance        *float64
	WhatsApp        *string
	Phone           *string
	Email           *string
	LandlordName    *string
	LandlordContact *string
	Status          *string
}

// ListingListResponse là response của GET /listings
type ListingListResponse struct {
	Success  bool             `json:"success"`
	Count    int              `json:"count"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
	Listings []models.Listing `json:"listings"`
}

type ListingSearchResponse struct {
	Success  bool             `json:"success"`
	Count    int              `json:"count"`
	Listings []models.Listing `json:"listings"`
}

type ListingResponse struct {
	Success bool           `json:"success"`
	Listing models.Listing `json:"listing"`
}
