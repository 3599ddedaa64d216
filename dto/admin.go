package dto

import "unibordima/models"

type AdminLoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminAuthResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	Admin   models.Admin `json:"admin"`
}

// AdminStats là số liệu dashboard
type AdminStats struct {
	TotalListings     int64            `json:"totalListings"`
	AvailableListings int64            `json:"availableListings"`
	RentedListings    int64            `json:"rentedListings"`
	TotalStudents     int64            `json:"totalStudents"`
	TotalReviews      int64            `json:"totalReviews"`
	RecentListings    []models.Listing `json:"recentListings"`
}

type AdminStatsResponse struct {
	Success bool       `json:"success"`
	Stats   AdminStats `json:"stats"`
}

type StudentListResponse struct {
	Success  bool             `json:"success"`
	Count    int              `json:"count"`
	Students []models.Student `json:"students"`
}
