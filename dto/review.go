package dto

import "unibordima/models"

type CreateReviewRequest struct {
	Listing uint   `json:"listing" validate:"required"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"required,max=500"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Comment *string `json:"comment" validate:"omitempty,min=1,max=500"`
}

type ModerateReviewRequest struct {
	IsApproved *bool `json:"isApproved" validate:"required"`
}

type ReviewResponse struct {
	Success bool          `json:"success"`
	Review  models.Review `json:"review"`
}

type ReviewListResponse struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Reviews []models.Review `json:"reviews"`
}
