package controllers

import (
	"unibordima/dto"
	"unibordima/middleware"
	"unibordima/response"
	"unibordima/services"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	Reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{Reviews: reviews}
}

// GetListingReviews godoc
// @Summary  Approved reviews of a listing, newest first
// @Tags     reviews
// @Produce  json
// @Param    listingId  path  int  true  "Listing ID"
// @Success  200  {object}  dto.ReviewListResponse
// @Router   /reviews/listing/{listingId} [get]
func (ctl *ReviewController) GetListingReviews(c *gin.Context) {
	listingID, ok := parseID(c, "listingId", "Listing")
	if !ok {
		return
	}

	reviews, err := ctl.Reviews.ListListingReviews(c.Request.Context(), listingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"count": len(reviews), "reviews": reviews})
}

// CreateReview godoc
// @Summary   Review a listing (once per student)
// @Tags      reviews
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body  dto.CreateReviewRequest  true  "Review"
// @Success   201  {object}  dto.ReviewResponse
// @Failure   400  {object}  dto.ErrorResponse
// @Failure   404  {object}  dto.ErrorResponse
// @Failure   409  {object}  dto.ErrorResponse
// @Router    /reviews [post]
func (ctl *ReviewController) CreateReview(c *gin.Context) {
	var in dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	studentID, _ := middleware.CurrentUser(c)
	review, err := ctl.Reviews.CreateReview(c.Request.Context(), studentID, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"review": review})
}

// UpdateReview godoc
// @Summary   Update own review
// @Tags      reviews
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path  int                      true  "Review ID"
// @Param     body  body  dto.UpdateReviewRequest  true  "Changes"
// @Success   200  {object}  dto.ReviewResponse
// @Failure   403  {object}  dto.ErrorResponse
// @Failure   404  {object}  dto.ErrorResponse
// @Router    /reviews/{id} [put]
func (ctl *ReviewController) UpdateReview(c *gin.Context) {
	id, ok := parseID(c, "id", "Review")
	if !ok {
		return
	}

	var in dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	studentID, _ := middleware.CurrentUser(c)
	review, err := ctl.Reviews.UpdateReview(c.Request.Context(), id, studentID, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"review": review})
}

// DeleteReview godoc
// @Summary   Delete a review (author or admin)
// @Tags      reviews
// @Produce   json
// @Security  BearerAuth
// @Param     id  path  int  true  "Review ID"
// @Success   200  {object}  dto.MessageResponse
// @Failure   403  {object}  dto.ErrorResponse
// @Failure   404  {object}  dto.ErrorResponse
// @Router    /reviews/{id} [delete]
func (ctl *ReviewController) DeleteReview(c *gin.Context) {
	id, ok := parseID(c, "id", "Review")
	if !ok {
		return
	}

	userID, role := middleware.CurrentUser(c)
	if err := ctl.Reviews.DeleteReview(c.Request.Context(), id, services.Actor{ID: userID, Role: role}); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Review deleted successfully")
}

// GetAllReviews godoc
// @Summary   All reviews (admin)
// @Tags      reviews
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  dto.ReviewListResponse
// @Router    /reviews [get]
func (ctl *ReviewController) GetAllReviews(c *gin.Context) {
	reviews, err := ctl.Reviews.ListAllReviews(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"count": len(reviews), "reviews": reviews})
}

// ModerateReview godoc
// @Summary   Approve or hide a review (admin)
// @Tags      reviews
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path  int                        true  "Review ID"
// @Param     body  body  dto.ModerateReviewRequest  true  "Moderation"
// @Success   200  {object}  dto.ReviewResponse
// @Failure   404  {object}  dto.ErrorResponse
// @Router    /reviews/{id}/moderate [put]
func (ctl *ReviewController) ModerateReview(c *gin.Context) {
	id, ok := parseID(c, "id", "Review")
	if !ok {
		return
	}

	var in dto.ModerateReviewRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	review, err := ctl.Reviews.ModerateReview(c.Request.Context(), id, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"review": review})
}
