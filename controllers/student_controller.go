package controllers

import (
	"unibordima/dto"
	"unibordima/middleware"
	"unibordima/response"
	"unibordima/services"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	Students *services.StudentService
}

func NewStudentController(students *services.StudentService) *StudentController {
	return &StudentController{Students: students}
}

// Register godoc
// @Summary  Register a student account
// @Tags     students
// @Accept   json
// @Produce  json
// @Param    body  body  dto.RegisterInput  true  "Account"
// @Success  201  {object}  dto.StudentAuthResponse
// @Failure  400  {object}  dto.ErrorResponse
// @Failure  409  {object}  dto.ErrorResponse
// @Router   /students/register [post]
func (ctl *StudentController) Register(c *gin.Context) {
	var in dto.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	token, student, err := ctl.Students.Register(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"token": token, "student": student})
}

// Login godoc
// @Summary  Student login
// @Tags     students
// @Accept   json
// @Produce  json
// @Param    body  body  dto.LoginInput  true  "Credentials"
// @Success  200  {object}  dto.StudentAuthResponse
// @Failure  401  {object}  dto.ErrorResponse
// @Router   /students/login [post]
func (ctl *StudentController) Login(c *gin.Context) {
	var in dto.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	token, student, err := ctl.Students.Login(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"token": token, "student": student})
}

// GetMe godoc
// @Summary   Current student with saved listings
// @Tags      students
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  dto.StudentResponse
// @Router    /students/me [get]
func (ctl *StudentController) GetMe(c *gin.Context) {
	studentID, _ := middleware.CurrentUser(c)
	student, err := ctl.Students.GetProfile(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"student": student})
}

// UpdateProfile godoc
// @Summary   Update profile fields
// @Tags      students
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body  dto.UpdateProfileInput  true  "Profile"
// @Success   200  {object}  dto.StudentResponse
// @Router    /students/profile [put]
func (ctl *StudentController) UpdateProfile(c *gin.Context) {
	var in dto.UpdateProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	studentID, _ := middleware.CurrentUser(c)
	student, err := ctl.Students.UpdateProfile(c.Request.Context(), studentID, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"student": student})
}

// SaveListing godoc
// @Summary   Save a listing
// @Tags      students
// @Produce   json
// @Security  BearerAuth
// @Param     listingId  path  int  true  "Listing ID"
// @Success   200  {object}  dto.MessageResponse
// @Failure   404  {object}  dto.ErrorResponse
// @Failure   409  {object}  dto.ErrorResponse
// @Router    /students/saved-listings/{listingId} [post]
func (ctl *StudentController) SaveListing(c *gin.Context) {
	listingID, ok := parseID(c, "listingId", "Listing")
	if !ok {
		return
	}

	studentID, _ := middleware.CurrentUser(c)
	if err := ctl.Students.SaveListing(c.Request.Context(), studentID, listingID); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Listing saved")
}

// RemoveSavedListing godoc
// @Summary   Remove a saved listing
// @Tags      students
// @Produce   json
// @Security  BearerAuth
// @Param     listingId  path  int  true  "Listing ID"
// @Success   200  {object}  dto.MessageResponse
// @Failure   404  {object}  dto.ErrorResponse
// @Router    /students/saved-listings/{listingId} [delete]
func (ctl *StudentController) RemoveSavedListing(c *gin.Context) {
	listingID, ok := parseID(c, "listingId", "Saved listing")
	if !ok {
		return
	}

	studentID, _ := middleware.CurrentUser(c)
	if err := ctl.Students.RemoveSavedListing(c.Request.Context(), studentID, listingID); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Listing removed from saved")
}
