package controllers

import (
	"unibordima/dto"
	"unibordima/response"
	"unibordima/services"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Admins *services.AdminService
}

func NewAdminController(admins *services.AdminService) *AdminController {
	return &AdminController{Admins: admins}
}

// Login godoc
// @Summary  Admin login
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    body  body  dto.AdminLoginInput  true  "Credentials"
// @Success  200  {object}  dto.AdminAuthResponse
// @Failure  401  {object}  dto.ErrorResponse
// @Router   /admin/login [post]
func (ctl *AdminController) Login(c *gin.Context) {
	var in dto.AdminLoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	token, admin, err := ctl.Admins.Login(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"token": token, "admin": admin})
}

// GetStats godoc
// @Summary   Dashboard statistics
// @Tags      admin
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  dto.AdminStatsResponse
// @Router    /admin/stats [get]
func (ctl *AdminController) GetStats(c *gin.Context) {
	stats, err := ctl.Admins.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"stats": stats})
}

// GetStudents godoc
// @Summary   All students, newest first
// @Tags      admin
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  dto.StudentListResponse
// @Router    /admin/students [get]
func (ctl *AdminController) GetStudents(c *gin.Context) {
	students, err := ctl.Admins.ListStudents(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"count": len(students), "students": students})
}
