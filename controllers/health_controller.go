package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

func (ctl *HealthController) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

// Health kiểm tra kết nối database
func (ctl *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := ctl.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "status": "unavailable", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok", "database": "up"})
}
