package config

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// InitApp tạo gin engine với CORS cho CLIENT_URL
func InitApp(cfg *Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", "X-Request-ID")
	configCors.AddExposeHeaders("X-Request-ID")
	configCors.AllowCredentials = true
	configCors.AllowOrigins = []string{cfg.ClientURL}
	router.Use(cors.New(configCors))

	router.SetTrustedProxies(nil)

	return router
}
