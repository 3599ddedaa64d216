package middleware

import (
	"strings"

	"unibordima/response"
	"unibordima/services"

	"github.com/gin-gonic/gin"
)

// Key trong gin.Context
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// AuthMiddleware xử lý authentication, roles rỗng nghĩa là chỉ cần đăng nhập
func AuthMiddleware(tokens *services.TokenService, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "Not authorized, no token")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := tokens.ParseToken(tokenString)
		if err != nil {
			response.Error(c, err)
			return
		}

		// Kiểm tra role nếu có yêu cầu
		if len(roles) > 0 && !hasRole(claims.Role, roles) {
			response.Forbidden(c)
			return
		}

		// Lưu thông tin user vào context
		c.Set(ContextUserID, claims.ID)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}

// RoleMiddleware kiểm tra role của user đã xác thực
func RoleMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		if role == "" {
			response.Unauthorized(c, "Not authorized")
			return
		}
		if !hasRole(role, roles) {
			response.Forbidden(c)
			return
		}
		c.Next()
	}
}

func hasRole(role string, roles []string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// CurrentUser lấy id và role đã được AuthMiddleware gán
func CurrentUser(c *gin.Context) (uint, string) {
	return c.GetUint(ContextUserID), c.GetString(ContextUserRole)
}
