package services

import (
	"fmt"
	"time"

	"unibordima/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims là payload của access token
type Claims struct {
	ID   uint   `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService ký và kiểm tra JWT HS256
type TokenService struct {
	secret []byte
	expiry time.Duration
}

func NewTokenService(secret string, expiry time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), expiry: expiry}
}

// GenerateToken tạo token cho user id với role tương ứng
func (s *TokenService) GenerateToken(id uint, role string) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		ID:   id,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken kiểm tra chữ ký, hạn dùng và trả về claims
func (s *TokenService) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Not authorized, token failed", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == 0 || claims.Role == "" {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Not authorized, token failed", errors.ErrUnauthorized)
	}
	return claims, nil
}
