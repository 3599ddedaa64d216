package config

import (
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
)

// ConnectCloudinary khởi tạo client Cloudinary từ CLOUDINARY_URL
func ConnectCloudinary(cfg *Config) (*cloudinary.Cloudinary, error) {
	if cfg.CloudinaryURL == "" {
		return nil, fmt.Errorf("connect cloudinary: CLOUDINARY_URL is empty")
	}
	cld, err := cloudinary.NewFromURL(cfg.CloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("connect cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return cld, nil
}
