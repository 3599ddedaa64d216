package services

import "golang.org/x/crypto/bcrypt"

// BcryptCost khớp với dữ liệu cũ
const BcryptCost = 12

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// CheckPassword so sánh mật khẩu với hash, sai trả về false
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
