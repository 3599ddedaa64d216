package dto

// ErrorResponse là body lỗi chung (dùng cho swagger)
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Code    string `json:"code" example:"NOT_FOUND"`
	Message string `json:"message" example:"Listing not found"`
}

type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message"`
}

// Pages tính tổng số trang, làm tròn lên
func Pages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
