package validator

import (
	"fmt"
	"math"
	"strings"

	"unibordima/errors"
	"unibordima/models"

	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Ngưỡng tương đồng tối thiểu để gợi ý
const minSuggestionSimilarity = 0.5

// ValidateListing kiểm tra toàn bộ bất biến của một listing đã merge xong
func ValidateListing(l *models.Listing) error {
	if strings.TrimSpace(l.Title) == "" {
		return required("title")
	}
	if len([]rune(l.Title)) > models.MaxTitleLength {
		return errors.Validation(fmt.Sprintf("title must be at most %d characters", models.MaxTitleLength))
	}
	if strings.TrimSpace(l.Description) == "" {
		return required("description")
	}
	if len([]rune(l.Description)) > models.MaxDescriptionLength {
		return errors.Validation(fmt.Sprintf("description must be at most %d characters", models.MaxDescriptionLength))
	}
	if err := nonNegative("price", l.Price); err != nil {
		return err
	}
	if err := nonNegative("distance", l.Distance); err != nil {
		return err
	}
	if strings.TrimSpace(l.Location.Address) == "" {
		return required("location.address")
	}
	if strings.TrimSpace(l.Location.City) == "" {
		return required("location.city")
	}
	if err := validateCoordinates(l.Location.Coordinates); err != nil {
		return err
	}
	if strings.TrimSpace(l.ContactInfo.WhatsApp) == "" {
		return required("contactInfo.whatsapp")
	}
	if l.ContactInfo.Email != "" {
		if err := ValidateEmail(l.ContactInfo.Email); err != nil {
			return errors.Validation("contactInfo.email must be a valid email address")
		}
	}
	if err := ValidateEnum("roomType", l.RoomType, models.RoomTypes); err != nil {
		return err
	}
	if err := ValidateEnum("gender", l.Gender, models.Genders); err != nil {
		return err
	}
	if err := ValidateEnum("status", string(l.Status), models.ListingStatuses); err != nil {
		return err
	}
	for _, amenity := range l.Amenities {
		if err := ValidateEnum("amenities", amenity, models.Amenities); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEnum trả lỗi validation kèm gợi ý "did you mean" nếu value không thuộc vocabulary
func ValidateEnum(field, value string, vocabulary []string) error {
	if models.Contains(vocabulary, value) {
		return nil
	}
	if value == "" {
		return required(field)
	}
	msg := fmt.Sprintf("%s must be one of: %s", field, strings.Join(vocabulary, ", "))
	if suggestion := Suggest(value, vocabulary); suggestion != "" {
		msg = fmt.Sprintf("%s (did you mean %q?)", msg, suggestion)
	}
	return errors.Validation(msg)
}

// Suggest trả về từ gần nhất trong vocabulary, hoặc "" nếu không đủ giống
func Suggest(value string, vocabulary []string) string {
	lowered := make([]string, len(vocabulary))
	original := make(map[string]string, len(vocabulary))
	for i, v := range vocabulary {
		lowered[i] = strings.ToLower(v)
		original[lowered[i]] = v
	}

	input := strings.ToLower(strings.TrimSpace(value))
	closest := closestmatch.New(lowered, []int{2, 3}).Closest(input)
	if closest == "" {
		return ""
	}
	if similarity(input, closest) < minSuggestionSimilarity {
		return ""
	}
	return original[closest]
}

// Tính độ tương đồng giữa hai chuỗi
func similarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

func validateCoordinates(c models.Coordinates) error {
	if math.IsNaN(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return errors.Validation("location.coordinates.lat must be between -90 and 90")
	}
	if math.IsNaN(c.Lng) || c.Lng < -180 || c.Lng > 180 {
		return errors.Validation("location.coordinates.lng must be between -180 and 180")
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return errors.Validation(field + " must be a non-negative number")
	}
	return nil
}

func required(field string) error {
	return errors.NewAppError(errors.ErrCodeRequiredField, field+" is required", errors.ErrValidation)
}
