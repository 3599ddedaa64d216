package services

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"unibordima/errors"
	"unibordima/models"
	"unibordima/validator"

	"gorm.io/gorm"
)

const (
	DefaultListingSort  = "-createdAt"
	DefaultListingPage  = 1
	DefaultListingLimit = 12
	MaxListingLimit     = 100
)

// Các kiểu sắp xếp được phép, key là giá trị query `sort`
var listingSortOrders = map[string]string{
	"-createdAt":     "created_at DESC",
	"createdAt":      "created_at ASC",
	"price":          "price ASC",
	"-price":         "price DESC",
	"distance":       "distance ASC",
	"-averageRating": "average_rating DESC",
}

// ListingQuery là bộ lọc + phân trang đã được kiểm tra cho GET /listings
type ListingQuery struct {
	Status      string
	MinPrice    *float64
	MaxPrice    *float64
	MaxDistance *float64
	RoomType    string
	Gender      string
	Sort        string
	Page        int
	Limit       int
}

// ParseListingQuery đọc query string. Giá trị rỗng coi như không truyền.
// Số không hợp lệ, số âm hoặc enum sai đều trả lỗi validation.
func ParseListingQuery(values url.Values) (ListingQuery, error) {
	q := ListingQuery{
		Status: string(models.StatusAvailable),
		Sort:   DefaultListingSort,
		Page:   DefaultListingPage,
		Limit:  DefaultListingLimit,
	}

	if v := values.Get("status"); v != "" {
		if err := validator.ValidateEnum("status", v, models.ListingStatuses); err != nil {
			return q, err
		}
		q.Status = v
	}
	if v := values.Get("roomType"); v != "" {
		if err := validator.ValidateEnum("roomType", v, models.RoomTypes); err != nil {
			return q, err
		}
		q.RoomType = v
	}
	if v := values.Get("gender"); v != "" {
		if err := validator.ValidateEnum("gender", v, models.Genders); err != nil {
			return q, err
		}
		q.Gender = v
	}

	var err error
	if q.MinPrice, err = parseBound(values, "minPrice"); err != nil {
		return q, err
	}
	if q.MaxPrice, err = parseBound(values, "maxPrice"); err != nil {
		return q, err
	}
	if q.MaxDistance, err = parseBound(values, "maxDistance"); err != nil {
		return q, err
	}

	if v := values.Get("sort"); v != "" {
		// Sort lạ thì dùng mặc định, không báo lỗi
		if _, ok := listingSortOrders[v]; ok {
			q.Sort = v
		}
	}

	if q.Page, err = parsePositiveInt(values, "page", DefaultListingPage); err != nil {
		return q, err
	}
	if q.Limit, err = parsePositiveInt(values, "limit", DefaultListingLimit); err != nil {
		return q, err
	}
	if q.Limit > MaxListingLimit {
		q.Limit = MaxListingLimit
	}

	return q, nil
}

func parseBound(values url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, errors.Validation(fmt.Sprintf("%s must be a number", key))
	}
	if v < 0 {
		return nil, errors.Validation(fmt.Sprintf("%s must not be negative", key))
	}
	return &v, nil
}

func parsePositiveInt(values url.Values, key string, def int) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, errors.Validation(fmt.Sprintf("%s must be a positive integer", key))
	}
	return v, nil
}

// Filter áp dụng các điều kiện WHERE. Dùng chung cho Count và Find.
func (q ListingQuery) Filter(db *gorm.DB) *gorm.DB {
	db = db.Where("status = ?", q.Status)
	if q.MinPrice != nil {
		db = db.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		db = db.Where("price <= ?", *q.MaxPrice)
	}
	if q.MaxDistance != nil {
		db = db.Where("distance <= ?", *q.MaxDistance)
	}
	if q.RoomType != "" {
		db = db.Where("room_type = ?", q.RoomType)
	}
	if q.Gender != "" {
		db = db.Where("gender = ?", q.Gender)
	}
	return db
}

// Paginate sắp xếp (luôn thêm id để ổn định) rồi cắt trang
func (q ListingQuery) Paginate(db *gorm.DB) *gorm.DB {
	order, ok := listingSortOrders[q.Sort]
	if !ok {
		order = listingSortOrders[DefaultListingSort]
	}
	return db.Order(order).Order("id ASC").Offset(q.Offset()).Limit(q.Limit)
}

func (q ListingQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// CacheKey dựng key ổn định cho cùng một bộ lọc
func (q ListingQuery) CacheKey() string {
	return fmt.Sprintf("status=%s|min=%s|max=%s|dist=%s|room=%s|gender=%s|sort=%s|page=%d|limit=%d",
		q.Status, fmtBound(q.MinPrice), fmtBound(q.MaxPrice), fmtBound(q.MaxDistance),
		q.RoomType, q.Gender, q.Sort, q.Page, q.Limit)
}

func fmtBound(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
