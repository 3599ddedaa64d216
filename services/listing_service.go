package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"sort"
	"strings"
	"time"

	"unibordima/dto"
	"unibordima/errors"
	"unibordima/models"
	"unibordima/validator"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const listingsGenKey = "listings:gen"

// Các cột admin được phép sửa qua UpdateListing
var editableListingColumns = []string{
	"title", "description", "price",
	"location_address", "location_city", "location_lat", "location_lng",
	"images", "amenities", "rules", "room_type", "gender", "distance",
	"contact_whatsapp", "contact_phone", "contact_email",
	"landlord_name", "landlord_contact", "status", "search_text",
}

type ListingServiceOptions struct {
	DB       *gorm.DB
	Images   ImageStore
	Cache    Cache
	CacheTTL time.Duration
	Logger   *slog.Logger
}

type ListingService struct {
	db       *gorm.DB
	images   ImageStore
	cache    Cache
	cacheTTL time.Duration
	log      *slog.Logger
}

func NewListingService(opts ListingServiceOptions) *ListingService {
	if opts.Cache == nil {
		opts.Cache = NopCache{}
	}
	return &ListingService{
		db:       opts.DB,
		images:   opts.Images,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		log:      opts.Logger,
	}
}

// ListingPage là một trang kết quả của ListListings
type ListingPage struct {
	Listings []models.Listing `json:"listings"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
}

// ListListings trả về một trang listing theo bộ lọc, có cache theo generation
func (s *ListingService) ListListings(ctx context.Context, q ListingQuery) (*ListingPage, error) {
	key := s.listCacheKey(ctx, q)

	var cached ListingPage
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("listing cache read failed", "key", key, "error", err)
	}
	recordCacheLookup("listings", found)
	if found {
		return &cached, nil
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Listing{}).Scopes(q.Filter).Count(&total).Error; err != nil {
		return nil, errors.Internal(err)
	}

	listings := []models.Listing{}
	if err := s.db.WithContext(ctx).Scopes(q.Filter, q.Paginate, withCreator).Find(&listings).Error; err != nil {
		return nil, errors.Internal(err)
	}

	page := &ListingPage{
		Listings: listings,
		Total:    total,
		Page:     q.Page,
		Pages:    dto.Pages(total, q.Limit),
	}

	if err := s.cache.Set(ctx, key, page, s.cacheTTL); err != nil {
		s.log.Warn("listing cache write failed", "key", key, "error", err)
	}
	return page, nil
}

func (s *ListingService) listCacheKey(ctx context.Context, q ListingQuery) string {
	var gen int64
	if _, err := s.cache.Get(ctx, listingsGenKey, &gen); err != nil {
		s.log.Warn("listing cache generation read failed", "error", err)
	}
	return fmt.Sprintf("listings:%d:%s", gen, q.CacheKey())
}

// InvalidateListings làm mọi trang listing đã cache hết hiệu lực, kèm số liệu dashboard
func (s *ListingService) InvalidateListings(ctx context.Context) {
	if _, err := s.cache.Incr(ctx, listingsGenKey); err != nil {
		s.log.Warn("listing cache invalidation failed", "error", err)
	}
	if err := s.cache.Delete(ctx, adminStatsKey); err != nil {
		s.log.Warn("admin stats cache invalidation failed", "error", err)
	}
}

// SearchListings tìm full-text trong các listing đang available, xếp theo độ liên quan
func (s *ListingService) SearchListings(ctx context.Context, query string) ([]models.Listing, error) {
	folded := models.FoldText(query)
	if folded == "" {
		return nil, errors.Validation("Search query is required")
	}

	listings := []models.Listing{}
	db := s.db.WithContext(ctx).Scopes(withCreator).Where("status = ?", models.StatusAvailable)

	if s.db.Dialector.Name() == "postgres" {
		err := db.
			Where("to_tsvector('simple', search_text) @@ plainto_tsquery('simple', ?)", folded).
			Order(clause.OrderBy{Expression: clause.Expr{
				SQL:                "ts_rank(to_tsvector('simple', search_text), plainto_tsquery('simple', ?)) DESC, id ASC",
				Vars:               []any{folded},
				WithoutParentheses: true,
			}}).
			Find(&listings).Error
		if err != nil {
			return nil, errors.Internal(err)
		}
		return listings, nil
	}

	// Các dialect khác: mọi từ đều phải xuất hiện, xếp theo số lần xuất hiện
	terms := strings.Fields(folded)
	for _, term := range terms {
		db = db.Where("search_text LIKE ? ESCAPE '\\'", "%"+escapeLike(term)+"%")
	}
	if err := db.Order("id ASC").Find(&listings).Error; err != nil {
		return nil, errors.Internal(err)
	}

	scores := make(map[uint]int, len(listings))
	for _, l := range listings {
		for _, term := range terms {
			scores[l.ID] += strings.Count(l.SearchText, term)
		}
	}
	sort.SliceStable(listings, func(i, j int) bool {
		return scores[listings[i].ID] > scores[listings[j].ID]
	})
	return listings, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// GetListing tăng views lên 1 rồi trả về listing kèm review đã duyệt
func (s *ListingService) GetListing(ctx context.Context, id uint) (*models.Listing, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return nil, errors.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errors.NotFound("Listing")
	}
	listingViewsTotal.Inc()

	var listing models.Listing
	err := s.db.WithContext(ctx).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_approved = ?", true).Order("created_at DESC").Order("id DESC")
		}).
		Preload("Reviews.Student", publicAuthor).
		Scopes(withCreator).
		First(&listing, id).Error
	if err != nil {
		return nil, s.lookupError(err)
	}
	return &listing, nil
}

// CreateListing validate, upload ảnh rồi lưu listing mới
func (s *ListingService) CreateListing(ctx context.Context, adminID uint, in dto.ListingInput, files []*multipart.FileHeader) (*models.Listing, error) {
	if err := requireListingFields(in); err != nil {
		return nil, err
	}

	listing := models.Listing{
		Status:    models.StatusAvailable,
		CreatedBy: adminID,
		Images:    []models.Image{},
		Amenities: []string{},
		Rules:     []string{},
	}
	applyListingInput(&listing, in)
	if err := validator.ValidateListing(&listing); err != nil {
		return nil, err
	}

	if len(files) > 0 {
		images, err := UploadImages(ctx, s.images, files)
		if err != nil {
			return nil, errors.Internal(err)
		}
		listing.Images = images
	}

	listing.RefreshSearchText()
	if err := s.db.WithContext(ctx).Create(&listing).Error; err != nil {
		return nil, errors.Internal(err)
	}

	s.InvalidateListings(ctx)
	return &listing, nil
}

// UpdateListing cập nhật các field được gửi lên. Có file mới thì thay toàn bộ ảnh.
func (s *ListingService) UpdateListing(ctx context.Context, id uint, in dto.ListingInput, files []*multipart.FileHeader) (*models.Listing, error) {
	var listing models.Listing
	if err := s.db.WithContext(ctx).First(&listing, id).Error; err != nil {
		return nil, s.lookupError(err)
	}

	applyListingInput(&listing, in)
	if err := validator.ValidateListing(&listing); err != nil {
		return nil, err
	}

	oldImages := listing.Images
	if len(files) > 0 {
		images, err := UploadImages(ctx, s.images, files)
		if err != nil {
			return nil, errors.Internal(err)
		}
		listing.Images = images
	}

	listing.RefreshSearchText()
	if err := s.db.WithContext(ctx).Model(&listing).Select(editableListingColumns).Updates(&listing).Error; err != nil {
		return nil, errors.Internal(err)
	}

	if len(files) > 0 {
		DeleteImages(ctx, s.images, oldImages, s.log)
	}

	s.InvalidateListings(ctx)
	return &listing, nil
}

// DeleteListing xoá review, saved listing và listing trong một transaction, sau đó xoá ảnh
func (s *ListingService) DeleteListing(ctx context.Context, id uint) error {
	var listing models.Listing
	if err := s.db.WithContext(ctx).First(&listing, id).Error; err != nil {
		return s.lookupError(err)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", id).Delete(&models.SavedListing{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Listing{}, id).Error
	})
	if err != nil {
		return errors.Internal(err)
	}

	DeleteImages(ctx, s.images, listing.Images, s.log)
	s.InvalidateListings(ctx)
	return nil
}

// withCreator nạp username của admin đã tạo listing
func withCreator(db *gorm.DB) *gorm.DB {
	return db.Preload("Creator", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "username")
	})
}

func (s *ListingService) lookupError(err error) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.NotFound("Listing")
	}
	return errors.Internal(err)
}

// requireListingFields kiểm tra các field bắt buộc khi tạo mới
func requireListingFields(in dto.ListingInput) error {
	required := []struct {
		name    string
		present bool
	}{
		{"title", in.Title != nil},
		{"description", in.Description != nil},
		{"price", in.Price != nil},
		{"location.address", in.Address != nil},
		{"location.city", in.City != nil},
		{"location.coordinates.lat", in.Lat != nil},
		{"location.coordinates.lng", in.Lng != nil},
		{"roomType", in.RoomType != nil},
		{"gender", in.Gender != nil},
		{"distance", in.Distance != nil},
		{"contactInfo.whatsapp", in.WhatsApp != nil},
	}
	for _, f := range required {
		if !f.present {
			return errors.NewAppError(errors.ErrCodeRequiredField, f.name+" is required", errors.ErrValidation)
		}
	}
	return nil
}

func applyListingInput(l *models.Listing, in dto.ListingInput) {
	setString(&l.Title, in.Title)
	setString(&l.Description, in.Description)
	setFloat(&l.Price, in.Price)
	setString(&l.Location.Address, in.Address)
	setString(&l.Location.City, in.City)
	setFloat(&l.Location.Coordinates.Lat, in.Lat)
	setFloat(&l.Location.Coordinates.Lng, in.Lng)
	setString(&l.RoomType, in.RoomType)
	setString(&l.Gender, in.Gender)
	setFloat(&l.Distance, in.Distance)
	setString(&l.ContactInfo.WhatsApp, in.WhatsApp)
	setString(&l.ContactInfo.Phone, in.Phone)
	setString(&l.ContactInfo.Email, in.Email)
	setString(&l.Landlord.Name, in.LandlordName)
	setString(&l.Landlord.Contact, in.LandlordContact)
	if in.Amenities != nil {
		l.Amenities = *in.Amenities
	}
	if in.Rules != nil {
		l.Rules = *in.Rules
	}
	if in.Status != nil {
		l.Status = models.ListingStatus(*in.Status)
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
