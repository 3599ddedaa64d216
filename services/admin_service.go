package services

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"
	"time"

	"unibordima/dto"
	"unibordima/errors"
	"unibordima/models"
	"unibordima/validator"

	"gorm.io/gorm"
)

const (
	adminStatsKey = "admin:stats"
	// Dashboard chỉ cần gần đúng
	adminStatsTTL     = 30 * time.Second
	recentListingsMax = 5
)

type AdminServiceOptions struct {
	DB     *gorm.DB
	Tokens *TokenService
	Cache  Cache
	Logger *slog.Logger
}

type AdminService struct {
	db     *gorm.DB
	tokens *TokenService
	cache  Cache
	log    *slog.Logger
}

func NewAdminService(opts AdminServiceOptions) *AdminService {
	if opts.Cache == nil {
		opts.Cache = NopCache{}
	}
	return &AdminService{db: opts.DB, tokens: opts.Tokens, cache: opts.Cache, log: opts.Logger}
}

// Login đăng nhập admin. Tài khoản bị khoá cũng trả về sai thông tin đăng nhập.
func (s *AdminService) Login(ctx context.Context, in dto.AdminLoginInput) (string, *models.Admin, error) {
	in.Email = validator.NormalizeEmail(in.Email)
	if err := validator.Validate(in); err != nil {
		return "", nil, err
	}

	var admin models.Admin
	if err := s.db.WithContext(ctx).Where("email = ?", in.Email).First(&admin).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, invalidCredentials()
		}
		return "", nil, errors.Internal(err)
	}
	if !admin.IsActive || !CheckPassword(admin.Password, in.Password) {
		return "", nil, invalidCredentials()
	}

	token, err := s.tokens.GenerateToken(admin.ID, models.RoleAdmin)
	if err != nil {
		return "", nil, errors.Internal(err)
	}
	return token, &admin, nil
}

// Stats trả về số liệu dashboard, cache ngắn hạn
func (s *AdminService) Stats(ctx context.Context) (*dto.AdminStats, error) {
	var stats dto.AdminStats
	found, err := s.cache.Get(ctx, adminStatsKey, &stats)
	if err != nil {
		s.log.Warn("admin stats cache read failed", "error", err)
	}
	recordCacheLookup("admin_stats", found)
	if found {
		return &stats, nil
	}

	db := s.db.WithContext(ctx)
	counts := []struct {
		dst   *int64
		model any
		where []any
	}{
		{&stats.TotalListings, &models.Listing{}, nil},
		{&stats.AvailableListings, &models.Listing{}, []any{"status = ?", models.StatusAvailable}},
		{&stats.RentedListings, &models.Listing{}, []any{"status = ?", models.StatusRented}},
		{&stats.TotalStudents, &models.Student{}, nil},
		{&stats.TotalReviews, &models.Review{}, nil},
	}
	for _, c := range counts {
		q := db.Model(c.model)
		if len(c.where) > 0 {
			q = q.Where(c.where[0], c.where[1:]...)
		}
		if err := q.Count(c.dst).Error; err != nil {
			return nil, errors.Internal(err)
		}
	}

	stats.RecentListings = []models.Listing{}
	if err := db.Scopes(withCreator).Order("created_at DESC").Order("id DESC").Limit(recentListingsMax).Find(&stats.RecentListings).Error; err != nil {
		return nil, errors.Internal(err)
	}

	if err := s.cache.Set(ctx, adminStatsKey, stats, adminStatsTTL); err != nil {
		s.log.Warn("admin stats cache write failed", "error", err)
	}
	return &stats, nil
}

// ListStudents trả về toàn bộ student, mới nhất trước
func (s *AdminService) ListStudents(ctx context.Context) ([]models.Student, error) {
	students := []models.Student{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&students).Error; err != nil {
		return nil, errors.Internal(err)
	}
	return students, nil
}

// EnsureAdmin tạo admin nếu chưa có email/username này. created=false khi đã tồn tại.
func (s *AdminService) EnsureAdmin(ctx context.Context, username, email, password string) (admin *models.Admin, created bool, err error) {
	email = validator.NormalizeEmail(email)
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, false, errors.Validation("username is required")
	}
	if err := validator.ValidateEmail(email); err != nil {
		return nil, false, err
	}
	if len(password) < models.MinPasswordLength {
		return nil, false, errors.Validation("password must be at least 6 characters")
	}

	var existing models.Admin
	err = s.db.WithContext(ctx).Where("email = ? OR username = ?", email, username).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, errors.Internal(err)
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return nil, false, errors.Internal(err)
	}
	newAdmin := models.Admin{
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := s.db.WithContext(ctx).Create(&newAdmin).Error; err != nil {
		return nil, false, errors.Internal(err)
	}
	return &newAdmin, true, nil
}
