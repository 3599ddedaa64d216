package services

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"

	"unibordima/dto"
	"unibordima/errors"
	"unibordima/models"
	"unibordima/validator"

	"gorm.io/gorm"
)

type ReviewServiceOptions struct {
	DB       *gorm.DB
	Ratings  *RatingAggregator
	Listings *ListingService
	Logger   *slog.Logger
}

// ReviewService quản lý review; mọi thao tác ghi đều tính lại rating của listing
type ReviewService struct {
	db       *gorm.DB
	ratings  *RatingAggregator
	listings *ListingService
	log      *slog.Logger
}

func NewReviewService(opts ReviewServiceOptions) *ReviewService {
	return &ReviewService{
		db:       opts.DB,
		ratings:  opts.Ratings,
		listings: opts.Listings,
		log:      opts.Logger,
	}
}

// Actor là người thực hiện thao tác (lấy từ token)
type Actor struct {
	ID   uint
	Role string
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// publicAuthor chọn các cột student được hiển thị công khai cùng review
func publicAuthor(db *gorm.DB) *gorm.DB {
	return db.Select("id", "first_name", "last_name", "profile_picture_url", "profile_picture_public_id")
}

// ListListingReviews trả về review đã duyệt của một listing, mới nhất trước
func (s *ReviewService) ListListingReviews(ctx context.Context, listingID uint) ([]models.Review, error) {
	reviews := []models.Review{}
	err := s.db.WithContext(ctx).
		Where("listing_id = ? AND is_approved = ?", listingID, true).
		Preload("Student", publicAuthor).
		Order("created_at DESC").Order("id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, errors.Internal(err)
	}
	return reviews, nil
}

// ListAllReviews cho admin: mọi review kèm student và tiêu đề listing
func (s *ReviewService) ListAllReviews(ctx context.Context) ([]models.Review, error) {
	reviews := []models.Review{}
	err := s.db.WithContext(ctx).
		Preload("Student", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "first_name", "last_name", "email", "profile_picture_url", "profile_picture_public_id")
		}).
		Preload("Listing", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title")
		}).
		Order("created_at DESC").Order("id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, errors.Internal(err)
	}
	return reviews, nil
}

// CreateReview tạo review mới. Mỗi student chỉ được review một listing một lần.
func (s *ReviewService) CreateReview(ctx context.Context, studentID uint, in dto.CreateReviewRequest) (*models.Review, error) {
	in.Comment = strings.TrimSpace(in.Comment)
	if err := validator.Validate(in); err != nil {
		return nil, err
	}

	var listingCount int64
	if err := s.db.WithContext(ctx).Model(&models.Listing{}).Where("id = ?", in.Listing).Count(&listingCount).Error; err != nil {
		return nil, errors.Internal(err)
	}
	if listingCount == 0 {
		return nil, errors.NotFound("Listing")
	}

	// Kiểm tra đã review chưa
	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.Review{}).
		Where("listing_id = ? AND student_id = ?", in.Listing, studentID).
		Count(&existing).Error; err != nil {
		return nil, errors.Internal(err)
	}
	if existing > 0 {
		return nil, errors.Conflict("You have already reviewed this listing")
	}

	review := models.Review{
		ListingID:  in.Listing,
		StudentID:  studentID,
		Rating:     in.Rating,
		Comment:    in.Comment,
		IsApproved: true,
	}
	if err := s.db.WithContext(ctx).Create(&review).Error; err != nil {
		// Hai request đồng thời có thể cùng vượt qua bước kiểm tra ở trên
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.Conflict("You have already reviewed this listing")
		}
		return nil, errors.Internal(err)
	}

	s.afterWrite(ctx, review.ListingID)
	s.attachAuthor(ctx, &review)
	return &review, nil
}

// UpdateReview chỉ tác giả mới được sửa rating/comment
func (s *ReviewService) UpdateReview(ctx context.Context, id, studentID uint, in dto.UpdateReviewRequest) (*models.Review, error) {
	if in.Comment != nil {
		trimmed := strings.TrimSpace(*in.Comment)
		in.Comment = &trimmed
	}
	if err := validator.Validate(in); err != nil {
		return nil, err
	}

	review, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.StudentID != studentID {
		return nil, errors.Forbidden("Not authorized to update this review")
	}

	updates := map[string]any{}
	if in.Rating != nil {
		review.Rating = *in.Rating
		updates["rating"] = review.Rating
	}
	if in.Comment != nil {
		review.Comment = *in.Comment
		updates["comment"] = review.Comment
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(review).Updates(updates).Error; err != nil {
			return nil, errors.Internal(err)
		}
	}

	s.afterWrite(ctx, review.ListingID)
	s.attachAuthor(ctx, review)
	return review, nil
}

// ModerateReview admin duyệt/ẩn review
func (s *ReviewService) ModerateReview(ctx context.Context, id uint, in dto.ModerateReviewRequest) (*models.Review, error) {
	if err := validator.Validate(in); err != nil {
		return nil, err
	}

	review, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	review.IsApproved = *in.IsApproved
	if err := s.db.WithContext(ctx).Model(review).Update("is_approved", review.IsApproved).Error; err != nil {
		return nil, errors.Internal(err)
	}

	s.afterWrite(ctx, review.ListingID)
	s.attachAuthor(ctx, review)
	return review, nil
}

// DeleteReview cho phép tác giả hoặc admin xoá
func (s *ReviewService) DeleteReview(ctx context.Context, id uint, actor Actor) error {
	review, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	isAuthor := actor.Role == models.RoleStudent && review.StudentID == actor.ID
	if !isAuthor && !actor.IsAdmin() {
		return errors.Forbidden("Not authorized to delete this review")
	}

	if err := s.db.WithContext(ctx).Delete(&models.Review{}, review.ID).Error; err != nil {
		return errors.Internal(err)
	}

	s.afterWrite(ctx, review.ListingID)
	return nil
}

func (s *ReviewService) find(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := s.db.WithContext(ctx).First(&review, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Review")
		}
		return nil, errors.Internal(err)
	}
	return &review, nil
}

// attachAuthor gắn thông tin student vào review vừa ghi, lỗi chỉ được log
func (s *ReviewService) attachAuthor(ctx context.Context, review *models.Review) {
	var author models.ReviewAuthor
	if err := publicAuthor(s.db.WithContext(ctx)).First(&author, review.StudentID).Error; err != nil {
		s.log.Warn("load review author failed", "review_id", review.ID, "error", err)
		return
	}
	review.Student = &author
}

// afterWrite tính lại rating và xoá cache trang listing
func (s *ReviewService) afterWrite(ctx context.Context, listingID uint) {
	s.ratings.Refresh(ctx, listingID)
	if s.listings != nil {
		s.listings.InvalidateListings(ctx)
	}
}
