package services

import (
	"context"
	"fmt"
	"log/slog"

	"unibordima/models"

	"gorm.io/gorm"
)

// RatingAggregator tính lại averageRating/totalReviews của listing từ các review đã duyệt
type RatingAggregator struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewRatingAggregator(db *gorm.DB, log *slog.Logger) *RatingAggregator {
	return &RatingAggregator{db: db, log: log}
}

type ratingSummary struct {
	Average float64
	Total   int
}

// Recalculate ghi đè rating của listing bằng giá trị tính từ review đã duyệt.
// Không có review nào thì average = 0, total = 0.
func (a *RatingAggregator) Recalculate(ctx context.Context, listingID uint) error {
	var summary ratingSummary
	if err := a.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
		Where("listing_id = ? AND is_approved = ?", listingID, true).
		Scan(&summary).Error; err != nil {
		return fmt.Errorf("aggregate ratings for listing %d: %w", listingID, err)
	}

	if err := a.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("id = ?", listingID).
		Updates(map[string]any{
			"average_rating": summary.Average,
			"total_reviews":  summary.Total,
		}).Error; err != nil {
		return fmt.Errorf("update rating for listing %d: %w", listingID, err)
	}
	return nil
}

// Refresh gọi Recalculate; lỗi chỉ được log và đếm, không trả về cho caller
func (a *RatingAggregator) Refresh(ctx context.Context, listingID uint) {
	if err := a.Recalculate(ctx, listingID); err != nil {
		ratingRefreshFailures.Inc()
		a.log.Error("rating refresh failed", "listing_id", listingID, "error", err)
	}
}
