package services

import (
	"context"
	"testing"

	"unibordima/dto"
	"unibordima/errors"
	"unibordima/models"
	"unibordima/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReview_OnePerStudentAndListing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	listing := testutil.NewListing(t, f.db, nil)
	student := testutil.NewStudent(t, f.db, "once@example.com")

	_, err := f.reviews.CreateReview(ctx, student.ID, dto.CreateReviewRequest{Listing: listing.ID, Rating: 4, Comment: "Good"})
	require.NoError(t, err)

	_, err = f.reviews.CreateReview(ctx, student.ID, dto.CreateReviewRequest{Listing: listing.ID, Rating: 1, Comment: "Changed my mind"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConflict)
	assert.Equal(t, "You have already reviewed this listing", errors.GetAppError(err).Message)

	var count int64
	require.NoError(t, f.db.Model(&models.Review{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 4.0, loadListing(t, f, listing.ID).AverageRating)
}

func TestCreateReview_ListingMustExist(t *testing.T) {
	f := newFixture(t)
	student := testutil.NewStudent(t, f.db, "ghost@example.com")

	_, err := f.reviews.CreateReview(context.Background(), student.ID, dto.CreateReviewRequest{Listing: 404, Rating: 3, Comment: "?"})

	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestCreateReview_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   dto.CreateReviewRequest
	}{
		{"rating too low", dto.CreateReviewRequest{Listing: 1, Rating: 0, Comment: "x"}},
		{"rating too high", dto.CreateReviewRequest{Listing: 1, Rating: 6, Comment: "x"}},
		{"missing comment", dto.CreateReviewRequest{Listing: 1, Rating: 3}},
		{"blank comment", dto.CreateReviewRequest{Listing: 1, Rating: 3, Comment: "   "}},
		{"missing listing", dto.CreateReviewRequest{Rating: 3, Comment: "x"}},
	}

	f := newFixture(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.reviews.CreateReview(context.Background(), 1, tt.in)
			assert.ErrorIs(t, err, errors.ErrValidation)
		})
	}
}

func TestUpdateReview_OnlyAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	listing := testutil.NewListing(t, f.db, nil)
	author := testutil.NewStudent(t, f.db, "author@example.com")
	other := testutil.NewStudent(t, f.db, "other@example.com")

	review, err := f.reviews.CreateReview(ctx, author.ID, dto.CreateReviewRequest{Listing: listing.ID, Rating: 4, Comment: "Good"})
	require.NoError(t, err)

	_, err = f.reviews.UpdateReview(ctx, review.ID, other.ID, dto.UpdateReviewRequest{Rating: ptr(1)})
	assert.ErrorIs(t, err, errors.ErrForbidden)
	assert.Equal(t, "Not authorized to update this review", errors.GetAppError(err).Message)

	updated, err := f.reviews.UpdateReview(ctx, review.ID, author.ID, dto.UpdateReviewRequest{Comment: ptr("Very good")})
	require.NoError(t, err)
	assert.Equal(t, "Very good", updated.Comment)
	assert.Equal(t, 4, updated.Rating)

	_, err = f.reviews.UpdateReview(ctx, review.ID, author.ID, dto.UpdateReviewRequest{Comment: ptr("  ")})
	assert.ErrorIs(t, err, errors.ErrValidation)

	_, err = f.reviews.UpdateReview(ctx, 999, author.ID, dto.UpdateReviewRequest{Rating: ptr(2)})
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestReviewWrites_ReturnAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	listing := testutil.NewListing(t, f.db, nil)
	student := testutil.NewStudent(t, f.db, "writer@example.com")

	created, err := f.reviews.CreateReview(ctx, student.ID, dto.CreateReviewRequest{Listing: listing.ID, Rating: 4, Comment: "  Clean and quiet  "})
	require.NoError(t, err)
	assert.Equal(t, "Clean and quiet", created.Comment)
	require.NotNil(t, created.Student)
	assert.Equal(t, student.ID, created.Student.ID)
	assert.Equal(t, "Nimal", created.Student.FirstName)
	assert.Equal(t, "Perera", created.Student.LastName)
	assert.Empty(t, created.Student.Email)

	updated, err := f.reviews.UpdateReview(ctx, created.ID, student.ID, dto.UpdateReviewRequest{Rating: ptr(5)})
	require.NoError(t, err)
	require.NotNil(t, updated.Student)
	assert.Equal(t, "Nimal", updated.Student.FirstName)

	moderated, err := f.reviews.ModerateReview(ctx, created.ID, dto.ModerateReviewRequest{IsApproved: ptr(false)})
	require.NoError(t, err)
	require.NotNil(t, moderated.Student)
	assert.Equal(t, "Perera", moderated.Student.LastName)
}

func TestDeleteReview_Permissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	listing := testutil.NewListing(t, f.db, nil)
	author := testutil.NewStudent(t, f.db, "author@example.com")
	other := testutil.NewStudent(t, f.db, "other@example.com")

	review, err := f.reviews.CreateReview(ctx, author.ID, dto.CreateReviewRequest{Listing: listing.ID, Rating: 5, Comment: "Top"})
	require.NoError(t, err)

	err = f.reviews.DeleteReview(ctx, review.ID, Actor{ID: other.ID, Role: models.RoleStudent})
	assert.ErrorIs(t, err, errors.ErrForbidden)

	// Admin xoá được review của bất kỳ ai
	err = f.reviews.DeleteReview(ctx, review.ID, Actor{ID: 99, Role: models.RoleAdmin})
	require.NoError(t, err)

	got := loadListing(t, f, listing.ID)
	assert.Equal(t, 0.0, got.AverageRating)
	assert.Equal(t, 0, got.TotalReviews)

	err = f.reviews.DeleteReview(ctx, review.ID, Actor{ID: author.ID, Role: models.RoleStudent})
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestDeleteReview_AdminIDDoesNotImpersonateStudent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	listing := testutil.NewListing(t, f.db, nil)
	author := testutil.NewStudent(t, f.db, "author@example.com")

	review, err := f.reviews.CreateReview(ctx, author.ID, dto.CreateReviewRequest{Listing: listing.ID, Rating: 5, Comment: "Top"})
	require.NoError(t, err)

	// Role lạ với id trùng tác giả không được coi là tác giả
	err = f.reviews.DeleteReview(ctx, review.ID, Actor{ID: author.ID, Role: "guest"})
	assert.ErrorIs(t, err, errors.ErrForbidden)
}

func TestListReviews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	listing := testutil.NewListing(t, f.db, func(l *models.Listing) { l.Title = "Garden room" })
	alice := testutil.NewStudent(t, f.db, "alice@example.com")
	bob := testutil.NewStudent(t, f.db, "bob@example.com")

	_, err := f.reviews.CreateReview(ctx, alice.ID, dto.CreateReviewRequest{Listing: listing.ID, Rating: 5, Comment: "A"})
	require.NoError(t, err)
	hidden, err := f.reviews.CreateReview(ctx, bob.ID, dto.CreateReviewRequest{Listing: listing.ID, Rating: 2, Comment: "B"})
	require.NoError(t, err)
	_, err = f.reviews.ModerateReview(ctx, hidden.ID, dto.ModerateReviewRequest{IsApproved: ptr(false)})
	require.NoError(t, err)

	public, err := f.reviews.ListListingReviews(ctx, listing.ID)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, alice.ID, public[0].StudentID)
	assert.Empty(t, public[0].Student.Email)

	all, err := f.reviews.ListAllReviews(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, r := range all {
		require.NotNil(t, r.Student)
		require.NotNil(t, r.Listing)
		assert.NotEmpty(t, r.Student.Email)
		assert.Equal(t, "Garden room", r.Listing.Title)
	}
}

func TestModerateReview_RequiresFlag(t *testing.T) {
	f := newFixture(t)

	_, err := f.reviews.ModerateReview(context.Background(), 1, dto.ModerateReviewRequest{})

	assert.ErrorIs(t, err, errors.ErrValidation)
}
