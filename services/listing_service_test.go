package services

import (
	"context"
	"net/url"
	"testing"

	"unibordima/dto"
	"unibordima/errors"
	"unibordima/models"
	"unibordima/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validListingInput() dto.ListingInput {
	return dto.ListingInput{
		Title:       ptr("  Annex in Kandy  "),
		Description: ptr("Two rooms with attached bathroom"),
		Price:       ptr(18000.0),
		Address:     ptr("45 Peradeniya Rd"),
		City:        ptr("Kandy"),
		Lat:         ptr(7.29),
		Lng:         ptr(80.63),
		Amenities:   &[]string{"WiFi", "Parking"},
		Rules:       &[]string{"No smoking"},
		RoomType:    ptr("Studio"),
		Gender:      ptr("Female"),
		Distance:    ptr(0.8),
		WhatsApp:    ptr("+94771234567"),
	}
}

func TestGetListing_IncrementsViews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	listing := testutil.NewListing(t, f.db, nil)

	first, err := f.listings.GetListing(ctx, listing.ID)
	require.NoError(t, err)
	second, err := f.listings.GetListing(ctx, listing.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, first.Views)
	assert.Equal(t, 2, second.Views)
}

func TestGetListing_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.listings.GetListing(context.Background(), 999)

	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.Equal(t, 404, errors.HTTPStatus(err))
}

func TestGetListing_IncludesOnlyApprovedReviews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	listing := testutil.NewListing(t, f.db, nil)
	alice := testutil.NewStudent(t, f.db, "alice@example.com")
	bob := testutil.NewStudent(t, f.db, "bob@example.com")

	visible, err := f.reviews.CreateReview(ctx, alice.ID, dto.CreateReviewRequest{Listing: listing.ID, Rating: 5, Comment: "Lovely"})
	require.NoError(t, err)
	hidden, err := f.reviews.CreateReview(ctx, bob.ID, dto.CreateReviewRequest{Listing: listing.ID, Rating: 1, Comment: "Spam"})
	require.NoError(t, err)
	_, err = f.reviews.ModerateReview(ctx, hidden.ID, dto.ModerateReviewRequest{IsApproved: ptr(false)})
	require.NoError(t, err)

	got, err := f.listings.GetListing(ctx, listing.ID)
	require.NoError(t, err)

	require.Len(t, got.Reviews, 1)
	assert.Equal(t, visible.ID, got.Reviews[0].ID)
	require.NotNil(t, got.Reviews[0].Student)
	assert.Equal(t, "Nimal", got.Reviews[0].Student.FirstName)
	assert.Empty(t, got.Reviews[0].Student.Email)
}

func TestCreateListing_UploadsImages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	listing, err := f.listings.CreateListing(ctx, 7, validListingInput(), testutil.FileHeaders(t, "front.jpg", "room.jpg"))
	require.NoError(t, err)

	assert.NotZero(t, listing.ID)
	assert.Equal(t, "Annex in Kandy", listing.Title)
	assert.Equal(t, models.StatusAvailable, listing.Status)
	assert.Equal(t, uint(7), listing.CreatedBy)
	require.Len(t, listing.Images, 2)
	assert.Contains(t, listing.Images[0].PublicID, "front.jpg")
	assert.Contains(t, listing.Images[1].PublicID, "room.jpg")

	stored := loadListing(t, f, listing.ID)
	assert.Equal(t, listing.Images, stored.Images)
	assert.Equal(t, []string{"WiFi", "Parking"}, stored.Amenities)
	assert.Equal(t, "Kandy", stored.Location.City)
	assert.Equal(t, 7.29, stored.Location.Coordinates.Lat)
	assert.Equal(t, "+94771234567", stored.ContactInfo.WhatsApp)
}

func TestCreateListing_MissingField(t *testing.T) {
	f := newFixture(t)
	in := validListingInput()
	in.City = nil

	_, err := f.listings.CreateListing(context.Background(), 1, in, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrValidation)
	assert.Contains(t, err.Error(), "location.city is required")
}

func TestCreateListing_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *dto.ListingInput)
		want   string
	}{
		{"negative price", func(in *dto.ListingInput) { in.Price = ptr(-1.0) }, "price"},
		{"bad room type", func(in *dto.ListingInput) { in.RoomType = ptr("Singel") }, `did you mean "Single"?`},
		{"unknown amenity", func(in *dto.ListingInput) { in.Amenities = &[]string{"Pool"} }, "amenities"},
		{"latitude out of range", func(in *dto.ListingInput) { in.Lat = ptr(95.0) }, "lat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			in := validListingInput()
			tt.mutate(&in)

			_, err := f.listings.CreateListing(context.Background(), 1, in, testutil.FileHeaders(t, "a.jpg"))

			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrValidation)
			assert.Contains(t, err.Error(), tt.want)
			assert.Empty(t, f.images.Uploaded)
		})
	}
}

func TestCreateListing_UploadFailure(t *testing.T) {
	f := newFixture(t)
	f.images.FailOn = "broken.jpg"

	_, err := f.listings.CreateListing(context.Background(), 1, validListingInput(), testutil.FileHeaders(t, "ok.jpg", "broken.jpg"))

	require.Error(t, err)
	assert.Equal(t, 500, errors.HTTPStatus(err))

	var count int64
	require.NoError(t, f.db.Model(&models.Listing{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateListing_PartialUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	listing := testutil.NewListing(t, f.db, func(l *models.Listing) {
		l.Images = []models.Image{{URL: "https://img.example/old", PublicID: "old"}}
	})

	updated, err := f.listings.UpdateListing(ctx, listing.ID, dto.ListingInput{
		Price:  ptr(17500.0),
		Status: ptr("rented"),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 17500.0, updated.Price)
	assert.Equal(t, models.StatusRented, updated.Status)

	stored := loadListing(t, f, listing.ID)
	assert.Equal(t, 17500.0, stored.Price)
	assert.Equal(t, models.StatusRented, stored.Status)
	assert.Equal(t, listing.Title, stored.Title)
	assert.Equal(t, listing.Images, stored.Images)
	assert.Empty(t, f.images.Deleted)
}

func TestUpdateListing_ReplacesImages(t *testing.T) {
	f := newFixture(t)
	listing := testutil.NewListing(t, f.db, func(l *models.Listing) {
		l.Images = []models.Image{{URL: "https://img.example/a", PublicID: "a"}, {URL: "https://img.example/b", PublicID: "b"}}
	})

	updated, err := f.listings.UpdateListing(context.Background(), listing.ID, dto.ListingInput{}, testutil.FileHeaders(t, "new.jpg"))
	require.NoError(t, err)

	require.Len(t, updated.Images, 1)
	assert.Contains(t, updated.Images[0].PublicID, "new.jpg")
	assert.ElementsMatch(t, []string{"a", "b"}, f.images.Deleted)

	stored := loadListing(t, f, listing.ID)
	assert.Equal(t, updated.Images, stored.Images)
}

func TestUpdateListing_InvalidStatus(t *testing.T) {
	f := newFixture(t)
	listing := testutil.NewListing(t, f.db, nil)

	_, err := f.listings.UpdateListing(context.Background(), listing.ID, dto.ListingInput{Status: ptr("sold")}, nil)

	assert.ErrorIs(t, err, errors.ErrValidation)
	assert.Equal(t, models.StatusAvailable, loadListing(t, f, listing.ID).Status)
}

func TestUpdateListing_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.listings.UpdateListing(context.Background(), 42, dto.ListingInput{Price: ptr(1.0)}, nil)

	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestDeleteListing_Cascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	listing := testutil.NewListing(t, f.db, func(l *models.Listing) {
		l.Images = []models.Image{{URL: "https://img.example/x", PublicID: "x"}}
	})
	keep := testutil.NewListing(t, f.db, nil)
	student := testutil.NewStudent(t, f.db, "saver@example.com")

	_, err := f.reviews.CreateReview(ctx, student.ID, dto.CreateReviewRequest{Listing: listing.ID, Rating: 3, Comment: "Ok"})
	require.NoError(t, err)
	require.NoError(t, f.students.SaveListing(ctx, student.ID, listing.ID))
	require.NoError(t, f.students.SaveListing(ctx, student.ID, keep.ID))

	require.NoError(t, f.listings.DeleteListing(ctx, listing.ID))

	var reviews, saved, listings int64
	require.NoError(t, f.db.Model(&models.Review{}).Where("listing_id = ?", listing.ID).Count(&reviews).Error)
	require.NoError(t, f.db.Model(&models.SavedListing{}).Count(&saved).Error)
	require.NoError(t, f.db.Model(&models.Listing{}).Count(&listings).Error)
	assert.Zero(t, reviews)
	assert.Equal(t, int64(1), saved)
	assert.Equal(t, int64(1), listings)
	assert.Equal(t, []string{"x"}, f.images.Deleted)

	err = f.listings.DeleteListing(ctx, listing.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestSearchListings_RanksByRelevance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	weak := testutil.NewListing(t, f.db, func(l *models.Listing) {
		l.Title = "Room in Kandy"
		l.Description = "Close to the lake"
		l.Location.City = "Kandy"
	})
	strong := testutil.NewListing(t, f.db, func(l *models.Listing) {
		l.Title = "Kandy annex"
		l.Description = "Kandy town, five minutes to Kandy station"
		l.Location.City = "Kandy"
	})
	testutil.NewListing(t, f.db, func(l *models.Listing) {
		l.Title = "Kandy flat"
		l.Status = models.StatusRented
	})
	testutil.NewListing(t, f.db, nil)

	results, err := f.listings.SearchListings(ctx, "  KANDY ")
	require.NoError(t, err)
	assert.Equal(t, []uint{strong.ID, weak.ID}, listIDs(results))

	results, err = f.listings.SearchListings(ctx, "kandy lake")
	require.NoError(t, err)
	assert.Equal(t, []uint{weak.ID}, listIDs(results))
}

func TestSearchListings_FoldsDiacritics(t *testing.T) {
	f := newFixture(t)
	listing := testutil.NewListing(t, f.db, func(l *models.Listing) { l.Title = "Café annex" })

	results, err := f.listings.SearchListings(context.Background(), "cafe")

	require.NoError(t, err)
	assert.Equal(t, []uint{listing.ID}, listIDs(results))
}

func TestSearchListings_TreatsWildcardsLiterally(t *testing.T) {
	f := newFixture(t)
	testutil.NewListing(t, f.db, nil)

	results, err := f.listings.SearchListings(context.Background(), "%")

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchListings_EmptyQuery(t *testing.T) {
	f := newFixture(t)

	_, err := f.listings.SearchListings(context.Background(), "   ")

	assert.ErrorIs(t, err, errors.ErrValidation)
	assert.Equal(t, 400, errors.HTTPStatus(err))
}

func TestListListings_CacheInvalidatedOnWrite(t *testing.T) {
	cache := newMemoryCache()
	f := newFixtureWithCache(t, cache)
	ctx := context.Background()
	testutil.NewListing(t, f.db, nil)

	q, err := ParseListingQuery(url.Values{})
	require.NoError(t, err)

	page, err := f.listings.ListListings(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	// Ghi thẳng vào DB: trang đã cache vẫn được trả về
	testutil.NewListing(t, f.db, nil)
	page, err = f.listings.ListListings(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	_, err = f.listings.CreateListing(ctx, 1, validListingInput(), nil)
	require.NoError(t, err)
	page, err = f.listings.ListListings(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
}

func TestListings_IncludeCreator(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin, _, err := f.admins.EnsureAdmin(ctx, "warden", "warden@unibordima.lk", "changeme")
	require.NoError(t, err)
	listing := testutil.NewListing(t, f.db, func(l *models.Listing) { l.CreatedBy = admin.ID })
	orphan := testutil.NewListing(t, f.db, func(l *models.Listing) { l.CreatedBy = 404 })

	got, err := f.listings.GetListing(ctx, listing.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Creator)
	assert.Equal(t, "warden", got.Creator.Username)

	got, err = f.listings.GetListing(ctx, orphan.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Creator)

	q, err := ParseListingQuery(url.Values{})
	require.NoError(t, err)
	page, err := f.listings.ListListings(ctx, q)
	require.NoError(t, err)
	require.Len(t, page.Listings, 2)
	for _, l := range page.Listings {
		if l.ID == listing.ID {
			require.NotNil(t, l.Creator)
			assert.Equal(t, "warden", l.Creator.Username)
		} else {
			assert.Nil(t, l.Creator)
		}
	}

	found, err := f.listings.SearchListings(ctx, "campus")
	require.NoError(t, err)
	require.NotEmpty(t, found)
	for _, l := range found {
		if l.ID == listing.ID {
			require.NotNil(t, l.Creator)
			assert.Equal(t, "warden", l.Creator.Username)
		}
	}

	stats, err := f.admins.Stats(ctx)
	require.NoError(t, err)
	for _, l := range stats.RecentListings {
		if l.ID == listing.ID {
			require.NotNil(t, l.Creator)
			assert.Equal(t, "warden", l.Creator.Username)
		}
	}
}

func TestSearchListings_MatchesCity(t *testing.T) {
	f := newFixture(t)
	inKandy := testutil.NewListing(t, f.db, func(l *models.Listing) { l.Location.City = "Kandy" })
	testutil.NewListing(t, f.db, nil)

	found, err := f.listings.SearchListings(context.Background(), "kandy")

	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, inKandy.ID, found[0].ID)
}
