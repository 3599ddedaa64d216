package services

import (
	"context"
	"errors"
	"testing"

	"unibordima/models"
	"unibordima/services/logger"
	"unibordima/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadImages_KeepsOrder(t *testing.T) {
	store := &testutil.FakeImageStore{}
	names := []string{"1.jpg", "2.jpg", "3.jpg", "4.jpg"}

	images, err := UploadImages(context.Background(), store, testutil.FileHeaders(t, names...))

	require.NoError(t, err)
	require.Len(t, images, len(names))
	for i, name := range names {
		assert.Contains(t, images[i].PublicID, name)
		assert.NotEmpty(t, images[i].URL)
	}
}

func TestUploadImages_ReturnsError(t *testing.T) {
	store := &testutil.FakeImageStore{FailOn: "2.jpg"}

	images, err := UploadImages(context.Background(), store, testutil.FileHeaders(t, "1.jpg", "2.jpg"))

	require.Error(t, err)
	assert.Nil(t, images)
}

func TestDeleteImages_SkipsEmptyAndSwallowsErrors(t *testing.T) {
	store := &testutil.FakeImageStore{DeleteErr: errors.New("cloud down")}
	images := []models.Image{{PublicID: "a"}, {URL: "legacy-without-id"}, {PublicID: "b"}}

	DeleteImages(context.Background(), store, images, logger.Discard())

	assert.ElementsMatch(t, []string{"a", "b"}, store.Deleted)
}
