package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"sync"

	"unibordima/models"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Giới hạn 1200x800, chất lượng tự động
const listingTransformation = "c_limit,w_1200,h_800/q_auto"

// ImageStore lưu ảnh ở dịch vụ ngoài
type ImageStore interface {
	Upload(ctx context.Context, src io.Reader, filename string) (models.Image, error)
	Delete(ctx context.Context, publicID string) error
}

// CloudinaryStore upload ảnh vào một folder cố định trên Cloudinary
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cld *cloudinary.Cloudinary, folder string) *CloudinaryStore {
	return &CloudinaryStore{cld: cld, folder: folder}
}

func (s *CloudinaryStore) Upload(ctx context.Context, src io.Reader, filename string) (models.Image, error) {
	resp, err := s.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:         s.folder,
		Transformation: listingTransformation,
	})
	if err != nil {
		return models.Image{}, fmt.Errorf("upload %s: %w", filename, err)
	}
	if resp.Error.Message != "" {
		return models.Image{}, fmt.Errorf("upload %s: %s", filename, resp.Error.Message)
	}
	return models.Image{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("destroy %s: %w", publicID, err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("destroy %s: %s", publicID, resp.Error.Message)
	}
	return nil
}

// UploadImages upload song song mỗi file một goroutine, giữ nguyên thứ tự.
// Nếu một file lỗi thì trả lỗi; các ảnh đã lên không bị xoá lại.
func UploadImages(ctx context.Context, store ImageStore, files []*multipart.FileHeader) ([]models.Image, error) {
	images := make([]models.Image, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file *multipart.FileHeader) {
			defer wg.Done()

			src, err := file.Open()
			if err != nil {
				errs[i] = fmt.Errorf("open %s: %w", file.Filename, err)
				return
			}
			defer src.Close()

			images[i], errs[i] = store.Upload(ctx, src, file.Filename)
		}(i, file)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return images, nil
}

// DeleteImages xoá song song, lỗi chỉ được log lại
func DeleteImages(ctx context.Context, store ImageStore, images []models.Image, log *slog.Logger) {
	var wg sync.WaitGroup
	for _, img := range images {
		if img.PublicID == "" {
			continue
		}
		wg.Add(1)
		go func(publicID string) {
			defer wg.Done()
			if err := store.Delete(ctx, publicID); err != nil {
				log.Error("failed to delete image", "public_id", publicID, "error", err)
			}
		}(img.PublicID)
	}
	wg.Wait()
}
