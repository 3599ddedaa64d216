package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"unibordima/config"
	"unibordima/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB mở SQLite in-memory đã migrate, mỗi test một database riêng
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

// NewListing lưu một listing hợp lệ; mutate cho phép sửa trước khi lưu
func NewListing(t *testing.T, db *gorm.DB, mutate func(l *models.Listing)) *models.Listing {
	t.Helper()

	l := &models.Listing{
		Title:       "Room near campus",
		Description: "Quiet single room with desk",
		Price:       15000,
		Location: models.Location{
			Address:     "12 Temple Rd",
			City:        "Colombo",
			Coordinates: models.Coordinates{Lat: 6.9, Lng: 79.86},
		},
		Images:      []models.Image{},
		Amenities:   []string{"WiFi"},
		Rules:       []string{},
		RoomType:    "Single",
		Gender:      "Mixed",
		Distance:    1.5,
		ContactInfo: models.ContactInfo{WhatsApp: "+94770000000"},
		Status:      models.StatusAvailable,
		CreatedBy:   1,
	}
	if mutate != nil {
		mutate(l)
	}
	l.RefreshSearchText()
	require.NoError(t, db.Create(l).Error)
	return l
}

// NewStudent lưu một student (mật khẩu không hash, chỉ dùng cho dữ liệu test)
func NewStudent(t *testing.T, db *gorm.DB, email string) *models.Student {
	t.Helper()

	s := &models.Student{FirstName: "Nimal", LastName: "Perera", Email: email, Password: "x"}
	require.NoError(t, db.Create(s).Error)
	return s
}

// FakeImageStore ghi nhận upload/delete trong bộ nhớ
type FakeImageStore struct {
	mu        sync.Mutex
	Uploaded  []string
	Deleted   []string
	FailOn    string
	DeleteErr error
	seq       int
}

func (f *FakeImageStore) Upload(_ context.Context, src io.Reader, filename string) (models.Image, error) {
	if _, err := io.ReadAll(src); err != nil {
		return models.Image{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if filename == f.FailOn {
		return models.Image{}, fmt.Errorf("upload %s: rejected", filename)
	}
	f.seq++
	publicID := fmt.Sprintf("unibordima/listings/%d-%s", f.seq, filename)
	f.Uploaded = append(f.Uploaded, filename)
	return models.Image{URL: "https://img.example/" + publicID, PublicID: publicID}, nil
}

func (f *FakeImageStore) Delete(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deleted = append(f.Deleted, publicID)
	return f.DeleteErr
}

// MultipartBody dựng body multipart với field text và các file ảnh
func MultipartBody(t *testing.T, fields map[string][]string, files ...string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for key, values := range fields {
		for _, v := range values {
			require.NoError(t, w.WriteField(key, v))
		}
	}
	for _, name := range files {
		part, err := w.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image " + name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

// FileHeaders trả về các *multipart.FileHeader như khi parse từ request thật
func FileHeaders(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()

	body, contentType := MultipartBody(t, nil, names...)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	require.NoError(t, req.ParseMultipartForm(10<<20))
	return req.MultipartForm.File["images"]
}
