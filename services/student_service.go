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

type StudentServiceOptions struct {
	DB     *gorm.DB
	Tokens *TokenService
	Logger *slog.Logger
}

type StudentService struct {
	db     *gorm.DB
	tokens *TokenService
	log    *slog.Logger
}

func NewStudentService(opts StudentServiceOptions) *StudentService {
	return &StudentService{db: opts.DB, tokens: opts.Tokens, log: opts.Logger}
}

func invalidCredentials() error {
	return errors.NewAppError(errors.ErrCodeInvalidCredentials, "Invalid credentials", errors.ErrUnauthorized)
}

// Register tạo tài khoản student mới và trả về token
func (s *StudentService) Register(ctx context.Context, in dto.RegisterInput) (string, *models.Student, error) {
	in.Email = validator.NormalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if err := validator.Validate(in); err != nil {
		return "", nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Student{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return "", nil, errors.Internal(err)
	}
	if count > 0 {
		return "", nil, errors.Conflict("Student already exists")
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return "", nil, errors.Internal(err)
	}

	student := models.Student{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		Password:      hashed,
		University:    strings.TrimSpace(in.University),
		StudentID:     strings.TrimSpace(in.StudentID),
		PhoneNumber:   strings.TrimSpace(in.PhoneNumber),
		SavedListings: []models.Listing{},
	}
	if err := s.db.WithContext(ctx).Create(&student).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return "", nil, errors.Conflict("Student already exists")
		}
		return "", nil, errors.Internal(err)
	}

	token, err := s.tokens.GenerateToken(student.ID, models.RoleStudent)
	if err != nil {
		return "", nil, errors.Internal(err)
	}

	s.log.Info("student registered", "student_id", student.ID)
	return token, &student, nil
}

// Login kiểm tra email + mật khẩu
func (s *StudentService) Login(ctx context.Context, in dto.LoginInput) (string, *models.Student, error) {
	in.Email = validator.NormalizeEmail(in.Email)
	if err := validator.Validate(in); err != nil {
		return "", nil, err
	}

	var student models.Student
	if err := s.db.WithContext(ctx).Where("email = ?", in.Email).First(&student).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, invalidCredentials()
		}
		return "", nil, errors.Internal(err)
	}
	if !CheckPassword(student.Password, in.Password) {
		return "", nil, invalidCredentials()
	}

	token, err := s.tokens.GenerateToken(student.ID, models.RoleStudent)
	if err != nil {
		return "", nil, errors.Internal(err)
	}
	return token, &student, nil
}

// GetProfile trả về student kèm danh sách listing đã lưu
func (s *StudentService) GetProfile(ctx context.Context, id uint) (*models.Student, error) {
	student, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	saved := []models.Listing{}
	err = s.db.WithContext(ctx).
		Joins("JOIN saved_listings ON saved_listings.listing_id = listings.id").
		Where("saved_listings.student_id = ?", id).
		Order("saved_listings.created_at DESC").
		Find(&saved).Error
	if err != nil {
		return nil, errors.Internal(err)
	}
	student.SavedListings = saved
	return student, nil
}

// UpdateProfile chỉ sửa firstName, lastName, phoneNumber, university
func (s *StudentService) UpdateProfile(ctx context.Context, id uint, in dto.UpdateProfileInput) (*models.Student, error) {
	if err := validator.Validate(in); err != nil {
		return nil, err
	}

	student, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.FirstName != nil {
		student.FirstName = strings.TrimSpace(*in.FirstName)
		updates["first_name"] = student.FirstName
	}
	if in.LastName != nil {
		student.LastName = strings.TrimSpace(*in.LastName)
		updates["last_name"] = student.LastName
	}
	if in.PhoneNumber != nil {
		student.PhoneNumber = strings.TrimSpace(*in.PhoneNumber)
		updates["phone_number"] = student.PhoneNumber
	}
	if in.University != nil {
		student.University = strings.TrimSpace(*in.University)
		updates["university"] = student.University
	}
	if student.FirstName == "" || student.LastName == "" {
		return nil, errors.Validation("firstName and lastName must not be empty")
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(student).Updates(updates).Error; err != nil {
			return nil, errors.Internal(err)
		}
	}
	return student, nil
}

// SaveListing thêm listing vào danh sách đã lưu
func (s *StudentService) SaveListing(ctx context.Context, studentID, listingID uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Listing{}).Where("id = ?", listingID).Count(&count).Error; err != nil {
		return errors.Internal(err)
	}
	if count == 0 {
		return errors.NotFound("Listing")
	}

	if err := s.db.WithContext(ctx).Model(&models.SavedListing{}).
		Where("student_id = ? AND listing_id = ?", studentID, listingID).
		Count(&count).Error; err != nil {
		return errors.Internal(err)
	}
	if count > 0 {
		return errors.Conflict("Listing already saved")
	}

	saved := models.SavedListing{StudentID: studentID, ListingID: listingID}
	if err := s.db.WithContext(ctx).Create(&saved).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.Conflict("Listing already saved")
		}
		return errors.Internal(err)
	}
	return nil
}

// RemoveSavedListing bỏ lưu; chưa lưu thì trả 404
func (s *StudentService) RemoveSavedListing(ctx context.Context, studentID, listingID uint) error {
	res := s.db.WithContext(ctx).
		Where("student_id = ? AND listing_id = ?", studentID, listingID).
		Delete(&models.SavedListing{})
	if res.Error != nil {
		return errors.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.NotFound("Saved listing")
	}
	return nil
}

func (s *StudentService) find(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).First(&student, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Student")
		}
		return nil, errors.Internal(err)
	}
	return &student, nil
}
