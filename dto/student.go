package dto

import "unibordima/models"

type RegisterInput struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	University  string `json:"university"`
	StudentID   string `json:"studentId"`
	PhoneNumber string `json:"phoneNumber"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileInput chỉ cho phép sửa các field này
type UpdateProfileInput struct {
	FirstName   *string `json:"firstName" validate:"omitempty,min=1"`
	LastName    *string `json:"lastName" validate:"omitempty,min=1"`
	PhoneNumber *string `json:"phoneNumber"`
	University  *string `json:"university"`
}

type StudentAuthResponse struct {
	Success bool           `json:"success"`
	Token   string         `json:"token"`
	Student models.Student `json:"student"`
}

type StudentResponse struct {
	Success bool           `json:"success"`
	Student models.Student `json:"student"`
}
