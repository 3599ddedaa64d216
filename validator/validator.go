package validator

import (
	"fmt"
	"regexp"
	"strings"

	"unibordima/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate kiểm tra struct theo tag `validate`, trả về AppError validation
func Validate(s any) error {
	if err := validate.Struct(s); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(validationErrors))
			for _, fe := range validationErrors {
				msgs = append(msgs, fmt.Sprintf("%s %s", lowerFirst(fe.Field()), msgForTag(fe)))
			}
			return errors.Validation(strings.Join(msgs, "; "))
		}
		return errors.Validation(err.Error())
	}
	return nil
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// ValidateEmail validate định dạng email
func ValidateEmail(email string) error {
	if email == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Email is required", errors.ErrValidation)
	}
	if !emailRegex.MatchString(email) {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Please provide a valid email", errors.ErrValidation)
	}
	return nil
}

// NormalizeEmail chuẩn hoá email trước khi lưu/tra cứu
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
