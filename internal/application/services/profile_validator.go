package services

import (
	stderrors "errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/zatekoja/botornot/internal/domain/entities"
	apperrors "github.com/zatekoja/botornot/pkg/errors"
)

// ProfileValidator checks a UserProfile against its struct tags
type ProfileValidator struct {
	validate *validator.Validate
}

// NewProfileValidator creates a validator that reports fields by their JSON names
func NewProfileValidator() *ProfileValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &ProfileValidator{validate: v}
}

// Validate returns a validation AppError naming every offending field, or nil
func (v *ProfileValidator) Validate(profile *entities.UserProfile) error {
	if profile == nil {
		return apperrors.NewValidationError("validation failed",
			apperrors.FieldError{Field: "body", Message: "is required"})
	}

	err := v.validate.Struct(profile)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return apperrors.NewInternalError("failed to validate profile", err)
	}

	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return apperrors.NewValidationError("validation failed", fields...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return "must not be empty"
		}
		return "must be greater than or equal to " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
