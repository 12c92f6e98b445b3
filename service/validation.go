package service

import (
	"errors"
	"fmt"
	"strings"

	"logia/models"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// custom validation tags
const (
	notBlankTag    = "notblank"
	gradeTag       = "grade"
	meetingTypeTag = "meeting_type"
)

func init() {
	validate = validator.New()

	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = validate.RegisterValidation(gradeTag, gradeValidation)
	_ = validate.RegisterValidation(meetingTypeTag, meetingTypeValidation)
}

func notBlankValidation(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func gradeValidation(fl validator.FieldLevel) bool {
	return models.Grade(fl.Field().String()).IsValid()
}

func meetingTypeValidation(fl validator.FieldLevel) bool {
	return models.MeetingType(fl.Field().String()).IsValid()
}

// validateStruct runs the struct tag validations of a model
func validateStruct(s any) error {
	return validate.Struct(s)
}

// fieldLabels are the names shown to users for validated fields
var fieldLabels = map[string]string{
	"Name":     "nombre",
	"Theme":    "tema",
	"Date":     "fecha",
	"Location": "lugar",
	"Type":     "tipo",
	"Grade":    "grado",
}

// ValidationMessage turns a validation failure into a short user-facing message.
// The second result is false when err is not a validation failure.
func ValidationMessage(err error) (string, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "", false
	}

	parts := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		label, ok := fieldLabels[fieldErr.Field()]
		if !ok {
			label = strings.ToLower(fieldErr.Field())
		}
		switch fieldErr.Tag() {
		case gradeTag:
			parts = append(parts, fmt.Sprintf("%s inválido", label))
		case meetingTypeTag:
			parts = append(parts, fmt.Sprintf("%s de tenida inválido", label))
		default:
			parts = append(parts, fmt.Sprintf("%s es obligatorio", label))
		}
	}
	return strings.Join(parts, ", "), true
}
