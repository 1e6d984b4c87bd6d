package usecase

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/Harsh-BH/jobtracker/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Length limits are measured in UTF-16 code units so they agree with
	// browser-side form validation.
	if err := v.RegisterValidation("utf16max", utf16Max); err != nil {
		panic(err)
	}
	return v
}

func utf16Max(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf16Len(fl.Field().String()) <= limit
}

// utf16Len counts the UTF-16 code units needed to encode s.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// fieldMessages maps "<Field>.<tag>" to the user-facing validation message.
var fieldMessages = map[string]string{
	"Title.required":           "Job title is required",
	"Title.min":                "Job title is required",
	"Title.utf16max":           "Job title too long",
	"Company.required":         "Company name is required",
	"Company.min":              "Company name is required",
	"Company.utf16max":         "Company name too long",
	"ApplicationLink.required": "Please enter a valid URL",
	"ApplicationLink.url":      "Please enter a valid URL",
	"Status.required":          "Status is required",
	"JobDescription.required":  "Job description must be at least 10 characters",
	"JobDescription.min":       "Job description must be at least 10 characters",
}

// jsonFields maps struct field names to their wire names.
var jsonFields = map[string]string{
	"Title":           "title",
	"Company":         "company",
	"ApplicationLink": "applicationLink",
	"Status":          "status",
	"JobDescription":  "jobDescription",
}

// validateStruct runs tag validation and converts the first failure into a
// *domain.ValidationError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate request: %w", err)
	}

	fe := verrs[0]
	msg, ok := fieldMessages[fe.StructField()+"."+fe.Tag()]
	if !ok {
		msg = fmt.Sprintf("failed on %q", fe.Tag())
	}
	field, ok := jsonFields[fe.StructField()]
	if !ok {
		field = fe.Field()
	}
	return &domain.ValidationError{Field: field, Message: msg}
}
