package model

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	// report errors under the JSON field names the form posts
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// FieldErrors maps a submission field name to a human-readable problem
// with its value.
type FieldErrors map[string]string

// Validate checks the submission's form-level constraints and returns
// per-field messages, or nil if the submission is valid. The "other"
// participant limit requires a detail text, and the end date must be
// strictly later than the start date; both are enforced here, once, at
// the boundary.
func (s Submission) Validate() FieldErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	violations, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"": err.Error()}
	}

	errs := FieldErrors{}
	for _, v := range violations {
		errs[v.Field()] = fieldMessage(v)
	}
	return errs
}

func fieldMessage(v validator.FieldError) string {
	switch v.Field() {
	case "title":
		return "title must be at least 3 characters"
	case "description":
		return "description must be at least 10 characters"
	case "startDate":
		return "start date is required"
	case "endDate":
		if v.Tag() == "gtfield" {
			return "end date must be later than start date"
		}
		return "end date is required"
	case "organizer":
		return "organizer name is required"
	case "imageUrl":
		return "a valid http(s) image URL is required"
	case "website":
		return "website must be a valid http(s) URL"
	case "participantLimit":
		return "participant limit must be one of noLimit, studentsOnly, ageRestricted, other"
	case "participantLimitDetails":
		return "details are required when the participant limit is \"other\""
	}
	return "invalid value"
}
