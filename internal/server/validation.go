package server

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/interviewdesk/internal/models"
	"github.com/julianstephens/interviewdesk/internal/utils"
)

// FieldErrors is the rejection body: field name to messages.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := utils.ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return utils.ValidateClock(fl.Field().String())
	})
	return v
}

// normalize trims text fields and widens HH:MM times before validation.
func normalize(r *models.Interview) {
	r.Interviewee = strings.TrimSpace(r.Interviewee)
	r.Role = strings.TrimSpace(r.Role)
	r.Department = strings.TrimSpace(r.Department)
	r.Interviewer = strings.TrimSpace(r.Interviewer)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	if t, err := utils.NormalizeTime(r.Time); err == nil {
		r.Time = t
	}
}

// validate checks r and returns the field errors, or nil when it is valid.
func (s *Server) validate(r models.Interview) FieldErrors {
	err := s.validator.Struct(r)
	if err == nil {
		return nil
	}

	fe := FieldErrors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe.add("non_field_errors", err.Error())
		return fe
	}
	for _, e := range verrs {
		fe.add(e.Field(), message(e))
	}
	return fe
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "isodate":
		return "Date has wrong format. Use YYYY-MM-DD."
	case "clock":
		return "Time has wrong format. Use hh:mm:ss."
	case "email":
		return "Enter a valid email address."
	default:
		return "Invalid value."
	}
}
