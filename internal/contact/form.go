// Package contact validates contact form submissions and simulates sending
// them. Nothing is delivered or stored.
package contact

import (
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Form is a contact form submission.
type Form struct {
	Name    string `form:"name" json:"name" validate:"required"`
	Email   string `form:"email" json:"email" validate:"required,looseemail"`
	Subject string `form:"subject" json:"subject" validate:"required"`
	Message string `form:"message" json:"message" validate:"required"`
}

// ValidationErrors maps a form field to the message shown next to it.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	msgs := make([]string, len(fields))
	for i, f := range fields {
		msgs[i] = f + ": " + v[f]
	}
	return "invalid contact form: " + strings.Join(msgs, "; ")
}

var messages = map[string]map[string]string{
	"name":    {"required": "Name is required"},
	"email":   {"required": "Email is required", "looseemail": "Please enter a valid email"},
	"subject": {"required": "Subject is required"},
	"message": {"required": "Message is required"},
}

// Anything, an @, anything, a dot, anything; no whitespace in each part.
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	err := v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
	return v
}

// Normalize trims surrounding whitespace from every field.
func (f Form) Normalize() Form {
	return Form{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Subject: strings.TrimSpace(f.Subject),
		Message: strings.TrimSpace(f.Message),
	}
}

// Validate returns ValidationErrors for every missing or malformed field,
// or nil. Blank fields count as missing.
func (f Form) Validate() error {
	err := validate.Struct(f.Normalize())
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := make(ValidationErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := messages[fe.Field()][fe.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		out[fe.Field()] = msg
	}
	return out
}
