// Package forms binds and validates the user-facing forms.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"newsroom/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)
)

// Validator returns the shared validator with the custom tags registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// report fields by their form name, matching the HTML inputs
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})

		must(v.RegisterValidation("notdigitprefix", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || !StartsWithDigit(s)
		}))
		must(v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		}))

		validate = v
	})
	return validate
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// StartsWithDigit reports whether s begins with an ASCII decimal digit.
func StartsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// Check validates a form struct and returns field-scoped errors, or nil.
func Check(form any) models.FieldErrors {
	err := Validator().Struct(form)
	if err == nil {
		return nil
	}

	fe := models.FieldErrors{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		fe.Add("", models.ReasonInvalid, err.Error())
		return fe
	}
	for _, e := range ve {
		reason, msg := describe(e)
		fe.Add(e.Field(), reason, msg)
	}
	return fe
}

// describe turns a validator failure into a reason code and a readable message.
func describe(fe validator.FieldError) (models.Reason, string) {
	switch fe.Tag() {
	case "required":
		return models.ReasonMissingField, "This field is required."
	case "max":
		return models.ReasonTooLong, fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "email":
		return models.ReasonInvalidEmail, "Enter a valid email address."
	case "notdigitprefix":
		return models.ReasonInvalidTitle, "Title must not start with a digit."
	case "eqfield":
		return models.ReasonPasswordMismatch, "The two password fields didn't match."
	case "username":
		return models.ReasonInvalidFormat, "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	case "min":
		return models.ReasonInvalid, fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	default:
		return models.ReasonInvalid, fmt.Sprintf("Invalid value (%s).", fe.Tag())
	}
}
