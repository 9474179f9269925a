// Package forms declares the typed request bodies of the HTML forms and
// validates them into per-field error messages.
package forms

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"
)

// RegisterForm is the body of POST /register. bcrypt only hashes the first
// 72 bytes of a password, so longer ones are refused.
type RegisterForm struct {
	Username  string `form:"username" mod:"trim" validate:"required,max=20"`
	Password  string `form:"password" validate:"required,maxbytes=72"`
	Email     string `form:"email" mod:"trim" validate:"required,max=50,email"`
	FirstName string `form:"first_name" mod:"trim" validate:"required,max=30"`
	LastName  string `form:"last_name" mod:"trim" validate:"required,max=30"`
}

// LoginForm is the body of POST /login.
type LoginForm struct {
	Username string `form:"username" mod:"trim" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// FeedbackForm is the body of the add and update feedback forms.
type FeedbackForm struct {
	Title   string `form:"title" mod:"trim" validate:"required,max=100"`
	Content string `form:"content" mod:"trim" validate:"required"`
}

// Errors maps a form field name to its message.
type Errors map[string]string

var (
	conform  = modifiers.New()
	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic(err)
	}
	return v
}

// maxBytes limits the encoded length of a string, not its rune count.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// Validate applies the mod tags of the struct pointed to by form, then
// checks its constraints. It returns nil when the form is valid.
func Validate(form interface{}) Errors {
	if err := conform.Struct(context.Background(), form); err != nil {
		return Errors{"form": err.Error()}
	}

	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{"form": err.Error()}
	}

	errs := make(Errors, len(validationErrors))
	for _, e := range validationErrors {
		if _, seen := errs[e.Field()]; seen {
			continue
		}
		errs[e.Field()] = message(e)
	}
	return errs
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", e.Param())
	case "maxbytes":
		return fmt.Sprintf("Field cannot be longer than %s bytes.", e.Param())
	case "email":
		return "Invalid email address."
	default:
		return fmt.Sprintf("Field failed on the '%s' rule.", e.Tag())
	}
}
