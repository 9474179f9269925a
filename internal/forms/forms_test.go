package forms_test

import (
	"strings"
	"testing"

	"feedbackboard/internal/forms"

	"github.com/stretchr/testify/assert"
)

func TestValidate_RegisterForm(t *testing.T) {
	valid := forms.RegisterForm{
		Username:  "cat1",
		Password:  "meow1234",
		Email:     "c@x.com",
		FirstName: "C",
		LastName:  "T",
	}

	tests := []struct {
		name   string
		mutate func(f *forms.RegisterForm)
		errors forms.Errors
	}{
		{"valid", func(f *forms.RegisterForm) {}, nil},
		{"missing username", func(f *forms.RegisterForm) { f.Username = "" },
			forms.Errors{"username": "This field is required."}},
		{"blank username", func(f *forms.RegisterForm) { f.Username = "   " },
			forms.Errors{"username": "This field is required."}},
		{"long username", func(f *forms.RegisterForm) { f.Username = strings.Repeat("a", 21) },
			forms.Errors{"username": "Field cannot be longer than 20 characters."}},
		{"bad email", func(f *forms.RegisterForm) { f.Email = "not-an-email" },
			forms.Errors{"email": "Invalid email address."}},
		{"missing names", func(f *forms.RegisterForm) { f.FirstName, f.LastName = "", "" },
			forms.Errors{"first_name": "This field is required.", "last_name": "This field is required."}},
		{"missing password", func(f *forms.RegisterForm) { f.Password = "" },
			forms.Errors{"password": "This field is required."}},
		{"72 byte password", func(f *forms.RegisterForm) { f.Password = strings.Repeat("p", 72) }, nil},
		{"73 byte password", func(f *forms.RegisterForm) { f.Password = strings.Repeat("p", 73) },
			forms.Errors{"password": "Field cannot be longer than 72 bytes."}},
		{"multibyte password over 72 bytes", func(f *forms.RegisterForm) { f.Password = strings.Repeat("é", 37) },
			forms.Errors{"password": "Field cannot be longer than 72 bytes."}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := valid
			tc.mutate(&f)
			assert.Equal(t, tc.errors, forms.Validate(&f))
		})
	}
}

func TestValidate_TrimsInputButNotPassword(t *testing.T) {
	f := forms.LoginForm{Username: "  cat1 ", Password: " meow "}
	assert.Nil(t, forms.Validate(&f))
	assert.Equal(t, "cat1", f.Username)
	assert.Equal(t, " meow ", f.Password)

	r := forms.RegisterForm{Username: "cat1", Password: " pw ", Email: " c@x.com ", FirstName: "\tC", LastName: "T\n"}
	assert.Nil(t, forms.Validate(&r))
	assert.Equal(t, "c@x.com", r.Email)
	assert.Equal(t, "C", r.FirstName)
	assert.Equal(t, "T", r.LastName)
	assert.Equal(t, " pw ", r.Password)

	fb := forms.FeedbackForm{Title: " Hi ", Content: " Hello\n"}
	assert.Nil(t, forms.Validate(&fb))
	assert.Equal(t, "Hi", fb.Title)
	assert.Equal(t, "Hello", fb.Content)
}

func TestValidate_FeedbackForm(t *testing.T) {
	assert.Nil(t, forms.Validate(&forms.FeedbackForm{Title: "Hi", Content: "Hello"}))

	errs := forms.Validate(&forms.FeedbackForm{})
	assert.Equal(t, forms.Errors{
		"title":   "This field is required.",
		"content": "This field is required.",
	}, errs)

	errs = forms.Validate(&forms.FeedbackForm{Title: strings.Repeat("t", 101), Content: "x"})
	assert.Equal(t, "Field cannot be longer than 100 characters.", errs["title"])
}
