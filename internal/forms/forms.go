package forms

import (
	"strings"

	"newsroom/internal/models"
)

// NewsForm is the public "add news" form. Photo is bound separately as a
// multipart file.
type NewsForm struct {
	Title       string `form:"title" validate:"required,max=150,notdigitprefix"`
	Content     string `form:"content"`
	IsPublished bool   `form:"is_published"`
	CategoryID  uint   `form:"category" validate:"required"`
}

// NewNewsForm returns the initial state of an empty form.
func NewNewsForm() NewsForm {
	return NewsForm{IsPublished: true}
}

func (f *NewsForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
}

// News builds the model the form describes.
func (f NewsForm) News() *models.News {
	n := models.NewNews(f.Title, f.Content, f.CategoryID)
	n.IsPublished = f.IsPublished
	return n
}

// AdminNewsForm edits an existing item. Titles starting with a digit are
// accepted here; only the public creation form rejects them.
type AdminNewsForm struct {
	Title       string `form:"title" validate:"required,max=150"`
	Content     string `form:"content"`
	IsPublished bool   `form:"is_published"`
	CategoryID  uint   `form:"category" validate:"required"`
}

func (f *AdminNewsForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
}

type CategoryForm struct {
	Title       string `form:"title" validate:"required,max=100"`
	Description string `form:"description"`
}

func (f *CategoryForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
}

type RegisterForm struct {
	Username  string `form:"username" validate:"required,max=150,username"`
	Email     string `form:"email" validate:"required,email"`
	Password1 string `form:"password1" validate:"required"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
}

func (f *RegisterForm) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
}

type LoginForm struct {
	Username string `form:"username" validate:"required,max=150"`
	Password string `form:"password" validate:"required"`
}

func (f *LoginForm) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
}

type ContactForm struct {
	Subject string `form:"subject" validate:"required,max=255"`
	Message string `form:"message" validate:"required"`
}

func (f *ContactForm) Normalize() {
	f.Subject = strings.TrimSpace(f.Subject)
	f.Message = strings.TrimSpace(f.Message)
}
