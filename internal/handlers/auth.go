package handlers

import (
	"errors"
	"net/http"
	"strings"

	"newsroom/internal/forms"
	"newsroom/internal/logger"
	"newsroom/internal/middleware"
	"newsroom/internal/models"
	"newsroom/internal/repository"
	"newsroom/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const invalidLoginMessage = "Please enter a correct username and password. Note that both fields may be case-sensitive."

type AuthHandler struct {
	users    repository.UserRepository
	loginURL string
}

func NewAuthHandler(users repository.UserRepository, loginURL string) *AuthHandler {
	return &AuthHandler{users: users, loginURL: loginURL}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	renderRegister(c, http.StatusOK, forms.RegisterForm{}, nil)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form forms.RegisterForm
	errs := bindForm(c, &form)
	if len(errs) > 0 {
		flash(c, flashError, "Registration failed")
		renderRegister(c, http.StatusBadRequest, form, errs)
		return
	}

	hash, err := utils.HashPassword(form.Password1)
	if err != nil {
		handleError(c, err)
		return
	}
	user := &models.User{
		Username: form.Username,
		Email:    form.Email,
		Password: hash,
		Role:     models.RoleUser,
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		if !errors.Is(err, models.ErrDuplicate) {
			handleError(c, err)
			return
		}
		errs.Add("username", models.ReasonDuplicate, "A user with that username already exists.")
		flash(c, flashError, "Registration failed")
		renderRegister(c, http.StatusBadRequest, form, errs)
		return
	}

	if err := startSession(c, user); err != nil {
		handleError(c, err)
		return
	}
	logger.Get().Info().Uint("user_id", user.ID).Msg("user registered")
	flash(c, flashSuccess, "Your account has been registered successfully")
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	renderLogin(c, http.StatusOK, forms.LoginForm{}, nil, c.Query("next"))
}

func (h *AuthHandler) Login(c *gin.Context) {
	next := c.PostForm("next")

	var form forms.LoginForm
	errs := bindForm(c, &form)
	if len(errs) > 0 {
		renderLogin(c, http.StatusBadRequest, form, errs, next)
		return
	}

	user, err := h.authenticate(c, form)
	if err != nil {
		if !errors.Is(err, models.ErrInvalidCredentials) {
			handleError(c, err)
			return
		}
		errs.Add("", models.ReasonInvalid, invalidLoginMessage)
		renderLogin(c, http.StatusUnauthorized, form, errs, next)
		return
	}

	if err := startSession(c, user); err != nil {
		handleError(c, err)
		return
	}
	flash(c, flashSuccess, "You have been logged in successfully")
	c.Redirect(http.StatusFound, safeRedirect(next))
}

// authenticate returns models.ErrInvalidCredentials for an unknown user and
// for a wrong password alike.
func (h *AuthHandler) authenticate(c *gin.Context, form forms.LoginForm) (*models.User, error) {
	user, err := h.users.GetByUsername(c.Request.Context(), form.Username)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(form.Password, user.Password) {
		return nil, models.ErrInvalidCredentials
	}
	return user, nil
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		logger.Get().Error().Err(err).Msg("clear session")
	}
	flash(c, flashSuccess, "You have been logged out successfully")
	c.Redirect(http.StatusFound, h.loginURL)
}

func startSession(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(middleware.SessionUserKey, user.ID)
	return session.Save()
}

// safeRedirect only follows local paths.
func safeRedirect(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func renderRegister(c *gin.Context, code int, form forms.RegisterForm, errs models.FieldErrors) {
	// passwords are not sent back to the browser
	form.Password1, form.Password2 = "", ""
	if errs == nil {
		errs = models.FieldErrors{}
	}
	Render(c, code, "auth/register.html", gin.H{"Title": "Register", "Form": form, "Errors": errs})
}

func renderLogin(c *gin.Context, code int, form forms.LoginForm, errs models.FieldErrors, next string) {
	form.Password = ""
	if errs == nil {
		errs = models.FieldErrors{}
	}
	Render(c, code, "auth/login.html", gin.H{"Title": "Login", "Form": form, "Errors": errs, "Next": next})
}
