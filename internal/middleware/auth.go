package middleware

import (
	"errors"
	"net/http"
	"net/url"

	"newsroom/internal/logger"
	"newsroom/internal/models"
	"newsroom/internal/repository"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// CurrentUserKey holds the *models.User of a logged-in request.
	CurrentUserKey = "user"
	// SessionUserKey is the session field that stores the user id.
	SessionUserKey = "user_id"
)

// CurrentUser returns the logged-in user, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// LoadUser retrieves the user from the session and sets it on the context.
// A session pointing at a deleted account is cleared.
func LoadUser(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		id, ok := session.Get(SessionUserKey).(uint)
		if !ok {
			c.Next()
			return
		}

		user, err := users.GetByID(c.Request.Context(), id)
		switch {
		case err == nil:
			c.Set(CurrentUserKey, user)
		case errors.Is(err, models.ErrNotFound):
			session.Delete(SessionUserKey)
			_ = session.Save()
		default:
			logger.Get().Error().Err(err).Uint("user_id", id).Msg("load session user")
		}
		c.Next()
	}
}

// AuthRequired redirects anonymous requests to loginURL, carrying the
// requested path in "next".
func AuthRequired(loginURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusFound, loginURL+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired lets admins through and hands everyone else to forbidden.
// It expects AuthRequired to run first.
func AdminRequired(forbidden gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsAdmin() {
			forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
