package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"newsroom/internal/logger"
	"newsroom/internal/middleware"
	"newsroom/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	flashSuccess = "success"
	flashError   = "error"
)

// Message is one flash message shown on the next rendered page.
type Message struct {
	Level string
	Text  string
}

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user, ok := middleware.CurrentUser(c); ok {
		obj["CurrentUser"] = user
	}
	if nav, ok := c.Get(middleware.NavCategoriesKey); ok {
		obj["NavCategories"] = nav
	}
	if sidebar, ok := c.Get(middleware.SidebarCategoriesKey); ok {
		obj["SidebarCategories"] = sidebar
	}
	obj["Messages"] = takeFlashes(c)
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// RenderError renders the error page with a message.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Title": http.StatusText(code), "Error": message})
}

// Forbidden is the response for logged-in users without access.
func Forbidden(c *gin.Context) {
	RenderError(c, http.StatusForbidden, "You do not have permission to view this page.")
}

// NotFound renders the 404 page for unmatched routes.
func NotFound(c *gin.Context) {
	RenderError(c, http.StatusNotFound, "Page not found.")
}

// handleError maps domain errors onto error pages. Anything unknown is
// logged and shown as a 500.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		RenderError(c, http.StatusNotFound, "Page not found.")
	case errors.Is(err, models.ErrIntegrityViolation):
		RenderError(c, http.StatusConflict, "The operation conflicts with existing data.")
	default:
		_ = c.Error(err)
		logger.Get().Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		RenderError(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
	}
}

// paramID parses a positive numeric path parameter. Anything else is
// reported as not found.
func paramID(c *gin.Context, name, entity string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, &models.NotFoundError{Entity: entity}
	}
	return uint(id), nil
}

func flash(c *gin.Context, level, text string) {
	session := sessions.Default(c)
	session.AddFlash(text, level)
	if err := session.Save(); err != nil {
		logger.Get().Error().Err(err).Msg("save flash message")
	}
}

func takeFlashes(c *gin.Context) []Message {
	session := sessions.Default(c)
	var out []Message
	for _, level := range []string{flashSuccess, flashError} {
		for _, f := range session.Flashes(level) {
			if text, ok := f.(string); ok {
				out = append(out, Message{Level: level, Text: text})
			}
		}
	}
	if len(out) > 0 {
		_ = session.Save()
	}
	return out
}
