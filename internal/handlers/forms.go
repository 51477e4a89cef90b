package handlers

import (
	"newsroom/internal/forms"
	"newsroom/internal/models"

	"github.com/gin-gonic/gin"
)

type normalizer interface {
	Normalize()
}

// bindForm binds the request body into form, trims it and validates it.
// The returned map is never nil so callers can add their own errors.
func bindForm(c *gin.Context, form normalizer) models.FieldErrors {
	if err := c.ShouldBind(form); err != nil {
		errs := models.FieldErrors{}
		errs.Add("", models.ReasonInvalid, "The submitted form could not be read.")
		return errs
	}
	form.Normalize()

	errs := forms.Check(form)
	if errs == nil {
		errs = models.FieldErrors{}
	}
	return errs
}
