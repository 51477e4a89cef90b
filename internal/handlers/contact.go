package handlers

import (
	"net/http"

	"newsroom/internal/config"
	"newsroom/internal/forms"
	"newsroom/internal/logger"
	"newsroom/internal/metrics"
	"newsroom/internal/models"
	"newsroom/internal/services"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	mailer  services.Mailer
	from    string
	to      []string
	metrics metrics.Recorder
}

func NewContactHandler(mailer services.Mailer, cfg config.MailConfig, rec metrics.Recorder) *ContactHandler {
	return &ContactHandler{mailer: mailer, from: cfg.From, to: cfg.To, metrics: rec}
}

func (h *ContactHandler) Show(c *gin.Context) {
	renderContact(c, http.StatusOK, forms.ContactForm{}, nil)
}

// Send mails the message to the site's contact recipients. A delivery
// failure keeps the user on the form with their input intact.
func (h *ContactHandler) Send(c *gin.Context) {
	var form forms.ContactForm
	errs := bindForm(c, &form)
	if len(errs) > 0 {
		renderContact(c, http.StatusBadRequest, form, errs)
		return
	}

	err := h.mailer.Send(c.Request.Context(), services.Message{
		Subject: form.Subject,
		Body:    form.Message,
		From:    h.from,
		To:      h.to,
	})
	if err != nil {
		h.metrics.RecordMailFailed()
		logger.Get().Warn().Err(err).Msg("contact mail not sent")
		errs.Add("", models.ReasonInvalid, "Email has not been sent")
		renderContact(c, http.StatusOK, form, errs)
		return
	}

	h.metrics.RecordMailSent()
	flash(c, flashSuccess, "Email has been sent successfully")
	c.Redirect(http.StatusFound, "/")
}

func renderContact(c *gin.Context, code int, form forms.ContactForm, errs models.FieldErrors) {
	if errs == nil {
		errs = models.FieldErrors{}
	}
	Render(c, code, "contacts.html", gin.H{"Title": "Contact", "Form": form, "Errors": errs})
}
