package handlers

import (
	"errors"
	"net/http"
	"strings"

	"newsroom/internal/forms"
	"newsroom/internal/logger"
	"newsroom/internal/metrics"
	"newsroom/internal/models"
	"newsroom/internal/pagination"
	"newsroom/internal/repository"
	"newsroom/internal/services"
	"newsroom/internal/utils"

	"github.com/gin-gonic/gin"
)

const invalidCategoryMessage = "Select a valid choice. That choice is not one of the available choices."

type NewsHandler struct {
	news       repository.NewsRepository
	categories repository.CategoryRepository
	media      *services.MediaStore
	content    *utils.ContentCache
	metrics    metrics.Recorder
	banner     Banner
	pageSize   int
}

func NewNewsHandler(repos *repository.Repositories, media *services.MediaStore, content *utils.ContentCache, rec metrics.Recorder, pageSize int) *NewsHandler {
	return &NewsHandler{
		news:       repos.News,
		categories: repos.Category,
		media:      media,
		content:    content,
		metrics:    rec,
		banner:     NewBanner("hello world"),
		pageSize:   pageSize,
	}
}

// Home lists published news. A page number past the end renders an empty
// page instead of an error.
func (h *NewsHandler) Home(c *gin.Context) {
	number := pagination.ParseNumber(c.Query("page"))

	items, page, err := h.news.ListPublished(c.Request.Context(), number, h.pageSize)
	if err != nil {
		handleError(c, err)
		return
	}

	Render(c, http.StatusOK, "news/list.html", gin.H{
		"Title":      "Home Page",
		"News":       items,
		"Page":       page,
		"PageExists": page.Exists,
		"MixinProp":  h.banner.Prop(),
		"BaseURL":    "/",
	})
}

// ByCategory lists one category's published news. Unlike Home, an empty
// page is a 404.
func (h *NewsHandler) ByCategory(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := paramID(c, "id", "category")
	if err != nil {
		handleError(c, err)
		return
	}

	category, err := h.categories.GetByID(ctx, id)
	if err != nil {
		handleError(c, err)
		return
	}

	number := pagination.ParseNumber(c.Query("page"))
	items, page, err := h.news.ListPublishedByCategory(ctx, id, number, h.pageSize)
	if err != nil {
		handleError(c, err)
		return
	}

	Render(c, http.StatusOK, "news/list.html", gin.H{
		"Title":      category.Title,
		"Category":   category,
		"News":       items,
		"Page":       page,
		"PageExists": page.Exists,
		"BaseURL":    category.URL(),
	})
}

func (h *NewsHandler) Detail(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := paramID(c, "id", "news")
	if err != nil {
		handleError(c, err)
		return
	}

	if err := h.news.IncrementViews(ctx, id); err != nil {
		handleError(c, err)
		return
	}
	item, err := h.news.GetByID(ctx, id)
	if err != nil {
		handleError(c, err)
		return
	}
	h.metrics.RecordNewsViewed()

	Render(c, http.StatusOK, "news/detail.html", gin.H{
		"Title":   item.Title,
		"Item":    item,
		"Content": h.content.Render(item.ID, item.UpdatedAt, item.Content),
	})
}

func (h *NewsHandler) ShowCreate(c *gin.Context) {
	h.renderCreate(c, http.StatusOK, forms.NewNewsForm(), nil)
}

func (h *NewsHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var form forms.NewsForm
	errs := bindForm(c, &form)

	if form.CategoryID != 0 && !errs.Has("category", models.ReasonMissingField) {
		if _, err := h.categories.GetByID(ctx, form.CategoryID); err != nil {
			if !errors.Is(err, models.ErrNotFound) {
				handleError(c, err)
				return
			}
			errs.Add("category", models.ReasonInvalidChoice, invalidCategoryMessage)
		}
	}
	if len(errs) > 0 {
		h.renderCreate(c, http.StatusBadRequest, form, errs)
		return
	}

	item := form.News()
	if err := h.savePhoto(c, item); err != nil {
		errs.Add("photo", models.ReasonInvalidFormat, photoMessage(err))
		h.renderCreate(c, http.StatusBadRequest, form, errs)
		return
	}

	if err := h.news.Create(ctx, item); err != nil {
		discardPhoto(h.media, item.Photo, "remove photo of unsaved news")
		if errors.Is(err, models.ErrIntegrityViolation) {
			errs.Add("category", models.ReasonInvalidChoice, invalidCategoryMessage)
			h.renderCreate(c, http.StatusBadRequest, form, errs)
			return
		}
		handleError(c, err)
		return
	}

	h.metrics.RecordNewsCreated()
	logger.Get().Info().Uint("news_id", item.ID).Str("title", item.Title).Msg("news created")
	c.Redirect(http.StatusFound, item.URL())
}

type photoRemover interface {
	Remove(rel string) error
}

// discardPhoto deletes a stored photo. Failures are logged and otherwise ignored.
func discardPhoto(store photoRemover, rel, msg string) {
	if err := store.Remove(rel); err != nil {
		logger.Get().Warn().Err(err).Str("photo", rel).Msg(msg)
	}
}

// savePhoto stores the optional "photo" upload and records its path on item.
func (h *NewsHandler) savePhoto(c *gin.Context, item *models.News) error {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil
	}
	upload, err := c.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return nil
	}
	if err != nil {
		return err
	}
	path, err := h.media.SavePhoto(upload)
	if err != nil {
		if !errors.Is(err, services.ErrPhotoBadFormat) && !errors.Is(err, services.ErrPhotoTooLarge) {
			logger.Get().Error().Err(err).Msg("store photo")
		}
		return err
	}
	item.Photo = path
	return nil
}

func (h *NewsHandler) renderCreate(c *gin.Context, code int, form forms.NewsForm, errs models.FieldErrors) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	if errs == nil {
		errs = models.FieldErrors{}
	}
	Render(c, code, "news/create.html", gin.H{
		"Title":      "Add News",
		"Form":       form,
		"Errors":     errs,
		"Categories": categories,
	})
}

func photoMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrPhotoTooLarge):
		return "The photo must be at most 5 MiB."
	case errors.Is(err, services.ErrPhotoBadFormat):
		return "Upload a valid image. Accepted formats are JPEG, PNG, GIF and WebP."
	}
	return "Upload a valid image."
}
