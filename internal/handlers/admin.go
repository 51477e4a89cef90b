package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"newsroom/internal/forms"
	"newsroom/internal/models"
	"newsroom/internal/repository"
	"newsroom/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	news       repository.NewsRepository
	categories repository.CategoryRepository
	media      *services.MediaStore

	newsList     AdminListConfig[models.News]
	categoryList AdminListConfig[models.Category]
}

func NewAdminHandler(repos *repository.Repositories, media *services.MediaStore) *AdminHandler {
	return &AdminHandler{
		news:         repos.News,
		categories:   repos.Category,
		media:        media,
		newsList:     newsAdminConfig(repos.News, repos.Category),
		categoryList: categoryAdminConfig(),
	}
}

// adminRow is one rendered list row.
type adminRow struct {
	ID    uint
	URL   string
	Cells []adminCell
}

type adminCell struct {
	Value string
	Link  bool
	Edit  *adminInput
}

type adminInput struct {
	Name    string
	Kind    AdminEditKind
	Value   string
	Choices []AdminChoice
}

// adminInputName names the list input of one editable field of one item.
func adminInputName(id uint, field string) string {
	return fmt.Sprintf("form-%d-%s", id, field)
}

// editChoices loads the choices of every editable select column, keyed by
// column index.
func editChoices[T any](ctx context.Context, cfg AdminListConfig[T]) (map[int][]AdminChoice, error) {
	out := map[int][]AdminChoice{}
	for i, col := range cfg.Columns {
		if col.Edit == nil || col.Edit.Choices == nil {
			continue
		}
		choices, err := col.Edit.Choices(ctx)
		if err != nil {
			return nil, err
		}
		out[i] = choices
	}
	return out, nil
}

type adminFilterView struct {
	Param    string
	Label    string
	Selected string
	Choices  []AdminChoice
}

// renderAdminList runs the configured search and renders the generic list page.
func renderAdminList[T any](c *gin.Context, cfg AdminListConfig[T], search func(context.Context, repository.ListQuery) ([]T, error)) {
	ctx := c.Request.Context()
	q := repository.ListQuery{
		Search:       strings.TrimSpace(c.Query("q")),
		SearchFields: cfg.SearchFields,
		Filters:      map[string]any{},
	}

	filters := make([]adminFilterView, 0, len(cfg.Filters))
	for _, f := range cfg.Filters {
		raw := c.Query(f.Param)
		if v, ok := f.Parse(raw); raw != "" && ok {
			q.Filters[f.Column] = v
		} else {
			raw = ""
		}

		view := adminFilterView{Param: f.Param, Label: f.Label, Selected: raw}
		if f.Choices != nil {
			choices, err := f.Choices(ctx)
			if err != nil {
				handleError(c, err)
				return
			}
			view.Choices = choices
		}
		filters = append(filters, view)
	}

	items, err := search(ctx, q)
	if err != nil {
		handleError(c, err)
		return
	}

	choices, err := editChoices(ctx, cfg)
	if err != nil {
		handleError(c, err)
		return
	}

	headers := make([]string, len(cfg.Columns))
	for i, col := range cfg.Columns {
		headers[i] = col.Label
	}
	rows := make([]adminRow, len(items))
	for i, item := range items {
		id := cfg.ID(item)
		row := adminRow{ID: id, URL: fmt.Sprintf("%s%d/", cfg.Path, id)}
		for j, col := range cfg.Columns {
			cell := adminCell{Value: col.Value(item), Link: col.Link}
			if col.Edit != nil {
				cell.Edit = &adminInput{
					Name:    adminInputName(id, col.Edit.Field),
					Kind:    col.Edit.Kind,
					Value:   col.Edit.Current(item),
					Choices: choices[j],
				}
			}
			row.Cells = append(row.Cells, cell)
		}
		rows[i] = row
	}

	Render(c, http.StatusOK, "admin/list.html", gin.H{
		"Title":    cfg.Title,
		"Path":     cfg.Path,
		"Headers":  headers,
		"Rows":     rows,
		"Query":    q.Search,
		"Filters":  filters,
		"Count":    len(rows),
		"Editable": cfg.Editable(),
	})
}

// saveAdminList stores the inline edits posted from a list page. Every row
// is validated before anything is written; a bad value rejects the whole
// submission.
func saveAdminList[T any](c *gin.Context, cfg AdminListConfig[T]) {
	ctx := c.Request.Context()
	if !cfg.Editable() || cfg.Save == nil {
		RenderError(c, http.StatusMethodNotAllowed, "This list cannot be edited.")
		return
	}

	choices, err := editChoices(ctx, cfg)
	if err != nil {
		handleError(c, err)
		return
	}

	ids := c.PostFormArray("ids")
	if len(ids) == 0 {
		flash(c, flashError, "No items were submitted.")
		c.Redirect(http.StatusFound, cfg.Path)
		return
	}

	changes := make(map[uint]map[string]any, len(ids))
	for _, raw := range ids {
		v, ok := parseID(raw)
		if !ok {
			RenderError(c, http.StatusBadRequest, "Invalid item id.")
			return
		}
		id := v.(uint)

		fields := map[string]any{}
		for i, col := range cfg.Columns {
			if col.Edit == nil {
				continue
			}
			value := c.PostForm(adminInputName(id, col.Edit.Field))
			if col.Edit.Kind == EditCheckbox && value == "" {
				value = "false"
			}
			parsed, ok := col.Edit.Parse(value)
			if ok && col.Edit.Kind == EditSelect {
				ok = hasChoice(choices[i], value)
			}
			if !ok {
				RenderError(c, http.StatusBadRequest, fmt.Sprintf("Select a valid %s for item %d.", strings.ToLower(col.Label), id))
				return
			}
			fields[col.Edit.Field] = parsed
		}
		changes[id] = fields
	}

	if err := cfg.Save(ctx, changes); err != nil {
		handleError(c, err)
		return
	}

	flash(c, flashSuccess, fmt.Sprintf("%d %s were changed successfully.", len(changes), strings.ToLower(cfg.Title)))
	c.Redirect(http.StatusFound, cfg.Path)
}

func hasChoice(choices []AdminChoice, value string) bool {
	for _, ch := range choices {
		if ch.Value == value {
			return true
		}
	}
	return false
}

func (h *AdminHandler) ListNews(c *gin.Context) {
	renderAdminList(c, h.newsList, h.news.Search)
}

// SaveNewsList applies the inline category and published edits of the news list.
func (h *AdminHandler) SaveNewsList(c *gin.Context) {
	saveAdminList(c, h.newsList)
}

func (h *AdminHandler) ListCategories(c *gin.Context) {
	renderAdminList(c, h.categoryList, h.categories.Search)
}

func (h *AdminHandler) EditNews(c *gin.Context) {
	item, ok := h.loadNews(c)
	if !ok {
		return
	}
	form := forms.AdminNewsForm{
		Title:       item.Title,
		Content:     item.Content,
		IsPublished: item.IsPublished,
		CategoryID:  item.CategoryID,
	}
	h.renderNewsForm(c, http.StatusOK, item, form, nil)
}

// UpdateNews saves an admin edit. The digit-title rule of the public form
// does not apply here.
func (h *AdminHandler) UpdateNews(c *gin.Context) {
	ctx := c.Request.Context()
	item, ok := h.loadNews(c)
	if !ok {
		return
	}

	var form forms.AdminNewsForm
	errs := bindForm(c, &form)
	if form.CategoryID != 0 {
		if _, err := h.categories.GetByID(ctx, form.CategoryID); errors.Is(err, models.ErrNotFound) {
			errs.Add("category", models.ReasonInvalidChoice, invalidCategoryMessage)
		} else if err != nil {
			handleError(c, err)
			return
		}
	}
	if len(errs) > 0 {
		h.renderNewsForm(c, http.StatusBadRequest, item, form, errs)
		return
	}

	item.Title = form.Title
	item.Content = form.Content
	item.IsPublished = form.IsPublished
	item.CategoryID = form.CategoryID
	if err := h.news.Update(ctx, item); err != nil {
		handleError(c, err)
		return
	}

	flash(c, flashSuccess, fmt.Sprintf("The news %q was changed successfully.", item.Title))
	c.Redirect(http.StatusFound, h.newsList.Path)
}

func (h *AdminHandler) DeleteNews(c *gin.Context) {
	item, ok := h.loadNews(c)
	if !ok {
		return
	}
	if err := h.news.Delete(c.Request.Context(), item.ID); err != nil {
		handleError(c, err)
		return
	}
	discardPhoto(h.media, item.Photo, "remove photo of deleted news")

	flash(c, flashSuccess, fmt.Sprintf("The news %q was deleted successfully.", item.Title))
	c.Redirect(http.StatusFound, h.newsList.Path)
}

func (h *AdminHandler) NewCategory(c *gin.Context) {
	renderCategoryForm(c, http.StatusOK, nil, forms.CategoryForm{}, nil)
}

func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var form forms.CategoryForm
	errs := bindForm(c, &form)
	if len(errs) > 0 {
		renderCategoryForm(c, http.StatusBadRequest, nil, form, errs)
		return
	}

	category := &models.Category{Title: form.Title, Description: form.Description}
	if err := h.categories.Create(c.Request.Context(), category); err != nil {
		handleError(c, err)
		return
	}
	flash(c, flashSuccess, fmt.Sprintf("The category %q was added successfully.", category.Title))
	c.Redirect(http.StatusFound, h.categoryList.Path)
}

func (h *AdminHandler) EditCategory(c *gin.Context) {
	category, ok := h.loadCategory(c)
	if !ok {
		return
	}
	form := forms.CategoryForm{Title: category.Title, Description: category.Description}
	renderCategoryForm(c, http.StatusOK, category, form, nil)
}

func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	category, ok := h.loadCategory(c)
	if !ok {
		return
	}

	var form forms.CategoryForm
	errs := bindForm(c, &form)
	if len(errs) > 0 {
		renderCategoryForm(c, http.StatusBadRequest, category, form, errs)
		return
	}

	category.Title = form.Title
	category.Description = form.Description
	if err := h.categories.Update(c.Request.Context(), category); err != nil {
		handleError(c, err)
		return
	}
	flash(c, flashSuccess, fmt.Sprintf("The category %q was changed successfully.", category.Title))
	c.Redirect(http.StatusFound, h.categoryList.Path)
}

// DeleteCategory refuses with 409 while news items reference the category.
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	category, ok := h.loadCategory(c)
	if !ok {
		return
	}

	err := h.categories.Delete(c.Request.Context(), category.ID)
	if errors.Is(err, models.ErrIntegrityViolation) {
		RenderError(c, http.StatusConflict,
			fmt.Sprintf("Cannot delete category %q because news items still reference it.", category.Title))
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}

	flash(c, flashSuccess, fmt.Sprintf("The category %q was deleted successfully.", category.Title))
	c.Redirect(http.StatusFound, h.categoryList.Path)
}

func (h *AdminHandler) loadNews(c *gin.Context) (*models.News, bool) {
	id, err := paramID(c, "id", "news")
	if err == nil {
		var item *models.News
		if item, err = h.news.GetByID(c.Request.Context(), id); err == nil {
			return item, true
		}
	}
	handleError(c, err)
	return nil, false
}

func (h *AdminHandler) loadCategory(c *gin.Context) (*models.Category, bool) {
	id, err := paramID(c, "id", "category")
	if err == nil {
		var category *models.Category
		if category, err = h.categories.GetByID(c.Request.Context(), id); err == nil {
			return category, true
		}
	}
	handleError(c, err)
	return nil, false
}

func (h *AdminHandler) renderNewsForm(c *gin.Context, code int, item *models.News, form forms.AdminNewsForm, errs models.FieldErrors) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	if errs == nil {
		errs = models.FieldErrors{}
	}
	Render(c, code, "admin/news_form.html", gin.H{
		"Title":      "Change news",
		"Item":       item,
		"Form":       form,
		"Errors":     errs,
		"Categories": categories,
	})
}

func renderCategoryForm(c *gin.Context, code int, category *models.Category, form forms.CategoryForm, errs models.FieldErrors) {
	if errs == nil {
		errs = models.FieldErrors{}
	}
	title, action := "Add category", "/admin/categories/"
	if category != nil {
		title, action = "Change category", fmt.Sprintf("/admin/categories/%d/", category.ID)
	}
	Render(c, code, "admin/category_form.html", gin.H{
		"Title":    title,
		"Action":   action,
		"Category": category,
		"Form":     form,
		"Errors":   errs,
	})
}
