package handlers

import (
	"context"
	"strconv"

	"newsroom/internal/models"
	"newsroom/internal/repository"
)

// AdminColumn is one column of an admin list. Link columns point at the
// row's edit page; columns with an Edit are changed in place.
type AdminColumn[T any] struct {
	Label string
	Link  bool
	Value func(T) string
	Edit  *AdminEdit[T]
}

type AdminEditKind string

const (
	EditCheckbox AdminEditKind = "checkbox"
	EditSelect   AdminEditKind = "select"
)

// AdminEdit renders a column as a form input on the list page. Field is
// both the input suffix and the stored column name.
type AdminEdit[T any] struct {
	Field   string
	Kind    AdminEditKind
	Current func(T) string
	Parse   func(string) (any, bool)
	// Choices lists the accepted values of a select.
	Choices func(context.Context) ([]AdminChoice, error)
}

// AdminChoice is one option of a list filter.
type AdminChoice struct {
	Value string
	Label string
}

// AdminFilter narrows a list by one column. Only configured filters are
// read from the query string.
type AdminFilter struct {
	Param   string
	Label   string
	Column  string
	Parse   func(string) (any, bool)
	Choices func(context.Context) ([]AdminChoice, error)
}

// AdminListConfig describes an admin list page.
type AdminListConfig[T any] struct {
	Title        string
	Path         string
	ID           func(T) uint
	Columns      []AdminColumn[T]
	SearchFields []string
	Filters      []AdminFilter
	// Save stores in-place edits keyed by item id. Required when any
	// column has an Edit.
	Save func(ctx context.Context, changes map[uint]map[string]any) error
}

// Editable reports whether the list page carries inline inputs.
func (cfg AdminListConfig[T]) Editable() bool {
	for _, col := range cfg.Columns {
		if col.Edit != nil {
			return true
		}
	}
	return false
}

const adminTimeFormat = "2006-01-02 15:04"

func newsAdminConfig(news repository.NewsRepository, categories repository.CategoryRepository) AdminListConfig[models.News] {
	categoryChoices := func(ctx context.Context) ([]AdminChoice, error) {
		list, err := categories.List(ctx)
		if err != nil {
			return nil, err
		}
		choices := make([]AdminChoice, len(list))
		for i, cat := range list {
			choices[i] = AdminChoice{Value: strconv.FormatUint(uint64(cat.ID), 10), Label: cat.Title}
		}
		return choices, nil
	}

	return AdminListConfig[models.News]{
		Title: "News",
		Path:  "/admin/news/",
		ID:    func(n models.News) uint { return n.ID },
		Columns: []AdminColumn[models.News]{
			{Label: "ID", Link: true, Value: func(n models.News) string { return strconv.FormatUint(uint64(n.ID), 10) }},
			{Label: "Title", Link: true, Value: func(n models.News) string { return n.Title }},
			{
				Label: "Category",
				Value: func(n models.News) string { return n.Category.Title },
				Edit: &AdminEdit[models.News]{
					Field:   "category_id",
					Kind:    EditSelect,
					Current: func(n models.News) string { return strconv.FormatUint(uint64(n.CategoryID), 10) },
					Parse:   parseID,
					Choices: categoryChoices,
				},
			},
			{
				Label: "Published",
				Value: func(n models.News) string { return yesNo(n.IsPublished) },
				Edit: &AdminEdit[models.News]{
					Field:   "is_published",
					Kind:    EditCheckbox,
					Current: func(n models.News) string { return strconv.FormatBool(n.IsPublished) },
					Parse:   parseBool,
				},
			},
			{Label: "Created", Value: func(n models.News) string { return n.CreatedAt.Format(adminTimeFormat) }},
			{Label: "Updated", Value: func(n models.News) string { return n.UpdatedAt.Format(adminTimeFormat) }},
		},
		SearchFields: []string{"title", "content"},
		Filters: []AdminFilter{
			publishedFilter(),
			{
				Param:   "category_id",
				Label:   "Category",
				Column:  "category_id",
				Parse:   parseID,
				Choices: categoryChoices,
			},
		},
		Save: news.UpdateColumns,
	}
}

func categoryAdminConfig() AdminListConfig[models.Category] {
	return AdminListConfig[models.Category]{
		Title: "Categories",
		Path:  "/admin/categories/",
		ID:    func(c models.Category) uint { return c.ID },
		Columns: []AdminColumn[models.Category]{
			{Label: "ID", Link: true, Value: func(c models.Category) string { return strconv.FormatUint(uint64(c.ID), 10) }},
			{Label: "Title", Link: true, Value: func(c models.Category) string { return c.Title }},
			{Label: "Description", Value: func(c models.Category) string { return c.Description }},
		},
		SearchFields: []string{"title", "description"},
	}
}

func publishedFilter() AdminFilter {
	return AdminFilter{
		Param:  "is_published",
		Label:  "Published",
		Column: "is_published",
		Parse:  parseBool,
		Choices: func(context.Context) ([]AdminChoice, error) {
			return []AdminChoice{{Value: "true", Label: "Yes"}, {Value: "false", Label: "No"}}, nil
		},
	}
}

func parseBool(s string) (any, bool) {
	v, err := strconv.ParseBool(s)
	return v, err == nil
}

func parseID(s string) (any, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	return uint(id), err == nil && id > 0
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
