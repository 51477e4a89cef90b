package repository

import (
	"context"

	"newsroom/internal/models"
	"newsroom/internal/pagination"
)

// NewsRepository defines the read and write operations on news items.
type NewsRepository interface {
	Create(ctx context.Context, news *models.News) error
	GetByID(ctx context.Context, id uint) (*models.News, error)
	// ListPublished returns one page of published news, newest first. A page
	// number without items yields an empty slice and page.Exists == false.
	ListPublished(ctx context.Context, page, size int) ([]models.News, pagination.Page, error)
	// ListPublishedByCategory is ListPublished restricted to one category,
	// except that an empty page is reported as models.ErrNotFound.
	ListPublishedByCategory(ctx context.Context, categoryID uint, page, size int) ([]models.News, pagination.Page, error)
	IncrementViews(ctx context.Context, id uint) error
	Update(ctx context.Context, news *models.News) error
	// UpdateColumns writes the given columns of several items atomically.
	// Column names come from trusted list configuration.
	UpdateColumns(ctx context.Context, changes map[uint]map[string]any) error
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, q ListQuery) ([]models.News, error)
}

// CategoryRepository defines the operations on categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	// ListWithPublishedNews returns the categories that have at least one
	// published news item, annotated with that count.
	ListWithPublishedNews(ctx context.Context) ([]models.CategoryCount, error)
	Update(ctx context.Context, category *models.Category) error
	// Delete fails with models.ErrIntegrityViolation while news reference the category.
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, q ListQuery) ([]models.Category, error)
}

// UserRepository defines the account operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	SetRole(ctx context.Context, id uint, role string) error
}

// ListQuery narrows an admin list. Column names come from trusted list
// configuration, never from the request.
type ListQuery struct {
	Search       string
	SearchFields []string
	Filters      map[string]any
}
