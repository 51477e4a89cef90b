package repository

import (
	"context"
	"fmt"
	"time"

	"newsroom/internal/models"
	"newsroom/internal/pagination"

	"gorm.io/gorm"
)

// newsOrder is the default listing order.
const newsOrder = "news.created_at DESC, news.title ASC"

type newsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

// newsInsertColumns are written on every insert. Listing them keeps an
// explicit false for is_published from being replaced by the column default.
var newsInsertColumns = []string{"Title", "Content", "CreatedAt", "UpdatedAt", "Photo", "IsPublished", "CategoryID", "Views"}

func (r *newsRepository) Create(ctx context.Context, news *models.News) error {
	err := r.db.WithContext(ctx).Select(newsInsertColumns).Omit("Category").Create(news).Error
	return translate(err, "category", news.CategoryID)
}

func (r *newsRepository) GetByID(ctx context.Context, id uint) (*models.News, error) {
	var news models.News
	err := r.db.WithContext(ctx).Joins("Category").First(&news, "news.id = ?", id).Error
	if err != nil {
		return nil, translate(err, "news", id)
	}
	return &news, nil
}

func (r *newsRepository) ListPublished(ctx context.Context, page, size int) ([]models.News, pagination.Page, error) {
	return r.listPage(ctx, r.db.WithContext(ctx).Where("news.is_published = ?", true), page, size)
}

func (r *newsRepository) ListPublishedByCategory(ctx context.Context, categoryID uint, page, size int) ([]models.News, pagination.Page, error) {
	scope := r.db.WithContext(ctx).Where("news.is_published = ? AND news.category_id = ?", true, categoryID)
	news, p, err := r.listPage(ctx, scope, page, size)
	if err != nil {
		return nil, p, err
	}
	if len(news) == 0 {
		return nil, p, &models.NotFoundError{Entity: "category", ID: categoryID}
	}
	return news, p, nil
}

func (r *newsRepository) listPage(ctx context.Context, scope *gorm.DB, page, size int) ([]models.News, pagination.Page, error) {
	var total int64
	if err := scope.Session(&gorm.Session{}).Model(&models.News{}).Count(&total).Error; err != nil {
		return nil, pagination.Page{}, fmt.Errorf("count news: %w", err)
	}

	p := pagination.Paginate(total, size, page)
	if !p.Exists || total == 0 {
		return []models.News{}, p, nil
	}

	var news []models.News
	err := scope.Session(&gorm.Session{}).
		Joins("Category").
		Order(newsOrder).
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&news).Error
	if err != nil {
		return nil, p, fmt.Errorf("list news: %w", err)
	}
	return news, p, nil
}

// IncrementViews bumps the counter in a single UPDATE so concurrent readers
// never lose an increment.
func (r *newsRepository) IncrementViews(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.News{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &models.NotFoundError{Entity: "news", ID: id}
	}
	return nil
}

// Update saves the editable fields. created_at is never rewritten.
func (r *newsRepository) Update(ctx context.Context, news *models.News) error {
	res := r.db.WithContext(ctx).Model(&models.News{ID: news.ID}).
		Select("title", "content", "photo_path", "is_published", "category_id", "updated_at").
		Updates(map[string]any{
			"title":        news.Title,
			"content":      news.Content,
			"photo_path":   news.Photo,
			"is_published": news.IsPublished,
			"category_id":  news.CategoryID,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return translate(res.Error, "category", news.CategoryID)
	}
	if res.RowsAffected == 0 {
		return &models.NotFoundError{Entity: "news", ID: news.ID}
	}
	return nil
}

// UpdateColumns applies per-item column changes in one transaction, so a
// bulk edit is saved entirely or not at all.
func (r *newsRepository) UpdateColumns(ctx context.Context, changes map[uint]map[string]any) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		for id, cols := range changes {
			values := make(map[string]any, len(cols)+1)
			for col, v := range cols {
				values[col] = v
			}
			values["updated_at"] = now

			res := tx.Model(&models.News{}).Where("id = ?", id).Updates(values)
			if res.Error != nil {
				return translate(res.Error, "news", id)
			}
			if res.RowsAffected == 0 {
				return &models.NotFoundError{Entity: "news", ID: id}
			}
		}
		return nil
	})
}

func (r *newsRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.News{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &models.NotFoundError{Entity: "news", ID: id}
	}
	return nil
}

func (r *newsRepository) Search(ctx context.Context, q ListQuery) ([]models.News, error) {
	var news []models.News
	tx := applyListQuery(r.db.WithContext(ctx).Model(&models.News{}), "news", q)
	err := tx.Joins("Category").Order(newsOrder).Find(&news).Error
	return news, err
}
