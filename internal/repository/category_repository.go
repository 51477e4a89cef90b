package repository

import (
	"context"
	"errors"

	"newsroom/internal/models"

	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Omit("News").Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, translate(err, "category", id)
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("title ASC, id ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) ListWithPublishedNews(ctx context.Context) ([]models.CategoryCount, error) {
	var rows []models.CategoryCount
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Select("category.id, category.title, category.description, COUNT(news.id) AS news_count").
		Joins("JOIN news ON news.category_id = category.id AND news.is_published = ?", true).
		Group("category.id, category.title, category.description").
		Order("category.title ASC, category.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	res := r.db.WithContext(ctx).Model(&models.Category{ID: category.ID}).
		Select("title", "description").
		Updates(map[string]any{
			"title":       category.Title,
			"description": category.Description,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &models.NotFoundError{Entity: "category", ID: category.ID}
	}
	return nil
}

// Delete refuses to remove a category that still has news. The count and the
// delete share a transaction; the RESTRICT foreign key covers a news row
// inserted concurrently.
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&models.News{}).Where("category_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return models.ErrIntegrityViolation
		}

		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, models.ErrIntegrityViolation) {
		return err
	}
	return translate(err, "category", id)
}

func (r *categoryRepository) Search(ctx context.Context, q ListQuery) ([]models.Category, error) {
	var categories []models.Category
	tx := applyListQuery(r.db.WithContext(ctx).Model(&models.Category{}), "category", q)
	err := tx.Order("category.title ASC, category.id ASC").Find(&categories).Error
	return categories, err
}
