package repository

import (
	"errors"
	"sort"
	"strings"

	"newsroom/internal/models"

	"gorm.io/gorm"
)

// Repositories bundles every repository over one connection.
type Repositories struct {
	News     NewsRepository
	Category CategoryRepository
	User     UserRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		News:     NewNewsRepository(db),
		Category: NewCategoryRepository(db),
		User:     NewUserRepository(db),
	}
}

// translate maps gorm errors onto the domain error set.
func translate(err error, entity string, id uint) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &models.NotFoundError{Entity: entity, ID: id}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errors.Join(models.ErrIntegrityViolation, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Join(models.ErrDuplicate, err)
	}
	return err
}

func applyListQuery(tx *gorm.DB, table string, q ListQuery) *gorm.DB {
	if term := strings.TrimSpace(q.Search); term != "" && len(q.SearchFields) > 0 {
		pattern := "%" + strings.ToLower(term) + "%"
		clauses := make([]string, len(q.SearchFields))
		args := make([]any, len(q.SearchFields))
		for i, f := range q.SearchFields {
			clauses[i] = "LOWER(" + table + "." + f + ") LIKE ?"
			args[i] = pattern
		}
		tx = tx.Where(strings.Join(clauses, " OR "), args...)
	}

	// sorted for stable SQL
	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		tx = tx.Where(table+"."+k+" = ?", q.Filters[k])
	}
	return tx
}
