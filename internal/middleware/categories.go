package middleware

import (
	"newsroom/internal/logger"
	"newsroom/internal/models"
	"newsroom/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	NavCategoriesKey     = "nav_categories"
	SidebarCategoriesKey = "sidebar_categories"
)

// LoadCategories loads the navigation list and the sidebar counts for every
// page. Both are read from the store on each request so counts are never
// stale. A failed lookup leaves the lists empty rather than failing the page.
func LoadCategories(categories repository.CategoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		log := logger.Get()

		nav, err := categories.List(ctx)
		if err != nil {
			log.Error().Err(err).Msg("load navigation categories")
			nav = []models.Category{}
		}
		sidebar, err := categories.ListWithPublishedNews(ctx)
		if err != nil {
			log.Error().Err(err).Msg("load sidebar categories")
			sidebar = []models.CategoryCount{}
		}

		c.Set(NavCategoriesKey, nav)
		c.Set(SidebarCategoriesKey, sidebar)
		c.Next()
	}
}
