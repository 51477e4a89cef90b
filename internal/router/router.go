package router

import (
	"context"
	"io/fs"
	"net/http"

	"newsroom/internal/config"
	"newsroom/internal/db"
	"newsroom/internal/handlers"
	"newsroom/internal/metrics"
	"newsroom/internal/middleware"
	"newsroom/internal/repository"
	"newsroom/internal/services"
	"newsroom/internal/utils"
	"newsroom/web"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

const contentCacheSize = 500

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Mailer services.Mailer
	// Registry receives the HTTP and domain metrics. A private registry is
	// created when nil.
	Registry *prometheus.Registry
	// RateLimiter guards form submissions on login, register and contacts.
	// Nil disables limiting.
	RateLimiter *middleware.RateLimiter
}

// New wires handlers, middleware and templates into an engine.
func New(d Deps) (*gin.Engine, error) {
	cfg := d.Config
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}
	collector := metrics.NewCollector(d.Registry)

	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery(), collector.Middleware())
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics", "/media/"})))

	renderer, err := LoadTemplates(web.FS, cfg.SiteName)
	if err != nil {
		return nil, err
	}
	r.HTMLRender = renderer

	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))
	r.Static("/media", cfg.MediaRoot)

	r.GET("/metrics", gin.WrapH(metrics.Handler(d.Registry)))
	r.GET("/healthz", handlers.Health(func(ctx context.Context) error { return db.Ping(ctx, d.DB) }))

	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   !cfg.IsDev(),
		SameSite: http.SameSiteLaxMode,
	})

	repos := repository.NewRepositories(d.DB)
	media := services.NewMediaStore(cfg.MediaRoot)
	content, err := utils.NewContentCache(contentCacheSize)
	if err != nil {
		return nil, err
	}

	pageMiddleware := []gin.HandlerFunc{
		sessions.Sessions(cfg.Session.Name, store),
		middleware.LoadUser(repos.User),
		middleware.LoadCategories(repos.Category),
	}
	site := r.Group("/", pageMiddleware...)
	r.NoRoute(append(pageMiddleware, handlers.NotFound)...)

	limit := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if d.RateLimiter == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{d.RateLimiter.Middleware(), h}
	}

	// Handlers
	newsHandler := handlers.NewNewsHandler(repos, media, content, collector, cfg.PageSize)
	authHandler := handlers.NewAuthHandler(repos.User, cfg.LoginURL)
	contactHandler := handlers.NewContactHandler(d.Mailer, cfg.Mail, collector)
	adminHandler := handlers.NewAdminHandler(repos, media)
	seoHandler := handlers.NewSEOHandler(repos, cfg.SiteURL, cfg.SiteName)

	r.GET("/robots.txt", seoHandler.RobotsTxt)
	r.GET("/sitemap.xml", seoHandler.SitemapXML)
	r.GET("/feed.xml", seoHandler.RSSFeed)

	// Public routes
	site.GET("/", newsHandler.Home)
	site.GET("/category/:id/", newsHandler.ByCategory)
	site.GET("/news/:id/", newsHandler.Detail)

	site.GET("/register/", authHandler.ShowRegister)
	site.POST("/register/", limit(authHandler.Register)...)
	site.GET("/login/", authHandler.ShowLogin)
	site.POST("/login/", limit(authHandler.Login)...)
	site.GET("/logout/", authHandler.Logout)
	site.POST("/logout/", authHandler.Logout)

	site.GET("/contacts/", contactHandler.Show)
	site.POST("/contacts/", limit(contactHandler.Send)...)

	// Protected routes
	authorized := site.Group("/", middleware.AuthRequired(cfg.LoginURL))
	{
		authorized.GET("/news/add/", newsHandler.ShowCreate)
		authorized.POST("/news/add/", newsHandler.Create)
	}

	// Admin routes
	admin := site.Group("/admin", middleware.AuthRequired(cfg.LoginURL), middleware.AdminRequired(handlers.Forbidden))
	{
		admin.GET("/news/", adminHandler.ListNews)
		admin.POST("/news/", adminHandler.SaveNewsList)
		admin.GET("/news/:id/", adminHandler.EditNews)
		admin.POST("/news/:id/", adminHandler.UpdateNews)
		admin.POST("/news/:id/delete", adminHandler.DeleteNews)

		admin.GET("/categories/", adminHandler.ListCategories)
		admin.POST("/categories/", adminHandler.CreateCategory)
		admin.GET("/categories/add/", adminHandler.NewCategory)
		admin.GET("/categories/:id/", adminHandler.EditCategory)
		admin.POST("/categories/:id/", adminHandler.UpdateCategory)
		admin.POST("/categories/:id/delete", adminHandler.DeleteCategory)
	}

	return r, nil
}
