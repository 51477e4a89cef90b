package handlers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"newsroom/internal/repository"
	"newsroom/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	sitemapLimit = 500
	feedLimit    = 20
)

type SEOHandler struct {
	news       repository.NewsRepository
	categories repository.CategoryRepository
	siteURL    string
	siteName   string
}

func NewSEOHandler(repos *repository.Repositories, siteURL, siteName string) *SEOHandler {
	return &SEOHandler{
		news:       repos.News,
		categories: repos.Category,
		siteURL:    strings.TrimRight(siteURL, "/"),
		siteName:   siteName,
	}
}

func (h *SEOHandler) RobotsTxt(c *gin.Context) {
	content := fmt.Sprintf(`User-agent: *
Allow: /

Disallow: /admin/
Disallow: /login/
Disallow: /register/
Disallow: /logout/
Disallow: /news/add/

Sitemap: %s/sitemap.xml
`, h.siteURL)

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, content)
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// SitemapXML lists the home page, every category with published news and
// the most recent published news items.
func (h *SEOHandler) SitemapXML(c *gin.Context) {
	ctx := c.Request.Context()
	now := time.Now().Format("2006-01-02")

	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	set.URLs = append(set.URLs, sitemapURL{Loc: h.siteURL + "/", LastMod: now, ChangeFreq: "daily", Priority: "1.0"})

	categories, err := h.categories.ListWithPublishedNews(ctx)
	if err != nil {
		handleError(c, err)
		return
	}
	for _, cat := range categories {
		set.URLs = append(set.URLs, sitemapURL{Loc: h.siteURL + cat.URL(), LastMod: now, ChangeFreq: "daily", Priority: "0.7"})
	}

	items, _, err := h.news.ListPublished(ctx, 1, sitemapLimit)
	if err != nil {
		handleError(c, err)
		return
	}
	for _, item := range items {
		// fresher items are crawled more often
		priority, freq := "0.6", "weekly"
		if time.Since(item.CreatedAt) < 7*24*time.Hour {
			priority, freq = "0.8", "daily"
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        h.siteURL + item.URL(),
			LastMod:    item.UpdatedAt.Format("2006-01-02"),
			ChangeFreq: freq,
			Priority:   priority,
		})
	}

	writeXML(c, "application/xml; charset=utf-8", set)
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Category    string `xml:"category,omitempty"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

// RSSFeed publishes the latest published news as RSS 2.0.
func (h *SEOHandler) RSSFeed(c *gin.Context) {
	items, _, err := h.news.ListPublished(c.Request.Context(), 1, feedLimit)
	if err != nil {
		handleError(c, err)
		return
	}

	feed := rssFeed{
		Version: "2.0",
		Channel: rssChannel{
			Title:         h.siteName,
			Link:          h.siteURL + "/",
			Description:   "Latest news from " + h.siteName,
			LastBuildDate: time.Now().Format(time.RFC1123Z),
		},
	}
	for _, item := range items {
		link := h.siteURL + item.URL()
		feed.Channel.Items = append(feed.Channel.Items, rssItem{
			Title:       item.Title,
			Link:        link,
			Description: utils.Excerpt(item.Content, 300),
			Category:    item.Category.Title,
			PubDate:     item.CreatedAt.Format(time.RFC1123Z),
			GUID:        link,
		})
	}

	writeXML(c, "application/rss+xml; charset=utf-8", feed)
}

func writeXML(c *gin.Context, contentType string, v any) {
	out, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		handleError(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, append([]byte(xml.Header), out...))
}
