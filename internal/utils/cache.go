package utils

import (
	"fmt"
	"html/template"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ContentCache keeps rendered news bodies. Entries are keyed by id and
// modification time, so an edit always misses.
type ContentCache struct {
	lruCache *lru.Cache[string, template.HTML]
}

func NewContentCache(size int) (*ContentCache, error) {
	l, err := lru.New[string, template.HTML](size)
	if err != nil {
		return nil, err
	}
	return &ContentCache{lruCache: l}, nil
}

// Render returns the cached HTML for the item, rendering it on a miss.
func (c *ContentCache) Render(id uint, updatedAt time.Time, source string) template.HTML {
	key := fmt.Sprintf("%d:%d", id, updatedAt.UnixNano())
	if html, ok := c.lruCache.Get(key); ok {
		return html
	}
	html := RenderMarkdown(source)
	c.lruCache.Add(key, html)
	return html
}

func (c *ContentCache) Len() int {
	return c.lruCache.Len()
}
