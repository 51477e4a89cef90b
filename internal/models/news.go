package models

import (
	"fmt"
	"time"
)

type News struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:150;not null" json:"title"`
	Content     string    `gorm:"type:text" json:"content"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Photo       string    `gorm:"column:photo_path;size:255" json:"photo"` // relative to the media root, empty when absent
	IsPublished bool      `gorm:"not null;default:true;index" json:"is_published"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	Category    Category  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	Views       int       `gorm:"not null;default:0" json:"views"`
}

// NewNews returns an unsaved news item. Items start out published.
func NewNews(title, content string, categoryID uint) *News {
	return &News{Title: title, Content: content, CategoryID: categoryID, IsPublished: true}
}

func (News) TableName() string {
	return "news"
}

func (n News) String() string {
	return fmt.Sprintf("News %d: %s", n.ID, n.Title)
}

// URL is the detail page path of the news item.
func (n News) URL() string {
	return fmt.Sprintf("/news/%d/", n.ID)
}

// PhotoURL returns the public URL of the photo, or "" when there is none.
func (n News) PhotoURL() string {
	if n.Photo == "" {
		return ""
	}
	return "/media/" + n.Photo
}
