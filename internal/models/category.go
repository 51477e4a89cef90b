package models

import "fmt"

// Category groups news items. A category that still has news cannot be deleted.
type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:100;not null;index" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	News        []News `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"news,omitempty"`
}

func (Category) TableName() string {
	return "category"
}

func (c Category) String() string {
	return c.Title
}

// URL is the public listing path of the category.
func (c Category) URL() string {
	return fmt.Sprintf("/category/%d/", c.ID)
}

// CategoryCount is a category annotated with its number of published news.
type CategoryCount struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	NewsCount   int64  `json:"news_count"`
}

func (c CategoryCount) URL() string {
	return fmt.Sprintf("/category/%d/", c.ID)
}
