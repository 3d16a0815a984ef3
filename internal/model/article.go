package model

import "time"

// EditableArticleInfo holds the article fields an admin may change.
type EditableArticleInfo struct {
	Title         string `gorm:"type:text" json:"title"`
	Excerpt       string `gorm:"type:text" json:"excerpt"`
	Content       string `gorm:"type:text" json:"content"`
	Category      string `gorm:"type:text" json:"category"`
	Author        string `gorm:"type:text" json:"author"`
	Image         string `gorm:"type:text" json:"image,omitempty"`
	PublishedDate string `gorm:"type:text" json:"publishedDate"`
}

// Article is gorm model for one editorial piece. Same CRUD shape as
// JobRole but without the form/file/email workflow.
type Article struct {
	ID string `gorm:"primaryKey;<-:create" json:"id"`
	EditableArticleInfo

	CreatedAt time.Time `gorm:"type:timestamp" json:"-"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"-"`
}
