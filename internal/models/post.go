package models

import (
	"time"
)

// Post is referenced by like/comment/share notifications. Post CRUD lives
// outside this service; the model exists so notification enrichment can
// attach the related post.
type Post struct {
	ID        uint      `gorm:"primaryKey"`
	AuthorID  uint      `gorm:"not null;index"`
	Text      string    `gorm:"type:text"`
	Image     string    `gorm:"type:varchar(500)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Post) TableName() string {
	return "posts"
}

type PostView struct {
	ID    uint   `json:"_id"`
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
}
