package model

import "time"

const (
	MediaImage = "image"
	MediaVideo = "video"
)

var MediaTypes = []string{MediaImage, MediaVideo}

type GalleryItem struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	MediaURL    string    `gorm:"size:512;not null" json:"media_url"`
	MediaType   string    `gorm:"size:10;not null;index" json:"media_type"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (GalleryItem) TableName() string { return "gallery" }
