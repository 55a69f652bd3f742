package entity

import (
	"time"
)

// Image kinds stored in the image_type column.
const (
	ImageTypeURL    = "url"    // externally-linked image
	ImageTypeUpload = "upload" // file processed and served from the upload dir
)

type SuperheroImage struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SuperheroID uint      `json:"superhero_id" gorm:"not null;index"`
	ImageURL    string    `json:"image_url" gorm:"type:varchar(500);not null"`
	ImageType   string    `json:"image_type" gorm:"type:varchar(20);default:'url'"`
	AltText     string    `json:"alt_text" gorm:"type:varchar(200)"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;autoCreateTime"`

	Superhero *Superhero `json:"-" gorm:"foreignKey:SuperheroID;constraint:OnDelete:CASCADE"`
}

func (SuperheroImage) TableName() string {
	return "superhero_images"
}
