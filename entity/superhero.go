package entity

import (
	"time"
)

type Superhero struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Nickname          string    `json:"nickname" gorm:"type:varchar(100);not null"`
	RealName          string    `json:"real_name" gorm:"type:varchar(100);not null"`
	OriginDescription string    `json:"origin_description" gorm:"type:text;not null"`
	Superpowers       string    `json:"superpowers" gorm:"type:text;not null"` // comma-separated list stored as a single string
	CatchPhrase       string    `json:"catch_phrase" gorm:"type:text;not null"`
	CreatedAt         time.Time `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Images []SuperheroImage `json:"-" gorm:"foreignKey:SuperheroID;constraint:OnDelete:CASCADE"`
}

func (Superhero) TableName() string {
	return "superheroes"
}
