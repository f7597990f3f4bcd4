package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Author struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name        string    `json:"name" gorm:"size:200;not null;index"`
	DateOfBirth time.Time `json:"date_of_birth" gorm:"type:date;not null"`
	Bio         string    `json:"bio" gorm:"size:1000;not null"`
	Photo       string    `json:"photo" gorm:"size:255;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	// association
	Books []Book `json:"books,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
}

func (author *Author) BeforeCreate(tx *gorm.DB) (err error) {
	if author.ID == "" {
		author.ID = uuid.New().String()
	}
	return
}

func (Author) TableName() string {
	return "authors"
}
