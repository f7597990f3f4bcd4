package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrYearOutOfRange is the storage-level publication year bound. The form
// layer deliberately does not range-check the year, so a violation surfaces
// from the save path rather than from field validation.
var ErrYearOutOfRange = errors.New("publication year must be between 0 and 2999")

type Book struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid"`
	Title           string    `json:"title" gorm:"size:200;not null;index"`
	AuthorID        string    `json:"author_id" gorm:"type:uuid;not null;index"`
	Summary         string    `json:"summary" gorm:"size:1000;not null"`
	PublicationYear int       `json:"publication_year" gorm:"not null;check:publication_year >= 0 AND publication_year <= 2999"`
	Poster          string    `json:"poster" gorm:"size:255;not null"`
	AddedByID       *string   `json:"added_by_id,omitempty" gorm:"type:uuid;index"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Author  Author `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	AddedBy *User  `json:"added_by,omitempty" gorm:"foreignKey:AddedByID;constraint:OnDelete:SET NULL;"`
}

func (book *Book) BeforeCreate(tx *gorm.DB) (err error) {
	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	return
}

// BeforeSave enforces the publication year bound on every write, mirroring
// the table check constraint so the error is catchable before it reaches SQL.
func (book *Book) BeforeSave(tx *gorm.DB) (err error) {
	if book.PublicationYear < 0 || book.PublicationYear > 2999 {
		return ErrYearOutOfRange
	}
	return
}

func (Book) TableName() string {
	return "books"
}
