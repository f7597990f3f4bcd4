package models

import "time"

// BookRating holds one row per (user, book) pair. The unique index backs the
// ON CONFLICT upsert in the rating repository.
type BookRating struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_book_ratings_user_book"`
	BookID    string    `json:"book_id" gorm:"type:uuid;not null;uniqueIndex:idx_book_ratings_user_book"`
	Rate      int       `json:"rate" gorm:"not null;check:rate >= 1 AND rate <= 5"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Book Book `json:"book,omitempty" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE;"`
}

func (BookRating) TableName() string {
	return "book_ratings"
}
