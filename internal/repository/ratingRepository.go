package repository

import (
	"context"

	"librarium/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository interface {
	Upsert(ctx context.Context, rating *models.BookRating) error
	GetByUserAndBook(ctx context.Context, userID, bookID string) (*models.BookRating, error)
	AverageForBook(ctx context.Context, bookID string) (float64, error)
	CountForBook(ctx context.Context, bookID string) (int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert writes the rating as a single INSERT ... ON CONFLICT DO UPDATE
// against the (user_id, book_id) unique index. Concurrent double-submission
// therefore cannot produce duplicate rows; the later write wins.
func (r *ratingRepository) Upsert(ctx context.Context, rating *models.BookRating) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate", "updated_at"}),
	}).Create(rating).Error
}

// GetByUserAndBook retrieves a user's rating for a specific book
func (r *ratingRepository) GetByUserAndBook(ctx context.Context, userID, bookID string) (*models.BookRating, error) {
	var rating models.BookRating
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// AverageForBook calculates the average rating for a book
func (r *ratingRepository) AverageForBook(ctx context.Context, bookID string) (float64, error) {
	var avg struct {
		Average float64
	}

	err := r.db.WithContext(ctx).Model(&models.BookRating{}).
		Select("COALESCE(AVG(rate), 0) as average").
		Where("book_id = ?", bookID).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}

	return avg.Average, nil
}

// CountForBook counts the total number of ratings for a book
func (r *ratingRepository) CountForBook(ctx context.Context, bookID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BookRating{}).
		Where("book_id = ?", bookID).
		Count(&count).Error
	return count, err
}
