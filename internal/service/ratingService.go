package service

import (
	"context"
	"errors"

	"librarium/internal/cache"
	"librarium/internal/models"
	"librarium/internal/repository"

	"gorm.io/gorm"
)

type RatingService interface {
	RateBook(ctx context.Context, userID, bookID string, rate int) error
	AverageForBook(ctx context.Context, bookID string) (float64, int64, error)
	UserRating(ctx context.Context, userID, bookID string) (*int, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	bookRepo   repository.BookRepository
	ratings    *cache.RatingsCache
}

func NewRatingService(ratingRepo repository.RatingRepository, bookRepo repository.BookRepository, ratings *cache.RatingsCache) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		bookRepo:   bookRepo,
		ratings:    ratings,
	}
}

// RateBook records the user's rating for a book. Rating again replaces the
// previous value; there is never more than one row per (user, book).
func (s *ratingService) RateBook(ctx context.Context, userID, bookID string, rate int) error {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	rating := &models.BookRating{
		UserID: userID,
		BookID: bookID,
		Rate:   rate,
	}
	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		return err
	}

	s.ratings.InvalidateAverage(ctx, bookID)
	return nil
}

// AverageForBook returns the average rating and rating count for a book.
// A count of zero means the average is undefined.
func (s *ratingService) AverageForBook(ctx context.Context, bookID string) (float64, int64, error) {
	if avg, count, ok := s.ratings.GetAverage(ctx, bookID); ok {
		return avg, count, nil
	}

	count, err := s.ratingRepo.CountForBook(ctx, bookID)
	if err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, nil
	}

	avg, err := s.ratingRepo.AverageForBook(ctx, bookID)
	if err != nil {
		return 0, 0, err
	}

	s.ratings.SetAverage(ctx, bookID, avg, count)
	return avg, count, nil
}

// UserRating returns the requester's own rating for a book, nil when they
// have not rated it.
func (s *ratingService) UserRating(ctx context.Context, userID, bookID string) (*int, error) {
	rating, err := s.ratingRepo.GetByUserAndBook(ctx, userID, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating.Rate, nil
}
