package repository

import (
	"context"
	"fmt"

	"librarium/internal/models"

	"gorm.io/gorm"
)

type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Book, error)
	GetAll(ctx context.Context, page, pageSize int) ([]models.Book, int64, error)
	GetByUser(ctx context.Context, userID string, page, pageSize int) ([]models.Book, int64, error)
	GetByAuthor(ctx context.Context, authorID string, page, pageSize int) ([]models.Book, int64, error)
	Search(ctx context.Context, query string, page, pageSize int) ([]models.Book, int64, error)
	RankedByRating(ctx context.Context, page, pageSize int) ([]models.Book, int64, error)
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

func (r *bookRepository) Update(ctx context.Context, book *models.Book) error {
	if err := r.db.WithContext(ctx).Save(book).Error; err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Book{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

func (r *bookRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	var book models.Book
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("AddedBy").
		First(&book, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAll returns books in the catalog's default order: title, then author name.
func (r *bookRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Book, int64, error) {
	var list []models.Book
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Joins("Author").
		Order("books.title, \"Author\".name").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *bookRepository) GetByUser(ctx context.Context, userID string, page, pageSize int) ([]models.Book, int64, error) {
	var list []models.Book
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Book{}).
		Where("added_by_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Joins("Author").
		Where("added_by_id = ?", userID).
		Order("books.title, \"Author\".name").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *bookRepository) GetByAuthor(ctx context.Context, authorID string, page, pageSize int) ([]models.Book, int64, error) {
	var list []models.Book
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Book{}).
		Where("author_id = ?", authorID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("title").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// Search performs a case-insensitive substring match on book title or author
// name. An empty query returns an empty result set, not the whole catalog.
func (r *bookRepository) Search(ctx context.Context, query string, page, pageSize int) ([]models.Book, int64, error) {
	var list []models.Book
	var total int64

	if query == "" {
		return list, 0, nil
	}

	pattern := "%" + query + "%"
	base := r.db.WithContext(ctx).Model(&models.Book{}).
		Joins("JOIN authors ON authors.id = books.author_id").
		Where("books.title ILIKE ? OR authors.name ILIKE ?", pattern, pattern)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Joins("JOIN authors ON authors.id = books.author_id").
		Where("books.title ILIKE ? OR authors.name ILIKE ?", pattern, pattern).
		Preload("Author").
		Order("books.title, authors.name").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("search books by title/author: %w", err)
	}

	return list, total, nil
}

// RankedByRating returns books ordered by their average rating, best first.
// Books without any rating are excluded, so the average is always defined.
func (r *bookRepository) RankedByRating(ctx context.Context, page, pageSize int) ([]models.Book, int64, error) {
	var list []models.Book
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.BookRating{}).
		Distinct("book_id").
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Joins("JOIN book_ratings ON book_ratings.book_id = books.id").
		Group("books.id").
		Order("AVG(book_ratings.rate) DESC, books.title").
		Preload("Author").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("rank books by rating: %w", err)
	}

	return list, total, nil
}
