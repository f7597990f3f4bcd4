package repository

import (
	"context"

	"librarium/internal/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.BookComment) error
	Delete(ctx context.Context, commentID string) error
	GetByID(ctx context.Context, commentID string) (*models.BookComment, error)
	GetByBook(ctx context.Context, bookID string, page, pageSize int) ([]models.BookComment, int64, error)
	CountByBook(ctx context.Context, bookID string) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.BookComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, commentID string) error {
	result := r.db.WithContext(ctx).Delete(&models.BookComment{}, "id = ?", commentID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, commentID string) (*models.BookComment, error) {
	var comment models.BookComment
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&comment, "id = ?", commentID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByBook retrieves a book's comments newest-first with pagination
func (r *commentRepository) GetByBook(ctx context.Context, bookID string, page, pageSize int) ([]models.BookComment, int64, error) {
	var comments []models.BookComment
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.BookComment{}).
		Where("book_id = ?", bookID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Preload("User").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

func (r *commentRepository) CountByBook(ctx context.Context, bookID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BookComment{}).
		Where("book_id = ?", bookID).
		Count(&count).Error
	return count, err
}
