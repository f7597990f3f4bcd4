package service

import (
	"context"
	"errors"

	"librarium/internal/dto"
	"librarium/internal/models"
	"librarium/internal/repository"

	"gorm.io/gorm"
)

type CommentService interface {
	Create(ctx context.Context, userID, bookID, content string) (*dto.CommentResponse, error)
	Delete(ctx context.Context, commentID, bookID, userID string) error
	ListForBook(ctx context.Context, bookID string, page, pageSize int) (*dto.PaginatedCommentResponse, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	bookRepo    repository.BookRepository
}

func NewCommentService(commentRepo repository.CommentRepository, bookRepo repository.BookRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		bookRepo:    bookRepo,
	}
}

// Create attaches a new comment to a book for the given user.
func (s *commentService) Create(ctx context.Context, userID, bookID, content string) (*dto.CommentResponse, error) {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := &models.BookComment{
		UserID:  userID,
		BookID:  bookID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Reload with user data
	comment, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

// Delete removes a comment. Only the comment's own user may delete it; any
// other authenticated requester gets ErrForbidden.
func (s *commentService) Delete(ctx context.Context, commentID, bookID, userID string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if comment.BookID != bookID {
		return ErrNotFound
	}
	if comment.UserID != userID {
		return ErrForbidden
	}

	return s.commentRepo.Delete(ctx, commentID)
}

func (s *commentService) ListForBook(ctx context.Context, bookID string, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	comments, total, err := s.commentRepo.GetByBook(ctx, bookID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.FromModelToCommentResponse(&comments[i]))
	}
	return dto.NewPaginatedCommentResponse(responses, int(total), page, pageSize), nil
}
