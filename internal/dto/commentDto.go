package dto

import (
	"time"

	"librarium/internal/models"
)

// CommentForm for posting a comment on a book's detail page
type CommentForm struct {
	Content string `json:"content" binding:"required,max=1000"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// FromModelToCommentResponse converts a BookComment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.BookComment) *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID,
		Username:  comment.User.Username,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}

// PaginatedCommentResponse for returning paginated comments
type PaginatedCommentResponse struct {
	Data       []CommentResponse `json:"data"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
}

// NewPaginatedCommentResponse creates a paginated comment response
func NewPaginatedCommentResponse(data []CommentResponse, total, page, pageSize int) *PaginatedCommentResponse {
	return &PaginatedCommentResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: pageCount(total, pageSize),
	}
}
