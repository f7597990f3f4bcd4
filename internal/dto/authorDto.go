package dto

import (
	"time"

	"librarium/internal/models"
)

type AuthorForm struct {
	Name        string `json:"name" binding:"required,max=200"`
	DateOfBirth string `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	Bio         string `json:"bio" binding:"required,max=1000"`
	Photo       string `json:"photo"`
}

type AuthorResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Bio         string    `json:"bio"`
	Photo       string    `json:"photo"`
}

// FromModelToAuthorResponse converts an Author model to AuthorResponse DTO
func FromModelToAuthorResponse(author *models.Author) *AuthorResponse {
	return &AuthorResponse{
		ID:          author.ID,
		Name:        author.Name,
		DateOfBirth: author.DateOfBirth,
		Bio:         author.Bio,
		Photo:       author.Photo,
	}
}

// AuthorDetailResponse carries the author and one page of their books.
type AuthorDetailResponse struct {
	Author AuthorResponse         `json:"author"`
	Books  *PaginatedBookResponse `json:"books"`
}

// PaginatedAuthorResponse for returning paginated authors
type PaginatedAuthorResponse struct {
	Data       []AuthorResponse `json:"data"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}

// NewPaginatedAuthorResponse creates a paginated author response
func NewPaginatedAuthorResponse(data []AuthorResponse, total, page, pageSize int) *PaginatedAuthorResponse {
	return &PaginatedAuthorResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: pageCount(total, pageSize),
	}
}
