package dto

import (
	"librarium/internal/models"
)

// BookForm is the create/update submission. The publication year is bound
// without a range check on purpose: the storage layer owns that bound and
// its violation comes back as a non-field error.
type BookForm struct {
	Title           string `json:"title" binding:"required,max=200"`
	Author          string `json:"author" binding:"required,uuid"`
	Summary         string `json:"summary" binding:"required,max=1000"`
	PublicationYear *int   `json:"publication_year" binding:"required"`
	Poster          string `json:"poster"`
}

type AuthorBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookResponse struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Author          AuthorBrief `json:"author"`
	Summary         string      `json:"summary"`
	PublicationYear int         `json:"publication_year"`
	Poster          string      `json:"poster"`
	AddedBy         string      `json:"added_by,omitempty"`
}

// FromModelToBookResponse converts a Book model to BookResponse DTO
func FromModelToBookResponse(book *models.Book) *BookResponse {
	resp := &BookResponse{
		ID:    book.ID,
		Title: book.Title,
		Author: AuthorBrief{
			ID:   book.Author.ID,
			Name: book.Author.Name,
		},
		Summary:         book.Summary,
		PublicationYear: book.PublicationYear,
		Poster:          book.Poster,
	}
	if book.AddedBy != nil {
		resp.AddedBy = book.AddedBy.Username
	}
	return resp
}

// BookDetailResponse is the book page payload: the book, its rating
// aggregate, one page of comments and, after an invalid POST, the error
// sets of the two embedded forms.
type BookDetailResponse struct {
	Book          BookResponse              `json:"book"`
	AverageRating *float64                  `json:"average_rating,omitempty"`
	RatingCount   int64                     `json:"rating_count"`
	Comments      *PaginatedCommentResponse `json:"comments"`
	UserRating    *int                      `json:"user_rating,omitempty"`
	CommentErrors FieldErrors               `json:"comment_errors,omitempty"`
	RatingErrors  FieldErrors               `json:"rating_errors,omitempty"`
}

// PaginatedBookResponse for returning paginated books
type PaginatedBookResponse struct {
	Data       []BookResponse `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}

// NewPaginatedBookResponse creates a paginated book response
func NewPaginatedBookResponse(data []BookResponse, total, page, pageSize int) *PaginatedBookResponse {
	return &PaginatedBookResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: pageCount(total, pageSize),
	}
}
