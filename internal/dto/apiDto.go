package dto

import (
	"librarium/internal/models"
)

// BookAPIResponse is the thin projection served to external consumers on
// the read-only API.
type BookAPIResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Summary         string `json:"summary"`
	PublicationYear int    `json:"publication_year"`
	Poster          string `json:"poster"`
}

// FromModelToBookAPIResponse converts a Book model to BookAPIResponse DTO
func FromModelToBookAPIResponse(book *models.Book) *BookAPIResponse {
	return &BookAPIResponse{
		ID:              book.ID,
		Title:           book.Title,
		Author:          book.Author.Name,
		Summary:         book.Summary,
		PublicationYear: book.PublicationYear,
		Poster:          book.Poster,
	}
}

// PaginatedBookAPIResponse for returning paginated books on the read API
type PaginatedBookAPIResponse struct {
	Data       []BookAPIResponse `json:"data"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
}

// NewPaginatedBookAPIResponse creates a paginated API book response
func NewPaginatedBookAPIResponse(data []BookAPIResponse, total, page, pageSize int) *PaginatedBookAPIResponse {
	return &PaginatedBookAPIResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: pageCount(total, pageSize),
	}
}
