package service

import (
	"context"
	"errors"

	"librarium/internal/dto"
	"librarium/internal/models"
	"librarium/internal/repository"

	"gorm.io/gorm"
)

type BookService interface {
	Get(ctx context.Context, id string) (*dto.BookResponse, error)
	List(ctx context.Context, page, pageSize int) (*dto.PaginatedBookResponse, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int) (*dto.PaginatedBookResponse, error)
	Search(ctx context.Context, query string, page, pageSize int) (*dto.PaginatedBookResponse, error)
	RankedByRating(ctx context.Context, page, pageSize int) (*dto.PaginatedBookResponse, error)
	Create(ctx context.Context, userID string, form *dto.BookForm) (*dto.BookResponse, error)
	Update(ctx context.Context, bookID, userID string, form *dto.BookForm) (*dto.BookResponse, error)
	Delete(ctx context.Context, bookID, userID string) error

	// Read-only API projections
	APIList(ctx context.Context, page, pageSize int) (*dto.PaginatedBookAPIResponse, error)
	APIGet(ctx context.Context, id string) (*dto.BookAPIResponse, error)
}

type bookService struct {
	bookRepo          repository.BookRepository
	authorRepo        repository.AuthorRepository
	posterPlaceholder string
}

func NewBookService(bookRepo repository.BookRepository, authorRepo repository.AuthorRepository, posterPlaceholder string) BookService {
	return &bookService{
		bookRepo:          bookRepo,
		authorRepo:        authorRepo,
		posterPlaceholder: posterPlaceholder,
	}
}

func (s *bookService) Get(ctx context.Context, id string) (*dto.BookResponse, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return dto.FromModelToBookResponse(book), nil
}

func (s *bookService) List(ctx context.Context, page, pageSize int) (*dto.PaginatedBookResponse, error) {
	books, total, err := s.bookRepo.GetAll(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return dto.NewPaginatedBookResponse(toBookResponses(books), int(total), page, pageSize), nil
}

func (s *bookService) ListByUser(ctx context.Context, userID string, page, pageSize int) (*dto.PaginatedBookResponse, error) {
	books, total, err := s.bookRepo.GetByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return dto.NewPaginatedBookResponse(toBookResponses(books), int(total), page, pageSize), nil
}

func (s *bookService) Search(ctx context.Context, query string, page, pageSize int) (*dto.PaginatedBookResponse, error) {
	books, total, err := s.bookRepo.Search(ctx, query, page, pageSize)
	if err != nil {
		return nil, err
	}
	return dto.NewPaginatedBookResponse(toBookResponses(books), int(total), page, pageSize), nil
}

func (s *bookService) RankedByRating(ctx context.Context, page, pageSize int) (*dto.PaginatedBookResponse, error) {
	books, total, err := s.bookRepo.RankedByRating(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return dto.NewPaginatedBookResponse(toBookResponses(books), int(total), page, pageSize), nil
}

// Create adds a book on behalf of userID. The owner always comes from the
// session, never from the submission.
func (s *bookService) Create(ctx context.Context, userID string, form *dto.BookForm) (*dto.BookResponse, error) {
	if _, err := s.authorRepo.GetByID(ctx, form.Author); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}

	book := &models.Book{
		Title:           form.Title,
		AuthorID:        form.Author,
		Summary:         form.Summary,
		PublicationYear: *form.PublicationYear,
		Poster:          form.Poster,
		AddedByID:       &userID,
	}
	if book.Poster == "" {
		book.Poster = s.posterPlaceholder
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	// Reload with associations
	book, err := s.bookRepo.GetByID(ctx, book.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToBookResponse(book), nil
}

func (s *bookService) Update(ctx context.Context, bookID, userID string, form *dto.BookForm) (*dto.BookResponse, error) {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if book.AddedByID == nil || *book.AddedByID != userID {
		return nil, ErrForbidden
	}

	if _, err := s.authorRepo.GetByID(ctx, form.Author); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}

	book.Title = form.Title
	book.AuthorID = form.Author
	book.Summary = form.Summary
	book.PublicationYear = *form.PublicationYear
	if form.Poster != "" {
		book.Poster = form.Poster
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	book, err = s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToBookResponse(book), nil
}

func (s *bookService) Delete(ctx context.Context, bookID, userID string) error {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if book.AddedByID == nil || *book.AddedByID != userID {
		return ErrForbidden
	}

	return s.bookRepo.Delete(ctx, bookID)
}

func (s *bookService) APIList(ctx context.Context, page, pageSize int) (*dto.PaginatedBookAPIResponse, error) {
	books, total, err := s.bookRepo.GetAll(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.BookAPIResponse, 0, len(books))
	for i := range books {
		responses = append(responses, *dto.FromModelToBookAPIResponse(&books[i]))
	}
	return dto.NewPaginatedBookAPIResponse(responses, int(total), page, pageSize), nil
}

func (s *bookService) APIGet(ctx context.Context, id string) (*dto.BookAPIResponse, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return dto.FromModelToBookAPIResponse(book), nil
}

func toBookResponses(books []models.Book) []dto.BookResponse {
	responses := make([]dto.BookResponse, 0, len(books))
	for i := range books {
		responses = append(responses, *dto.FromModelToBookResponse(&books[i]))
	}
	return responses
}
