package service

import (
	"context"
	"errors"
	"time"

	"librarium/internal/dto"
	"librarium/internal/models"
	"librarium/internal/repository"

	"gorm.io/gorm"
)

type AuthorService interface {
	List(ctx context.Context, page, pageSize int) (*dto.PaginatedAuthorResponse, error)
	Get(ctx context.Context, id string, booksPage, pageSize int) (*dto.AuthorDetailResponse, error)
	Create(ctx context.Context, form *dto.AuthorForm) (*dto.AuthorResponse, error)
}

type authorService struct {
	authorRepo       repository.AuthorRepository
	bookRepo         repository.BookRepository
	photoPlaceholder string
}

func NewAuthorService(authorRepo repository.AuthorRepository, bookRepo repository.BookRepository, photoPlaceholder string) AuthorService {
	return &authorService{
		authorRepo:       authorRepo,
		bookRepo:         bookRepo,
		photoPlaceholder: photoPlaceholder,
	}
}

func (s *authorService) List(ctx context.Context, page, pageSize int) (*dto.PaginatedAuthorResponse, error) {
	authors, total, err := s.authorRepo.GetAll(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AuthorResponse, 0, len(authors))
	for i := range authors {
		responses = append(responses, *dto.FromModelToAuthorResponse(&authors[i]))
	}
	return dto.NewPaginatedAuthorResponse(responses, int(total), page, pageSize), nil
}

// Get returns the author together with one page of their books.
func (s *authorService) Get(ctx context.Context, id string, booksPage, pageSize int) (*dto.AuthorDetailResponse, error) {
	author, err := s.authorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	books, total, err := s.bookRepo.GetByAuthor(ctx, id, booksPage, pageSize)
	if err != nil {
		return nil, err
	}

	return &dto.AuthorDetailResponse{
		Author: *dto.FromModelToAuthorResponse(author),
		Books:  dto.NewPaginatedBookResponse(toBookResponses(books), int(total), booksPage, pageSize),
	}, nil
}

func (s *authorService) Create(ctx context.Context, form *dto.AuthorForm) (*dto.AuthorResponse, error) {
	dob, err := time.Parse("2006-01-02", form.DateOfBirth)
	if err != nil {
		// the binding tag already enforces the format; this is a backstop
		return nil, err
	}

	author := &models.Author{
		Name:        form.Name,
		DateOfBirth: dob,
		Bio:         form.Bio,
		Photo:       form.Photo,
	}
	if author.Photo == "" {
		author.Photo = s.photoPlaceholder
	}

	if err := s.authorRepo.Create(ctx, author); err != nil {
		return nil, err
	}
	return dto.FromModelToAuthorResponse(author), nil
}
