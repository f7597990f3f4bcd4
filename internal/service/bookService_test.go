package service

import (
	"context"
	"testing"

	"librarium/internal/dto"
	"librarium/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- MOCK REPOSITORIES ---

type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Update(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Book, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Book), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookRepository) GetByUser(ctx context.Context, userID string, page, pageSize int) ([]models.Book, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Book), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookRepository) GetByAuthor(ctx context.Context, authorID string, page, pageSize int) ([]models.Book, int64, error) {
	args := m.Called(ctx, authorID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Book), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookRepository) Search(ctx context.Context, query string, page, pageSize int) ([]models.Book, int64, error) {
	args := m.Called(ctx, query, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Book), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookRepository) RankedByRating(ctx context.Context, page, pageSize int) ([]models.Book, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Book), args.Get(1).(int64), args.Error(2)
}

type MockAuthorRepository struct {
	mock.Mock
}

func (m *MockAuthorRepository) Create(ctx context.Context, author *models.Author) error {
	args := m.Called(ctx, author)
	return args.Error(0)
}

func (m *MockAuthorRepository) GetByID(ctx context.Context, id string) (*models.Author, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Author), args.Error(1)
}

func (m *MockAuthorRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Author, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Author), args.Get(1).(int64), args.Error(2)
}

// --- FIXTURES ---

const (
	bookID   = "11111111-1111-1111-1111-111111111111"
	authorID = "22222222-2222-2222-2222-222222222222"
	ownerID  = "33333333-3333-3333-3333-333333333333"
	otherID  = "44444444-4444-4444-4444-444444444444"
)

func bookForm() *dto.BookForm {
	year := 1954
	return &dto.BookForm{
		Title:           "The Fellowship of the Ring",
		Author:          authorID,
		Summary:         "The first part of the trilogy.",
		PublicationYear: &year,
	}
}

func storedBook() *models.Book {
	owner := ownerID
	return &models.Book{
		ID:              bookID,
		Title:           "The Fellowship of the Ring",
		AuthorID:        authorID,
		Summary:         "The first part of the trilogy.",
		PublicationYear: 1954,
		Poster:          "posters/fellowship.jpg",
		AddedByID:       &owner,
		Author:          models.Author{ID: authorID, Name: "J. R. R. Tolkien"},
		AddedBy:         &models.User{ID: ownerID, Username: "reader"},
	}
}

// --- TESTS ---

func TestBookService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("SetsOwnerFromSession", func(t *testing.T) {
		bookRepo := new(MockBookRepository)
		authorRepo := new(MockAuthorRepository)
		svc := NewBookService(bookRepo, authorRepo, "posters/no-poster.jpg")

		authorRepo.On("GetByID", mock.Anything, authorID).
			Return(&models.Author{ID: authorID, Name: "J. R. R. Tolkien"}, nil).Once()
		bookRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Book")).
			Run(func(args mock.Arguments) {
				book := args.Get(1).(*models.Book)
				require.NotNil(t, book.AddedByID)
				assert.Equal(t, ownerID, *book.AddedByID)
				// empty poster falls back to the placeholder
				assert.Equal(t, "posters/no-poster.jpg", book.Poster)
				book.ID = bookID
			}).
			Return(nil).Once()
		bookRepo.On("GetByID", mock.Anything, bookID).Return(storedBook(), nil).Once()

		resp, err := svc.Create(ctx, ownerID, bookForm())
		require.NoError(t, err)
		assert.Equal(t, bookID, resp.ID)
		assert.Equal(t, "J. R. R. Tolkien", resp.Author.Name)
		bookRepo.AssertExpectations(t)
		authorRepo.AssertExpectations(t)
	})

	t.Run("UnknownAuthor", func(t *testing.T) {
		bookRepo := new(MockBookRepository)
		authorRepo := new(MockAuthorRepository)
		svc := NewBookService(bookRepo, authorRepo, "posters/no-poster.jpg")

		authorRepo.On("GetByID", mock.Anything, authorID).Return(nil, gorm.ErrRecordNotFound).Once()

		_, err := svc.Create(ctx, ownerID, bookForm())
		assert.ErrorIs(t, err, ErrAuthorNotFound)
		bookRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("YearRejectedByStorage", func(t *testing.T) {
		bookRepo := new(MockBookRepository)
		authorRepo := new(MockAuthorRepository)
		svc := NewBookService(bookRepo, authorRepo, "posters/no-poster.jpg")

		authorRepo.On("GetByID", mock.Anything, authorID).
			Return(&models.Author{ID: authorID}, nil).Once()
		bookRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Book")).
			Return(models.ErrYearOutOfRange).Once()

		form := bookForm()
		year := 3000
		form.PublicationYear = &year

		_, err := svc.Create(ctx, ownerID, form)
		assert.ErrorIs(t, err, models.ErrYearOutOfRange)
	})
}

func TestBookService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("NotOwner", func(t *testing.T) {
		bookRepo := new(MockBookRepository)
		authorRepo := new(MockAuthorRepository)
		svc := NewBookService(bookRepo, authorRepo, "posters/no-poster.jpg")

		bookRepo.On("GetByID", mock.Anything, bookID).Return(storedBook(), nil).Once()

		_, err := svc.Update(ctx, bookID, otherID, bookForm())
		assert.ErrorIs(t, err, ErrForbidden)
		bookRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("NoOwnerRecorded", func(t *testing.T) {
		bookRepo := new(MockBookRepository)
		authorRepo := new(MockAuthorRepository)
		svc := NewBookService(bookRepo, authorRepo, "posters/no-poster.jpg")

		orphan := storedBook()
		orphan.AddedByID = nil
		bookRepo.On("GetByID", mock.Anything, bookID).Return(orphan, nil).Once()

		_, err := svc.Update(ctx, bookID, ownerID, bookForm())
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("NotFound", func(t *testing.T) {
		bookRepo := new(MockBookRepository)
		authorRepo := new(MockAuthorRepository)
		svc := NewBookService(bookRepo, authorRepo, "posters/no-poster.jpg")

		bookRepo.On("GetByID", mock.Anything, bookID).Return(nil, gorm.ErrRecordNotFound).Once()

		_, err := svc.Update(ctx, bookID, ownerID, bookForm())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("OwnerSucceeds", func(t *testing.T) {
		bookRepo := new(MockBookRepository)
		authorRepo := new(MockAuthorRepository)
		svc := NewBookService(bookRepo, authorRepo, "posters/no-poster.jpg")

		bookRepo.On("GetByID", mock.Anything, bookID).Return(storedBook(), nil).Twice()
		authorRepo.On("GetByID", mock.Anything, authorID).
			Return(&models.Author{ID: authorID}, nil).Once()
		bookRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.Book")).Return(nil).Once()

		form := bookForm()
		form.Title = "The Two Towers"

		resp, err := svc.Update(ctx, bookID, ownerID, form)
		require.NoError(t, err)
		assert.Equal(t, bookID, resp.ID)
		bookRepo.AssertExpectations(t)
	})
}

func TestBookService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("OwnerSucceeds", func(t *testing.T) {
		bookRepo := new(MockBookRepository)
		svc := NewBookService(bookRepo, new(MockAuthorRepository), "posters/no-poster.jpg")

		bookRepo.On("GetByID", mock.Anything, bookID).Return(storedBook(), nil).Once()
		bookRepo.On("Delete", mock.Anything, bookID).Return(nil).Once()

		err := svc.Delete(ctx, bookID, ownerID)
		assert.NoError(t, err)
		bookRepo.AssertExpectations(t)
	})

	t.Run("NotOwner", func(t *testing.T) {
		bookRepo := new(MockBookRepository)
		svc := NewBookService(bookRepo, new(MockAuthorRepository), "posters/no-poster.jpg")

		bookRepo.On("GetByID", mock.Anything, bookID).Return(storedBook(), nil).Once()

		err := svc.Delete(ctx, bookID, otherID)
		assert.ErrorIs(t, err, ErrForbidden)
		bookRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		bookRepo := new(MockBookRepository)
		svc := NewBookService(bookRepo, new(MockAuthorRepository), "posters/no-poster.jpg")

		bookRepo.On("GetByID", mock.Anything, bookID).Return(nil, gorm.ErrRecordNotFound).Once()

		err := svc.Delete(ctx, bookID, ownerID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestBookService_Search(t *testing.T) {
	ctx := context.Background()

	bookRepo := new(MockBookRepository)
	svc := NewBookService(bookRepo, new(MockAuthorRepository), "posters/no-poster.jpg")

	bookRepo.On("Search", mock.Anything, "", 1, 6).Return([]models.Book{}, int64(0), nil).Once()

	resp, err := svc.Search(ctx, "", 1, 6)
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
	assert.Equal(t, 0, resp.Total)
	assert.Equal(t, 0, resp.TotalPages)
}
