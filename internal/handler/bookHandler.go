package handler

import (
	"errors"
	"net/http"

	"librarium/internal/dto"
	"librarium/internal/middleware"
	"librarium/internal/models"
	"librarium/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

type BookHandler struct {
	bookService    service.BookService
	commentService service.CommentService
	ratingService  service.RatingService
}

func NewBookHandler(bookService service.BookService, commentService service.CommentService, ratingService service.RatingService) *BookHandler {
	return &BookHandler{
		bookService:    bookService,
		commentService: commentService,
		ratingService:  ratingService,
	}
}

// RegisterRoutes registers the index, search and book routes
func (h *BookHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/", h.Index)
	router.GET("/search", h.Search)

	books := router.Group("/books")
	{
		books.GET("/", h.List)
		books.POST("/create/", middleware.RequireAuthAction(), h.Create)
		books.GET("/:id/", h.Detail)
		books.POST("/:id/", middleware.RequireAuthAction(), h.DetailPost)
		books.POST("/:id/update", middleware.RequireAuthAction(), h.Update)
		books.POST("/:id/delete", middleware.RequireAuthAction(), h.Delete)
		books.GET("/:id/delete", h.DeleteNotAllowed)
	}
}

// Index shows the catalog ranked by average rating; books nobody has rated
// yet are left out because their average is undefined.
// GET /?page=1
func (h *BookHandler) Index(c *gin.Context) {
	page := pageQuery(c)

	books, err := h.bookService.RankedByRating(c.Request.Context(), page, dto.DefaultPageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load index"})
		return
	}
	c.JSON(http.StatusOK, books)
}

// Search matches books whose title or author name contains the query.
// GET /search?q=...&page=1
func (h *BookHandler) Search(c *gin.Context) {
	page := pageQuery(c)
	query := c.Query("q")

	books, err := h.bookService.Search(c.Request.Context(), query, page, dto.DefaultPageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, books)
}

// List shows all books in default catalog order.
// GET /books/?page=1
func (h *BookHandler) List(c *gin.Context) {
	page := pageQuery(c)

	books, err := h.bookService.List(c.Request.Context(), page, dto.DefaultPageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load books"})
		return
	}
	c.JSON(http.StatusOK, books)
}

// Detail shows a book with its rating aggregate and one page of comments.
// GET /books/:id/?page=1
func (h *BookHandler) Detail(c *gin.Context) {
	bookID := c.Param("id")
	if _, err := uuid.Parse(bookID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}

	h.renderDetail(c, bookID, nil, nil)
}

// DetailPost accepts the two submissions embedded in the detail page: a
// comment or a rating, tried in that order. Whichever binds cleanly wins;
// if neither does, the page is re-rendered with both error sets.
// POST /books/:id/
func (h *BookHandler) DetailPost(c *gin.Context) {
	bookID := c.Param("id")
	if _, err := uuid.Parse(bookID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}
	userID, _ := currentUserID(c)

	var commentForm dto.CommentForm
	commentErr := c.ShouldBindBodyWith(&commentForm, binding.JSON)
	if commentErr == nil {
		if _, err := h.commentService.Create(c.Request.Context(), userID, bookID, commentForm.Content); err != nil {
			h.detailWriteError(c, err)
			return
		}
		h.renderDetail(c, bookID, nil, nil)
		return
	}

	var ratingForm dto.RatingForm
	ratingErr := c.ShouldBindBodyWith(&ratingForm, binding.JSON)
	if ratingErr == nil {
		if err := h.ratingService.RateBook(c.Request.Context(), userID, bookID, *ratingForm.Rate); err != nil {
			h.detailWriteError(c, err)
			return
		}
		h.renderDetail(c, bookID, nil, nil)
		return
	}

	h.renderDetail(c, bookID, dto.FieldErrorsFromBinding(commentErr), dto.FieldErrorsFromBinding(ratingErr))
}

func (h *BookHandler) detailWriteError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save submission"})
}

func (h *BookHandler) renderDetail(c *gin.Context, bookID string, commentErrs, ratingErrs dto.FieldErrors) {
	ctx := c.Request.Context()

	book, err := h.bookService.Get(ctx, bookID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load book"})
		return
	}

	avg, count, err := h.ratingService.AverageForBook(ctx, bookID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load book"})
		return
	}

	comments, err := h.commentService.ListForBook(ctx, bookID, pageQuery(c), dto.DefaultPageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load book"})
		return
	}

	resp := dto.BookDetailResponse{
		Book:          *book,
		RatingCount:   count,
		Comments:      comments,
		CommentErrors: commentErrs,
		RatingErrors:  ratingErrs,
	}
	if count > 0 {
		resp.AverageRating = &avg
	}

	if userID, ok := currentUserID(c); ok {
		if rate, err := h.ratingService.UserRating(ctx, userID, bookID); err == nil {
			resp.UserRating = rate
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Create adds a book owned by the requester.
// POST /books/create/
func (h *BookHandler) Create(c *gin.Context) {
	userID, _ := currentUserID(c)

	var form dto.BookForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusOK, gin.H{"errors": dto.FieldErrorsFromBinding(err)})
		return
	}

	book, err := h.bookService.Create(c.Request.Context(), userID, &form)
	if err != nil {
		if errs, handled := bookSaveErrors(err); handled {
			c.JSON(http.StatusOK, gin.H{"errors": errs})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create book"})
		return
	}

	c.Redirect(http.StatusFound, "/books/"+book.ID+"/")
}

// Update edits a book; only its owner may do so.
// POST /books/:id/update
func (h *BookHandler) Update(c *gin.Context) {
	bookID := c.Param("id")
	if _, err := uuid.Parse(bookID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}
	userID, _ := currentUserID(c)

	var form dto.BookForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusOK, gin.H{"errors": dto.FieldErrorsFromBinding(err)})
		return
	}

	book, err := h.bookService.Update(c.Request.Context(), bookID, userID, &form)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "you may only edit books you added"})
		default:
			if errs, handled := bookSaveErrors(err); handled {
				c.JSON(http.StatusOK, gin.H{"errors": errs})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update book"})
		}
		return
	}

	c.Redirect(http.StatusFound, "/books/"+book.ID+"/")
}

// Delete removes a book; only its owner may do so, and only via POST.
// POST /books/:id/delete
func (h *BookHandler) Delete(c *gin.Context) {
	bookID := c.Param("id")
	if _, err := uuid.Parse(bookID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}
	userID, _ := currentUserID(c)

	if err := h.bookService.Delete(c.Request.Context(), bookID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "you may only delete books you added"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete book"})
		}
		return
	}

	c.Redirect(http.StatusFound, "/profile/")
}

// DeleteNotAllowed rejects GET on the delete endpoint.
// GET /books/:id/delete
func (h *BookHandler) DeleteNotAllowed(c *gin.Context) {
	c.Header("Allow", http.MethodPost)
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
}

// bookSaveErrors maps save-path failures onto form errors. An unknown author
// is a field error; a year outside the storage bound is a non-field error
// because only the storage layer checks it.
func bookSaveErrors(err error) (dto.FieldErrors, bool) {
	errs := dto.FieldErrors{}
	switch {
	case errors.Is(err, service.ErrAuthorNotFound):
		errs.Add("author", "select a valid author")
		return errs, true
	case errors.Is(err, models.ErrYearOutOfRange):
		errs.AddNonField(models.ErrYearOutOfRange.Error())
		return errs, true
	}
	return nil, false
}
