package handler

import (
	"errors"
	"net/http"

	"librarium/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// APIHandler serves the read-only JSON projection of the catalog for
// external consumers. No write operations are exposed here.
type APIHandler struct {
	bookService service.BookService
}

func NewAPIHandler(bookService service.BookService) *APIHandler {
	return &APIHandler{bookService: bookService}
}

// RegisterRoutes registers the read-only API routes
func (h *APIHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/books", h.List)
	router.GET("/books/:id", h.Detail)
}

// List returns a page of books. Clients may override page_size up to the cap.
// GET /api/books?page=1&page_size=6
func (h *APIHandler) List(c *gin.Context) {
	page := pageQuery(c)
	pageSize := apiPageSize(c)

	books, err := h.bookService.APIList(c.Request.Context(), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load books"})
		return
	}
	c.JSON(http.StatusOK, books)
}

// Detail returns a single book.
// GET /api/books/:id
func (h *APIHandler) Detail(c *gin.Context) {
	bookID := c.Param("id")
	if _, err := uuid.Parse(bookID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}

	book, err := h.bookService.APIGet(c.Request.Context(), bookID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load book"})
		return
	}
	c.JSON(http.StatusOK, book)
}
