package handler

import (
	"errors"
	"net/http"

	"librarium/internal/dto"
	"librarium/internal/middleware"
	"librarium/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthorHandler struct {
	authorService service.AuthorService
}

func NewAuthorHandler(authorService service.AuthorService) *AuthorHandler {
	return &AuthorHandler{authorService: authorService}
}

// RegisterRoutes registers author-related routes
func (h *AuthorHandler) RegisterRoutes(router *gin.RouterGroup) {
	authors := router.Group("/authors")
	{
		authors.GET("/", h.List)
		authors.POST("/create/", middleware.RequireAuthAction(), h.Create)
		authors.GET("/:id/", h.Detail)
	}
}

// List shows all authors ordered by name.
// GET /authors/?page=1
func (h *AuthorHandler) List(c *gin.Context) {
	page := pageQuery(c)

	authors, err := h.authorService.List(c.Request.Context(), page, dto.DefaultPageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load authors"})
		return
	}
	c.JSON(http.StatusOK, authors)
}

// Detail shows an author and one page of their books.
// GET /authors/:id/?page=1
func (h *AuthorHandler) Detail(c *gin.Context) {
	authorID := c.Param("id")
	if _, err := uuid.Parse(authorID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "author not found"})
		return
	}

	author, err := h.authorService.Get(c.Request.Context(), authorID, pageQuery(c), dto.DefaultPageSize)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "author not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load author"})
		return
	}
	c.JSON(http.StatusOK, author)
}

// Create adds an author.
// POST /authors/create/
func (h *AuthorHandler) Create(c *gin.Context) {
	var form dto.AuthorForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusOK, gin.H{"errors": dto.FieldErrorsFromBinding(err)})
		return
	}

	author, err := h.authorService.Create(c.Request.Context(), &form)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create author"})
		return
	}

	c.Redirect(http.StatusFound, "/authors/"+author.ID+"/")
}
