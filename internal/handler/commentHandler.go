package handler

import (
	"errors"
	"net/http"

	"librarium/internal/middleware"
	"librarium/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterRoutes registers the comment deletion route under the book tree
func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/books/:id/comment/:comment_id/delete", middleware.RequireAuthAction(), h.Delete)
	router.GET("/books/:id/comment/:comment_id/delete", h.DeleteNotAllowed)
}

// Delete removes a comment; only the comment's own user may do so.
// POST /books/:id/comment/:comment_id/delete
func (h *CommentHandler) Delete(c *gin.Context) {
	bookID := c.Param("id")
	commentID := c.Param("comment_id")
	if _, err := uuid.Parse(bookID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}
	if _, err := uuid.Parse(commentID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}
	userID, _ := currentUserID(c)

	if err := h.commentService.Delete(c.Request.Context(), commentID, bookID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "you may only delete your own comments"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete comment"})
		}
		return
	}

	c.Redirect(http.StatusFound, "/books/"+bookID+"/")
}

// DeleteNotAllowed rejects GET on the comment delete endpoint.
// GET /books/:id/comment/:comment_id/delete
func (h *CommentHandler) DeleteNotAllowed(c *gin.Context) {
	c.Header("Allow", http.MethodPost)
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
}
