package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"librarium/internal/dto"
	"librarium/internal/middleware"
	"librarium/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
	bookService service.BookService
	sessionTTL  time.Duration
}

func NewAuthHandler(authService service.AuthService, bookService service.BookService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		bookService: bookService,
		sessionTTL:  sessionTTL,
	}
}

// RegisterRoutes registers the account routes
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/register/", h.RegisterPage)
	router.POST("/register/", h.Register)
	router.GET("/login/", h.LoginPage)
	router.POST("/login/", h.Login)
	router.POST("/logout/", h.Logout)
	router.GET("/profile/", middleware.RequireAuthPage(), h.Profile)
}

// RegisterPage serves the registration form; authenticated visitors have no
// business here and go back to the index.
// GET /register/
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	if _, ok := currentUserID(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.JSON(http.StatusOK, gin.H{"fields": []string{"username", "email", "password1", "password2"}})
}

// LoginPage serves the login form, echoing the return path so the client can
// post it back.
// GET /login/?next=...
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if _, ok := currentUserID(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.JSON(http.StatusOK, gin.H{"fields": []string{"username", "password"}, "next": c.Query("next")})
}

// Register creates an account and logs the new user straight in.
// POST /register/
func (h *AuthHandler) Register(c *gin.Context) {
	if _, ok := currentUserID(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"errors": dto.FieldErrorsFromBinding(err)})
		return
	}

	if req.Password1 != req.Password2 {
		errs := dto.FieldErrors{}
		errs.Add("password2", "the two password fields didn't match")
		c.JSON(http.StatusOK, gin.H{"errors": errs})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password1)
	if err != nil {
		errs := dto.FieldErrors{}
		switch {
		case errors.Is(err, service.ErrNameInUse):
			errs.Add("username", "a user with that username already exists")
		case errors.Is(err, service.ErrEmailInUse):
			errs.Add("email", "a user with that email already exists")
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"errors": errs})
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	setSessionCookie(c, token, h.sessionTTL)
	c.Redirect(http.StatusFound, "/")
}

// Login authenticates and redirects to the requested page, or the index.
// POST /login/
func (h *AuthHandler) Login(c *gin.Context) {
	if _, ok := currentUserID(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"errors": dto.FieldErrorsFromBinding(err)})
		return
	}

	token, _, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// a failed login is a whole-form error, not a field error
			errs := dto.FieldErrors{}
			errs.AddNonField("please enter a correct username and password")
			c.JSON(http.StatusOK, gin.H{"errors": errs})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	setSessionCookie(c, token, h.sessionTTL)

	next := c.Query("next")
	if next == "" {
		next = req.Next
	}
	// only same-site relative paths are allowed as return targets
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = "/"
	}
	c.Redirect(http.StatusFound, next)
}

// Logout clears the session cookie.
// POST /logout/
func (h *AuthHandler) Logout(c *gin.Context) {
	clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}

// Profile lists the books added by the current user.
// GET /profile/?page=1
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, _ := currentUserID(c)
	page := pageQuery(c)

	books, err := h.bookService.ListByUser(c.Request.Context(), userID, page, dto.DefaultPageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, books)
}
