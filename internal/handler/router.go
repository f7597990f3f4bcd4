package handler

import (
	"net/http"
	"reflect"
	"strings"
	"sync"

	"librarium/internal/config"
	"librarium/internal/middleware"
	"librarium/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth    *AuthHandler
	Book    *BookHandler
	Author  *AuthorHandler
	Comment *CommentHandler
	API     *APIHandler
}

var tagNamesOnce sync.Once

// registerTagNames makes validation errors report json field names instead
// of Go struct field names, so form errors key on what the client sent.
func registerTagNames() {
	tagNamesOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				return name
			})
		}
	})
}

// NewRouter assembles the gin engine with the full middleware chain and all
// application routes.
func NewRouter(cfg *config.Config, db *gorm.DB, authService service.AuthService, h Handlers) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	registerTagNames()

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	r.Use(middleware.CurrentUser(authService))

	root := r.Group("/")
	h.Auth.RegisterRoutes(root)
	h.Book.RegisterRoutes(root)
	h.Author.RegisterRoutes(root)
	h.Comment.RegisterRoutes(root)

	api := r.Group("/api")
	h.API.RegisterRoutes(api)

	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
