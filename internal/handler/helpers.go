package handler

import (
	"strconv"
	"time"

	"librarium/internal/dto"
	"librarium/internal/middleware"

	"github.com/gin-gonic/gin"
)

// pageQuery parses the page number from the query string, defaulting to 1.
func pageQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// apiPageSize parses the page_size override on the read API, defaulting to
// the standard page size and capping the override.
func apiPageSize(c *gin.Context) int {
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(dto.DefaultPageSize)))
	if err != nil || pageSize < 1 {
		return dto.DefaultPageSize
	}
	if pageSize > dto.APIMaxPageSize {
		return dto.APIMaxPageSize
	}
	return pageSize
}

// currentUserID returns the authenticated user id set by the session middleware.
func currentUserID(c *gin.Context) (string, bool) {
	userID, ok := c.Get("userID")
	if !ok {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok
}

func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetCookie(middleware.SessionCookieName, token, int(ttl.Seconds()), "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
}
