package middlewares

import (
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

var cachedImageExts = map[string]bool{
	".webp": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// StaticCacheMiddleware sets long-lived cache headers on served image files.
// Upload filenames embed a timestamp, so a path never changes content.
func StaticCacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ext := strings.ToLower(filepath.Ext(c.Request.URL.Path))
		if cachedImageExts[ext] {
			c.Header("Cache-Control", "public, max-age=31536000, immutable")
		}
		c.Next()
	}
}
