package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func respond(c *gin.Context, status int, data interface{}) {
	if message, ok := data.(string); ok {
		if status >= http.StatusBadRequest {
			c.JSON(status, gin.H{"error": message})
			return
		}
		c.JSON(status, gin.H{"message": message})
		return
	}
	c.JSON(status, data)
}

func JSON200(c *gin.Context, data interface{}) {
	respond(c, http.StatusOK, data)
}

func JSON201(c *gin.Context, data interface{}) {
	respond(c, http.StatusCreated, data)
}

func JSON400(c *gin.Context, data interface{}) {
	respond(c, http.StatusBadRequest, data)
}

func JSON404(c *gin.Context, data interface{}) {
	respond(c, http.StatusNotFound, data)
}

func JSON500(c *gin.Context, data interface{}) {
	respond(c, http.StatusInternalServerError, data)
}
