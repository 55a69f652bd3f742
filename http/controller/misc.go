package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/tdnghia/superhero-catalog/utils"
)

// Health handles GET /healthz.
func (ctrl *Controller) Health(c *gin.Context) {
	utils.JSON200(c, gin.H{
		"message": "Superhero API is running!",
		"version": "1.0.0",
		"mode":    ctrl.Config.EnvConfig.Environment.Mode,
	})
}

// Stats handles GET /stats.
func (ctrl *Controller) Stats(c *gin.Context) {
	stats, err := ctrl.Superheroes.Stats(c.Request.Context())
	if err != nil {
		ctrl.respondServiceError(c, err, "fetch statistics")
		return
	}
	utils.JSON200(c, stats)
}
