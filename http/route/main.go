package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tdnghia/superhero-catalog/http/controller"
	middlewares "github.com/tdnghia/superhero-catalog/http/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.CORSMiddleware)
	r.Use(middles.RequestIDMiddleware)

	r.GET("/healthz", ctrl.Health)

	apiRoutes := r.Group("/api/v1")
	{
		apiRoutes.GET("/stats", ctrl.Stats)

		heroRoutes := apiRoutes.Group("/heroes")
		{
			heroRoutes.GET("", ctrl.ListSuperheroes)
			heroRoutes.POST("", ctrl.CreateSuperhero)
			heroRoutes.GET("/:id", ctrl.GetSuperhero)
			heroRoutes.PUT("/:id", ctrl.UpdateSuperhero)
			heroRoutes.DELETE("/:id", ctrl.DeleteSuperhero)

			// Image sub-resource (nested under hero)
			heroRoutes.GET("/:id/images", ctrl.ListSuperheroImages)
			heroRoutes.POST("/:id/images", ctrl.AddSuperheroImages)
			heroRoutes.DELETE("/:id/images/:index", ctrl.RemoveSuperheroImageByIndex)
			heroRoutes.DELETE("/:id/images", ctrl.ClearSuperheroImages)
		}
	}

	// Processed uploads, served with immutable cache headers.
	uploads := r.Group(ctrl.Config.EnvConfig.Upload.PublicPath, middles.StaticCacheMiddleware)
	uploads.Static("/", ctrl.Config.EnvConfig.Upload.Dir)

	// Server-rendered catalog pages.
	r.LoadHTMLGlob("web/templates/*.html")
	r.Static("/static", "web/static")
	r.GET("/", ctrl.HomePage)
	r.GET("/create", ctrl.CreatePage)
	r.GET("/superhero/:id", ctrl.DetailPage)
	r.GET("/edit/:id", ctrl.EditPage)

	return r
}
