package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/tdnghia/superhero-catalog/http/controller"
)

type Middlewares struct {
	CORSMiddleware        gin.HandlerFunc
	RequestIDMiddleware   gin.HandlerFunc
	StaticCacheMiddleware gin.HandlerFunc
}

func NewMiddlewares(ctrl *controller.Controller) (*Middlewares, error) {
	return &Middlewares{
		CORSMiddleware:        CORSMiddleware(ctrl.Config.EnvConfig),
		RequestIDMiddleware:   RequestIDMiddleware(),
		StaticCacheMiddleware: StaticCacheMiddleware(),
	}, nil
}
