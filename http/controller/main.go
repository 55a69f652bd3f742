package controller

import (
	"github.com/tdnghia/superhero-catalog/config"
	"github.com/tdnghia/superhero-catalog/infra"
	"github.com/tdnghia/superhero-catalog/repository"
	"github.com/tdnghia/superhero-catalog/service"
)

type Controller struct {
	Config      *config.Config
	Infra       *infra.Infra
	Repository  *repository.Repository
	Superheroes *service.SuperheroService
}

func NewController(config *config.Config, infra *infra.Infra, repo *repository.Repository) *Controller {
	if repo == nil {
		panic("Failed to initialize Repository")
	}
	return &Controller{
		Config:     config,
		Infra:      infra,
		Repository: repo,
		Superheroes: service.NewSuperheroService(
			infra.Postgres.DB,
			repo,
			infra.Logger,
			infra.Redis,
		),
	}
}
