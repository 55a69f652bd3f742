package repository

import (
	"github.com/tdnghia/superhero-catalog/infra"
	"gorm.io/gorm"
)

type Repository struct {
	SuperheroRepo *SuperheroRepository
	ImageRepo     *SuperheroImageRepository
}

func InitRepository(infra *infra.Infra) *Repository {
	return &Repository{
		SuperheroRepo: NewSuperheroRepository(infra.Postgres.DB),
		ImageRepo:     NewSuperheroImageRepository(infra.Postgres.DB),
	}
}

// WithTransaction returns a Repository bound to the given transaction handle.
func (r *Repository) WithTransaction(tx *gorm.DB) *Repository {
	return &Repository{
		SuperheroRepo: NewSuperheroRepository(tx),
		ImageRepo:     NewSuperheroImageRepository(tx),
	}
}
