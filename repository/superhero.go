package repository

import (
	"context"
	"errors"
	"time"

	"github.com/tdnghia/superhero-catalog/entity"
	"gorm.io/gorm"
)

type SuperheroRepository struct {
	db *gorm.DB
}

func NewSuperheroRepository(db *gorm.DB) *SuperheroRepository {
	return &SuperheroRepository{db: db}
}

func (r *SuperheroRepository) Create(ctx context.Context, hero *entity.Superhero) error {
	return r.db.WithContext(ctx).Create(hero).Error
}

func (r *SuperheroRepository) FindByID(ctx context.Context, id uint) (*entity.Superhero, error) {
	var hero entity.Superhero
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&hero).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSuperheroNotFound
		}
		return nil, err
	}
	return &hero, nil
}

// List returns heroes in insertion order.
func (r *SuperheroRepository) List(ctx context.Context, offset, limit int) ([]entity.Superhero, error) {
	var heroes []entity.Superhero
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&heroes).Error
	if err != nil {
		return nil, err
	}
	return heroes, nil
}

func (r *SuperheroRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Superhero{}).Count(&total).Error
	return total, err
}

// Search matches a case-insensitive substring of nickname or real name,
// newest-created first. LOWER/LIKE keeps the query portable between the
// postgres deployment and the sqlite test databases.
func (r *SuperheroRepository) Search(ctx context.Context, query string, offset, limit int) ([]entity.Superhero, error) {
	var heroes []entity.Superhero
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(nickname) LIKE LOWER(?) OR LOWER(real_name) LIKE LOWER(?)", pattern, pattern).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&heroes).Error
	if err != nil {
		return nil, err
	}
	return heroes, nil
}

func (r *SuperheroRepository) SearchCount(ctx context.Context, query string) (int64, error) {
	var total int64
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).Model(&entity.Superhero{}).
		Where("LOWER(nickname) LIKE LOWER(?) OR LOWER(real_name) LIKE LOWER(?)", pattern, pattern).
		Count(&total).Error
	return total, err
}

// UpdateFields applies the given column updates and refreshes updated_at.
// Returns ErrSuperheroNotFound when no row matched.
func (r *SuperheroRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&entity.Superhero{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSuperheroNotFound
	}
	return nil
}

func (r *SuperheroRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Superhero{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSuperheroNotFound
	}
	return nil
}
