package repository

import (
	"context"

	"github.com/tdnghia/superhero-catalog/entity"
	"gorm.io/gorm"
)

type SuperheroImageRepository struct {
	db *gorm.DB
}

func NewSuperheroImageRepository(db *gorm.DB) *SuperheroImageRepository {
	return &SuperheroImageRepository{db: db}
}

func (r *SuperheroImageRepository) CreateBatch(ctx context.Context, images []entity.SuperheroImage) error {
	if len(images) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&images).Error
}

// FindBySuperheroID returns the hero's images in insertion order (ascending id).
func (r *SuperheroImageRepository) FindBySuperheroID(ctx context.Context, superheroID uint) ([]entity.SuperheroImage, error) {
	var images []entity.SuperheroImage
	err := r.db.WithContext(ctx).
		Where("superhero_id = ?", superheroID).
		Order("id ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *SuperheroImageRepository) CountBySuperheroID(ctx context.Context, superheroID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.SuperheroImage{}).
		Where("superhero_id = ?", superheroID).
		Count(&total).Error
	return total, err
}

func (r *SuperheroImageRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.SuperheroImage{}).Count(&total).Error
	return total, err
}

func (r *SuperheroImageRepository) DeleteByID(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.SuperheroImage{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrImageNotFound
	}
	return nil
}

func (r *SuperheroImageRepository) DeleteBySuperheroID(ctx context.Context, superheroID uint) error {
	return r.db.WithContext(ctx).
		Where("superhero_id = ?", superheroID).
		Delete(&entity.SuperheroImage{}).Error
}
