package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tdnghia/superhero-catalog/entity"
	"github.com/tdnghia/superhero-catalog/infra"
	"github.com/tdnghia/superhero-catalog/repository"
	"gorm.io/gorm"
)

const (
	DefaultPageLimit = 5
	MaxPageLimit     = 50

	cacheTTL = 5 * time.Minute
)

// ErrInvalidImageIndex is returned when an index-based image operation points
// outside the hero's current image list.
var ErrInvalidImageIndex = errors.New("invalid image index")

// ValidationError carries per-field messages for rejected input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// HeroWithImages is a superhero with its ordered image URL list attached.
type HeroWithImages struct {
	entity.Superhero
	Images []string `json:"images"`
}

// HeroList is one page of heroes plus the pagination envelope.
type HeroList struct {
	Superheroes []HeroWithImages `json:"superheroes"`
	Total       int64            `json:"total"`
	TotalPages  int              `json:"total_pages"`
	CurrentPage int              `json:"current_page"`
	Limit       int              `json:"limit"`
}

// CatalogStats summarizes the catalog.
type CatalogStats struct {
	TotalHeroes          int64   `json:"total_heroes"`
	TotalImages          int64   `json:"total_images"`
	AverageImagesPerHero float64 `json:"average_images_per_hero"`
}

// CreateInput holds the required attributes of a new hero.
type CreateInput struct {
	Nickname          string
	RealName          string
	OriginDescription string
	Superpowers       string
	CatchPhrase       string
}

// UpdateInput holds a partial attribute update; nil fields are left untouched.
type UpdateInput struct {
	Nickname          *string
	RealName          *string
	OriginDescription *string
	Superpowers       *string
	CatchPhrase       *string
}

// SuperheroService owns all multi-table consistency between hero and image
// rows. Every mutating operation runs inside a transaction.
type SuperheroService struct {
	db     *gorm.DB
	repo   *repository.Repository
	logger *infra.LoggerClient
	cache  *infra.RedisClient
}

func NewSuperheroService(db *gorm.DB, repo *repository.Repository, logger *infra.LoggerClient, cache *infra.RedisClient) *SuperheroService {
	return &SuperheroService{
		db:     db,
		repo:   repo,
		logger: logger,
		cache:  cache,
	}
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func clampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}

func totalPages(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}

func (s *SuperheroService) List(ctx context.Context, page, limit int) (*HeroList, error) {
	page = clampPage(page)
	limit = clampLimit(limit)

	cacheKey := fmt.Sprintf("heroes:list:%d:%d", page, limit)
	if s.cache != nil {
		var cached HeroList
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	offset := (page - 1) * limit
	heroes, err := s.repo.SuperheroRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.SuperheroRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	result := &HeroList{
		Superheroes: make([]HeroWithImages, 0, len(heroes)),
		Total:       total,
		TotalPages:  totalPages(total, limit),
		CurrentPage: page,
		Limit:       limit,
	}
	for i := range heroes {
		withImages, err := s.attachImages(ctx, s.repo, &heroes[i])
		if err != nil {
			return nil, err
		}
		result.Superheroes = append(result.Superheroes, *withImages)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result, cacheTTL); err != nil {
			s.logger.WarningWithContextf(ctx, "[Superhero] Failed to cache hero list: %v", err)
		}
	}
	return result, nil
}

func (s *SuperheroService) Get(ctx context.Context, id uint) (*HeroWithImages, error) {
	cacheKey := fmt.Sprintf("hero:%d", id)
	if s.cache != nil {
		var cached HeroWithImages
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	hero, err := s.repo.SuperheroRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	withImages, err := s.attachImages(ctx, s.repo, hero)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, withImages, cacheTTL); err != nil {
			s.logger.WarningWithContextf(ctx, "[Superhero] Failed to cache hero %d: %v", id, err)
		}
	}
	return withImages, nil
}

// Create inserts the hero and, when an initial image list is supplied, one
// image row per URL. The whole creation rolls back if any insert fails.
func (s *SuperheroService) Create(ctx context.Context, input CreateInput, imageURLs []string) (*HeroWithImages, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	hero := &entity.Superhero{
		Nickname:          strings.TrimSpace(input.Nickname),
		RealName:          strings.TrimSpace(input.RealName),
		OriginDescription: input.OriginDescription,
		Superpowers:       input.Superpowers,
		CatchPhrase:       input.CatchPhrase,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTransaction(tx)
		if err := txRepo.SuperheroRepo.Create(ctx, hero); err != nil {
			return err
		}
		return txRepo.ImageRepo.CreateBatch(ctx, imageRows(hero.ID, hero.Nickname, imageURLs))
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, hero.ID)
	return s.heroResponse(hero, imageURLs), nil
}

// Update applies the supplied attribute fields and, when replaceImages is
// true, replaces the hero's whole image set with imageURLs. Attribute update
// and image replacement are atomic.
func (s *SuperheroService) Update(ctx context.Context, id uint, input UpdateInput, imageURLs []string, replaceImages bool) (*HeroWithImages, error) {
	fields, err := updateFields(input)
	if err != nil {
		return nil, err
	}

	var result *HeroWithImages
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTransaction(tx)
		if err := txRepo.SuperheroRepo.UpdateFields(ctx, id, fields); err != nil {
			return err
		}
		hero, err := txRepo.SuperheroRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if replaceImages {
			if err := txRepo.ImageRepo.DeleteBySuperheroID(ctx, id); err != nil {
				return err
			}
			if err := txRepo.ImageRepo.CreateBatch(ctx, imageRows(id, hero.Nickname, imageURLs)); err != nil {
				return err
			}
		}
		result, err = s.attachImages(ctx, txRepo, hero)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return result, nil
}

// Delete removes the hero row. Image rows go with it via the cascading
// foreign key. The deleted hero's prior state is returned.
func (s *SuperheroService) Delete(ctx context.Context, id uint) (*HeroWithImages, error) {
	hero, err := s.repo.SuperheroRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	prior, err := s.attachImages(ctx, s.repo, hero)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SuperheroRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return prior, nil
}

func (s *SuperheroService) Search(ctx context.Context, query string, page, limit int) (*HeroList, error) {
	page = clampPage(page)
	limit = clampLimit(limit)
	offset := (page - 1) * limit

	heroes, err := s.repo.SuperheroRepo.Search(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.SuperheroRepo.SearchCount(ctx, query)
	if err != nil {
		return nil, err
	}

	result := &HeroList{
		Superheroes: make([]HeroWithImages, 0, len(heroes)),
		Total:       total,
		TotalPages:  totalPages(total, limit),
		CurrentPage: page,
		Limit:       limit,
	}
	for i := range heroes {
		withImages, err := s.attachImages(ctx, s.repo, &heroes[i])
		if err != nil {
			return nil, err
		}
		result.Superheroes = append(result.Superheroes, *withImages)
	}
	return result, nil
}

// ListImages returns the hero's image rows in insertion order.
func (s *SuperheroService) ListImages(ctx context.Context, heroID uint) ([]entity.SuperheroImage, error) {
	if _, err := s.repo.SuperheroRepo.FindByID(ctx, heroID); err != nil {
		return nil, err
	}
	return s.repo.ImageRepo.FindBySuperheroID(ctx, heroID)
}

// AddImages appends one image row per URL to the hero.
func (s *SuperheroService) AddImages(ctx context.Context, heroID uint, urls []string) ([]entity.SuperheroImage, error) {
	hero, err := s.repo.SuperheroRepo.FindByID(ctx, heroID)
	if err != nil {
		return nil, err
	}

	rows := imageRows(heroID, hero.Nickname, urls)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTransaction(tx).ImageRepo.CreateBatch(ctx, rows)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, heroID)
	return rows, nil
}

// RemoveImageByIndex deletes the image at the given position of the hero's
// current ordered list. The list read and the delete share one transaction so
// they see a single snapshot.
func (s *SuperheroService) RemoveImageByIndex(ctx context.Context, heroID uint, index int) (*entity.SuperheroImage, error) {
	var removed *entity.SuperheroImage
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTransaction(tx)
		if _, err := txRepo.SuperheroRepo.FindByID(ctx, heroID); err != nil {
			return err
		}
		images, err := txRepo.ImageRepo.FindBySuperheroID(ctx, heroID)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(images) {
			return ErrInvalidImageIndex
		}
		removed = &images[index]
		return txRepo.ImageRepo.DeleteByID(ctx, removed.ID)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, heroID)
	return removed, nil
}

// ClearImages deletes every image row of the hero and reports how many went.
func (s *SuperheroService) ClearImages(ctx context.Context, heroID uint) (int64, error) {
	if _, err := s.repo.SuperheroRepo.FindByID(ctx, heroID); err != nil {
		return 0, err
	}
	deleted, err := s.repo.ImageRepo.CountBySuperheroID(ctx, heroID)
	if err != nil {
		return 0, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTransaction(tx).ImageRepo.DeleteBySuperheroID(ctx, heroID)
	})
	if err != nil {
		return 0, err
	}

	s.invalidate(ctx, heroID)
	return deleted, nil
}

func (s *SuperheroService) Stats(ctx context.Context) (*CatalogStats, error) {
	heroCount, err := s.repo.SuperheroRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	imageCount, err := s.repo.ImageRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats := &CatalogStats{
		TotalHeroes: heroCount,
		TotalImages: imageCount,
	}
	if heroCount > 0 {
		stats.AverageImagesPerHero = math.Round(float64(imageCount)/float64(heroCount)*100) / 100
	}
	return stats, nil
}

func (s *SuperheroService) attachImages(ctx context.Context, repo *repository.Repository, hero *entity.Superhero) (*HeroWithImages, error) {
	images, err := repo.ImageRepo.FindBySuperheroID(ctx, hero.ID)
	if err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, img.ImageURL)
	}
	return &HeroWithImages{Superhero: *hero, Images: urls}, nil
}

func (s *SuperheroService) heroResponse(hero *entity.Superhero, urls []string) *HeroWithImages {
	if urls == nil {
		urls = []string{}
	}
	return &HeroWithImages{Superhero: *hero, Images: urls}
}

// invalidate drops the cached detail entry plus every cached list page.
func (s *SuperheroService) invalidate(ctx context.Context, heroID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, fmt.Sprintf("hero:%d", heroID)); err != nil {
		s.logger.WarningWithContextf(ctx, "[Superhero] Failed to invalidate hero %d cache: %v", heroID, err)
	}
	if err := s.cache.DeleteByPattern(ctx, "heroes:list:*"); err != nil {
		s.logger.WarningWithContextf(ctx, "[Superhero] Failed to invalidate list cache: %v", err)
	}
}

func imageRows(heroID uint, nickname string, urls []string) []entity.SuperheroImage {
	rows := make([]entity.SuperheroImage, 0, len(urls))
	for _, url := range urls {
		imageType := entity.ImageTypeURL
		if strings.HasPrefix(url, "/") {
			imageType = entity.ImageTypeUpload
		}
		rows = append(rows, entity.SuperheroImage{
			SuperheroID: heroID,
			ImageURL:    url,
			ImageType:   imageType,
			AltText:     "Image of " + nickname,
		})
	}
	return rows
}

func validateCreate(input CreateInput) error {
	fields := map[string]string{}
	requireField(fields, "nickname", input.Nickname)
	requireField(fields, "real_name", input.RealName)
	requireField(fields, "origin_description", input.OriginDescription)
	requireField(fields, "superpowers", input.Superpowers)
	requireField(fields, "catch_phrase", input.CatchPhrase)
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func requireField(fields map[string]string, name, value string) {
	if strings.TrimSpace(value) == "" {
		fields[name] = name + " is required"
	}
}

// updateFields turns a partial input into column updates, validating that no
// supplied required field is blank.
func updateFields(input UpdateInput) (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	violations := map[string]string{}

	set := func(column string, value *string) {
		if value == nil {
			return
		}
		if strings.TrimSpace(*value) == "" {
			violations[column] = column + " cannot be empty"
			return
		}
		fields[column] = *value
	}
	set("nickname", input.Nickname)
	set("real_name", input.RealName)
	set("origin_description", input.OriginDescription)
	set("superpowers", input.Superpowers)
	set("catch_phrase", input.CatchPhrase)

	if len(violations) > 0 {
		return nil, &ValidationError{Fields: violations}
	}
	return fields, nil
}
