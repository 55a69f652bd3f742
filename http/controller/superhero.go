package controller

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tdnghia/superhero-catalog/http/controller/dto"
	"github.com/tdnghia/superhero-catalog/repository"
	"github.com/tdnghia/superhero-catalog/service"
	"github.com/tdnghia/superhero-catalog/utils"
)

// respondServiceError maps service/repository errors onto HTTP statuses.
func (ctrl *Controller) respondServiceError(c *gin.Context, err error, action string) {
	ctx := c.Request.Context()

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		utils.JSON400(c, gin.H{
			"error":   "Validation failed",
			"details": validationErr.Fields,
		})
	case errors.Is(err, repository.ErrSuperheroNotFound):
		utils.JSON404(c, "Superhero not found")
	case errors.Is(err, service.ErrInvalidImageIndex):
		utils.JSON404(c, "Invalid image index")
	default:
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Superhero] Failed to %s", action)
		utils.JSON500(c, "Failed to "+action)
	}
}

// ListSuperheroes handles GET /heroes with optional search, page and limit.
func (ctrl *Controller) ListSuperheroes(c *gin.Context) {
	ctx := c.Request.Context()
	page, limit := parsePagination(c)

	var (
		result *service.HeroList
		err    error
	)
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		result, err = ctrl.Superheroes.Search(ctx, search, page, limit)
	} else {
		result, err = ctrl.Superheroes.List(ctx, page, limit)
	}
	if err != nil {
		ctrl.respondServiceError(c, err, "fetch superheroes")
		return
	}
	utils.JSON200(c, result)
}

// GetSuperhero handles GET /heroes/:id.
func (ctrl *Controller) GetSuperhero(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		utils.JSON400(c, "Invalid superhero ID")
		return
	}

	hero, err := ctrl.Superheroes.Get(c.Request.Context(), id)
	if err != nil {
		ctrl.respondServiceError(c, err, "fetch superhero")
		return
	}
	utils.JSON200(c, hero)
}

// CreateSuperhero handles POST /heroes. A JSON body carries attribute fields
// plus an image URL array; a multipart body additionally carries files.
func (ctrl *Controller) CreateSuperhero(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateSuperheroRequestDTO
	isMultipart := strings.HasPrefix(c.ContentType(), "multipart/form-data")
	if isMultipart {
		if err := c.ShouldBind(&req); err != nil {
			utils.JSON400(c, "Invalid request payload")
			return
		}
		req.Images = normalizeImageURLs(c.PostFormArray("imageUrls"))
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSON400(c, "Invalid request payload")
			return
		}
		req.Images = normalizeImageURLs(req.Images)
	}

	input := service.CreateInput{
		Nickname:          req.Nickname,
		RealName:          req.RealName,
		OriginDescription: req.OriginDescription,
		Superpowers:       req.Superpowers,
		CatchPhrase:       req.CatchPhrase,
	}

	hero, err := ctrl.Superheroes.Create(ctx, input, req.Images)
	if err != nil {
		ctrl.respondServiceError(c, err, "create superhero")
		return
	}

	// Files can only be processed once the owner id exists; a failing file is
	// skipped without failing the request.
	if isMultipart {
		if form, err := c.MultipartForm(); err == nil {
			if uploaded := ctrl.processUploadedFiles(c, hero.ID, form.File["images"]); len(uploaded) > 0 {
				if _, err := ctrl.Superheroes.AddImages(ctx, hero.ID, uploaded); err != nil {
					ctrl.respondServiceError(c, err, "attach uploaded images")
					return
				}
				hero.Images = append(hero.Images, uploaded...)
			}
		}
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Superhero] Created superhero %d (%s) with %d images", hero.ID, hero.Nickname, len(hero.Images))
	utils.JSON201(c, hero)
}

// UpdateSuperhero handles PUT /heroes/:id. Only supplied fields change. The
// keepExistingImages flag (default true) decides whether new images append to
// or replace the current set; with no new images and the flag left on, the
// image set is untouched.
func (ctrl *Controller) UpdateSuperhero(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		utils.JSON400(c, "Invalid superhero ID")
		return
	}

	var (
		input         service.UpdateInput
		newURLs       []string
		replaceImages bool
		finalImages   []string
	)

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		input = service.UpdateInput{
			Nickname:          formValue(c, "nickname"),
			RealName:          formValue(c, "realName"),
			OriginDescription: formValue(c, "originDescription"),
			Superpowers:       formValue(c, "superpowers"),
			CatchPhrase:       formValue(c, "catchPhrase"),
		}
		newURLs = normalizeImageURLs(c.PostFormArray("imageUrls"))
		if form, err := c.MultipartForm(); err == nil {
			newURLs = append(newURLs, ctrl.processUploadedFiles(c, id, form.File["images"])...)
		}

		keepExisting := true
		if flag := formValue(c, "keepExistingImages"); flag != nil {
			keepExisting = *flag == "true" || *flag == "1"
		}

		switch {
		case keepExisting && len(newURLs) == 0:
			replaceImages = false
		case keepExisting:
			current, err := ctrl.Superheroes.ListImages(ctx, id)
			if err != nil {
				ctrl.respondServiceError(c, err, "update superhero")
				return
			}
			for _, img := range current {
				finalImages = append(finalImages, img.ImageURL)
			}
			finalImages = append(finalImages, newURLs...)
			replaceImages = true
		default:
			finalImages = newURLs
			replaceImages = true
		}
	} else {
		var req dto.UpdateSuperheroRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSON400(c, "Invalid request payload")
			return
		}
		input = service.UpdateInput{
			Nickname:          req.Nickname,
			RealName:          req.RealName,
			OriginDescription: req.OriginDescription,
			Superpowers:       req.Superpowers,
			CatchPhrase:       req.CatchPhrase,
		}
		if req.Images != nil {
			replaceImages = true
			finalImages = normalizeImageURLs(*req.Images)
		}
	}

	hero, err := ctrl.Superheroes.Update(ctx, id, input, finalImages, replaceImages)
	if err != nil {
		ctrl.respondServiceError(c, err, "update superhero")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Superhero] Updated superhero %d", id)
	utils.JSON200(c, hero)
}

// DeleteSuperhero handles DELETE /heroes/:id. Image rows cascade with the
// hero.
func (ctrl *Controller) DeleteSuperhero(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		utils.JSON400(c, "Invalid superhero ID")
		return
	}

	hero, err := ctrl.Superheroes.Delete(ctx, id)
	if err != nil {
		ctrl.respondServiceError(c, err, "delete superhero")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Superhero] Deleted superhero %d (%s)", id, hero.Nickname)
	utils.JSON200(c, gin.H{
		"message":   "Superhero deleted successfully",
		"superhero": hero,
	})
}
