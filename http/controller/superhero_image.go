package controller

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tdnghia/superhero-catalog/entity"
	"github.com/tdnghia/superhero-catalog/http/controller/dto"
	"github.com/tdnghia/superhero-catalog/utils"
)

func imageDTOs(images []entity.SuperheroImage) []dto.ImageResponseDTO {
	out := make([]dto.ImageResponseDTO, 0, len(images))
	for _, img := range images {
		out = append(out, dto.ImageResponseDTO{
			ID:      img.ID,
			URL:     img.ImageURL,
			Type:    img.ImageType,
			AltText: img.AltText,
		})
	}
	return out
}

// ListSuperheroImages handles GET /heroes/:id/images.
func (ctrl *Controller) ListSuperheroImages(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		utils.JSON400(c, "Invalid superhero ID")
		return
	}

	images, err := ctrl.Superheroes.ListImages(c.Request.Context(), id)
	if err != nil {
		ctrl.respondServiceError(c, err, "fetch images")
		return
	}
	utils.JSON200(c, gin.H{
		"images": imageDTOs(images),
		"count":  len(images),
	})
}

// AddSuperheroImages handles POST /heroes/:id/images: up to 5 uploaded files
// plus optional image URLs, appended to the hero's set.
func (ctrl *Controller) AddSuperheroImages(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		utils.JSON400(c, "Invalid superhero ID")
		return
	}

	urls := normalizeImageURLs(c.PostFormArray("imageUrls"))
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if form, err := c.MultipartForm(); err == nil {
			urls = append(urls, ctrl.processUploadedFiles(c, id, form.File["images"])...)
		}
	}
	if len(urls) == 0 {
		utils.JSON400(c, "No valid images provided")
		return
	}

	added, err := ctrl.Superheroes.AddImages(ctx, id, urls)
	if err != nil {
		ctrl.respondServiceError(c, err, "add images")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Superhero] Added %d images to superhero %d", len(added), id)
	utils.JSON201(c, gin.H{
		"message": "Images added successfully",
		"images":  imageDTOs(added),
		"count":   len(added),
	})
}

// RemoveSuperheroImageByIndex handles DELETE /heroes/:id/images/:index. The
// index refers to the hero's current insertion-ordered list.
func (ctrl *Controller) RemoveSuperheroImageByIndex(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		utils.JSON400(c, "Invalid superhero ID")
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.JSON400(c, "Invalid image index")
		return
	}

	removed, err := ctrl.Superheroes.RemoveImageByIndex(ctx, id, index)
	if err != nil {
		ctrl.respondServiceError(c, err, "remove image")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Superhero] Removed image %d (index %d) from superhero %d", removed.ID, index, id)
	utils.JSON200(c, gin.H{
		"message": "Image removed successfully",
		"image":   imageDTOs([]entity.SuperheroImage{*removed})[0],
	})
}

// ClearSuperheroImages handles DELETE /heroes/:id/images.
func (ctrl *Controller) ClearSuperheroImages(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		utils.JSON400(c, "Invalid superhero ID")
		return
	}

	deleted, err := ctrl.Superheroes.ClearImages(ctx, id)
	if err != nil {
		ctrl.respondServiceError(c, err, "clear images")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Superhero] Cleared %d images from superhero %d", deleted, id)
	utils.JSON200(c, gin.H{
		"message": "All images removed successfully",
		"count":   deleted,
	})
}
