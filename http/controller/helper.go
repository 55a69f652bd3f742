package controller

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tdnghia/superhero-catalog/service"
)

// parseID reads the numeric :id path parameter.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// parsePagination reads page/limit query parameters. Out-of-range values are
// normalized by the service, not rejected here.
func parsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		limit = service.DefaultPageLimit
	}
	return page, limit
}

// normalizeImageURLs flattens the accepted image URL input shapes (JSON
// array, comma-separated string, bare URL) into a validated list. Malformed
// entries are dropped silently.
func normalizeImageURLs(values []string) []string {
	var urls []string
	for _, raw := range values {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		var candidates []string
		if strings.HasPrefix(raw, "[") {
			var parsed []string
			if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
				candidates = parsed
			}
		}
		if candidates == nil {
			candidates = strings.Split(raw, ",")
		}

		for _, candidate := range candidates {
			candidate = strings.TrimSpace(candidate)
			if isValidImageURL(candidate) {
				urls = append(urls, candidate)
			}
		}
	}
	return urls
}

// isValidImageURL accepts absolute http(s) URLs and server-relative paths.
func isValidImageURL(s string) bool {
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "/") {
		return !strings.Contains(s, "..")
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// processUploadedFiles runs each file through the image processor. A failing
// file is logged and skipped; siblings still go through.
func (ctrl *Controller) processUploadedFiles(c *gin.Context, heroID uint, files []*multipart.FileHeader) []string {
	ctx := c.Request.Context()
	maxFiles := ctrl.Config.EnvConfig.Upload.MaxFilesPerReq
	if len(files) > maxFiles {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Superhero] %d files uploaded, processing only the first %d", len(files), maxFiles)
		files = files[:maxFiles]
	}

	var urls []string
	for i, header := range files {
		if err := ctrl.Infra.Images.ValidateUpload(header); err != nil {
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[Superhero] Rejected upload %s: %v", header.Filename, err)
			continue
		}
		file, err := header.Open()
		if err != nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Superhero] Failed to open upload %s", header.Filename)
			continue
		}
		buf, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Superhero] Failed to read upload %s", header.Filename)
			continue
		}
		url, err := ctrl.Infra.Images.ProcessAndSave(buf, heroID, i)
		if err != nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Superhero] Failed to process upload %s", header.Filename)
			continue
		}
		urls = append(urls, url)
	}
	return urls
}

// formValue reports a multipart/form field as present-or-absent so partial
// updates can tell an omitted field from an empty one.
func formValue(c *gin.Context, key string) *string {
	if value, ok := c.GetPostForm(key); ok {
		return &value
	}
	return nil
}
