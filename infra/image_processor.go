package infra

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/h2non/bimg"
	"github.com/tdnghia/superhero-catalog/config"
)

const (
	// Processed images fit within these bounds, aspect ratio preserved.
	MaxImageWidth  = 800
	MaxImageHeight = 600
	// WebP encode quality.
	ImageQuality = 85
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ImageProcessor turns raw uploaded bytes into web-optimized WebP files under
// the public upload directory.
type ImageProcessor struct {
	Dir         string
	PublicPath  string
	MaxFileSize int64
	Logger      *LoggerClient
}

func InitImageProcessor(cfg *config.EnvConfig, logger *LoggerClient) *ImageProcessor {
	return &ImageProcessor{
		Dir:         cfg.Upload.Dir,
		PublicPath:  cfg.Upload.PublicPath,
		MaxFileSize: cfg.Upload.MaxFileSize,
		Logger:      logger,
	}
}

// ValidateUpload rejects files that are too large or not a supported raster
// format. Called before any bytes are read.
func (p *ImageProcessor) ValidateUpload(header *multipart.FileHeader) error {
	if header.Size > p.MaxFileSize {
		return fmt.Errorf("file %s exceeds the %d byte limit", header.Filename, p.MaxFileSize)
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		return fmt.Errorf("file %s: only images are allowed (jpeg, jpg, png, webp)", header.Filename)
	}
	contentType := header.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("file %s: unsupported content type %s", header.Filename, contentType)
	}
	return nil
}

// ProcessAndSave decodes buf, resizes it to fit within 800x600 without
// enlarging, encodes WebP at quality 85 and writes the result under the upload
// directory. It returns the server-relative URL path of the written file.
func (p *ImageProcessor) ProcessAndSave(buf []byte, heroID uint, seq int) (string, error) {
	size, err := bimg.NewImage(buf).Size()
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	width, height := FitWithin(size.Width, size.Height, MaxImageWidth, MaxImageHeight)
	options := bimg.Options{
		Type:    bimg.WEBP,
		Quality: ImageQuality,
	}
	if width != size.Width || height != size.Height {
		options.Width = width
		options.Height = height
	}

	encoded, err := bimg.NewImage(buf).Process(options)
	if err != nil {
		return "", fmt.Errorf("process image: %w", err)
	}

	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	filename := UploadFilename(heroID, time.Now(), seq)
	if err := os.WriteFile(filepath.Join(p.Dir, filename), encoded, 0o644); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}

	return p.PublicPath + "/" + filename, nil
}

// UploadFilename builds the collision-resistant name for a processed upload:
// owner id + millisecond timestamp + per-request sequence.
func UploadFilename(heroID uint, now time.Time, seq int) string {
	return fmt.Sprintf("hero-%d-%d-%d.webp", heroID, now.UnixMilli(), seq)
}

// FitWithin scales (width, height) down to fit inside (maxWidth, maxHeight)
// preserving aspect ratio. Images already inside the bounds are returned
// unchanged; this never upscales.
func FitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}
	scaleW := float64(maxWidth) / float64(width)
	scaleH := float64(maxHeight) / float64(height)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newWidth := int(float64(width) * scale)
	newHeight := int(float64(height) * scale)
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}
	return newWidth, newHeight
}
