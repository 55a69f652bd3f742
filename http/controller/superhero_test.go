package controller

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tdnghia/superhero-catalog/config"
	"github.com/tdnghia/superhero-catalog/infra"
	"github.com/tdnghia/superhero-catalog/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := infra.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cfg := config.NewConfig()
	cfg.EnvConfig.Upload.Dir = t.TempDir()

	logger := infra.NewTestLogger()
	inf := &infra.Infra{
		Postgres: &infra.PostgresClient{DB: db},
		Logger:   logger,
		Images:   infra.InitImageProcessor(cfg.EnvConfig, logger),
	}
	repo := &repository.Repository{
		SuperheroRepo: repository.NewSuperheroRepository(db),
		ImageRepo:     repository.NewSuperheroImageRepository(db),
	}
	ctrl := NewController(cfg, inf, repo)

	r := gin.New()
	r.GET("/healthz", ctrl.Health)
	api := r.Group("/api/v1")
	api.GET("/stats", ctrl.Stats)
	heroes := api.Group("/heroes")
	heroes.GET("", ctrl.ListSuperheroes)
	heroes.POST("", ctrl.CreateSuperhero)
	heroes.GET("/:id", ctrl.GetSuperhero)
	heroes.PUT("/:id", ctrl.UpdateSuperhero)
	heroes.DELETE("/:id", ctrl.DeleteSuperhero)
	heroes.GET("/:id/images", ctrl.ListSuperheroImages)
	heroes.POST("/:id/images", ctrl.AddSuperheroImages)
	heroes.DELETE("/:id/images/:index", ctrl.RemoveSuperheroImageByIndex)
	heroes.DELETE("/:id/images", ctrl.ClearSuperheroImages)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func createHero(t *testing.T, r *gin.Engine, nickname string, images []string) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/heroes", gin.H{
		"nickname":          nickname,
		"realName":          "Real " + nickname,
		"originDescription": "Origin of " + nickname,
		"superpowers":       "strength",
		"catchPhrase":       nickname + "!",
		"images":            images,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create %s returned %d: %s", nickname, w.Code, w.Body.String())
	}
	return uint(decodeBody(t, w)["id"].(float64))
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := decodeBody(t, w); body["message"] != "Superhero API is running!" {
		t.Errorf("unexpected health body: %v", body)
	}
}

func TestCreateSuperheroJSON(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/heroes", gin.H{
		"nickname":          "Superman",
		"realName":          "Clark Kent",
		"originDescription": "Krypton",
		"superpowers":       "flight, strength",
		"catchPhrase":       "Up and away!",
		"images":            []string{"https://example.com/superman.jpg"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["nickname"] != "Superman" || body["real_name"] != "Clark Kent" {
		t.Errorf("unexpected body: %v", body)
	}
	images, ok := body["images"].([]interface{})
	if !ok || len(images) != 1 || images[0] != "https://example.com/superman.jpg" {
		t.Errorf("unexpected images: %v", body["images"])
	}
}

func TestCreateSuperheroValidation(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/heroes", gin.H{
		"nickname": "Superman",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "Validation failed" {
		t.Errorf("unexpected error message: %v", body["error"])
	}
	details, ok := body["details"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected field details, got %v", body)
	}
	if _, present := details["real_name"]; !present {
		t.Errorf("expected real_name violation, got %v", details)
	}
}

func TestCreateSuperheroDropsMalformedURLs(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/heroes", gin.H{
		"nickname":          "Batman",
		"realName":          "Bruce Wayne",
		"originDescription": "Gotham",
		"superpowers":       "money",
		"catchPhrase":       "I am the night",
		"images": []string{
			"https://example.com/ok.jpg",
			"ftp://example.com/nope.jpg",
			"../../../etc/passwd",
			"not a url",
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	images := decodeBody(t, w)["images"].([]interface{})
	if len(images) != 1 || images[0] != "https://example.com/ok.jpg" {
		t.Errorf("expected only the valid URL kept, got %v", images)
	}
}

func TestGetSuperhero(t *testing.T) {
	r := newTestRouter(t)
	id := createHero(t, r, "Thor", []string{"https://example.com/thor.jpg"})

	w := doJSON(t, r, http.MethodGet, "/api/v1/heroes/"+itoa(id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["nickname"] != "Thor" {
		t.Errorf("unexpected hero: %v", body)
	}

	if w := doJSON(t, r, http.MethodGet, "/api/v1/heroes/abc", nil); w.Code != http.StatusBadRequest {
		t.Errorf("non-numeric id should be 400, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/api/v1/heroes/9999", nil); w.Code != http.StatusNotFound {
		t.Errorf("missing hero should be 404, got %d", w.Code)
	}
}

func TestListSuperheroesEnvelope(t *testing.T) {
	r := newTestRouter(t)
	createHero(t, r, "Superman", nil)
	createHero(t, r, "Batman", nil)
	createHero(t, r, "Flash", nil)

	w := doJSON(t, r, http.MethodGet, "/api/v1/heroes?page=1&limit=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	heroes := body["superheroes"].([]interface{})
	if len(heroes) != 2 {
		t.Errorf("expected 2 heroes on the page, got %d", len(heroes))
	}
	if body["total"].(float64) != 3 || body["total_pages"].(float64) != 2 {
		t.Errorf("unexpected envelope: total %v pages %v", body["total"], body["total_pages"])
	}
	if body["current_page"].(float64) != 1 || body["limit"].(float64) != 2 {
		t.Errorf("unexpected envelope: page %v limit %v", body["current_page"], body["limit"])
	}
}

func TestListSuperheroesSearch(t *testing.T) {
	r := newTestRouter(t)
	createHero(t, r, "Superman", nil)
	createHero(t, r, "Flash", nil)

	w := doJSON(t, r, http.MethodGet, "/api/v1/heroes?search=super", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	heroes := body["superheroes"].([]interface{})
	if len(heroes) != 1 {
		t.Fatalf("expected 1 match, got %d", len(heroes))
	}
	if heroes[0].(map[string]interface{})["nickname"] != "Superman" {
		t.Errorf("unexpected match: %v", heroes[0])
	}
}

func TestUpdateSuperheroJSON(t *testing.T) {
	r := newTestRouter(t)
	id := createHero(t, r, "Thor", []string{"https://example.com/thor-old.jpg"})

	// Omitting images keeps the current set.
	w := doJSON(t, r, http.MethodPut, "/api/v1/heroes/"+itoa(id), gin.H{
		"catchPhrase": "For Asgard!",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["catch_phrase"] != "For Asgard!" {
		t.Errorf("catch phrase not updated: %v", body)
	}
	if images := body["images"].([]interface{}); len(images) != 1 {
		t.Errorf("images should be untouched, got %v", images)
	}

	// Supplying images replaces the whole set.
	w = doJSON(t, r, http.MethodPut, "/api/v1/heroes/"+itoa(id), gin.H{
		"images": []string{"https://example.com/thor-new.jpg"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	images := decodeBody(t, w)["images"].([]interface{})
	if len(images) != 1 || images[0] != "https://example.com/thor-new.jpg" {
		t.Errorf("expected replaced image set, got %v", images)
	}

	if w := doJSON(t, r, http.MethodPut, "/api/v1/heroes/9999", gin.H{"nickname": "X"}); w.Code != http.StatusNotFound {
		t.Errorf("missing hero should be 404, got %d", w.Code)
	}
}

func TestUpdateSuperheroMultipartKeepExisting(t *testing.T) {
	r := newTestRouter(t)
	id := createHero(t, r, "Aquaman", []string{"https://example.com/old.jpg"})

	// keepExistingImages defaults to true, so a new URL is appended.
	w := doMultipart(t, r, http.MethodPut, "/api/v1/heroes/"+itoa(id), map[string]string{
		"imageUrls": "https://example.com/new.jpg",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	images := decodeBody(t, w)["images"].([]interface{})
	if len(images) != 2 || images[0] != "https://example.com/old.jpg" || images[1] != "https://example.com/new.jpg" {
		t.Fatalf("expected appended list, got %v", images)
	}

	// With the flag off the supplied URLs replace the set.
	w = doMultipart(t, r, http.MethodPut, "/api/v1/heroes/"+itoa(id), map[string]string{
		"keepExistingImages": "false",
		"imageUrls":          "https://example.com/only.jpg",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	images = decodeBody(t, w)["images"].([]interface{})
	if len(images) != 1 || images[0] != "https://example.com/only.jpg" {
		t.Fatalf("expected replaced list, got %v", images)
	}

	// Comma-separated URL lists are accepted in one field.
	w = doMultipart(t, r, http.MethodPut, "/api/v1/heroes/"+itoa(id), map[string]string{
		"keepExistingImages": "false",
		"imageUrls":          "https://example.com/a.jpg, https://example.com/b.jpg",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	images = decodeBody(t, w)["images"].([]interface{})
	if len(images) != 2 {
		t.Fatalf("expected comma-separated list split, got %v", images)
	}
}

func TestDeleteSuperhero(t *testing.T) {
	r := newTestRouter(t)
	id := createHero(t, r, "Batman", []string{"https://example.com/batman.jpg"})

	w := doJSON(t, r, http.MethodDelete, "/api/v1/heroes/"+itoa(id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "Superhero deleted successfully" {
		t.Errorf("unexpected message: %v", body["message"])
	}
	hero := body["superhero"].(map[string]interface{})
	if hero["nickname"] != "Batman" {
		t.Errorf("expected prior state in response, got %v", hero)
	}

	if w := doJSON(t, r, http.MethodGet, "/api/v1/heroes/"+itoa(id), nil); w.Code != http.StatusNotFound {
		t.Errorf("deleted hero should be gone, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodDelete, "/api/v1/heroes/"+itoa(id), nil); w.Code != http.StatusNotFound {
		t.Errorf("double delete should be 404, got %d", w.Code)
	}
}

func TestImageSubresource(t *testing.T) {
	r := newTestRouter(t)
	id := createHero(t, r, "Wolverine", []string{"https://example.com/0.jpg", "https://example.com/1.jpg"})

	w := doJSON(t, r, http.MethodGet, "/api/v1/heroes/"+itoa(id)+"/images", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["count"].(float64) != 2 {
		t.Fatalf("expected 2 images, got %v", body["count"])
	}
	first := body["images"].([]interface{})[0].(map[string]interface{})
	if first["url"] != "https://example.com/0.jpg" || first["type"] != "url" {
		t.Errorf("unexpected image row: %v", first)
	}

	// Append via the sub-resource.
	w = doMultipart(t, r, http.MethodPost, "/api/v1/heroes/"+itoa(id)+"/images", map[string]string{
		"imageUrls": "https://example.com/2.jpg",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// No usable image in the request.
	w = doMultipart(t, r, http.MethodPost, "/api/v1/heroes/"+itoa(id)+"/images", map[string]string{
		"imageUrls": "not a url",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for no valid images, got %d", w.Code)
	}

	// Remove by index.
	w = doJSON(t, r, http.MethodDelete, "/api/v1/heroes/"+itoa(id)+"/images/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	removed := decodeBody(t, w)["image"].(map[string]interface{})
	if removed["url"] != "https://example.com/1.jpg" {
		t.Errorf("removed wrong image: %v", removed)
	}

	if w := doJSON(t, r, http.MethodDelete, "/api/v1/heroes/"+itoa(id)+"/images/10", nil); w.Code != http.StatusNotFound {
		t.Errorf("out-of-range index should be 404, got %d", w.Code)
	}

	// Clear the rest.
	w = doJSON(t, r, http.MethodDelete, "/api/v1/heroes/"+itoa(id)+"/images", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if count := decodeBody(t, w)["count"].(float64); count != 2 {
		t.Errorf("expected 2 cleared, got %v", count)
	}
}

func TestStatsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	createHero(t, r, "Superman", []string{"https://example.com/1.jpg", "https://example.com/2.jpg"})
	createHero(t, r, "Batman", nil)

	w := doJSON(t, r, http.MethodGet, "/api/v1/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["total_heroes"].(float64) != 2 || body["total_images"].(float64) != 2 {
		t.Errorf("unexpected stats: %v", body)
	}
	if body["average_images_per_hero"].(float64) != 1 {
		t.Errorf("unexpected average: %v", body["average_images_per_hero"])
	}
}

func doMultipart(t *testing.T, r *gin.Engine, method, path string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write form field %s: %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close form writer: %v", err)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
