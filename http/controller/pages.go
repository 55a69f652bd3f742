package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tdnghia/superhero-catalog/service"
)

// pageWindow returns the pagination buttons to draw: page numbers around the
// current page with -1 marking an ellipsis gap.
func pageWindow(current, total int) []int {
	const radius = 2
	if total <= 1 {
		return nil
	}

	var window []int
	last := 0
	for page := 1; page <= total; page++ {
		if page != 1 && page != total && (page < current-radius || page > current+radius) {
			continue
		}
		if last != 0 && page != last+1 {
			window = append(window, -1)
		}
		window = append(window, page)
		last = page
	}
	return window
}

// HomePage renders the paginated, searchable hero list.
func (ctrl *Controller) HomePage(c *gin.Context) {
	ctx := c.Request.Context()
	page, limit := parsePagination(c)
	search := strings.TrimSpace(c.Query("search"))

	var (
		result *service.HeroList
		err    error
	)
	if search != "" {
		result, err = ctrl.Superheroes.Search(ctx, search, page, limit)
	} else {
		result, err = ctrl.Superheroes.List(ctx, page, limit)
	}
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Title": "Something went wrong", "Message": "Failed to load superheroes"})
		return
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"Heroes":      result.Superheroes,
		"Total":       result.Total,
		"CurrentPage": result.CurrentPage,
		"TotalPages":  result.TotalPages,
		"PageWindow":  pageWindow(result.CurrentPage, result.TotalPages),
		"Search":      search,
	})
}

// CreatePage renders the hero creation form.
func (ctrl *Controller) CreatePage(c *gin.Context) {
	c.HTML(http.StatusOK, "create.html", gin.H{})
}

// DetailPage renders one hero with its image carousel.
func (ctrl *Controller) DetailPage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Title": "Superhero not found", "Message": "The superhero you are looking for does not exist."})
		return
	}
	hero, err := ctrl.Superheroes.Get(c.Request.Context(), id)
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Title": "Superhero not found", "Message": "The superhero you are looking for does not exist."})
		return
	}
	c.HTML(http.StatusOK, "detail.html", gin.H{"Hero": hero})
}

// EditPage renders the edit form with the hero's current images.
func (ctrl *Controller) EditPage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Title": "Superhero not found", "Message": "The superhero you are looking for does not exist."})
		return
	}
	hero, err := ctrl.Superheroes.Get(c.Request.Context(), id)
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Title": "Superhero not found", "Message": "The superhero you are looking for does not exist."})
		return
	}
	c.HTML(http.StatusOK, "edit.html", gin.H{"Hero": hero})
}
