package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/memezzz/internal/apperr"
	"github.com/cristianadrielbraun/memezzz/internal/compositor"
	"github.com/cristianadrielbraun/memezzz/internal/overlay"
	"github.com/cristianadrielbraun/memezzz/web/components"
	"github.com/cristianadrielbraun/memezzz/web/pages"
)

func render(c *gin.Context, status int, page templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := page.Render(c.Request.Context(), c.Writer); err != nil {
		c.String(http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) templateCards(selected string) []components.TemplateCard {
	all := h.Catalog.All()
	cards := make([]components.TemplateCard, len(all))
	for i, t := range all {
		cards[i] = components.TemplateCard{
			ID:       t.ID,
			Name:     t.Name,
			ImageURL: components.TemplateImageURL(t.Path),
			Selected: t.ID == selected,
		}
	}
	return cards
}

func exampleImageURL(i int) string {
	return "/api/examples/" + strconv.Itoa(i) + "/image"
}

// Home renders the landing page.
func (h *Handler) Home(c *gin.Context) {
	var gallery []components.GalleryItem
	for i, ex := range h.Gallery.Examples {
		gallery = append(gallery, components.GalleryItem{
			Index:      i,
			Title:      ex.Title,
			TemplateID: ex.TemplateID,
			ImageURL:   exampleImageURL(i),
		})
	}
	var featured *components.GalleryItem
	if ex, i, ok := h.Gallery.Featured(h.now()); ok {
		featured = &components.GalleryItem{Index: i, Title: ex.Title, TemplateID: ex.TemplateID, ImageURL: exampleImageURL(i)}
	}
	render(c, http.StatusOK, pages.HomePage(h.templateCards(""), gallery, featured))
}

// Creator renders the editor on ?template=<id>, or on the first template
// when the id is missing or unknown.
func (h *Handler) Creator(c *gin.Context) {
	tpl, ok := h.Catalog.Get(c.Query("template"))
	if !ok {
		tpl = h.Catalog.First()
	}
	view := components.CreatorView{
		Template: tpl,
		Styles:   overlay.Palette,
		Logos:    overlay.Logos(),
		BaseURL:  h.baseURL(c),
	}
	if tpl != nil {
		e := compositor.NewEditor(tpl)
		view.ImageURL = components.TemplateImageURL(tpl.Path)
		view.Layout = compositor.Preview(e)
		view.State = e.State()
		view.Templates = h.templateCards(tpl.ID)
	}
	render(c, http.StatusOK, pages.CreatorPage(view))
}

// SponsoredMeme decodes ?url= and shows the sponsor link.
func (h *Handler) SponsoredMeme(c *gin.Context) {
	target, err := overlay.DecodeRedirect(c.Query("url"))
	if err != nil {
		render(c, http.StatusBadRequest, pages.SponsoredPage("", apperr.Message(err)))
		return
	}
	render(c, http.StatusOK, pages.SponsoredPage(target, ""))
}

// NotFound renders the 404 page for browsers and JSON for the API.
func (h *Handler) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	render(c, http.StatusNotFound, pages.NotFound())
}
