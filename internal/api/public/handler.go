package publicapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"memorizu-app/config"
	"memorizu-app/database"
	"memorizu-app/internal/domain/pages"

	"github.com/gin-gonic/gin"
)

type publicComponentDTO struct {
	Type      string          `json:"type"`
	SortIndex int             `json:"sortIndex"`
	Data      json.RawMessage `json:"data"`
}

type publicPageDTO struct {
	ID         string               `json:"id"`
	Title      string               `json:"title"`
	URL        string               `json:"url"`
	Components []publicComponentDTO `json:"components"`
}

// GET /p/:id and GET /s/:slug both land here. Visitors get the page or a
// generic "not available" — never the reason (draft vs. unpaid vs. disputed),
// so payment state does not leak.
func RenderPage(c *gin.Context) {
	idOrSlug := c.Param("idOrSlug")

	store := pages.NewStore(database.DB)
	p, err := pages.Resolve(store, idOrSlug)
	if err != nil {
		if errors.Is(err, pages.ErrNotFound) {
			pageUnavailable(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load page"})
		return
	}

	if !pages.Classify(p.Published, pages.NormalizePaymentStatus(string(p.PaymentStatus))).PublicAccess() {
		pageUnavailable(c)
		return
	}

	out := publicPageDTO{
		ID:         p.ID,
		Title:      p.Title,
		URL:        pages.BuildPublicURL(config.PUBLIC_BASE_URL, pages.CanonicalURL(p)),
		Components: make([]publicComponentDTO, 0, len(p.Components)),
	}
	for _, comp := range p.Components {
		out.Components = append(out.Components, publicComponentDTO{
			Type:      comp.Type,
			SortIndex: comp.SortIndex,
			Data:      comp.Data,
		})
	}

	c.JSON(http.StatusOK, out)
}

func pageUnavailable(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Page not available"})
}
