package pagesapi

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"memorizu-app/config"
	"memorizu-app/database"
	"memorizu-app/internal/domain/pages"
	"memorizu-app/internal/domain/publication"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Pacing between bulk-delete items, purely for dashboard progress legibility.
const bulkDeletePace = 150 * time.Millisecond

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

func toSummaryDTO(p *pages.Page) PageSummaryDTO {
	// Normalize first: rows imported from the legacy store carry free-form
	// status strings.
	state := pages.Classify(p.Published, pages.NormalizePaymentStatus(string(p.PaymentStatus)))
	return PageSummaryDTO{
		ID:            p.ID,
		Title:         p.Title,
		CustomSlug:    p.CustomSlug,
		Published:     p.Published,
		PaymentStatus: string(p.PaymentStatus),
		State:         string(state),
		URL:           pages.BuildPublicURL(config.PUBLIC_BASE_URL, pages.CanonicalURL(p)),
		CreatedAt:     p.CreatedAt.Format("2006-01-02 15:04"),
	}
}

func toDetailDTO(p *pages.Page) PageDetailDTO {
	out := PageDetailDTO{
		PageSummaryDTO: toSummaryDTO(p),
		Components:     make([]ComponentDTO, 0, len(p.Components)),
	}
	for _, comp := range p.Components {
		out.Components = append(out.Components, ComponentDTO{
			ID:        comp.ID,
			Type:      comp.Type,
			SortIndex: comp.SortIndex,
			Data:      comp.Data,
		})
	}
	return out
}

// ------------------------------
// GET /pages
// ------------------------------
func ListPages(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var list []pages.Page
	if err := userPagesQuery(database.DB, userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pages"})
		return
	}

	out := make([]PageSummaryDTO, 0, len(list))
	for i := range list {
		out = append(out, toSummaryDTO(&list[i]))
	}
	c.JSON(http.StatusOK, gin.H{"pages": out})
}

// ------------------------------
// POST /pages
// ------------------------------
func CreatePage(c *gin.Context) {
	var req CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		p := pages.Page{
			UserID:        userID,
			Title:         req.Title,
			PaymentStatus: pages.PaymentUnpaid,
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}

		for _, comp := range req.Components {
			row := pages.PageComponent{
				PageID:    p.ID,
				SortIndex: comp.SortIndex,
				Type:      comp.Type,
				Data:      comp.Data,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		c.JSON(http.StatusCreated, gin.H{"id": p.ID})
		return nil
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create page", "details": err.Error()})
	}
}

// ------------------------------
// GET /pages/:id
// ------------------------------
func GetPage(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	p, ok := ownedPage(c, userID, c.Param("id"))
	if !ok {
		return
	}

	c.JSON(http.StatusOK, toDetailDTO(p))
}

// ------------------------------
// PUT /pages/:id
// ------------------------------
func UpdatePage(c *gin.Context) {
	id := c.Param("id")

	var req UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var p pages.Page
		if err := tx.First(&p, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return err
		}

		if req.Title != nil {
			if err := tx.Model(&pages.Page{}).Where("id = ?", p.ID).
				Update("title", strings.TrimSpace(*req.Title)).Error; err != nil {
				return err
			}
		}

		// The builder saves the whole component list; replace wholesale.
		if req.Components != nil {
			if err := tx.Where("page_id = ?", p.ID).Delete(&pages.PageComponent{}).Error; err != nil {
				return err
			}
			for _, comp := range *req.Components {
				row := pages.PageComponent{
					PageID:    p.ID,
					SortIndex: comp.SortIndex,
					Type:      comp.Type,
					Data:      comp.Data,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update page"})
	}
}

// ------------------------------
// DELETE /pages/:id
// ------------------------------
func DeletePage(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	store := pages.NewStore(database.DB)
	if err := store.Delete(userID, c.Param("id")); err != nil {
		if errors.Is(err, pages.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete page"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ------------------------------
// GET /pages/slug-availability?slug=...&exclude=...
// ------------------------------
func CheckSlugAvailability(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}

	candidate := c.Query("slug")
	if err := pages.ValidateSlugCandidate(candidate); err != nil {
		c.JSON(http.StatusOK, gin.H{"available": false, "reason": err.Error()})
		return
	}

	store := pages.NewStore(database.DB)
	taken, err := store.SlugTaken(candidate, c.Query("exclude"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check slug"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": !taken})
}

// ------------------------------
// PUT /pages/:id/slug
// ------------------------------
// Check-then-act: two concurrent claims can both pass the availability check.
// The unique index on custom_slug turns the losing write into a 409 instead
// of a silent overwrite.
func ClaimSlug(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req ClaimSlugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid slug"})
		return
	}

	candidate := pages.GenerateSlug(req.Slug)
	if err := pages.ValidateSlugCandidate(candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, ok := ownedPage(c, userID, c.Param("id"))
	if !ok {
		return
	}

	store := pages.NewStore(database.DB)
	taken, err := store.SlugTaken(candidate, p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check slug"})
		return
	}
	if taken {
		c.JSON(http.StatusConflict, gin.H{"error": "Slug already in use"})
		return
	}

	if err := store.Update(p.ID, map[string]interface{}{"custom_slug": candidate}); err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Slug already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save slug"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"slug": candidate, "url": pages.BuildPublicURL(config.PUBLIC_BASE_URL, "/s/"+candidate)})
}

// ------------------------------
// DELETE /pages/:id/slug
// ------------------------------
func ReleaseSlug(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	p, ok := ownedPage(c, userID, c.Param("id"))
	if !ok {
		return
	}

	store := pages.NewStore(database.DB)
	if err := store.Update(p.ID, map[string]interface{}{"custom_slug": nil}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to release slug"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// POST /pages/:id/qrcode
// ------------------------------
func GenerateQRCode(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	p, ok := ownedPage(c, userID, c.Param("id"))
	if !ok {
		return
	}

	if !pages.Classify(p.Published, p.PaymentStatus).PublicAccess() {
		c.JSON(http.StatusConflict, gin.H{"error": "Page is not published yet"})
		return
	}

	pageURL := pages.BuildPublicURL(config.PUBLIC_BASE_URL, pages.CanonicalURL(p))
	qr := pages.QRCode{
		PageID:    p.ID,
		PageURL:   pageURL,
		QRCodeURL: "https://api.qrserver.com/v1/create-qr-code/?size=300x300&data=" + url.QueryEscape(pageURL),
	}

	// Regenerable: claiming a slug later changes the canonical URL.
	err := database.DB.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "page_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"page_url", "qr_code_url", "created_at"}),
		}).
		Create(&qr).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store QR code"})
		return
	}

	c.JSON(http.StatusOK, qr)
}

// ------------------------------
// GET /pages/unpaid
// ------------------------------
func ListUnpaidPages(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	store := pages.NewStore(database.DB)
	list, err := publication.ListUnpaid(store, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pages"})
		return
	}

	out := make([]PageSummaryDTO, 0, len(list))
	for i := range list {
		out = append(out, toSummaryDTO(&list[i]))
	}
	c.JSON(http.StatusOK, gin.H{"pages": out})
}

// ------------------------------
// POST /pages/bulk-delete
// ------------------------------
func BulkDeletePages(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing page_ids"})
		return
	}

	store := pages.NewStore(database.DB)
	res := publication.BulkDelete(store, userID, req.PageIDs, bulkDeletePace)

	c.JSON(http.StatusOK, res)
}

func ownedPage(c *gin.Context, userID uint, id string) (*pages.Page, bool) {
	var p pages.Page
	err := database.DB.
		Preload("Components", func(db *gorm.DB) *gorm.DB { return db.Order("sort_index ASC") }).
		First(&p, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load page"})
		return nil, false
	}
	return &p, true
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key value")
}
