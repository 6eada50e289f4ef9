package admin

import (
	"net/http"
	"time"

	"memorizu-app/database"
	"memorizu-app/internal/domain/billing"
	"memorizu-app/internal/domain/pages"
	"memorizu-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID               uint    `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Role             string  `json:"role"`
	IsVerified       bool    `json:"is_verified"`
	StripeCustomerID *string `json:"stripe_customer_id,omitempty"`
}

type AdminPayment struct {
	ID         uint    `json:"id"`
	Email      string  `json:"email"`
	PageID     string  `json:"page_id"`
	AmountEUR  float64 `json:"amount_eur"`
	Status     string  `json:"status"`
	ReceiptURL *string `json:"receipt_url,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

type AdminStats struct {
	TotalUsers     int     `json:"total_users"`
	TotalPages     int     `json:"total_pages"`
	PublishedPages int     `json:"published_pages"`
	TotalRevenue   float64 `json:"total_revenue"`
	RecentRevenue  float64 `json:"recent_revenue"`
}

func AdminDashboard(c *gin.Context) {
	var stats AdminStats

	var totalUsers, totalPages, publishedPages int64
	var totalRevenue, recentRevenue float64

	database.DB.Model(&users.User{}).Count(&totalUsers)
	database.DB.Model(&pages.Page{}).Count(&totalPages)
	database.DB.Model(&pages.Page{}).Where("published = ?", true).Count(&publishedPages)
	database.DB.Model(&billing.Payment{}).Where("status = ?", "paid").Select("COALESCE(SUM(amount_eur), 0)").Scan(&totalRevenue)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&billing.Payment{}).
		Where("status = ? AND created_at >= ?", "paid", thirtyDaysAgo).
		Select("COALESCE(SUM(amount_eur), 0)").Scan(&recentRevenue)

	stats.TotalUsers = int(totalUsers)
	stats.TotalPages = int(totalPages)
	stats.PublishedPages = int(publishedPages)
	stats.TotalRevenue = totalRevenue
	stats.RecentRevenue = recentRevenue

	c.JSON(http.StatusOK, stats)
}

func ListAllUsers(c *gin.Context) {
	var list []users.User
	if err := database.DB.Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var out []AdminUser
	for _, u := range list {
		out = append(out, AdminUser{
			ID:               u.ID,
			Name:             u.Name,
			Email:            u.Email,
			Role:             u.Role,
			IsVerified:       u.IsVerified,
			StripeCustomerID: u.StripeCustomerID,
		})
	}

	c.JSON(http.StatusOK, out)
}

func ListAllPayments(c *gin.Context) {
	var payments []billing.Payment
	if err := database.DB.Preload("User").Order("created_at DESC").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	var out []AdminPayment
	for _, p := range payments {
		out = append(out, AdminPayment{
			ID:         p.ID,
			Email:      p.User.Email,
			PageID:     p.PageID,
			AmountEUR:  p.AmountEUR,
			Status:     p.Status,
			ReceiptURL: p.ReceiptURL,
			CreatedAt:  p.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, out)
}

func GetUserDetails(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var pageList []pages.Page
	if err := database.DB.Where("user_id = ?", userID).Find(&pageList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pages"})
		return
	}

	var payments []billing.Payment
	if err := database.DB.Where("user_id = ?", userID).Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"pages":    pageList,
		"payments": payments,
	})
}

// ForcePublish is the explicit debug/force path: the only way a page gets
// published outside the payment success transition.
func ForcePublish(c *gin.Context) {
	pageID := c.Param("id")
	now := time.Now()

	store := pages.NewStore(database.DB)
	err := store.Update(pageID, map[string]interface{}{
		"published":     true,
		"published_url": pageID,
		"published_at":  now,
	})
	if err != nil {
		if err == pages.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish page"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "published"})
}

func ForceUnpublish(c *gin.Context) {
	pageID := c.Param("id")

	store := pages.NewStore(database.DB)
	err := store.Update(pageID, map[string]interface{}{
		"published":     false,
		"published_url": nil,
	})
	if err != nil {
		if err == pages.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unpublish page"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "unpublished"})
}
