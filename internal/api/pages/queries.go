package pagesapi

import (
	"memorizu-app/internal/domain/pages"

	"gorm.io/gorm"
)

func userPagesQuery(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&pages.Page{}).
		Where("user_id = ?", userID)
}
