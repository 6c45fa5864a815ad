package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnanh/lotrinh-backend/models"
)

// GetProgress liệt kê mức thành thạo của người dùng, lọc theo topic nếu
// có query param.
func GetProgress(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.GetString("user_id")

	query := db.Where("user_id = ?", userID)
	if topic := c.Query("topic"); topic != "" {
		query = query.Where("topic = ?", topic)
	}

	var rows []models.UserKnowledge
	if err := query.Order("last_updated DESC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không tải được tiến độ học"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": rows})
}
