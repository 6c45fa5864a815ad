package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnanh/lotrinh-backend/services"
)

type GenerateContentInput struct {
	RoadmapID  uuid.UUID `json:"roadmap_id" binding:"required"`
	Subtopic   string    `json:"subtopic" binding:"required"`
	Mode       string    `json:"mode"`
	Difficulty string    `json:"difficulty"`
	Language   string    `json:"language"`
	Interest   *string   `json:"interest"`
}

// GenerateContent trả nội dung cho một node: lấy từ cache nếu có, không
// thì sinh theo provenance của lộ trình (RAG hoặc sinh mở) rồi cache lại.
func GenerateContent(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	svc := c.MustGet("services").(*services.Service)

	uid, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id không hợp lệ"})
		return
	}

	var input GenerateContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Mode == "" {
		input.Mode = "story"
	}
	if input.Difficulty == "" {
		input.Difficulty = "Normal"
	}
	if input.Language == "" {
		input.Language = "English"
	}

	payload, err := svc.GenerateNodeContent(c.Request.Context(), db, services.ContentRequest{
		RoadmapID:  input.RoadmapID,
		UserID:     uid,
		Subtopic:   input.Subtopic,
		Mode:       input.Mode,
		Difficulty: input.Difficulty,
		Language:   input.Language,
		Interest:   input.Interest,
	})
	if err != nil {
		var upstream *services.UpstreamError
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy lộ trình hoặc chỉ mục tài liệu"})
		case errors.As(err, &upstream):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Dịch vụ sinh nội dung không phản hồi"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không sinh được nội dung"})
		}
		return
	}

	c.JSON(http.StatusOK, payload)
}
