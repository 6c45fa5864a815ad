package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnanh/lotrinh-backend/models"
	"github.com/vnanh/lotrinh-backend/services"
)

type GenerateRoadmapInput struct {
	Topic      string `json:"topic" binding:"required"`
	Difficulty string `json:"difficulty"`
	Language   string `json:"language"`
}

// GenerateRoadmap sinh lộ trình từ tên chủ đề và lưu lại. Output model
// hỏng (parse/validation) hạ cấp về cây rỗng thay vì trả trang lỗi;
// chỉ lỗi upstream mới trả 502.
func GenerateRoadmap(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	svc := c.MustGet("services").(*services.Service)

	uid, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id không hợp lệ"})
		return
	}

	var input GenerateRoadmapInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Difficulty == "" {
		input.Difficulty = "Normal"
	}
	if input.Language == "" {
		input.Language = "English"
	}

	tree, err := svc.GenerateRoadmap(c.Request.Context(), input.Topic, input.Difficulty, input.Language)
	if err != nil {
		var upstream *services.UpstreamError
		if errors.As(err, &upstream) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Dịch vụ sinh nội dung không phản hồi"})
			return
		}
		// ParseError / ValidationError: hạ cấp về cây rỗng
		tree = &services.RoadmapTree{
			Topic:      input.Topic,
			Difficulty: input.Difficulty,
			Language:   input.Language,
			Roadmap:    []services.RoadmapNode{},
		}
	}

	data, err := json.Marshal(tree)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không serialize được lộ trình"})
		return
	}

	roadmap := models.Roadmap{
		UserID:      uid,
		Topic:       input.Topic,
		Language:    input.Language,
		Difficulty:  input.Difficulty,
		SourceType:  models.SourceTopic,
		RoadmapJSON: data,
	}
	if err := db.Create(&roadmap).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không lưu được lộ trình"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": roadmap.ID, "roadmap": tree})
}

// GetRoadmaps liệt kê lộ trình của người dùng hiện tại.
func GetRoadmaps(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.GetString("user_id")

	var roadmaps []models.Roadmap
	if err := db.
		Select("id", "topic", "language", "difficulty", "source_type", "created_at").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&roadmaps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không tải được danh sách lộ trình"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"roadmaps": roadmaps})
}

// GetRoadmap trả về một lộ trình kèm tiến độ học gắn lúc đọc. Cây lưu
// trong DB không bị sửa; overlay tạo bản sao mới cho response.
func GetRoadmap(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.GetString("user_id")

	// Chỉ đọc được lộ trình của chính mình
	var roadmap models.Roadmap
	if err := db.First(&roadmap, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy lộ trình"})
		return
	}

	// Biến thể đồ thị (sinh từ tài liệu) trả nguyên trạng, không overlay
	if roadmap.SourceType == models.SourceDocument {
		var graph services.DocGraph
		if err := json.Unmarshal(roadmap.RoadmapJSON, &graph); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Dữ liệu lộ trình hỏng"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":          roadmap.ID,
			"topic":       roadmap.Topic,
			"difficulty":  roadmap.Difficulty,
			"language":    roadmap.Language,
			"source_type": roadmap.SourceType,
			"graph":       graph,
		})
		return
	}

	var tree services.RoadmapTree
	if err := json.Unmarshal(roadmap.RoadmapJSON, &tree); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Dữ liệu lộ trình hỏng"})
		return
	}
	if tree.Difficulty == "" {
		tree.Difficulty = roadmap.Difficulty
	}
	if tree.Language == "" {
		tree.Language = roadmap.Language
	}

	// Tra tiến độ của chủ lộ trình theo topic
	var rows []models.UserKnowledge
	if err := db.Where("user_id = ? AND topic = ?", roadmap.UserID, roadmap.Topic).
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không tải được tiến độ học"})
		return
	}
	progress := make(map[string]services.KnowledgeEntry, len(rows))
	for _, row := range rows {
		progress[row.Subtopic] = services.KnowledgeEntry{
			MasteryScore: row.MasteryScore,
			Status:       row.Status,
		}
	}

	tree.Roadmap = services.OverlayProgress(tree.Roadmap, progress)

	c.JSON(http.StatusOK, gin.H{
		"id":          roadmap.ID,
		"topic":       tree.Topic,
		"difficulty":  tree.Difficulty,
		"language":    tree.Language,
		"source_type": roadmap.SourceType,
		"roadmap":     tree.Roadmap,
	})
}
