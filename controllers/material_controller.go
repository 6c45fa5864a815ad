package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/vnanh/lotrinh-backend/config"
	"github.com/vnanh/lotrinh-backend/models"
	"github.com/vnanh/lotrinh-backend/services"
)

// UploadMaterial xử lý upload tài liệu học: trích xuất văn bản, cắt
// chunk, build chỉ mục vector rồi sinh lộ trình dạng đồ thị từ mẫu đầu
// tài liệu. Chỉ mục và lộ trình được tạo đúng một lần tại đây.
func UploadMaterial(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	svc := c.MustGet("services").(*services.Service)

	uid, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id không hợp lệ"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Không có file đính kèm"})
		return
	}
	if file.Size > 20*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File vượt quá 20MB"})
		return
	}

	difficulty := c.PostForm("difficulty")
	if difficulty == "" {
		difficulty = "Normal"
	}
	var interest *string
	if v := c.PostForm("interest"); v != "" {
		interest = &v
	}

	ext := filepath.Ext(file.Filename)
	inputType, err := services.InputTypeFromExt(ext)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Lưu file gốc
	if err := os.MkdirAll(config.UploadDir(), 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không tạo được thư mục upload"})
		return
	}
	safeName := slug.Make(strings.TrimSuffix(file.Filename, ext))
	filePath := filepath.Join(config.UploadDir(), fmt.Sprintf("%s_%s%s", uid, safeName, ext))
	if err := c.SaveUploadedFile(file, filePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không lưu được file"})
		return
	}

	// Trích xuất văn bản
	text, err := services.ExtractText(file, inputType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể trích xuất nội dung", "details": err.Error()})
		return
	}
	text = services.PreCleanText(text)
	if strings.TrimSpace(text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tài liệu không có nội dung văn bản"})
		return
	}

	// Cắt chunk và build chỉ mục vector
	chunks := services.SplitTextIntoChunks(text, services.DefaultChunkSize, services.DefaultChunkOverlap)
	indexPath := services.IndexPathFor(svc.VectorDir, uid, file.Filename)
	index, err := services.BuildVectorIndex(c.Request.Context(), indexPath, chunks, svc.Embedder)
	if err != nil {
		var upstream *services.UpstreamError
		if errors.As(err, &upstream) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Dịch vụ embedding không phản hồi"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không build được chỉ mục vector", "details": err.Error()})
		return
	}
	defer index.Close()

	// Gieo lộ trình bằng 5 chunk đầu (lấy mẫu đầu tài liệu, không phải
	// truy vấn tương đồng)
	sample := services.LeadingSample(chunks, 5)
	graph, err := svc.GenerateRoadmapFromDocument(c.Request.Context(), sample, difficulty)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Dịch vụ sinh nội dung không phản hồi"})
		return
	}

	doc := models.Document{
		UserID:        uid,
		OriginalName:  file.Filename,
		FilePath:      filePath,
		FileType:      strings.TrimPrefix(ext, "."),
		FileSize:      file.Size,
		ExtractedText: text,
		Difficulty:    difficulty,
		Interest:      interest,
		VectorDBPath:  indexPath,
	}
	if err := db.Create(&doc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không lưu được tài liệu"})
		return
	}

	graphJSON, err := json.Marshal(graph)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không serialize được lộ trình"})
		return
	}

	roadmap := models.Roadmap{
		UserID:      uid,
		Topic:       file.Filename, // tên file làm tiêu đề ở danh sách
		Language:    "English",
		Difficulty:  difficulty,
		Interest:    interest,
		SourceType:  models.SourceDocument,
		RoadmapJSON: graphJSON,
		DocumentID:  &doc.ID,
	}
	if err := db.Create(&roadmap).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không lưu được lộ trình"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":          roadmap.ID,
		"document_id": doc.ID,
		"message":     "Xử lý tài liệu thành công",
		"nodes":       len(graph.Nodes),
		"chunks":      len(chunks),
	})
}

// GetMaterials liệt kê tài liệu (lộ trình sinh từ upload) của người dùng.
func GetMaterials(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.GetString("user_id")

	var roadmaps []models.Roadmap
	if err := db.
		Select("id", "topic", "difficulty", "interest", "created_at").
		Where("user_id = ? AND source_type = ?", userID, models.SourceDocument).
		Order("created_at DESC").
		Find(&roadmaps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không tải được danh sách tài liệu"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"materials": roadmaps})
}
