package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vnanh/lotrinh-backend/models"
	"github.com/vnanh/lotrinh-backend/services"
)

type GenerateQuizInput struct {
	Topic        string `json:"topic" binding:"required"`
	Subtopic     string `json:"subtopic" binding:"required"`
	Difficulty   string `json:"difficulty"`
	Language     string `json:"language"`
	NumQuestions int    `json:"num_questions"`
}

// GenerateQuiz sinh câu hỏi trắc nghiệm thích ứng theo mức thành thạo
// hiện tại của người dùng với subtopic. Sinh hỏng trả danh sách rỗng.
func GenerateQuiz(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	svc := c.MustGet("services").(*services.Service)
	userID := c.GetString("user_id")

	var input GenerateQuizInput
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
	if input.NumQuestions <= 0 {
		input.NumQuestions = 5
	}

	// Tra mức thành thạo hiện tại, mặc định novice
	userStatus := models.StatusNovice
	var knowledge models.UserKnowledge
	if err := db.First(&knowledge, "user_id = ? AND topic = ? AND subtopic = ?",
		userID, input.Topic, input.Subtopic).Error; err == nil {
		userStatus = knowledge.Status
	}

	questions := svc.GenerateQuizQuestions(c.Request.Context(),
		input.Topic, input.Subtopic, input.Difficulty, input.Language,
		input.NumQuestions, userStatus)

	c.JSON(http.StatusOK, gin.H{
		"questions":   questions,
		"user_status": userStatus,
	})
}

type SaveAttemptInput struct {
	RoadmapID        uuid.UUID      `json:"roadmap_id" binding:"required"`
	NodeLabel        string         `json:"node_label" binding:"required"`
	Score            int            `json:"score"`
	TotalQuestions   int            `json:"total_questions" binding:"required"`
	TimeTakenSeconds int            `json:"time_taken_seconds"`
	Answers          datatypes.JSON `json:"answers"`
}

// SaveQuizAttempt lưu lượt làm bài và cập nhật mức thành thạo của người
// dùng cho (topic, subtopic). Ghi lại cùng khoá thì thay thế bản cũ.
func SaveQuizAttempt(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	svc := c.MustGet("services").(*services.Service)

	uid, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id không hợp lệ"})
		return
	}

	var input SaveAttemptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.TotalQuestions <= 0 || input.Score < 0 || input.Score > input.TotalQuestions {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Điểm số không hợp lệ"})
		return
	}

	var roadmap models.Roadmap
	if err := db.First(&roadmap, "id = ? AND user_id = ?", input.RoadmapID, uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy lộ trình"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không tải được lộ trình"})
		return
	}

	// Nhận xét ngắn do AI sinh; hỏng thì bỏ trống, không chặn việc lưu
	reviewText := ""
	reviewPrompt := fmt.Sprintf(
		"A learner scored %d/%d on a quiz about '%s' (topic '%s'). Write a short encouraging review in %s with one concrete suggestion for what to study next. Plain text only.",
		input.Score, input.TotalQuestions, input.NodeLabel, roadmap.Topic, roadmap.Language)
	if review, err := svc.Gen.Generate(c.Request.Context(), reviewPrompt, services.GenerateOptions{Temperature: 0.7}); err == nil {
		reviewText = review
	}

	attempt := models.QuizAttempt{
		UserID:           uid,
		RoadmapID:        input.RoadmapID,
		NodeLabel:        input.NodeLabel,
		Score:            input.Score,
		TotalQuestions:   input.TotalQuestions,
		TimeTakenSeconds: input.TimeTakenSeconds,
		AttemptData:      input.Answers,
		ReviewText:       reviewText,
	}
	if err := db.Create(&attempt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không lưu được lượt làm bài"})
		return
	}

	// Cập nhật mức thành thạo: điểm phần trăm quy về 3 bậc
	mastery := input.Score * 100 / input.TotalQuestions
	status := models.StatusNovice
	switch {
	case mastery >= 75:
		status = models.StatusExpert
	case mastery >= 40:
		status = models.StatusCompetent
	}

	knowledge := models.UserKnowledge{
		UserID:       uid,
		Topic:        roadmap.Topic,
		Subtopic:     input.NodeLabel,
		MasteryScore: mastery,
		Status:       status,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "topic"}, {Name: "subtopic"}},
		DoUpdates: clause.AssignmentColumns([]string{"mastery_score", "status", "last_updated"}),
	}).Create(&knowledge).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không cập nhật được tiến độ học"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":            attempt.ID,
		"mastery_score": mastery,
		"status":        status,
		"review":        reviewText,
	})
}
