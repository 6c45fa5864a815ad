package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuizAttempt lưu một lượt làm trắc nghiệm của người dùng trên một node.
// AttemptData chứa câu hỏi, câu trả lời và thời gian từng câu.
type QuizAttempt struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	RoadmapID uuid.UUID `gorm:"type:uuid;not null;index" json:"roadmap_id"`
	Roadmap   Roadmap   `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	NodeLabel        string `gorm:"size:255;not null" json:"node_label"`
	Score            int    `gorm:"not null" json:"score"`
	TotalQuestions   int    `gorm:"not null" json:"total_questions"`
	TimeTakenSeconds int    `gorm:"not null" json:"time_taken_seconds"`

	AttemptData datatypes.JSON `json:"attempt_data"`
	ReviewText  string         `gorm:"type:text" json:"review_text"` // nhận xét do AI sinh

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
