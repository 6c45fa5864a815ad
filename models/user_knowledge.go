package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusNovice    = "novice"
	StatusCompetent = "competent"
	StatusExpert    = "expert"
)

// UserKnowledge là bản ghi mức thành thạo của người dùng theo từng
// subtopic. Mỗi bộ (user, topic, subtopic) chỉ có tối đa một bản ghi.
type UserKnowledge struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_knowledge_key" json:"user_id"`
	User   User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	Topic    string `gorm:"size:255;not null;uniqueIndex:idx_user_knowledge_key" json:"topic"`
	Subtopic string `gorm:"size:255;not null;uniqueIndex:idx_user_knowledge_key" json:"subtopic"`

	MasteryScore int    `gorm:"not null;default:0" json:"mastery_score"` // 0..100
	Status       string `gorm:"size:20;not null;default:'novice'" json:"status"`

	LastUpdated time.Time `gorm:"autoUpdateTime" json:"last_updated"`
}
