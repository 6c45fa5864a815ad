package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RoadmapSource string

const (
	// SourceTopic: lộ trình sinh từ tên chủ đề (cây phân cấp)
	SourceTopic RoadmapSource = "topic"
	// SourceDocument: lộ trình sinh từ tài liệu upload (đồ thị node/edge)
	SourceDocument RoadmapSource = "document"
)

// Roadmap lưu cả hai biến thể lộ trình. RoadmapJSON là cây phân cấp khi
// SourceType = topic, là đồ thị node/edge khi SourceType = document.
// Hai dạng không bao giờ được ép kiểu lẫn nhau.
type Roadmap struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	Topic      string        `gorm:"size:255;not null" json:"topic"`
	Language   string        `gorm:"size:50;not null;default:'English'" json:"language"`
	Difficulty string        `gorm:"size:50;not null;default:'Normal'" json:"difficulty"`
	Interest   *string       `gorm:"size:255" json:"interest"`
	SourceType RoadmapSource `gorm:"type:varchar(20);not null;default:'topic'" json:"source_type"`

	RoadmapJSON datatypes.JSON `gorm:"not null" json:"-"`

	// Chỉ dùng khi SourceType = document
	DocumentID *uuid.UUID `gorm:"type:uuid" json:"document_id"`
	Document   *Document  `gorm:"constraint:OnDelete:SET NULL;" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
