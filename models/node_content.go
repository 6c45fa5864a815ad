package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NodeContent là cache nội dung đã sinh cho một node của lộ trình.
// Khoá (roadmap_id, node_label, mode) là duy nhất: ghi trùng khoá bị từ
// chối, bản ghi đầu tiên là bản chính thức (first-writer-wins).
type NodeContent struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RoadmapID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_node_content_key" json:"roadmap_id"`
	Roadmap   Roadmap   `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	NodeLabel string `gorm:"size:255;not null;uniqueIndex:idx_node_content_key" json:"node_label"`
	Mode      string `gorm:"size:30;not null;uniqueIndex:idx_node_content_key" json:"mode"` // story|deep|exam

	ContentJSON datatypes.JSON `gorm:"not null" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
