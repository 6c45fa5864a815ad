package models

import (
	"time"

	"github.com/google/uuid"
)

// Document là tài liệu học do người dùng upload. Văn bản trích xuất và
// chỉ mục vector được tạo đúng một lần khi upload, không re-index.
type Document struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	OriginalName  string  `gorm:"size:255;not null" json:"original_name"`
	FilePath      string  `gorm:"type:text;not null" json:"file_path"`
	FileType      string  `gorm:"size:50" json:"file_type"`
	FileSize      int64   `json:"file_size"` // bytes
	ExtractedText string  `gorm:"type:text" json:"-"`
	Difficulty    string  `gorm:"size:50;not null;default:'Normal'" json:"difficulty"`
	Interest      *string `gorm:"size:255" json:"interest"`

	// Đường dẫn file chỉ mục vector (sqlite-vec), suy ra từ (user, tên file)
	VectorDBPath string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
