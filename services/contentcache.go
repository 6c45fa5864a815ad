package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vnanh/lotrinh-backend/models"
)

// GetCachedContent tra cache nội dung theo khoá (roadmap, node, mode).
// Trả (nil, false, nil) khi chưa có bản ghi.
func GetCachedContent(db *gorm.DB, roadmapID uuid.UUID, nodeLabel, mode string) (*ContentPayload, bool, error) {
	var row models.NodeContent
	err := db.First(&row, "roadmap_id = ? AND node_label = ? AND mode = ?", roadmapID, nodeLabel, mode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var payload ContentPayload
	if err := json.Unmarshal(row.ContentJSON, &payload); err != nil {
		return nil, false, fmt.Errorf("nội dung cache hỏng: %w", err)
	}
	return &payload, true, nil
}

// PutCachedContent ghi nội dung vào cache. Khoá đã tồn tại trả
// ErrConflict và giữ nguyên bản ghi cũ (first-writer-wins); constraint
// unique của DB bảo đảm tối đa một dòng mỗi khoá, không cần lock thêm.
func PutCachedContent(db *gorm.DB, roadmapID uuid.UUID, nodeLabel, mode string, payload *ContentPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	row := models.NodeContent{
		RoadmapID:   roadmapID,
		NodeLabel:   nodeLabel,
		Mode:        mode,
		ContentJSON: data,
	}
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "roadmap_id"}, {Name: "node_label"}, {Name: "mode"}},
		DoNothing: true,
	}).Create(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}
