package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vnanh/lotrinh-backend/models"
)

// ContentRequest là một yêu cầu sinh nội dung cho một node lộ trình.
type ContentRequest struct {
	RoadmapID  uuid.UUID
	UserID     uuid.UUID // chủ sở hữu lộ trình, lấy từ token
	Subtopic   string
	Mode       string // story|deep|exam
	Difficulty string
	Language   string
	Interest   *string
}

// ContentPayload là dạng phản hồi chuẩn cho mọi nguồn sinh nội dung.
type ContentPayload struct {
	Content       string         `json:"content"`
	Images        []string       `json:"images"`
	Videos        []string       `json:"videos"`
	QuizQuestions []QuizQuestion `json:"quiz_questions"`
}

func emptyContentPayload() *ContentPayload {
	return &ContentPayload{
		Content:       "",
		Images:        []string{},
		Videos:        []string{},
		QuizQuestions: []QuizQuestion{},
	}
}

// GenerateNodeContent chạy luồng: xác nhận lộ trình thuộc về người gọi →
// kiểm tra cache → chọn nguồn sinh theo provenance → sinh → ghi cache.
// Chỉ bước ghi cache có side effect; kiểm tra cache luôn xong trước khi
// sinh (không sinh đón đầu).
func (s *Service) GenerateNodeContent(ctx context.Context, db *gorm.DB, req ContentRequest) (*ContentPayload, error) {
	// Lọc theo chủ sở hữu: lộ trình của người khác coi như không tồn tại
	var roadmap models.Roadmap
	if err := db.Preload("Document").
		First(&roadmap, "id = ? AND user_id = ?", req.RoadmapID, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("roadmap %s: %w", req.RoadmapID, ErrNotFound)
		}
		return nil, err
	}

	if cached, ok, err := GetCachedContent(db, req.RoadmapID, req.Subtopic, req.Mode); err != nil {
		return nil, err
	} else if ok {
		return cached, nil
	}

	var payload *ContentPayload
	var err error
	switch roadmap.SourceType {
	case models.SourceDocument:
		if roadmap.Document != nil && roadmap.Document.VectorDBPath != "" {
			payload, err = s.ragNodeContent(ctx, &roadmap, req)
		} else {
			// Tài liệu không còn chỉ mục: rơi về sinh mở
			payload, err = s.openNodeContent(ctx, db, &roadmap, req)
		}
	case models.SourceTopic:
		payload, err = s.openNodeContent(ctx, db, &roadmap, req)
	default:
		return nil, &ValidationError{Msg: "source_type không xác định: " + string(roadmap.SourceType)}
	}
	if err != nil {
		return nil, err
	}

	// Request đã bị huỷ thì không được để lại dòng cache dở dang
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := PutCachedContent(db, req.RoadmapID, req.Subtopic, req.Mode, payload); err != nil {
		if errors.Is(err, ErrConflict) {
			// Người ghi trước thắng: bản đã có là bản chính thức
			if cached, ok, getErr := GetCachedContent(db, req.RoadmapID, req.Subtopic, req.Mode); getErr == nil && ok {
				return cached, nil
			}
			return payload, nil
		}
		return nil, err
	}
	return payload, nil
}

// ragNodeContent: mở chỉ mục vector của tài liệu và sinh nội dung bám
// ngữ cảnh. Thiếu chỉ mục là lỗi toàn vẹn dữ liệu, nổi lên 404.
func (s *Service) ragNodeContent(ctx context.Context, roadmap *models.Roadmap, req ContentRequest) (*ContentPayload, error) {
	index, err := OpenVectorIndex(roadmap.Document.VectorDBPath, s.Embedder)
	if err != nil {
		return nil, err
	}
	defer index.Close()

	interest := req.Interest
	if interest == nil {
		interest = roadmap.Interest
	}
	return s.GenerateRAGContent(ctx, index, req.Subtopic, req.Difficulty, interest)
}

// openNodeContent: sinh mở có điều chỉnh theo mức thành thạo của người
// học với (topic, subtopic).
func (s *Service) openNodeContent(ctx context.Context, db *gorm.DB, roadmap *models.Roadmap, req ContentRequest) (*ContentPayload, error) {
	userStatus := models.StatusNovice
	var knowledge models.UserKnowledge
	err := db.First(&knowledge, "user_id = ? AND topic = ? AND subtopic = ?",
		roadmap.UserID, roadmap.Topic, req.Subtopic).Error
	if err == nil {
		userStatus = knowledge.Status
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return s.GenerateOpenContent(ctx, roadmap.Topic, req.Subtopic, req.Mode,
		req.Difficulty, req.Language, req.Interest, userStatus)
}

const openContentPromptTemplate = `You are a personal tutor creating a lesson about the subtopic '%s' (part of the broader topic '%s').

Target Audience Difficulty: %s
User Proficiency Level: %s
Presentation Mode: %s
Language: %s
%s

Presentation modes:
- story: explain through an engaging narrative with real-world analogies.
- deep: a thorough technical explanation with precise terminology.
- exam: a concise revision summary followed by practice quiz questions.

Return ONLY a valid JSON object with this structure:
{
    "content": "The lesson body in Markdown",
    "images": ["optional image search keywords"],
    "videos": ["optional video search keywords"],
    "quiz_questions": [
        {
            "id": 1,
            "question": "...",
            "options": ["A", "B", "C", "D"],
            "correct_answer": "the exact text of the correct option",
            "explanation": "..."
        }
    ]
}

Only include quiz_questions for the exam mode, otherwise return an empty array.
Write the lesson in %s language.`

// GenerateOpenContent sinh nội dung không dựa tài liệu. Output JSON đi
// qua extractor; parse hỏng hạ cấp về payload rỗng hợp lệ, không bao giờ
// trả lỗi parse cho caller.
func (s *Service) GenerateOpenContent(ctx context.Context, topic, subtopic, mode, difficulty, language string, interest *string, userStatus string) (*ContentPayload, error) {
	interestLine := ""
	if interest != nil && *interest != "" {
		interestLine = fmt.Sprintf("Connect examples to the user's interest: '%s'.", *interest)
	}

	prompt := fmt.Sprintf(openContentPromptTemplate,
		subtopic, topic, difficulty, userStatus, mode, language, interestLine, language)

	raw, err := s.Gen.Generate(ctx, prompt, GenerateOptions{
		Temperature:      0.7,
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, err
	}

	data, err := ExtractJSONObject(raw)
	if err != nil {
		s.Logger.Warn("không parse được nội dung sinh mở, trả payload rỗng",
			zap.String("subtopic", subtopic), zap.Error(err))
		return emptyContentPayload(), nil
	}

	var payload ContentPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		s.Logger.Warn("JSON nội dung sai cấu trúc, trả payload rỗng",
			zap.String("subtopic", subtopic), zap.Error(err))
		return emptyContentPayload(), nil
	}

	if payload.Images == nil {
		payload.Images = []string{}
	}
	if payload.Videos == nil {
		payload.Videos = []string{}
	}
	if payload.QuizQuestions == nil {
		payload.QuizQuestions = []QuizQuestion{}
	}
	return &payload, nil
}
