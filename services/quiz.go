package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/vnanh/lotrinh-backend/models"
)

type QuizQuestion struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// AdaptiveInstruction ánh xạ mức thành thạo sang chỉ dẫn sinh câu hỏi.
// Ba bậc rời rạc, chèn nguyên văn vào prompt, không nội suy.
func AdaptiveInstruction(userStatus string) string {
	switch userStatus {
	case models.StatusExpert:
		return "The user is an EXPERT. Generate challenging questions that test deep understanding, edge cases, and application. Avoid simple recall questions."
	case models.StatusCompetent:
		return "The user is COMPETENT. Mix intermediate and advanced questions. Focus on application and analysis."
	default:
		return "The user is a NOVICE. Focus on foundational concepts, definitions, and basic understanding. Keep questions straightforward."
	}
}

const quizPromptTemplate = `You are an expert quiz generator. Create %d multiple choice questions to test the user's understanding of the subtopic.

Target Audience Difficulty: %s
User Proficiency Level: %s
%s
Language: %s

Return ONLY a raw JSON array of objects. Do not include any markdown formatting. Do not include any introductory text.
The structure must be:
[
    {
        "id": 1,
        "question": "Question text here",
        "options": ["Option A", "Option B", "Option C", "Option D"],
        "correct_answer": "The correct option text (must match one of the options exactly)",
        "explanation": "Brief explanation of why this is correct"
    }
]

Create a quiz for the subtopic '%s' which is part of '%s'.`

// GenerateQuizQuestions sinh câu hỏi trắc nghiệm thích ứng theo mức thành
// thạo. Lỗi upstream hay parse đều trả danh sách rỗng: hỏng quiz không
// được làm hỏng luồng nội dung bao quanh.
func (s *Service) GenerateQuizQuestions(ctx context.Context, topic, subtopic, difficulty, language string, numQuestions int, userStatus string) []QuizQuestion {
	if numQuestions <= 0 {
		numQuestions = 5
	}

	prompt := fmt.Sprintf(quizPromptTemplate,
		numQuestions, difficulty, userStatus, AdaptiveInstruction(userStatus), language, subtopic, topic)

	raw, err := s.Gen.Generate(ctx, prompt, GenerateOptions{Temperature: 0.7})
	if err != nil {
		s.Logger.Warn("sinh quiz thất bại", zap.Error(err))
		return []QuizQuestion{}
	}

	data, err := ExtractJSONArray(raw)
	if err != nil {
		s.Logger.Warn("không parse được JSON quiz", zap.Error(err))
		return []QuizQuestion{}
	}

	var questions []QuizQuestion
	if err := json.Unmarshal(data, &questions); err != nil {
		s.Logger.Warn("JSON quiz sai cấu trúc", zap.Error(err))
		return []QuizQuestion{}
	}

	valid := make([]QuizQuestion, 0, len(questions))
	for _, q := range questions {
		if validQuizQuestion(q) {
			valid = append(valid, q)
		}
	}
	return valid
}

// validQuizQuestion kiểm tra bất biến của một câu hỏi: đủ 4 lựa chọn
// khác nhau và đáp án đúng phải trùng khớp một lựa chọn.
func validQuizQuestion(q QuizQuestion) bool {
	if q.Question == "" || len(q.Options) != 4 {
		return false
	}
	seen := map[string]bool{}
	for _, opt := range q.Options {
		if opt == "" || seen[opt] {
			return false
		}
		seen[opt] = true
	}
	return seen[q.CorrectAnswer]
}
