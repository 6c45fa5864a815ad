package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// InterviewTurn là một lượt phỏng vấn thử. Lượt mở đầu chỉ có Question;
// các lượt sau có chấm điểm, nhận xét và câu hỏi kế tiếp.
type InterviewTurn struct {
	Question     string `json:"question,omitempty"`
	Score        *int   `json:"score,omitempty"` // 0..10, nil ở lượt mở đầu
	Feedback     string `json:"feedback,omitempty"`
	NextQuestion string `json:"next_question,omitempty"`
}

const interviewOpenPromptTemplate = `You are an interview examiner.

Ask ONE interview question only.
Topic: %s
Difficulty: %s

Respond in JSON only:
{ "question": "..." }`

const interviewFollowUpPromptTemplate = `You are an interview examiner.

Previous Question:
%s

Candidate Answer:
%s

Evaluate briefly and ask next question.

Respond in JSON only:
{
  "score": 0,
  "feedback": "...",
  "next_question": "..."
}`

// NextInterviewTurn điều khiển vòng phỏng vấn thử: chưa có câu hỏi trước
// thì mở màn bằng một câu hỏi, có rồi thì chấm câu trả lời và hỏi tiếp.
// Lỗi upstream nổi lên; output không parse được hạ cấp về lượt rỗng.
func (s *Service) NextInterviewTurn(ctx context.Context, topic, difficulty, previousQuestion, answer string) (*InterviewTurn, error) {
	var prompt string
	if previousQuestion == "" {
		prompt = fmt.Sprintf(interviewOpenPromptTemplate, topic, difficulty)
	} else {
		prompt = fmt.Sprintf(interviewFollowUpPromptTemplate, previousQuestion, answer)
	}

	raw, err := s.Gen.Generate(ctx, prompt, GenerateOptions{
		Temperature:      0.7,
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, err
	}

	data, err := ExtractJSONObject(raw)
	if err != nil {
		s.Logger.Warn("không parse được lượt phỏng vấn, trả lượt rỗng",
			zap.String("topic", topic), zap.Error(err))
		return &InterviewTurn{}, nil
	}

	var turn InterviewTurn
	if err := json.Unmarshal(data, &turn); err != nil {
		s.Logger.Warn("JSON lượt phỏng vấn sai cấu trúc, trả lượt rỗng",
			zap.String("topic", topic), zap.Error(err))
		return &InterviewTurn{}, nil
	}
	return &turn, nil
}
