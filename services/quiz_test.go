package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnanh/lotrinh-backend/models"
)

func TestAdaptiveInstructionThreeDistinctTiers(t *testing.T) {
	novice := AdaptiveInstruction(models.StatusNovice)
	competent := AdaptiveInstruction(models.StatusCompetent)
	expert := AdaptiveInstruction(models.StatusExpert)

	assert.NotEqual(t, novice, expert)
	assert.NotEqual(t, novice, competent)
	assert.NotEqual(t, competent, expert)

	// Trạng thái lạ rơi về bậc novice
	assert.Equal(t, novice, AdaptiveInstruction("không rõ"))
}

func TestGenerateQuizQuestionsPromptVariesByStatus(t *testing.T) {
	gen := &fakeGen{resp: "[]"}
	svc := newTestService(gen)

	svc.GenerateQuizQuestions(context.Background(), "Go", "Goroutines", "Normal", "English", 5, models.StatusNovice)
	novicePrompt := gen.lastPrompt

	svc.GenerateQuizQuestions(context.Background(), "Go", "Goroutines", "Normal", "English", 5, models.StatusExpert)
	expertPrompt := gen.lastPrompt

	assert.NotEqual(t, novicePrompt, expertPrompt)
	assert.Contains(t, expertPrompt, "EXPERT")
	assert.Contains(t, novicePrompt, "NOVICE")
}

func TestGenerateQuizQuestionsValidatesQuestions(t *testing.T) {
	// Câu 2 thiếu lựa chọn, câu 3 có đáp án không nằm trong options:
	// cả hai phải bị loại
	gen := &fakeGen{resp: `[
		{"id": 1, "question": "1+1?", "options": ["1","2","3","4"], "correct_answer": "2", "explanation": "cơ bản"},
		{"id": 2, "question": "thiếu options", "options": ["a","b"], "correct_answer": "a", "explanation": ""},
		{"id": 3, "question": "sai đáp án", "options": ["a","b","c","d"], "correct_answer": "e", "explanation": ""}
	]`}
	svc := newTestService(gen)

	questions := svc.GenerateQuizQuestions(context.Background(), "Toán", "Cộng", "Normal", "Vietnamese", 3, models.StatusNovice)

	require.Len(t, questions, 1)
	q := questions[0]
	assert.Len(t, q.Options, 4)
	assert.Contains(t, q.Options, q.CorrectAnswer)
}

func TestGenerateQuizQuestionsUpstreamFailure(t *testing.T) {
	gen := &fakeGen{err: &UpstreamError{Op: "test", Err: errors.New("timeout")}}
	svc := newTestService(gen)

	questions := svc.GenerateQuizQuestions(context.Background(), "Go", "Slices", "Normal", "English", 5, models.StatusCompetent)
	assert.NotNil(t, questions)
	assert.Empty(t, questions)
}

func TestGenerateQuizQuestionsGarbageOutput(t *testing.T) {
	gen := &fakeGen{resp: "xin lỗi, hôm nay tôi không tạo được quiz"}
	svc := newTestService(gen)

	questions := svc.GenerateQuizQuestions(context.Background(), "Go", "Maps", "Normal", "English", 5, models.StatusNovice)
	assert.Empty(t, questions)
}

func TestValidQuizQuestionDuplicateOptions(t *testing.T) {
	q := QuizQuestion{
		Question:      "trùng lựa chọn?",
		Options:       []string{"a", "a", "b", "c"},
		CorrectAnswer: "a",
	}
	assert.False(t, validQuizQuestion(q))
}
