package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextInterviewTurnOpening(t *testing.T) {
	gen := &fakeGen{resp: `{"question": "Goroutine khác thread ở điểm nào?"}`}
	svc := newTestService(gen)

	turn, err := svc.NextInterviewTurn(context.Background(), "Go", "Normal", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Goroutine khác thread ở điểm nào?", turn.Question)
	assert.Nil(t, turn.Score)
	assert.Empty(t, turn.NextQuestion)

	// Lượt mở màn dùng prompt hỏi một câu, không có phần chấm điểm
	assert.Contains(t, gen.lastPrompt, "Ask ONE interview question only")
	assert.NotContains(t, gen.lastPrompt, "Candidate Answer")
}

func TestNextInterviewTurnFollowUp(t *testing.T) {
	gen := &fakeGen{resp: `{
		"score": 7,
		"feedback": "Trả lời đúng ý chính nhưng thiếu ví dụ.",
		"next_question": "Channel có buffer hoạt động ra sao?"
	}`}
	svc := newTestService(gen)

	turn, err := svc.NextInterviewTurn(context.Background(), "Go", "Normal",
		"Goroutine khác thread ở điểm nào?", "Goroutine nhẹ hơn, do runtime lập lịch.")
	require.NoError(t, err)
	require.NotNil(t, turn.Score)
	assert.Equal(t, 7, *turn.Score)
	assert.Contains(t, turn.Feedback, "thiếu ví dụ")
	assert.Equal(t, "Channel có buffer hoạt động ra sao?", turn.NextQuestion)

	// Prompt lượt sau phải chứa câu hỏi trước và câu trả lời của ứng viên
	assert.Contains(t, gen.lastPrompt, "Goroutine khác thread ở điểm nào?")
	assert.Contains(t, gen.lastPrompt, "do runtime lập lịch")
}

func TestNextInterviewTurnFencedOutput(t *testing.T) {
	gen := &fakeGen{resp: "```json\n{\"question\": \"Slice và array khác gì nhau?\"}\n```"}
	svc := newTestService(gen)

	turn, err := svc.NextInterviewTurn(context.Background(), "Go", "Normal", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Slice và array khác gì nhau?", turn.Question)
}

func TestNextInterviewTurnGarbageDegrades(t *testing.T) {
	gen := &fakeGen{resp: "hôm nay tôi không phỏng vấn được"}
	svc := newTestService(gen)

	turn, err := svc.NextInterviewTurn(context.Background(), "Go", "Normal", "", "")
	require.NoError(t, err)
	assert.Empty(t, turn.Question)
	assert.Nil(t, turn.Score)
}

func TestNextInterviewTurnUpstreamSurfaced(t *testing.T) {
	gen := &fakeGen{err: &UpstreamError{Op: "gemini generate", Err: errors.New("timeout")}}
	svc := newTestService(gen)

	_, err := svc.NextInterviewTurn(context.Background(), "Go", "Normal", "", "")
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
}
