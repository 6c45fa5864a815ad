package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnanh/lotrinh-backend/services"
)

type InterviewInput struct {
	Topic            string `json:"topic" binding:"required"`
	Difficulty       string `json:"difficulty"`
	PreviousQuestion string `json:"previous_question"`
	Answer           string `json:"answer"`
}

// Interview chạy một lượt phỏng vấn thử. Không gửi previous_question thì
// nhận câu hỏi mở màn; gửi kèm answer thì nhận điểm, nhận xét và câu hỏi
// kế tiếp. Trạng thái vòng phỏng vấn do client giữ, server không lưu.
func Interview(c *gin.Context) {
	svc := c.MustGet("services").(*services.Service)

	var input InterviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Difficulty == "" {
		input.Difficulty = "Normal"
	}

	turn, err := svc.NextInterviewTurn(c.Request.Context(),
		input.Topic, input.Difficulty, input.PreviousQuestion, input.Answer)
	if err != nil {
		var upstream *services.UpstreamError
		if errors.As(err, &upstream) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Dịch vụ sinh nội dung không phản hồi"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không tạo được lượt phỏng vấn"})
		return
	}

	c.JSON(http.StatusOK, turn)
}
