package services

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GenerateOptions điều chỉnh một lượt gọi sinh văn bản.
type GenerateOptions struct {
	Temperature float32
	// ResponseMIMEType = "application/json" khi muốn model trả JSON thuần
	ResponseMIMEType string
}

// TextGenerator là collaborator sinh văn bản, inject vào service để test
// được bằng fake (không dùng client toàn cục).
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// Embedder chuyển văn bản thành vector embedding độ dài cố định.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// GeminiClient hiện thực TextGenerator và Embedder bằng Gemini.
type GeminiClient struct {
	client     *genai.Client
	model      string
	embedModel string
	logger     *zap.Logger
}

func NewGeminiClient(ctx context.Context, apiKey string, logger *zap.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("không thể tạo Gemini client: %w", err)
	}
	return &GeminiClient{
		client:     client,
		model:      "gemini-2.0-flash",
		embedModel: "text-embedding-004",
		logger:     logger,
	}, nil
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(opts.Temperature)
	if opts.ResponseMIMEType != "" {
		model.ResponseMIMEType = opts.ResponseMIMEType
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &UpstreamError{Op: "gemini generate", Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &UpstreamError{Op: "gemini generate", Err: fmt.Errorf("gemini không trả kết quả hợp lệ")}
	}

	out := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	g.logger.Debug("gemini trả kết quả", zap.Int("length", len(out)))
	return out, nil
}

func (g *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	em := g.client.EmbeddingModel(g.embedModel)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, &UpstreamError{Op: "gemini embed", Err: err}
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, &UpstreamError{Op: "gemini embed", Err: fmt.Errorf("embedding rỗng")}
	}
	return res.Embedding.Values, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}
