package services

import "go.uber.org/zap"

// Service gom các collaborator sinh nội dung. Mọi thành phần được inject
// lúc khởi tạo để controller và test thay thế được bằng fake.
type Service struct {
	Gen       TextGenerator
	Embedder  Embedder
	VectorDir string
	Logger    *zap.Logger
}

func NewService(gen TextGenerator, embedder Embedder, vectorDir string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		Gen:       gen,
		Embedder:  embedder,
		VectorDir: vectorDir,
		Logger:    logger,
	}
}
