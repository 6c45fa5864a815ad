package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeGen trả sẵn một chuỗi hoặc lỗi, ghi lại prompt cuối cùng.
type fakeGen struct {
	resp       string
	err        error
	lastPrompt string
	calls      int
}

func (f *fakeGen) Generate(_ context.Context, prompt string, _ GenerateOptions) (string, error) {
	f.lastPrompt = prompt
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.resp, nil
}

// fakeEmbedder sinh vector cố định theo nội dung, cùng văn bản cho cùng
// vector để truy vấn trùng khớp trả đúng chunk gốc.
type fakeEmbedder struct{}

func (fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	var sum, alt float32
	for i, r := range text {
		sum += float32(r % 101)
		if i%2 == 0 {
			alt += float32(r % 53)
		}
	}
	return []float32{float32(len(text)), sum, alt, 1}, nil
}

func newTestService(gen TextGenerator) *Service {
	return NewService(gen, fakeEmbedder{}, "", zap.NewNop())
}

// newTestDB dựng sqlite in-memory với DDL tối giản khớp tên cột gorm.
// Không dùng AutoMigrate vì default gen_random_uuid() là hàm Postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	ddl := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			full_name TEXT, email TEXT, password TEXT, role TEXT, status INTEGER,
			created_at DATETIME, updated_at DATETIME
		)`,
		`CREATE TABLE documents (
			id TEXT PRIMARY KEY,
			user_id TEXT, original_name TEXT, file_path TEXT, file_type TEXT,
			file_size INTEGER, extracted_text TEXT, difficulty TEXT, interest TEXT,
			vector_db_path TEXT, created_at DATETIME, updated_at DATETIME
		)`,
		`CREATE TABLE roadmaps (
			id TEXT PRIMARY KEY,
			user_id TEXT, topic TEXT, language TEXT, difficulty TEXT, interest TEXT,
			source_type TEXT, roadmap_json TEXT, document_id TEXT, created_at DATETIME
		)`,
		`CREATE TABLE node_contents (
			id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
			roadmap_id TEXT NOT NULL, node_label TEXT NOT NULL, mode TEXT NOT NULL,
			content_json TEXT NOT NULL, created_at DATETIME,
			UNIQUE(roadmap_id, node_label, mode)
		)`,
		`CREATE TABLE user_knowledges (
			id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
			user_id TEXT NOT NULL, topic TEXT NOT NULL, subtopic TEXT NOT NULL,
			mastery_score INTEGER DEFAULT 0, status TEXT DEFAULT 'novice',
			last_updated DATETIME,
			UNIQUE(user_id, topic, subtopic)
		)`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}
