package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexPathForDeterministic(t *testing.T) {
	userID := uuid.MustParse("3f2c8a1e-0d4b-4f6a-9c7e-1b2a3c4d5e6f")

	p1 := IndexPathFor("vector_stores", userID, "giáo trình (bản cuối).pdf")
	p2 := IndexPathFor("vector_stores", userID, "giáo trình (bản cuối).pdf")

	assert.Equal(t, p1, p2)
	// Tên file đi qua slug: bỏ dấu tiếng Việt, không còn ký tự không an
	// toàn cho filesystem
	assert.Contains(t, p1, "giao-trinh")
	assert.NotContains(t, filepath.Base(p1), "(")
	assert.NotContains(t, filepath.Base(p1), " ")
	assert.Contains(t, p1, userID.String())
	assert.Contains(t, p1, "_index.db")
}

func TestBuildOpenQueryVectorIndex(t *testing.T) {
	dir := t.TempDir()
	path := IndexPathFor(dir, uuid.New(), "bai-giang.pdf")
	chunks := []string{
		"Chương 1: Goroutines là đơn vị thực thi nhẹ của Go.",
		"Chương 2: Channels dùng để giao tiếp giữa các goroutine.",
		"Chương 3: Mutex bảo vệ dữ liệu dùng chung.",
	}

	built, err := BuildVectorIndex(context.Background(), path, chunks, fakeEmbedder{})
	require.NoError(t, err)
	require.NoError(t, built.Close())

	index, err := OpenVectorIndex(path, fakeEmbedder{})
	require.NoError(t, err)
	defer index.Close()

	// Truy vấn bằng đúng văn bản của một chunk: embedding trùng khớp nên
	// chunk đó phải đứng đầu kết quả
	results, err := index.Query(context.Background(), chunks[1], 2)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, chunks[1], results[0])
	assert.LessOrEqual(t, len(results), 2)
}

func TestVectorIndexLeadingKeepsDocumentOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "order_index.db")
	chunks := []string{"phần một", "phần hai", "phần ba", "phần bốn"}

	index, err := BuildVectorIndex(context.Background(), path, chunks, fakeEmbedder{})
	require.NoError(t, err)
	defer index.Close()

	leading, err := index.Leading(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"phần một", "phần hai", "phần ba"}, leading)
}

func TestOpenVectorIndexMissingFile(t *testing.T) {
	_, err := OpenVectorIndex(filepath.Join(t.TempDir(), "chua-build.db"), fakeEmbedder{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBuildVectorIndexEmptyChunks(t *testing.T) {
	_, err := BuildVectorIndex(context.Background(), filepath.Join(t.TempDir(), "rong.db"), nil, fakeEmbedder{})
	require.Error(t, err)
}

func TestBuildVectorIndexOverwritesOldFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "re_index.db")

	first, err := BuildVectorIndex(context.Background(), path, []string{"bản cũ"}, fakeEmbedder{})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := BuildVectorIndex(context.Background(), path, []string{"bản mới A", "bản mới B"}, fakeEmbedder{})
	require.NoError(t, err)
	defer second.Close()

	leading, err := second.Leading(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"bản mới A", "bản mới B"}, leading)
}

func TestLeadingSample(t *testing.T) {
	chunks := []string{"a", "b", "c"}
	assert.Equal(t, "a\nb", LeadingSample(chunks, 2))
	// n vượt quá số chunk thì lấy tất cả
	assert.Equal(t, "a\nb\nc", LeadingSample(chunks, 10))
}
