package services

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	_ "github.com/mattn/go-sqlite3"
)

// VectorIndex là chỉ mục tương đồng trên embedding của các chunk, lưu
// thành một file SQLite (sqlite-vec) riêng cho mỗi (user, tài liệu).
type VectorIndex struct {
	db       *sql.DB
	path     string
	embedder Embedder
}

// IndexPathFor suy ra đường dẫn file chỉ mục từ (user, tên file gốc).
// Tên file đi qua slug để an toàn với filesystem; cùng input luôn cho
// cùng đường dẫn để load lại được về sau.
func IndexPathFor(dir string, userID uuid.UUID, filename string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s_index.db", userID, slug.Make(filename)))
}

// BuildVectorIndex embed toàn bộ chunk và ghi chỉ mục xuống path.
// File cũ (nếu có) bị ghi đè, không merge.
func BuildVectorIndex(ctx context.Context, path string, chunks []string, embedder Embedder) (*VectorIndex, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("không có chunk nào để đánh chỉ mục")
	}

	// Embed trước khi đụng vào file để xác định số chiều vector
	embeddings := make([][]float32, len(chunks))
	for i, chunk := range chunks {
		vec, err := embedder.Embed(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("embed chunk %d: %w", i, err)
		}
		embeddings[i] = vec
	}
	dim := len(embeddings[0])

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("không tạo được thư mục chỉ mục: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("không ghi đè được chỉ mục cũ: %w", err)
	}

	sqlite_vec.Auto()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("không mở được file chỉ mục: %w", err)
	}

	var vecVersion string
	if err := db.QueryRow("SELECT vec_version()").Scan(&vecVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite-vec không khả dụng: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE chunks (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			seq INTEGER NOT NULL,
			content TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("tạo bảng chunks: %w", err)
	}

	// vec0 dùng rowid kiểu int, map 1-1 với bảng chunks
	createVec := fmt.Sprintf(`CREATE VIRTUAL TABLE chunk_embeddings USING vec0(embedding float[%d])`, dim)
	if _, err := db.Exec(createVec); err != nil {
		db.Close()
		return nil, fmt.Errorf("tạo bảng vec0: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		db.Close()
		return nil, err
	}
	defer tx.Rollback()

	for i, chunk := range chunks {
		res, err := tx.ExecContext(ctx, `INSERT INTO chunks(seq, content) VALUES (?, ?)`, i, chunk)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("ghi chunk %d: %w", i, err)
		}
		rowID, err := res.LastInsertId()
		if err != nil {
			db.Close()
			return nil, err
		}
		blob := serializeFloat32(embeddings[i])
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO chunk_embeddings(rowid, embedding) VALUES (?, ?)`, rowID, blob,
		); err != nil {
			db.Close()
			return nil, fmt.Errorf("ghi embedding chunk %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		db.Close()
		return nil, fmt.Errorf("commit chỉ mục: %w", err)
	}

	return &VectorIndex{db: db, path: path, embedder: embedder}, nil
}

// OpenVectorIndex mở chỉ mục đã build trước đó. Trả ErrNotFound nếu chưa
// có chỉ mục tại path; không bao giờ tự tạo chỉ mục rỗng.
func OpenVectorIndex(path string, embedder Embedder) (*VectorIndex, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("chỉ mục vector tại %s: %w", path, ErrNotFound)
	}

	sqlite_vec.Auto()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("không mở được file chỉ mục: %w", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM chunks`).Scan(&count); err != nil || count == 0 {
		db.Close()
		return nil, fmt.Errorf("chỉ mục vector tại %s trống hoặc hỏng: %w", path, ErrNotFound)
	}

	return &VectorIndex{db: db, path: path, embedder: embedder}, nil
}

// Query trả về k chunk gần nhất với câu truy vấn, theo thứ tự khoảng cách.
func (ix *VectorIndex) Query(ctx context.Context, text string, k int) ([]string, error) {
	if k <= 0 {
		k = 3
	}
	vec, err := ix.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	blob := serializeFloat32(vec)

	rows, err := ix.db.QueryContext(ctx, `
		SELECT c.content
		FROM chunk_embeddings ce
		INNER JOIN chunks c ON c.rowid = ce.rowid
		WHERE ce.embedding MATCH ?
			AND ce.k = ?
		ORDER BY ce.distance
	`, blob, k)
	if err != nil {
		return nil, fmt.Errorf("truy vấn chỉ mục: %w", err)
	}
	defer rows.Close()

	var results []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, err
		}
		results = append(results, content)
	}
	return results, rows.Err()
}

// Leading trả về n chunk đầu tiên theo thứ tự gốc của tài liệu. Dùng cho
// bước sinh lộ trình: lấy mẫu đầu tài liệu thay vì truy vấn tương đồng
// (đánh đổi chi phí, không phải thao tác retrieval).
func (ix *VectorIndex) Leading(ctx context.Context, n int) ([]string, error) {
	rows, err := ix.db.QueryContext(ctx,
		`SELECT content FROM chunks ORDER BY seq LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, err
		}
		results = append(results, content)
	}
	return results, rows.Err()
}

func (ix *VectorIndex) Path() string { return ix.path }

func (ix *VectorIndex) Close() error { return ix.db.Close() }

// serializeFloat32 đổi vector sang BLOB little-endian theo định dạng
// sqlite-vec yêu cầu.
func serializeFloat32(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// LeadingSample ghép n chunk đầu làm ngữ cảnh gieo lộ trình.
func LeadingSample(chunks []string, n int) string {
	if n > len(chunks) {
		n = len(chunks)
	}
	return strings.Join(chunks[:n], "\n")
}
