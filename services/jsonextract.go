package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONObject khôi phục một object JSON hợp lệ từ phản hồi tự do
// của model (có thể kèm lời dẫn, code fence, văn bản thừa).
func ExtractJSONObject(raw string) ([]byte, error) {
	return extractJSON(raw, '{', '}')
}

// ExtractJSONArray tương tự ExtractJSONObject nhưng cho mảng JSON.
func ExtractJSONArray(raw string) ([]byte, error) {
	return extractJSON(raw, '[', ']')
}

func extractJSON(raw string, opening, closing byte) ([]byte, error) {
	s := strings.TrimSpace(raw)

	// Ưu tiên khối ```json, nếu không có thì lấy khối ``` bất kỳ
	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	} else if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+len("```"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	}

	// Cắt từ dấu mở đầu tiên đến dấu đóng cuối cùng của đúng loại container
	start := strings.IndexByte(s, opening)
	end := strings.LastIndexByte(s, closing)
	if start >= 0 && end > start {
		s = s[start : end+1]
	}

	s = strings.TrimSpace(s)
	if s == "" || s[0] != opening || !json.Valid([]byte(s)) {
		return nil, &ParseError{Raw: raw, Err: fmt.Errorf("không tìm thấy JSON hợp lệ")}
	}
	return []byte(s), nil
}
