package services

import (
	"errors"
	"fmt"
)

// Lỗi dữ liệu: phải nổi lên cho caller, không được nuốt.
var (
	ErrNotFound = errors.New("không tìm thấy tài nguyên")
	ErrConflict = errors.New("bản ghi đã tồn tại")
)

// UpstreamError: dịch vụ sinh văn bản / embedding không phản hồi hoặc
// trả lỗi. Caller coi đây là lỗi dịch vụ có thể thử lại.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("lỗi dịch vụ upstream (%s): %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ParseError: không khôi phục được JSON hợp lệ từ phản hồi của model.
// Giữ lại Raw để debug. Caller tự chọn giá trị fallback rỗng, không
// được đẩy lỗi này ra người dùng cuối.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("không parse được output của model: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError: JSON parse được nhưng sai cấu trúc mong đợi.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "cấu trúc dữ liệu không hợp lệ: " + e.Msg
}
