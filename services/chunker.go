package services

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// SplitTextIntoChunks cắt văn bản thành các cửa sổ gối nhau, giữ nguyên
// thứ tự gốc. Ghép phần không gối của các cửa sổ theo thứ tự sẽ khôi phục
// lại đúng văn bản ban đầu. Văn bản ngắn hơn một cửa sổ cho đúng một chunk.
func SplitTextIntoChunks(text string, size, overlap int) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = size / 5
	}
	if len(runes) <= size {
		return []string{text}
	}

	step := size - overlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
