package services

import (
	"regexp"
	"strings"
)

var (
	reTOC          = regexp.MustCompile(`(?im)^(.*mục lục.*|.*table of contents.*)$`)
	rePageNumber   = regexp.MustCompile(`(?im)^.*(trang|page)[^\d]*\d+.*$`)
	reMultiNewLine = regexp.MustCompile(`\n{3,}`)
)

// PreCleanText xử lý thô văn bản trích xuất trước khi cắt chunk: loại
// mục lục, số trang, dòng trống thừa.
func PreCleanText(text string) string {
	cleaned := reTOC.ReplaceAllString(text, "")
	cleaned = rePageNumber.ReplaceAllString(cleaned, "")
	cleaned = reMultiNewLine.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}
