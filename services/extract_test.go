package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputTypeFromExt(t *testing.T) {
	cases := map[string]InputType{
		".pdf":  InputPDF,
		".PDF":  InputPDF,
		".docx": InputDOCX,
		".txt":  InputTXT,
	}
	for ext, want := range cases {
		got, err := InputTypeFromExt(ext)
		require.NoError(t, err, ext)
		assert.Equal(t, want, got, ext)
	}

	_, err := InputTypeFromExt(".mp3")
	require.Error(t, err)
	_, err = InputTypeFromExt("")
	require.Error(t, err)
}

func TestPreCleanText(t *testing.T) {
	raw := "MỤC LỤC\nChương 1: Mở đầu\nTrang 1\n\n\n\n\nNội dung chính của chương.\nPage 2\nKết luận."
	cleaned := PreCleanText(raw)

	assert.NotContains(t, cleaned, "MỤC LỤC")
	assert.NotContains(t, cleaned, "Trang 1")
	assert.NotContains(t, cleaned, "Page 2")
	assert.NotContains(t, cleaned, "\n\n\n")
	assert.Contains(t, cleaned, "Nội dung chính của chương.")
	assert.Contains(t, cleaned, "Chương 1: Mở đầu")
}

func TestPreCleanTextEmpty(t *testing.T) {
	assert.Equal(t, "", PreCleanText("  \n\n  "))
}
