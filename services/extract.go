package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/ledongthuc/pdf"
)

type InputType string

const (
	InputTXT  InputType = "txt"
	InputDOCX InputType = "docx"
	InputPDF  InputType = "pdf"
)

// InputTypeFromExt ánh xạ phần mở rộng file sang InputType.
func InputTypeFromExt(ext string) (InputType, error) {
	switch strings.ToLower(ext) {
	case ".pdf":
		return InputPDF, nil
	case ".docx":
		return InputDOCX, nil
	case ".txt":
		return InputTXT, nil
	default:
		return "", errors.New("định dạng file không hỗ trợ")
	}
}

// ExtractText trích xuất văn bản thuần từ file upload theo loại input.
func ExtractText(fileHeader *multipart.FileHeader, inputType InputType) (string, error) {
	switch inputType {
	case InputPDF:
		f, err := fileHeader.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		return extractTextFromPDF(f)
	case InputDOCX:
		return extractTextFromDOCX(fileHeader)
	case InputTXT:
		return extractTextFromTXT(fileHeader)
	default:
		return "", errors.New("loại input không được hỗ trợ")
	}
}

func extractTextFromPDF(file multipart.File) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", fmt.Errorf("lỗi đọc file PDF: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		return "", fmt.Errorf("không thể tạo reader PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// Trang lỗi thì bỏ qua, lấy phần còn lại
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// .docx thực chất là file zip chứa word/document.xml; văn bản nằm trong
// các tag <w:t>.
func extractTextFromDOCX(fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, src); err != nil {
		return "", err
	}

	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		return "", fmt.Errorf("không mở được file docx: %w", err)
	}

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("file docx thiếu word/document.xml")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var sb strings.Builder
	decoder := xml.NewDecoder(rc)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "t" {
			var text string
			if err := decoder.DecodeElement(&text, &se); err == nil {
				sb.WriteString(text)
				sb.WriteString(" ")
			}
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

func extractTextFromTXT(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", err
	}
	return buf.String(), nil
}
