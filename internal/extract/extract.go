package extract

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"hirepulse/internal/common"
)

// Text pulls plain text out of an uploaded resume. PDF pages and DOCX content
// are concatenated; any other extension is rejected up front. Parser failures
// surface as the extraction_failed code with empty text so callers can treat
// empty as "no usable text". Pure over bytes: no temp files, no side effects.
func Text(data []byte, filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return pdfText(data)
	case ".docx":
		return docxText(data)
	default:
		return "", common.NewError(common.CodeUnsupportedFormat, "unsupported file format, upload PDF or DOCX", nil)
	}
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", common.NewError(common.CodeExtractionFailed, "could not parse pdf", err)
	}
	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
	}
	return builder.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", common.NewError(common.CodeExtractionFailed, "could not parse docx", err)
	}
	defer doc.Close()
	return stripTags(doc.Editable().GetContent()), nil
}

// stripTags flattens the document XML to plain text. Paragraph closes become
// newlines so word separation survives tokenization.
func stripTags(content string) string {
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	var builder strings.Builder
	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			builder.WriteRune(r)
		}
	}
	replacer := strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'")
	return replacer.Replace(builder.String())
}
