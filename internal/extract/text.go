package extract

import (
	"context"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Acquire returns a best-effort plain-text rendering of the PDF at path:
// the embedded text layer when one exists, OCR of rasterized pages
// otherwise. The result may be empty; callers treat that as "no
// questions found", not an error.
func Acquire(ctx context.Context, path string, ocr *OCR) string {
	text := textLayer(path)
	if strings.TrimSpace(text) != "" {
		return text
	}

	if ocr == nil {
		return ""
	}
	text, err := ocr.ExtractPDF(ctx, path)
	if err != nil {
		log.Printf("OCR fallback failed for %s: %v", path, err)
		return ""
	}
	return text
}

// textLayer extracts the embedded text layer page by page. A page that
// fails to decode contributes nothing; the remaining pages are still
// extracted.
func textLayer(path string) string {
	f, reader, err := pdf.Open(path)
	if err != nil {
		log.Printf("failed to open PDF %s: %v", path, err)
		return ""
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("failed to extract text from page %d of %s: %v", i, path, err)
			continue
		}
		sb.WriteString(text)
		sb.WriteByte('\n')
	}
	return sb.String()
}
