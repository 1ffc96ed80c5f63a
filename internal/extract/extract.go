package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

const mimePDF = "application/pdf"

// IsPDF reports whether an uploaded blueprint blob is a PDF sheet, checking
// the declared content type, the file extension and the magic bytes.
func IsPDF(contentType, fileName string, data []byte) bool {
	if strings.EqualFold(strings.TrimSpace(contentType), mimePDF) {
		return true
	}
	if strings.EqualFold(filepath.Ext(fileName), ".pdf") {
		return true
	}
	return bytes.HasPrefix(data, []byte("%PDF"))
}

// SheetText extracts embedded text from a blueprint PDF sheet (panel
// schedules, legends, keyed notes). Scanned PDFs with no text layer yield an
// empty string, not an error.
// Library used: github.com/ledongthuc/pdf.
func SheetText(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty pdf data")
	}

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("sheet text: %w", err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("sheet text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("sheet text: read: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
