package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor joins the plain text of every page with newlines. Pages
// without a content stream are skipped.
type PDFExtractor struct{}

func (PDFExtractor) Format() Format { return FormatPDF }

func (PDFExtractor) Extract(path string) (text string, err error) {
	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = extractionError(path, FormatPDF, fmt.Errorf("parse pdf: %v", r))
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", extractionError(path, FormatPDF, fmt.Errorf("open pdf: %w", err))
	}
	defer f.Close()

	total := reader.NumPage()
	pages := make([]string, 0, total)

	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() || page.V.Key("Contents").IsNull() {
			continue
		}

		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			return "", extractionError(path, FormatPDF, fmt.Errorf("read page %d: %w", i, pageErr))
		}

		pages = append(pages, pageText)
	}

	return strings.Join(pages, "\n"), nil
}
