// Package extract turns supported document files into plain text.
//
// The format is chosen from the file extension alone (case-sensitive) and each
// format has exactly one extractor. Extraction is all or nothing: on failure no
// partial text is returned.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	FormatTXT Format = iota + 1
	FormatPDF
	FormatPPTX
	FormatDOCX
)

//nolint:gochecknoglobals // Immutable lookup table.
var formatsByExt = map[string]Format{
	".txt":  FormatTXT,
	".pdf":  FormatPDF,
	".pptx": FormatPPTX,
	".docx": FormatDOCX,
}

func (f Format) String() string {
	switch f {
	case FormatTXT:
		return "txt"
	case FormatPDF:
		return "pdf"
	case FormatPPTX:
		return "pptx"
	case FormatDOCX:
		return "docx"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Ext returns the extension including the leading dot.
func (f Format) Ext() string {
	return "." + f.String()
}

// SupportedExtensions lists accepted extensions in a stable order.
func SupportedExtensions() []string {
	return []string{".txt", ".pdf", ".pptx", ".docx"}
}

// Extractor returns the textual content of the file at path.
type Extractor interface {
	Format() Format
	Extract(path string) (string, error)
}

// FormatOf derives the format from the path's extension.
func FormatOf(path string) (Format, error) {
	ext := filepath.Ext(path)

	format, ok := formatsByExt[ext]
	if !ok {
		return 0, &UnsupportedFormatError{Path: path, Ext: ext}
	}

	return format, nil
}

// Resolve selects the extractor for path without touching the file. It is
// the single entry point front ends use to dispatch a document.
func Resolve(path string) (Extractor, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	return ForFormat(format), nil
}

func ForFormat(format Format) Extractor {
	switch format {
	case FormatTXT:
		return TextExtractor{}
	case FormatPDF:
		return PDFExtractor{}
	case FormatPPTX:
		return PPTXExtractor{}
	case FormatDOCX:
		return DOCXExtractor{}
	default:
		panic(fmt.Sprintf("extract: unknown format %d", int(format)))
	}
}

// UnsupportedFormatError is returned for extensions outside the supported set.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	ext := e.Ext
	if ext == "" {
		ext = "(none)"
	}

	return fmt.Sprintf("unsupported file format %s for %s (supported: %s)",
		ext,
		filepath.Base(e.Path),
		strings.Join(SupportedExtensions(), ", "))
}

// ExtractionError wraps the I/O or parse failure of a single document.
type ExtractionError struct {
	Path   string
	Format Format
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s text from %s: %v", e.Format, filepath.Base(e.Path), e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func extractionError(path string, format Format, err error) error {
	return &ExtractionError{Path: path, Format: format, Err: err}
}
