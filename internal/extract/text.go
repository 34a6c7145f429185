package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// TextExtractor returns file contents verbatim apart from a leading byte order
// mark. Input that is not UTF-8 (UTF-16 with a BOM, legacy single-byte
// encodings) is transcoded first.
type TextExtractor struct{}

func (TextExtractor) Format() Format { return FormatTXT }

func (TextExtractor) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", extractionError(path, FormatTXT, fmt.Errorf("read file: %w", err))
	}

	text, err := decodeText(data)
	if err != nil {
		return "", extractionError(path, FormatTXT, err)
	}

	return text, nil
}

func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return stripBOM(string(data)), nil
	}

	enc, name, _ := charset.DetermineEncoding(data, "text/plain")

	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("transcode from %s: %w", name, err)
	}

	if !utf8.Valid(decoded) {
		return "", fmt.Errorf("transcoded result from %s is not valid UTF-8", name)
	}

	return stripBOM(string(decoded)), nil
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
