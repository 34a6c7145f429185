package extract_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"docsum/internal/extract"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    extract.Format
		wantErr bool
	}{
		{path: "notes.txt", want: extract.FormatTXT},
		{path: "/tmp/report.pdf", want: extract.FormatPDF},
		{path: "deck.pptx", want: extract.FormatPPTX},
		{path: "letter.docx", want: extract.FormatDOCX},
		{path: "archive.tar.txt", want: extract.FormatTXT},
		{path: "legacy.rtf", wantErr: true},
		{path: "SCAN.PDF", wantErr: true},
		{path: "README", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := extract.FormatOf(tt.path)

			if tt.wantErr {
				var unsupported *extract.UnsupportedFormatError
				if !errors.As(err, &unsupported) {
					t.Fatalf("expected UnsupportedFormatError, got %v", err)
				}
				if unsupported.Path != tt.path {
					t.Fatalf("unexpected path in error: %q", unsupported.Path)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %s want %s", got, tt.want)
			}
		})
	}
}

func TestUnsupportedFormatErrorMessage(t *testing.T) {
	_, err := extract.FormatOf("/data/README")
	if err == nil {
		t.Fatal("expected error")
	}

	msg := err.Error()
	if !strings.Contains(msg, "(none)") || !strings.Contains(msg, ".docx") {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		path string
		want extract.Extractor
	}{
		{path: "a.txt", want: extract.TextExtractor{}},
		{path: "a.pdf", want: extract.PDFExtractor{}},
		{path: "a.pptx", want: extract.PPTXExtractor{}},
		{path: "a.docx", want: extract.DOCXExtractor{}},
	}

	for _, tt := range tests {
		got, err := extract.Resolve(tt.path)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.path, err)
		}
		if got != tt.want {
			t.Fatalf("%s: got %T want %T", tt.path, got, tt.want)
		}

		format, _ := extract.FormatOf(tt.path)
		if got.Format() != format {
			t.Fatalf("%s: extractor format %s, want %s", tt.path, got.Format(), format)
		}
	}

	if _, err := extract.Resolve("a.md"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestFormatStringAndExt(t *testing.T) {
	if extract.FormatPPTX.String() != "pptx" || extract.FormatPPTX.Ext() != ".pptx" {
		t.Fatalf("unexpected pptx rendering: %s %s", extract.FormatPPTX, extract.FormatPPTX.Ext())
	}

	var exts []string
	for _, f := range []extract.Format{extract.FormatTXT, extract.FormatPDF, extract.FormatPPTX, extract.FormatDOCX} {
		exts = append(exts, f.Ext())
	}

	if !slices.Equal(exts, extract.SupportedExtensions()) {
		t.Fatalf("extensions mismatch: %v vs %v", exts, extract.SupportedExtensions())
	}
}

func TestTextExtractor(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{name: "utf8 verbatim", data: []byte("Line one\n\n  Line two\t"), want: "Line one\n\n  Line two\t"},
		{name: "empty", data: nil, want: ""},
		{name: "cyrillic", data: []byte("Привет, мир"), want: "Привет, мир"},
		{name: "utf16 with bom", data: []byte{0xff, 0xfe, 'h', 0, 'i', 0}, want: "hi"},
		{name: "utf8 with bom", data: []byte("\xef\xbb\xbfhi"), want: "hi"},
		{name: "utf8 bom only", data: []byte("\xef\xbb\xbf  \n"), want: "  \n"},
		{name: "utf16 bom only", data: []byte{0xff, 0xfe, ' ', 0, '\n', 0}, want: " \n"},
		{name: "latin1", data: []byte("caf\xe9"), want: "café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "doc.txt", tt.data)

			got, err := extract.TextExtractor{}.Extract(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestTextExtractorMissingFile(t *testing.T) {
	_, err := extract.TextExtractor{}.Extract("/nonexistent/dir/file.txt")

	var extErr *extract.ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if extErr.Format != extract.FormatTXT {
		t.Fatalf("unexpected format: %s", extErr.Format)
	}
}

func TestDOCXExtractor(t *testing.T) {
	path := writeZip(t, "letter.docx", [][2]string{
		{"[Content_Types].xml", `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`},
		{"word/document.xml", docxDocument},
	})

	got, err := extract.DOCXExtractor{}.Extract(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := "First paragraph. Second\tparagraph."; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDOCXExtractorEmptyBody(t *testing.T) {
	path := writeZip(t, "empty.docx", [][2]string{{"word/document.xml", emptyDocxDocument}})

	got, err := extract.DOCXExtractor{}.Extract(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestDOCXExtractorFailures(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "not a zip",
			path: func(t *testing.T) string { return writeFile(t, "bad.docx", []byte("plain text")) },
		},
		{
			name: "missing document part",
			path: func(t *testing.T) string {
				return writeZip(t, "hollow.docx", [][2]string{{"word/styles.xml", "<w:styles/>"}})
			},
		},
		{
			name: "malformed xml",
			path: func(t *testing.T) string {
				return writeZip(t, "broken.docx", [][2]string{{"word/document.xml", "<w:document><w:body><w:p>"}})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extract.DOCXExtractor{}.Extract(tt.path(t))

			var extErr *extract.ExtractionError
			if !errors.As(err, &extErr) {
				t.Fatalf("expected ExtractionError, got %v", err)
			}
			if extErr.Format != extract.FormatDOCX {
				t.Fatalf("unexpected format: %s", extErr.Format)
			}
			if got != "" {
				t.Fatalf("expected no partial text, got %q", got)
			}
		})
	}
}

func TestPPTXExtractor(t *testing.T) {
	path := writeZip(t, "deck.pptx", [][2]string{
		{"ppt/presentation.xml", pptxPresentation},
		{"ppt/_rels/presentation.xml.rels", pptxPresentationRels},
		{"ppt/slides/slide1.xml", pptxSlideOne},
		{"ppt/slides/slide2.xml", pptxSlideTwo},
	})

	got, err := extract.PPTXExtractor{}.Extract(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The empty frame on the second slide still takes a place in the join.
	if want := "Title\nLine two  Body\ntext"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestPPTXExtractorNoSlides(t *testing.T) {
	path := writeZip(t, "empty.pptx", [][2]string{{"ppt/presentation.xml", emptyPptxPresentation}})

	got, err := extract.PPTXExtractor{}.Extract(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestPPTXExtractorMissingSlide(t *testing.T) {
	path := writeZip(t, "partial.pptx", [][2]string{
		{"ppt/presentation.xml", pptxPresentation},
		{"ppt/_rels/presentation.xml.rels", pptxPresentationRels},
		{"ppt/slides/slide2.xml", pptxSlideTwo},
	})

	got, err := extract.PPTXExtractor{}.Extract(path)

	var extErr *extract.ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if got != "" {
		t.Fatalf("expected no partial text, got %q", got)
	}
}

func TestPDFExtractor(t *testing.T) {
	path := writeFile(t, "report.pdf", buildPDF("Hello first page", "", "Second page here"))

	got, err := extract.PDFExtractor{}.Extract(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	words := strings.Fields(got)
	first := slices.Index(words, "first")
	second := slices.Index(words, "Second")

	if first < 0 || second < 0 {
		t.Fatalf("missing page text in %q", got)
	}
	if first > second {
		t.Fatalf("pages out of order: %q", got)
	}
}

func TestPDFExtractorWithoutText(t *testing.T) {
	path := writeFile(t, "blank.pdf", buildPDF(""))

	got, err := extract.PDFExtractor{}.Extract(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestPDFExtractorNotAPDF(t *testing.T) {
	path := writeFile(t, "fake.pdf", []byte("this is not a pdf at all"))

	got, err := extract.PDFExtractor{}.Extract(path)

	var extErr *extract.ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if extErr.Format != extract.FormatPDF {
		t.Fatalf("unexpected format: %s", extErr.Format)
	}
	if got != "" {
		t.Fatalf("expected no partial text, got %q", got)
	}
}
