package extract

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxDocumentPart = "word/document.xml"

// DOCXExtractor joins the body paragraphs of a Word document with single
// spaces. Paragraphs that are blank after trimming are dropped; paragraphs
// nested in tables or text boxes are not part of the body flow.
type DOCXExtractor struct{}

func (DOCXExtractor) Format() Format { return FormatDOCX }

func (DOCXExtractor) Extract(path string) (string, error) {
	pkg, err := openPackage(path)
	if err != nil {
		return "", extractionError(path, FormatDOCX, err)
	}
	defer pkg.Close()

	rc, err := pkg.open(docxDocumentPart)
	if err != nil {
		return "", extractionError(path, FormatDOCX, err)
	}
	defer rc.Close()

	paragraphs, err := docxParagraphs(rc)
	if err != nil {
		return "", extractionError(path, FormatDOCX, fmt.Errorf("parse %s: %w", docxDocumentPart, err))
	}

	kept := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		if strings.TrimSpace(p) == "" {
			continue
		}
		kept = append(kept, p)
	}

	return strings.Join(kept, " "), nil
}

func docxParagraphs(r io.Reader) ([]string, error) {
	dec := newXMLDecoder(r)

	var (
		stack      elementStack
		paragraphs []string
		current    strings.Builder
		pDepth     int
		inBodyPara bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			parent := stack.top()
			stack.push(t.Name.Local)

			switch t.Name.Local {
			case "p":
				pDepth++
				if pDepth == 1 && parent == "body" {
					inBodyPara = true
					current.Reset()
				}
			case "tab":
				if inBodyPara && pDepth == 1 && parent == "r" {
					current.WriteByte('\t')
				}
			case "br", "cr":
				if inBodyPara && pDepth == 1 && parent == "r" {
					current.WriteByte('\n')
				}
			}

		case xml.EndElement:
			stack.pop()

			if t.Name.Local == "p" {
				if pDepth == 1 && inBodyPara {
					paragraphs = append(paragraphs, current.String())
					inBodyPara = false
				}
				pDepth--
			}

		case xml.CharData:
			if inBodyPara && pDepth == 1 && stack.top() == "t" {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
