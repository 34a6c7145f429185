package extract

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

const (
	pptxPresentationPart = "ppt/presentation.xml"
	pptxPresentationRels = "ppt/_rels/presentation.xml.rels"
	pptxPartRoot         = "ppt"
)

// PPTXExtractor collects the text frames of every slide, in slide order and
// then shape order, joined with single spaces. Every top-level shape with a
// text body contributes, even an empty one; pictures, tables, connectors and
// groups do not.
type PPTXExtractor struct{}

type pptxPresentation struct {
	SlideIDs []struct {
		RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type opcRelationships struct {
	Items []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

func (PPTXExtractor) Format() Format { return FormatPPTX }

func (PPTXExtractor) Extract(filePath string) (string, error) {
	pkg, err := openPackage(filePath)
	if err != nil {
		return "", extractionError(filePath, FormatPPTX, err)
	}
	defer pkg.Close()

	slides, err := pptxSlideParts(pkg)
	if err != nil {
		return "", extractionError(filePath, FormatPPTX, err)
	}

	var fragments []string
	for _, slide := range slides {
		texts, slideErr := pptxSlideTexts(pkg, slide)
		if slideErr != nil {
			return "", extractionError(filePath, FormatPPTX, slideErr)
		}
		fragments = append(fragments, texts...)
	}

	return strings.Join(fragments, " "), nil
}

// pptxSlideParts resolves slide part names in presentation order.
func pptxSlideParts(pkg *ooxmlPackage) ([]string, error) {
	var pres pptxPresentation
	if err := pkg.unmarshal(pptxPresentationPart, &pres); err != nil {
		return nil, err
	}

	if len(pres.SlideIDs) == 0 {
		return nil, nil
	}

	var rels opcRelationships
	if err := pkg.unmarshal(pptxPresentationRels, &rels); err != nil {
		return nil, err
	}

	targets := make(map[string]string, len(rels.Items))
	for _, rel := range rels.Items {
		targets[rel.ID] = rel.Target
	}

	parts := make([]string, 0, len(pres.SlideIDs))
	for _, id := range pres.SlideIDs {
		target, ok := targets[id.RelID]
		if !ok {
			return nil, fmt.Errorf("slide relationship %s is missing", id.RelID)
		}
		parts = append(parts, resolvePartName(target))
	}

	return parts, nil
}

func resolvePartName(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}

	return path.Join(pptxPartRoot, target)
}

func pptxSlideTexts(pkg *ooxmlPackage, part string) ([]string, error) {
	rc, err := pkg.open(part)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	texts, err := slideTextFrames(rc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", part, err)
	}

	return texts, nil
}

func slideTextFrames(r io.Reader) ([]string, error) {
	dec := newXMLDecoder(r)

	var (
		stack      elementStack
		texts      []string
		shapeDepth int
		hasFrame   bool
		inFrame    bool
		inPara     bool
		paragraphs []string
		current    strings.Builder
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

			switch {
			case t.Name.Local == "sp" && parent == "spTree" && shapeDepth == 0:
				shapeDepth = len(stack)
				hasFrame = false
				paragraphs = paragraphs[:0]
			case t.Name.Local == "txBody" && shapeDepth != 0 && len(stack) == shapeDepth+1:
				hasFrame = true
				inFrame = true
			case t.Name.Local == "p" && inFrame && parent == "txBody":
				inPara = true
				current.Reset()
			case t.Name.Local == "br" && inPara:
				current.WriteByte('\n')
			}

		case xml.EndElement:
			depth := len(stack)
			stack.pop()

			switch {
			case t.Name.Local == "p" && inPara && stack.top() == "txBody":
				paragraphs = append(paragraphs, current.String())
				inPara = false
			case t.Name.Local == "txBody" && inFrame && depth == shapeDepth+1:
				inFrame = false
			case t.Name.Local == "sp" && depth == shapeDepth:
				if hasFrame {
					texts = append(texts, strings.Join(paragraphs, "\n"))
				}
				shapeDepth = 0
			}

		case xml.CharData:
			if inPara && stack.top() == "t" {
				current.Write(t)
			}
		}
	}

	return texts, nil
}
