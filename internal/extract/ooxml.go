package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// ooxmlPackage is an opened Office Open XML zip container.
type ooxmlPackage struct {
	zr    *zip.ReadCloser
	parts map[string]*zip.File
}

func openPackage(path string) (*ooxmlPackage, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip container: %w", err)
	}

	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}

	return &ooxmlPackage{zr: zr, parts: parts}, nil
}

func (p *ooxmlPackage) Close() error {
	return p.zr.Close()
}

func (p *ooxmlPackage) open(name string) (io.ReadCloser, error) {
	f, ok := p.parts[name]
	if !ok {
		return nil, fmt.Errorf("part %s is missing", name)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open part %s: %w", name, err)
	}

	return rc, nil
}

func (p *ooxmlPackage) unmarshal(name string, v any) error {
	rc, err := p.open(name)
	if err != nil {
		return err
	}
	defer rc.Close()

	if err = newXMLDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("decode part %s: %w", name, err)
	}

	return nil
}

// newXMLDecoder accepts parts declared in encodings other than UTF-8.
func newXMLDecoder(r io.Reader) *xml.Decoder {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	return dec
}

// elementStack tracks local names of open XML elements.
type elementStack []string

func (s *elementStack) push(name string) {
	*s = append(*s, name)
}

func (s *elementStack) pop() {
	if len(*s) > 0 {
		*s = (*s)[:len(*s)-1]
	}
}

func (s elementStack) top() string {
	if len(s) == 0 {
		return ""
	}

	return s[len(s)-1]
}
