// Package download fetches remote documents into the temporary directory.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"mvdan.cc/xurls/v2"

	"docsum/internal/extract"
)

const (
	clientTimeout = 60 * time.Second
	userAgent     = "docsum/1.0"

	// TempFilePattern prefixes every file written by Fetch.
	TempFilePattern = "docsum-*"
)

var ErrTooLarge = errors.New("document exceeds the size limit")

// FindDocumentURLs returns the distinct https URLs in text whose path ends
// with a supported extension, in order of appearance.
func FindDocumentURLs(text string) ([]string, error) {
	httpsURLRe, err := xurls.StrictMatchingScheme("https://")
	if err != nil {
		return nil, fmt.Errorf("create regexp: %w", err)
	}

	var urls []string
	seen := make(map[string]struct{})

	for _, raw := range httpsURLRe.FindAllString(strings.TrimSpace(text), -1) {
		u, parseErr := url.Parse(raw)
		if parseErr != nil {
			continue
		}

		if _, formatErr := extract.FormatOf(u.Path); formatErr != nil {
			continue
		}

		if _, ok := seen[raw]; ok {
			continue
		}
		seen[raw] = struct{}{}
		urls = append(urls, raw)
	}

	return urls, nil
}

// FileName returns the last path segment of rawURL.
func FileName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	return path.Base(u.Path)
}

type Fetcher struct {
	client   *http.Client
	dir      string
	maxBytes int64
	log      *slog.Logger
}

func NewFetcher(dir string, maxBytes int64, log *slog.Logger) *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: clientTimeout},
		dir:      dir,
		maxBytes: maxBytes,
		log:      log,
	}
}

// Fetch downloads rawURL into a new temp file that keeps the extension of
// name and returns its path. The caller owns the file. On failure nothing is
// left on disk.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, name string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req) //nolint:gosec // URL comes from the user or Telegram
	if err != nil {
		// Telegram file URLs embed the bot token.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return "", fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err = resp.Body.Close(); err != nil {
			f.log.ErrorContext(ctx, "Failed to close response body",
				"error", err,
				"name", name,
				"operation", "Fetch")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("do request: unexpected status: %d", resp.StatusCode)
	}

	if resp.ContentLength > f.maxBytes {
		return "", fmt.Errorf("content length %d: %w", resp.ContentLength, ErrTooLarge)
	}

	return f.save(ctx, resp.Body, name)
}

func (f *Fetcher) save(ctx context.Context, r io.Reader, name string) (string, error) {
	file, err := os.CreateTemp(f.dir, TempFilePattern+path.Ext(name))
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	filePath := file.Name()

	written, copyErr := io.Copy(file, io.LimitReader(r, f.maxBytes+1))
	closeErr := file.Close()

	switch {
	case copyErr != nil:
		err = fmt.Errorf("write temp file: %w", copyErr)
	case written > f.maxBytes:
		err = ErrTooLarge
	case closeErr != nil:
		err = fmt.Errorf("close temp file: %w", closeErr)
	}

	if err != nil {
		if removeErr := os.Remove(filePath); removeErr != nil {
			f.log.WarnContext(ctx, "Failed to remove partial download",
				"error", removeErr,
				"path", filePath)
		}
		return "", err
	}

	return filePath, nil
}
