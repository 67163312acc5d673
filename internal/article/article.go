// Package article loads article text for word picking, either from a plain
// text file or by extracting the readable content of a web page.
package article

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const (
	// maxBodySize limits how much HTML is read from untrusted URLs.
	maxBodySize = 10 * 1024 * 1024

	fetchTimeout = 30 * time.Second
)

// Article is a piece of text to pick words from
type Article struct {
	Title  string
	Text   string
	Source string // file path or URL the text came from
}

// Load reads an article from a plain text file
func Load(path string) (*Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read article file: %w", err)
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("article file %s contains no text", path)
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &Article{Title: title, Text: text, Source: path}, nil
}

// Fetch downloads a web page and extracts its readable article text
func Fetch(ctx context.Context, rawURL string) (*Article, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid article URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// Some sites block requests without a browser-like User-Agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	client := &http.Client{Timeout: fetchTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch article: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read article body: %w", err)
	}
	if len(body) > maxBodySize {
		return nil, fmt.Errorf("article body exceeds %d bytes", maxBodySize)
	}

	return extract(bytes.NewReader(body), parsedURL, rawURL)
}

// extract runs readability over an HTML document
func extract(r io.Reader, pageURL *url.URL, source string) (*Article, error) {
	page, err := readability.FromReader(r, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract article text: %w", err)
	}
	if strings.TrimSpace(page.TextContent) == "" {
		return nil, fmt.Errorf("no readable text found at %s", source)
	}
	return &Article{Title: page.Title, Text: page.TextContent, Source: source}, nil
}
