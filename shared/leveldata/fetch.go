package leveldata

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxDocumentSize caps a single fetched level or pool document.
const maxDocumentSize = 16 << 20

// Fetcher reads the raw bytes behind a level or pool ref.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// FSFetcher reads refs as slash paths inside a file system (embed.FS,
// os.DirFS, fstest.MapFS).
type FSFetcher struct {
	FS fs.FS
}

func (f FSFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(f.FS, ref)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ref, err)
	}
	return data, nil
}

// HTTPFetcher reads refs as http(s) URLs.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher with a bounded client timeout.
func NewHTTPFetcher() HTTPFetcher {
	return HTTPFetcher{Client: &http.Client{Timeout: 10 * time.Second}}
}

func (f HTTPFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", ref, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: unexpected status: %d", ref, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ref, err)
	}
	return data, nil
}

// FetcherFor picks a fetcher for a user-supplied ref and returns the ref
// rewritten for it: URLs go over HTTP, anything else is read from the local
// directory containing it.
func FetcherFor(ref string) (Fetcher, string, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return NewHTTPFetcher(), ref, nil
	}
	abs, err := filepath.Abs(ref)
	if err != nil {
		return nil, "", fmt.Errorf("resolve %s: %w", ref, err)
	}
	return FSFetcher{FS: os.DirFS(filepath.Dir(abs))}, filepath.Base(abs), nil
}
