package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"sync"

	"github.com/goliatone/go-manifest/pkg/manifest"
)

// maxDocumentSize caps remote and piped documents; authored manifests are small.
const maxDocumentSize = 8 << 20

func readFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" || path == "." {
		return nil, errors.New("manifest loader: file path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func fsFetcher(files fs.FS) fetchFunc {
	return func(ctx context.Context, name string) ([]byte, error) {
		if files == nil {
			return nil, errors.New("manifest loader: fs is nil")
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return fs.ReadFile(files, name)
	}
}

// stdinFetcher reads r once. Later loads of the stdin source see the same
// bytes, so a schema piped in once can be decoded more than once.
func stdinFetcher(r io.Reader) fetchFunc {
	var (
		once sync.Once
		data []byte
		err  error
	)
	return func(ctx context.Context, _ string) ([]byte, error) {
		if r == nil {
			return nil, errors.New("manifest loader: stdin is not configured")
		}
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		once.Do(func() {
			data, err = io.ReadAll(io.LimitReader(r, maxDocumentSize))
		})
		if err != nil {
			return nil, fmt.Errorf("manifest loader: read stdin: %w", err)
		}
		return data, nil
	}
}

func httpFetcher(options manifest.LoaderOptions) fetchFunc {
	var client *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if options.RequestTimeout > 0 && clone.Timeout == 0 {
			clone.Timeout = options.RequestTimeout
		}
		client = &clone
	case options.AllowHTTPFallback:
		client = &http.Client{Timeout: options.RequestTimeout}
	}

	return func(ctx context.Context, url string) ([]byte, error) {
		if client == nil {
			return nil, ErrHTTPDisabled
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("manifest loader: %s: unexpected status %s", url, resp.Status)
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	}
}
