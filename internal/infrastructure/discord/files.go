package discord

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FileOpener resolves an attachment reference to a readable file.
type FileOpener func(ctx context.Context, ref string) (name string, body io.ReadCloser, err error)

// NewFileOpener downloads http(s) references and opens "/uploads/..." paths from localDir.
func NewFileOpener(client *http.Client, localDir string) FileOpener {
	if client == nil {
		client = http.DefaultClient
	}
	return func(ctx context.Context, ref string) (string, io.ReadCloser, error) {
		if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
			u, err := url.Parse(ref)
			if err != nil {
				return "", nil, err
			}
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
			if err != nil {
				return "", nil, err
			}
			resp, err := client.Do(req)
			if err != nil {
				return "", nil, err
			}
			if resp.StatusCode >= 300 {
				resp.Body.Close()
				return "", nil, fmt.Errorf("download %s: status %d", ref, resp.StatusCode)
			}
			return path.Base(u.Path), resp.Body, nil
		}

		name := filepath.Base(ref)
		f, err := os.Open(filepath.Join(localDir, name))
		if err != nil {
			return "", nil, err
		}
		return name, f, nil
	}
}
