// SPDX-License-Identifier: MIT

package ibge

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/renameio/v2"

	xlog "github.com/geodatabr/geodatabr/internal/log"
)

const (
	// maxArchiveSize caps the downloaded archive to guard against a
	// misbehaving upstream.
	maxArchiveSize = 256 << 20
	// maxMemberSize caps the extracted spreadsheet (zip bomb guard).
	maxMemberSize = 512 << 20
)

// Client downloads DTB base archives and caches the extracted spreadsheet.
type Client struct {
	http     *http.Client
	cacheDir string
}

// NewClient returns a client caching extracted spreadsheets under cacheDir.
// An empty cacheDir disables caching.
func NewClient(cacheDir string) *Client {
	return &Client{
		http:     &http.Client{Timeout: 5 * time.Minute},
		cacheDir: cacheDir,
	}
}

// Fetch returns the spreadsheet bytes for the given base, from cache when
// present, otherwise downloading the archive and extracting the spreadsheet
// member.
func (c *Client) Fetch(ctx context.Context, base Base) ([]byte, error) {
	logger := xlog.WithComponentFromContext(ctx, "ibge")

	if c.cacheDir != "" {
		cached := c.cachePath(base)
		if data, err := os.ReadFile(cached); err == nil { // #nosec G304 -- path is under our cache dir
			logger.Debug().
				Str("event", "base.cache_hit").
				Int("year", base.Year).
				Str("path", cached).
				Msg("using cached base")
			return data, nil
		}
	}

	data, err := c.download(ctx, base)
	if err != nil {
		return nil, err
	}

	if c.cacheDir != "" {
		if err := c.cache(base, data); err != nil {
			logger.Warn().
				Err(err).
				Str("event", "base.cache_error").
				Int("year", base.Year).
				Msg("failed to cache base, continuing without cache")
		}
	}
	return data, nil
}

func (c *Client) download(ctx context.Context, base Base) ([]byte, error) {
	logger := xlog.WithComponentFromContext(ctx, "ibge")
	logger.Info().
		Str("event", "base.download").
		Int("year", base.Year).
		Str("url", base.Archive).
		Msg("retrieving base archive")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.Archive, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download archive for %d: %w", base.Year, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download archive for %d: unexpected status %s", base.Year, res.Status)
	}

	archive, err := io.ReadAll(io.LimitReader(res.Body, maxArchiveSize))
	if err != nil {
		return nil, fmt.Errorf("read archive body: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	member, err := zr.Open(base.File)
	if err != nil {
		return nil, fmt.Errorf("archive member %q: %w", base.File, err)
	}
	defer func() { _ = member.Close() }()

	data, err := io.ReadAll(io.LimitReader(member, maxMemberSize))
	if err != nil {
		return nil, fmt.Errorf("extract %q: %w", base.File, err)
	}

	logger.Info().
		Str("event", "base.extracted").
		Int("year", base.Year).
		Str("file", base.File).
		Int("bytes", len(data)).
		Msg("base spreadsheet extracted")
	return data, nil
}

func (c *Client) cachePath(base Base) string {
	name := strconv.Itoa(base.Year) + "." + base.Format
	return filepath.Join(c.cacheDir, name)
}

func (c *Client) cache(base Base, data []byte) error {
	if err := os.MkdirAll(c.cacheDir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := renameio.WriteFile(c.cachePath(base), data, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}
