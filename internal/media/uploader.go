// Package media uploads a row's card pictures to a picture host and returns
// their public URLs.
package media

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/goosebones/pokemon/internal/metrics"
	"github.com/goosebones/pokemon/internal/tracing"
)

// Uploader uploads every picture for one row.
type Uploader interface {
	Upload(ctx context.Context, externalID string) ([]string, error)
}

// PictureStore hosts a single picture and returns its public URL.
type PictureStore interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// DirUploader reads pictures from <root>/<externalID> and hands each file to
// a PictureStore in lexical file name order.
type DirUploader struct {
	root    string
	store   PictureStore
	backend string
	log     *slog.Logger
}

// DirOption configures a DirUploader.
type DirOption func(*DirUploader)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) DirOption {
	return func(u *DirUploader) {
		u.log = l
	}
}

// WithBackendLabel sets the backend label used on upload metrics.
func WithBackendLabel(name string) DirOption {
	return func(u *DirUploader) {
		u.backend = name
	}
}

// NewDirUploader creates an uploader rooted at root.
func NewDirUploader(root string, store PictureStore, opts ...DirOption) *DirUploader {
	u := &DirUploader{
		root:    root,
		store:   store,
		backend: "default",
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Upload implements Uploader. Any failure aborts the row and no URLs are
// returned, so a listing never goes out with a partial picture set.
// Hidden files and subdirectories are ignored.
func (u *DirUploader) Upload(ctx context.Context, externalID string) (_ []string, err error) {
	ctx, span := tracing.Start(ctx, "media.Upload",
		attribute.String("media.backend", u.backend),
		attribute.String("row.external_id", externalID),
	)
	defer func() { tracing.End(span, err) }()

	if externalID == "" || strings.ContainsAny(externalID, `/\`) || externalID == ".." {
		return nil, fmt.Errorf("invalid external id %q", externalID)
	}

	dir := filepath.Join(u.root, externalID)
	entries, err := os.ReadDir(dir) // sorted by file name
	if err != nil {
		return nil, fmt.Errorf("reading picture directory %s: %w", dir, err)
	}

	urls := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, e.Name())) //nolint:gosec // path built from configured root
		if err != nil {
			return nil, fmt.Errorf("reading picture %s: %w", e.Name(), err)
		}

		start := time.Now()
		url, err := u.store.Put(ctx, path.Join(externalID, e.Name()), data)
		metrics.PictureUploadDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.PictureUploadsTotal.WithLabelValues(u.backend, "error").Inc()
			return nil, fmt.Errorf("uploading picture %s: %w", e.Name(), err)
		}
		metrics.PictureUploadsTotal.WithLabelValues(u.backend, "ok").Inc()

		u.log.Debug("picture uploaded", "external_id", externalID, "file", e.Name(), "url", url)
		urls = append(urls, url)
	}

	span.SetAttributes(attribute.Int("media.pictures", len(urls)))
	if len(urls) == 0 {
		u.log.Warn("no pictures found", "external_id", externalID, "dir", dir)
	}

	return urls, nil
}
