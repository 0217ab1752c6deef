package media

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path"
	"strings"

	"cloud.google.com/go/storage"
)

const defaultPublicBaseURL = "https://storage.googleapis.com"

// GCSStore hosts pictures in a Google Cloud Storage bucket that is publicly
// readable (uniform bucket-level access with allUsers as object viewer).
type GCSStore struct {
	client        *storage.Client
	bucket        string
	prefix        string
	publicBaseURL string
}

// NewGCSStore creates a store writing objects under prefix in bucket. An
// empty publicBaseURL means https://storage.googleapis.com.
func NewGCSStore(client *storage.Client, bucket, prefix, publicBaseURL string) *GCSStore {
	if publicBaseURL == "" {
		publicBaseURL = defaultPublicBaseURL
	}
	return &GCSStore{
		client:        client,
		bucket:        strings.TrimSpace(bucket),
		prefix:        strings.Trim(prefix, "/"),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Put implements PictureStore.
func (s *GCSStore) Put(ctx context.Context, name string, data []byte) (string, error) {
	if s.client == nil {
		return "", errors.New("gcs store: storage client is nil")
	}
	if s.bucket == "" {
		return "", errors.New("gcs store: bucket is empty")
	}

	obj := path.Join(s.prefix, name)

	w := s.client.Bucket(s.bucket).Object(obj).NewWriter(ctx)
	w.ContentType = contentType(name, data)
	w.ChunkSize = 0 // single request upload
	w.CacheControl = "public, max-age=86400"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("writing gs://%s/%s: %w", s.bucket, obj, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("closing gs://%s/%s: %w", s.bucket, obj, err)
	}

	return s.PublicURL(obj), nil
}

// PublicURL returns the public URL of an object.
func (s *GCSStore) PublicURL(obj string) string {
	return s.publicBaseURL + "/" + s.bucket + "/" + obj
}

func contentType(name string, data []byte) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(name))); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}
