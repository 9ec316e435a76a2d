package port

import (
	"context"
	"io"
)

// UploadOptions describe the object written by FileStorage.Upload.
type UploadOptions struct {
	ContentType string
	Metadata    map[string]string
}

type FileStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader, opts UploadOptions) (string, error)
}
