package port

import (
	"io"
	"mime/multipart"
)

// StagedFile is an uploaded file held by an UploadStrategy until it has been
// pushed to object storage. Close releases whatever backs it.
type StagedFile struct {
	OriginalName string
	ContentType  string
	Size         int64
	Body         io.Reader
	closeFn      func() error
}

func NewStagedFile(name, contentType string, size int64, body io.Reader, closeFn func() error) *StagedFile {
	return &StagedFile{OriginalName: name, ContentType: contentType, Size: size, Body: body, closeFn: closeFn}
}

func (f *StagedFile) Close() error {
	if f == nil || f.closeFn == nil {
		return nil
	}
	return f.closeFn()
}

// UploadStrategy stages a multipart file either in memory or on disk.
type UploadStrategy interface {
	Name() string
	Stage(fh *multipart.FileHeader) (*StagedFile, error)
}
