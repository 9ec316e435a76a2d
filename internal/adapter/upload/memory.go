package upload

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/strogmv/postapi/internal/port"
)

// Memory reads the whole file into a buffer.
type Memory struct{}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Name() string { return "memory" }

func (m *Memory) Stage(fh *multipart.FileHeader) (*port.StagedFile, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	buf, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", fh.Filename, err)
	}

	ct := contentType(fh.Header.Get("Content-Type"), buf)
	return port.NewStagedFile(fh.Filename, ct, int64(len(buf)), bytes.NewReader(buf), nil), nil
}
