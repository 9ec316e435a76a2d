package upload

import (
	"fmt"
	"io"
	"math/rand/v2"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/strogmv/postapi/internal/port"
)

// Disk copies the file into dir and streams it from there. Closing the
// staged file removes the copy.
type Disk struct {
	dir string
	now func() time.Time
}

func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Disk{dir: dir, now: time.Now}, nil
}

func (d *Disk) Name() string { return "disk" }

func (d *Disk) Stage(fh *multipart.FileHeader) (*port.StagedFile, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	path := filepath.Join(d.dir, d.tempName(fh.Filename))
	dst, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create staging file: %w", err)
	}
	cleanup := func() error {
		dst.Close()
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove staging file %s: %w", path, err)
		}
		return nil
	}

	size, err := io.Copy(dst, src)
	if err != nil {
		_ = cleanup()
		return nil, fmt.Errorf("write staging file: %w", err)
	}

	head := make([]byte, sniffLen)
	n, err := dst.ReadAt(head, 0)
	if err != nil && err != io.EOF {
		_ = cleanup()
		return nil, fmt.Errorf("read staging file: %w", err)
	}
	if _, err := dst.Seek(0, io.SeekStart); err != nil {
		_ = cleanup()
		return nil, fmt.Errorf("rewind staging file: %w", err)
	}

	ct := contentType(fh.Header.Get("Content-Type"), head[:n])
	return port.NewStagedFile(fh.Filename, ct, size, dst, cleanup), nil
}

// tempName follows image-<millis>-<random>.<ext>.
func (d *Disk) tempName(original string) string {
	ext := strings.TrimPrefix(filepath.Ext(original), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("image-%d-%d.%s", d.now().UnixMilli(), rand.IntN(1e9), ext)
}
