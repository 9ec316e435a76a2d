// Package upload stages multipart files before they are sent to object
// storage, either buffered in memory or written to a temporary file.
package upload

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/strogmv/postapi/internal/config"
	"github.com/strogmv/postapi/internal/port"
)

const sniffLen = 512

// New returns the strategy named by UPLOAD_STRATEGY.
func New(cfg *config.Config) (port.UploadStrategy, error) {
	switch cfg.UploadStrategy {
	case config.UploadMemory:
		return NewMemory(), nil
	case config.UploadDisk:
		return NewDisk(cfg.UploadDir)
	default:
		return nil, fmt.Errorf("unsupported upload strategy %q", cfg.UploadStrategy)
	}
}

// contentType trusts the part header unless it is missing or generic, in
// which case the leading bytes are sniffed.
func contentType(declared string, head []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	return http.DetectContentType(head)
}
