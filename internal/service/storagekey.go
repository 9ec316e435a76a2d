package service

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StorageKey names an uploaded image <unix-millis>-<8 hex>-<file name>.
// The random part keeps keys distinct when two uploads share a millisecond.
func StorageKey(now time.Time, originalName string) string {
	return fmt.Sprintf("%d-%s-%s", now.UnixMilli(), uuid.NewString()[:8], sanitizeName(originalName))
}

func sanitizeName(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "image"
	}
	return name
}
