package service

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStorageKey(t *testing.T) {
	now := time.UnixMilli(1712345678901)
	key := StorageKey(now, "holiday.jpg")
	assert.Regexp(t, regexp.MustCompile(`^1712345678901-[0-9a-f]{8}-holiday\.jpg$`), key)
	assert.NotEqual(t, key, StorageKey(now, "holiday.jpg"))
}

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"photo.png":           "photo.png",
		"my photo (1).png":    "my_photo__1_.png",
		"../../etc/passwd":    "passwd",
		`C:\Users\me\cat.jpg`: "cat.jpg",
		".hidden.gif":         "hidden.gif",
		"":                    "image",
		"..":                  "image",
		"résumé.webp":         "r_sum_.webp",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizeName(in), in)
	}
}
