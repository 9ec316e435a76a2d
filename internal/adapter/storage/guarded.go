// Package storage holds object-storage decorators shared by the drivers.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/strogmv/postapi/internal/pkg/circuitbreaker"
	"github.com/strogmv/postapi/internal/port"
)

// Guarded fails fast while the backing store keeps failing, instead of
// letting every create request wait on a dead bucket.
type Guarded struct {
	next    port.FileStorage
	breaker *circuitbreaker.Breaker
}

func NewGuarded(next port.FileStorage, breaker *circuitbreaker.Breaker) *Guarded {
	return &Guarded{next: next, breaker: breaker}
}

func (g *Guarded) Upload(ctx context.Context, key string, reader io.Reader, opts port.UploadOptions) (string, error) {
	var out string
	err := g.breaker.Execute(func() error {
		var err error
		out, err = g.next.Upload(ctx, key, reader, opts)
		return err
	})
	if err == circuitbreaker.ErrOpen {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return out, err
}

var _ port.FileStorage = (*Guarded)(nil)
