// Package events holds publishers that do not need a broker.
package events

import (
	"context"

	"github.com/strogmv/postapi/internal/domain"
	"github.com/strogmv/postapi/internal/port"
)

// Nop drops every event. Used when NATS_URL is not configured.
type Nop struct{}

func (Nop) PublishPostCreated(context.Context, domain.PostCreated) error           { return nil }
func (Nop) PublishTagCreated(context.Context, domain.TagCreated) error             { return nil }
func (Nop) PublishPostTagsAssigned(context.Context, domain.PostTagsAssigned) error { return nil }

var _ port.Publisher = Nop{}
