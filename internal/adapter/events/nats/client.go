package nats

import (
	"context"
	"encoding/json"
	"fmt"

	natspkg "github.com/nats-io/nats.go"

	"github.com/strogmv/postapi/internal/domain"
	"github.com/strogmv/postapi/internal/port"
)

const (
	SubjectPostCreated      = "blog.post.created"
	SubjectTagCreated       = "blog.tag.created"
	SubjectPostTagsAssigned = "blog.post.tags_assigned"
)

// Conn is the subset of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
}

type Client struct {
	nc   *natspkg.Conn
	conn Conn
}

func NewClient(url string) (*Client, error) {
	nc, err := natspkg.Connect(url, natspkg.Name("postapi"))
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Client{nc: nc, conn: nc}, nil
}

// NewPublisher wraps an existing connection, mainly for tests.
func NewPublisher(conn Conn) *Client {
	return &Client{conn: conn}
}

func (c *Client) Close() {
	if c.nc != nil {
		c.nc.Close()
	}
}

func (c *Client) IsConnected() bool {
	return c.nc != nil && c.nc.Status() == natspkg.CONNECTED
}

func (c *Client) PublishPostCreated(ctx context.Context, event domain.PostCreated) error {
	return c.publish(SubjectPostCreated, event)
}

func (c *Client) PublishTagCreated(ctx context.Context, event domain.TagCreated) error {
	return c.publish(SubjectTagCreated, event)
}

func (c *Client) PublishPostTagsAssigned(ctx context.Context, event domain.PostTagsAssigned) error {
	return c.publish(SubjectPostTagsAssigned, event)
}

func (c *Client) publish(subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s: %w", subject, err)
	}
	if err := c.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

var _ port.Publisher = (*Client)(nil)
