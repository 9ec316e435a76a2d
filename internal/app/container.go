// Package app wires configuration into the running object graph.
package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/strogmv/postapi/internal/adapter/cache/redis"
	"github.com/strogmv/postapi/internal/adapter/events"
	"github.com/strogmv/postapi/internal/adapter/events/nats"
	"github.com/strogmv/postapi/internal/adapter/repository/memory"
	"github.com/strogmv/postapi/internal/adapter/repository/mongodb"
	"github.com/strogmv/postapi/internal/adapter/storage"
	"github.com/strogmv/postapi/internal/adapter/storage/local"
	"github.com/strogmv/postapi/internal/adapter/storage/s3"
	"github.com/strogmv/postapi/internal/adapter/upload"
	"github.com/strogmv/postapi/internal/config"
	"github.com/strogmv/postapi/internal/pkg/circuitbreaker"
	"github.com/strogmv/postapi/internal/pkg/logger"
	"github.com/strogmv/postapi/internal/pkg/tracing"
	"github.com/strogmv/postapi/internal/port"
	"github.com/strogmv/postapi/internal/service"
	transporthttp "github.com/strogmv/postapi/internal/transport/http"
)

type Container struct {
	Config *config.Config

	RepoPost port.PostRepository
	RepoTag  port.TagRepository
	Storage  port.FileStorage
	Uploads  port.UploadStrategy

	SvcBlog port.Blog

	ping    func(ctx context.Context) error
	closers []func(ctx context.Context) error
}

// New connects every configured backend. On error whatever was already
// opened is closed again.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}
	if err := c.init(ctx); err != nil {
		_ = c.Close(context.WithoutCancel(ctx))
		return nil, err
	}
	return c, nil
}

func (c *Container) init(ctx context.Context) error {
	cfg := c.Config

	shutdown, err := tracing.Init(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	c.onClose(shutdown)

	if err := c.initStore(ctx); err != nil {
		return err
	}
	if err := c.initStorage(ctx); err != nil {
		return err
	}
	if c.Uploads, err = upload.New(cfg); err != nil {
		return err
	}

	publisher, err := c.initPublisher()
	if err != nil {
		return err
	}

	var blog port.Blog = service.NewBlogImpl(c.RepoPost, c.RepoTag, c.Storage, publisher)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(cfg.RedisAddr)
		c.onClose(func(context.Context) error { return rdb.Close() })
		blog = service.NewBlogCached(blog, redis.NewCache(rdb), cfg.CacheTTL)
		logger.From(ctx).Info("post cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	}
	c.SvcBlog = blog
	return nil
}

func (c *Container) initStore(ctx context.Context) error {
	switch c.Config.StoreDriver {
	case config.StoreMongo:
		client, err := mongodb.Connect(ctx, c.Config.MongoURI)
		if err != nil {
			return err
		}
		c.onClose(client.Disconnect)
		db := client.Database(c.Config.MongoDatabase)
		c.RepoPost = mongodb.NewPostRepository(db)
		c.RepoTag = mongodb.NewTagRepository(db)
		c.ping = pingMongo(client)
	case config.StoreMemory:
		c.RepoPost = memory.NewPostRepository()
		c.RepoTag = memory.NewTagRepository()
	default:
		return fmt.Errorf("unsupported store driver %q", c.Config.StoreDriver)
	}
	logger.From(ctx).Info("store ready", "driver", c.Config.StoreDriver)
	return nil
}

func pingMongo(client *mongo.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx, nil)
	}
}

func (c *Container) initStorage(ctx context.Context) error {
	var backend port.FileStorage
	switch c.Config.StorageDriver {
	case config.StorageS3:
		client, err := s3.New(ctx, s3.Options{
			Region:    c.Config.StorageRegion,
			Bucket:    c.Config.StorageBucketName(),
			Endpoint:  c.Config.StorageEndpoint,
			AccessKey: c.Config.StorageAccessKey,
			SecretKey: c.Config.StorageSecretKey,
		})
		if err != nil {
			return err
		}
		backend = client
	case config.StorageLocal:
		store, err := local.New(c.Config.LocalStorageDir)
		if err != nil {
			return err
		}
		backend = store
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Config.StorageDriver)
	}

	breaker := circuitbreaker.NewBreaker(c.Config.BreakerThreshold, c.Config.BreakerCooldown)
	c.Storage = storage.NewGuarded(backend, breaker)
	logger.From(ctx).Info("object storage ready", "driver", c.Config.StorageDriver)
	return nil
}

func (c *Container) initPublisher() (port.Publisher, error) {
	if c.Config.NATSURL == "" {
		return events.Nop{}, nil
	}
	client, err := nats.NewClient(c.Config.NATSURL)
	if err != nil {
		return nil, err
	}
	c.onClose(func(context.Context) error {
		client.Close()
		return nil
	})
	return client, nil
}

// Ping checks the store. The memory store is always reachable.
func (c *Container) Ping(ctx context.Context) error {
	if c.ping == nil {
		return nil
	}
	return c.ping(ctx)
}

func (c *Container) Router() http.Handler {
	return transporthttp.NewRouter(transporthttp.RouterOptions{
		Blog:           c.SvcBlog,
		Uploads:        c.Uploads,
		Ping:           c.Ping,
		MaxUploadBytes: c.Config.MaxUploadBytes,
		AllowedOrigins: c.Config.CORSAllowedOrigins,
		ServiceName:    c.Config.ServiceName,
	})
}

func (c *Container) onClose(fn func(ctx context.Context) error) {
	c.closers = append(c.closers, fn)
}

// Close releases resources in reverse order of acquisition.
func (c *Container) Close(ctx context.Context) error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return stderrors.Join(errs...)
}
