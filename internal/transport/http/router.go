package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/strogmv/postapi/internal/pkg/errors"
	"github.com/strogmv/postapi/internal/pkg/logger"
	"github.com/strogmv/postapi/internal/port"
)

// jsonBodyLimit caps the JSON and urlencoded bodies of the tag endpoints.
const jsonBodyLimit = 100 << 10

// Pinger reports whether the backing store is reachable.
type Pinger func(ctx context.Context) error

type RouterOptions struct {
	Blog           port.Blog
	Uploads        port.UploadStrategy
	Ping           Pinger
	MaxUploadBytes int64
	AllowedOrigins []string
	ServiceName    string
}

func NewRouter(o RouterOptions) http.Handler {
	h := NewHandler(o.Blog, o.Uploads)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(MetricsMiddleware)
	r.Use(Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: o.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/favicon.ico", Favicon)
	r.Get("/healthz", health(o.Ping))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/posts", func(r chi.Router) {
		r.With(MaxBodySizeMiddleware(o.MaxUploadBytes)).Post("/", h.CreatePost)
		r.Get("/", h.ListPosts)
		r.Get("/search", h.SearchPosts)
		r.Get("/filter", h.FilterPosts)
		r.With(MaxBodySizeMiddleware(jsonBodyLimit)).Post("/{postId}/tags", h.AssignTags)
	})
	r.With(MaxBodySizeMiddleware(jsonBodyLimit)).Post("/tags", h.CreateTag)

	name := o.ServiceName
	if name == "" {
		name = "postapi"
	}
	return otelhttp.NewHandler(r, name)
}

func health(ping Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				logger.From(r.Context()).Error("health check failed", "error", err)
				errors.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "store unavailable"})
				return
			}
		}
		errors.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
