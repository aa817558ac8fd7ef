package middleware

import (
	"fmt"
	"net/http"
	"sage/config"
	"sage/infras/otel"
	"sage/shared/cache"
	"sage/shared/constant"

	"github.com/go-chi/chi/v5"
)

const (
	otelHTTPScopeName = "http"
)

type AppMiddleware interface {
	Tracing(http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
	cache  cache.RedisCache
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
		cache:  cache,
	}
}

// Tracing opens a span per request and stamps it with route attributes.
func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		spanName := fmt.Sprintf("%s %s", r.Method, r.URL.Path)

		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != constant.Empty {
			spanName = fmt.Sprintf("%s %s", r.Method, rctx.RoutePattern())
		}

		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, spanName)
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       r.URL.Path,
			"http.method":     r.Method,
			"http.user_agent": r.Header.Get(constant.RequestHeaderUserAgent),
			"http.host":       r.Host,
			"http.source":     a.getClientIP(r),
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
