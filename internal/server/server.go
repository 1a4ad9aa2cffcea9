// Package server wires the HTTP routes and runs the listener.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/VitaminP8/newsfeed/internal/auth"
	"github.com/VitaminP8/newsfeed/internal/logger"
	"github.com/VitaminP8/newsfeed/internal/metrics"
	"github.com/VitaminP8/newsfeed/internal/user"
	"github.com/google/uuid"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	queryPath   = "/query"
	graphqlPath = "/graphql/"
)

type Deps struct {
	Schema   *graphql.Schema
	Tokens   *auth.TokenService
	Users    user.UserStorage
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Log      *zap.Logger
}

// NewHandler собирает маршруты:
// /query и /graphql/ - GraphQL API, / - Playground, /metrics, /healthz.
func NewHandler(d Deps) http.Handler {
	mux := http.NewServeMux()

	// AuthMiddleware кладет пользователя в context, резолверы читают его оттуда
	api := auth.AuthMiddleware(d.Tokens, d.Users, d.Log)(&relay.Handler{Schema: d.Schema})

	mux.Handle(queryPath, d.instrument(queryPath, api))
	mux.Handle(graphqlPath, d.instrument(graphqlPath, api))
	mux.Handle("GET /{$}", playground.Handler("Newsfeed GraphQL Playground", queryPath))
	mux.Handle("GET /metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return mux
}

func (d Deps) instrument(route string, next http.Handler) http.Handler {
	h := d.Metrics.Middleware(route, next)
	h = accessLog(d.Log, h)
	return otelhttp.NewHandler(h, "graphql "+route)
}

// accessLog присваивает запросу request id и пишет строку лога после ответа
func accessLog(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), id)))

		log.Info("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type Server struct {
	srv *http.Server
	log *zap.Logger
}

func New(addr string, handler http.Handler, log *zap.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       90 * time.Second,
		},
		log: log,
	}
}

// Run блокируется до отмены ctx (SIGINT/SIGTERM), затем корректно останавливает сервер
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server started", zap.String("addr", s.srv.Addr))
		// ListenAndServe не возвращается, пока не вызван Shutdown или не случилась фатальная ошибка
		err := s.srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Wrap(err, "server error")
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server shutdown")
	}
	s.log.Info("server stopped")
	return nil
}
