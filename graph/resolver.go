package graph

import (
	"context"
	_ "embed"
	"strconv"

	"github.com/VitaminP8/newsfeed/internal/apperr"
	"github.com/VitaminP8/newsfeed/internal/logger"
	"github.com/VitaminP8/newsfeed/internal/metrics"
	"github.com/VitaminP8/newsfeed/internal/newsfeed"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//go:embed schema.graphql
var SDL string

// Resolver служит корневой точкой для всех резолверов Query и Mutation.
type Resolver struct {
	svc     *newsfeed.Service
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewResolver(svc *newsfeed.Service, log *zap.Logger, m *metrics.Metrics) *Resolver {
	return &Resolver{svc: svc, log: log, metrics: m}
}

// NewSchema собирает исполняемую схему
func NewSchema(r *Resolver) *graphql.Schema {
	return graphql.MustParseSchema(SDL, r, graphql.MaxDepth(12))
}

// fail фиксирует ошибку операции: клиент получит null, причина остается в логе и метрике
func (r *Resolver) fail(ctx context.Context, operation string, err error) {
	kind := apperr.Kind(err)
	r.metrics.OperationFailed(operation, kind)

	fields := []zap.Field{
		zap.String("operation", operation),
		zap.String("kind", kind),
		zap.Error(err),
	}
	if id, ok := logger.RequestIDFromContext(ctx); ok {
		fields = append(fields, zap.String("request_id", id))
	}
	if kind == "internal" {
		r.log.Error("operation failed", fields...)
		return
	}
	r.log.Info("operation failed", fields...)
}

func parseID(id graphql.ID) (uint, error) {
	n, err := strconv.ParseUint(string(id), 10, 64)
	if err != nil || n == 0 {
		return 0, errors.Wrapf(apperr.ErrNotFound, "invalid id %q", string(id))
	}
	return uint(n), nil
}

func toID(id uint) graphql.ID {
	return graphql.ID(strconv.FormatUint(uint64(id), 10))
}
