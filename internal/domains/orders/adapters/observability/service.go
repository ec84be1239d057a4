package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-gin-shop-api/internal/domains/orders/adapters/observability/service"

// instrumentation is shared by the command and query decorators.
type instrumentation struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*instrumentation)

func WithLogger(logger *slog.Logger) Option {
	return func(i *instrumentation) {
		i.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(i *instrumentation) {
		i.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(i *instrumentation) {
		i.metrics = newServiceMetrics(m)
	}
}

func newInstrumentation(opts []Option) instrumentation {
	i := instrumentation{
		logger:  slog.New(slog.DiscardHandler),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&i)
		}
	}
	if i.tracer == nil {
		i.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return i
}

// Service decorates the order command service with tracing, logging, and metrics.
type Service struct {
	instrumentation
	inner ports.Service
}

// New wraps the core order service.
func New(inner ports.Service, opts ...Option) ports.Service {
	return &Service{instrumentation: newInstrumentation(opts), inner: inner}
}

func (s *Service) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.PlaceOrder", trace.WithAttributes(
		attribute.Int64("member.id", input.MemberID),
		attribute.Int("order.lines", len(input.Lines)),
	))
	defer span.End()

	s.logInfo(ctx, "placing order", slog.Int64("member.id", input.MemberID), slog.Int("order.lines", len(input.Lines)))
	id, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to place order", slog.Int64("member.id", input.MemberID))
	}
	span.SetAttributes(attribute.Int64("order.id", id))
	s.metrics.recordPlaced(ctx)
	s.logInfo(ctx, "order placed", slog.Int64("order.id", id))
	return id, nil
}

func (s *Service) CancelOrder(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CancelOrder", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	s.logInfo(ctx, "cancelling order", slog.Int64("order.id", id))
	order, err := s.inner.CancelOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to cancel order", slog.Int64("order.id", id))
	}
	s.metrics.recordCancelled(ctx)
	s.logInfo(ctx, "order cancelled", slog.Int64("order.id", id))
	return order, nil
}

func (s *Service) FindOne(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.FindOne", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order, err := s.inner.FindOne(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id))
	}
	return order, nil
}

// QueryService decorates the listing strategies. Each call records the
// number of orders it returned on the orders.query.rows histogram.
type QueryService struct {
	instrumentation
	inner ports.QueryService
}

func NewQuery(inner ports.QueryService, opts ...Option) ports.QueryService {
	return &QueryService{instrumentation: newInstrumentation(opts), inner: inner}
}

func (s *QueryService) OrdersNaive(ctx context.Context, search types.OrderSearch) ([]types.OrderGraph, error) {
	return observe(ctx, s.instrumentation, "naive", search, func(ctx context.Context) ([]types.OrderGraph, error) {
		return s.inner.OrdersNaive(ctx, search)
	})
}

func (s *QueryService) OrdersFetchJoin(ctx context.Context, search types.OrderSearch) ([]types.OrderGraph, error) {
	return observe(ctx, s.instrumentation, "fetch_join", search, func(ctx context.Context) ([]types.OrderGraph, error) {
		return s.inner.OrdersFetchJoin(ctx, search)
	})
}

func (s *QueryService) OrdersPaged(ctx context.Context, search types.OrderSearch, page types.Page) ([]types.OrderGraph, error) {
	return observe(ctx, s.instrumentation, "paged", search, func(ctx context.Context) ([]types.OrderGraph, error) {
		trace.SpanFromContext(ctx).SetAttributes(
			attribute.Int("page.offset", page.Offset),
			attribute.Int("page.limit", page.Limit),
		)
		return s.inner.OrdersPaged(ctx, search, page)
	})
}

func (s *QueryService) OrderDtos(ctx context.Context, search types.OrderSearch) ([]types.OrderQueryDto, error) {
	return observe(ctx, s.instrumentation, "dto", search, func(ctx context.Context) ([]types.OrderQueryDto, error) {
		return s.inner.OrderDtos(ctx, search)
	})
}

func (s *QueryService) OrderDtosBatched(ctx context.Context, search types.OrderSearch) ([]types.OrderQueryDto, error) {
	return observe(ctx, s.instrumentation, "dto_batched", search, func(ctx context.Context) ([]types.OrderQueryDto, error) {
		return s.inner.OrderDtosBatched(ctx, search)
	})
}

func (s *QueryService) OrderDtosFlat(ctx context.Context, search types.OrderSearch) ([]types.OrderQueryDto, error) {
	return observe(ctx, s.instrumentation, "dto_flat", search, func(ctx context.Context) ([]types.OrderQueryDto, error) {
		return s.inner.OrderDtosFlat(ctx, search)
	})
}

func (s *QueryService) SimpleOrdersNaive(ctx context.Context, search types.OrderSearch) ([]types.OrderGraph, error) {
	return observe(ctx, s.instrumentation, "simple_naive", search, func(ctx context.Context) ([]types.OrderGraph, error) {
		return s.inner.SimpleOrdersNaive(ctx, search)
	})
}

func (s *QueryService) SimpleOrdersFetchJoin(ctx context.Context, search types.OrderSearch) ([]types.OrderGraph, error) {
	return observe(ctx, s.instrumentation, "simple_fetch_join", search, func(ctx context.Context) ([]types.OrderGraph, error) {
		return s.inner.SimpleOrdersFetchJoin(ctx, search)
	})
}

func (s *QueryService) SimpleOrderDtos(ctx context.Context, search types.OrderSearch) ([]types.SimpleOrderQueryDto, error) {
	return observe(ctx, s.instrumentation, "simple_dto", search, func(ctx context.Context) ([]types.SimpleOrderQueryDto, error) {
		return s.inner.SimpleOrderDtos(ctx, search)
	})
}

func observe[T any](ctx context.Context, i instrumentation, strategy string, search types.OrderSearch, fn func(context.Context) ([]T, error)) ([]T, error) {
	ctx, span := i.tracer.Start(ctx, "OrderQueryService."+strategy, trace.WithAttributes(
		attribute.String("orders.strategy", strategy),
		attribute.String("orders.search.member_name", search.MemberName),
		attribute.String("orders.search.status", string(search.Status)),
	))
	defer span.End()

	result, err := fn(ctx)
	if err != nil {
		return nil, i.handleError(ctx, span, err, "order query failed", slog.String("orders.strategy", strategy))
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	i.metrics.recordRows(ctx, strategy, len(result))
	return result, nil
}

func (i instrumentation) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if i.logger == nil {
		return
	}
	i.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (i instrumentation) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if i.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	i.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (i instrumentation) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	i.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	placed    metric.Int64Counter
	cancelled metric.Int64Counter
	rows      metric.Int64Histogram
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.service.placed", metric.WithDescription("Number of orders placed"))
	cancelled, _ := m.Int64Counter("orders.service.cancelled", metric.WithDescription("Number of orders cancelled"))
	rows, _ := m.Int64Histogram("orders.query.rows", metric.WithDescription("Orders returned per listing call"))
	return serviceMetrics{placed: placed, cancelled: cancelled, rows: rows}
}

func (m serviceMetrics) recordPlaced(ctx context.Context) {
	if m.placed != nil {
		m.placed.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordCancelled(ctx context.Context) {
	if m.cancelled != nil {
		m.cancelled.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRows(ctx context.Context, strategy string, n int) {
	if m.rows != nil {
		m.rows.Record(ctx, int64(n), metric.WithAttributes(attribute.String("orders.strategy", strategy)))
	}
}

var (
	_ ports.Service      = (*Service)(nil)
	_ ports.QueryService = (*QueryService)(nil)
)
