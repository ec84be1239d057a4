package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	memberdomain "github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
	memberports "github.com/Apurer/go-gin-shop-api/internal/domains/members/ports"
	"github.com/Apurer/go-gin-shop-api/internal/shared/address"
)

const tracerName = "github.com/Apurer/go-gin-shop-api/internal/domains/members/adapters/observability/service"

// Service decorates the member service with tracing, logging, and metrics.
type Service struct {
	inner   memberports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core member service.
func New(inner memberports.Service, opts ...Option) memberports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.DiscardHandler),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Join(ctx context.Context, name string, addr address.Address) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "MemberService.Join", trace.WithAttributes(attribute.String("member.name", name)))
	defer span.End()

	s.logInfo(ctx, "registering member", slog.String("member.name", name))
	id, err := s.inner.Join(ctx, name, addr)
	if err != nil {
		s.metrics.recordRejected(ctx, err)
		return 0, s.handleError(ctx, span, err, "failed to register member", slog.String("member.name", name))
	}
	span.SetAttributes(attribute.Int64("member.id", id))
	s.metrics.recordRegistered(ctx)
	s.logInfo(ctx, "member registered", slog.Int64("member.id", id))
	return id, nil
}

func (s *Service) FindMembers(ctx context.Context) ([]*memberdomain.Member, error) {
	ctx, span := s.tracer.Start(ctx, "MemberService.FindMembers")
	defer span.End()

	result, err := s.inner.FindMembers(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list members")
	}
	span.SetAttributes(attribute.Int("member.count", len(result)))
	return result, nil
}

func (s *Service) FindOne(ctx context.Context, id int64) (*memberdomain.Member, error) {
	ctx, span := s.tracer.Start(ctx, "MemberService.FindOne", trace.WithAttributes(attribute.Int64("member.id", id)))
	defer span.End()

	s.logInfo(ctx, "loading member", slog.Int64("member.id", id))
	result, err := s.inner.FindOne(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load member", slog.Int64("member.id", id))
	}
	return result, nil
}

func (s *Service) Update(ctx context.Context, id int64, name string) (*memberdomain.Member, error) {
	ctx, span := s.tracer.Start(ctx, "MemberService.Update", trace.WithAttributes(attribute.Int64("member.id", id)))
	defer span.End()

	s.logInfo(ctx, "renaming member", slog.Int64("member.id", id), slog.String("member.name", name))
	result, err := s.inner.Update(ctx, id, name)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to rename member", slog.Int64("member.id", id))
	}
	s.logInfo(ctx, "member renamed", slog.Int64("member.id", result.ID))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	registered metric.Int64Counter
	rejected   metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	registered, _ := m.Int64Counter("members.service.registered", metric.WithDescription("Number of members registered"))
	rejected, _ := m.Int64Counter("members.service.rejected", metric.WithDescription("Number of rejected registrations"))
	return serviceMetrics{registered: registered, rejected: rejected}
}

func (m serviceMetrics) recordRegistered(ctx context.Context) {
	if m.registered != nil {
		m.registered.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context, err error) {
	if m.rejected != nil {
		m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("error", err.Error())))
	}
}

var _ memberports.Service = (*Service)(nil)
