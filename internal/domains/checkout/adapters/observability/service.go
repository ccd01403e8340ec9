package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	checkouttypes "github.com/FrankoBuyern/Proekt2/internal/domains/checkout/application/types"
	"github.com/FrankoBuyern/Proekt2/internal/domains/checkout/ports"
	customersdomain "github.com/FrankoBuyern/Proekt2/internal/domains/customers/domain"
)

const tracerName = "github.com/FrankoBuyern/Proekt2/internal/domains/checkout/adapters/observability/service"

// Service decorates the checkout port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create the service instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core checkout service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
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
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// Checkout runs the purchase transaction with instrumentation.
func (s *Service) Checkout(ctx context.Context, customer customersdomain.Customer, desired []checkouttypes.DesiredItem) (*checkouttypes.CheckoutResult, error) {
	ctx, span := s.startSpan(ctx, "Service.Checkout",
		attribute.Int64("customer.id", customer.ID),
		attribute.Int("cart.items", len(desired)),
	)
	defer span.End()

	s.logInfo(ctx, "customer at register",
		slog.Int64("customer.id", customer.ID),
		slog.String("customer.name", customer.Name),
		slog.Int("cart.items", len(desired)),
	)
	result, err := s.inner.Checkout(ctx, customer, desired)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "checkout failed", slog.Int64("customer.id", customer.ID))
	}

	span.SetAttributes(
		attribute.String("checkout.transaction_id", result.TransactionID.String()),
		attribute.String("checkout.outcome", string(result.Outcome)),
		attribute.String("checkout.total", result.Total.String()),
	)
	s.metrics.recordOutcome(ctx, result.Outcome)
	if len(result.LostUnits) > 0 {
		lost := 0
		for _, line := range result.LostUnits {
			lost += line.Quantity
		}
		s.metrics.recordLostUnits(ctx, lost)
		s.logError(ctx, "rollback could not return all units to the warehouse", nil,
			slog.String("transaction_id", result.TransactionID.String()),
			slog.Int("units", lost),
		)
	}
	s.logInfo(ctx, "checkout finished",
		slog.String("transaction_id", result.TransactionID.String()),
		slog.String("outcome", string(result.Outcome)),
		slog.String("total", result.Total.String()),
		slog.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
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
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	checkouts metric.Int64Counter
	lostUnits metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	checkouts, _ := m.Int64Counter("checkout.service.transactions", metric.WithDescription("Number of purchase transactions by outcome"))
	lostUnits, _ := m.Int64Counter("checkout.service.lost_units", metric.WithDescription("Units lost to rollback returns refused by the warehouse"))
	return serviceMetrics{checkouts: checkouts, lostUnits: lostUnits}
}

func (m serviceMetrics) recordOutcome(ctx context.Context, outcome checkouttypes.Outcome) {
	addCounter(ctx, m.checkouts, 1, attribute.String("checkout.outcome", string(outcome)))
}

func (m serviceMetrics) recordLostUnits(ctx context.Context, units int) {
	addCounter(ctx, m.lostUnits, int64(units))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
