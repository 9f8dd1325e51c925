package benefit

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"orlof/internal/audit"
	benefitmetrics "orlof/internal/benefit/metrics"
	"orlof/internal/platform/middleware"
	"orlof/internal/records"
	dErrors "orlof/pkg/domain-errors"
	"orlof/pkg/platform/sentinel"
)

// IncomeLookup resolves the income record for an identity. Satisfied by
// records.Store.
type IncomeLookup interface {
	FindIncomeByIdentity(ctx context.Context, identity string) (*records.IncomeEntry, error)
}

// AuditPublisher receives calculation audit events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) bool
}

// Service validates calculation requests, resolves income data, and runs the
// pure calculator.
type Service struct {
	incomes IncomeLookup
	metrics *benefitmetrics.Metrics
	auditor AuditPublisher
	tracer  trace.Tracer
}

// Option configures optional service dependencies.
type Option func(*Service)

// WithMetrics attaches benefit metrics.
func WithMetrics(m *benefitmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithAudit attaches an audit publisher.
func WithAudit(p AuditPublisher) Option {
	return func(s *Service) { s.auditor = p }
}

// NewService constructs the benefit calculation service.
func NewService(incomes IncomeLookup, opts ...Option) *Service {
	s := &Service{
		incomes: incomes,
		tracer:  otel.Tracer("orlof/benefit"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Calculate runs one benefit estimation. Labor working types require an
// income record for the identity; its absence is a typed missing_income
// failure, never a zero result.
func (s *Service) Calculate(ctx context.Context, req CalculationRequest) (CalculationResponse, error) {
	ctx, span := s.tracer.Start(ctx, "benefit.Calculate")
	defer span.End()

	start := time.Now()
	if err := req.Validate(); err != nil {
		s.observe(ctx, req, "rejected", start)
		return CalculationResponse{}, err
	}

	var income *records.IncomeEntry
	if req.WorkingType.RequiresIncome() {
		var err error
		income, err = s.incomes.FindIncomeByIdentity(ctx, req.IdentityNumber)
		switch {
		case err == nil:
		case errors.Is(err, sentinel.ErrNotFound):
			s.observe(ctx, req, "missing_income", start)
			return CalculationResponse{}, dErrors.New(dErrors.CodeMissingIncome,
				"no income record for identity; labor working types require one")
		default:
			s.observe(ctx, req, "error", start)
			return CalculationResponse{}, dErrors.Wrap(err, dErrors.CodeInternal, "income lookup failed")
		}
	}

	resp := Calculate(req, income)
	s.observe(ctx, req, "ok", start)
	return resp, nil
}

func (s *Service) observe(ctx context.Context, req CalculationRequest, outcome string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveCalculation(string(req.WorkingType), outcome, len(req.Periods), start)
	}
	if s.auditor != nil {
		auditOutcome := audit.OutcomeOK
		if outcome != "ok" {
			auditOutcome = audit.OutcomeFailed
		}
		s.auditor.Emit(ctx, audit.Event{
			Action:       audit.ActionCalculation,
			IdentityHash: audit.HashIdentity(req.IdentityNumber),
			RequestID:    middleware.GetRequestID(ctx),
			Outcome:      auditOutcome,
			Detail:       outcome,
		})
	}
}
