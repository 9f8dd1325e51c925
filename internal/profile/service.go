package profile

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	profilemetrics "orlof/internal/profile/metrics"
	"orlof/internal/records"
	dErrors "orlof/pkg/domain-errors"
	"orlof/pkg/platform/sentinel"
)

// Cache stores the full profile list between aggregation passes. A nil Cache
// disables caching.
type Cache interface {
	Get(ctx context.Context) ([]CombinedProfile, bool)
	Set(ctx context.Context, profiles []CombinedProfile)
	Invalidate(ctx context.Context)
}

// Service builds combined profiles from the record store. It only reads the
// store; concurrent calls are independent and share no mutable state.
type Service struct {
	store   records.Store
	cache   Cache
	metrics *profilemetrics.Metrics
	tracer  trace.Tracer
}

// Option configures optional service dependencies.
type Option func(*Service)

// WithCache attaches a profile list cache.
func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithMetrics attaches profile metrics.
func WithMetrics(m *profilemetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService constructs the profile aggregation service.
func NewService(store records.Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		tracer: otel.Tracer("orlof/profile"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildAll returns one combined profile per registry entry, in registry
// order. The registry anchors the join: identities that only appear in the
// income or birth-estimate collections are reachable through ByIdentity but
// are not part of the full listing.
func (s *Service) BuildAll(ctx context.Context) ([]CombinedProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.BuildAll")
	defer span.End()

	if s.cache != nil {
		if profiles, ok := s.cache.Get(ctx); ok {
			s.countCacheHit()
			return profiles, nil
		}
		s.countCacheMiss()
	}

	start := time.Now()
	registry, err := s.store.Registry(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list registry entries")
	}

	profiles := make([]CombinedProfile, 0, len(registry))
	for _, reg := range registry {
		p, err := s.buildFor(ctx, reg.IdentityNumber, reg.Name, reg.Address)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	if s.metrics != nil {
		s.metrics.ObserveBuildAll(start)
	}
	if s.cache != nil {
		s.cache.Set(ctx, profiles)
	}
	return profiles, nil
}

// ByIdentity builds the combined profile for one identity. Unknown
// identities are not an error: registry fields fall back to "NO DATA" and
// everything else takes its zero default, matching the original lookup
// behavior.
func (s *Service) ByIdentity(ctx context.Context, identityNumber string) (CombinedProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.ByIdentity")
	defer span.End()

	name, address := noData, noData
	reg, err := s.store.FindRegistryByIdentity(ctx, identityNumber)
	switch {
	case err == nil:
		name, address = reg.Name, reg.Address
		identityNumber = reg.IdentityNumber
	case errors.Is(err, sentinel.ErrNotFound):
		// fall through with NO DATA defaults
	default:
		return CombinedProfile{}, dErrors.Wrap(err, dErrors.CodeInternal, "registry lookup failed")
	}

	return s.buildFor(ctx, identityNumber, name, address)
}

// HighestIncomeWithBirthInMonth runs the ranking query over the full profile
// set. The absent result is (nil, nil) — an empty or all-non-matching set is
// not an error.
func (s *Service) HighestIncomeWithBirthInMonth(ctx context.Context, monthPattern string) (*CombinedProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.HighestIncomeWithBirthInMonth")
	defer span.End()

	profiles, err := s.BuildAll(ctx)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RankingQueries.Inc()
	}
	best, ok := HighestIncomeWithBirthInMonth(profiles, monthPattern)
	if !ok {
		return nil, nil
	}
	return &best, nil
}

// buildFor performs the outer join for one identity. Missing join partners
// degrade to zero/false/nil defaults, never to failures.
func (s *Service) buildFor(ctx context.Context, identityNumber, name, address string) (CombinedProfile, error) {
	p := CombinedProfile{
		IdentityNumber: identityNumber,
		Name:           name,
		Address:        address,
	}

	income, err := s.store.FindIncomeByIdentity(ctx, identityNumber)
	switch {
	case err == nil:
		p.HasIncome = true
		p.MonthIncome = income.MonthIncome
		p.OtherMonthIncome = income.OtherMonthIncome
		p.PensionSavingsPercent = income.PensionSavingsPercent
		p.PersonalDiscount = income.PersonalTaxDiscountPercent
	case errors.Is(err, sentinel.ErrNotFound):
	default:
		return CombinedProfile{}, dErrors.Wrap(err, dErrors.CodeInternal, "income lookup failed")
	}

	birth, err := s.store.FindBirthEstimateByParent(ctx, identityNumber)
	switch {
	case err == nil:
		date := birth.EstimatedBirthDate
		p.EstimatedChildBirthDate = &date
	case errors.Is(err, sentinel.ErrNotFound):
	default:
		return CombinedProfile{}, dErrors.Wrap(err, dErrors.CodeInternal, "birth estimate lookup failed")
	}

	_, err = s.store.FindChildByParent(ctx, identityNumber)
	switch {
	case err == nil:
		p.HasChildren = true
	case errors.Is(err, sentinel.ErrNotFound):
	default:
		return CombinedProfile{}, dErrors.Wrap(err, dErrors.CodeInternal, "child lookup failed")
	}

	if s.metrics != nil {
		s.metrics.ProfilesBuilt.Inc()
	}
	return p, nil
}

func (s *Service) countCacheHit() {
	if s.metrics != nil {
		s.metrics.CacheHits.Inc()
	}
}

func (s *Service) countCacheMiss() {
	if s.metrics != nil {
		s.metrics.CacheMisses.Inc()
	}
}
