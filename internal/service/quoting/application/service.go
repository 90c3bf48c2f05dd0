package application

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"depotquote/internal/pkg/logger"
	"depotquote/internal/pkg/metrics"
	"depotquote/internal/service/quoting/domain"
	"depotquote/internal/service/quoting/domain/port"
	"depotquote/internal/service/quoting/pricing"
)

// QuoteService 把地理编码和报价计算串起来：先查一次地址，再对每个仓库算一次报价。
type QuoteService struct {
	geocoder   port.Geocoder
	calculator *pricing.Calculator
	depots     []domain.Depot
	filter     port.QuoteFilter
	tracer     trace.Tracer
}

// NewQuoteService 创建报价服务。filter 可以为 nil。
func NewQuoteService(geocoder port.Geocoder, calculator *pricing.Calculator, depots []domain.Depot, filter port.QuoteFilter, tracer trace.Tracer) *QuoteService {
	table := make([]domain.Depot, len(depots))
	copy(table, depots)
	return &QuoteService{
		geocoder:   geocoder,
		calculator: calculator,
		depots:     table,
		filter:     filter,
		tracer:     tracer,
	}
}

// Depots 返回仓库表的副本
func (s *QuoteService) Depots() []domain.Depot {
	out := make([]domain.Depot, len(s.depots))
	copy(out, s.depots)
	return out
}

// QuoteForPostalCode 为一个邮编生成所有仓库的报价。
// 地理编码失败时记录日志并直接返回错误，不计算报价。
func (s *QuoteService) QuoteForPostalCode(ctx context.Context, postalCode string) (*Submission, error) {
	ctx, span := s.tracer.Start(ctx, "service.QuoteForPostalCode")
	defer span.End()

	id := uuid.NewString()
	span.SetAttributes(
		attribute.String("submission.id", id),
		attribute.String("postal_code", postalCode),
	)
	log := logger.Ctx(ctx).With().Str("submission_id", id).Str("postal_code", postalCode).Logger()

	address, err := s.geocoder.Resolve(ctx, postalCode)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.Submissions.WithLabelValues("geocode_failed").Inc()
		log.Error().Err(err).Msg("address lookup failed, skipping quote calculation")
		return nil, err
	}
	span.AddEvent("Address resolved")

	quotes := s.calculator.Quote(address.Coordinate, s.depots)
	if s.filter != nil {
		kept := quotes[:0]
		for _, q := range quotes {
			ok, err := s.filter.Allow(q)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				metrics.Submissions.WithLabelValues("rule_failed").Inc()
				log.Error().Err(err).Msg("eligibility rule failed")
				return nil, err
			}
			if ok {
				kept = append(kept, q)
			}
		}
		quotes = kept
	}

	sub := &Submission{
		ID:          id,
		PostalCode:  postalCode,
		Address:     address,
		Quotes:      quotes,
		CostPerMile: s.calculator.CostPerMile(),
	}
	if best, ok := domain.Cheapest(quotes); ok {
		sub.Cheapest = best.DepotName
	}

	for _, q := range quotes {
		metrics.QuotesProduced.WithLabelValues(q.DepotName).Inc()
	}
	metrics.Submissions.WithLabelValues("ok").Inc()
	span.SetAttributes(attribute.Int("quotes.count", len(quotes)))
	log.Info().
		Str("city", address.City).
		Str("region", address.Region).
		Int("quotes", len(quotes)).
		Str("cheapest", sub.Cheapest).
		Msg("quotes calculated")

	return sub, nil
}
