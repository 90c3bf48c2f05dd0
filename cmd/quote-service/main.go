package main

import (
	"go.opentelemetry.io/otel"

	zlog "github.com/rs/zerolog/log"

	"depotquote/internal/pkg/bootstrap"
	"depotquote/internal/pkg/httpclient"
	"depotquote/internal/service/quoting/application"
	"depotquote/internal/service/quoting/domain/port"
	"depotquote/internal/service/quoting/infrastructure/cache"
	"depotquote/internal/service/quoting/infrastructure/nominatim"
	"depotquote/internal/service/quoting/infrastructure/rule"
	"depotquote/internal/service/quoting/interfaces"
	"depotquote/internal/service/quoting/pricing"
)

const serviceName = "quote-service"

// main 是应用的组装根：创建并组装所有依赖项，然后启动服务。
func main() {
	bootstrap.Init()

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			cfg := appCtx.Config
			tracer := otel.Tracer(serviceName)

			client := httpclient.NewClient(tracer)
			client.UserAgent = cfg.Geocoder.UserAgent

			strategy, err := nominatim.ParseSplitStrategy(cfg.Geocoder.SplitStrategy)
			if err != nil {
				zlog.Fatal().Err(err).Msg("invalid split strategy")
			}

			var geocoder port.Geocoder = nominatim.NewGeocoder(client, nominatim.Config{
				BaseURL:      cfg.Geocoder.BaseURL,
				APIKey:       cfg.Geocoder.APIKey,
				APIKeyParam:  cfg.Geocoder.APIKeyParam,
				CountryCodes: cfg.Geocoder.CountryCodes,
				Timeout:      cfg.Geocoder.Timeout,
				Strategy:     strategy,
			})
			if appCtx.Redis != nil {
				geocoder = cache.NewCachingGeocoder(geocoder, cache.NewRedisStore(appCtx.Redis), cfg.Infra.Redis.TTL)
				zlog.Info().Str("addr", cfg.Infra.Redis.Addr).Msg("geocode cache enabled")
			}

			var filter port.QuoteFilter
			eligibility, err := rule.NewCELEligibility(cfg.Quote.Eligibility)
			if err != nil {
				zlog.Fatal().Err(err).Msg("invalid eligibility rule")
			}
			if eligibility != nil {
				filter = eligibility
				zlog.Info().Str("rule", eligibility.Expression()).Msg("quote eligibility rule enabled")
			}

			service := application.NewQuoteService(
				geocoder,
				pricing.NewCalculator(cfg.Quote.CostPerMile),
				cfg.DepotTable(),
				filter,
				tracer,
			)
			interfaces.NewQuoteHandler(service).RegisterRoutes(appCtx.Mux)
		},
	})
}
