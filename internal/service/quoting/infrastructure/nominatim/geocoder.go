package nominatim

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"depotquote/internal/pkg/httpclient"
	"depotquote/internal/pkg/logger"
	"depotquote/internal/pkg/metrics"
	"depotquote/internal/service/quoting/domain"
)

// DefaultBaseURL 公共 Nominatim 实例
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// Config 是 Nominatim 兼容服务的连接参数
type Config struct {
	BaseURL string
	// APIKey 非空时以 APIKeyParam 作为查询参数名发送，托管版 Nominatim 需要
	APIKey      string
	APIKeyParam string
	// CountryCodes 逗号分隔的 ISO 国家代码，用于限定搜索范围
	CountryCodes string
	Timeout      time.Duration
	Strategy     SplitStrategy
}

type placeAddress struct {
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Hamlet       string `json:"hamlet"`
	Municipality string `json:"municipality"`
	State        string `json:"state"`
}

// place 是 /search 返回列表中的一项。坐标为字符串编码的数字。
type place struct {
	Lat         json.Number   `json:"lat"`
	Lon         json.Number   `json:"lon"`
	DisplayName string        `json:"display_name"`
	Address     *placeAddress `json:"address"`
}

// Geocoder 实现了 port.Geocoder，通过 Nominatim /search 接口按邮编查询。
type Geocoder struct {
	client *httpclient.Client
	cfg    Config
}

// NewGeocoder 创建地理编码适配器，未设置的字段使用默认值。
func NewGeocoder(client *httpclient.Client, cfg Config) *Geocoder {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.APIKeyParam == "" {
		cfg.APIKeyParam = "key"
	}
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyLastThree
	}
	return &Geocoder{client: client, cfg: cfg}
}

// Resolve 实现了 port.Geocoder。只发送一次请求，不重试。
func (g *Geocoder) Resolve(ctx context.Context, postalCode string) (domain.AddressDetails, error) {
	start := time.Now()
	details, err := g.resolve(ctx, postalCode)
	metrics.GeocodeDuration.Observe(time.Since(start).Seconds())
	metrics.GeocodeRequests.WithLabelValues(outcome(err)).Inc()
	return details, err
}

func (g *Geocoder) resolve(ctx context.Context, postalCode string) (domain.AddressDetails, error) {
	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	params := url.Values{}
	params.Set("postalcode", postalCode)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", "1")
	if g.cfg.CountryCodes != "" {
		params.Set("countrycodes", g.cfg.CountryCodes)
	}
	if g.cfg.APIKey != "" {
		params.Set(g.cfg.APIKeyParam, g.cfg.APIKey)
	}

	body, err := g.client.Get(ctx, g.cfg.BaseURL+"/search", params)
	if err != nil {
		return domain.AddressDetails{}, errors.Wrapf(domain.ErrTransport, "postal code %q: %v", postalCode, err)
	}

	var places []place
	if err := json.Unmarshal(body, &places); err != nil {
		return domain.AddressDetails{}, errors.Wrapf(domain.ErrParse, "decode response: %v", err)
	}
	if len(places) == 0 {
		return domain.AddressDetails{}, errors.Wrapf(domain.ErrLookupNotFound, "postal code %q", postalCode)
	}

	first := places[0]
	lat, err := first.Lat.Float64()
	if err != nil {
		return domain.AddressDetails{}, errors.Wrapf(domain.ErrParse, "latitude %q", first.Lat)
	}
	lon, err := first.Lon.Float64()
	if err != nil {
		return domain.AddressDetails{}, errors.Wrapf(domain.ErrParse, "longitude %q", first.Lon)
	}

	city, region := first.Address.structuredCity(), first.Address.structuredRegion()
	if city == "" || region == "" {
		splitCity, splitRegion := cityRegion(g.cfg.Strategy, first.DisplayName, postalCode)
		if city == "" {
			city = splitCity
		}
		if region == "" {
			region = splitRegion
		}
	}

	logger.Ctx(ctx).Debug().
		Str("postal_code", postalCode).
		Str("display_name", first.DisplayName).
		Int("candidates", len(places)).
		Msg("address lookup resolved")

	return domain.AddressDetails{
		Coordinate:  domain.Coordinate{Latitude: lat, Longitude: lon},
		City:        city,
		Region:      region,
		PostalCode:  postalCode,
		DisplayName: first.DisplayName,
	}, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, domain.ErrLookupNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, domain.ErrParse):
		return metrics.OutcomeParse
	default:
		return metrics.OutcomeTransport
	}
}
