// internal/pkg/bootstrap/config.go
package bootstrap

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"depotquote/internal/service/quoting/domain"
	"depotquote/internal/service/quoting/infrastructure/nominatim"
	"depotquote/internal/service/quoting/pricing"
)

const defaultConfigPath = "configs/config.yaml"

type Config struct {
	App      AppConfig      `yaml:"app"`
	Geocoder GeocoderConfig `yaml:"geocoder"`
	Quote    QuoteConfig    `yaml:"quote"`
	Depots   []DepotConfig  `yaml:"depots"`
	Infra    InfraConfig    `yaml:"infra"`
}

type AppConfig struct {
	Name     string `yaml:"name"`
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`
}

type GeocoderConfig struct {
	BaseURL       string        `yaml:"base_url"`
	APIKey        string        `yaml:"api_key"`
	APIKeyParam   string        `yaml:"api_key_param"`
	UserAgent     string        `yaml:"user_agent"`
	CountryCodes  string        `yaml:"country_codes"`
	Timeout       time.Duration `yaml:"timeout"`
	SplitStrategy string        `yaml:"split_strategy"`
}

type QuoteConfig struct {
	CostPerMile float64 `yaml:"cost_per_mile"`
	// DefaultContainerCost 用于没有单独配置 container_cost 的仓库
	DefaultContainerCost float64 `yaml:"default_container_cost"`
	// Eligibility 是可选的 CEL 表达式
	Eligibility string `yaml:"eligibility"`
}

type DepotConfig struct {
	Name          string   `yaml:"name"`
	Latitude      float64  `yaml:"latitude"`
	Longitude     float64  `yaml:"longitude"`
	ContainerCost *float64 `yaml:"container_cost"`
}

type InfraConfig struct {
	Jaeger struct {
		Endpoint string `yaml:"endpoint"`
	} `yaml:"jaeger"`
	Redis RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	// Addr 为空表示不启用地理编码缓存
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// DefaultConfig 返回内置默认配置
func DefaultConfig() *Config {
	cfg := &Config{
		App: AppConfig{Name: "quote-service", Port: 8086, LogLevel: "info"},
		Geocoder: GeocoderConfig{
			BaseURL:       nominatim.DefaultBaseURL,
			APIKeyParam:   "key",
			UserAgent:     "depotquote/1.0",
			Timeout:       5 * time.Second,
			SplitStrategy: string(nominatim.StrategyLastThree),
		},
		Quote: QuoteConfig{
			CostPerMile:          pricing.DefaultCostPerMile,
			DefaultContainerCost: domain.DefaultContainerCost,
		},
	}
	cfg.Infra.Redis.TTL = 24 * time.Hour
	for _, d := range domain.DefaultDepots() {
		cost := d.ContainerCost
		cfg.Depots = append(cfg.Depots, DepotConfig{
			Name:          d.Name,
			Latitude:      d.Location.Latitude,
			Longitude:     d.Location.Longitude,
			ContainerCost: &cost,
		})
	}
	return cfg
}

// Load 读取 YAML 配置，文件不存在时使用默认值，然后应用环境变量覆盖并校验。
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	case os.IsNotExist(err):
		zlog.Warn().Str("path", path).Msg("config file not found, using defaults")
	default:
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.App.Port = getEnvAsInt("PORT", c.App.Port)
	c.App.LogLevel = getEnv("LOG_LEVEL", c.App.LogLevel)
	c.Geocoder.BaseURL = getEnv("GEOCODER_BASE_URL", c.Geocoder.BaseURL)
	c.Geocoder.APIKey = getEnv("GEOCODER_API_KEY", c.Geocoder.APIKey)
	c.Geocoder.CountryCodes = getEnv("GEOCODER_COUNTRY_CODES", c.Geocoder.CountryCodes)
	c.Quote.CostPerMile = getEnvAsFloat("COST_PER_MILE", c.Quote.CostPerMile)
	c.Infra.Jaeger.Endpoint = getEnv("JAEGER_ENDPOINT", c.Infra.Jaeger.Endpoint)
	c.Infra.Redis.Addr = getEnv("REDIS_ADDR", c.Infra.Redis.Addr)
	c.Infra.Redis.Password = getEnv("REDIS_PASSWORD", c.Infra.Redis.Password)
}

// Validate 检查配置是否可用
func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return errors.Errorf("invalid port %d", c.App.Port)
	}
	if c.Quote.CostPerMile <= 0 {
		return errors.Errorf("cost_per_mile must be positive, got %v", c.Quote.CostPerMile)
	}
	if _, err := nominatim.ParseSplitStrategy(c.Geocoder.SplitStrategy); err != nil {
		return err
	}
	if len(c.Depots) == 0 {
		return errors.New("at least one depot is required")
	}
	seen := make(map[string]bool, len(c.Depots))
	for i, d := range c.Depots {
		if d.Name == "" {
			return errors.Errorf("depot #%d has no name", i)
		}
		if seen[d.Name] {
			return errors.Errorf("duplicate depot %q", d.Name)
		}
		seen[d.Name] = true
		if d.Latitude < -90 || d.Latitude > 90 {
			return errors.Errorf("depot %q: latitude %v out of range", d.Name, d.Latitude)
		}
		if d.Longitude < -180 || d.Longitude > 180 {
			return errors.Errorf("depot %q: longitude %v out of range", d.Name, d.Longitude)
		}
		if d.ContainerCost != nil && *d.ContainerCost < 0 {
			return errors.Errorf("depot %q: negative container cost", d.Name)
		}
	}
	return nil
}

// DepotTable 把配置转换为领域对象，保持配置中的顺序
func (c *Config) DepotTable() []domain.Depot {
	depots := make([]domain.Depot, 0, len(c.Depots))
	for _, d := range c.Depots {
		cost := c.Quote.DefaultContainerCost
		if d.ContainerCost != nil {
			cost = *d.ContainerCost
		}
		depots = append(depots, domain.Depot{
			Name:          d.Name,
			Location:      domain.Coordinate{Latitude: d.Latitude, Longitude: d.Longitude},
			ContainerCost: cost,
		})
	}
	return depots
}

var (
	currentConfig *Config
	configMu      sync.RWMutex
)

// Init 从 CONFIG_PATH 加载配置，失败时直接退出
func Init() {
	cfg, err := Load(getEnv("CONFIG_PATH", defaultConfigPath))
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load config")
	}
	configMu.Lock()
	currentConfig = cfg
	configMu.Unlock()
}

// GetCurrentConfig 返回 Init 加载的配置，未初始化时返回默认配置
func GetCurrentConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	if currentConfig == nil {
		return DefaultConfig()
	}
	return currentConfig
}

// getEnv 是一个内部辅助函数，从环境变量中读取配置。
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}
