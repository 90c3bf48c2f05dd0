// internal/pkg/bootstrap/app.go
package bootstrap

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	zlog "github.com/rs/zerolog/log"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"depotquote/internal/pkg/logger"
	"depotquote/internal/pkg/tracing"
)

type AppCtx struct {
	Mux    *http.ServeMux
	Config *Config
	// Redis 只有在配置了 infra.redis.addr 时才非空
	Redis *redis.Client
}

// AppInfo 包含了启动一个服务所需的所有特定信息。
type AppInfo struct {
	ServiceName      string
	Port             int
	RegisterHandlers func(appCtx AppCtx) // 允许每个服务注册自己独特的 HTTP 路由
}

// StartService 封装了通用启动和优雅关停逻辑。
func StartService(info AppInfo) {
	cfg := GetCurrentConfig()
	logger.Init(info.ServiceName, cfg.App.LogLevel)

	port := info.Port
	if port == 0 {
		port = cfg.App.Port
	}

	// a. Tracer，没有配置 Jaeger 时使用全局的 no-op provider
	var tp *sdktrace.TracerProvider
	if endpoint := cfg.Infra.Jaeger.Endpoint; endpoint != "" {
		var err error
		tp, err = tracing.InitTracerProvider(info.ServiceName, endpoint)
		if err != nil {
			zlog.Fatal().Err(err).Msg("failed to initialize tracer provider")
		}
	}

	// b. Redis
	var rdb *redis.Client
	if cfg.Infra.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Infra.Redis.Addr,
			Password: cfg.Infra.Redis.Password,
			DB:       cfg.Infra.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			// 缓存不可用不影响报价，只记录告警
			zlog.Warn().Err(err).Str("addr", cfg.Infra.Redis.Addr).Msg("redis ping failed")
		}
		cancel()
	}

	mux := http.NewServeMux()
	if info.RegisterHandlers != nil {
		info.RegisterHandlers(AppCtx{Mux: mux, Config: cfg, Redis: rdb})
	}
	server := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zlog.Info().Msgf("%s listening on :%d", info.ServiceName, port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msgf("could not listen on %s", server.Addr)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 阻塞主 goroutine，直到接收到退出信号
	<-quit
	zlog.Info().Msgf("Shutting down service %s...", info.ServiceName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 按顺序执行清理操作 (后进先出)
	if err := server.Shutdown(ctx); err != nil {
		zlog.Error().Err(err).Msg("Error shutting down http server")
	} else {
		zlog.Info().Msg("HTTP server shut down.")
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			zlog.Error().Err(err).Msg("Error closing redis client")
		}
	}

	// 确保所有缓冲的 trace 都被发送出去
	if tp != nil {
		if err := tp.Shutdown(ctx); err != nil {
			zlog.Error().Err(err).Msg("Error shutting down tracer provider")
		} else {
			zlog.Info().Msg("Tracer provider shut down.")
		}
	}

	zlog.Info().Msgf("Service %s gracefully shut down.", info.ServiceName)
}
