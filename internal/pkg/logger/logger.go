// internal/pkg/logger/logger.go
package logger

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Init 配置全局 zerolog，所有日志都带上 service 字段。
// level 解析失败时使用 info。
func Init(serviceName, level string) {
	InitWithWriter(os.Stdout, serviceName, level)
}

// InitWithWriter 与 Init 相同，但允许指定输出，主要给测试用。
func InitWithWriter(w io.Writer, serviceName, level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	zlog.Logger = zerolog.New(w).With().Timestamp().Str("service", serviceName).Logger()
	// context 中没有 logger 时回退到全局 logger，而不是静默丢弃
	zerolog.DefaultContextLogger = &zlog.Logger
}

// Ctx 从 context 中取出 logger
func Ctx(ctx context.Context) *zerolog.Logger {
	return zlog.Ctx(ctx)
}

// WithTraceID 返回带 trace_id 的子 logger 并存入 context
func WithTraceID(ctx context.Context, traceID string) context.Context {
	l := Ctx(ctx).With().Str("trace_id", traceID).Logger()
	return l.WithContext(ctx)
}
