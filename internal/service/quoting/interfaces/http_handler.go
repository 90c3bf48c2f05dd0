package interfaces

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"depotquote/internal/pkg/logger"
	"depotquote/internal/pkg/tracing"
	"depotquote/internal/service/quoting/application"
	"depotquote/internal/service/quoting/domain"
)

// QuoteUseCase 是 HTTP 层依赖的应用服务
type QuoteUseCase interface {
	QuoteForPostalCode(ctx context.Context, postalCode string) (*application.Submission, error)
	Depots() []domain.Depot
}

// QuoteHandler 封装了报价服务的 HTTP 处理器
type QuoteHandler struct {
	service QuoteUseCase
}

// NewQuoteHandler 创建一个新的 HTTP 处理器实例
func NewQuoteHandler(service QuoteUseCase) *QuoteHandler {
	return &QuoteHandler{service: service}
}

type errorResponse struct {
	Error string `json:"error"`
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *QuoteHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/get_quote", withTraceLogger(http.HandlerFunc(h.handleGetQuote)))
	mux.Handle("/depots", withTraceLogger(http.HandlerFunc(h.handleDepots)))
}

// withTraceLogger 先提取 trace 上下文，再把带 trace_id 的 logger 放进 context
func withTraceLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		if traceID := tracing.GetTraceIDFromContext(ctx); traceID != "" {
			ctx = logger.WithTraceID(ctx, traceID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *QuoteHandler) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	postalCode := r.URL.Query().Get("postal_code")
	if strings.TrimSpace(postalCode) == "" {
		writeError(w, http.StatusBadRequest, domain.ErrEmptyPostalCode.Error())
		return
	}

	sub, err := h.service.QuoteForPostalCode(r.Context(), postalCode)
	if err != nil {
		writeError(w, statusFor(err), messageFor(err))
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *QuoteHandler) handleDepots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"depots": h.service.Depots()})
}

// statusFor 根据错误类型返回不同的 HTTP 状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrLookupNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTransport), errors.Is(err, domain.ErrParse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// messageFor 不把上游细节返回给用户，细节已经记在日志里
func messageFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrLookupNotFound):
		return "no location found for this postal code"
	case errors.Is(err, domain.ErrTransport):
		return "address lookup service is unavailable"
	case errors.Is(err, domain.ErrParse):
		return "address lookup service returned an unexpected response"
	default:
		return "failed to calculate quotes"
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
