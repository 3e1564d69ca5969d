package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"

	"pagsmile-checkout/internal/config"
	"pagsmile-checkout/internal/logger"
	"pagsmile-checkout/internal/order"
	"pagsmile-checkout/internal/pagsmile"
	"pagsmile-checkout/internal/transaction"
	"pagsmile-checkout/internal/webhook"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler exposes the checkout REST surface over the core services.
type Handler struct {
	cfg      *config.Config
	orders   order.Service
	txs      transaction.Service
	webhooks *webhook.Handler
	verifier *webhook.Verifier
}

func NewHandler(
	cfg *config.Config,
	orders order.Service,
	txs transaction.Service,
	webhooks *webhook.Handler,
	verifier *webhook.Verifier,
) *Handler {
	return &Handler{
		cfg:      cfg,
		orders:   orders,
		txs:      txs,
		webhooks: webhooks,
		verifier: verifier,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/api/config", h.GetConfig)
	r.Post("/api/create-order", h.CreateOrder)
	r.Get("/api/query-transaction/{tradeNo}", h.QueryTransaction)
	r.Post("/api/webhook/payment", h.HandleWebhook)
	r.Get("/success", h.SuccessPage)
}

// GetConfig hands the browser what the hosted card-capture SDK needs.
// Never the security key.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pagsmile.SdkConfig{
		AppID:      h.cfg.AppID,
		PublicKey:  h.cfg.PublicKey,
		Env:        h.cfg.Environment,
		RegionCode: "BRA",
	})
}

type createOrderBody struct {
	Amount       string                 `json:"amount"`
	CustomerInfo *pagsmile.CustomerInfo `json:"customerInfo"`
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var body createOrderBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if body.Amount == "" || body.CustomerInfo == nil {
		writeError(w, "Missing required fields: amount and customerInfo", http.StatusBadRequest)
		return
	}

	input := order.CreateInput{
		Amount:       body.Amount,
		CustomerInfo: *body.CustomerInfo,
		UserAgent:    r.UserAgent(),
		IPAddress:    clientIP(r),
	}

	resp, err := h.orders.Create(r.Context(), input)
	if err != nil {
		logger.FromCtx(r.Context()).Error("create order failed", zap.Error(err))

		var verr *order.ValidationError
		var remote *pagsmile.RemoteError
		switch {
		case errors.As(err, &verr):
			writeError(w, verr.Error(), http.StatusBadRequest)
		case errors.As(err, &remote):
			writeError(w, remote.Error(), http.StatusBadGateway)
		default:
			writeError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"prepay_id":    resp.PrepayID,
		"trade_no":     resp.TradeNo,
		"out_trade_no": resp.OutTradeNo,
	})
}

func (h *Handler) QueryTransaction(w http.ResponseWriter, r *http.Request) {
	tradeNo := chi.URLParam(r, "tradeNo")

	resp, err := h.txs.Query(r.Context(), tradeNo)
	if err != nil {
		logger.FromCtx(r.Context()).Error("query transaction failed", zap.Error(err))

		var remote *pagsmile.RemoteError
		switch {
		case errors.Is(err, transaction.ErrTradeNoRequired):
			writeError(w, "Missing trade_no parameter", http.StatusBadRequest)
		case errors.As(err, &remote):
			writeError(w, remote.Error(), http.StatusBadGateway)
		default:
			writeError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleWebhook authenticates and dispatches an asynchronous payment
// notification. Response codes steer the gateway's redelivery: a payload
// that can never be processed is acknowledged with 200 so it is not
// retried forever, while a transient downstream failure answers 500 to
// invite redelivery.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"result": "error", "message": "failed to read body"})
		return
	}
	defer r.Body.Close()

	if err := h.verifier.Verify(body, r.Header.Get(webhook.SignatureHeader)); err != nil {
		log.Warn("webhook signature rejected", zap.Error(err))
		writeJSON(w, http.StatusUnauthorized, map[string]any{"result": "error", "message": err.Error()})
		return
	}

	var payload pagsmile.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Warn("webhook body is not valid JSON", zap.Error(err))
		writeJSON(w, http.StatusOK, map[string]any{"result": "error", "message": "invalid JSON payload"})
		return
	}

	if _, err := h.webhooks.Process(r.Context(), payload); err != nil {
		log.Error("webhook processing failed", zap.Error(err))

		var invalid *webhook.InvalidPayloadError
		if errors.As(err, &invalid) {
			// Permanent: acknowledge so the gateway stops redelivering.
			writeJSON(w, http.StatusOK, map[string]any{"result": "error", "message": invalid.Error()})
			return
		}

		writeJSON(w, http.StatusInternalServerError, map[string]any{"result": "error", "message": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"result": "success"})
}

func (h *Handler) SuccessPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(successHTML))
}

const successHTML = `<!DOCTYPE html>
<html>
  <head><title>Pagamento Confirmado</title></head>
  <body style="font-family: sans-serif; text-align: center; padding: 50px;">
    <h1 style="color: #22c55e;">Pagamento Confirmado!</h1>
    <p>Seu pagamento foi processado com sucesso.</p>
    <a href="/" style="color: #4f46e5;">Voltar ao início</a>
  </body>
</html>`

// clientIP prefers the first X-Forwarded-For hop, falling back to the
// connection's remote address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
