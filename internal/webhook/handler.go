package webhook

import (
	"context"

	"pagsmile-checkout/internal/logger"
	"pagsmile-checkout/internal/metrics"
	"pagsmile-checkout/internal/pagsmile"
	"pagsmile-checkout/internal/webhook/ledger"

	"go.uber.org/zap"
)

// Event is the normalized projection of a raw notification,
// independent of the gateway wire shape.
type Event struct {
	TradeNo    string
	OutTradeNo string
	Status     pagsmile.TradeStatus
	Amount     float64
	Currency   string
	Method     string
}

// Callbacks lets the embedding application observe terminal payment
// events without this package knowing about it.
type Callbacks interface {
	OnSuccess(ctx context.Context, event Event) error
	OnFailed(ctx context.Context, event Event) error
}

// LogCallbacks is the default observer: it only logs.
type LogCallbacks struct{}

func (LogCallbacks) OnSuccess(ctx context.Context, event Event) error {
	logger.FromCtx(ctx).Info("payment success",
		zap.String("out_trade_no", event.OutTradeNo),
		zap.Float64("amount", event.Amount),
		zap.String("currency", event.Currency),
	)
	return nil
}

func (LogCallbacks) OnFailed(ctx context.Context, event Event) error {
	logger.FromCtx(ctx).Info("payment failed",
		zap.String("out_trade_no", event.OutTradeNo),
		zap.String("status", string(event.Status)),
	)
	return nil
}

// Handler turns untrusted notification payloads into trusted events and
// dispatches terminal ones at most once per (trade_no, status).
type Handler struct {
	callbacks Callbacks
	ledger    ledger.Ledger
	stats     metrics.DispatchStats
}

// NewHandler builds a dispatcher. A nil callbacks falls back to
// LogCallbacks, a nil ledger to the in-memory store.
func NewHandler(callbacks Callbacks, led ledger.Ledger) *Handler {
	if callbacks == nil {
		callbacks = LogCallbacks{}
	}
	if led == nil {
		led = ledger.NewMemory()
	}
	return &Handler{callbacks: callbacks, ledger: led}
}

// Stats exposes the dispatch counters, mainly for inspection in tests
// and periodic logging.
func (h *Handler) Stats() *metrics.DispatchStats {
	return &h.stats
}

func validatePayload(p pagsmile.WebhookPayload) error {
	var errs []string

	if p.TradeNo == "" {
		errs = append(errs, "trade_no is required")
	}
	if p.OutTradeNo == "" {
		errs = append(errs, "out_trade_no is required")
	}
	if p.TradeStatus == "" {
		errs = append(errs, "trade_status is required")
	}

	if len(errs) > 0 {
		return &InvalidPayloadError{Messages: errs}
	}
	return nil
}

func mapPayload(p pagsmile.WebhookPayload) Event {
	return Event{
		TradeNo:    p.TradeNo,
		OutTradeNo: p.OutTradeNo,
		Status:     p.TradeStatus,
		Amount:     p.OrderAmount,
		Currency:   p.OrderCurrency,
		Method:     p.Method,
	}
}

// Process validates, maps and dispatches one notification. Non-terminal
// statuses carry no actionable outcome: the event is returned and no
// callback runs. Terminal statuses fire their callback only when this
// delivery is the first for (trade_no, status).
func (h *Handler) Process(ctx context.Context, payload pagsmile.WebhookPayload) (*Event, error) {
	h.stats.Received.Inc()

	if err := validatePayload(payload); err != nil {
		return nil, err
	}

	event := mapPayload(payload)

	log := logger.FromCtx(ctx).With(
		zap.String("trade_no", event.TradeNo),
		zap.String("out_trade_no", event.OutTradeNo),
		zap.String("trade_status", string(event.Status)),
	)

	if !event.Status.IsTerminal() {
		log.Info("non-terminal webhook, nothing to dispatch")
		return &event, nil
	}

	first, err := h.ledger.MarkDispatched(ctx, event.TradeNo, event.Status)
	if err != nil {
		// Ledger failures are transient; let the gateway redeliver.
		h.stats.Failures.Inc()
		log.Error("dispatch ledger unavailable", zap.Error(err))
		return nil, &CallbackError{Err: err}
	}
	if !first {
		h.stats.Duplicates.Inc()
		log.Info("duplicate delivery, callback already dispatched")
		return &event, nil
	}

	timer := metrics.StartTimer()
	switch event.Status {
	case pagsmile.StatusSuccess:
		err = h.callbacks.OnSuccess(ctx, event)
	default: // FAILED, CANCELLED
		err = h.callbacks.OnFailed(ctx, event)
	}
	if err != nil {
		h.stats.Failures.Inc()
		log.Error("webhook callback failed", zap.Error(err))
		// Free the key so the gateway's redelivery can dispatch again.
		if relErr := h.ledger.Release(ctx, event.TradeNo, event.Status); relErr != nil {
			log.Error("failed to release dispatch mark", zap.Error(relErr))
		}
		return nil, &CallbackError{Err: err}
	}

	h.stats.Dispatched.Inc()
	log.Info("webhook dispatched", zap.Duration("took", timer.Duration()))
	return &event, nil
}
