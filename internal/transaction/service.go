package transaction

import (
	"context"
	"errors"
	"strings"
	"time"

	"pagsmile-checkout/internal/config"
	"pagsmile-checkout/internal/logger"
	"pagsmile-checkout/internal/pagsmile"

	"go.uber.org/zap"
)

// ErrTradeNoRequired signals a missing or blank gateway transaction id.
var ErrTradeNoRequired = errors.New("Trade number is required")

// PollResult is the outcome of a status-reconciliation loop. TIMEOUT is
// a valid "still pending" result, not an error: the gateway webhook may
// resolve the transaction after the loop gives up. ABORTED means the
// caller's context was cancelled before a terminal status was seen.
type PollResult string

const (
	PollSuccess   PollResult = "SUCCESS"
	PollFailed    PollResult = "FAILED"
	PollCancelled PollResult = "CANCELLED"
	PollTimeout   PollResult = "TIMEOUT"
	PollAborted   PollResult = "ABORTED"
)

// Defaults for the client-facing polling loop (≈20s ceiling).
const (
	DefaultPollAttempts = 10
	DefaultPollInterval = 2 * time.Second
)

type Service interface {
	Query(ctx context.Context, tradeNo string) (*pagsmile.QueryTransactionResponse, error)
	Poll(ctx context.Context, tradeNo string, maxAttempts int, interval time.Duration) (PollResult, error)
}

type queryRequest struct {
	AppID     string `json:"app_id"`
	Timestamp string `json:"timestamp"`
	TradeNo   string `json:"trade_no"`
}

type service struct {
	client pagsmile.HTTPClient
	cfg    *config.Config
}

func NewService(client pagsmile.HTTPClient, cfg *config.Config) Service {
	return &service{client: client, cfg: cfg}
}

// Query issues a fresh /trade/query round trip. No caching: the status
// can change between calls.
func (s *service) Query(ctx context.Context, tradeNo string) (*pagsmile.QueryTransactionResponse, error) {
	tradeNo = strings.TrimSpace(tradeNo)
	if tradeNo == "" {
		return nil, ErrTradeNoRequired
	}

	log := logger.FromCtx(ctx).With(zap.String("trade_no", tradeNo))

	req := queryRequest{
		AppID:     s.cfg.AppID,
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
		TradeNo:   tradeNo,
	}

	var resp pagsmile.QueryTransactionResponse
	if err := s.client.Post(ctx, "/trade/query", req, &resp); err != nil {
		log.Error("transaction query failed", zap.Error(err))
		return nil, err
	}

	if err := pagsmile.CheckCode(resp.Code, resp.Msg); err != nil {
		log.Error("gateway rejected query",
			zap.String("code", resp.Code),
			zap.String("msg", resp.Msg),
		)
		return nil, err
	}

	log.Debug("transaction queried", zap.String("trade_status", string(resp.TradeStatus)))

	return &resp, nil
}

// Poll bridges the gap between order creation and webhook arrival.
// It returns on the first terminal status, on attempt exhaustion
// (PollTimeout) or on context cancellation (PollAborted with ctx.Err()).
func (s *service) Poll(ctx context.Context, tradeNo string, maxAttempts int, interval time.Duration) (PollResult, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultPollAttempts
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	log := logger.FromCtx(ctx).With(
		zap.String("trade_no", tradeNo),
		zap.Int("max_attempts", maxAttempts),
	)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return PollAborted, err
		}

		resp, err := s.Query(ctx, tradeNo)
		if err != nil {
			if ctx.Err() != nil {
				return PollAborted, ctx.Err()
			}
			return "", err
		}

		switch resp.TradeStatus {
		case pagsmile.StatusSuccess:
			return PollSuccess, nil
		case pagsmile.StatusFailed:
			return PollFailed, nil
		case pagsmile.StatusCancelled:
			return PollCancelled, nil
		}

		// Not terminal yet. Skip the final wait: the loop is done anyway.
		if attempt == maxAttempts-1 {
			break
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return PollAborted, ctx.Err()
		case <-timer.C:
		}
	}

	log.Info("polling exhausted without terminal status")
	return PollTimeout, nil
}
