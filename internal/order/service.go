package order

import (
	"context"

	"pagsmile-checkout/internal/config"
	"pagsmile-checkout/internal/logger"
	"pagsmile-checkout/internal/pagsmile"

	"go.uber.org/zap"
)

// CreateInput is one checkout attempt. Device metadata comes from the
// HTTP layer when available.
type CreateInput struct {
	Amount       string
	CustomerInfo pagsmile.CustomerInfo
	UserAgent    string
	IPAddress    string
}

type Service interface {
	Create(ctx context.Context, input CreateInput) (*pagsmile.CreateOrderResponse, error)
}

type service struct {
	client pagsmile.HTTPClient
	cfg    *config.Config
}

func NewService(client pagsmile.HTTPClient, cfg *config.Config) Service {
	return &service{client: client, cfg: cfg}
}

// Create validates the customer, builds the order payload and posts it
// to the gateway. The OrderRequest is discarded after the call; the
// caller keeps only the gateway's identifiers.
func (s *service) Create(ctx context.Context, input CreateInput) (*pagsmile.CreateOrderResponse, error) {
	if err := ValidateCustomer(input.CustomerInfo); err != nil {
		return nil, err
	}

	req := buildRequest(input, s.cfg)

	log := logger.FromCtx(ctx).With(
		zap.String("out_trade_no", req.OutTradeNo),
		zap.String("amount", req.OrderAmount),
		zap.String("currency", req.OrderCurrency),
	)
	log.Info("creating pagsmile order")

	var resp pagsmile.CreateOrderResponse
	if err := s.client.Post(ctx, "/trade/create", req, &resp); err != nil {
		log.Error("order creation request failed", zap.Error(err))
		return nil, err
	}

	if err := pagsmile.CheckCode(resp.Code, resp.Msg); err != nil {
		log.Error("gateway rejected order",
			zap.String("code", resp.Code),
			zap.String("msg", resp.Msg),
		)
		return nil, err
	}

	log.Info("pagsmile order created",
		zap.String("trade_no", resp.TradeNo),
		zap.String("prepay_id", resp.PrepayID),
	)

	return &resp, nil
}
