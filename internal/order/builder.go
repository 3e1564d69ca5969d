package order

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"pagsmile-checkout/internal/config"
	"pagsmile-checkout/internal/pagsmile"

	"github.com/google/uuid"
)

// Fixed protocol fields of the card-checkout flow.
const (
	methodCreditCard = "CreditCard"
	orderCurrency    = "BRL"
	tradeType        = "API"
	protocolVersion  = "2.0"
	orderSubject     = "Pagamento de Produto"
	orderContent     = "Pagamento via cartão de crédito"
	timeoutExpress   = "1d"

	timestampLayout = "2006-01-02 15:04:05"
)

var streetNumberRegex = regexp.MustCompile(`\d+`)

// generateOutTradeNo produces the merchant order reference. A fresh
// value per call, never derived from client input, so a client retry
// cannot collide with an earlier attempt on the gateway side.
func generateOutTradeNo() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
	return fmt.Sprintf("ORDER_%d_%s", time.Now().UnixMilli(), suffix)
}

func formatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// extractStreetNumber takes the first run of digits in the free-text
// address. "1" when there is none; the gateway requires a number and
// the form does not collect one separately. Known limitation.
func extractStreetNumber(address string) string {
	if m := streetNumberRegex.FindString(address); m != "" {
		return m
	}
	return "1"
}

func buildRequest(input CreateInput, cfg *config.Config) pagsmile.CreateOrderRequest {
	info := input.CustomerInfo

	return pagsmile.CreateOrderRequest{
		AppID:          cfg.AppID,
		OutTradeNo:     generateOutTradeNo(),
		Method:         methodCreditCard,
		OrderAmount:    input.Amount,
		OrderCurrency:  orderCurrency,
		Subject:        orderSubject,
		Content:        orderContent,
		TradeType:      tradeType,
		Timestamp:      formatTimestamp(time.Now()),
		NotifyURL:      cfg.NotifyURL,
		ReturnURL:      cfg.ReturnURL,
		TimeoutExpress: timeoutExpress,
		Version:        protocolVersion,
		BuyerID:        info.Email,
		Customer: pagsmile.Customer{
			Identify: pagsmile.CustomerIdentification{
				Type:   pagsmile.IdentifyCPF,
				Number: info.CPF,
			},
			Name:  info.Name,
			Email: info.Email,
			Phone: info.Phone,
		},
		Address: pagsmile.Address{
			ZipCode:      info.ZipCode,
			State:        info.State,
			City:         info.City,
			StreetName:   info.Address,
			StreetNumber: extractStreetNumber(info.Address),
		},
		DeviceInfo: pagsmile.DeviceInfo{
			UserAgent: input.UserAgent,
			IPAddress: input.IPAddress,
		},
	}
}
