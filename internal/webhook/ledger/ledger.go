// Package ledger deduplicates terminal-event dispatch. Gateways
// redeliver webhooks, and polling can race a delivery; the ledger is the
// single source of truth for "has a callback already fired for this
// transaction and status".
package ledger

import (
	"context"

	"pagsmile-checkout/internal/pagsmile"
)

// Ledger records terminal dispatches keyed by (trade_no, status) with a
// first-writer-wins policy. Implementations must be safe for concurrent
// use.
type Ledger interface {
	// MarkDispatched returns true when this call is the first writer for
	// the key and the caller may invoke business callbacks. A false
	// result is a recorded duplicate, not an error.
	MarkDispatched(ctx context.Context, tradeNo string, status pagsmile.TradeStatus) (bool, error)

	// Release removes the mark after a failed callback so the gateway's
	// redelivery can dispatch again.
	Release(ctx context.Context, tradeNo string, status pagsmile.TradeStatus) error
}
