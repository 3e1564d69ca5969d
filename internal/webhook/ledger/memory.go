package ledger

import (
	"context"
	"sync"

	"pagsmile-checkout/internal/pagsmile"
)

// Memory is a process-local Ledger for single-instance deployments and
// tests. Deduplication does not survive a restart and is not shared
// across replicas; load-balanced deployments need the Postgres ledger.
type Memory struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewMemory() *Memory {
	return &Memory{seen: make(map[string]struct{})}
}

func (m *Memory) MarkDispatched(_ context.Context, tradeNo string, status pagsmile.TradeStatus) (bool, error) {
	key := tradeNo + "|" + string(status)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, dup := m.seen[key]; dup {
		return false, nil
	}
	m.seen[key] = struct{}{}
	return true, nil
}

func (m *Memory) Release(_ context.Context, tradeNo string, status pagsmile.TradeStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.seen, tradeNo+"|"+string(status))
	return nil
}

var _ Ledger = (*Memory)(nil)
