package ledger

import (
	"context"
	"database/sql"
	"errors"

	"pagsmile-checkout/internal/pagsmile"
)

// Postgres is the durable Ledger. The unique index on
// (trade_no, status) plus ON CONFLICT DO NOTHING gives first-writer-wins
// semantics across replicas.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) MarkDispatched(ctx context.Context, tradeNo string, status pagsmile.TradeStatus) (bool, error) {
	const q = `
	INSERT INTO payment_dispatches (trade_no, status)
	VALUES ($1, $2)
	ON CONFLICT (trade_no, status)
	DO NOTHING
	RETURNING id;
	`

	var id int64
	err := p.db.QueryRowContext(ctx, q, tradeNo, string(status)).Scan(&id)
	if err != nil {
		// Conflict: a callback already fired for this event.
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (p *Postgres) Release(ctx context.Context, tradeNo string, status pagsmile.TradeStatus) error {
	const q = `
	DELETE FROM payment_dispatches
	WHERE trade_no = $1 AND status = $2;
	`

	_, err := p.db.ExecContext(ctx, q, tradeNo, string(status))
	return err
}

var _ Ledger = (*Postgres)(nil)
