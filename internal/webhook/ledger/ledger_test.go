package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"pagsmile-checkout/internal/pagsmile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_MarkDispatched(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstWriterWins", func(t *testing.T) {
		m := NewMemory()

		first, err := m.MarkDispatched(ctx, "T1", pagsmile.StatusSuccess)
		require.NoError(t, err)
		assert.True(t, first)

		again, err := m.MarkDispatched(ctx, "T1", pagsmile.StatusSuccess)
		require.NoError(t, err)
		assert.False(t, again)
	})

	t.Run("DistinctStatusesAreDistinctEvents", func(t *testing.T) {
		m := NewMemory()

		first, _ := m.MarkDispatched(ctx, "T1", pagsmile.StatusFailed)
		assert.True(t, first)

		other, _ := m.MarkDispatched(ctx, "T1", pagsmile.StatusCancelled)
		assert.True(t, other)
	})

	t.Run("ReleaseAllowsRedispatch", func(t *testing.T) {
		m := NewMemory()

		first, _ := m.MarkDispatched(ctx, "T2", pagsmile.StatusSuccess)
		require.True(t, first)

		require.NoError(t, m.Release(ctx, "T2", pagsmile.StatusSuccess))

		again, _ := m.MarkDispatched(ctx, "T2", pagsmile.StatusSuccess)
		assert.True(t, again)
	})

	t.Run("ConcurrentMarksSingleWinner", func(t *testing.T) {
		m := NewMemory()

		var wg sync.WaitGroup
		winners := make(chan bool, 50)
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				first, err := m.MarkDispatched(ctx, "T-race", pagsmile.StatusSuccess)
				assert.NoError(t, err)
				winners <- first
			}()
		}
		wg.Wait()
		close(winners)

		count := 0
		for first := range winners {
			if first {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})
}

func TestPostgres_MarkDispatched(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstWrite", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO payment_dispatches`).
			WithArgs("T1", "SUCCESS").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

		first, err := NewPostgres(db).MarkDispatched(ctx, "T1", pagsmile.StatusSuccess)
		require.NoError(t, err)
		assert.True(t, first)
	})

	t.Run("Duplicate", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO payment_dispatches`).
			WithArgs("T1", "SUCCESS").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		first, err := NewPostgres(db).MarkDispatched(ctx, "T1", pagsmile.StatusSuccess)
		require.NoError(t, err)
		assert.False(t, first)
	})

	t.Run("DBError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO payment_dispatches`).
			WillReturnError(errors.New("connection lost"))

		_, err = NewPostgres(db).MarkDispatched(ctx, "T1", pagsmile.StatusFailed)
		assert.Error(t, err)
	})

	t.Run("Release", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM payment_dispatches`).
			WithArgs("T1", "SUCCESS").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = NewPostgres(db).Release(ctx, "T1", pagsmile.StatusSuccess)
		assert.NoError(t, err)
	})
}
