package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"pagsmile-checkout/internal/config"
	"pagsmile-checkout/internal/pagsmile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	calls  int
	postFn func(call int, endpoint string, body any, out any) error
}

func (s *stubClient) Post(_ context.Context, endpoint string, body, out any) error {
	s.calls++
	return s.postFn(s.calls, endpoint, body, out)
}

func (s *stubClient) Get(_ context.Context, endpoint string, out any) error {
	return errors.New("unexpected GET")
}

func testConfig() *config.Config {
	return &config.Config{AppID: "app-123", SecurityKey: "sec-key"}
}

func respondStatus(out any, status pagsmile.TradeStatus) {
	b, _ := json.Marshal(pagsmile.QueryTransactionResponse{
		Code:        "10000",
		Msg:         "Success",
		TradeNo:     "T1",
		OutTradeNo:  "O1",
		TradeStatus: status,
	})
	_ = json.Unmarshal(b, out)
}

func TestService_Query(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client := &stubClient{
			postFn: func(_ int, endpoint string, body, out any) error {
				assert.Equal(t, "/trade/query", endpoint)

				req, ok := body.(queryRequest)
				require.True(t, ok)
				assert.Equal(t, "app-123", req.AppID)
				assert.Equal(t, "T1", req.TradeNo)
				assert.NotEmpty(t, req.Timestamp)

				respondStatus(out, pagsmile.StatusProcessing)
				return nil
			},
		}

		svc := NewService(client, testConfig())
		resp, err := svc.Query(context.Background(), "  T1  ")
		require.NoError(t, err)
		assert.Equal(t, pagsmile.StatusProcessing, resp.TradeStatus)
	})

	t.Run("EmptyTradeNo", func(t *testing.T) {
		svc := NewService(&stubClient{}, testConfig())
		_, err := svc.Query(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrTradeNoRequired)
	})

	t.Run("RemoteError", func(t *testing.T) {
		client := &stubClient{
			postFn: func(_ int, endpoint string, body, out any) error {
				b, _ := json.Marshal(pagsmile.QueryTransactionResponse{Code: "40004", Msg: "Trade not found"})
				return json.Unmarshal(b, out)
			},
		}

		svc := NewService(client, testConfig())
		_, err := svc.Query(context.Background(), "T-missing")
		require.Error(t, err)

		var remote *pagsmile.RemoteError
		require.ErrorAs(t, err, &remote)
		assert.Equal(t, "40004", remote.Code)
	})

	t.Run("TransportError", func(t *testing.T) {
		client := &stubClient{
			postFn: func(_ int, endpoint string, body, out any) error {
				return errors.New("connection refused")
			},
		}

		svc := NewService(client, testConfig())
		_, err := svc.Query(context.Background(), "T1")
		assert.Error(t, err)
	})
}

func TestService_Poll(t *testing.T) {
	t.Run("SuccessAfterNCalls", func(t *testing.T) {
		const n = 4
		client := &stubClient{
			postFn: func(call int, _ string, _, out any) error {
				if call < n {
					respondStatus(out, pagsmile.StatusProcessing)
				} else {
					respondStatus(out, pagsmile.StatusSuccess)
				}
				return nil
			},
		}

		svc := NewService(client, testConfig())
		result, err := svc.Poll(context.Background(), "T1", 10, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, PollSuccess, result)
		assert.Equal(t, n, client.calls)
	})

	t.Run("ImmediateFailure", func(t *testing.T) {
		client := &stubClient{
			postFn: func(_ int, _ string, _, out any) error {
				respondStatus(out, pagsmile.StatusFailed)
				return nil
			},
		}

		svc := NewService(client, testConfig())
		result, err := svc.Poll(context.Background(), "T1", 10, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, PollFailed, result)
		assert.Equal(t, 1, client.calls)
	})

	t.Run("CancelledTrade", func(t *testing.T) {
		client := &stubClient{
			postFn: func(_ int, _ string, _, out any) error {
				respondStatus(out, pagsmile.StatusCancelled)
				return nil
			},
		}

		svc := NewService(client, testConfig())
		result, err := svc.Poll(context.Background(), "T1", 10, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, PollCancelled, result)
	})

	t.Run("TimeoutAfterMaxAttempts", func(t *testing.T) {
		client := &stubClient{
			postFn: func(_ int, _ string, _, out any) error {
				respondStatus(out, pagsmile.StatusProcessing)
				return nil
			},
		}

		svc := NewService(client, testConfig())
		result, err := svc.Poll(context.Background(), "T1", 5, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, PollTimeout, result)
		assert.Equal(t, 5, client.calls)
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		client := &stubClient{
			postFn: func(_ int, _ string, _, out any) error {
				respondStatus(out, pagsmile.StatusProcessing)
				cancel()
				return nil
			},
		}

		svc := NewService(client, testConfig())
		result, err := svc.Poll(ctx, "T1", 10, time.Hour)
		assert.Equal(t, PollAborted, result)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, client.calls)
	})

	t.Run("QueryErrorAborts", func(t *testing.T) {
		client := &stubClient{
			postFn: func(_ int, _ string, _, out any) error {
				return errors.New("gateway down")
			},
		}

		svc := NewService(client, testConfig())
		_, err := svc.Poll(context.Background(), "T1", 10, time.Millisecond)
		assert.Error(t, err)
		assert.Equal(t, 1, client.calls)
	})

	t.Run("DefaultsApplied", func(t *testing.T) {
		client := &stubClient{
			postFn: func(_ int, _ string, _, out any) error {
				respondStatus(out, pagsmile.StatusSuccess)
				return nil
			},
		}

		svc := NewService(client, testConfig())
		result, err := svc.Poll(context.Background(), "T1", 0, 0)
		require.NoError(t, err)
		assert.Equal(t, PollSuccess, result)
	})
}
