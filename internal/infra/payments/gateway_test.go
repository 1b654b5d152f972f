package payments

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"learning-platform-service/internal/domain"
)

const (
	testBaseURL          = "https://payments.example.com"
	testDonationsURL     = testBaseURL + DonationsEndpoint
	testSubscriptionsURL = testBaseURL + SubscriptionsEndpoint
)

func newTestGateway(t *testing.T) *GatewayClient {
	t.Helper()

	client := NewGatewayClient(ClientConfig{
		BaseURL: testBaseURL,
		Timeout: 5 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 2,
			WaitTime:    10 * time.Millisecond,
			MaxWaitTime: 20 * time.Millisecond,
		},
		CB: CBConfig{
			MaxRequests:  1,
			Interval:     time.Minute,
			Timeout:      time.Minute,
			FailureRatio: 0.6,
		},
	}, zap.NewNop())

	httpmock.ActivateNonDefault(client.client.GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)

	return client
}

func TestGateway_Donate_Success(t *testing.T) {
	client := newTestGateway(t)

	httpmock.RegisterResponder(http.MethodPost, testDonationsURL,
		func(req *http.Request) (*http.Response, error) {
			assert.NotEmpty(t, req.Header.Get("Idempotency-Key"))
			return httpmock.NewJsonResponse(http.StatusOK, map[string]string{
				"transaction_id": "tx-1",
				"status":         "succeeded",
			})
		})

	result, err := client.Donate(context.Background(), domain.DonationRequest{Amount: 25})
	require.NoError(t, err)
	assert.Equal(t, "tx-1", result.TransactionID)
	assert.Equal(t, domain.PaymentSucceeded, result.Status)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestGateway_Subscribe_Redirect(t *testing.T) {
	client := newTestGateway(t)

	httpmock.RegisterResponder(http.MethodPost, testSubscriptionsURL,
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]string{
			"transaction_id": "tx-2",
			"status":         "succeeded",
			"redirect_url":   "https://checkout.example.com/tx-2",
		}))

	result, err := client.Subscribe(context.Background(), domain.SubscriptionRequest{UserID: "u1", PlanID: domain.PlanProAnnual})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example.com/tx-2", result.RedirectURL)
}

func TestGateway_Declines(t *testing.T) {
	tests := []struct {
		name      string
		responder httpmock.Responder
	}{
		{
			name: "failed status",
			responder: httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]string{
				"status": "failed", "message": "card declined",
			}),
		},
		{
			name: "payment required",
			responder: httpmock.NewJsonResponderOrPanic(http.StatusPaymentRequired, map[string]string{
				"status": "failed", "message": "insufficient funds",
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestGateway(t)
			httpmock.RegisterResponder(http.MethodPost, testDonationsURL, tt.responder)

			_, err := client.Donate(context.Background(), domain.DonationRequest{Amount: 10})
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrTransactionFailed)
			assert.Equal(t, 1, httpmock.GetTotalCallCount(), "declines are not retried")
		})
	}
}

func TestGateway_ServerErrorRetried(t *testing.T) {
	client := newTestGateway(t)

	httpmock.RegisterResponder(http.MethodPost, testDonationsURL,
		httpmock.NewStringResponder(http.StatusServiceUnavailable, "down"))

	_, err := client.Donate(context.Background(), domain.DonationRequest{Amount: 10})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrTransactionFailed))
	assert.Contains(t, err.Error(), "status 503")
	assert.Equal(t, 3, httpmock.GetTotalCallCount(), "initial attempt plus two retries")
}

func TestGateway_CircuitOpens(t *testing.T) {
	client := newTestGateway(t)

	httpmock.RegisterResponder(http.MethodPost, testDonationsURL,
		httpmock.NewErrorResponder(errors.New("connection refused")))

	for i := 0; i < 3; i++ {
		_, err := client.Donate(context.Background(), domain.DonationRequest{Amount: 10})
		require.Error(t, err)
	}

	calls := httpmock.GetTotalCallCount()
	_, err := client.Donate(context.Background(), domain.DonationRequest{Amount: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
	assert.Equal(t, calls, httpmock.GetTotalCallCount(), "open breaker short-circuits")
}

func TestGateway_DeclinesDoNotTripBreaker(t *testing.T) {
	client := newTestGateway(t)

	httpmock.RegisterResponder(http.MethodPost, testDonationsURL,
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]string{"status": "failed"}))

	for i := 0; i < 5; i++ {
		_, err := client.Donate(context.Background(), domain.DonationRequest{Amount: 10})
		require.ErrorIs(t, err, domain.ErrTransactionFailed)
	}
	assert.Equal(t, 5, httpmock.GetTotalCallCount())
}

func TestGateway_HealthCheck(t *testing.T) {
	client := newTestGateway(t)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/health",
		httpmock.NewStringResponder(http.StatusOK, "ok"))
	require.NoError(t, client.HealthCheck(context.Background()))
}
