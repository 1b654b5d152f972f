package payments

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"learning-platform-service/internal/domain"
)

// GatewayClient implements domain.PaymentsProvider over HTTP.
type GatewayClient struct {
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*gatewayResponse]
	logger *zap.Logger
}

// NewGatewayClient creates a gateway client.
func NewGatewayClient(cfg ClientConfig, logger *zap.Logger) *GatewayClient {
	return &GatewayClient{
		client: NewRestyClient(cfg),
		cb:     NewCircuitBreaker[*gatewayResponse]("payment_gateway", cfg.CB, logger),
		logger: logger,
	}
}

// Donate charges a one-off donation.
func (c *GatewayClient) Donate(ctx context.Context, req domain.DonationRequest) (*domain.PaymentResult, error) {
	return c.post(ctx, DonationsEndpoint, donationPayload{Amount: req.Amount, Currency: "USD"})
}

// Subscribe starts a subscription checkout.
func (c *GatewayClient) Subscribe(ctx context.Context, req domain.SubscriptionRequest) (*domain.PaymentResult, error) {
	return c.post(ctx, SubscriptionsEndpoint, subscriptionPayload{UserID: req.UserID, PlanID: string(req.PlanID)})
}

func (c *GatewayClient) post(ctx context.Context, endpoint string, payload interface{}) (*domain.PaymentResult, error) {
	idempotencyKey := uuid.NewString()

	resp, err := c.cb.Execute(func() (*gatewayResponse, error) {
		var result gatewayResponse
		r, err := c.client.R().
			SetContext(ctx).
			SetHeader("Idempotency-Key", idempotencyKey).
			SetBody(payload).
			SetResult(&result).
			SetError(&result).
			Post(endpoint)
		if err != nil {
			return nil, err
		}

		switch {
		case r.StatusCode() == http.StatusPaymentRequired:
			return nil, fmt.Errorf("%w: %s", domain.ErrTransactionFailed, result.Message)
		case r.IsError():
			return nil, fmt.Errorf("payment gateway returned status %d", r.StatusCode())
		case result.Status == string(domain.PaymentFailed):
			return nil, fmt.Errorf("%w: %s", domain.ErrTransactionFailed, result.Message)
		}

		return &result, nil
	})
	if err != nil {
		c.logger.Warn("payment gateway request failed",
			zap.String("endpoint", endpoint),
			zap.String("idempotency_key", idempotencyKey),
			zap.String("state", c.cb.State().String()),
			zap.Error(err),
		)

		return nil, fmt.Errorf("posting to %s: %w", endpoint, err)
	}

	c.logger.Info("payment gateway request succeeded",
		zap.String("endpoint", endpoint),
		zap.String("transaction_id", resp.TransactionID),
	)

	return resp.toDomain(), nil
}

// HealthCheck verifies the gateway is reachable.
func (c *GatewayClient) HealthCheck(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("health check returned status %d", resp.StatusCode())
	}

	return nil
}
