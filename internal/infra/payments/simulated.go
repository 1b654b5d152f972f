package payments

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"learning-platform-service/internal/domain"
)

// SimulatedConfig holds the simulated provider's behaviour.
type SimulatedConfig struct {
	Delay                   time.Duration
	DonationFailureRate     float64
	SubscriptionFailureRate float64
}

// SimulatedProvider stands in for a payments backend: it waits, then fails
// with a fixed probability.
type SimulatedProvider struct {
	cfg    SimulatedConfig
	logger *zap.Logger

	random func() float64
	newID  func() string
}

// NewSimulatedProvider creates a simulated payments provider.
func NewSimulatedProvider(cfg SimulatedConfig, logger *zap.Logger) *SimulatedProvider {
	return &SimulatedProvider{
		cfg:    cfg,
		logger: logger,
		random: rand.Float64,
		newID:  uuid.NewString,
	}
}

// Donate simulates a donation charge.
func (p *SimulatedProvider) Donate(ctx context.Context, req domain.DonationRequest) (*domain.PaymentResult, error) {
	return p.process(ctx, "donation", p.cfg.DonationFailureRate, zap.Float64("amount", req.Amount))
}

// Subscribe simulates a subscription checkout.
func (p *SimulatedProvider) Subscribe(ctx context.Context, req domain.SubscriptionRequest) (*domain.PaymentResult, error) {
	return p.process(ctx, "subscription", p.cfg.SubscriptionFailureRate,
		zap.String("user_id", req.UserID),
		zap.String("plan_id", string(req.PlanID)),
	)
}

func (p *SimulatedProvider) process(ctx context.Context, kind string, failureRate float64, fields ...zap.Field) (*domain.PaymentResult, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	fields = append(fields, zap.String("kind", kind))
	if failureRate > 0 && p.random() <= failureRate {
		p.logger.Info("simulated payment failed", fields...)
		return nil, fmt.Errorf("simulated %s: %w", kind, domain.ErrTransactionFailed)
	}

	result := &domain.PaymentResult{
		TransactionID: p.newID(),
		Status:        domain.PaymentSucceeded,
	}
	p.logger.Info("simulated payment succeeded", append(fields, zap.String("transaction_id", result.TransactionID))...)

	return result, nil
}

func (p *SimulatedProvider) wait(ctx context.Context) error {
	if p.cfg.Delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(p.cfg.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
