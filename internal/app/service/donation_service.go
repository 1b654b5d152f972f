package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"learning-platform-service/internal/domain"
)

// DonationOptions is what the donation form offers.
type DonationOptions struct {
	Presets []float64 `json:"presets"`
	Default float64   `json:"default"`
}

// DonationResult is returned for a successful donation.
type DonationResult struct {
	Amount  float64               `json:"amount"`
	Payment *domain.PaymentResult `json:"payment"`
	Message string                `json:"message"`
}

// DonationService handles one-off donations.
type DonationService struct {
	payments domain.PaymentsProvider
	logger   *zap.Logger
}

// NewDonationService creates a new DonationService.
func NewDonationService(payments domain.PaymentsProvider, logger *zap.Logger) *DonationService {
	return &DonationService{
		payments: payments,
		logger:   logger,
	}
}

// Options returns the preset amounts and the default selection.
func (s *DonationService) Options() DonationOptions {
	presets := make([]float64, len(domain.PresetDonationAmounts))
	copy(presets, domain.PresetDonationAmounts)

	return DonationOptions{Presets: presets, Default: domain.DefaultDonationAmount}
}

// Donate charges the selected amount. Amounts that are not positive are rejected
// before payments is called.
func (s *DonationService) Donate(ctx context.Context, sel domain.DonationSelection) (*DonationResult, error) {
	amount := sel.FinalAmount()
	if amount <= 0 {
		return nil, &ActionError{Message: "Please select or enter a valid donation amount.", Err: domain.ErrInvalidAmount}
	}

	s.logger.Info("processing donation", zap.Float64("amount", amount))

	payment, err := s.payments.Donate(ctx, domain.DonationRequest{Amount: amount})
	if err != nil {
		s.logger.Warn("donation failed", zap.Float64("amount", amount), zap.Error(err))
		return nil, &ActionError{
			Message: "Something went wrong processing the donation. Please try again later.",
			Err:     fmt.Errorf("%w: %w", domain.ErrTransactionFailed, err),
		}
	}

	return &DonationResult{
		Amount:  amount,
		Payment: payment,
		Message: fmt.Sprintf("Thank you for your generous $%s donation!", formatAmount(amount)),
	}, nil
}

// formatAmount prints whole dollars without decimals: 10 -> "10", 12.5 -> "12.5".
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
