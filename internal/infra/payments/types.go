package payments

import "learning-platform-service/internal/domain"

// Gateway endpoints.
const (
	DonationsEndpoint     = "/api/donations"
	SubscriptionsEndpoint = "/api/subscriptions"
)

type donationPayload struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type subscriptionPayload struct {
	UserID string `json:"user_id"`
	PlanID string `json:"plan_id"`
}

// gatewayResponse is the body the gateway returns for both endpoints.
type gatewayResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	RedirectURL   string `json:"redirect_url,omitempty"`
	Message       string `json:"message,omitempty"`
}

func (r *gatewayResponse) toDomain() *domain.PaymentResult {
	return &domain.PaymentResult{
		TransactionID: r.TransactionID,
		Status:        domain.PaymentStatus(r.Status),
		RedirectURL:   r.RedirectURL,
	}
}
