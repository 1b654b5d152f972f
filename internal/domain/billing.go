package domain

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrNotAuthenticated is returned when an anonymous user chooses a plan.
	ErrNotAuthenticated = errors.New("please log in to choose a plan")
	// ErrUnknownPlan is returned for a plan id that is not offered.
	ErrUnknownPlan = errors.New("unknown subscription plan")
	// ErrAlreadyOnPlan is returned when the chosen plan is the current one.
	ErrAlreadyOnPlan = errors.New("already subscribed to this plan")
	// ErrInvalidAmount is returned for a donation amount that is not positive.
	ErrInvalidAmount = errors.New("please select or enter a valid donation amount")
	// ErrTransactionFailed is returned when the payments provider declines or fails.
	ErrTransactionFailed = errors.New("transaction failed")
)

// AuthUser is the authenticated principal.
type AuthUser struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// AuthState is what the auth provider exposes to request handlers.
type AuthState struct {
	IsAuthenticated bool      `json:"is_authenticated"`
	User            *AuthUser `json:"user"`
}

// Anonymous returns the unauthenticated state.
func Anonymous() AuthState {
	return AuthState{}
}

// PlanID identifies a subscription plan.
type PlanID string

const (
	PlanFree       PlanID = "free"
	PlanProMonthly PlanID = "pro-monthly"
	PlanProAnnual  PlanID = "pro-annual"
)

// PlanFeature is a line of a plan's feature list.
type PlanFeature struct {
	Text     string `json:"text"`
	Included bool   `json:"included"`
}

// Plan is a subscription offering.
type Plan struct {
	ID           PlanID        `json:"id"`
	Name         string        `json:"name"`
	Price        string        `json:"price"`
	BillingCycle string        `json:"billing_cycle"`
	Description  string        `json:"description"`
	Features     []PlanFeature `json:"features"`
	IsPopular    bool          `json:"is_popular"`
	CTAText      string        `json:"cta_text"`
}

// PriceSuffix returns "/yr" for annual plans, "/mo" for other paid plans and "" for free ones.
func (p Plan) PriceSuffix() string {
	if p.Price == "$0" {
		return ""
	}
	if strings.Contains(string(p.ID), "annual") {
		return "/yr"
	}
	return "/mo"
}

// DefaultPlans returns the plans offered on the subscription page.
func DefaultPlans() []Plan {
	return []Plan{
		{
			ID:           PlanFree,
			Name:         "Free",
			Price:        "$0",
			BillingCycle: "Forever",
			Description:  "Get started with the basics.",
			Features: []PlanFeature{
				{Text: "Access to free courses", Included: true},
				{Text: "Community forum", Included: true},
				{Text: "Full course library", Included: false},
				{Text: "Certificates of completion", Included: false},
			},
			CTAText: "Get Started",
		},
		{
			ID:           PlanProMonthly,
			Name:         "Pro Monthly",
			Price:        "$15",
			BillingCycle: "Billed monthly",
			Description:  "Unlock every course and track your progress.",
			Features: []PlanFeature{
				{Text: "Access to free courses", Included: true},
				{Text: "Community forum", Included: true},
				{Text: "Full course library", Included: true},
				{Text: "Certificates of completion", Included: true},
			},
			IsPopular: true,
			CTAText:   "Go Pro",
		},
		{
			ID:           PlanProAnnual,
			Name:         "Pro Annual",
			Price:        "$150",
			BillingCycle: "Billed annually",
			Description:  "Two months free compared to monthly billing.",
			Features: []PlanFeature{
				{Text: "Access to free courses", Included: true},
				{Text: "Community forum", Included: true},
				{Text: "Full course library", Included: true},
				{Text: "Certificates of completion", Included: true},
			},
			CTAText: "Save with Annual",
		},
	}
}

// CurrentPlanID returns the plan of the given user. Authenticated users are on
// the free plan until subscriptions are persisted; anonymous users have none.
func CurrentPlanID(auth AuthState) PlanID {
	if auth.IsAuthenticated {
		return PlanFree
	}
	return ""
}

// SubscriptionRequest is sent to the payments provider to start a checkout.
type SubscriptionRequest struct {
	UserID string `json:"user_id"`
	PlanID PlanID `json:"plan_id"`
}

// PresetDonationAmounts are the one-click donation amounts in dollars.
var PresetDonationAmounts = []float64{5, 10, 25, 50}

// DefaultDonationAmount is the preset selected when the page opens.
const DefaultDonationAmount = 10

var customAmountPattern = regexp.MustCompile(`^\d*\.?\d*$`)

// IsCustomAmountInput reports whether s is acceptable input for the custom amount field.
func IsCustomAmountInput(s string) bool {
	return customAmountPattern.MatchString(s)
}

// ParseCustomAmount parses a custom amount; unparsable or rejected input yields 0.
func ParseCustomAmount(s string) float64 {
	if !IsCustomAmountInput(s) {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// DonationSelection is the donor's choice: a preset amount or a custom one.
type DonationSelection struct {
	Preset float64
	Custom string
}

// FinalAmount returns the amount to donate. A non-empty custom value takes precedence.
func (s DonationSelection) FinalAmount() float64 {
	if s.Custom != "" {
		return ParseCustomAmount(s.Custom)
	}
	return s.Preset
}

// DonationRequest is sent to the payments provider.
type DonationRequest struct {
	Amount float64 `json:"amount"`
}

// PaymentStatus is the outcome reported by a payments provider.
type PaymentStatus string

const (
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
)

// PaymentResult is a successful payments provider response.
type PaymentResult struct {
	TransactionID string        `json:"transaction_id"`
	Status        PaymentStatus `json:"status"`
	RedirectURL   string        `json:"redirect_url,omitempty"`
}
