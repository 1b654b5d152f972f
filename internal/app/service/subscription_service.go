package service

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"learning-platform-service/internal/domain"
)

// PlansView is the subscription page for one viewer.
type PlansView struct {
	Plans         []PlanView    `json:"plans"`
	CurrentPlanID domain.PlanID `json:"current_plan_id,omitempty"`
}

// PlanView is a plan with its per-viewer presentation.
type PlanView struct {
	domain.Plan
	PriceSuffix string `json:"price_suffix"`
	IsCurrent   bool   `json:"is_current"`
}

// SubscriptionResult is returned when a plan checkout starts.
type SubscriptionResult struct {
	Plan    domain.Plan           `json:"plan"`
	Payment *domain.PaymentResult `json:"payment"`
	Message string                `json:"message"`
}

// SubscriptionService handles plan listing and plan selection.
type SubscriptionService struct {
	payments domain.PaymentsProvider
	plans    []domain.Plan
	logger   *zap.Logger
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(payments domain.PaymentsProvider, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{
		payments: payments,
		plans:    domain.DefaultPlans(),
		logger:   logger,
	}
}

// Plans returns the offered plans as seen by auth.
func (s *SubscriptionService) Plans(auth domain.AuthState) PlansView {
	current := domain.CurrentPlanID(auth)

	return PlansView{
		CurrentPlanID: current,
		Plans: lo.Map(s.plans, func(p domain.Plan, _ int) PlanView {
			return PlanView{Plan: p, PriceSuffix: p.PriceSuffix(), IsCurrent: p.ID == current}
		}),
	}
}

// ChoosePlan starts a checkout for planID.
// Anonymous users, unknown plans and the current plan are rejected before payments is called.
func (s *SubscriptionService) ChoosePlan(ctx context.Context, auth domain.AuthState, planID domain.PlanID) (*SubscriptionResult, error) {
	if !auth.IsAuthenticated || auth.User == nil {
		return nil, &ActionError{Message: "Please log in to choose a plan.", Err: domain.ErrNotAuthenticated}
	}

	plan, ok := lo.Find(s.plans, func(p domain.Plan) bool { return p.ID == planID })
	if !ok {
		return nil, &ActionError{Message: fmt.Sprintf("Unknown plan %q.", planID), Err: domain.ErrUnknownPlan}
	}

	if planID == domain.CurrentPlanID(auth) {
		return nil, &ActionError{Message: fmt.Sprintf("You are already on the %s plan.", plan.Name), Err: domain.ErrAlreadyOnPlan}
	}

	log := s.logger.With(zap.String("user_id", auth.User.ID), zap.String("plan_id", string(planID)))
	log.Info("starting subscription checkout")

	payment, err := s.payments.Subscribe(ctx, domain.SubscriptionRequest{UserID: auth.User.ID, PlanID: planID})
	if err != nil {
		log.Warn("subscription checkout failed", zap.Error(err))
		return nil, &ActionError{
			Message: fmt.Sprintf("Something went wrong while trying to select the %s plan. Please try again.", planID),
			Err:     fmt.Errorf("%w: %w", domain.ErrTransactionFailed, err),
		}
	}

	return &SubscriptionResult{
		Plan:    plan,
		Payment: payment,
		Message: fmt.Sprintf("Successfully initiated process for %s!", planID),
	}, nil
}
