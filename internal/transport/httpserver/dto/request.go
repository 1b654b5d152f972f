// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import (
	"learning-platform-service/internal/domain"
)

// ContentPath is the path parameter of the watch endpoints.
type ContentPath struct {
	ID string `params:"id" validate:"content_id,max=100"`
}

// CourseListRequest represents the query parameters for listing courses.
type CourseListRequest struct {
	Difficulty string `query:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Limit      int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// Matches reports whether the course passes the difficulty filter.
func (r *CourseListRequest) Matches(c *domain.Course) bool {
	return r.Difficulty == "" || string(c.DifficultyLevel) == r.Difficulty
}

// SubscribeRequest represents the request body for choosing a plan.
type SubscribeRequest struct {
	PlanID string `json:"plan_id" validate:"required,max=50"`
}

// DonationRequest represents the request body for a donation.
// A non-empty custom_amount overrides the preset.
type DonationRequest struct {
	Preset       int    `json:"preset" validate:"required_without=CustomAmount,omitempty,oneof=5 10 25 50"`
	CustomAmount string `json:"custom_amount" validate:"omitempty,max=12,amount"`
}

// ToSelection converts DonationRequest to domain.DonationSelection.
func (r *DonationRequest) ToSelection() domain.DonationSelection {
	return domain.DonationSelection{
		Preset: float64(r.Preset),
		Custom: r.CustomAmount,
	}
}
