package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learning-platform-service/internal/domain"
	"learning-platform-service/internal/validator"
)

func newTestValidator() *validator.Validator {
	return validator.New()
}

// requireFieldError asserts that err is ValidationErrors containing field with tag.
func requireFieldError(t *testing.T, err error, field, tag string) validator.ValidationError {
	t.Helper()

	require.Error(t, err)
	validationErrs, ok := err.(validator.ValidationErrors)
	require.True(t, ok, "expected ValidationErrors type, got %T", err)

	for _, ve := range validationErrs {
		if ve.Field == field {
			assert.Equal(t, tag, ve.Tag)
			return ve
		}
	}
	t.Fatalf("expected error for field %s, got %v", field, validationErrs)
	return validator.ValidationError{}
}

func TestDonationRequest_Validation_Valid(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name string
		req  DonationRequest
	}{
		{"preset only", DonationRequest{Preset: 10}},
		{"every preset", DonationRequest{Preset: 50}},
		{"custom only", DonationRequest{CustomAmount: "12.50"}},
		{"custom leading dot", DonationRequest{CustomAmount: ".5"}},
		{"custom overrides preset", DonationRequest{Preset: 5, CustomAmount: "7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, v.Validate(&tt.req))
		})
	}
}

func TestDonationRequest_Validation_Invalid(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name         string
		req          DonationRequest
		expectField  string
		expectTag    string
		expectErrMsg string
	}{
		{
			name:         "nothing selected",
			req:          DonationRequest{},
			expectField:  "preset",
			expectTag:    "required_without",
			expectErrMsg: "preset is required",
		},
		{
			name:         "unknown preset",
			req:          DonationRequest{Preset: 7},
			expectField:  "preset",
			expectTag:    "oneof",
			expectErrMsg: "must be one of: 5 10 25 50",
		},
		{
			name:         "custom with letters",
			req:          DonationRequest{CustomAmount: "12a"},
			expectField:  "custom_amount",
			expectTag:    "amount",
			expectErrMsg: "plain decimal number",
		},
		{
			name:         "custom negative",
			req:          DonationRequest{CustomAmount: "-5"},
			expectField:  "custom_amount",
			expectTag:    "amount",
			expectErrMsg: "plain decimal number",
		},
		{
			name:         "custom too long",
			req:          DonationRequest{CustomAmount: "1234567890123"},
			expectField:  "custom_amount",
			expectTag:    "max",
			expectErrMsg: "must be at most 12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := requireFieldError(t, v.Validate(&tt.req), tt.expectField, tt.expectTag)
			assert.Contains(t, ve.Message, tt.expectErrMsg)
		})
	}
}

func TestDonationRequest_ToSelection(t *testing.T) {
	req := DonationRequest{Preset: 25, CustomAmount: "3.5"}
	sel := req.ToSelection()

	assert.Equal(t, domain.DonationSelection{Preset: 25, Custom: "3.5"}, sel)
	assert.Equal(t, 3.5, sel.FinalAmount())
}

func TestSubscribeRequest_Validation(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.Validate(&SubscribeRequest{PlanID: "pro-monthly"}))
	requireFieldError(t, v.Validate(&SubscribeRequest{}), "plan_id", "required")
	requireFieldError(t, v.Validate(&SubscribeRequest{PlanID: string(make([]byte, 51))}), "plan_id", "max")
}

func TestCourseListRequest_Validation(t *testing.T) {
	v := newTestValidator()

	for _, req := range []CourseListRequest{
		{},
		{Difficulty: "beginner"},
		{Difficulty: "advanced", Limit: 100},
	} {
		assert.NoError(t, v.Validate(&req))
	}

	requireFieldError(t, v.Validate(&CourseListRequest{Difficulty: "expert"}), "difficulty", "oneof")
	requireFieldError(t, v.Validate(&CourseListRequest{Limit: 101}), "limit", "max")
	requireFieldError(t, v.Validate(&CourseListRequest{Limit: -1}), "limit", "min")
}

func TestCourseListRequest_Matches(t *testing.T) {
	beginner := &domain.Course{DifficultyLevel: domain.DifficultyBeginner}

	assert.True(t, (&CourseListRequest{}).Matches(beginner))
	assert.True(t, (&CourseListRequest{Difficulty: "beginner"}).Matches(beginner))
	assert.False(t, (&CourseListRequest{Difficulty: "advanced"}).Matches(beginner))
}

func TestContentPath_Validation(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.Validate(&ContentPath{ID: "ep-1"}))
	requireFieldError(t, v.Validate(&ContentPath{}), "id", "content_id")
	requireFieldError(t, v.Validate(&ContentPath{ID: "a b"}), "id", "content_id")
}

func TestValidationErrors_Error(t *testing.T) {
	tests := []struct {
		name     string
		errs     validator.ValidationErrors
		expected string
	}{
		{
			name:     "empty errors",
			errs:     validator.ValidationErrors{},
			expected: "",
		},
		{
			name: "multiple errors",
			errs: validator.ValidationErrors{
				{Field: "plan_id", Message: "plan_id is required"},
				{Field: "preset", Message: "preset must be one of: 5 10 25 50"},
			},
			expected: "plan_id is required; preset must be one of: 5 10 25 50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errs.Error())
		})
	}
}
