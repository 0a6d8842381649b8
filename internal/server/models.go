package server

import (
	"github.com/pfdash/finance-dashboard/internal/calculation"
	"github.com/pfdash/finance-dashboard/internal/domain"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SavingsProjectionRequest is the body of POST /projections/savings
type SavingsProjectionRequest struct {
	InitialBalance      float64 `json:"initial_balance" binding:"gte=0"`
	MonthlyContribution float64 `json:"monthly_contribution" binding:"gte=0"`
	AnnualRatePercent   float64 `json:"annual_rate_percent" binding:"gte=0"`
	Goal                float64 `json:"goal" binding:"gte=0"`
	Frequency           string  `json:"frequency"`
	// Horizon is the number of months charted; zero derives it from the goal estimate.
	Horizon int `json:"horizon" binding:"gte=0,lte=1200"`
}

func (r SavingsProjectionRequest) input() calculation.SavingsInput {
	return calculation.SavingsInput{
		InitialBalance:      r.InitialBalance,
		MonthlyContribution: r.MonthlyContribution,
		AnnualRatePercent:   r.AnnualRatePercent,
		Frequency:           domain.ParseInterestFrequency(r.Frequency),
	}
}

// SavingsProjectionResponse is the body returned by POST /projections/savings
type SavingsProjectionResponse struct {
	Frequency domain.InterestFrequency `json:"frequency"`
	calculation.SavingsResult
}

// PEAProjectionRequest is the body of POST /projections/pea
type PEAProjectionRequest struct {
	InitialBalance      float64 `json:"initial_balance" binding:"gte=0"`
	MonthlyContribution float64 `json:"monthly_contribution" binding:"gte=0"`
	MonthlyDividend     float64 `json:"monthly_dividend" binding:"gte=0"`
	AnnualROEPercent    float64 `json:"annual_roe_percent" binding:"gte=0"`
	// Ceiling defaults to PEACeiling when omitted or zero.
	Ceiling             float64 `json:"ceiling" binding:"gte=0"`
	ExtraMonths         *int    `json:"extra_months" binding:"omitempty,gte=0,lte=600"`
}

func (r PEAProjectionRequest) input() calculation.PEAInput {
	extra := calculation.PEAExtraMonths
	if r.ExtraMonths != nil {
		extra = *r.ExtraMonths
	}
	ceiling := r.Ceiling
	if ceiling == 0 {
		ceiling = calculation.PEACeiling
	}
	return calculation.PEAInput{
		InitialBalance:      r.InitialBalance,
		MonthlyContribution: r.MonthlyContribution,
		MonthlyDividend:     r.MonthlyDividend,
		AnnualROEPercent:    r.AnnualROEPercent,
		Ceiling:             ceiling,
		ExtraMonths:         extra,
	}
}
