// Package benefit implements the parental-leave benefit calculation engine:
// working-type minimum floors, the capped average-salary base, pension
// deductions, and the progressive tax brackets.
package benefit

import (
	"fmt"

	dErrors "orlof/pkg/domain-errors"
)

// WorkingType classifies a claimant's labor-market status. It selects the
// minimum benefit floor and decides whether the income-proportional formula
// applies.
type WorkingType string

const (
	WorkingTypeFullTime   WorkingType = "FullTime"
	WorkingTypePartTime   WorkingType = "PartTime"
	WorkingTypeOutOfLabor WorkingType = "OutOfLabor"
	WorkingTypeEducation  WorkingType = "Education"
)

// RequiresIncome reports whether the working type uses the income-proportional
// labor formula, which needs an income record for the claimant.
func (w WorkingType) RequiresIncome() bool {
	return w == WorkingTypeFullTime || w == WorkingTypePartTime
}

func (w WorkingType) valid() bool {
	switch w {
	case WorkingTypeFullTime, WorkingTypePartTime, WorkingTypeOutOfLabor, WorkingTypeEducation:
		return true
	}
	return false
}

// Period is one requested leave period. StartDate and EndDate are opaque
// labels copied verbatim to the output; no date arithmetic is performed.
type Period struct {
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	LeavePercentage float64 `json:"leave_percentage"`
}

// CalculationRequest is one benefit estimation request.
type CalculationRequest struct {
	IdentityNumber          string      `json:"identity_number"`
	WorkingType             WorkingType `json:"working_type"`
	PensionSavingsPercent   float64     `json:"pension_savings_percent"`
	PersonalDiscountPercent float64     `json:"personal_discount_percent"`
	Periods                 []Period    `json:"periods"`
}

// Validate rejects malformed requests before any computation starts.
func (r CalculationRequest) Validate() error {
	if r.IdentityNumber == "" {
		return dErrors.New(dErrors.CodeValidation, "identity_number is required")
	}
	if !r.WorkingType.valid() {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown working_type %q", r.WorkingType))
	}
	if len(r.Periods) == 0 {
		return dErrors.New(dErrors.CodeValidation, "at least one period is required")
	}
	if r.PensionSavingsPercent < 0 {
		return dErrors.New(dErrors.CodeValidation, "pension_savings_percent must not be negative")
	}
	if r.PersonalDiscountPercent < 0 {
		return dErrors.New(dErrors.CodeValidation, "personal_discount_percent must not be negative")
	}
	for i, p := range r.Periods {
		if p.LeavePercentage < 0 || p.LeavePercentage > 100 {
			return dErrors.New(dErrors.CodeValidation,
				fmt.Sprintf("periods[%d]: leave_percentage must be between 0 and 100", i))
		}
	}
	return nil
}

// Tax is the tax breakdown for one calculated period.
type Tax struct {
	Total        float64 `json:"total"`
	RateSelected float64 `json:"rate_selected"`
	Discount     float64 `json:"discount"`
}

// CalculatedPeriod is the monetary breakdown for one leave period. The
// pension fields are nil for non-labor working types, which pay the flat
// minimum with no salary-based deductions.
type CalculatedPeriod struct {
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	AmountGross    float64  `json:"amount_gross"`
	AmountNet      float64  `json:"amount_net"`
	PensionFond    *float64 `json:"pension_fond,omitempty"`
	PensionSavings *float64 `json:"pension_savings,omitempty"`
	Tax            Tax      `json:"tax"`
}

// CalculationResponse holds the per-period results in request order.
type CalculationResponse struct {
	IdentityNumber string             `json:"identity_number"`
	Periods        []CalculatedPeriod `json:"periods"`
}
