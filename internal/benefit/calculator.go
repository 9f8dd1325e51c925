package benefit

import "orlof/internal/records"

// Calculate turns a validated request into per-period monetary breakdowns.
// It is a pure function: no I/O, no clock, no randomness. income may be nil
// for non-labor working types; labor types must have the caller resolve an
// income record first (see Service.Calculate).
//
// Output period order mirrors the input order, and StartDate/EndDate are
// copied through untouched.
func Calculate(req CalculationRequest, income *records.IncomeEntry) CalculationResponse {
	resp := CalculationResponse{
		IdentityNumber: req.IdentityNumber,
		Periods:        make([]CalculatedPeriod, 0, len(req.Periods)),
	}

	minimum := MinimumAmountFor(req.WorkingType)
	discount := req.PersonalDiscountPercent / 100 * PersonalTaxCredit

	if !req.WorkingType.RequiresIncome() {
		for _, p := range req.Periods {
			resp.Periods = append(resp.Periods, flatPeriod(p, minimum, discount))
		}
		return resp
	}

	averageSalary := income.MonthIncome + income.OtherMonthIncome
	reducedBase := averageSalary * 0.8
	pensionFund := reducedBase * PensionFundRate / 100
	pensionSavings := reducedBase * req.PensionSavingsPercent / 100

	// Floor applies after the cap: a claimant whose capped base falls below
	// the minimum still gets the minimum.
	cappedBase := reducedBase
	if cappedBase > MaximumAmount {
		cappedBase = MaximumAmount
	}
	if cappedBase < minimum {
		cappedBase = minimum
	}

	for _, p := range req.Periods {
		resp.Periods = append(resp.Periods, laborPeriod(p, cappedBase, pensionFund, pensionSavings, discount))
	}
	return resp
}

// flatPeriod computes an OutOfLabor/Education period: the flat minimum,
// taxed in full, with no pension deductions.
func flatPeriod(p Period, gross, discount float64) CalculatedPeriod {
	rate := RateFor(gross)
	tax := rate / 100 * gross
	return CalculatedPeriod{
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		AmountGross: gross,
		AmountNet:   gross - (tax - discount),
		Tax: Tax{
			Total:        tax,
			RateSelected: rate,
			Discount:     discount,
		},
	}
}

// laborPeriod computes a FullTime/PartTime period: the capped base scaled by
// the leave percentage, with pension deductions taken before tax.
func laborPeriod(p Period, cappedBase, pensionFund, pensionSavings, discount float64) CalculatedPeriod {
	gross := cappedBase * p.LeavePercentage / 100
	rate := RateFor(gross)
	tax := rate / 100 * (gross - pensionFund - pensionSavings)
	fund := pensionFund
	savings := pensionSavings
	return CalculatedPeriod{
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		AmountGross:    gross,
		AmountNet:      gross - pensionFund - pensionSavings - (tax - discount),
		PensionFond:    &fund,
		PensionSavings: &savings,
		Tax: Tax{
			Total:        tax,
			RateSelected: rate,
			Discount:     discount,
		},
	}
}
