package benefit

// Fixed calculation constants. These mirror the published benefit rules and
// change only with legislation, so they are compiled in rather than
// configured.
const (
	// MaximumAmount caps the salary-derived benefit base per period.
	MaximumAmount = 600000

	// PensionFundRate is the mandatory pension fund deduction, in percent of
	// the reduced salary base.
	PensionFundRate = 4

	// PersonalTaxCredit is the monthly personal tax credit the discount
	// percentage applies to.
	PersonalTaxCredit = 54628
)

// Minimum benefit floors per working type.
const (
	minimumFullTime   = 184119
	minimumPartTime   = 132850
	minimumOutOfLabor = 80341
	minimumEducation  = 184119
)

// Progressive tax brackets: upper bound of the bracket and the rate applied
// when the gross amount falls inside it.
const (
	taxBracketLower = 336916
	taxBracketUpper = 945873

	taxRateLower  = 35.04
	taxRateMiddle = 37.19
	taxRateUpper  = 46.24
)

// MinimumAmountFor returns the minimum benefit floor for the working type.
// Unknown types return 0; callers validate before calculating.
func MinimumAmountFor(w WorkingType) float64 {
	switch w {
	case WorkingTypeFullTime:
		return minimumFullTime
	case WorkingTypePartTime:
		return minimumPartTime
	case WorkingTypeOutOfLabor:
		return minimumOutOfLabor
	case WorkingTypeEducation:
		return minimumEducation
	}
	return 0
}

// RateFor selects the tax rate for a gross period amount. Bracket bounds are
// inclusive on the lower side of each step.
func RateFor(amount float64) float64 {
	switch {
	case amount <= taxBracketLower:
		return taxRateLower
	case amount <= taxBracketUpper:
		return taxRateMiddle
	default:
		return taxRateUpper
	}
}
