// Package profile joins the four record collections into combined per-person
// profiles and answers ranking queries over them. Aggregation is an outer
// join with zero defaults: a person present in the registry but absent from
// income data is a valid, fully formed profile, never an error.
package profile

// CombinedProfile is the joined view of one person across all sources. It is
// built on demand, never stored, and never mutated after construction.
type CombinedProfile struct {
	IdentityNumber string `json:"identity_number"`
	Name           string `json:"name"`
	Address        string `json:"address"`

	HasIncome   bool `json:"has_income"`
	HasChildren bool `json:"has_children"`

	MonthIncome           float64 `json:"month_income"`
	OtherMonthIncome      float64 `json:"other_month_income"`
	PensionSavingsPercent float64 `json:"pension_savings_percent"`
	PersonalDiscount      float64 `json:"personal_discount"`

	// EstimatedChildBirthDate is nil when no birth estimate exists for the
	// person. Consumers must guard the nil before inspecting the date.
	EstimatedChildBirthDate *string `json:"estimated_child_birth_date"`
}

// CombinedIncome is the ranking key for income queries.
func (p CombinedProfile) CombinedIncome() float64 {
	return p.MonthIncome + p.OtherMonthIncome
}

// noData is what the original system reports for registry fields of an
// identity the registry does not know.
const noData = "NO DATA"
