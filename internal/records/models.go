// Package records owns the four raw record collections the estimator joins:
// national registry individuals, labour directorate incomes, estimated birth
// dates, and registry children. Records are immutable once loaded; a load
// cycle replaces a whole collection, never merges into it.
package records

// RegistryEntry is one person in the national registry.
type RegistryEntry struct {
	IdentityNumber       string `json:"identity_number"`
	Name                 string `json:"name"`
	Address              string `json:"address"`
	Spouse               string `json:"spouse"`
	SpouseIdentityNumber string `json:"spouse_identity_number"`
}

// IncomeEntry is one person's declared income at the labour directorate.
// Numeric fields arrive as strings in the source CSV and are coerced at
// ingestion; a missing value is 0, never null, so downstream arithmetic
// stays total.
type IncomeEntry struct {
	IdentityNumber             string  `json:"identity_number"`
	PersonalTaxDiscountPercent float64 `json:"personal_tax_discount_percent"`
	MonthIncome                float64 `json:"month_income"`
	OtherMonthIncome           float64 `json:"other_month_income"`
	PensionSavingsPercent      float64 `json:"pension_savings_percent"`
}

// EstimatedBirthEntry is a scheduled birth date for an expecting parent.
// The date is an opaque "DD.MM.YYYY" label; no calendar arithmetic is ever
// performed on it.
type EstimatedBirthEntry struct {
	ParentIdentityNumber string `json:"parent_identity_number"`
	EstimatedBirthDate   string `json:"estimated_birth_date"`
}

// ChildEntry is one registered child linked to a parent.
type ChildEntry struct {
	Name                 string `json:"name"`
	IdentityNumber       string `json:"identity_number"`
	ParentIdentityNumber string `json:"parent_identity_number"`
	BirthDate            string `json:"birth_date"`
}

// Snapshot is a complete set of the four collections. Loaders build one and
// hand it to a Store in a single Replace, so readers never observe a
// half-loaded state.
type Snapshot struct {
	Registry       []RegistryEntry
	Incomes        []IncomeEntry
	BirthEstimates []EstimatedBirthEntry
	Children       []ChildEntry
}
