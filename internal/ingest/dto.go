package ingest

import (
	"encoding/json"
	"strconv"
	"strings"

	"orlof/internal/records"
	"orlof/pkg/identity"
)

// floatString absorbs upstream numeric fields that arrive either as JSON
// numbers or as raw CSV strings passed through untouched. Malformed values
// decode to 0 rather than failing the whole fetch.
type floatString float64

func (f *floatString) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = floatString(v)
	return nil
}

// Upstream field casing is inconsistent between endpoints ("SSN", "Ssn",
// "ParentSSN", "ParentSsn"). encoding/json matches field names
// case-insensitively as a fallback, which absorbs all variants.

type individualDTO struct {
	Name      string `json:"Name"`
	Ssn       string `json:"Ssn"`
	Address   string `json:"Address"`
	Spouse    string `json:"Spouse"`
	SpouseSsn string `json:"SpouseSSN"`
}

type childDTO struct {
	Name      string `json:"Name"`
	Ssn       string `json:"Ssn"`
	ParentSsn string `json:"ParentSSN"`
	BirthDate string `json:"BirthDate"`
}

type incomeDTO struct {
	Ssn                 string      `json:"Ssn"`
	PersonalTaxDiscount floatString `json:"PersonalTaxDiscount"`
	MonthIncome         floatString `json:"MonthIncome"`
	OtherMonthIncome    floatString `json:"OtherMonthIncome"`
	PensionSavings      floatString `json:"PensionSavings"`
}

type birthEstimateDTO struct {
	ParentSsn          string `json:"ParentSsn"`
	EstimatedBirthDate string `json:"EstimatedBirthDate"`
}

func decodeIndividuals(data []byte) ([]records.RegistryEntry, error) {
	var dtos []individualDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, err
	}
	out := make([]records.RegistryEntry, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, records.RegistryEntry{
			Name:                 d.Name,
			IdentityNumber:       identity.Normalize(d.Ssn),
			Address:              d.Address,
			Spouse:               d.Spouse,
			SpouseIdentityNumber: identity.Normalize(d.SpouseSsn),
		})
	}
	return out, nil
}

func decodeChildren(data []byte) ([]records.ChildEntry, error) {
	var dtos []childDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, err
	}
	out := make([]records.ChildEntry, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, records.ChildEntry{
			Name:                 d.Name,
			IdentityNumber:       identity.Normalize(d.Ssn),
			ParentIdentityNumber: identity.Normalize(d.ParentSsn),
			BirthDate:            d.BirthDate,
		})
	}
	return out, nil
}

func decodeIncomes(data []byte) ([]records.IncomeEntry, error) {
	var dtos []incomeDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, err
	}
	out := make([]records.IncomeEntry, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, records.IncomeEntry{
			IdentityNumber:             identity.Normalize(d.Ssn),
			PersonalTaxDiscountPercent: float64(d.PersonalTaxDiscount),
			MonthIncome:                float64(d.MonthIncome),
			OtherMonthIncome:           float64(d.OtherMonthIncome),
			PensionSavingsPercent:      float64(d.PensionSavings),
		})
	}
	return out, nil
}

func decodeBirthEstimates(data []byte) ([]records.EstimatedBirthEntry, error) {
	var dtos []birthEstimateDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, err
	}
	out := make([]records.EstimatedBirthEntry, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, records.EstimatedBirthEntry{
			ParentIdentityNumber: identity.Normalize(d.ParentSsn),
			EstimatedBirthDate:   d.EstimatedBirthDate,
		})
	}
	return out, nil
}
