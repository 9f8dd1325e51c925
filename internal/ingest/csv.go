// Package ingest turns upstream data — ';'-delimited CSV exports or the
// registry/labour JSON APIs — into typed record snapshots. Identity numbers
// are normalized at this edge so every key entering the record store is
// already canonical, and numeric strings are coerced to float64 with
// missing/invalid values becoming 0 to keep downstream arithmetic total.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"orlof/internal/records"
	"orlof/pkg/identity"
)

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1 // source exports are ragged; pad missing columns with zero values
	return cr
}

// coerce parses a numeric CSV cell. Empty or malformed cells become 0.
func coerce(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func field(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// readRows consumes a CSV stream, skipping the header row.
func readRows(r io.Reader) ([][]string, error) {
	rows, err := newReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

// ReadRegistry decodes the national registry individuals export:
// Name;Ssn;Address;Spouse;SpouseSSN.
func ReadRegistry(r io.Reader) ([]records.RegistryEntry, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	out := make([]records.RegistryEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, records.RegistryEntry{
			Name:                 field(row, 0),
			IdentityNumber:       identity.Normalize(field(row, 1)),
			Address:              field(row, 2),
			Spouse:               field(row, 3),
			SpouseIdentityNumber: identity.Normalize(field(row, 4)),
		})
	}
	return out, nil
}

// ReadIncomes decodes the labour directorate income export:
// Ssn;PersonalTaxDiscount;MonthIncome;OtherMonthIncome;PensionSavings.
func ReadIncomes(r io.Reader) ([]records.IncomeEntry, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	out := make([]records.IncomeEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, records.IncomeEntry{
			IdentityNumber:             identity.Normalize(field(row, 0)),
			PersonalTaxDiscountPercent: coerce(field(row, 1)),
			MonthIncome:                coerce(field(row, 2)),
			OtherMonthIncome:           coerce(field(row, 3)),
			PensionSavingsPercent:      coerce(field(row, 4)),
		})
	}
	return out, nil
}

// ReadBirthEstimates decodes the estimated birth date export:
// ParentSsn;EstimatedBirthDate (DD.MM.YYYY).
func ReadBirthEstimates(r io.Reader) ([]records.EstimatedBirthEntry, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	out := make([]records.EstimatedBirthEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, records.EstimatedBirthEntry{
			ParentIdentityNumber: identity.Normalize(field(row, 0)),
			EstimatedBirthDate:   field(row, 1),
		})
	}
	return out, nil
}

// ReadChildren decodes the registry children export:
// Name;Ssn;ParentSSN;BirthDate.
func ReadChildren(r io.Reader) ([]records.ChildEntry, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	out := make([]records.ChildEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, records.ChildEntry{
			Name:                 field(row, 0),
			IdentityNumber:       identity.Normalize(field(row, 1)),
			ParentIdentityNumber: identity.Normalize(field(row, 2)),
			BirthDate:            field(row, 3),
		})
	}
	return out, nil
}
