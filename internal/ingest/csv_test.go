package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadIncomes(t *testing.T) {
	in := strings.Join([]string{
		"Kennitala;Personuafslattur;Manadartekjur;Adrar tekjur;Sereignarsparnadur",
		"120389-4569;100;500000;20000;4",
		"010180-2209;50;;abc;2",
	}, "\n")

	incomes, err := ReadIncomes(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, incomes, 2)

	assert.Equal(t, "1203894569", incomes[0].IdentityNumber)
	assert.Equal(t, 100.0, incomes[0].PersonalTaxDiscountPercent)
	assert.Equal(t, 500000.0, incomes[0].MonthIncome)
	assert.Equal(t, 20000.0, incomes[0].OtherMonthIncome)
	assert.Equal(t, 4.0, incomes[0].PensionSavingsPercent)

	// Empty and malformed numeric cells coerce to 0.
	assert.Equal(t, 0.0, incomes[1].MonthIncome)
	assert.Equal(t, 0.0, incomes[1].OtherMonthIncome)
}

func TestReadRegistry(t *testing.T) {
	in := strings.Join([]string{
		"Nafn;Kennitala;Heimilisfang;Maki;Kennitala maka",
		"Anna Jónsdóttir;120389-4569;Laugavegur 1;Björn Pálsson;010180-2209",
		"Dís Egilsdóttir;220290-2209;;;",
	}, "\n")

	reg, err := ReadRegistry(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, reg, 2)

	assert.Equal(t, "Anna Jónsdóttir", reg[0].Name)
	assert.Equal(t, "1203894569", reg[0].IdentityNumber)
	assert.Equal(t, "0101802209", reg[0].SpouseIdentityNumber)
	assert.Equal(t, "", reg[1].Spouse)
}

func TestReadBirthEstimates(t *testing.T) {
	in := strings.Join([]string{
		"Kennitala foreldris;Aaetladur faedingardagur",
		"120389-4569;15.05.2020",
	}, "\n")

	estimates, err := ReadBirthEstimates(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, estimates, 1)
	assert.Equal(t, "1203894569", estimates[0].ParentIdentityNumber)
	assert.Equal(t, "15.05.2020", estimates[0].EstimatedBirthDate)
}

func TestReadChildren(t *testing.T) {
	in := strings.Join([]string{
		"Nafn;Kennitala;Kennitala foreldris;Faedingardagur",
		"Kári Björnsson;150515-2209;010180-2209;15.05.2015",
	}, "\n")

	children, err := ReadChildren(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "Kári Björnsson", children[0].Name)
	assert.Equal(t, "1505152209", children[0].IdentityNumber)
	assert.Equal(t, "0101802209", children[0].ParentIdentityNumber)
}

func TestReadRowsHeaderOnly(t *testing.T) {
	incomes, err := ReadIncomes(strings.NewReader("Kennitala;Personuafslattur\n"))
	require.NoError(t, err)
	assert.Empty(t, incomes)
}

func TestReadRowsShortRow(t *testing.T) {
	in := "header\n120389-4569\n"
	incomes, err := ReadIncomes(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, incomes, 1)
	assert.Equal(t, "1203894569", incomes[0].IdentityNumber)
	assert.Equal(t, 0.0, incomes[0].MonthIncome)
}
