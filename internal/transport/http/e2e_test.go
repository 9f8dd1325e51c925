package httptransport_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orlof/internal/benefit"
	benefithandler "orlof/internal/benefit/handler"
	"orlof/internal/profile"
	profilehandler "orlof/internal/profile/handler"
	"orlof/internal/records"
	recordshandler "orlof/internal/records/handler"
	httptransport "orlof/internal/transport/http"
	"orlof/pkg/testutil"
)

// newEstimatorRouter wires real services over an in-memory store, mirroring
// the production wiring in cmd/server.
func newEstimatorRouter(t *testing.T) http.Handler {
	t.Helper()

	store := records.NewInMemory()
	require.NoError(t, store.Replace(context.Background(), records.Snapshot{
		Registry: []records.RegistryEntry{
			{IdentityNumber: "1203894569", Name: "Anna Jónsdóttir", Address: "Laugavegur 1"},
			{IdentityNumber: "0101802209", Name: "Björn Gunnarsson", Address: "Hverfisgata 12"},
		},
		Incomes: []records.IncomeEntry{
			{IdentityNumber: "1203894569", MonthIncome: 500000, PensionSavingsPercent: 4, PersonalTaxDiscountPercent: 100},
		},
		BirthEstimates: []records.EstimatedBirthEntry{
			{ParentIdentityNumber: "1203894569", EstimatedBirthDate: "15.05.2020"},
		},
		Children: []records.ChildEntry{
			{IdentityNumber: "1010181230", ParentIdentityNumber: "1203894569", Name: "Elsa"},
		},
	}))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httptransport.NewRouter(logger, nil, nil,
		recordshandler.New(store, logger),
		profilehandler.New(profile.NewService(store), logger),
		benefithandler.New(benefit.NewService(store), logger),
	)
}

func TestEstimatorEndToEnd(t *testing.T) {
	router := newEstimatorRouter(t)

	testutil.Given(t, "a loaded record snapshot", func(t *testing.T) {
		testutil.When(t, "the profile list is requested", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/profiles"))
			testutil.AssertStatusOK(t, rr)

			profiles := testutil.UnmarshalResponse[[]profile.CombinedProfile](t, rr)
			require.Len(t, *profiles, 2)
			assert.True(t, (*profiles)[0].HasIncome)
			assert.False(t, (*profiles)[1].HasIncome)
		})

		testutil.When(t, "the richest expecting parent is requested", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/profiles/richest-parent?birthMonth=05.2020"))
			testutil.AssertStatusOK(t, rr)
			testutil.AssertJSONContains(t, rr, "identity_number", "1203894569")
		})

		testutil.When(t, "a full-time calculation is submitted", func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/calculations", benefit.CalculationRequest{
				IdentityNumber:          "1203894569",
				WorkingType:             benefit.WorkingTypeFullTime,
				PensionSavingsPercent:   4,
				PersonalDiscountPercent: 100,
				Periods: []benefit.Period{
					{StartDate: "01.06.2020", EndDate: "30.06.2020", LeavePercentage: 100},
				},
			})
			rr := testutil.DoRequest(router, req)
			testutil.AssertStatusOK(t, rr)

			resp := testutil.UnmarshalResponse[benefit.CalculationResponse](t, rr)
			require.Len(t, resp.Periods, 1)
			assert.InDelta(t, 400000, resp.Periods[0].AmountGross, 0.01)
		})

		testutil.When(t, "a labor calculation lacks income data", func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/calculations", benefit.CalculationRequest{
				IdentityNumber: "0101802209",
				WorkingType:    benefit.WorkingTypeFullTime,
				Periods:        []benefit.Period{{LeavePercentage: 100}},
			})
			rr := testutil.DoRequest(router, req)
			testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "missing_income")
		})

		testutil.When(t, "raw records are inspected", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/records/incomes"))
			testutil.AssertStatusOK(t, rr)

			incomes := testutil.UnmarshalResponse[[]records.IncomeEntry](t, rr)
			require.Len(t, *incomes, 1)
			assert.InDelta(t, 500000, (*incomes)[0].MonthIncome, 0.01)
		})
	})
}
