package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUpstream(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, body := range routes {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientIndividuals(t *testing.T) {
	srv := newUpstream(t, map[string]string{
		"/api/individuals": `[
			{"Name":"Anna Jónsdóttir","Ssn":"120389-4569","Address":"Laugavegur 1","Spouse":"Björn","SpouseSSN":"010180-2209"}
		]`,
	})
	c := NewClient(srv.URL, srv.URL)

	entries, err := c.Individuals(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "1203894569", entries[0].IdentityNumber)
	assert.Equal(t, "0101802209", entries[0].SpouseIdentityNumber)
}

func TestClientIncomesCoercesStringNumbers(t *testing.T) {
	// The upstream passes CSV cells through as strings; numeric JSON must
	// also be accepted.
	srv := newUpstream(t, map[string]string{
		"/api/incomes": `[
			{"Ssn":"120389-4569","PersonalTaxDiscount":"100","MonthIncome":"500000","OtherMonthIncome":20000,"PensionSavings":"x"}
		]`,
	})
	c := NewClient(srv.URL, srv.URL)

	incomes, err := c.Incomes(context.Background())
	require.NoError(t, err)
	require.Len(t, incomes, 1)
	assert.Equal(t, 500000.0, incomes[0].MonthIncome)
	assert.Equal(t, 20000.0, incomes[0].OtherMonthIncome)
	assert.Equal(t, 0.0, incomes[0].PensionSavingsPercent)
}

func TestClientBirthEstimatesCasingVariants(t *testing.T) {
	// Upstream casing is inconsistent between generations of the API.
	srv := newUpstream(t, map[string]string{
		"/api/estimatedBirthDates": `[
			{"ParentSsn":"120389-4569","EstimatedBirthDate":"15.05.2020"},
			{"ParentSSN":"010180-2209","EstimatedBirthDate":"01.06.2020"}
		]`,
	})
	c := NewClient(srv.URL, srv.URL)

	estimates, err := c.BirthEstimates(context.Background())
	require.NoError(t, err)
	require.Len(t, estimates, 2)
	assert.Equal(t, "1203894569", estimates[0].ParentIdentityNumber)
	assert.Equal(t, "0101802209", estimates[1].ParentIdentityNumber)
}

func TestClientUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, srv.URL)

	_, err := c.Children(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}
