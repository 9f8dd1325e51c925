package handler

//go:generate mockgen -source=handler.go -destination=mocks/benefit-mocks.go -package=mocks Service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"orlof/internal/benefit"
	"orlof/internal/benefit/handler/mocks"
	dErrors "orlof/pkg/domain-errors"
)

type BenefitHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *BenefitHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestBenefitHandlerSuite(t *testing.T) {
	suite.Run(t, new(BenefitHandlerSuite))
}

func newTestRouter(t *testing.T) (*chi.Mux, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	New(mockService, logger).Register(r)
	return r, mockService
}

func postCalculation(r http.Handler, body []byte) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/calculations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	return rec
}

func (s *BenefitHandlerSuite) TestHandleCalculate() {
	r, mockService := newTestRouter(s.T())

	req := benefit.CalculationRequest{
		IdentityNumber:          "1203894569",
		WorkingType:             benefit.WorkingTypeFullTime,
		PensionSavingsPercent:   4,
		PersonalDiscountPercent: 100,
		Periods: []benefit.Period{
			{StartDate: "01.06.2020", EndDate: "30.06.2020", LeavePercentage: 100},
		},
	}
	fund := 16000.0
	savings := 16000.0
	mockService.EXPECT().Calculate(gomock.Any(), req).Return(benefit.CalculationResponse{
		IdentityNumber: "1203894569",
		Periods: []benefit.CalculatedPeriod{{
			StartDate:      "01.06.2020",
			EndDate:        "30.06.2020",
			AmountGross:    400000,
			AmountNet:      317779.08,
			PensionFond:    &fund,
			PensionSavings: &savings,
			Tax:            benefit.Tax{Total: 136859.20, RateSelected: 37.19, Discount: 54628},
		}},
	}, nil)

	body, err := json.Marshal(req)
	s.Require().NoError(err)

	rec := postCalculation(r, body)
	s.Require().Equal(http.StatusOK, rec.Code)

	var got benefit.CalculationResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal("1203894569", got.IdentityNumber)
	s.Require().Len(got.Periods, 1)
	s.InDelta(400000, got.Periods[0].AmountGross, 0.01)
	s.Require().NotNil(got.Periods[0].PensionFond)
	s.InDelta(16000, *got.Periods[0].PensionFond, 0.01)
}

func (s *BenefitHandlerSuite) TestHandleCalculateBadBody() {
	r, _ := newTestRouter(s.T())

	rec := postCalculation(r, []byte("{not json"))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "bad_request")
}

func (s *BenefitHandlerSuite) TestHandleCalculateValidationError() {
	r, mockService := newTestRouter(s.T())
	mockService.EXPECT().Calculate(gomock.Any(), gomock.Any()).
		Return(benefit.CalculationResponse{}, dErrors.New(dErrors.CodeValidation, "unknown working_type \"Retired\""))

	rec := postCalculation(r, []byte(`{"identity_number":"1203894569","working_type":"Retired"}`))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "validation_failed")
	s.Contains(rec.Body.String(), "Retired")
}

func (s *BenefitHandlerSuite) TestHandleCalculateMissingIncome() {
	r, mockService := newTestRouter(s.T())
	mockService.EXPECT().Calculate(gomock.Any(), gomock.Any()).
		Return(benefit.CalculationResponse{}, dErrors.New(dErrors.CodeMissingIncome,
			"no income record for identity; labor working types require one"))

	rec := postCalculation(r, []byte(`{"identity_number":"9999999999","working_type":"FullTime","periods":[{"leave_percentage":100}]}`))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "missing_income")
}

func (s *BenefitHandlerSuite) TestHandleCalculateInternalErrorHidesDetail() {
	r, mockService := newTestRouter(s.T())
	mockService.EXPECT().Calculate(gomock.Any(), gomock.Any()).
		Return(benefit.CalculationResponse{}, dErrors.Wrap(io.ErrUnexpectedEOF, dErrors.CodeInternal, "store scan failed"))

	rec := postCalculation(r, []byte(`{"identity_number":"1203894569","working_type":"FullTime","periods":[{"leave_percentage":100}]}`))
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.NotContains(rec.Body.String(), "store scan failed")
}
