package benefit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"orlof/internal/audit"
	"orlof/internal/benefit"
	"orlof/internal/records"
	dErrors "orlof/pkg/domain-errors"
)

type ServiceTestSuite struct {
	suite.Suite
	ctx   context.Context
	store records.Store
	inbox chan audit.Event
	svc   *benefit.Service
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = records.NewInMemory()
	s.inbox = make(chan audit.Event, 8)
	s.svc = benefit.NewService(s.store, benefit.WithAudit(audit.NewPublisher(s.inbox)))

	err := s.store.Replace(s.ctx, records.Snapshot{
		Incomes: []records.IncomeEntry{
			{IdentityNumber: "1203894569", MonthIncome: 500000},
		},
	})
	s.Require().NoError(err)
}

func (s *ServiceTestSuite) validRequest() benefit.CalculationRequest {
	return benefit.CalculationRequest{
		IdentityNumber:          "1203894569",
		WorkingType:             benefit.WorkingTypeFullTime,
		PensionSavingsPercent:   4,
		PersonalDiscountPercent: 100,
		Periods: []benefit.Period{
			{StartDate: "01.06.2020", EndDate: "30.06.2020", LeavePercentage: 100},
		},
	}
}

func (s *ServiceTestSuite) TestCalculateLaborUsesStoredIncome() {
	resp, err := s.svc.Calculate(s.ctx, s.validRequest())
	s.Require().NoError(err)
	s.Equal("1203894569", resp.IdentityNumber)
	s.Require().Len(resp.Periods, 1)
	s.InDelta(400000, resp.Periods[0].AmountGross, 0.01)
}

func (s *ServiceTestSuite) TestCalculateNormalizesIdentity() {
	req := s.validRequest()
	req.IdentityNumber = "120389-4569"

	resp, err := s.svc.Calculate(s.ctx, req)
	s.Require().NoError(err)
	s.InDelta(400000, resp.Periods[0].AmountGross, 0.01)
}

func (s *ServiceTestSuite) TestCalculateMissingIncomeIsTypedError() {
	req := s.validRequest()
	req.IdentityNumber = "9999999999"

	_, err := s.svc.Calculate(s.ctx, req)
	s.Require().Error(err)
	s.True(dErrors.Is(err, dErrors.CodeMissingIncome))
}

func (s *ServiceTestSuite) TestCalculateNonLaborSkipsIncomeLookup() {
	req := s.validRequest()
	req.IdentityNumber = "9999999999"
	req.WorkingType = benefit.WorkingTypeEducation

	resp, err := s.svc.Calculate(s.ctx, req)
	s.Require().NoError(err)
	s.InDelta(184119, resp.Periods[0].AmountGross, 0.01)
}

func (s *ServiceTestSuite) TestCalculateRejectsMalformedRequests() {
	tests := []struct {
		name   string
		mutate func(*benefit.CalculationRequest)
	}{
		{"missing identity", func(r *benefit.CalculationRequest) { r.IdentityNumber = "" }},
		{"unknown working type", func(r *benefit.CalculationRequest) { r.WorkingType = "Retired" }},
		{"no periods", func(r *benefit.CalculationRequest) { r.Periods = nil }},
		{"negative leave percentage", func(r *benefit.CalculationRequest) { r.Periods[0].LeavePercentage = -1 }},
		{"leave percentage above 100", func(r *benefit.CalculationRequest) { r.Periods[0].LeavePercentage = 101 }},
		{"negative pension savings", func(r *benefit.CalculationRequest) { r.PensionSavingsPercent = -4 }},
		{"negative personal discount", func(r *benefit.CalculationRequest) { r.PersonalDiscountPercent = -1 }},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := s.validRequest()
			tt.mutate(&req)

			_, err := s.svc.Calculate(s.ctx, req)
			s.Require().Error(err)
			s.True(dErrors.Is(err, dErrors.CodeValidation))
		})
	}
}

func (s *ServiceTestSuite) TestCalculateEmitsHashedAuditEvent() {
	_, err := s.svc.Calculate(s.ctx, s.validRequest())
	s.Require().NoError(err)

	s.Require().Len(s.inbox, 1)
	event := <-s.inbox
	s.Equal(audit.ActionCalculation, event.Action)
	s.Equal(audit.OutcomeOK, event.Outcome)
	s.Equal(audit.HashIdentity("1203894569"), event.IdentityHash)
	s.NotContains(event.IdentityHash, "1203894569")
}

func (s *ServiceTestSuite) TestCalculateFailureAuditedAsFailed() {
	req := s.validRequest()
	req.IdentityNumber = "9999999999"

	_, err := s.svc.Calculate(s.ctx, req)
	s.Require().Error(err)

	s.Require().Len(s.inbox, 1)
	event := <-s.inbox
	s.Equal(audit.OutcomeFailed, event.Outcome)
	s.Equal("missing_income", event.Detail)
}
