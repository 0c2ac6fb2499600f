package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/finance_core/internal/apperrors"
	"github.com/SscSPs/finance_core/internal/core/domain"
	"github.com/SscSPs/finance_core/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PeriodHandlerTestSuite struct {
	handlerSuite
}

func (s *PeriodHandlerTestSuite) march() domain.AccountingPeriod {
	return domain.AccountingPeriod{
		PeriodID:  "p-1",
		TenantID:  testTenant,
		Name:      "2024-03",
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodOpen,
	}
}

func (s *PeriodHandlerTestSuite) TestCreatePeriod() {
	period := s.march()
	s.periods.On("CreatePeriod", mock.Anything, s.identity(domain.RoleMember),
		mock.MatchedBy(func(req dto.CreatePeriodRequest) bool { return req.Name == "2024-03" }),
	).Return(&period, nil).Once()

	w := s.do(http.MethodPost, v1("/periods"),
		`{"name":"2024-03","startDate":"2024-03-01T00:00:00Z","endDate":"2024-03-31T00:00:00Z"}`, domain.RoleMember)

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Equal("p-1", s.decode(w)["periodID"])
}

func (s *PeriodHandlerTestSuite) TestCreatePeriod_EndBeforeStart() {
	w := s.do(http.MethodPost, v1("/periods"),
		`{"name":"bad","startDate":"2024-03-31T00:00:00Z","endDate":"2024-03-01T00:00:00Z"}`, domain.RoleMember)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.errorMessage(w), "gtefield")
}

func (s *PeriodHandlerTestSuite) TestCreatePeriod_Overlap() {
	s.periods.On("CreatePeriod", mock.Anything, s.identity(domain.RoleMember), mock.Anything).
		Return(nil, apperrors.NewConflictError("period overlaps 2024-03")).Once()

	w := s.do(http.MethodPost, v1("/periods"),
		`{"name":"2024-03b","startDate":"2024-03-15T00:00:00Z","endDate":"2024-04-15T00:00:00Z"}`, domain.RoleMember)

	s.Equal(http.StatusConflict, w.Code)
}

func (s *PeriodHandlerTestSuite) TestListPeriods_EmptyIsArray() {
	s.periods.On("ListPeriods", mock.Anything, s.identity(domain.RoleReadOnly)).Return(nil, nil).Once()

	w := s.do(http.MethodGet, v1("/periods"), nil, domain.RoleReadOnly)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

func (s *PeriodHandlerTestSuite) TestGetPeriod_NotFound() {
	s.periods.On("GetPeriod", mock.Anything, s.identity(domain.RoleReadOnly), "p-9").
		Return(nil, apperrors.NewNotFoundError("period p-9 not found")).Once()

	w := s.do(http.MethodGet, v1("/periods/p-9"), nil, domain.RoleReadOnly)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *PeriodHandlerTestSuite) TestGetChecklist_IncludesWarnings() {
	s.periods.On("GetChecklist", mock.Anything, s.identity(domain.RoleReadOnly), "p-1").
		Return(&domain.CloseChecklist{DraftTransactions: 2}, nil).Once()

	w := s.do(http.MethodGet, v1("/periods/p-1/checklist"), nil, domain.RoleReadOnly)

	s.Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	warnings, ok := body["warnings"].([]any)
	s.Require().True(ok)
	s.Len(warnings, 1)
	s.Contains(warnings[0], "still in draft")
}

func (s *PeriodHandlerTestSuite) TestSoftClose_ReturnsWarnings() {
	period := s.march()
	period.Status = domain.PeriodSoftClosed
	checklist := domain.CloseChecklist{PendingApprovals: 1}
	s.periods.On("SoftClose", mock.Anything, s.identity(domain.RoleMember), "p-1").
		Return(&domain.PeriodCloseResult{Period: period, Checklist: checklist, Warnings: checklist.Warnings()}, nil).Once()

	w := s.do(http.MethodPost, v1("/periods/p-1/soft-close"), nil, domain.RoleMember)

	s.Equal(http.StatusOK, w.Code, w.Body.String())
	s.Contains(w.Body.String(), "awaiting approval")
	s.Contains(w.Body.String(), `"status":"soft_closed"`)
}

func (s *PeriodHandlerTestSuite) TestClose_MemberIsForbidden() {
	w := s.do(http.MethodPost, v1("/periods/p-1/close"), nil, domain.RoleMember)

	s.Equal(http.StatusForbidden, w.Code)
}

func (s *PeriodHandlerTestSuite) TestClose_Admin() {
	period := s.march()
	period.Status = domain.PeriodClosed
	s.periods.On("Close", mock.Anything, s.identity(domain.RoleAdmin), "p-1").
		Return(&domain.PeriodCloseResult{Period: period, Warnings: []string{}}, nil).Once()

	w := s.do(http.MethodPost, v1("/periods/p-1/close"), nil, domain.RoleAdmin)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"status":"closed"`)
}

func (s *PeriodHandlerTestSuite) TestClose_AlreadyClosed() {
	s.periods.On("Close", mock.Anything, s.identity(domain.RoleAdmin), "p-1").
		Return(nil, apperrors.NewConflictError("period p-1 is already closed")).Once()

	w := s.do(http.MethodPost, v1("/periods/p-1/close"), nil, domain.RoleAdmin)

	s.Equal(http.StatusConflict, w.Code)
	s.Equal("period p-1 is already closed", s.errorMessage(w))
}

func TestPeriodHandler(t *testing.T) {
	suite.Run(t, new(PeriodHandlerTestSuite))
}
