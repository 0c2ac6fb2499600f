package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"time"

	"github.com/SscSPs/finance_core/internal/core/domain"
	portssvc "github.com/SscSPs/finance_core/internal/core/ports/services"
	"github.com/SscSPs/finance_core/internal/handlers"
	"github.com/SscSPs/finance_core/internal/middleware"
	"github.com/SscSPs/finance_core/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
)

const (
	testTenant = "tenant-1"
	testUser   = "user-1"
	testIssuer = "finance-core-test"
	testSecret = "test-secret-key-that-is-long-enough"
)

// handlerSuite serves the real route table over mocked services.
type handlerSuite struct {
	suite.Suite
	router         *gin.Engine
	accounts       *MockAccountService
	drafts         *MockDraftService
	escalation     *MockEscalationService
	posting        *MockPostingService
	reconciliation *MockReconciliationService
	periods        *MockPeriodService
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.accounts = new(MockAccountService)
	s.drafts = new(MockDraftService)
	s.escalation = new(MockEscalationService)
	s.posting = new(MockPostingService)
	s.reconciliation = new(MockReconciliationService)
	s.periods = new(MockPeriodService)

	s.router = gin.New()
	cfg := &config.Config{JWTSecret: testSecret, JWTIssuer: testIssuer, IsProduction: true}
	err := handlers.RegisterRoutes(s.router, cfg, &portssvc.ServiceContainer{
		Account:        s.accounts,
		DraftIntake:    s.drafts,
		Escalation:     s.escalation,
		Posting:        s.posting,
		Reconciliation: s.reconciliation,
		PeriodClose:    s.periods,
	}, nil)
	s.Require().NoError(err)
}

func (s *handlerSuite) TearDownTest() {
	s.accounts.AssertExpectations(s.T())
	s.drafts.AssertExpectations(s.T())
	s.escalation.AssertExpectations(s.T())
	s.posting.AssertExpectations(s.T())
	s.reconciliation.AssertExpectations(s.T())
	s.periods.AssertExpectations(s.T())
}

func (s *handlerSuite) identity(role domain.TenantRole) domain.Identity {
	return domain.Identity{TenantID: testTenant, UserID: testUser, Role: role}
}

// token signs an HS256 token for the test tenant and user.
func (s *handlerSuite) token(role domain.TenantRole, secret string) string {
	claims := middleware.TenantClaims{
		TenantID: testTenant,
		Role:     string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   testUser,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		s.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

// do sends a request as role; an empty role sends no Authorization header.
// A string body is sent verbatim, anything else as JSON.
func (s *handlerSuite) do(method, path string, body any, role domain.TenantRole) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+s.token(role, testSecret))
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *handlerSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (s *handlerSuite) errorMessage(w *httptest.ResponseRecorder) string {
	msg, _ := s.decode(w)["error"].(string)
	return msg
}

func v1(path string) string {
	return "/api/v1" + path
}
