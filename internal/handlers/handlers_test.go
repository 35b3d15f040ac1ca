package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/cod_ledger/internal/apperrors"
	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/SscSPs/cod_ledger/internal/dto"
	"github.com/SscSPs/cod_ledger/internal/handlers"
	"github.com/SscSPs/cod_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testIssuer = "cod-ledger-test"
)

type HandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	collectionSvc  *MockCollectionService
	depositSvc     *MockDepositService
	remittanceSvc  *MockRemittanceService
	ledgerSvc      *MockLedgerService
	summarySvc     *MockSummaryService
	operatorID     string
	operatorBearer string
}

// generateTestToken creates a signed operator JWT for testing.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return "Bearer " + signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())

	suite.router = gin.New()
	suite.router.Use(middleware.AuthMiddleware(testSecret, testIssuer))

	suite.collectionSvc = new(MockCollectionService)
	suite.depositSvc = new(MockDepositService)
	suite.remittanceSvc = new(MockRemittanceService)
	suite.ledgerSvc = new(MockLedgerService)
	suite.summarySvc = new(MockSummaryService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterCollectionRoutes(v1, suite.collectionSvc, nil)
	handlers.RegisterDepositRoutes(v1, suite.depositSvc, nil)
	handlers.RegisterRemittanceRoutes(v1, suite.remittanceSvc, nil)
	handlers.RegisterLedgerRoutes(v1, suite.ledgerSvc)
	handlers.RegisterSummaryRoutes(v1, suite.summarySvc)

	suite.operatorID = uuid.NewString()
	suite.operatorBearer = suite.generateTestToken(suite.operatorID)
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.collectionSvc.AssertExpectations(suite.T())
	suite.depositSvc.AssertExpectations(suite.T())
	suite.remittanceSvc.AssertExpectations(suite.T())
	suite.ledgerSvc.AssertExpectations(suite.T())
	suite.summarySvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", suite.operatorBearer)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) errorBody(w *httptest.ResponseRecorder) dto.ErrorResponse {
	var body dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// --- Collections ---

func (suite *HandlerTestSuite) TestRecordCollection_Success() {
	payload := map[string]any{
		"awbNumber":       "AWB1",
		"clientId":        "client-1",
		"hubId":           "hub-1",
		"expectedAmount":  "500.00",
		"collectedAmount": "450.00",
		"paymentMode":     "CASH",
		"collectedById":   "agent-1",
	}
	stored := &domain.Collection{CollectionID: "c1", AWBNumber: "AWB1", Status: domain.CollectionCollected, CollectedAmount: decimal.NewFromInt(450)}

	suite.collectionSvc.On("RecordCollection", mock.Anything,
		mock.MatchedBy(func(r domain.RecordCollectionRequest) bool {
			return r.AWBNumber == "AWB1" && r.Collector.ID == "agent-1" && r.CollectedAmount.Equal(decimal.NewFromInt(450))
		}),
		suite.operatorID,
	).Return(stored, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/collections", payload)

	suite.Equal(http.StatusCreated, w.Code)
	var got domain.Collection
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("c1", got.CollectionID)
}

func (suite *HandlerTestSuite) TestRecordCollection_NegativeAmountRejected() {
	w := suite.do(http.MethodPost, "/api/v1/collections", map[string]any{
		"awbNumber":       "AWB1",
		"collectedAmount": "-5",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(handlers.CodeValidation, suite.errorBody(w).Code)
	suite.collectionSvc.AssertNotCalled(suite.T(), "RecordCollection")
}

func (suite *HandlerTestSuite) TestRecordCollection_MissingFields() {
	suite.collectionSvc.On("RecordCollection", mock.Anything, mock.Anything, suite.operatorID).
		Return(nil, apperrors.NewMissingFieldsError("awbNumber", "clientId")).Once()

	w := suite.do(http.MethodPost, "/api/v1/collections", map[string]any{})

	suite.Equal(http.StatusBadRequest, w.Code)
	body := suite.errorBody(w)
	suite.Equal(handlers.CodeMissingFields, body.Code)
	suite.Contains(body.Error, "awbNumber")
}

func (suite *HandlerTestSuite) TestRequestWithoutToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/collections/c1", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.collectionSvc.AssertNotCalled(suite.T(), "GetCollection")
}

func (suite *HandlerTestSuite) TestListCollections_PassesFilter() {
	suite.collectionSvc.On("ListCollections", mock.Anything, mock.MatchedBy(func(f domain.CollectionFilter) bool {
		return f.Status == domain.CollectionDeposited && f.HubID == "hub-1" && f.Page.Page == 2 && f.Page.PageSize == 5
	})).Return(nil, 0, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/collections?status=DEPOSITED&hubId=hub-1&page=2&pageSize=5", nil)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.ListCollectionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.NotNil(got.Collections)
	suite.Empty(got.Collections)
	suite.Equal(2, got.Page)
}

func (suite *HandlerTestSuite) TestListCollections_UnknownStatusRejected() {
	w := suite.do(http.MethodGet, "/api/v1/collections?status=LOST", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.collectionSvc.AssertNotCalled(suite.T(), "ListCollections")
}

func (suite *HandlerTestSuite) TestEligibleForDeposit_StaticRouteBesideParam() {
	eligible := []domain.Collection{
		{CollectionID: "c1", CollectedAmount: decimal.NewFromInt(300)},
		{CollectionID: "c2", CollectedAmount: decimal.NewFromInt(200)},
	}
	suite.collectionSvc.On("ListEligibleForDeposit", mock.Anything, "hub-1", "agent-1").Return(eligible, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/collections/eligible/deposit?hubId=hub-1&collectorId=agent-1", nil)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.EligibleCollectionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(2, got.Count)
	suite.True(got.TotalAmount.Equal(decimal.NewFromInt(500)))
}

func (suite *HandlerTestSuite) TestEligibleForRemittance_RequiresPeriod() {
	w := suite.do(http.MethodGet, "/api/v1/collections/eligible/remittance?clientId=client-1", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.collectionSvc.AssertNotCalled(suite.T(), "ListEligibleForRemittance")
}

func (suite *HandlerTestSuite) TestRaiseDispute_Conflict() {
	suite.collectionSvc.On("RaiseDispute", mock.Anything, "c1", "customer complaint", suite.operatorID).
		Return(nil, fmt.Errorf("collection c1: %w", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPost, "/api/v1/collections/c1/dispute", dto.RaiseDisputeRequest{Reason: "customer complaint"})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal(handlers.CodeConflict, suite.errorBody(w).Code)
}

// --- Deposits ---

func (suite *HandlerTestSuite) TestCreateDeposit_InvalidCollectionSet() {
	suite.depositSvc.On("CreateDeposit", mock.Anything, mock.MatchedBy(func(r domain.CreateDepositRequest) bool {
		return len(r.CollectionIDs) == 3 && r.CreatedBy == suite.operatorID
	})).Return(nil, apperrors.NewInvalidCollectionSetError(3, []string{"c2", "c3"})).Once()

	w := suite.do(http.MethodPost, "/api/v1/deposits", map[string]any{
		"collectionIds": []string{"c1", "c2", "c3"},
		"depositedById": "agent-1",
		"receivedById":  "custodian-1",
		"hubId":         "hub-1",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	body := suite.errorBody(w)
	suite.Equal(handlers.CodeInvalidCollectionSet, body.Code)
	suite.Require().NotNil(body.OffendingCount)
	suite.Equal(2, *body.OffendingCount)
}

func (suite *HandlerTestSuite) TestCreateDeposit_StorageFailureHidesDetail() {
	suite.depositSvc.On("CreateDeposit", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("claim failed after retries: %w", apperrors.ErrStorageConflict)).Once()

	w := suite.do(http.MethodPost, "/api/v1/deposits", map[string]any{"collectionIds": []string{"c1"}})

	suite.Equal(http.StatusInternalServerError, w.Code)
	body := suite.errorBody(w)
	suite.Equal(handlers.CodeInternal, body.Code)
	suite.Equal("Failed to create deposit", body.Error)
}

func (suite *HandlerTestSuite) TestGetDeposit_NotFound() {
	suite.depositSvc.On("GetDeposit", mock.Anything, "missing").
		Return(nil, fmt.Errorf("deposit missing: %w", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/deposits/missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal(handlers.CodeNotFound, suite.errorBody(w).Code)
}

func (suite *HandlerTestSuite) TestVerifyDeposit_WithoutBody() {
	suite.depositSvc.On("VerifyDeposit", mock.Anything, "d1", suite.operatorID, "").
		Return(&domain.Deposit{DepositID: "d1", Status: domain.DepositDiscrepancy}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/deposits/d1/verify", nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestListDeposits_ReturnsStats() {
	page := &domain.DepositPage{
		Deposits: []domain.Deposit{{DepositID: "d1"}},
		Total:    1,
	}
	suite.depositSvc.On("ListDeposits", mock.Anything, mock.MatchedBy(func(f domain.DepositFilter) bool {
		return f.Status == domain.DepositDiscrepancy
	})).Return(page, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/deposits?status=DISCREPANCY", nil)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.ListDepositsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(1, got.Total)
	suite.Len(got.Deposits, 1)
}

// --- Remittances ---

func (suite *HandlerTestSuite) TestCreateRemittance_NoEligibleCollections() {
	suite.remittanceSvc.On("CreateRemittance", mock.Anything, mock.MatchedBy(func(r domain.CreateRemittanceRequest) bool {
		return r.ClientID == "client-1" && !r.Explicit()
	})).Return(nil, apperrors.ErrNoEligibleCollections).Once()

	w := suite.do(http.MethodPost, "/api/v1/remittances", map[string]any{
		"clientId":    "client-1",
		"periodStart": "2024-03-01T00:00:00Z",
		"periodEnd":   "2024-03-31T23:59:59Z",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(handlers.CodeNoEligibleCollections, suite.errorBody(w).Code)
}

func (suite *HandlerTestSuite) TestUpdateRemittanceStatus_RejectsUnknownStatus() {
	w := suite.do(http.MethodPatch, "/api/v1/remittances/r1/status", map[string]any{"status": "SHIPPED"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.remittanceSvc.AssertNotCalled(suite.T(), "UpdateRemittanceStatus")
}

func (suite *HandlerTestSuite) TestUpdateRemittanceStatus_Paid() {
	suite.remittanceSvc.On("UpdateRemittanceStatus", mock.Anything, "r1", domain.RemittancePaid, suite.operatorID, "UTR123").
		Return(&domain.Remittance{RemittanceID: "r1", Status: domain.RemittancePaid}, nil).Once()

	w := suite.do(http.MethodPatch, "/api/v1/remittances/r1/status", dto.UpdateRemittanceStatusRequest{Status: domain.RemittancePaid, PaymentReference: "UTR123"})

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestExportStatement() {
	suite.remittanceSvc.On("ExportRemittanceStatement", mock.Anything, "r1").Return([]byte("PK\x03\x04"), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/remittances/r1/statement", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), "remittance-r1.xlsx")
	suite.Equal("PK\x03\x04", w.Body.String())
}

// --- Ledger ---

func (suite *HandlerTestSuite) TestGetBalance_AccountTypeIsCaseInsensitive() {
	account := domain.Account{Type: domain.AccountHub, ID: "hub-1"}
	suite.ledgerSvc.On("BalanceFor", mock.Anything, account).
		Return(&domain.AccountBalance{Account: account, Balance: decimal.NewFromInt(-950), EntryCount: 1}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/ledger/hub/hub-1/balance", nil)

	suite.Equal(http.StatusOK, w.Code)
	var got domain.AccountBalance
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.True(got.Balance.Equal(decimal.NewFromInt(-950)))
}

func (suite *HandlerTestSuite) TestListEntries_ReturnsNextToken() {
	account := domain.Account{Type: domain.AccountAgent, ID: "agent-1"}
	next := "token-2"
	suite.ledgerSvc.On("ListLedgerEntries", mock.Anything, account, 2, (*string)(nil)).
		Return([]domain.LedgerEntry{{EntryID: "e2"}, {EntryID: "e1"}}, &next, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/ledger/AGENT/agent-1/entries?limit=2", nil)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.ListLedgerEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Len(got.Entries, 2)
	suite.Require().NotNil(got.NextToken)
	suite.Equal(next, *got.NextToken)
}

func (suite *HandlerTestSuite) TestPostAdjustment() {
	suite.ledgerSvc.On("PostAdjustment", mock.Anything, mock.MatchedBy(func(r domain.AdjustmentRequest) bool {
		return r.Account.ID == "agent-1" && r.Direction == domain.Credit && r.CreatedBy == suite.operatorID
	})).Return(&domain.LedgerEntry{EntryID: "e9"}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/ledger/adjustments", map[string]any{
		"accountType": "AGENT",
		"accountId":   "agent-1",
		"amount":      "50",
		"direction":   "CREDIT",
		"description": "recount",
	})

	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *HandlerTestSuite) TestCustodyReport() {
	suite.ledgerSvc.On("CustodyReport", mock.Anything).
		Return(&domain.CustodyReport{CashInCustody: decimal.NewFromInt(100), Consistent: true}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/ledger/custody", nil)

	suite.Equal(http.StatusOK, w.Code)
	var got domain.CustodyReport
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.True(got.Consistent)
}

// --- Summary ---

func (suite *HandlerTestSuite) TestGetSummary_PassesScope() {
	suite.summarySvc.On("GetSummary", mock.Anything, mock.MatchedBy(func(f domain.SummaryFilter) bool {
		return f.HubID == "hub-1" && f.DriverID == "agent-1" && f.DateFrom != nil
	})).Return(&domain.Summary{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/summary?hubId=hub-1&driverId=agent-1&dateFrom=2024-03-01T00:00:00Z", nil)

	suite.Equal(http.StatusOK, w.Code)
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
