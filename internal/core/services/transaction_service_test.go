package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/budget_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker_app/internal/core/services"
	"github.com/SscSPs/budget_tracker_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, transaction domain.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, ownerID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByOwner(ctx context.Context, ownerID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, transaction domain.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, ownerID string, transactionID string) error {
	args := m.Called(ctx, ownerID, transactionID)
	return args.Error(0)
}

func amountPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func ptr[T any](v T) *T {
	return &v
}

var fixedNow = time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTransactionRepository
	service  portssvc.TransactionSvcFacade
	ctx      context.Context
	ownerID  string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.service = services.NewTransactionService(suite.mockRepo,
		services.WithClock(func() time.Time { return fixedNow }))
	suite.ctx = context.Background()
	suite.ownerID = uuid.NewString()
}

func (suite *TransactionServiceTestSuite) existing() *domain.Transaction {
	created := fixedNow.Add(-24 * time.Hour)
	return &domain.Transaction{
		TransactionID: uuid.NewString(),
		OwnerID:       suite.ownerID,
		Kind:          domain.KindExpense,
		Category:      domain.CategoryFood,
		Amount:        decimal.RequireFromString("150"),
		Description:   "groceries",
		OccurredAt:    created,
		AuditFields:   domain.AuditFields{CreatedAt: created, UpdatedAt: created},
	}
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	req := dto.CreateTransactionRequest{
		Kind:        domain.KindExpense,
		Category:    domain.CategoryFood,
		Amount:      amountPtr("150"),
		Description: "  weekly groceries  ",
	}

	suite.mockRepo.On("SaveTransaction", suite.ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.OwnerID == suite.ownerID && t.TransactionID != "" && t.Description == "weekly groceries" &&
			t.OccurredAt.Equal(fixedNow) && t.CreatedAt.Equal(fixedNow)
	})).Return(nil).Once()

	tx, err := suite.service.CreateTransaction(suite.ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(tx)
	suite.Equal(suite.ownerID, tx.OwnerID)
	suite.Equal(domain.KindExpense, tx.Kind)
	suite.True(decimal.RequireFromString("150").Equal(tx.Amount))
	suite.Equal("weekly groceries", tx.Description)
	suite.NoError(uuid.Validate(tx.TransactionID))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_KeepsSuppliedOccurredAt() {
	occurred := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	req := dto.CreateTransactionRequest{
		Kind:       domain.KindIncome,
		Category:   domain.CategorySalary,
		Amount:     amountPtr("2500"),
		OccurredAt: &occurred,
	}
	suite.mockRepo.On("SaveTransaction", suite.ctx, mock.Anything).Return(nil).Once()

	tx, err := suite.service.CreateTransaction(suite.ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.True(occurred.Equal(tx.OccurredAt))
	suite.True(fixedNow.Equal(tx.CreatedAt))
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ValidationFailures() {
	cases := map[string]dto.CreateTransactionRequest{
		"zero amount":       {Kind: domain.KindExpense, Category: domain.CategoryFood, Amount: amountPtr("0")},
		"negative amount":   {Kind: domain.KindExpense, Category: domain.CategoryFood, Amount: amountPtr("-10")},
		"missing amount":    {Kind: domain.KindExpense, Category: domain.CategoryFood},
		"category mismatch": {Kind: domain.KindIncome, Category: domain.CategoryFood, Amount: amountPtr("10")},
		"unknown kind":      {Kind: "transfer", Category: domain.CategoryFood, Amount: amountPtr("10")},
		"long description":  {Kind: domain.KindExpense, Category: domain.CategoryFood, Amount: amountPtr("10"), Description: strings.Repeat("a", 201)},
	}

	for name, req := range cases {
		suite.Run(name, func() {
			tx, err := suite.service.CreateTransaction(suite.ctx, suite.ownerID, req)
			suite.Nil(tx)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RequiresOwner() {
	req := dto.CreateTransactionRequest{Kind: domain.KindExpense, Category: domain.CategoryFood, Amount: amountPtr("10")}

	tx, err := suite.service.CreateTransaction(suite.ctx, "", req)

	suite.Nil(tx)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RepoError() {
	req := dto.CreateTransactionRequest{Kind: domain.KindExpense, Category: domain.CategoryFood, Amount: amountPtr("10")}
	storeErr := errors.Join(apperrors.ErrStoreFailure, errors.New("connection reset"))
	suite.mockRepo.On("SaveTransaction", suite.ctx, mock.Anything).Return(storeErr).Once()

	tx, err := suite.service.CreateTransaction(suite.ctx, suite.ownerID, req)

	suite.Nil(tx)
	suite.ErrorIs(err, apperrors.ErrStoreFailure)
}

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_NotFound() {
	id := uuid.NewString()
	suite.mockRepo.On("FindTransactionByID", suite.ctx, suite.ownerID, id).Return(nil, apperrors.ErrNotFound).Once()

	tx, err := suite.service.GetTransactionByID(suite.ctx, suite.ownerID, id)

	suite.Nil(tx)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_NilBecomesEmpty() {
	suite.mockRepo.On("ListTransactionsByOwner", suite.ctx, suite.ownerID, domain.TransactionFilter{}).Return(nil, nil).Once()

	txs, err := suite.service.ListTransactions(suite.ctx, suite.ownerID)

	suite.Require().NoError(err)
	suite.NotNil(txs)
	suite.Empty(txs)
}

func (suite *TransactionServiceTestSuite) TestFilterTransactions_InvalidRange() {
	start := fixedNow
	end := fixedNow.Add(-time.Hour)

	txs, err := suite.service.FilterTransactions(suite.ctx, suite.ownerID, domain.TransactionFilter{StartDate: &start, EndDate: &end})

	suite.Nil(txs)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListTransactionsByOwner", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_PartialMerge() {
	current := suite.existing()
	suite.mockRepo.On("FindTransactionByID", suite.ctx, suite.ownerID, current.TransactionID).Return(current, nil).Once()
	suite.mockRepo.On("UpdateTransaction", suite.ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Amount.Equal(decimal.RequireFromString("200")) && t.Category == domain.CategoryFood &&
			t.Description == "groceries" && t.UpdatedAt.Equal(fixedNow)
	})).Return(nil).Once()

	tx, err := suite.service.UpdateTransaction(suite.ctx, suite.ownerID, current.TransactionID,
		dto.UpdateTransactionRequest{Amount: amountPtr("200")})

	suite.Require().NoError(err)
	suite.Equal("200", tx.Amount.String())
	suite.Equal(current.CreatedAt, tx.CreatedAt)
	suite.Equal(suite.ownerID, tx.OwnerID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_RejectsNonPositiveAmount() {
	current := suite.existing()
	suite.mockRepo.On("FindTransactionByID", suite.ctx, suite.ownerID, current.TransactionID).Return(current, nil).Once()

	tx, err := suite.service.UpdateTransaction(suite.ctx, suite.ownerID, current.TransactionID,
		dto.UpdateTransactionRequest{Amount: amountPtr("-5")})

	suite.Nil(tx)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_KindChangeNeedsMatchingCategory() {
	current := suite.existing()
	suite.mockRepo.On("FindTransactionByID", suite.ctx, suite.ownerID, current.TransactionID).Return(current, nil).Once()

	tx, err := suite.service.UpdateTransaction(suite.ctx, suite.ownerID, current.TransactionID,
		dto.UpdateTransactionRequest{Kind: ptr(domain.KindIncome)})

	suite.Nil(tx)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_TypeAliasOfKind() {
	suite.mockRepo.On("SaveTransaction", suite.ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Kind == domain.KindIncome
	})).Return(nil).Once()

	tx, err := suite.service.CreateTransaction(suite.ctx, suite.ownerID, dto.CreateTransactionRequest{
		Type: domain.KindIncome, Category: domain.CategorySalary, Amount: amountPtr("100"),
	})

	suite.Require().NoError(err)
	suite.Equal(domain.KindIncome, tx.Kind)

	tx, err = suite.service.CreateTransaction(suite.ctx, suite.ownerID, dto.CreateTransactionRequest{
		Kind: domain.KindExpense, Type: domain.KindIncome, Category: domain.CategorySalary, Amount: amountPtr("100"),
	})

	suite.Nil(tx)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_TypeAliasOfKind() {
	current := suite.existing()
	suite.mockRepo.On("FindTransactionByID", suite.ctx, suite.ownerID, current.TransactionID).Return(current, nil).Once()
	suite.mockRepo.On("UpdateTransaction", suite.ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Kind == domain.KindIncome && t.Category == domain.CategorySalary
	})).Return(nil).Once()

	tx, err := suite.service.UpdateTransaction(suite.ctx, suite.ownerID, current.TransactionID,
		dto.UpdateTransactionRequest{Type: ptr(domain.KindIncome), Category: ptr(domain.CategorySalary)})

	suite.Require().NoError(err)
	suite.Equal(domain.KindIncome, tx.Kind)

	tx, err = suite.service.UpdateTransaction(suite.ctx, suite.ownerID, current.TransactionID,
		dto.UpdateTransactionRequest{Kind: ptr(domain.KindExpense), Type: ptr(domain.KindIncome)})

	suite.Nil(tx)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_EmptyUpdateRefreshesUpdatedAt() {
	current := suite.existing()
	suite.mockRepo.On("FindTransactionByID", suite.ctx, suite.ownerID, current.TransactionID).Return(current, nil).Once()
	suite.mockRepo.On("UpdateTransaction", suite.ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Amount.Equal(current.Amount) && t.UpdatedAt.Equal(fixedNow)
	})).Return(nil).Once()

	tx, err := suite.service.UpdateTransaction(suite.ctx, suite.ownerID, current.TransactionID, dto.UpdateTransactionRequest{})

	suite.Require().NoError(err)
	suite.True(fixedNow.Equal(tx.UpdatedAt))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_ForeignRecord() {
	id := uuid.NewString()
	suite.mockRepo.On("FindTransactionByID", suite.ctx, suite.ownerID, id).Return(nil, apperrors.ErrNotFound).Once()

	tx, err := suite.service.UpdateTransaction(suite.ctx, suite.ownerID, id, dto.UpdateTransactionRequest{Amount: amountPtr("1")})

	suite.Nil(tx)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction() {
	id := uuid.NewString()
	suite.mockRepo.On("DeleteTransaction", suite.ctx, suite.ownerID, id).Return(nil).Once()
	suite.mockRepo.On("DeleteTransaction", suite.ctx, suite.ownerID, id).Return(apperrors.ErrNotFound).Once()

	suite.NoError(suite.service.DeleteTransaction(suite.ctx, suite.ownerID, id))
	suite.ErrorIs(suite.service.DeleteTransaction(suite.ctx, suite.ownerID, id), apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestGetStats_FoldsAllTransactions() {
	txs := []domain.Transaction{
		{Kind: domain.KindIncome, Category: domain.CategorySalary, Amount: decimal.RequireFromString("3000")},
		{Kind: domain.KindExpense, Category: domain.CategoryFood, Amount: decimal.RequireFromString("150")},
		{Kind: domain.KindExpense, Category: domain.CategoryFood, Amount: decimal.RequireFromString("50")},
		{Kind: domain.KindExpense, Category: domain.CategoryTransport, Amount: decimal.RequireFromString("80")},
	}
	suite.mockRepo.On("ListTransactionsByOwner", suite.ctx, suite.ownerID, domain.TransactionFilter{}).Return(txs, nil).Once()

	stats, err := suite.service.GetStats(suite.ctx, suite.ownerID)

	suite.Require().NoError(err)
	suite.Equal("3000", stats.TotalIncome.String())
	suite.Equal("280", stats.TotalExpense.String())
	suite.Equal("2720", stats.Balance.String())
	suite.Equal("200", stats.ExpensesByCategory[domain.CategoryFood].String())
	suite.Equal("80", stats.ExpensesByCategory[domain.CategoryTransport].String())
	suite.Len(stats.ExpensesByCategory, 2)
	suite.Equal(4, stats.TransactionCount)
}

func (suite *TransactionServiceTestSuite) TestGetStats_RepoError() {
	suite.mockRepo.On("ListTransactionsByOwner", suite.ctx, suite.ownerID, domain.TransactionFilter{}).
		Return(nil, apperrors.ErrStoreFailure).Once()

	stats, err := suite.service.GetStats(suite.ctx, suite.ownerID)

	suite.Nil(stats)
	suite.ErrorIs(err, apperrors.ErrStoreFailure)
}

// --- Run Test Suite ---
func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
