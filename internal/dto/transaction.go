package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// dateOnlyLayout is accepted for filter bounds in addition to RFC 3339.
const dateOnlyLayout = "2006-01-02"

var errKindTypeConflict = fmt.Errorf("%w: kind and type disagree", apperrors.ErrValidation)

// CreateTransactionRequest defines the data needed to create a new transaction.
// There is deliberately no owner field: the owner always comes from the authenticated identity.
type CreateTransactionRequest struct {
	Kind        domain.TransactionKind `json:"kind" binding:"omitempty,txkind" example:"expense"`
	Type        domain.TransactionKind `json:"type" binding:"omitempty,txkind"` // Alias of kind
	Category    domain.Category        `json:"category" binding:"required,txcategory" example:"Nourriture"`
	Amount      *decimal.Decimal       `json:"amount" binding:"required" swaggertype:"string" example:"150.00"`
	Description string                 `json:"description"` // Optional, trimmed then limited to 200 characters
	OccurredAt  *time.Time             `json:"occurredAt"`  // Optional, defaults to now
}

// ResolvedKind returns kind, falling back to its type alias.
func (r CreateTransactionRequest) ResolvedKind() (domain.TransactionKind, error) {
	if r.Kind == "" {
		return r.Type, nil
	}
	if r.Type != "" && r.Type != r.Kind {
		return "", errKindTypeConflict
	}
	return r.Kind, nil
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateTransactionRequest struct {
	Kind        *domain.TransactionKind `json:"kind" binding:"omitempty,txkind"`
	Type        *domain.TransactionKind `json:"type" binding:"omitempty,txkind"` // Alias of kind
	Category    *domain.Category        `json:"category" binding:"omitempty,txcategory"`
	Amount      *decimal.Decimal        `json:"amount" swaggertype:"string"`
	Description *string                 `json:"description"`
	OccurredAt  *time.Time              `json:"occurredAt"`
}

// ResolvedKind returns the new kind if one was supplied, under kind or its type alias.
func (r UpdateTransactionRequest) ResolvedKind() (*domain.TransactionKind, error) {
	if r.Kind == nil {
		return r.Type, nil
	}
	if r.Type != nil && *r.Type != *r.Kind {
		return nil, errKindTypeConflict
	}
	return r.Kind, nil
}

// IsEmpty reports whether no field was supplied.
func (r UpdateTransactionRequest) IsEmpty() bool {
	return r.Kind == nil && r.Type == nil && r.Category == nil && r.Amount == nil && r.Description == nil && r.OccurredAt == nil
}

// FilterTransactionsParams defines query parameters for filtering transactions.
type FilterTransactionsParams struct {
	StartDate string `form:"startDate"` // RFC 3339 or YYYY-MM-DD, inclusive
	EndDate   string `form:"endDate"`   // RFC 3339 or YYYY-MM-DD (whole day), inclusive
	Category  string `form:"category"`
	Kind      string `form:"kind"`
	Type      string `form:"type"` // Alias of kind
}

// ToDomainFilter parses the raw query parameters into a domain.TransactionFilter.
func (p FilterTransactionsParams) ToDomainFilter() (domain.TransactionFilter, error) {
	var filter domain.TransactionFilter

	if p.StartDate != "" {
		start, err := parseDateBound(p.StartDate, false)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid startDate: %v", apperrors.ErrValidation, err)
		}
		filter.StartDate = &start
	}
	if p.EndDate != "" {
		end, err := parseDateBound(p.EndDate, true)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid endDate: %v", apperrors.ErrValidation, err)
		}
		filter.EndDate = &end
	}
	if p.Category != "" {
		category, err := domain.ParseCategory(p.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &category
	}

	rawKind := p.Kind
	if rawKind == "" {
		rawKind = p.Type
	} else if p.Type != "" && p.Type != p.Kind {
		return filter, errKindTypeConflict
	}
	if rawKind != "" {
		kind, err := domain.ParseKind(rawKind)
		if err != nil {
			return filter, err
		}
		filter.Kind = &kind
	}

	return filter, filter.Validate()
}

// parseDateBound parses an RFC 3339 timestamp or a calendar date. A calendar
// date used as an upper bound covers the whole day.
func parseDateBound(raw string, endOfDay bool) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	day, err := time.Parse(dateOnlyLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected RFC 3339 timestamp or YYYY-MM-DD, got %q", raw)
	}
	if endOfDay {
		return day.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	}
	return day, nil
}

// TransactionResponse defines the data returned for a transaction.
// Mirrors domain.Transaction.
type TransactionResponse struct {
	TransactionID string                 `json:"id"`
	OwnerID       string                 `json:"ownerId"`
	Kind          domain.TransactionKind `json:"kind"`
	Category      domain.Category        `json:"category"`
	Amount        decimal.Decimal        `json:"amount" swaggertype:"string"`
	Description   string                 `json:"description"`
	OccurredAt    time.Time              `json:"occurredAt"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		OwnerID:       t.OwnerID,
		Kind:          t.Kind,
		Category:      t.Category,
		Amount:        t.Amount,
		Description:   t.Description,
		OccurredAt:    t.OccurredAt,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to a slice of TransactionResponse DTOs
func ToListTransactionResponse(txs []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txs))
	for i := range txs {
		res[i] = ToTransactionResponse(&txs[i])
	}
	return res
}

// DeleteTransactionResponse confirms a deletion.
type DeleteTransactionResponse struct {
	Message string `json:"message"`
}
