package dto

import (
	"time"

	"github.com/fintrackhq/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// Amount is signed: positive for income, negative for expenses. A non-nil
// TransferAccountID turns the request into a transfer between two of the
// user's accounts; the service records the opposite leg automatically.
type CreateTransactionRequest struct {
	AccountID         string          `json:"accountID" binding:"required"`
	CategoryID        *string         `json:"categoryID"`
	TransferAccountID *string         `json:"transferAccountID"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	Description       string          `json:"description"`
	TransactionDate   time.Time       `json:"transactionDate" binding:"required"`
	Notes             string          `json:"notes"`
	IsRecurring       bool            `json:"isRecurring"`
	RecurrencePattern string          `json:"recurrencePattern"`
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateTransactionRequest struct {
	CategoryID      *string          `json:"categoryID"`
	Amount          *decimal.Decimal `json:"amount"`
	Description     *string          `json:"description"`
	TransactionDate *time.Time       `json:"transactionDate"`
	Notes           *string          `json:"notes"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID     string                 `json:"transactionID"`
	AccountID         string                 `json:"accountID"`
	CategoryID        *string                `json:"categoryID"`
	TransferAccountID *string                `json:"transferAccountID"`
	Amount            decimal.Decimal        `json:"amount"`
	Type              domain.TransactionType `json:"type"`
	Description       string                 `json:"description"`
	TransactionDate   time.Time              `json:"transactionDate"`
	Notes             string                 `json:"notes"`
	IsRecurring       bool                   `json:"isRecurring"`
	RecurrencePattern string                 `json:"recurrencePattern,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:     txn.TransactionID,
		AccountID:         txn.AccountID,
		CategoryID:        txn.CategoryID,
		TransferAccountID: txn.TransferAccountID,
		Amount:            txn.Amount,
		Type:              txn.Type(),
		Description:       txn.Description,
		TransactionDate:   txn.TransactionDate,
		Notes:             txn.Notes,
		IsRecurring:       txn.IsRecurring,
		RecurrencePattern: txn.RecurrencePattern,
		CreatedAt:         txn.CreatedAt,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to a slice of TransactionResponse DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(&txn)
	}
	return res
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	AccountID  string `form:"accountID"`
	CategoryID string `form:"categoryID"`
	StartDate  string `form:"startDate"` // YYYY-MM-DD
	EndDate    string `form:"endDate"`   // YYYY-MM-DD
	Type       string `form:"type"`
	Limit      int    `form:"limit,default=50"`
	Offset     int    `form:"offset,default=0"`
	PageToken  string `form:"pageToken"` // Opaque cursor; overrides offset when set
}

// ListTransactionsResponse wraps the list of transactions. NextPageToken is
// set when another page may exist; pass it back as pageToken to resume.
type ListTransactionsResponse struct {
	Transactions  []TransactionResponse `json:"transactions"`
	NextPageToken string                `json:"nextPageToken,omitempty"`
}
