package domain_test

import (
	"testing"

	"github.com/fintrackhq/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// stringPtr returns a pointer to the provided string value.
func stringPtr(s string) *string {
	return &s
}

func TestTransaction_Type(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		want        domain.TransactionType
	}{
		{
			name: "positive amount is income",
			transaction: domain.Transaction{
				Amount: decimal.NewFromFloat(2500.00),
			},
			want: domain.Income,
		},
		{
			name: "zero amount is income",
			transaction: domain.Transaction{
				Amount: decimal.Zero,
			},
			want: domain.Income,
		},
		{
			name: "negative amount is expense",
			transaction: domain.Transaction{
				Amount: decimal.NewFromFloat(-42.99),
			},
			want: domain.Expense,
		},
		{
			name: "transfer marker wins over negative amount",
			transaction: domain.Transaction{
				Amount:            decimal.NewFromFloat(-200.00),
				TransferAccountID: stringPtr("acc-2"),
			},
			want: domain.Transfer,
		},
		{
			name: "transfer marker wins over positive amount",
			transaction: domain.Transaction{
				Amount:            decimal.NewFromFloat(200.00),
				TransferAccountID: stringPtr("acc-1"),
			},
			want: domain.Transfer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.transaction.Type()
			assert.Equal(t, tt.want, got)
		})
	}
}
