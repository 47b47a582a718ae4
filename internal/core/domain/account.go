package domain

import "github.com/shopspring/decimal"

// AccountType describes the kind of financial account.
type AccountType string

const (
	Checking   AccountType = "checking"
	Savings    AccountType = "savings"
	CreditCard AccountType = "credit"
	Investment AccountType = "investment"
	Cash       AccountType = "cash"
)

// Account represents a financial account owned by a user.
// The balance is maintained by the transaction write path, not by the
// analysis core, which treats accounts as read-only inputs.
type Account struct {
	AccountID    string          `json:"accountID"` // Primary Key (UUID)
	UserID       string          `json:"userID"`    // FK -> User.userID (Not Null)
	Name         string          `json:"name"`
	AccountType  AccountType     `json:"accountType"`
	Institution  string          `json:"institution"` // Bank or provider name, optional
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}
