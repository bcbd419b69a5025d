package domain

import (
	"errors"
	"time"

	"github.com/pennyhq/penny/penny-backend/internal/amortization"
	"github.com/shopspring/decimal"
)

var (
	ErrDebtNotFound          = errors.New("debt not found")
	ErrDebtNameEmpty         = errors.New("debt name is required")
	ErrDebtNameTooLong       = errors.New("debt name must be 200 characters or less")
	ErrDebtPrincipalInvalid  = errors.New("principal must be positive and at most 999999999999.99")
	ErrDebtRateInvalid       = errors.New("interest rate must be between 0 and 100")
	ErrDebtTermInvalid       = errors.New("term months must be between 1 and 1200")
	ErrDebtBalanceInvalid    = errors.New("remaining balance must be between 0 and 999999999999.99")
	ErrAccrualDaysInvalid    = errors.New("days must not be negative")
	ErrDebtImportRowsInvalid = errors.New("import contains invalid rows")
)

// DefaultDebtType is used when a debt is created without a type
const DefaultDebtType = "Debt Type"

// MaxTermMonths matches the longest schedule the amortization engine builds
const MaxTermMonths = amortization.MaxTermMonths

var (
	// MaxDebtAmount is the largest NUMERIC(14,2) value
	MaxDebtAmount = decimal.RequireFromString("999999999999.99")

	// MaxInterestRate is an annual percentage
	MaxInterestRate = decimal.NewFromInt(100)
)

// Debt is a loan-like obligation tracked by a user
type Debt struct {
	ID               int32           `json:"id"`
	UserID           int32           `json:"userId"`
	Name             string          `json:"name"`
	Principal        decimal.Decimal `json:"principal"`
	InterestRate     decimal.Decimal `json:"interestRate"` // annual percentage, 5 means 5%
	TermMonths       int32           `json:"termMonths"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	DebtType         string          `json:"debtType"`
	DueDate          *time.Time      `json:"dueDate,omitempty"`
	DateAdded        time.Time       `json:"dateAdded"`
}

// Validate checks the invariants of a debt before persistence
func (d *Debt) Validate() error {
	if d.Name == "" {
		return ErrDebtNameEmpty
	}
	if len(d.Name) > MaxNameLength {
		return ErrDebtNameTooLong
	}
	if err := ValidateLoanTerms(d.Principal, d.InterestRate, d.TermMonths); err != nil {
		return err
	}
	if d.RemainingBalance.IsNegative() || d.RemainingBalance.GreaterThan(MaxDebtAmount) {
		return ErrDebtBalanceInvalid
	}
	return nil
}

// ValidateLoanTerms checks principal, rate and term against the storable ranges
func ValidateLoanTerms(principal, interestRate decimal.Decimal, termMonths int32) error {
	if principal.LessThanOrEqual(decimal.Zero) || principal.GreaterThan(MaxDebtAmount) {
		return ErrDebtPrincipalInvalid
	}
	if interestRate.IsNegative() || interestRate.GreaterThan(MaxInterestRate) {
		return ErrDebtRateInvalid
	}
	if termMonths < 1 || termMonths > MaxTermMonths {
		return ErrDebtTermInvalid
	}
	return nil
}

// DebtRecord is the flat export/import shape of a debt
type DebtRecord struct {
	Name             string          `json:"name"`
	Principal        decimal.Decimal `json:"principal"`
	InterestRate     decimal.Decimal `json:"interestRate"`
	TermMonths       int32           `json:"termMonths"`
	DateAdded        time.Time       `json:"dateAdded"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// DebtRepository defines the interface for debt persistence operations
type DebtRepository interface {
	Create(debt *Debt) (*Debt, error)
	GetByID(userID int32, id int32) (*Debt, error)
	GetAllByUser(userID int32) ([]*Debt, error)
	Update(debt *Debt) (*Debt, error)
	Delete(userID int32, id int32) error
	ReplaceAll(userID int32, debts []*Debt) ([]*Debt, error)
}
