package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrBillNotFound        = errors.New("bill not found")
	ErrBillNameEmpty       = errors.New("bill name is required")
	ErrBillNameTooLong     = errors.New("bill name must be 255 characters or less")
	ErrBillAmountInvalid   = errors.New("bill amount must not be negative")
	ErrBillCategoryEmpty   = errors.New("bill category is required")
	ErrBillCategoryTooLong = errors.New("bill category must be 100 characters or less")
	ErrBillDueDateRequired = errors.New("bill due date is required")
)

// MaxCategoryLength bounds bill categories
const MaxCategoryLength = 100

// Bill is an upcoming or recurring payment
type Bill struct {
	ID          int32           `json:"id"`
	UserID      int32           `json:"userId"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"dueDate"`
	Category    string          `json:"category"`
	Notes       string          `json:"notes"`
	IsRecurring bool            `json:"isRecurring"`
	IsPaid      bool            `json:"isPaid"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Validate checks the invariants of a bill before persistence
func (b *Bill) Validate() error {
	if b.Name == "" {
		return ErrBillNameEmpty
	}
	if len(b.Name) > MaxLongNameLength {
		return ErrBillNameTooLong
	}
	if b.Amount.IsNegative() {
		return ErrBillAmountInvalid
	}
	if b.Category == "" {
		return ErrBillCategoryEmpty
	}
	if len(b.Category) > MaxCategoryLength {
		return ErrBillCategoryTooLong
	}
	if b.DueDate.IsZero() {
		return ErrBillDueDateRequired
	}
	return nil
}

// BillRepository defines the interface for bill persistence operations
type BillRepository interface {
	Create(bill *Bill) (*Bill, error)
	GetByID(userID int32, id int32) (*Bill, error)
	GetAllByUser(userID int32) ([]*Bill, error)
	Update(bill *Bill) (*Bill, error)
	TogglePaid(userID int32, id int32) (*Bill, error)
	Delete(userID int32, id int32) error
}
