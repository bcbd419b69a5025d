package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvestmentNotFound      = errors.New("investment not found")
	ErrInvestmentAmountInvalid = errors.New("investment amount must not be negative")
	ErrInvestmentTypeInvalid   = errors.New("investment type is invalid")
	ErrInvestmentStatusInvalid = errors.New("investment status is invalid")
	ErrProfitLossAmountInvalid = errors.New("profit/loss amount must be positive")
	ErrProfitLossTypeInvalid   = errors.New("profit/loss type must be PROFIT or LOSS")
)

// InvestmentType classifies an investment
type InvestmentType string

const (
	InvestmentTypeStock      InvestmentType = "STOCK"
	InvestmentTypeBond       InvestmentType = "BOND"
	InvestmentTypeRealEstate InvestmentType = "REAL_ESTATE"
	InvestmentTypeCrypto     InvestmentType = "CRYPTO"
	InvestmentTypeOther      InvestmentType = "OTHER"
)

// IsValid reports whether t is a known investment type
func (t InvestmentType) IsValid() bool {
	switch t {
	case InvestmentTypeStock, InvestmentTypeBond, InvestmentTypeRealEstate, InvestmentTypeCrypto, InvestmentTypeOther:
		return true
	}
	return false
}

// InvestmentStatus is the lifecycle state of an investment
type InvestmentStatus string

const (
	InvestmentStatusActive  InvestmentStatus = "ACTIVE"
	InvestmentStatusSold    InvestmentStatus = "SOLD"
	InvestmentStatusMatured InvestmentStatus = "MATURED"
)

// IsValid reports whether s is a known investment status
func (s InvestmentStatus) IsValid() bool {
	switch s {
	case InvestmentStatusActive, InvestmentStatusSold, InvestmentStatusMatured:
		return true
	}
	return false
}

// Investment is money a user has put into an asset
type Investment struct {
	ID           int32            `json:"id"`
	UserID       int32            `json:"userId"`
	Amount       decimal.Decimal  `json:"amount"`
	Type         InvestmentType   `json:"type"`
	Description  string           `json:"description"`
	Status       InvestmentStatus `json:"status"`
	DateInvested time.Time        `json:"dateInvested"`
}

// ProfitLossType marks a result entry as a gain or a loss
type ProfitLossType string

const (
	ProfitLossTypeProfit ProfitLossType = "PROFIT"
	ProfitLossTypeLoss   ProfitLossType = "LOSS"
)

// ProfitLoss is a realised gain or loss on an investment
type ProfitLoss struct {
	ID           int32           `json:"id"`
	InvestmentID int32           `json:"investmentId"`
	Date         time.Time       `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Type         ProfitLossType  `json:"type"`
}

// InvestmentOverview aggregates a user's investments
type InvestmentOverview struct {
	TotalInvestment decimal.Decimal `json:"totalInvestment"`
	TotalProfit     decimal.Decimal `json:"totalProfit"`
	TotalLoss       decimal.Decimal `json:"totalLoss"`
	NetBalance      decimal.Decimal `json:"netBalance"`
}

// InvestmentRepository defines the interface for investment persistence operations
type InvestmentRepository interface {
	Create(investment *Investment) (*Investment, error)
	GetByID(userID int32, id int32) (*Investment, error)
	GetAllByUser(userID int32) ([]*Investment, error)
	Update(investment *Investment) (*Investment, error)
	Delete(userID int32, id int32) error
	SumAmount(userID int32) (decimal.Decimal, error)
}

// ProfitLossRepository defines the interface for profit/loss persistence operations
type ProfitLossRepository interface {
	Create(entry *ProfitLoss) (*ProfitLoss, error)
	GetByInvestment(investmentID int32) ([]*ProfitLoss, error)
	SumByType(userID int32, plType ProfitLossType) (decimal.Decimal, error)
}
