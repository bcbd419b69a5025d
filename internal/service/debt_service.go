package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pennyhq/penny/penny-backend/internal/amortization"
	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DebtService handles debt business logic
type DebtService struct {
	debtRepo       domain.DebtRepository
	notifier       *NotificationService
	eventPublisher websocket.EventPublisher
}

// NewDebtService creates a new DebtService. notifier may be nil.
func NewDebtService(debtRepo domain.DebtRepository, notifier *NotificationService) *DebtService {
	return &DebtService{
		debtRepo: debtRepo,
		notifier: notifier,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *DebtService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (s *DebtService) publishEvent(userID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// DebtInput contains input for creating or replacing a debt
type DebtInput struct {
	Name             string
	Principal        decimal.Decimal
	InterestRate     decimal.Decimal
	TermMonths       int32
	RemainingBalance *decimal.Decimal // defaults to Principal
	DebtType         *string          // defaults to DefaultDebtType
	DueDate          *time.Time
}

// AccruedInterest is the simple interest accrued on a debt over a number of days
type AccruedInterest struct {
	Days     int     `json:"days"`
	Interest float64 `json:"interest"`
}

func (input DebtInput) toDebt(userID int32) *domain.Debt {
	debt := &domain.Debt{
		UserID:           userID,
		Name:             strings.TrimSpace(input.Name),
		Principal:        input.Principal,
		InterestRate:     input.InterestRate,
		TermMonths:       input.TermMonths,
		RemainingBalance: input.Principal,
		DebtType:         domain.DefaultDebtType,
		DueDate:          input.DueDate,
	}
	if input.RemainingBalance != nil {
		debt.RemainingBalance = *input.RemainingBalance
	}
	if input.DebtType != nil && strings.TrimSpace(*input.DebtType) != "" {
		debt.DebtType = strings.TrimSpace(*input.DebtType)
	}
	return debt
}

// CreateDebt validates and stores a new debt
func (s *DebtService) CreateDebt(userID int32, input DebtInput) (*domain.Debt, error) {
	debt := input.toDebt(userID)
	if err := debt.Validate(); err != nil {
		return nil, err
	}

	created, err := s.debtRepo.Create(debt)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to create debt")
		return nil, err
	}

	s.notifier.Notify(userID, fmt.Sprintf("New debt added: %s", created.Name))
	s.publishEvent(userID, websocket.DebtCreated(created))
	return created, nil
}

// GetDebt retrieves one of the user's debts
func (s *DebtService) GetDebt(userID int32, id int32) (*domain.Debt, error) {
	return s.debtRepo.GetByID(userID, id)
}

// GetDebts lists the user's debts
func (s *DebtService) GetDebts(userID int32) ([]*domain.Debt, error) {
	return s.debtRepo.GetAllByUser(userID)
}

// UpdateDebt replaces the editable fields of a debt
func (s *DebtService) UpdateDebt(userID int32, id int32, input DebtInput) (*domain.Debt, error) {
	existing, err := s.debtRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	debt := input.toDebt(userID)
	debt.ID = existing.ID
	debt.DateAdded = existing.DateAdded
	if input.RemainingBalance == nil {
		debt.RemainingBalance = existing.RemainingBalance
	}
	if input.DebtType == nil {
		debt.DebtType = existing.DebtType
	}
	if err := debt.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.debtRepo.Update(debt)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.DebtUpdated(updated))
	return updated, nil
}

// DeleteDebt removes one of the user's debts
func (s *DebtService) DeleteDebt(userID int32, id int32) error {
	if err := s.debtRepo.Delete(userID, id); err != nil {
		return err
	}
	s.publishEvent(userID, websocket.DebtDeleted(map[string]int32{"id": id}))
	return nil
}

// TermsOf converts a stored debt to amortization inputs
func TermsOf(debt *domain.Debt) amortization.LoanTerms {
	return amortization.LoanTerms{
		Principal:         debt.Principal.InexactFloat64(),
		AnnualRatePercent: debt.InterestRate.InexactFloat64(),
		TermMonths:        int(debt.TermMonths),
	}
}

// GetSchedule computes the payment schedule of a stored debt.
// Stored terms outside the engine's range yield amortization.ErrInvalidArgument,
// or amortization.ErrOverflow when the payment is not finite.
func (s *DebtService) GetSchedule(userID int32, id int32) ([]amortization.ScheduleEntry, error) {
	debt, err := s.debtRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	return amortization.Schedule(TermsOf(debt))
}

// PreviewSchedule computes a schedule for unsaved terms. The terms must be
// storable as a debt.
func (s *DebtService) PreviewSchedule(principal, interestRate decimal.Decimal, termMonths int32) ([]amortization.ScheduleEntry, amortization.Summary, error) {
	if err := domain.ValidateLoanTerms(principal, interestRate, termMonths); err != nil {
		return nil, amortization.Summary{}, err
	}
	schedule, err := amortization.Schedule(amortization.LoanTerms{
		Principal:         principal.InexactFloat64(),
		AnnualRatePercent: interestRate.InexactFloat64(),
		TermMonths:        int(termMonths),
	})
	if err != nil {
		return nil, amortization.Summary{}, err
	}
	return schedule, amortization.Summarize(schedule), nil
}

// GetAccruedInterest returns the simple interest accrued on the remaining
// balance of a debt over the given number of days
func (s *DebtService) GetAccruedInterest(userID int32, id int32, days int) (*AccruedInterest, error) {
	debt, err := s.debtRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	interest, err := amortization.Accrue(amortization.AccrualRequest{
		Principal:         debt.RemainingBalance.InexactFloat64(),
		AnnualRatePercent: debt.InterestRate.InexactFloat64(),
		Days:              days,
	})
	if err != nil {
		if errors.Is(err, amortization.ErrInvalidArgument) {
			return nil, domain.ErrAccrualDaysInvalid
		}
		return nil, err
	}
	return &AccruedInterest{Days: days, Interest: interest}, nil
}

// ExportDebts returns the user's debts as flat records
func (s *DebtService) ExportDebts(userID int32) ([]domain.DebtRecord, error) {
	debts, err := s.debtRepo.GetAllByUser(userID)
	if err != nil {
		return nil, err
	}

	records := make([]domain.DebtRecord, 0, len(debts))
	for _, d := range debts {
		records = append(records, domain.DebtRecord{
			Name:             d.Name,
			Principal:        d.Principal,
			InterestRate:     d.InterestRate,
			TermMonths:       d.TermMonths,
			DateAdded:        d.DateAdded,
			RemainingBalance: d.RemainingBalance,
		})
	}
	return records, nil
}

// ImportDebts replaces all of the user's debts with the given records.
// Nothing is written unless every record is valid.
func (s *DebtService) ImportDebts(userID int32, records []domain.DebtRecord) ([]*domain.Debt, error) {
	debts := make([]*domain.Debt, 0, len(records))
	for i, r := range records {
		debt := &domain.Debt{
			UserID:           userID,
			Name:             strings.TrimSpace(r.Name),
			Principal:        r.Principal,
			InterestRate:     r.InterestRate,
			TermMonths:       r.TermMonths,
			RemainingBalance: r.RemainingBalance,
			DebtType:         domain.DefaultDebtType,
			DateAdded:        r.DateAdded,
		}
		if err := debt.Validate(); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", domain.ErrDebtImportRowsInvalid, i+1, err)
		}
		debts = append(debts, debt)
	}

	imported, err := s.debtRepo.ReplaceAll(userID, debts)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Int("count", len(debts)).Msg("Failed to import debts")
		return nil, fmt.Errorf("failed to import debts: %w", err)
	}

	s.notifier.Notify(userID, fmt.Sprintf("Imported %d debts", len(imported)))
	s.publishEvent(userID, websocket.DebtsImported(imported))
	return imported, nil
}
