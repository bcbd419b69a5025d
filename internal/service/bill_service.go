package service

import (
	"strings"
	"time"

	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// BillService handles bill business logic
type BillService struct {
	billRepo       domain.BillRepository
	eventPublisher websocket.EventPublisher
}

// NewBillService creates a new BillService
func NewBillService(billRepo domain.BillRepository) *BillService {
	return &BillService{billRepo: billRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *BillService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *BillService) publishEvent(userID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// BillInput contains input for creating or replacing a bill
type BillInput struct {
	Name        string
	Amount      decimal.Decimal
	DueDate     time.Time
	Category    string
	Notes       string
	IsRecurring bool
	IsPaid      bool
}

func (input BillInput) toBill(userID int32) *domain.Bill {
	return &domain.Bill{
		UserID:      userID,
		Name:        strings.TrimSpace(input.Name),
		Amount:      input.Amount,
		DueDate:     input.DueDate,
		Category:    strings.TrimSpace(input.Category),
		Notes:       input.Notes,
		IsRecurring: input.IsRecurring,
		IsPaid:      input.IsPaid,
	}
}

// CreateBill validates and stores a new bill
func (s *BillService) CreateBill(userID int32, input BillInput) (*domain.Bill, error) {
	bill := input.toBill(userID)
	if err := bill.Validate(); err != nil {
		return nil, err
	}

	created, err := s.billRepo.Create(bill)
	if err != nil {
		return nil, err
	}
	s.publishEvent(userID, websocket.BillCreated(created))
	return created, nil
}

// GetBill retrieves one of the user's bills
func (s *BillService) GetBill(userID int32, id int32) (*domain.Bill, error) {
	return s.billRepo.GetByID(userID, id)
}

// GetBills lists the user's bills by due date
func (s *BillService) GetBills(userID int32) ([]*domain.Bill, error) {
	return s.billRepo.GetAllByUser(userID)
}

// UpdateBill replaces a bill
func (s *BillService) UpdateBill(userID int32, id int32, input BillInput) (*domain.Bill, error) {
	bill := input.toBill(userID)
	bill.ID = id
	if err := bill.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.billRepo.Update(bill)
	if err != nil {
		return nil, err
	}
	s.publishEvent(userID, websocket.BillUpdated(updated))
	return updated, nil
}

// TogglePaid flips the paid flag of a bill
func (s *BillService) TogglePaid(userID int32, id int32) (*domain.Bill, error) {
	bill, err := s.billRepo.TogglePaid(userID, id)
	if err != nil {
		return nil, err
	}
	s.publishEvent(userID, websocket.BillUpdated(bill))
	return bill, nil
}

// DeleteBill removes a bill and, through the schema, its reminders
func (s *BillService) DeleteBill(userID int32, id int32) error {
	if err := s.billRepo.Delete(userID, id); err != nil {
		return err
	}
	s.publishEvent(userID, websocket.BillDeleted(map[string]int32{"id": id}))
	return nil
}
