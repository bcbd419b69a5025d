package service

import (
	"strings"

	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// InvestmentService handles investment and profit/loss business logic
type InvestmentService struct {
	investmentRepo domain.InvestmentRepository
	profitLossRepo domain.ProfitLossRepository
	eventPublisher websocket.EventPublisher
}

// NewInvestmentService creates a new InvestmentService
func NewInvestmentService(investmentRepo domain.InvestmentRepository, profitLossRepo domain.ProfitLossRepository) *InvestmentService {
	return &InvestmentService{
		investmentRepo: investmentRepo,
		profitLossRepo: profitLossRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *InvestmentService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *InvestmentService) publishEvent(userID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// InvestmentInput contains input for creating or replacing an investment
type InvestmentInput struct {
	Amount      decimal.Decimal
	Type        domain.InvestmentType
	Description string
	Status      domain.InvestmentStatus // defaults to ACTIVE
}

func validateInvestment(input *InvestmentInput) error {
	if input.Amount.IsNegative() {
		return domain.ErrInvestmentAmountInvalid
	}
	input.Type = domain.InvestmentType(strings.ToUpper(strings.TrimSpace(string(input.Type))))
	if !input.Type.IsValid() {
		return domain.ErrInvestmentTypeInvalid
	}
	input.Status = domain.InvestmentStatus(strings.ToUpper(strings.TrimSpace(string(input.Status))))
	if input.Status == "" {
		input.Status = domain.InvestmentStatusActive
	}
	if !input.Status.IsValid() {
		return domain.ErrInvestmentStatusInvalid
	}
	return nil
}

// CreateInvestment validates and stores an investment
func (s *InvestmentService) CreateInvestment(userID int32, input InvestmentInput) (*domain.Investment, error) {
	if err := validateInvestment(&input); err != nil {
		return nil, err
	}

	created, err := s.investmentRepo.Create(&domain.Investment{
		UserID:      userID,
		Amount:      input.Amount,
		Type:        input.Type,
		Description: input.Description,
		Status:      input.Status,
	})
	if err != nil {
		return nil, err
	}
	s.publishEvent(userID, websocket.InvestmentCreated(created))
	return created, nil
}

// GetInvestment retrieves one of the user's investments
func (s *InvestmentService) GetInvestment(userID int32, id int32) (*domain.Investment, error) {
	return s.investmentRepo.GetByID(userID, id)
}

// GetInvestments lists the user's investments
func (s *InvestmentService) GetInvestments(userID int32) ([]*domain.Investment, error) {
	return s.investmentRepo.GetAllByUser(userID)
}

// UpdateInvestment replaces an investment
func (s *InvestmentService) UpdateInvestment(userID int32, id int32, input InvestmentInput) (*domain.Investment, error) {
	if err := validateInvestment(&input); err != nil {
		return nil, err
	}

	updated, err := s.investmentRepo.Update(&domain.Investment{
		ID:          id,
		UserID:      userID,
		Amount:      input.Amount,
		Type:        input.Type,
		Description: input.Description,
		Status:      input.Status,
	})
	if err != nil {
		return nil, err
	}
	s.publishEvent(userID, websocket.InvestmentUpdated(updated))
	return updated, nil
}

// DeleteInvestment removes an investment and its profit/loss entries
func (s *InvestmentService) DeleteInvestment(userID int32, id int32) error {
	if err := s.investmentRepo.Delete(userID, id); err != nil {
		return err
	}
	s.publishEvent(userID, websocket.InvestmentDeleted(map[string]int32{"id": id}))
	return nil
}

// ProfitLossInput contains input for recording a profit or loss
type ProfitLossInput struct {
	Amount decimal.Decimal
	Type   domain.ProfitLossType
}

// AddProfitLoss records a gain or loss on one of the user's investments
func (s *InvestmentService) AddProfitLoss(userID int32, investmentID int32, input ProfitLossInput) (*domain.ProfitLoss, error) {
	if _, err := s.investmentRepo.GetByID(userID, investmentID); err != nil {
		return nil, err
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrProfitLossAmountInvalid
	}
	plType := domain.ProfitLossType(strings.ToUpper(strings.TrimSpace(string(input.Type))))
	if plType != domain.ProfitLossTypeProfit && plType != domain.ProfitLossTypeLoss {
		return nil, domain.ErrProfitLossTypeInvalid
	}

	entry, err := s.profitLossRepo.Create(&domain.ProfitLoss{
		InvestmentID: investmentID,
		Amount:       input.Amount,
		Type:         plType,
	})
	if err != nil {
		return nil, err
	}
	s.publishEvent(userID, websocket.ProfitLossCreated(entry))
	return entry, nil
}

// GetProfitLoss lists the entries of one of the user's investments
func (s *InvestmentService) GetProfitLoss(userID int32, investmentID int32) ([]*domain.ProfitLoss, error) {
	if _, err := s.investmentRepo.GetByID(userID, investmentID); err != nil {
		return nil, err
	}
	return s.profitLossRepo.GetByInvestment(investmentID)
}

// GetOverview totals the user's investments and results
func (s *InvestmentService) GetOverview(userID int32) (*domain.InvestmentOverview, error) {
	total, err := s.investmentRepo.SumAmount(userID)
	if err != nil {
		return nil, err
	}
	profit, err := s.profitLossRepo.SumByType(userID, domain.ProfitLossTypeProfit)
	if err != nil {
		return nil, err
	}
	loss, err := s.profitLossRepo.SumByType(userID, domain.ProfitLossTypeLoss)
	if err != nil {
		return nil, err
	}

	return &domain.InvestmentOverview{
		TotalInvestment: total,
		TotalProfit:     profit,
		TotalLoss:       loss,
		NetBalance:      profit.Sub(loss),
	}, nil
}
