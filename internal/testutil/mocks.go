package testutil

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// MockUserRepository is a mock implementation of domain.UserRepository and
// domain.ProfileRepository
type MockUserRepository struct {
	Users    map[int32]*domain.User
	Profiles map[int32]*domain.Profile
	NextID   int32
	CreateFn func(user *domain.User, fullName string) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:    make(map[int32]*domain.User),
		Profiles: make(map[int32]*domain.Profile),
		NextID:   1,
	}
}

// AddUser adds a user and an empty profile directly to the mock
func (m *MockUserRepository) AddUser(user *domain.User, fullName string) {
	m.Users[user.ID] = user
	m.Profiles[user.ID] = &domain.Profile{UserID: user.ID, FullName: fullName}
	if user.ID >= m.NextID {
		m.NextID = user.ID + 1
	}
}

// Create creates a new user with its profile
func (m *MockUserRepository) Create(user *domain.User, fullName string) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(user, fullName)
	}
	for _, existing := range m.Users {
		if strings.EqualFold(existing.Email, user.Email) {
			return nil, domain.ErrEmailTaken
		}
	}
	user.ID = m.NextID
	m.NextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.Users[user.ID] = user
	m.Profiles[user.ID] = &domain.Profile{UserID: user.ID, FullName: fullName}
	return user, nil
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id int32) (*domain.User, error) {
	if user, ok := m.Users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByEmail retrieves a user by email, case-insensitively
func (m *MockUserRepository) GetByEmail(email string) (*domain.User, error) {
	for _, user := range m.Users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// ListWithProfiles lists every user joined with its profile, ordered by ID
func (m *MockUserRepository) ListWithProfiles() ([]*domain.UserWithProfile, error) {
	var result []*domain.UserWithProfile
	for id, user := range m.Users {
		entry := &domain.UserWithProfile{User: *user}
		if p, ok := m.Profiles[id]; ok {
			entry.Profile = *p
		} else {
			entry.Profile = domain.Profile{UserID: id}
		}
		result = append(result, entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// UpdatePasswordHash replaces a user's password hash
func (m *MockUserRepository) UpdatePasswordHash(id int32, hash string) error {
	user, ok := m.Users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.PasswordHash = hash
	return nil
}

// GetByUserID retrieves a profile
func (m *MockUserRepository) GetByUserID(userID int32) (*domain.Profile, error) {
	if p, ok := m.Profiles[userID]; ok {
		return p, nil
	}
	return nil, domain.ErrProfileNotFound
}

// UpdateFullName updates a profile's display name
func (m *MockUserRepository) UpdateFullName(userID int32, fullName string) (*domain.Profile, error) {
	p, ok := m.Profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	p.FullName = fullName
	return p, nil
}

// UpdateAvatar stores the avatar object key of a profile
func (m *MockUserRepository) UpdateAvatar(userID int32, avatarKey string) (*domain.Profile, error) {
	p, ok := m.Profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	p.AvatarKey = &avatarKey
	return p, nil
}

// TouchLastActive records the last activity time of a profile
func (m *MockUserRepository) TouchLastActive(userID int32, at time.Time) error {
	p, ok := m.Profiles[userID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.LastActive = &at
	return nil
}

// MockPresenceRepository is a mock implementation of domain.PresenceRepository
type MockPresenceRepository struct {
	mu       sync.Mutex
	Seen     map[int32]time.Time
	TouchErr error
}

// NewMockPresenceRepository creates a new MockPresenceRepository
func NewMockPresenceRepository() *MockPresenceRepository {
	return &MockPresenceRepository{Seen: make(map[int32]time.Time)}
}

// Touch records that a user was seen at the given time
func (m *MockPresenceRepository) Touch(userID int32, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TouchErr != nil {
		return m.TouchErr
	}
	m.Seen[userID] = at
	return nil
}

// LastSeen returns the recorded times for the given users
func (m *MockPresenceRepository) LastSeen(userIDs []int32) (map[int32]time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make(map[int32]time.Time)
	for _, id := range userIDs {
		if at, ok := m.Seen[id]; ok {
			result[id] = at
		}
	}
	return result, nil
}

// MockDebtRepository is a mock implementation of domain.DebtRepository
type MockDebtRepository struct {
	Debts         map[int32]*domain.Debt
	NextID        int32
	ReplaceAllErr error
}

// NewMockDebtRepository creates a new MockDebtRepository
func NewMockDebtRepository() *MockDebtRepository {
	return &MockDebtRepository{
		Debts:  make(map[int32]*domain.Debt),
		NextID: 1,
	}
}

// AddDebt adds a debt directly to the mock
func (m *MockDebtRepository) AddDebt(debt *domain.Debt) {
	m.Debts[debt.ID] = debt
	if debt.ID >= m.NextID {
		m.NextID = debt.ID + 1
	}
}

// Create creates a new debt
func (m *MockDebtRepository) Create(debt *domain.Debt) (*domain.Debt, error) {
	debt.ID = m.NextID
	m.NextID++
	if debt.DateAdded.IsZero() {
		debt.DateAdded = time.Now().UTC().Truncate(24 * time.Hour)
	}
	m.Debts[debt.ID] = debt
	return debt, nil
}

// GetByID retrieves a debt owned by the user
func (m *MockDebtRepository) GetByID(userID int32, id int32) (*domain.Debt, error) {
	if debt, ok := m.Debts[id]; ok && debt.UserID == userID {
		return debt, nil
	}
	return nil, domain.ErrDebtNotFound
}

// GetAllByUser lists a user's debts in insertion order
func (m *MockDebtRepository) GetAllByUser(userID int32) ([]*domain.Debt, error) {
	var result []*domain.Debt
	for _, debt := range m.Debts {
		if debt.UserID == userID {
			result = append(result, debt)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Update replaces a stored debt
func (m *MockDebtRepository) Update(debt *domain.Debt) (*domain.Debt, error) {
	existing, ok := m.Debts[debt.ID]
	if !ok || existing.UserID != debt.UserID {
		return nil, domain.ErrDebtNotFound
	}
	if debt.DateAdded.IsZero() {
		debt.DateAdded = existing.DateAdded
	}
	m.Debts[debt.ID] = debt
	return debt, nil
}

// Delete removes a debt owned by the user
func (m *MockDebtRepository) Delete(userID int32, id int32) error {
	if debt, ok := m.Debts[id]; !ok || debt.UserID != userID {
		return domain.ErrDebtNotFound
	}
	delete(m.Debts, id)
	return nil
}

// ReplaceAll swaps every debt of a user for the given ones
func (m *MockDebtRepository) ReplaceAll(userID int32, debts []*domain.Debt) ([]*domain.Debt, error) {
	if m.ReplaceAllErr != nil {
		return nil, m.ReplaceAllErr
	}
	for id, debt := range m.Debts {
		if debt.UserID == userID {
			delete(m.Debts, id)
		}
	}
	created := make([]*domain.Debt, 0, len(debts))
	for _, debt := range debts {
		debt.UserID = userID
		d, _ := m.Create(debt)
		created = append(created, d)
	}
	return created, nil
}

// MockBillRepository is a mock implementation of domain.BillRepository
type MockBillRepository struct {
	Bills  map[int32]*domain.Bill
	NextID int32
}

// NewMockBillRepository creates a new MockBillRepository
func NewMockBillRepository() *MockBillRepository {
	return &MockBillRepository{
		Bills:  make(map[int32]*domain.Bill),
		NextID: 1,
	}
}

// AddBill adds a bill directly to the mock
func (m *MockBillRepository) AddBill(bill *domain.Bill) {
	m.Bills[bill.ID] = bill
	if bill.ID >= m.NextID {
		m.NextID = bill.ID + 1
	}
}

// Create creates a new bill
func (m *MockBillRepository) Create(bill *domain.Bill) (*domain.Bill, error) {
	bill.ID = m.NextID
	m.NextID++
	bill.CreatedAt = time.Now()
	bill.UpdatedAt = bill.CreatedAt
	m.Bills[bill.ID] = bill
	return bill, nil
}

// GetByID retrieves a bill owned by the user
func (m *MockBillRepository) GetByID(userID int32, id int32) (*domain.Bill, error) {
	if bill, ok := m.Bills[id]; ok && bill.UserID == userID {
		return bill, nil
	}
	return nil, domain.ErrBillNotFound
}

// GetAllByUser lists a user's bills by due date
func (m *MockBillRepository) GetAllByUser(userID int32) ([]*domain.Bill, error) {
	var result []*domain.Bill
	for _, bill := range m.Bills {
		if bill.UserID == userID {
			result = append(result, bill)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DueDate.Equal(result[j].DueDate) {
			return result[i].ID < result[j].ID
		}
		return result[i].DueDate.Before(result[j].DueDate)
	})
	return result, nil
}

// Update replaces a stored bill
func (m *MockBillRepository) Update(bill *domain.Bill) (*domain.Bill, error) {
	existing, ok := m.Bills[bill.ID]
	if !ok || existing.UserID != bill.UserID {
		return nil, domain.ErrBillNotFound
	}
	bill.CreatedAt = existing.CreatedAt
	bill.UpdatedAt = time.Now()
	m.Bills[bill.ID] = bill
	return bill, nil
}

// TogglePaid flips the paid flag of a bill
func (m *MockBillRepository) TogglePaid(userID int32, id int32) (*domain.Bill, error) {
	bill, err := m.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	bill.IsPaid = !bill.IsPaid
	return bill, nil
}

// Delete removes a bill owned by the user
func (m *MockBillRepository) Delete(userID int32, id int32) error {
	if bill, ok := m.Bills[id]; !ok || bill.UserID != userID {
		return domain.ErrBillNotFound
	}
	delete(m.Bills, id)
	return nil
}

// MockReminderRepository is a mock implementation of domain.ReminderRepository
type MockReminderRepository struct {
	Reminders map[int32]*domain.Reminder
	NextID    int32
}

// NewMockReminderRepository creates a new MockReminderRepository
func NewMockReminderRepository() *MockReminderRepository {
	return &MockReminderRepository{
		Reminders: make(map[int32]*domain.Reminder),
		NextID:    1,
	}
}

// Create creates a new reminder
func (m *MockReminderRepository) Create(reminder *domain.Reminder) (*domain.Reminder, error) {
	reminder.ID = m.NextID
	m.NextID++
	reminder.CreatedAt = time.Now()
	m.Reminders[reminder.ID] = reminder
	return reminder, nil
}

// GetByID retrieves a reminder owned by the user
func (m *MockReminderRepository) GetByID(userID int32, id int32) (*domain.Reminder, error) {
	if r, ok := m.Reminders[id]; ok && r.UserID == userID {
		return r, nil
	}
	return nil, domain.ErrReminderNotFound
}

// GetAllByUser lists a user's reminders, optionally for a single bill
func (m *MockReminderRepository) GetAllByUser(userID int32, billID *int32) ([]*domain.Reminder, error) {
	var result []*domain.Reminder
	for _, r := range m.Reminders {
		if r.UserID != userID {
			continue
		}
		if billID != nil && r.BillID != *billID {
			continue
		}
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ReminderAt.Before(result[j].ReminderAt) })
	return result, nil
}

// Update replaces a stored reminder
func (m *MockReminderRepository) Update(reminder *domain.Reminder) (*domain.Reminder, error) {
	existing, ok := m.Reminders[reminder.ID]
	if !ok || existing.UserID != reminder.UserID {
		return nil, domain.ErrReminderNotFound
	}
	reminder.CreatedAt = existing.CreatedAt
	m.Reminders[reminder.ID] = reminder
	return reminder, nil
}

// Delete removes a reminder owned by the user
func (m *MockReminderRepository) Delete(userID int32, id int32) error {
	if r, ok := m.Reminders[id]; !ok || r.UserID != userID {
		return domain.ErrReminderNotFound
	}
	delete(m.Reminders, id)
	return nil
}

// MockInvestmentRepository is a mock implementation of domain.InvestmentRepository
type MockInvestmentRepository struct {
	Investments map[int32]*domain.Investment
	NextID      int32
}

// NewMockInvestmentRepository creates a new MockInvestmentRepository
func NewMockInvestmentRepository() *MockInvestmentRepository {
	return &MockInvestmentRepository{
		Investments: make(map[int32]*domain.Investment),
		NextID:      1,
	}
}

// Create creates a new investment
func (m *MockInvestmentRepository) Create(inv *domain.Investment) (*domain.Investment, error) {
	inv.ID = m.NextID
	m.NextID++
	if inv.DateInvested.IsZero() {
		inv.DateInvested = time.Now()
	}
	m.Investments[inv.ID] = inv
	return inv, nil
}

// GetByID retrieves an investment owned by the user
func (m *MockInvestmentRepository) GetByID(userID int32, id int32) (*domain.Investment, error) {
	if inv, ok := m.Investments[id]; ok && inv.UserID == userID {
		return inv, nil
	}
	return nil, domain.ErrInvestmentNotFound
}

// GetAllByUser lists a user's investments
func (m *MockInvestmentRepository) GetAllByUser(userID int32) ([]*domain.Investment, error) {
	var result []*domain.Investment
	for _, inv := range m.Investments {
		if inv.UserID == userID {
			result = append(result, inv)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Update replaces a stored investment
func (m *MockInvestmentRepository) Update(inv *domain.Investment) (*domain.Investment, error) {
	existing, ok := m.Investments[inv.ID]
	if !ok || existing.UserID != inv.UserID {
		return nil, domain.ErrInvestmentNotFound
	}
	inv.DateInvested = existing.DateInvested
	m.Investments[inv.ID] = inv
	return inv, nil
}

// Delete removes an investment owned by the user
func (m *MockInvestmentRepository) Delete(userID int32, id int32) error {
	if inv, ok := m.Investments[id]; !ok || inv.UserID != userID {
		return domain.ErrInvestmentNotFound
	}
	delete(m.Investments, id)
	return nil
}

// SumAmount totals a user's invested amounts
func (m *MockInvestmentRepository) SumAmount(userID int32) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, inv := range m.Investments {
		if inv.UserID == userID {
			total = total.Add(inv.Amount)
		}
	}
	return total, nil
}

// MockProfitLossRepository is a mock implementation of domain.ProfitLossRepository.
// Investments is consulted for ownership when summing.
type MockProfitLossRepository struct {
	Entries     map[int32]*domain.ProfitLoss
	Investments *MockInvestmentRepository
	NextID      int32
}

// NewMockProfitLossRepository creates a new MockProfitLossRepository
func NewMockProfitLossRepository(investments *MockInvestmentRepository) *MockProfitLossRepository {
	return &MockProfitLossRepository{
		Entries:     make(map[int32]*domain.ProfitLoss),
		Investments: investments,
		NextID:      1,
	}
}

// Create records a profit or loss entry
func (m *MockProfitLossRepository) Create(entry *domain.ProfitLoss) (*domain.ProfitLoss, error) {
	if _, ok := m.Investments.Investments[entry.InvestmentID]; !ok {
		return nil, domain.ErrInvestmentNotFound
	}
	entry.ID = m.NextID
	m.NextID++
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	m.Entries[entry.ID] = entry
	return entry, nil
}

// GetByInvestment lists the entries of an investment
func (m *MockProfitLossRepository) GetByInvestment(investmentID int32) ([]*domain.ProfitLoss, error) {
	var result []*domain.ProfitLoss
	for _, e := range m.Entries {
		if e.InvestmentID == investmentID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// SumByType totals a user's entries of one type
func (m *MockProfitLossRepository) SumByType(userID int32, plType domain.ProfitLossType) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range m.Entries {
		inv, ok := m.Investments.Investments[e.InvestmentID]
		if !ok || inv.UserID != userID || e.Type != plType {
			continue
		}
		total = total.Add(e.Amount)
	}
	return total, nil
}

// MockConversationRepository is a mock implementation of domain.ConversationRepository
type MockConversationRepository struct {
	Conversations map[int32]*domain.Conversation
	NextID        int32
}

// NewMockConversationRepository creates a new MockConversationRepository
func NewMockConversationRepository() *MockConversationRepository {
	return &MockConversationRepository{
		Conversations: make(map[int32]*domain.Conversation),
		NextID:        1,
	}
}

// Create creates a new conversation
func (m *MockConversationRepository) Create(conv *domain.Conversation) (*domain.Conversation, error) {
	conv.ID = m.NextID
	m.NextID++
	conv.CreatedAt = time.Now()
	m.Conversations[conv.ID] = conv
	return conv, nil
}

// GetByID retrieves a conversation
func (m *MockConversationRepository) GetByID(id int32) (*domain.Conversation, error) {
	if conv, ok := m.Conversations[id]; ok {
		return conv, nil
	}
	return nil, domain.ErrConversationNotFound
}

// List returns conversations ordered by name, optionally filtered by the group flag
func (m *MockConversationRepository) List(isGroup *bool) ([]*domain.Conversation, error) {
	var result []*domain.Conversation
	for _, conv := range m.Conversations {
		if isGroup != nil && conv.IsGroup != *isGroup {
			continue
		}
		result = append(result, conv)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name == result[j].Name {
			return result[i].ID < result[j].ID
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// MockMessageRepository is a mock implementation of domain.MessageRepository
type MockMessageRepository struct {
	Messages      map[int32]*domain.Message
	Conversations *MockConversationRepository
	NextID        int32
}

// NewMockMessageRepository creates a new MockMessageRepository
func NewMockMessageRepository(conversations *MockConversationRepository) *MockMessageRepository {
	return &MockMessageRepository{
		Messages:      make(map[int32]*domain.Message),
		Conversations: conversations,
		NextID:        1,
	}
}

// Create stores a message
func (m *MockMessageRepository) Create(msg *domain.Message) (*domain.Message, error) {
	if _, ok := m.Conversations.Conversations[msg.ConversationID]; !ok {
		return nil, domain.ErrConversationNotFound
	}
	msg.ID = m.NextID
	m.NextID++
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	m.Messages[msg.ID] = msg
	stored := *msg
	return &stored, nil
}

// GetByConversation lists copies of a conversation's messages in chronological order
func (m *MockMessageRepository) GetByConversation(conversationID int32) ([]*domain.Message, error) {
	var result []*domain.Message
	for _, msg := range m.Messages {
		if msg.ConversationID == conversationID {
			stored := *msg
			result = append(result, &stored)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// DeleteByConversation removes every message of a conversation
func (m *MockMessageRepository) DeleteByConversation(conversationID int32) (int64, error) {
	var n int64
	for id, msg := range m.Messages {
		if msg.ConversationID == conversationID {
			delete(m.Messages, id)
			n++
		}
	}
	return n, nil
}

// MockNotificationRepository is a mock implementation of domain.NotificationRepository
type MockNotificationRepository struct {
	Notifications map[int32]*domain.Notification
	NextID        int32
	CreateErr     error
}

// NewMockNotificationRepository creates a new MockNotificationRepository
func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{
		Notifications: make(map[int32]*domain.Notification),
		NextID:        1,
	}
}

// Create stores a notification
func (m *MockNotificationRepository) Create(n *domain.Notification) (*domain.Notification, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	n.ID = m.NextID
	m.NextID++
	n.CreatedAt = time.Now()
	m.Notifications[n.ID] = n
	return n, nil
}

// GetAllByUser lists a user's notifications, newest first
func (m *MockNotificationRepository) GetAllByUser(userID int32) ([]*domain.Notification, error) {
	var result []*domain.Notification
	for _, n := range m.Notifications {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

// MarkRead flags a notification as read
func (m *MockNotificationRepository) MarkRead(userID int32, id int32) (*domain.Notification, error) {
	n, ok := m.Notifications[id]
	if !ok || n.UserID != userID {
		return nil, domain.ErrNotificationNotFound
	}
	n.IsRead = true
	return n, nil
}

// MockReportRepository is a mock implementation of domain.ReportRepository
type MockReportRepository struct {
	Reports map[int32]*domain.Report
	NextID  int32
}

// NewMockReportRepository creates a new MockReportRepository
func NewMockReportRepository() *MockReportRepository {
	return &MockReportRepository{
		Reports: make(map[int32]*domain.Report),
		NextID:  1,
	}
}

// Create stores report metadata
func (m *MockReportRepository) Create(report *domain.Report) (*domain.Report, error) {
	report.ID = m.NextID
	m.NextID++
	report.DateGenerated = time.Now()
	m.Reports[report.ID] = report
	return report, nil
}

// GetAllByUser lists a user's reports, newest first
func (m *MockReportRepository) GetAllByUser(userID int32) ([]*domain.Report, error) {
	var result []*domain.Report
	for _, r := range m.Reports {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

// MockFileRepository is an in-memory implementation of storage.FileRepository
type MockFileRepository struct {
	mu          sync.Mutex
	Objects     map[string][]byte
	ContentType map[string]string
	UploadErr   error
}

// NewMockFileRepository creates a new MockFileRepository
func NewMockFileRepository() *MockFileRepository {
	return &MockFileRepository{
		Objects:     make(map[string][]byte),
		ContentType: make(map[string]string),
	}
}

// Upload stores the data under objectPath
func (m *MockFileRepository) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, data); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[objectPath] = buf.Bytes()
	m.ContentType[objectPath] = contentType
	return objectPath, nil
}

// Delete removes an object
func (m *MockFileRepository) Delete(ctx context.Context, objectPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Objects[objectPath]; !ok {
		return errors.New("object not found")
	}
	delete(m.Objects, objectPath)
	delete(m.ContentType, objectPath)
	return nil
}

// GeneratePresignedURL returns a fake signed URL for the object
func (m *MockFileRepository) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	return "https://files.test/" + objectPath + "?signed=1", nil
}

// MockCompletionClient is a scripted advisor.CompletionClient
type MockCompletionClient struct {
	Reply string
	Err   error
	Calls [][]domain.ChatMessage
}

// Complete records the request and returns the scripted reply
func (m *MockCompletionClient) Complete(ctx context.Context, messages []domain.ChatMessage, maxOutputTokens int) (string, error) {
	m.Calls = append(m.Calls, append([]domain.ChatMessage(nil), messages...))
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

// PublishedEvent is one event captured by MockEventPublisher
type PublishedEvent struct {
	UserID int32
	Event  websocket.Event
}

// MockEventPublisher records published websocket events
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records the event
func (m *MockEventPublisher) Publish(userID int32, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{UserID: userID, Event: event})
}
