//go:build integration

package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	pgOnce sync.Once
	pgPool *pgxpool.Pool
	pgErr  error
)

// startPostgres starts one shared PostgreSQL container per test process and
// applies the schema to it.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pgOnce.Do(func() {
		ctx := context.Background()

		req := testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "penny",
				"POSTGRES_PASSWORD": "penny",
				"POSTGRES_DB":       "penny",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(60 * time.Second),
		}

		container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		if err != nil {
			pgErr = fmt.Errorf("start postgres container: %w", err)
			return
		}

		host, err := container.Host(ctx)
		if err != nil {
			pgErr = fmt.Errorf("get postgres host: %w", err)
			return
		}
		port, err := container.MappedPort(ctx, "5432/tcp")
		if err != nil {
			pgErr = fmt.Errorf("get postgres port: %w", err)
			return
		}

		dsn := fmt.Sprintf("postgres://penny:penny@%s:%s/penny?sslmode=disable", host, port.Port())
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			pgErr = err
			return
		}
		if err := Migrate(ctx, pool); err != nil {
			pgErr = err
			return
		}
		pgPool = pool
	})

	if pgErr != nil {
		t.Fatalf("postgres container failed: %v", pgErr)
	}
	return pgPool
}

func createTestUser(t *testing.T, pool *pgxpool.Pool, email string) *domain.User {
	t.Helper()
	user, err := NewUserRepository(pool).Create(&domain.User{
		Email:        email,
		Username:     email,
		PasswordHash: "hash",
	}, "Test User")
	require.NoError(t, err)
	return user
}

func TestMigrate_Idempotent(t *testing.T) {
	pool := startPostgres(t)
	require.NoError(t, Migrate(context.Background(), pool))
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	pool := startPostgres(t)
	repo := NewUserRepository(pool)

	user := createTestUser(t, pool, "alice@example.com")

	found, err := repo.GetByEmail("ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	profile, err := repo.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test User", profile.FullName)

	_, err = repo.Create(&domain.User{Email: "alice@example.com", Username: "dup", PasswordHash: "x"}, "")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	_, err = repo.GetByID(999999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestDebtRepository_OwnershipAndReplace(t *testing.T) {
	pool := startPostgres(t)
	repo := NewDebtRepository(pool)
	owner := createTestUser(t, pool, "debt-owner@example.com")
	other := createTestUser(t, pool, "debt-other@example.com")

	debt, err := repo.Create(&domain.Debt{
		UserID:           owner.ID,
		Name:             "Car loan",
		Principal:        decimal.NewFromInt(10000),
		InterestRate:     decimal.RequireFromString("12.5"),
		TermMonths:       12,
		RemainingBalance: decimal.NewFromInt(10000),
		DebtType:         domain.DefaultDebtType,
	})
	require.NoError(t, err)
	assert.True(t, debt.InterestRate.Equal(decimal.RequireFromString("12.5")))
	assert.False(t, debt.DateAdded.IsZero())

	_, err = repo.GetByID(other.ID, debt.ID)
	assert.ErrorIs(t, err, domain.ErrDebtNotFound)
	assert.ErrorIs(t, repo.Delete(other.ID, debt.ID), domain.ErrDebtNotFound)

	replaced, err := repo.ReplaceAll(owner.ID, []*domain.Debt{
		{Name: "A", Principal: decimal.NewFromInt(100), InterestRate: decimal.Zero, TermMonths: 1, RemainingBalance: decimal.NewFromInt(100), DebtType: domain.DefaultDebtType},
		{Name: "B", Principal: decimal.NewFromInt(200), InterestRate: decimal.Zero, TermMonths: 2, RemainingBalance: decimal.NewFromInt(200), DebtType: domain.DefaultDebtType},
	})
	require.NoError(t, err)
	assert.Len(t, replaced, 2)

	all, err := repo.GetAllByUser(owner.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBillAndReminderRepository(t *testing.T) {
	pool := startPostgres(t)
	bills := NewBillRepository(pool)
	reminders := NewReminderRepository(pool)
	user := createTestUser(t, pool, "bills@example.com")

	bill, err := bills.Create(&domain.Bill{
		UserID:   user.ID,
		Name:     "Rent",
		Amount:   decimal.NewFromInt(1200),
		DueDate:  time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		Category: "Housing",
	})
	require.NoError(t, err)

	toggled, err := bills.TogglePaid(user.ID, bill.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsPaid)

	rem, err := reminders.Create(&domain.Reminder{
		UserID:     user.ID,
		BillID:     bill.ID,
		Email:      "bills@example.com",
		ReminderAt: time.Now().Add(24 * time.Hour),
		SendEmail:  true,
	})
	require.NoError(t, err)

	filtered, err := reminders.GetAllByUser(user.ID, &bill.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, rem.ID, filtered[0].ID)

	_, err = reminders.Create(&domain.Reminder{UserID: user.ID, BillID: 999999, Email: "x@example.com", ReminderAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrReminderBillInvalid)

	require.NoError(t, bills.Delete(user.ID, bill.ID))
	_, err = reminders.GetByID(user.ID, rem.ID)
	assert.ErrorIs(t, err, domain.ErrReminderNotFound)
}

func TestInvestmentRepository_Sums(t *testing.T) {
	pool := startPostgres(t)
	investments := NewInvestmentRepository(pool)
	results := NewProfitLossRepository(pool)
	user := createTestUser(t, pool, "investor@example.com")

	inv, err := investments.Create(&domain.Investment{
		UserID: user.ID,
		Amount: decimal.NewFromInt(5000),
		Type:   domain.InvestmentTypeStock,
		Status: domain.InvestmentStatusActive,
	})
	require.NoError(t, err)

	_, err = results.Create(&domain.ProfitLoss{InvestmentID: inv.ID, Amount: decimal.NewFromInt(300), Type: domain.ProfitLossTypeProfit})
	require.NoError(t, err)
	_, err = results.Create(&domain.ProfitLoss{InvestmentID: inv.ID, Amount: decimal.NewFromInt(100), Type: domain.ProfitLossTypeLoss})
	require.NoError(t, err)

	total, err := investments.SumAmount(user.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(5000)))

	profit, err := results.SumByType(user.ID, domain.ProfitLossTypeProfit)
	require.NoError(t, err)
	assert.True(t, profit.Equal(decimal.NewFromInt(300)))
}

func TestMessageRepository_DeleteByConversation(t *testing.T) {
	pool := startPostgres(t)
	convs := NewConversationRepository(pool)
	msgs := NewMessageRepository(pool)

	conv, err := convs.Create(&domain.Conversation{Name: "Budget club", IsGroup: true})
	require.NoError(t, err)

	for _, content := range []string{"hi", "hello"} {
		_, err := msgs.Create(&domain.Message{ConversationID: conv.ID, Sender: "bob", Content: content, MessageType: domain.MessageTypeText})
		require.NoError(t, err)
	}

	listed, err := msgs.GetByConversation(conv.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "hi", listed[0].Content)

	deleted, err := msgs.DeleteByConversation(conv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	groups := true
	filtered, err := convs.List(&groups)
	require.NoError(t, err)
	assert.NotEmpty(t, filtered)
}
