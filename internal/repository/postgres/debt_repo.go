package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennyhq/penny/penny-backend/internal/domain"
)

const debtColumns = `id, user_id, name, principal, interest_rate, term_months, remaining_balance, debt_type, due_date, date_added`

// DebtRepository implements domain.DebtRepository using PostgreSQL
type DebtRepository struct {
	pool *pgxpool.Pool
}

// NewDebtRepository creates a new DebtRepository
func NewDebtRepository(pool *pgxpool.Pool) *DebtRepository {
	return &DebtRepository{pool: pool}
}

// Create creates a new debt
func (r *DebtRepository) Create(debt *domain.Debt) (*domain.Debt, error) {
	return insertDebt(context.Background(), r.pool, debt)
}

// GetByID retrieves a debt owned by userID
func (r *DebtRepository) GetByID(userID int32, id int32) (*domain.Debt, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+debtColumns+` FROM debts WHERE id = $1 AND user_id = $2`, id, userID)
	debt, err := scanDebt(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDebtNotFound
		}
		return nil, err
	}
	return debt, nil
}

// GetAllByUser retrieves every debt of a user, oldest first
func (r *DebtRepository) GetAllByUser(userID int32) ([]*domain.Debt, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+debtColumns+` FROM debts WHERE user_id = $1 ORDER BY date_added, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var debts []*domain.Debt
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		debts = append(debts, debt)
	}
	return debts, rows.Err()
}

// Update updates an existing debt
func (r *DebtRepository) Update(debt *domain.Debt) (*domain.Debt, error) {
	principal, err := decimalToPgNumeric(debt.Principal)
	if err != nil {
		return nil, err
	}
	rate, err := decimalToPgNumeric(debt.InterestRate)
	if err != nil {
		return nil, err
	}
	remaining, err := decimalToPgNumeric(debt.RemainingBalance)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(context.Background(), `
		UPDATE debts
		SET name = $3, principal = $4, interest_rate = $5, term_months = $6,
		    remaining_balance = $7, debt_type = $8, due_date = $9
		WHERE id = $1 AND user_id = $2
		RETURNING `+debtColumns,
		debt.ID, debt.UserID, debt.Name, principal, rate, debt.TermMonths,
		remaining, debt.DebtType, timePtrToPgDate(debt.DueDate),
	)
	updated, err := scanDebt(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDebtNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a debt owned by userID
func (r *DebtRepository) Delete(userID int32, id int32) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM debts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDebtNotFound
	}
	return nil
}

// ReplaceAll deletes every debt of the user and inserts the given ones in a
// single transaction. Nothing changes when any insert fails.
func (r *DebtRepository) ReplaceAll(userID int32, debts []*domain.Debt) ([]*domain.Debt, error) {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM debts WHERE user_id = $1`, userID); err != nil {
		return nil, err
	}

	created := make([]*domain.Debt, 0, len(debts))
	for _, debt := range debts {
		debt.UserID = userID
		d, err := insertDebt(ctx, tx, debt)
		if err != nil {
			return nil, err
		}
		created = append(created, d)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func insertDebt(ctx context.Context, q DBTX, debt *domain.Debt) (*domain.Debt, error) {
	principal, err := decimalToPgNumeric(debt.Principal)
	if err != nil {
		return nil, err
	}
	rate, err := decimalToPgNumeric(debt.InterestRate)
	if err != nil {
		return nil, err
	}
	remaining, err := decimalToPgNumeric(debt.RemainingBalance)
	if err != nil {
		return nil, err
	}

	dateAdded := pgtype.Date{}
	if !debt.DateAdded.IsZero() {
		dateAdded = pgtype.Date{Time: debt.DateAdded, Valid: true}
	}

	row := q.QueryRow(ctx, `
		INSERT INTO debts (user_id, name, principal, interest_rate, term_months, remaining_balance, debt_type, due_date, date_added)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, CURRENT_DATE))
		RETURNING `+debtColumns,
		debt.UserID, debt.Name, principal, rate, debt.TermMonths, remaining,
		debt.DebtType, timePtrToPgDate(debt.DueDate), dateAdded,
	)
	return scanDebt(row)
}

func scanDebt(row pgx.Row) (*domain.Debt, error) {
	var (
		d         domain.Debt
		principal pgtype.Numeric
		rate      pgtype.Numeric
		remaining pgtype.Numeric
		dueDate   pgtype.Date
		dateAdded pgtype.Date
	)
	if err := row.Scan(&d.ID, &d.UserID, &d.Name, &principal, &rate, &d.TermMonths, &remaining,
		&d.DebtType, &dueDate, &dateAdded); err != nil {
		return nil, err
	}
	d.Principal = pgNumericToDecimal(principal)
	d.InterestRate = pgNumericToDecimal(rate)
	d.RemainingBalance = pgNumericToDecimal(remaining)
	d.DueDate = pgDateToTimePtr(dueDate)
	d.DateAdded = dateAdded.Time
	return &d, nil
}
