package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennyhq/penny/penny-backend/internal/domain"
)

const billColumns = `id, user_id, name, amount, due_date, category, notes, is_recurring, is_paid, created_at, updated_at`

// BillRepository implements domain.BillRepository using PostgreSQL
type BillRepository struct {
	pool *pgxpool.Pool
}

// NewBillRepository creates a new BillRepository
func NewBillRepository(pool *pgxpool.Pool) *BillRepository {
	return &BillRepository{pool: pool}
}

// Create creates a new bill
func (r *BillRepository) Create(bill *domain.Bill) (*domain.Bill, error) {
	amount, err := decimalToPgNumeric(bill.Amount)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO bills (user_id, name, amount, due_date, category, notes, is_recurring, is_paid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+billColumns,
		bill.UserID, bill.Name, amount, pgtype.Date{Time: bill.DueDate, Valid: true},
		bill.Category, bill.Notes, bill.IsRecurring, bill.IsPaid,
	)
	return scanBill(row)
}

// GetByID retrieves a bill owned by userID
func (r *BillRepository) GetByID(userID int32, id int32) (*domain.Bill, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+billColumns+` FROM bills WHERE id = $1 AND user_id = $2`, id, userID)
	bill, err := scanBill(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBillNotFound
		}
		return nil, err
	}
	return bill, nil
}

// GetAllByUser retrieves every bill of a user ordered by due date
func (r *BillRepository) GetAllByUser(userID int32) ([]*domain.Bill, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+billColumns+` FROM bills WHERE user_id = $1 ORDER BY due_date, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []*domain.Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, rows.Err()
}

// Update updates an existing bill
func (r *BillRepository) Update(bill *domain.Bill) (*domain.Bill, error) {
	amount, err := decimalToPgNumeric(bill.Amount)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(context.Background(), `
		UPDATE bills
		SET name = $3, amount = $4, due_date = $5, category = $6, notes = $7,
		    is_recurring = $8, is_paid = $9, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING `+billColumns,
		bill.ID, bill.UserID, bill.Name, amount, pgtype.Date{Time: bill.DueDate, Valid: true},
		bill.Category, bill.Notes, bill.IsRecurring, bill.IsPaid,
	)
	updated, err := scanBill(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBillNotFound
		}
		return nil, err
	}
	return updated, nil
}

// TogglePaid flips the paid flag of a bill
func (r *BillRepository) TogglePaid(userID int32, id int32) (*domain.Bill, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE bills SET is_paid = NOT is_paid, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING `+billColumns, id, userID)
	bill, err := scanBill(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBillNotFound
		}
		return nil, err
	}
	return bill, nil
}

// Delete removes a bill and, through the foreign key, its reminders
func (r *BillRepository) Delete(userID int32, id int32) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM bills WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBillNotFound
	}
	return nil
}

func scanBill(row pgx.Row) (*domain.Bill, error) {
	var (
		b       domain.Bill
		amount  pgtype.Numeric
		dueDate pgtype.Date
	)
	if err := row.Scan(&b.ID, &b.UserID, &b.Name, &amount, &dueDate, &b.Category, &b.Notes,
		&b.IsRecurring, &b.IsPaid, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.Amount = pgNumericToDecimal(amount)
	b.DueDate = dueDate.Time
	return &b, nil
}
