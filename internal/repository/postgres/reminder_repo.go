package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennyhq/penny/penny-backend/internal/domain"
)

const reminderColumns = `id, user_id, bill_id, email, reminder_at, message, send_email, created_at`

// ReminderRepository implements domain.ReminderRepository using PostgreSQL
type ReminderRepository struct {
	pool *pgxpool.Pool
}

// NewReminderRepository creates a new ReminderRepository
func NewReminderRepository(pool *pgxpool.Pool) *ReminderRepository {
	return &ReminderRepository{pool: pool}
}

// Create creates a new reminder
func (r *ReminderRepository) Create(reminder *domain.Reminder) (*domain.Reminder, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO reminders (user_id, bill_id, email, reminder_at, message, send_email)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+reminderColumns,
		reminder.UserID, reminder.BillID, reminder.Email, reminder.ReminderAt, reminder.Message, reminder.SendEmail,
	)
	created, err := scanReminder(row)
	if err != nil {
		if isPgError(err, foreignKeyViolation) {
			return nil, domain.ErrReminderBillInvalid
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a reminder owned by userID
func (r *ReminderRepository) GetByID(userID int32, id int32) (*domain.Reminder, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+reminderColumns+` FROM reminders WHERE id = $1 AND user_id = $2`, id, userID)
	reminder, err := scanReminder(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrReminderNotFound
		}
		return nil, err
	}
	return reminder, nil
}

// GetAllByUser retrieves the reminders of a user, optionally restricted to one bill
func (r *ReminderRepository) GetAllByUser(userID int32, billID *int32) ([]*domain.Reminder, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT `+reminderColumns+` FROM reminders
		WHERE user_id = $1 AND ($2::INTEGER IS NULL OR bill_id = $2)
		ORDER BY reminder_at, id`, userID, int32PtrToPgInt4(billID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*domain.Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}

// Update updates an existing reminder
func (r *ReminderRepository) Update(reminder *domain.Reminder) (*domain.Reminder, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE reminders
		SET bill_id = $3, email = $4, reminder_at = $5, message = $6, send_email = $7
		WHERE id = $1 AND user_id = $2
		RETURNING `+reminderColumns,
		reminder.ID, reminder.UserID, reminder.BillID, reminder.Email, reminder.ReminderAt,
		reminder.Message, reminder.SendEmail,
	)
	updated, err := scanReminder(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrReminderNotFound
		}
		if isPgError(err, foreignKeyViolation) {
			return nil, domain.ErrReminderBillInvalid
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a reminder owned by userID
func (r *ReminderRepository) Delete(userID int32, id int32) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM reminders WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}

func scanReminder(row pgx.Row) (*domain.Reminder, error) {
	var rem domain.Reminder
	if err := row.Scan(&rem.ID, &rem.UserID, &rem.BillID, &rem.Email, &rem.ReminderAt,
		&rem.Message, &rem.SendEmail, &rem.CreatedAt); err != nil {
		return nil, err
	}
	return &rem, nil
}
