package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/shopspring/decimal"
)

const investmentColumns = `id, user_id, amount, type, description, status, date_invested`

// InvestmentRepository implements domain.InvestmentRepository using PostgreSQL
type InvestmentRepository struct {
	pool *pgxpool.Pool
}

// NewInvestmentRepository creates a new InvestmentRepository
func NewInvestmentRepository(pool *pgxpool.Pool) *InvestmentRepository {
	return &InvestmentRepository{pool: pool}
}

// Create creates a new investment
func (r *InvestmentRepository) Create(inv *domain.Investment) (*domain.Investment, error) {
	amount, err := decimalToPgNumeric(inv.Amount)
	if err != nil {
		return nil, err
	}

	dateInvested := pgtype.Timestamptz{}
	if !inv.DateInvested.IsZero() {
		dateInvested = pgtype.Timestamptz{Time: inv.DateInvested, Valid: true}
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO investments (user_id, amount, type, description, status, date_invested)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()))
		RETURNING `+investmentColumns,
		inv.UserID, amount, string(inv.Type), inv.Description, string(inv.Status), dateInvested,
	)
	return scanInvestment(row)
}

// GetByID retrieves an investment owned by userID
func (r *InvestmentRepository) GetByID(userID int32, id int32) (*domain.Investment, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+investmentColumns+` FROM investments WHERE id = $1 AND user_id = $2`, id, userID)
	inv, err := scanInvestment(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrInvestmentNotFound
		}
		return nil, err
	}
	return inv, nil
}

// GetAllByUser retrieves every investment of a user, newest first
func (r *InvestmentRepository) GetAllByUser(userID int32) ([]*domain.Investment, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+investmentColumns+` FROM investments WHERE user_id = $1 ORDER BY date_invested DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var investments []*domain.Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		investments = append(investments, inv)
	}
	return investments, rows.Err()
}

// Update updates an existing investment
func (r *InvestmentRepository) Update(inv *domain.Investment) (*domain.Investment, error) {
	amount, err := decimalToPgNumeric(inv.Amount)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(context.Background(), `
		UPDATE investments SET amount = $3, type = $4, description = $5, status = $6
		WHERE id = $1 AND user_id = $2
		RETURNING `+investmentColumns,
		inv.ID, inv.UserID, amount, string(inv.Type), inv.Description, string(inv.Status),
	)
	updated, err := scanInvestment(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrInvestmentNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes an investment and its profit/loss entries
func (r *InvestmentRepository) Delete(userID int32, id int32) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM investments WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvestmentNotFound
	}
	return nil
}

// SumAmount totals the invested amount of a user
func (r *InvestmentRepository) SumAmount(userID int32) (decimal.Decimal, error) {
	var total pgtype.Numeric
	err := r.pool.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(amount), 0) FROM investments WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return pgNumericToDecimal(total), nil
}

func scanInvestment(row pgx.Row) (*domain.Investment, error) {
	var (
		inv    domain.Investment
		amount pgtype.Numeric
		typ    string
		status string
	)
	if err := row.Scan(&inv.ID, &inv.UserID, &amount, &typ, &inv.Description, &status, &inv.DateInvested); err != nil {
		return nil, err
	}
	inv.Amount = pgNumericToDecimal(amount)
	inv.Type = domain.InvestmentType(typ)
	inv.Status = domain.InvestmentStatus(status)
	return &inv, nil
}

// ProfitLossRepository implements domain.ProfitLossRepository using PostgreSQL
type ProfitLossRepository struct {
	pool *pgxpool.Pool
}

// NewProfitLossRepository creates a new ProfitLossRepository
func NewProfitLossRepository(pool *pgxpool.Pool) *ProfitLossRepository {
	return &ProfitLossRepository{pool: pool}
}

// Create records a profit or loss for an investment
func (r *ProfitLossRepository) Create(entry *domain.ProfitLoss) (*domain.ProfitLoss, error) {
	amount, err := decimalToPgNumeric(entry.Amount)
	if err != nil {
		return nil, err
	}

	date := pgtype.Timestamptz{}
	if !entry.Date.IsZero() {
		date = pgtype.Timestamptz{Time: entry.Date, Valid: true}
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO profit_losses (investment_id, date, amount, type)
		VALUES ($1, COALESCE($2, NOW()), $3, $4)
		RETURNING id, investment_id, date, amount, type`,
		entry.InvestmentID, date, amount, string(entry.Type),
	)
	created, err := scanProfitLoss(row)
	if err != nil {
		if isPgError(err, foreignKeyViolation) {
			return nil, domain.ErrInvestmentNotFound
		}
		return nil, err
	}
	return created, nil
}

// GetByInvestment lists the entries of one investment, newest first
func (r *ProfitLossRepository) GetByInvestment(investmentID int32) ([]*domain.ProfitLoss, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, investment_id, date, amount, type FROM profit_losses
		WHERE investment_id = $1 ORDER BY date DESC, id DESC`, investmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.ProfitLoss
	for rows.Next() {
		entry, err := scanProfitLoss(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// SumByType totals the entries of one type across a user's investments
func (r *ProfitLossRepository) SumByType(userID int32, plType domain.ProfitLossType) (decimal.Decimal, error) {
	var total pgtype.Numeric
	err := r.pool.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(pl.amount), 0)
		FROM profit_losses pl
		JOIN investments i ON i.id = pl.investment_id
		WHERE i.user_id = $1 AND pl.type = $2`, userID, string(plType)).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return pgNumericToDecimal(total), nil
}

func scanProfitLoss(row pgx.Row) (*domain.ProfitLoss, error) {
	var (
		pl     domain.ProfitLoss
		amount pgtype.Numeric
		typ    string
	)
	if err := row.Scan(&pl.ID, &pl.InvestmentID, &pl.Date, &amount, &typ); err != nil {
		return nil, err
	}
	pl.Amount = pgNumericToDecimal(amount)
	pl.Type = domain.ProfitLossType(typ)
	return &pl, nil
}
