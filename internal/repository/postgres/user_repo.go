package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennyhq/penny/penny-backend/internal/domain"
)

const userColumns = `id, email, username, name, password_hash, age, college, year, course, expected_income, created_at, updated_at`

// UserRepository implements domain.UserRepository and domain.ProfileRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create creates a new user together with its profile
func (r *UserRepository) Create(user *domain.User, fullName string) (*domain.User, error) {
	ctx := context.Background()

	expectedIncome, err := decimalPtrToPgNumeric(user.ExpectedIncome)
	if err != nil {
		return nil, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		INSERT INTO users (email, username, name, password_hash, age, college, year, course, expected_income)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+userColumns,
		user.Email, user.Username, user.Name, user.PasswordHash,
		int32PtrToPgInt4(user.Age), stringPtrToPgText(user.College), stringPtrToPgText(user.Year),
		stringPtrToPgText(user.Course), expectedIncome,
	)
	created, err := scanUser(row)
	if err != nil {
		if isPgError(err, uniqueViolation) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO profiles (user_id, full_name) VALUES ($1, $2)`, created.ID, fullName); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id int32) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(), `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByEmail retrieves a user by email (case-insensitive)
func (r *UserRepository) GetByEmail(email string) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(), `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
	user, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListWithProfiles returns every user with its profile, ordered by ID
func (r *UserRepository) ListWithProfiles() ([]*domain.UserWithProfile, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.email, u.username, u.name, u.password_hash, u.age, u.college, u.year, u.course,
		       u.expected_income, u.created_at, u.updated_at,
		       COALESCE(p.full_name, ''), p.avatar_key, p.last_active
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		ORDER BY u.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.UserWithProfile
	for rows.Next() {
		var (
			u              domain.User
			age            pgtype.Int4
			college        pgtype.Text
			year           pgtype.Text
			course         pgtype.Text
			expectedIncome pgtype.Numeric
			fullName       string
			avatarKey      pgtype.Text
			lastActive     pgtype.Timestamptz
		)
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.Name, &u.PasswordHash, &age, &college, &year, &course,
			&expectedIncome, &u.CreatedAt, &u.UpdatedAt, &fullName, &avatarKey, &lastActive); err != nil {
			return nil, err
		}
		u.Age = pgInt4ToInt32Ptr(age)
		u.College = pgTextToStringPtr(college)
		u.Year = pgTextToStringPtr(year)
		u.Course = pgTextToStringPtr(course)
		u.ExpectedIncome = pgNumericToDecimalPtr(expectedIncome)

		result = append(result, &domain.UserWithProfile{
			User: u,
			Profile: domain.Profile{
				UserID:     u.ID,
				FullName:   fullName,
				AvatarKey:  pgTextToStringPtr(avatarKey),
				LastActive: pgTimestamptzToTimePtr(lastActive),
			},
		})
	}
	return result, rows.Err()
}

// UpdatePasswordHash replaces a user's stored password hash
func (r *UserRepository) UpdatePasswordHash(id int32, hash string) error {
	tag, err := r.pool.Exec(context.Background(),
		`UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`, id, hash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// GetByUserID retrieves a user's profile
func (r *UserRepository) GetByUserID(userID int32) (*domain.Profile, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT user_id, full_name, avatar_key, last_active FROM profiles WHERE user_id = $1`, userID)
	return scanProfile(row)
}

// UpdateFullName changes the display name of a profile
func (r *UserRepository) UpdateFullName(userID int32, fullName string) (*domain.Profile, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE profiles SET full_name = $2 WHERE user_id = $1
		RETURNING user_id, full_name, avatar_key, last_active`, userID, fullName)
	return scanProfile(row)
}

// UpdateAvatar stores the object key of a profile's avatar
func (r *UserRepository) UpdateAvatar(userID int32, avatarKey string) (*domain.Profile, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE profiles SET avatar_key = $2 WHERE user_id = $1
		RETURNING user_id, full_name, avatar_key, last_active`, userID, avatarKey)
	return scanProfile(row)
}

// TouchLastActive records activity for a user
func (r *UserRepository) TouchLastActive(userID int32, at time.Time) error {
	_, err := r.pool.Exec(context.Background(), `UPDATE profiles SET last_active = $2 WHERE user_id = $1`, userID, at)
	return err
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u              domain.User
		age            pgtype.Int4
		college        pgtype.Text
		year           pgtype.Text
		course         pgtype.Text
		expectedIncome pgtype.Numeric
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.Name, &u.PasswordHash, &age, &college, &year, &course,
		&expectedIncome, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Age = pgInt4ToInt32Ptr(age)
	u.College = pgTextToStringPtr(college)
	u.Year = pgTextToStringPtr(year)
	u.Course = pgTextToStringPtr(course)
	u.ExpectedIncome = pgNumericToDecimalPtr(expectedIncome)
	return &u, nil
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var (
		p          domain.Profile
		avatarKey  pgtype.Text
		lastActive pgtype.Timestamptz
	)
	if err := row.Scan(&p.UserID, &p.FullName, &avatarKey, &lastActive); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	p.AvatarKey = pgTextToStringPtr(avatarKey)
	p.LastActive = pgTimestamptzToTimePtr(lastActive)
	return &p, nil
}
