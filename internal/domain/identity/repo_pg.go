package identity

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepoPG struct{ pool *pgxpool.Pool }

func NewUserRepoPG(pool *pgxpool.Pool) UserRepository {
	return &userRepoPG{pool: pool}
}

const userCols = `email, full_name, role, license_no, allergies, medications,
	data_usage_consent, hashed_password, created_at`

func (r *userRepoPG) scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.Email, &u.FullName, &u.Role, &u.LicenseNo, &u.Allergies, &u.Medications,
		&u.DataUsageConsent, &u.HashedPassword, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepoPG) Create(ctx context.Context, u *User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (email, full_name, role, license_no, allergies, medications,
			data_usage_consent, hashed_password)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		u.Email, u.FullName, u.Role, u.LicenseNo, u.Allergies, u.Medications,
		u.DataUsageConsent, u.HashedPassword)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrEmailTaken
	}
	return err
}

func (r *userRepoPG) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE email = $1`, email))
}

// UpdateProfile applies a partial update: only the columns named in fields
// are touched. Column names are whitelisted, never taken from user input
// directly.
func (r *userRepoPG) UpdateProfile(ctx context.Context, email string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	allowed := map[string]bool{"allergies": true, "medications": true}

	names := make([]string, 0, len(fields))
	for name := range fields {
		if !allowed[name] {
			return fmt.Errorf("column %q is not updatable", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	set := ""
	args := []interface{}{email}
	for i, name := range names {
		if i > 0 {
			set += ", "
		}
		args = append(args, fields[name])
		set += fmt.Sprintf("%s = $%d", name, len(args))
	}

	tag, err := r.pool.Exec(ctx, `UPDATE users SET `+set+` WHERE email = $1`, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepoPG) ListPatients(ctx context.Context, limit, offset int) ([]*User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userCols+` FROM users
		WHERE role = $1
		ORDER BY created_at
		LIMIT $2 OFFSET $3`,
		RolePatient, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
