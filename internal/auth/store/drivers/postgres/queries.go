package postgres

import (
	"context"
	"database/sql"
	"time"
)

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	db dbtx
}

func newQueries(db dbtx) *queries {
	return &queries{db: db}
}

type userRow struct {
	ID           int64
	Email        string
	PasswordHash string
	TOTPSecret   sql.NullString
	TOTPEnabled  bool
	LastLogin    sql.NullTime
	CreatedAt    time.Time
}

const userColumns = `id, email, password_hash, totp_secret, totp_enabled, last_login, created_at`

func scanUser(row *sql.Row) (userRow, error) {
	var u userRow
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.TOTPSecret,
		&u.TOTPEnabled,
		&u.LastLogin,
		&u.CreatedAt,
	)
	return u, err
}

const createUser = `INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id`

func (q *queries) CreateUser(ctx context.Context, email, passwordHash string) (int64, error) {
	var id int64
	err := q.db.QueryRowContext(ctx, createUser, email, passwordHash).Scan(&id)
	return id, err
}

const getUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

func (q *queries) GetUserByID(ctx context.Context, id int64) (userRow, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByID, id))
}

const getUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

func (q *queries) GetUserByEmail(ctx context.Context, email string) (userRow, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByEmail, email))
}

const updateLastLogin = `UPDATE users SET last_login = $1 WHERE id = $2`

func (q *queries) UpdateLastLogin(ctx context.Context, id int64, at time.Time) (int64, error) {
	return q.exec(ctx, updateLastLogin, at.UTC(), id)
}

const setTOTPSecret = `UPDATE users SET totp_secret = $1 WHERE id = $2`

func (q *queries) SetTOTPSecret(ctx context.Context, id int64, secret string) (int64, error) {
	return q.exec(ctx, setTOTPSecret, secret, id)
}

const enableTOTP = `UPDATE users SET totp_enabled = TRUE WHERE id = $1 AND totp_secret IS NOT NULL`

func (q *queries) EnableTOTP(ctx context.Context, id int64) (int64, error) {
	return q.exec(ctx, enableTOTP, id)
}

const disableTOTP = `UPDATE users SET totp_enabled = FALSE, totp_secret = NULL WHERE id = $1`

func (q *queries) DisableTOTP(ctx context.Context, id int64) (int64, error) {
	return q.exec(ctx, disableTOTP, id)
}

const deleteUser = `DELETE FROM users WHERE id = $1`

func (q *queries) DeleteUser(ctx context.Context, id int64) (int64, error) {
	return q.exec(ctx, deleteUser, id)
}

const countUsers = `SELECT COUNT(*) FROM users`

func (q *queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countUsers).Scan(&n)
	return n, err
}

func (q *queries) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
