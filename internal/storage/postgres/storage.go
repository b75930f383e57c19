// Package postgres implements the storage interface against PostgreSQL
// using the pgx driver, with schema managed by embedded goose migrations.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mcoot/clubhouse-go/internal/model"
	"github.com/mcoot/clubhouse-go/internal/storage"
	"github.com/mcoot/clubhouse-go/internal/storage/postgres/migrations"
)

// PostgreSQL error code for unique constraint violations
const uniqueViolationCode = "23505"

// Storage is a PostgreSQL-backed implementation of the storage interface
type Storage struct {
	db *sql.DB
}

// New opens a connection pool for the given DSN and runs migrations
func New(ctx context.Context, dsn string) (*Storage, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	s := &Storage{db: db}
	if err := s.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return s, nil
}

// NewWithDB creates a Storage with an existing connection (for testing).
// No migrations are run.
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// RunMigrations applies the embedded goose migrations
func (s *Storage) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, s.db, ".")
}

// Close closes the connection pool
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (first_name, last_name, username, password_hash, membership_status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		user.FirstName, user.LastName, user.Username,
		user.PasswordHash, user.Membership, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrUsernameExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	query := `SELECT id, first_name, last_name, username, password_hash, membership_status, created_at
	          FROM users
	          WHERE id = $1`

	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT id, first_name, last_name, username, password_hash, membership_status, created_at
	          FROM users
	          WHERE username = $1`

	return s.scanUser(s.db.QueryRowContext(ctx, query, username))
}

func (s *Storage) UpdateMembership(ctx context.Context, id model.UserID, status model.MembershipStatus) error {
	query := `UPDATE users SET membership_status = $2 WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (s *Storage) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName,
		&user.Username, &user.PasswordHash, &user.Membership, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// Message operations

func (s *Storage) CreateMessage(ctx context.Context, msg *model.Message) error {
	query := `INSERT INTO messages (title, text, author_id, created_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		msg.Title, msg.Text, msg.AuthorID, msg.CreatedAt,
	).Scan(&msg.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *Storage) ListMessagesWithAuthors(ctx context.Context) ([]*model.MessageWithAuthor, error) {
	query := `SELECT m.id, m.title, m.text, m.author_id, m.created_at,
	                 u.first_name, u.last_name
	          FROM messages m
	          JOIN users u ON u.id = m.author_id
	          ORDER BY m.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*model.MessageWithAuthor
	for rows.Next() {
		entry := &model.MessageWithAuthor{}
		var firstName, lastName string
		err := rows.Scan(&entry.ID, &entry.Title, &entry.Text,
			&entry.AuthorID, &entry.CreatedAt, &firstName, &lastName)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		entry.AuthorName = firstName + " " + lastName
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
