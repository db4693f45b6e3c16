package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/interviewdesk/internal/constants"
	"github.com/julianstephens/interviewdesk/internal/logger"
	"github.com/julianstephens/interviewdesk/internal/migration"
	"github.com/julianstephens/interviewdesk/internal/models"
	"github.com/julianstephens/interviewdesk/internal/storage"
	"github.com/julianstephens/interviewdesk/migrations"
)

type Store struct {
	connStr string
	db      *sql.DB
}

var _ storage.Provider = (*Store)(nil)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

// IsConnString reports whether s looks like a PostgreSQL URL rather than a
// sqlite file path.
func IsConnString(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

func New(connStr string) *Store {
	s := &Store{
		connStr: connStr,
	}
	s.ensureSearchPath()
	return s
}

// NewWithDB wraps an already open connection. Migrations are not run.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ensureSearchPath() {
	if IsConnString(s.connStr) {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
		return
	}
	if !hasParam(s.connStr, "search_path") {
		s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
	}
}

// hasParam reports whether a key=value DSN (or the query of a URL) contains
// key, case-insensitively.
func hasParam(connStr, key string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for k := range u.Query() {
			if strings.EqualFold(k, key) {
				return true
			}
		}
	}
	for _, part := range strings.Fields(connStr) {
		k, _, ok := strings.Cut(part, "=")
		if ok && strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

// ValidateConnString checks that connStr is a PostgreSQL URL or DSN that does
// not embed a password. Passwords belong in ~/.pgpass or PGPASSWORD.
func ValidateConnString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}
	if _, err := pq.NewConnector(connStr); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}

	if IsConnString(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
		}
		if _, set := u.User.Password(); set {
			return ErrEmbeddedCredentials
		}
		if u.Host == "" && u.User == nil && (u.Path == "" || u.Path == "/") {
			return fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return nil
	}

	for _, pair := range strings.Fields(connStr) {
		k, _, ok := strings.Cut(pair, "=")
		if ok && strings.EqualFold(strings.TrimSpace(k), "password") {
			return ErrEmbeddedCredentials
		}
	}
	return nil
}

func (s *Store) Init() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasParam(s.connStr, "sslmode") {
			return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS, migration.Postgres)
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Info(msg, "store", "postgres")
	})
	return err
}

// Describe returns a non-sensitive identifier instead of the connection string.
func (s *Store) Describe() string {
	return "postgresql"
}

func (s *Store) ListByRange(ctx context.Context, start, end string) ([]models.Interview, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+storage.Columns+" FROM interviews WHERE date >= $1 AND date <= $2 ORDER BY date, time, id",
		start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	return storage.ScanInterviews(rows)
}

func (s *Store) Get(ctx context.Context, id int64) (models.Interview, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+storage.Columns+" FROM interviews WHERE id = $1", id)
	r, err := storage.ScanInterview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Interview{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Interview{}, fmt.Errorf("failed to get interview %d: %w", id, err)
	}
	return r, nil
}

func (s *Store) Create(ctx context.Context, r models.Interview) (models.Interview, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
INSERT INTO interviews (interviewee, date, time, duration, role, department, interviewer,
                        additional_notes, email, phone)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`,
		r.Interviewee, r.Date, r.Time, r.Duration, r.Role, r.Department, r.Interviewer,
		r.AdditionalNotes, r.Email, r.Phone).Scan(&id)
	if err != nil {
		return models.Interview{}, fmt.Errorf("failed to insert interview: %w", err)
	}
	r.ID = models.NewID(id)
	return r, nil
}

func (s *Store) Update(ctx context.Context, r models.Interview) (models.Interview, error) {
	if r.ID == nil {
		return models.Interview{}, storage.ErrNotFound
	}
	res, err := s.db.ExecContext(ctx, `
UPDATE interviews
SET interviewee = $1, date = $2, time = $3, duration = $4, role = $5, department = $6,
    interviewer = $7, additional_notes = $8, email = $9, phone = $10, updated_at = now()
WHERE id = $11`,
		r.Interviewee, r.Date, r.Time, r.Duration, r.Role, r.Department, r.Interviewer,
		r.AdditionalNotes, r.Email, r.Phone, *r.ID)
	if err != nil {
		return models.Interview{}, fmt.Errorf("failed to update interview %d: %w", *r.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Interview{}, storage.ErrNotFound
	}
	return r, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM interviews WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete interview %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
