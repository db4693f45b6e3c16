package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/interviewdesk/internal/logger"
	"github.com/julianstephens/interviewdesk/internal/migration"
	"github.com/julianstephens/interviewdesk/internal/models"
	"github.com/julianstephens/interviewdesk/internal/storage"
	"github.com/julianstephens/interviewdesk/migrations"
)

type Store struct {
	path string
	db   *sql.DB
}

var _ storage.Provider = (*Store)(nil)

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	if s.db != nil {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection serializes writers and keeps the id sequence simple.
	db.SetMaxOpenConns(1)
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
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS, migration.SQLite)
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Info(msg, "store", "sqlite")
	})
	return err
}

func (s *Store) Describe() string {
	return "sqlite:" + s.path
}

func (s *Store) ListByRange(ctx context.Context, start, end string) ([]models.Interview, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+storage.Columns+" FROM interviews WHERE date >= ? AND date <= ? ORDER BY date, time, id",
		start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	return storage.ScanInterviews(rows)
}

func (s *Store) Get(ctx context.Context, id int64) (models.Interview, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+storage.Columns+" FROM interviews WHERE id = ?", id)
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
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx, `
INSERT INTO interviews (interviewee, date, time, duration, role, department, interviewer,
                        additional_notes, email, phone, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Interviewee, r.Date, r.Time, r.Duration, r.Role, r.Department, r.Interviewer,
		r.AdditionalNotes, r.Email, r.Phone, now, now)
	if err != nil {
		return models.Interview{}, fmt.Errorf("failed to insert interview: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Interview{}, fmt.Errorf("failed to read new interview id: %w", err)
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
SET interviewee = ?, date = ?, time = ?, duration = ?, role = ?, department = ?, interviewer = ?,
    additional_notes = ?, email = ?, phone = ?, updated_at = ?
WHERE id = ?`,
		r.Interviewee, r.Date, r.Time, r.Duration, r.Role, r.Department, r.Interviewer,
		r.AdditionalNotes, r.Email, r.Phone, time.Now().UTC().Format(time.RFC3339), *r.ID)
	if err != nil {
		return models.Interview{}, fmt.Errorf("failed to update interview %d: %w", *r.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Interview{}, storage.ErrNotFound
	}
	return r, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM interviews WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete interview %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
