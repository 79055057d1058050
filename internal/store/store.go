package store

import (
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"bettracker/internal/db"
)

const driverName = "sqlite"

func init() {
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

var (
	// ErrBetNotRecorded marks every AddBet failure, whatever the cause.
	ErrBetNotRecorded = errors.New("bet not recorded")
	// ErrInvalidBet means the bet input failed validation.
	ErrInvalidBet = errors.New("invalid bet")
	// ErrInvalidBetType means the named bet type does not exist for the sport or game.
	ErrInvalidBetType = errors.New("invalid bet type")
	// ErrUnavailable wraps failures of the underlying database.
	ErrUnavailable = errors.New("storage unavailable")
	ErrEmptyName   = errors.New("name is required")
)

// Store is the durable record of reference entities and the bet ledger. It owns a
// single database connection for its lifetime; close it when done.
type Store struct {
	db       *sqlx.DB
	now      func() time.Time
	validate *validator.Validate
}

type Option func(*Store)

// WithClock replaces the clock used to date bets that carry no explicit date.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open opens (or creates) the database file and ensures the schema exists.
func Open(path string, opts ...Option) (*Store, error) {
	raw, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(raw); err != nil {
		raw.Close()
		return nil, err
	}
	return New(raw, opts...), nil
}

// New wraps an already migrated database.
func New(raw *sql.DB, opts ...Option) *Store {
	s := &Store{
		db:       sqlx.NewDb(raw, driverName),
		now:      time.Now,
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DB exposes the underlying handle for read-only reporting queries.
func (s *Store) DB() *sql.DB {
	return s.db.DB
}

func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrap(err, "closing database")
	}
	return nil
}

func unavailable(err error, msg string) error {
	return errors.Mark(errors.Wrap(err, msg), ErrUnavailable)
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
