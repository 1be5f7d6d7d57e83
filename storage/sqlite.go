package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/abcfe/abcfe-wallet/wallet"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLiteStore keeps one row per wallet; seq preserves insertion order.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens the database at path and applies pending migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	db.SetMaxOpenConns(1) // sqlite

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return errors.Wrap(err, "load migrations")
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return errors.Wrap(err, "migration driver")
	}
	// m.Close would close db through the driver, so only the source is released.
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		src.Close()
		return errors.Wrap(err, "init migrations")
	}
	defer src.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, "apply migrations")
	}
	return nil
}

func (s *SQLiteStore) FetchAll(ctx context.Context) ([]wallet.Wallet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT address, name, red, green, blue, opacity, emoji FROM wallets ORDER BY seq`)
	if err != nil {
		return nil, &wallet.StoreError{Op: "fetch", Err: err}
	}
	defer rows.Close()

	wallets := []wallet.Wallet{}
	for rows.Next() {
		var w wallet.Wallet
		if err := rows.Scan(&w.Address, &w.Name, &w.Color.Red, &w.Color.Green, &w.Color.Blue, &w.Color.Opacity, &w.Emoji); err != nil {
			return nil, &wallet.StoreError{Op: "fetch", Err: err}
		}
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, &wallet.StoreError{Op: "fetch", Err: err}
	}
	return wallets, nil
}

func (s *SQLiteStore) Append(ctx context.Context, w wallet.Wallet) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO wallets (address, name, red, green, blue, opacity, emoji) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		w.Address, w.Name, w.Color.Red, w.Color.Green, w.Color.Blue, w.Color.Opacity, w.Emoji)
	if err != nil {
		return &wallet.StoreError{Op: "append", Err: err}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
