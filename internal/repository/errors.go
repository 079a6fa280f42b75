package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound covers every zero-row lookup, including rows that exist
	// but belong to another user.
	ErrNotFound = errors.New("not found")
	// ErrConflict signals a unique-key violation.
	ErrConflict = errors.New("conflict")
)

const uniqueViolationCode = "23505"

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrConflict
	}
	return err
}
