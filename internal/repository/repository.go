package repository

import (
	"database/sql"
	"errors"

	"github.com/assistenzplus/backend/internal/config"
)

var (
	// ErrEmployeeHasShifts: the employee still owns shift records and must
	// not be deleted.
	ErrEmployeeHasShifts = errors.New("employee still has shift records")
	// ErrNothingToSubmit: no confirmed shifts exist for the requested month.
	ErrNothingToSubmit = errors.New("no confirmed shifts to submit for this month")
	// ErrSignatureNotFound: the employee has no signature on the submission.
	ErrSignatureNotFound = errors.New("employee signature not found")
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}
