package repository

import (
	"database/sql"
	"errors"

	"github.com/crewdeck-dev/crewdeck/backend/internal/config"
)

// ErrDuplicateSwapRequest reports that a PENDING request for the same
// (senderDuty, targetDuty) pair already exists.
var ErrDuplicateSwapRequest = errors.New("a pending swap request for this duty pair already exists")

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
