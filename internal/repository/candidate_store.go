package repository

import (
	"context"
	"errors"

	"github.com/fadilmartias/resume-analyzer/internal/model"
)

var ErrCandidateNotFound = errors.New("candidate not found")

// CandidateTx is one unit of work against the candidate store. Nothing it
// writes is visible to other readers until Commit succeeds.
type CandidateTx interface {
	// FindByEmail returns nil, nil when no record has this exact email.
	FindByEmail(email string) (*model.CandidateRecord, error)
	Insert(rec *model.CandidateRecord) error
	// Update overwrites every column of rec.
	Update(rec *model.CandidateRecord) error
	Commit() error
	Rollback() error
}

type CandidateStore interface {
	Begin(ctx context.Context) (CandidateTx, error)
	FindByEmail(ctx context.Context, email string) (*model.CandidateRecord, error)
	List(ctx context.Context, page, pageSize int) ([]model.CandidateRecord, int64, error)
}
