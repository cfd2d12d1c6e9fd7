package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/model"
	"github.com/google/uuid"
)

var ErrTxDone = errors.New("transaction has already been committed or rolled back")

// MemoryCandidateStore keeps candidates in process memory. Transactions
// stage their writes and apply them atomically on Commit.
type MemoryCandidateStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*model.CandidateRecord
	now     func() time.Time
}

func NewMemoryCandidateStore() *MemoryCandidateStore {
	return &MemoryCandidateStore{
		records: make(map[uuid.UUID]*model.CandidateRecord),
		now:     time.Now,
	}
}

func (s *MemoryCandidateStore) Begin(ctx context.Context) (CandidateTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &memoryTx{store: s, staged: make(map[uuid.UUID]*model.CandidateRecord)}, nil
}

func (s *MemoryCandidateStore) FindByEmail(_ context.Context, email string) (*model.CandidateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rec := s.findByEmailLocked(email); rec != nil {
		return rec.Clone(), nil
	}
	return nil, ErrCandidateNotFound
}

func (s *MemoryCandidateStore) List(_ context.Context, page, pageSize int) ([]model.CandidateRecord, int64, error) {
	s.mu.RLock()
	all := make([]model.CandidateRecord, 0, len(s.records))
	for _, rec := range s.records {
		all = append(all, *rec.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	start := (page - 1) * pageSize
	if start < 0 || start >= len(all) {
		return []model.CandidateRecord{}, total, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

// Len reports the number of committed records.
func (s *MemoryCandidateStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *MemoryCandidateStore) findByEmailLocked(email string) *model.CandidateRecord {
	for _, rec := range s.records {
		if rec.Email != nil && *rec.Email == email {
			return rec
		}
	}
	return nil
}

type memoryTx struct {
	store  *MemoryCandidateStore
	staged map[uuid.UUID]*model.CandidateRecord
	order  []uuid.UUID
	done   bool
}

func (t *memoryTx) FindByEmail(email string) (*model.CandidateRecord, error) {
	if t.done {
		return nil, ErrTxDone
	}
	for _, id := range t.order {
		rec := t.staged[id]
		if rec.Email != nil && *rec.Email == email {
			return rec.Clone(), nil
		}
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if rec := t.store.findByEmailLocked(email); rec != nil {
		return rec.Clone(), nil
	}
	return nil, nil
}

func (t *memoryTx) Insert(rec *model.CandidateRecord) error {
	if t.done {
		return ErrTxDone
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := t.store.now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = now
	}
	t.stage(rec)
	return nil
}

func (t *memoryTx) Update(rec *model.CandidateRecord) error {
	if t.done {
		return ErrTxDone
	}
	if rec.ID == uuid.Nil {
		return fmt.Errorf("update candidate: missing id")
	}
	rec.UpdatedAt = t.store.now()
	t.stage(rec)
	return nil
}

func (t *memoryTx) stage(rec *model.CandidateRecord) {
	if _, ok := t.staged[rec.ID]; !ok {
		t.order = append(t.order, rec.ID)
	}
	t.staged[rec.ID] = rec.Clone()
}

func (t *memoryTx) Commit() error {
	if t.done {
		return ErrTxDone
	}
	t.done = true

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range t.order {
		rec := t.staged[id]
		if rec.Email == nil {
			continue
		}
		if existing := s.findByEmailLocked(*rec.Email); existing != nil && existing.ID != id {
			return fmt.Errorf("duplicate key value violates unique constraint: email %q", *rec.Email)
		}
	}
	for _, id := range t.order {
		s.records[id] = t.staged[id]
	}
	return nil
}

func (t *memoryTx) Rollback() error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	t.staged = nil
	t.order = nil
	return nil
}
