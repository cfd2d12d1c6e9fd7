package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fadilmartias/resume-analyzer/internal/model"
	"gorm.io/gorm"
)

type CandidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db}
}

func (r *CandidateRepository) Begin(ctx context.Context) (CandidateTx, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	return &candidateTx{tx: tx}, nil
}

func (r *CandidateRepository) FindByEmail(ctx context.Context, email string) (*model.CandidateRecord, error) {
	var rec model.CandidateRecord
	err := r.db.WithContext(ctx).First(&rec, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCandidateNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *CandidateRepository) List(ctx context.Context, page, pageSize int) ([]model.CandidateRecord, int64, error) {
	var (
		records []model.CandidateRecord
		total   int64
	)
	db := r.db.WithContext(ctx).Model(&model.CandidateRecord{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error
	return records, total, err
}

type candidateTx struct {
	tx *gorm.DB
}

func (t *candidateTx) FindByEmail(email string) (*model.CandidateRecord, error) {
	var rec model.CandidateRecord
	err := t.tx.Where("email = ?", email).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (t *candidateTx) Insert(rec *model.CandidateRecord) error {
	return t.tx.Create(rec).Error
}

func (t *candidateTx) Update(rec *model.CandidateRecord) error {
	return t.tx.Save(rec).Error
}

func (t *candidateTx) Commit() error {
	return t.tx.Commit().Error
}

func (t *candidateTx) Rollback() error {
	return t.tx.Rollback().Error
}
