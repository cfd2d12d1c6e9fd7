package repository

import (
	"context"

	"github.com/fadilmartias/resume-analyzer/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CandidateMatch struct {
	model.CandidateRecord
	Distance float64 `json:"distance"`
}

type EmbeddingStore interface {
	Upsert(ctx context.Context, emb *model.CandidateEmbedding) error
	SearchCandidates(ctx context.Context, embedding pgvector.Vector, topK int) ([]CandidateMatch, error)
}

type CandidateEmbeddingRepository struct {
	db *gorm.DB
}

func NewCandidateEmbeddingRepository(db *gorm.DB) *CandidateEmbeddingRepository {
	return &CandidateEmbeddingRepository{db}
}

// Upsert replaces the stored vector for the candidate, if any.
func (r *CandidateEmbeddingRepository) Upsert(ctx context.Context, emb *model.CandidateEmbedding) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "candidate_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"model", "embedding", "updated_at"}),
		}).
		Create(emb).Error
}

func (r *CandidateEmbeddingRepository) SearchCandidates(ctx context.Context, embedding pgvector.Vector, topK int) ([]CandidateMatch, error) {
	var matches []CandidateMatch

	// <-> is L2 distance; smaller is closer
	err := r.db.WithContext(ctx).Raw(`
        SELECT c.*, e.embedding <-> ? AS distance
        FROM candidate_embeddings e
        JOIN candidate_records c ON c.id = e.candidate_id
        ORDER BY e.embedding <-> ?
        LIMIT ?
    `, embedding, embedding, topK).Scan(&matches).Error

	return matches, err
}
