package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type CandidateEmbedding struct {
	CandidateID uuid.UUID       `gorm:"type:uuid;primaryKey" json:"candidate_id"`
	Model       string          `gorm:"type:varchar(100)" json:"model"`
	Embedding   pgvector.Vector `gorm:"type:vector(3072)" json:"embedding"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (e *CandidateEmbedding) TableName() string {
	return "candidate_embeddings"
}
