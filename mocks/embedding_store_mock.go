package mocks

import (
	"context"

	"github.com/fadilmartias/resume-analyzer/internal/model"
	"github.com/fadilmartias/resume-analyzer/internal/repository"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/mock"
)

type MockEmbeddingStore struct {
	mock.Mock
}

func (m *MockEmbeddingStore) Upsert(ctx context.Context, emb *model.CandidateEmbedding) error {
	args := m.Called(ctx, emb)
	return args.Error(0)
}

func (m *MockEmbeddingStore) SearchCandidates(ctx context.Context, embedding pgvector.Vector, topK int) ([]repository.CandidateMatch, error) {
	args := m.Called(ctx, embedding, topK)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]repository.CandidateMatch), args.Error(1)
}
