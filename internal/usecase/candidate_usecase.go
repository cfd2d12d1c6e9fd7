package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/fadilmartias/resume-analyzer/internal/apperror"
	"github.com/fadilmartias/resume-analyzer/internal/dto"
	"github.com/fadilmartias/resume-analyzer/internal/model"
	"github.com/fadilmartias/resume-analyzer/internal/repository"
	"github.com/fadilmartias/resume-analyzer/internal/service"
	"github.com/pgvector/pgvector-go"
)

const (
	defaultTopK = 5
	maxTopK     = 50
)

var ErrMatchingDisabled = apperror.New(apperror.KindInput, "Candidate matching is disabled", nil)

type CandidateUsecase struct {
	store      repository.CandidateStore
	embedder   service.Embedder
	embeddings repository.EmbeddingStore
}

// NewCandidateUsecase accepts nil embedder and embeddings when vector
// search is off.
func NewCandidateUsecase(store repository.CandidateStore, embedder service.Embedder, embeddings repository.EmbeddingStore) *CandidateUsecase {
	return &CandidateUsecase{store: store, embedder: embedder, embeddings: embeddings}
}

// GetCandidate returns repository.ErrCandidateNotFound when no record has
// this email.
func (uc *CandidateUsecase) GetCandidate(ctx context.Context, email string) (*model.CandidateRecord, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperror.New(apperror.KindInput, "Email is required", nil)
	}
	rec, err := uc.store.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrCandidateNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, apperror.New(apperror.KindStorage, "Failed to load candidate", err)
	}
	return rec, nil
}

func (uc *CandidateUsecase) ListCandidates(ctx context.Context, page, pageSize int) ([]model.CandidateRecord, int64, error) {
	records, total, err := uc.store.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, apperror.New(apperror.KindStorage, "Failed to load candidates", err)
	}
	return records, total, nil
}

// MatchCandidates returns the stored candidates whose resume embedding is
// closest to the job description.
func (uc *CandidateUsecase) MatchCandidates(ctx context.Context, req dto.MatchCandidatesRequest) ([]dto.CandidateMatchDTO, error) {
	if uc.embedder == nil || uc.embeddings == nil {
		return nil, ErrMatchingDisabled
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, apperror.New(apperror.KindInput, "Job description is required", nil)
	}
	topK := req.TopK
	if topK <= 0 {
		topK = defaultTopK
	}
	if topK > maxTopK {
		topK = maxTopK
	}

	vec, err := uc.embedder.GenerateEmbedding(ctx, req.JobDescription)
	if err != nil {
		return nil, apperror.New(apperror.KindModelUnavailable, "AI model is unavailable", err)
	}
	matches, err := uc.embeddings.SearchCandidates(ctx, pgvector.NewVector(vec), topK)
	if err != nil {
		return nil, apperror.New(apperror.KindStorage, "Failed to search candidates", err)
	}

	out := make([]dto.CandidateMatchDTO, 0, len(matches))
	for i := range matches {
		out = append(out, dto.CandidateMatchDTO{
			Candidate: dto.NewCandidateRecordDTO(&matches[i].CandidateRecord),
			Distance:  matches[i].Distance,
		})
	}
	return out, nil
}
