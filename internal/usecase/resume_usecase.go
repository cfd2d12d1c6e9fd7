package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/apperror"
	"github.com/fadilmartias/resume-analyzer/internal/config"
	"github.com/fadilmartias/resume-analyzer/internal/dto"
	"github.com/fadilmartias/resume-analyzer/internal/extractor"
	"github.com/fadilmartias/resume-analyzer/internal/model"
	"github.com/fadilmartias/resume-analyzer/internal/repository"
	"github.com/fadilmartias/resume-analyzer/internal/service"
	"github.com/fadilmartias/resume-analyzer/internal/util"
	"github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog"
)

const (
	defaultJobDescription  = "Software Engineer"
	defaultCoverLetterTone = "Standard professional"
)

// TextExtractor is satisfied by *extractor.Extractor.
type TextExtractor interface {
	Extract(path string) (*extractor.Document, error)
}

type ResumeUsecase struct {
	store          repository.CandidateStore
	model          service.ModelCaller
	extractor      TextExtractor
	mergePolicy    string
	embedder       service.Embedder
	embeddings     repository.EmbeddingStore
	embeddingModel string
	log            zerolog.Logger
	now            func() time.Time
}

func NewResumeUsecase(store repository.CandidateStore, model service.ModelCaller, ext TextExtractor, mergePolicy string, log zerolog.Logger) *ResumeUsecase {
	if mergePolicy == "" {
		mergePolicy = config.MergePolicyOverwrite
	}
	return &ResumeUsecase{
		store:       store,
		model:       model,
		extractor:   ext,
		mergePolicy: mergePolicy,
		log:         log.With().Str("component", "resume").Logger(),
		now:         time.Now,
	}
}

// WithEmbeddings makes AnalyzeResume store a vector of each stored resume.
func (uc *ResumeUsecase) WithEmbeddings(embedder service.Embedder, embeddings repository.EmbeddingStore, modelName string) *ResumeUsecase {
	uc.embedder = embedder
	uc.embeddings = embeddings
	uc.embeddingModel = modelName
	return uc
}

type AnalyzeInput struct {
	FilePath       string
	Filename       string
	JobDescription string
}

// AnalyzeResume extracts the uploaded resume, stores the candidate it
// describes and returns the model's review of it. Failing to store the
// candidate does not fail the analysis.
func (uc *ResumeUsecase) AnalyzeResume(ctx context.Context, in AnalyzeInput) (*dto.ResumeAnalysisDTO, error) {
	doc, err := uc.extractor.Extract(in.FilePath)
	if err != nil {
		return nil, err
	}
	if err := doc.Err(); err != nil {
		return nil, err
	}
	uc.logDiagnostics(doc.Diagnostics, in.Filename)
	resumeText := doc.Text()

	outcome := uc.InterpretAndStore(ctx, resumeText)
	uc.logDiagnostics(outcome.Diagnostics, in.Filename)
	if outcome.Success {
		uc.log.Info().Str("candidate_id", outcome.Record.ID.String()).Strs("trace", traceStrings(outcome.Trace)).Msg("candidate stored")
		uc.storeEmbedding(ctx, outcome.Record, resumeText)
	} else {
		uc.log.Warn().Err(outcome.Err).Int("status", outcome.Status).Strs("trace", traceStrings(outcome.Trace)).Msg("candidate not stored")
	}

	jobDescription := strings.TrimSpace(in.JobDescription)
	if jobDescription == "" {
		jobDescription = defaultJobDescription
	}
	analysis, err := uc.generate(ctx, analysisPrompt(resumeText, jobDescription))
	if err != nil {
		return nil, err
	}

	return &dto.ResumeAnalysisDTO{
		Analysis:   analysis,
		Filename:   in.Filename,
		ResumeText: resumeText,
		Candidate:  outcome.DTO(),
	}, nil
}

func (uc *ResumeUsecase) ATSScore(ctx context.Context, resumeText, jobDescription string) (int, error) {
	if strings.TrimSpace(resumeText) == "" {
		return 0, apperror.New(apperror.KindInput, "Resume text is required", nil)
	}
	if strings.TrimSpace(jobDescription) == "" {
		return 0, apperror.New(apperror.KindInput, "Job description is required", nil)
	}

	raw, err := uc.generate(ctx, atsPrompt(resumeText, jobDescription))
	if err != nil {
		return 0, err
	}
	score, ok := util.ParseATSScore(raw)
	if !ok {
		uc.log.Warn().Str("raw", raw).Msg("no ats_score in model response")
		return 0, apperror.New(apperror.KindParseExhausted, "Could not find ats_score in response", nil)
	}
	return score, nil
}

func (uc *ResumeUsecase) CoverLetter(ctx context.Context, in CoverLetterInput) (string, error) {
	switch {
	case strings.TrimSpace(in.ResumeText) == "":
		return "", apperror.New(apperror.KindInput, "Resume text is required", nil)
	case strings.TrimSpace(in.JobDescription) == "":
		return "", apperror.New(apperror.KindInput, "Job description is required", nil)
	case strings.TrimSpace(in.CompanyName) == "":
		return "", apperror.New(apperror.KindInput, "Company name is required", nil)
	}
	if strings.TrimSpace(in.DesiredTone) == "" {
		in.DesiredTone = defaultCoverLetterTone
	}
	return uc.generate(ctx, coverLetterPrompt(in))
}

// Hello checks that the model answers at all.
func (uc *ResumeUsecase) Hello(ctx context.Context) (string, error) {
	return uc.generate(ctx, helloPrompt)
}

func (uc *ResumeUsecase) generate(ctx context.Context, prompt string) (string, error) {
	text, err := uc.model.GenerateText(ctx, prompt)
	if err != nil {
		uc.log.Error().Err(err).Msg("model call failed")
		return "", apperror.New(apperror.KindModelUnavailable, "AI model is unavailable", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperror.New(apperror.KindEmptyModelResponse, "No response from model", nil)
	}
	return text, nil
}

func (uc *ResumeUsecase) storeEmbedding(ctx context.Context, rec *model.CandidateRecord, resumeText string) {
	if uc.embedder == nil || uc.embeddings == nil {
		return
	}
	vec, err := uc.embedder.GenerateEmbedding(ctx, resumeText)
	if err != nil {
		uc.log.Warn().Err(err).Str("candidate_id", rec.ID.String()).Msg("resume embedding failed")
		return
	}
	err = uc.embeddings.Upsert(ctx, &model.CandidateEmbedding{
		CandidateID: rec.ID,
		Model:       uc.embeddingModel,
		Embedding:   pgvector.NewVector(vec),
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("candidate_id", rec.ID.String()).Msg("storing resume embedding failed")
	}
}

func traceStrings(trace []State) []string {
	out := make([]string, len(trace))
	for i, s := range trace {
		out[i] = string(s)
	}
	return out
}

func (uc *ResumeUsecase) logDiagnostics(diags []error, filename string) {
	for _, d := range diags {
		level := zerolog.WarnLevel
		if apperror.KindOf(d).Fatal() {
			level = zerolog.ErrorLevel
		}
		uc.log.WithLevel(level).Err(d).Str("file", filename).Str("kind", string(apperror.KindOf(d))).Msg("degraded result")
	}
}
