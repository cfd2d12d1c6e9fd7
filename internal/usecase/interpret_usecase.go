package usecase

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fadilmartias/resume-analyzer/internal/apperror"
	"github.com/fadilmartias/resume-analyzer/internal/config"
	"github.com/fadilmartias/resume-analyzer/internal/dto"
	"github.com/fadilmartias/resume-analyzer/internal/model"
	"github.com/fadilmartias/resume-analyzer/internal/repository"
	"github.com/fadilmartias/resume-analyzer/internal/service"
	"github.com/fadilmartias/resume-analyzer/internal/util"
)

// State is a step of one InterpretAndStore run.
type State string

const (
	StateReceived          State = "RECEIVED"
	StateNormalized        State = "NORMALIZED"
	StateDecoded           State = "DECODED"
	StateFallbackExtracted State = "FALLBACK_EXTRACTED"
	StateValidated         State = "VALIDATED"
	StateUpdated           State = "UPDATED"
	StateInserted          State = "INSERTED"
	StateCommitted         State = "COMMITTED"
	StateError             State = "ERROR"
)

// Outcome is the result of InterpretAndStore. Status is 200, 400 or 500.
// Diagnostics holds non-fatal problems met on the way, such as a reply
// that had to be read by pattern extraction.
type Outcome struct {
	Success     bool
	Record      *model.CandidateRecord
	Payload     dto.ParsedFields
	Message     string
	Status      int
	Err         error
	Trace       []State
	Diagnostics []error
}

func (o *Outcome) step(s State) {
	o.Trace = append(o.Trace, s)
}

func (o *Outcome) fail(err *apperror.Error) Outcome {
	o.step(StateError)
	o.Success = false
	o.Err = err
	o.Message = err.Message
	o.Status = apperror.StatusHint(err)
	return *o
}

func (o *Outcome) DTO() *dto.StoreResultDTO {
	res := &dto.StoreResultDTO{Success: o.Success, Message: o.Message, Fields: o.Payload}
	if o.Record != nil {
		rec := dto.NewCandidateRecordDTO(o.Record)
		res.Candidate = &rec
	}
	return res
}

// InterpretAndStore asks the model to turn resumeText into the resume
// fields, parses the reply and upserts the candidate by email.
func (uc *ResumeUsecase) InterpretAndStore(ctx context.Context, resumeText string) Outcome {
	var out Outcome
	out.step(StateReceived)

	prompt := service.CombinePrompt(resumeText, resumeExtractionPrompt)
	if strings.TrimSpace(resumeText) == "" || prompt == "" {
		return out.fail(apperror.New(apperror.KindInput, "Resume text is required", nil))
	}

	raw, err := uc.model.GenerateText(ctx, prompt)
	if err != nil {
		uc.log.Error().Err(err).Msg("model call failed while reading resume fields")
		return out.fail(apperror.New(apperror.KindModelUnavailable, "AI model is unavailable", err))
	}
	if strings.TrimSpace(raw) == "" {
		return out.fail(apperror.New(apperror.KindEmptyModelResponse, "No response from model", nil))
	}
	uc.log.Debug().Str("raw", raw).Msg("model response for resume fields")

	fields, state := interpret(raw)
	out.step(StateNormalized)
	out.step(state)
	if state == StateFallbackExtracted {
		if util.TrimFields(fields).IsEmpty() {
			return out.fail(apperror.New(apperror.KindParseExhausted, "Could not read candidate details from the AI response", nil))
		}
		uc.log.Warn().Int("fields", fields.Count()).Msg("model response was not JSON, used fallback extraction")
		out.Diagnostics = append(out.Diagnostics,
			apperror.New(apperror.KindParseDegraded, "Model response was not JSON, used pattern extraction", nil))
	}

	synthesizedName := util.TrimFields(fields).Name == nil
	fields = util.ValidateFields(fields, uc.now())
	out.Payload = fields
	out.step(StateValidated)

	rec, state, err := uc.upsert(ctx, fields, synthesizedName)
	if err != nil {
		uc.log.Error().Err(err).Msg("storing candidate failed")
		return out.fail(apperror.New(apperror.KindStorage, "Failed to store resume data", err))
	}
	out.step(state)
	out.step(StateCommitted)

	out.Success = true
	out.Record = rec
	out.Message = "Resume data stored successfully"
	out.Status = apperror.StatusHint(nil)
	return out
}

// interpret normalizes raw and decodes it, falling back to pattern
// extraction over raw when it is not a JSON object.
func interpret(raw string) (dto.ParsedFields, State) {
	if fields, ok := util.DecodeResumeFields(util.CleanJSONResponse(raw)); ok {
		return fields, StateDecoded
	}
	return util.ExtractBasicInfoFallback(raw), StateFallbackExtracted
}

func (uc *ResumeUsecase) upsert(ctx context.Context, fields dto.ParsedFields, synthesizedName bool) (*model.CandidateRecord, State, error) {
	tx, err := uc.store.Begin(ctx)
	if err != nil {
		return nil, "", err
	}

	rec, state, err := uc.write(tx, fields, synthesizedName)
	if err != nil {
		uc.rollback(tx)
		return nil, "", err
	}
	if err := tx.Commit(); err != nil {
		uc.rollback(tx)
		return nil, "", err
	}
	return rec, state, nil
}

func (uc *ResumeUsecase) write(tx repository.CandidateTx, fields dto.ParsedFields, synthesizedName bool) (*model.CandidateRecord, State, error) {
	if fields.Email != nil {
		existing, err := tx.FindByEmail(*fields.Email)
		if err != nil {
			return nil, "", err
		}
		if existing != nil {
			applyFields(existing, fields, uc.mergePolicy, synthesizedName)
			if err := tx.Update(existing); err != nil {
				return nil, "", err
			}
			return existing, StateUpdated, nil
		}
	}

	rec := &model.CandidateRecord{}
	applyFields(rec, fields, config.MergePolicyOverwrite, false)
	if err := tx.Insert(rec); err != nil {
		return nil, "", err
	}
	return rec, StateInserted, nil
}

func (uc *ResumeUsecase) rollback(tx repository.CandidateTx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, repository.ErrTxDone) && !errors.Is(err, sql.ErrTxDone) {
		uc.log.Warn().Err(err).Msg("rollback failed")
	}
}

// applyFields copies fields onto rec. Overwrite replaces every column, gaps
// included; keep_existing only fills columns the new parse provides.
func applyFields(rec *model.CandidateRecord, fields dto.ParsedFields, policy string, synthesizedName bool) {
	keep := policy == config.MergePolicyKeepExisting
	set := func(dst **string, v *string) {
		if keep && v == nil {
			return
		}
		*dst = v
	}

	if fields.Name != nil && !(keep && synthesizedName && rec.Name != "") {
		rec.Name = *fields.Name
	}
	set(&rec.Email, fields.Email)
	set(&rec.Phone, fields.Phone)
	set(&rec.Education, fields.Education)
	set(&rec.Experience, fields.Experience)
	set(&rec.Skills, fields.Skills)
	set(&rec.Certifications, fields.Certifications)
	set(&rec.Projects, fields.Projects)
	set(&rec.Languages, fields.Languages)
	set(&rec.AdditionalInfo, fields.AdditionalInfo)
}
