package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/apperror"
	"github.com/fadilmartias/resume-analyzer/internal/config"
	"github.com/fadilmartias/resume-analyzer/internal/model"
	"github.com/fadilmartias/resume-analyzer/internal/repository"
	"github.com/fadilmartias/resume-analyzer/internal/util"
	"github.com/fadilmartias/resume-analyzer/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

func newTestResumeUsecase(store repository.CandidateStore, policy string) (*ResumeUsecase, *mocks.MockModelCaller) {
	m := new(mocks.MockModelCaller)
	uc := NewResumeUsecase(store, m, nil, policy, zerolog.Nop())
	uc.now = func() time.Time { return fixedNow }
	return uc, m
}

func replyWith(m *mocks.MockModelCaller, raw string) {
	m.On("GenerateText", mock.Anything, mock.Anything).Return(raw, nil).Once()
}

func TestInterpretAndStore_FencedJSONWithProse(t *testing.T) {
	store := repository.NewMemoryCandidateStore()
	uc, m := newTestResumeUsecase(store, config.MergePolicyOverwrite)
	replyWith(m, "Here you go:\n```json\n{\"name\":\"A B\",\"email\":\"a@b.com\"}\n```")

	out := uc.InterpretAndStore(context.Background(), "A B\na@b.com")

	require.True(t, out.Success, out.Message)
	assert.Equal(t, 200, out.Status)
	assert.Equal(t, "A B", *out.Payload.Name)
	assert.Equal(t, "a@b.com", *out.Payload.Email)
	assert.Equal(t, 2, out.Payload.Count())
	assert.Equal(t, []State{StateReceived, StateNormalized, StateDecoded, StateValidated, StateInserted, StateCommitted}, out.Trace)
	assert.Empty(t, out.Diagnostics)

	got, err := store.FindByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "A B", got.Name)
	assert.Nil(t, got.Skills)
	m.AssertExpectations(t)
}

func TestInterpretAndStore_PromptCarriesResumeAndKeys(t *testing.T) {
	uc, m := newTestResumeUsecase(repository.NewMemoryCandidateStore(), "")
	m.On("GenerateText", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.HasPrefix(p, "RESUME BODY\n") &&
			containsAll(p, "additional_info", "certifications", "JSON")
	})).Return(`{"name":"Jane Doe"}`, nil).Once()

	out := uc.InterpretAndStore(context.Background(), "  RESUME BODY  ")
	assert.True(t, out.Success)
	m.AssertExpectations(t)
}

func TestInterpretAndStore_StructuredFieldsStoredAsCompactJSON(t *testing.T) {
	store := repository.NewMemoryCandidateStore()
	uc, m := newTestResumeUsecase(store, "")
	replyWith(m, `{
  "name": "Jane Doe",
  "email": "jane@example.com",
  "skills": {"languages": ["Go", "SQL"]},
  "education": [],
  "projects": [ {"name": "api"} ]
}`)

	out := uc.InterpretAndStore(context.Background(), "resume")
	require.True(t, out.Success)
	assert.Equal(t, `{"languages":["Go","SQL"]}`, *out.Record.Skills)
	assert.Equal(t, `[{"name":"api"}]`, *out.Record.Projects)
	assert.Nil(t, out.Record.Education)
}

func TestInterpretAndStore_FallbackOnMalformedJSON(t *testing.T) {
	store := repository.NewMemoryCandidateStore()
	uc, m := newTestResumeUsecase(store, "")
	replyWith(m, "name: John Smith, email john@x.com not json")

	out := uc.InterpretAndStore(context.Background(), "resume")

	require.True(t, out.Success)
	assert.Contains(t, out.Trace, StateFallbackExtracted)
	assert.Equal(t, 200, out.Status)
	require.Len(t, out.Diagnostics, 1)
	assert.True(t, errors.Is(out.Diagnostics[0], apperror.ErrParseDegraded))
	assert.False(t, apperror.KindOf(out.Diagnostics[0]).Fatal())
	assert.Equal(t, "john@x.com", *out.Payload.Email)
	assert.Nil(t, out.Payload.Phone)
	assert.Nil(t, out.Payload.Skills)
	assert.Equal(t, util.PlaceholderName(fixedNow), *out.Payload.Name)
}

func TestInterpretAndStore_FallbackNameGuess(t *testing.T) {
	uc, m := newTestResumeUsecase(repository.NewMemoryCandidateStore(), "")
	replyWith(m, "John Smith\nSoftware Engineer\njohn@x.com\n+1 (555) 123-4567")

	out := uc.InterpretAndStore(context.Background(), "resume")

	require.True(t, out.Success)
	assert.Equal(t, "John Smith", *out.Payload.Name)
	assert.Equal(t, "+1 (555) 123-4567", *out.Payload.Phone)
}

func TestInterpretAndStore_ParseExhausted(t *testing.T) {
	store := repository.NewMemoryCandidateStore()
	uc, m := newTestResumeUsecase(store, "")
	replyWith(m, "error 42")

	out := uc.InterpretAndStore(context.Background(), "resume")

	assert.False(t, out.Success)
	assert.Equal(t, 500, out.Status)
	assert.ErrorIs(t, out.Err, apperror.ErrParseExhausted)
	assert.Equal(t, StateError, out.Trace[len(out.Trace)-1])
	assert.Equal(t, 0, store.Len())
}

func TestInterpretAndStore_EmptyInputSkipsModel(t *testing.T) {
	uc, m := newTestResumeUsecase(repository.NewMemoryCandidateStore(), "")

	out := uc.InterpretAndStore(context.Background(), " \n\t ")

	assert.False(t, out.Success)
	assert.Equal(t, 400, out.Status)
	assert.ErrorIs(t, out.Err, apperror.ErrInput)
	assert.Equal(t, []State{StateReceived, StateError}, out.Trace)
	m.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything)
}

func TestInterpretAndStore_ModelFailures(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		uc, m := newTestResumeUsecase(repository.NewMemoryCandidateStore(), "")
		m.On("GenerateText", mock.Anything, mock.Anything).Return("", errors.New("quota exceeded")).Once()

		out := uc.InterpretAndStore(context.Background(), "resume")
		assert.Equal(t, 500, out.Status)
		assert.ErrorIs(t, out.Err, apperror.ErrModelUnavailable)
		assert.NotContains(t, out.Message, "quota")
		m.AssertNumberOfCalls(t, "GenerateText", 1)
	})

	t.Run("empty", func(t *testing.T) {
		uc, m := newTestResumeUsecase(repository.NewMemoryCandidateStore(), "")
		replyWith(m, "   ")

		out := uc.InterpretAndStore(context.Background(), "resume")
		assert.Equal(t, 500, out.Status)
		assert.ErrorIs(t, out.Err, apperror.ErrEmptyModelResponse)
	})
}

func TestInterpretAndStore_InvalidEmailAndPhoneDropped(t *testing.T) {
	store := repository.NewMemoryCandidateStore()
	uc, m := newTestResumeUsecase(store, "")
	replyWith(m, `{"name":" Jane Doe ","email":"not-an-email","phone":"12345","skills":"  "}`)

	out := uc.InterpretAndStore(context.Background(), "resume")

	require.True(t, out.Success)
	assert.Equal(t, "Jane Doe", *out.Payload.Name)
	assert.Nil(t, out.Payload.Email)
	assert.Nil(t, out.Payload.Phone)
	assert.Nil(t, out.Payload.Skills)
	assert.Contains(t, out.Trace, StateInserted)
}

func TestInterpretAndStore_UpsertOverwritesEveryField(t *testing.T) {
	store := repository.NewMemoryCandidateStore()
	ctx := context.Background()
	uc, m := newTestResumeUsecase(store, config.MergePolicyOverwrite)
	replyWith(m, `{"name":"Jane Doe","email":"jane@example.com","phone":"555-123-4567","skills":"Go","projects":"api"}`)
	replyWith(m, `{"name":"Jane Q. Doe","email":"jane@example.com","skills":"Rust"}`)

	first := uc.InterpretAndStore(ctx, "first resume")
	require.True(t, first.Success)
	second := uc.InterpretAndStore(ctx, "second resume")
	require.True(t, second.Success)

	assert.Contains(t, second.Trace, StateUpdated)
	assert.Equal(t, first.Record.ID, second.Record.ID)
	assert.Equal(t, 1, store.Len())

	got, err := store.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Jane Q. Doe", got.Name)
	assert.Equal(t, "Rust", *got.Skills)
	assert.Nil(t, got.Phone)
	assert.Nil(t, got.Projects)
}

func TestInterpretAndStore_KeepExistingFillsGapsOnly(t *testing.T) {
	store := repository.NewMemoryCandidateStore()
	ctx := context.Background()
	uc, m := newTestResumeUsecase(store, config.MergePolicyKeepExisting)
	replyWith(m, `{"name":"Jane Doe","email":"jane@example.com","phone":"555-123-4567","skills":"Go"}`)
	replyWith(m, `{"email":"jane@example.com","skills":"Rust"}`)

	require.True(t, uc.InterpretAndStore(ctx, "first").Success)
	require.True(t, uc.InterpretAndStore(ctx, "second").Success)

	got, err := store.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "555-123-4567", *got.Phone)
	assert.Equal(t, "Rust", *got.Skills)
	assert.Equal(t, 1, store.Len())
}

func TestInterpretAndStore_AnonymousAlwaysInserts(t *testing.T) {
	store := repository.NewMemoryCandidateStore()
	uc, m := newTestResumeUsecase(store, "")
	replyWith(m, `{"skills":"Go"}`)
	replyWith(m, `{"skills":"Go"}`)

	first := uc.InterpretAndStore(context.Background(), "resume")
	second := uc.InterpretAndStore(context.Background(), "resume")

	require.True(t, first.Success)
	require.True(t, second.Success)
	assert.Contains(t, second.Trace, StateInserted)
	assert.NotEqual(t, first.Record.ID, second.Record.ID)
	assert.Equal(t, util.PlaceholderName(fixedNow), first.Record.Name)
	assert.Nil(t, first.Record.Email)
	assert.Equal(t, 2, store.Len())
}

type failingCommitStore struct {
	*repository.MemoryCandidateStore
}

func (s failingCommitStore) Begin(ctx context.Context) (repository.CandidateTx, error) {
	tx, err := s.MemoryCandidateStore.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return failingCommitTx{tx}, nil
}

type failingCommitTx struct {
	repository.CandidateTx
}

func (failingCommitTx) Commit() error {
	return errors.New("connection reset during commit")
}

func TestInterpretAndStore_CommitFailureLeavesStateUnchanged(t *testing.T) {
	mem := repository.NewMemoryCandidateStore()
	ctx := context.Background()
	seed, m := newTestResumeUsecase(mem, "")
	replyWith(m, `{"name":"Jane Doe","email":"jane@example.com","skills":"Go"}`)
	require.True(t, seed.InterpretAndStore(ctx, "first").Success)

	before, err := mem.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)

	uc, m2 := newTestResumeUsecase(failingCommitStore{mem}, "")
	replyWith(m2, `{"name":"Other Name","email":"jane@example.com"}`)
	replyWith(m2, `{"name":"New Person","email":"new@example.com"}`)

	out := uc.InterpretAndStore(ctx, "second")
	assert.False(t, out.Success)
	assert.Equal(t, 500, out.Status)
	assert.ErrorIs(t, out.Err, apperror.ErrStorage)
	assert.Equal(t, StateError, out.Trace[len(out.Trace)-1])
	assert.NotContains(t, out.Trace, StateCommitted)

	after, err := mem.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, before, after)

	out = uc.InterpretAndStore(ctx, "third")
	assert.False(t, out.Success)
	_, err = mem.FindByEmail(ctx, "new@example.com")
	assert.ErrorIs(t, err, repository.ErrCandidateNotFound)
	assert.Equal(t, 1, mem.Len())
}

type failingBeginStore struct {
	*repository.MemoryCandidateStore
}

func (failingBeginStore) Begin(context.Context) (repository.CandidateTx, error) {
	return nil, errors.New("too many connections")
}

func TestInterpretAndStore_BeginFailureIsStorageError(t *testing.T) {
	uc, m := newTestResumeUsecase(failingBeginStore{repository.NewMemoryCandidateStore()}, "")
	replyWith(m, `{"name":"Jane Doe"}`)

	out := uc.InterpretAndStore(context.Background(), "resume")
	assert.ErrorIs(t, out.Err, apperror.ErrStorage)
	assert.Equal(t, "Failed to store resume data", out.Message)
}

func TestApplyFields_OverwriteClearsGaps(t *testing.T) {
	skills := "Go"
	rec := &model.CandidateRecord{Name: "Old", Skills: &skills}
	name := "New"
	applyFields(rec, parsedName(name), config.MergePolicyOverwrite, false)
	assert.Equal(t, "New", rec.Name)
	assert.Nil(t, rec.Skills)
}

func TestApplyFields_KeepExistingIgnoresPlaceholderName(t *testing.T) {
	rec := &model.CandidateRecord{Name: "Jane Doe"}
	applyFields(rec, parsedName(util.PlaceholderName(fixedNow)), config.MergePolicyKeepExisting, true)
	assert.Equal(t, "Jane Doe", rec.Name)
}

func TestLogDiagnostics_LevelFollowsKind(t *testing.T) {
	var buf strings.Builder
	uc, _ := newTestResumeUsecase(repository.NewMemoryCandidateStore(), "")
	uc.log = zerolog.New(&buf)

	uc.logDiagnostics([]error{
		apperror.New(apperror.KindParseDegraded, "used pattern extraction", nil),
		apperror.New(apperror.KindStorage, "write failed", nil),
	}, "cv.pdf")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"level":"warn"`)
	assert.Contains(t, lines[0], `"kind":"parse_degraded"`)
	assert.Contains(t, lines[1], `"level":"error"`)
	assert.Contains(t, lines[1], `"file":"cv.pdf"`)
}
