package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/genoguard-server/internal/analysis"
	"github.com/dtroode/genoguard-server/internal/mocks"
	"github.com/dtroode/genoguard-server/internal/model"
	"github.com/dtroode/genoguard-server/internal/testutil"
)

type recorderStub struct{ seen []string }

func (r *recorderStub) ObserveMirror(kind, result string) { r.seen = append(r.seen, kind+":"+result) }

func TestKeys(t *testing.T) {
	owner := uuid.MustParse("0b5c5a4e-6f47-4c55-9f5f-6a1e7c3f2d10")
	seq := model.Sequence{ID: uuid.MustParse("3d2c1b0a-9f8e-4d7c-8b6a-5f4e3d2c1b0a"), PatientID: "P-001", FileName: "tumor/biopsy.fasta"}
	assert.Equal(t, "GenoGuard/Sequences/0b5c5a4e-6f47-4c55-9f5f-6a1e7c3f2d10/P-001_3d2c1b0a-9f8e-4d7c-8b6a-5f4e3d2c1b0a_tumor_biopsy.fasta", SequenceKey(owner, seq))

	res := model.AnalysisResult{ID: uuid.MustParse("9a0e3f55-5b4c-4e4b-8d0a-3c1f1e0c2b7a")}
	assert.Equal(t, "GenoGuard/Results/0b5c5a4e-6f47-4c55-9f5f-6a1e7c3f2d10/9a0e3f55-5b4c-4e4b-8d0a-3c1f1e0c2b7a.json", ResultKey(owner, res))

	assert.Equal(t, "GenoGuard/Sequences/"+owner.String()+"/unnamed_"+uuid.Nil.String()+"_unnamed", SequenceKey(owner, model.Sequence{}))
}

func TestSequenceKey_RepeatedUploadsDoNotCollide(t *testing.T) {
	owner := uuid.New()
	first := model.Sequence{ID: uuid.New(), PatientID: "P1", FileName: "s.fasta"}
	second := first
	second.ID = uuid.New()

	assert.NotEqual(t, SequenceKey(owner, first), SequenceKey(owner, second))
}

func TestMirror_Sequence(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	seq := model.Sequence{ID: uuid.New(), PatientID: "P1", FileName: "s.fasta", SequenceData: ">S1\nACGT\nACGT"}
	key := SequenceKey(owner, seq)

	storage := mocks.NewStorage(t)
	sequences := mocks.NewSequenceStore(t)
	rec := &recorderStub{}

	storage.On("Upload", ctx, key, mock.MatchedBy(func(r io.Reader) bool {
		data, _ := io.ReadAll(r)
		return string(data) == seq.SequenceData
	}), "text/plain").Return(nil).Once()
	sequences.On("UpdateExternalRef", ctx, owner, seq.ID, key).Return(nil).Once()

	m := New(storage, sequences, mocks.NewResultStore(t), testutil.MakeNoopLogger(), rec)
	require.NoError(t, m.Sequence(ctx, owner, seq))
	assert.Equal(t, []string{"sequence:uploaded"}, rec.seen)
}

func TestMirror_SequenceUploadFails(t *testing.T) {
	ctx := context.Background()
	storage := mocks.NewStorage(t)
	sequences := mocks.NewSequenceStore(t)
	rec := &recorderStub{}

	storage.On("Upload", ctx, mock.Anything, mock.Anything, "text/plain").Return(errors.New("offline")).Once()

	m := New(storage, sequences, mocks.NewResultStore(t), testutil.MakeNoopLogger(), rec)
	err := m.Sequence(ctx, uuid.New(), model.Sequence{ID: uuid.New()})
	assert.ErrorContains(t, err, "failed to mirror sequence")
	assert.Equal(t, []string{"sequence:failed"}, rec.seen)
	sequences.AssertNotCalled(t, "UpdateExternalRef", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMirror_Result(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	res := analysis.Report(model.Sequence{PatientID: "P1"}, analysis.DefaultName("P1"))
	res.ID = uuid.New()
	key := ResultKey(owner, res)

	storage := mocks.NewStorage(t)
	results := mocks.NewResultStore(t)

	var uploaded Report
	storage.On("Upload", ctx, key, mock.Anything, "application/json").Run(func(args mock.Arguments) {
		data, err := io.ReadAll(args.Get(2).(io.Reader))
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &uploaded))
	}).Return(nil).Once()
	results.On("UpdateExternalReportRef", ctx, owner, res.ID, key).Return(nil).Once()

	m := New(storage, mocks.NewSequenceStore(t), results, testutil.MakeNoopLogger(), nil)
	m.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	require.NoError(t, m.Result(ctx, owner, res))

	assert.Equal(t, "GenoGuard Mutation Report - P1 - Pancreatic Cancer Analysis", uploaded.Title)
	assert.Equal(t, analysis.StubEngine, uploaded.Engine)
	assert.Equal(t, res.MutationsFound, len(uploaded.Result.Mutations))
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), uploaded.GeneratedAt)
}

func TestMirror_ResultRefUpdateFails(t *testing.T) {
	ctx := context.Background()
	storage := mocks.NewStorage(t)
	results := mocks.NewResultStore(t)

	storage.On("Upload", ctx, mock.Anything, mock.Anything, "application/json").Return(nil).Once()
	results.On("UpdateExternalReportRef", ctx, mock.Anything, mock.Anything, mock.Anything).Return(model.ErrNotFound).Once()

	m := New(storage, mocks.NewSequenceStore(t), results, testutil.MakeNoopLogger(), nil)
	err := m.Result(ctx, uuid.New(), model.AnalysisResult{ID: uuid.New()})
	assert.ErrorIs(t, err, model.ErrNotFound)
}
