package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	handlermocks "github.com/dtroode/genoguard-server/internal/api/grpc/handler/mocks"
	"github.com/dtroode/genoguard-server/internal/api/grpc/wire"
	"github.com/dtroode/genoguard-server/internal/dualstore"
	"github.com/dtroode/genoguard-server/internal/mocks"
	"github.com/dtroode/genoguard-server/internal/model"
	"github.com/dtroode/genoguard-server/internal/service"
	"github.com/dtroode/genoguard-server/internal/testutil"
)

type genoGuardFixture struct {
	sequences *handlermocks.SequenceService
	analysis  *handlermocks.AnalysisService
	migration *handlermocks.MigrationService
	ctxMgr    *mocks.ContextManager
	identity  model.Identity
	h         *GenoGuard
}

func newGenoGuardFixture(t *testing.T) genoGuardFixture {
	t.Helper()

	f := genoGuardFixture{
		sequences: handlermocks.NewSequenceService(t),
		analysis:  handlermocks.NewAnalysisService(t),
		migration: handlermocks.NewMigrationService(t),
		ctxMgr:    mocks.NewContextManager(t),
		identity:  model.Identity{UserID: uuid.New(), Email: "doc@clinic.org"},
	}
	f.h = NewGenoGuard(f.sequences, f.analysis, f.migration, f.ctxMgr, testutil.MakeNoopLogger())
	return f
}

func (f genoGuardFixture) authenticated() {
	f.ctxMgr.On("GetIdentityFromContext", mock.Anything).Return(f.identity, true)
}

func TestGenoGuard_NoIdentity(t *testing.T) {
	t.Parallel()

	f := newGenoGuardFixture(t)
	f.ctxMgr.On("GetIdentityFromContext", mock.Anything).Return(model.Identity{}, false)

	_, err := f.h.ListSequences(context.Background(), &wire.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = f.h.RunAnalysis(context.Background(), &wire.RunAnalysisRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestGenoGuard_UploadSequence(t *testing.T) {
	t.Parallel()

	f := newGenoGuardFixture(t)
	f.authenticated()

	offline := errors.New("connection refused")
	seq := model.Sequence{ID: uuid.New(), PatientID: "P1", FileName: "s.fasta"}
	params := model.UploadSequenceParams{PatientID: "P1", FileName: "s.fasta", Content: []byte(">a\nACGT")}
	f.sequences.On("Upload", mock.Anything, f.identity, params).Return(dualstore.WriteResult[model.Sequence]{
		Record:    seq,
		Saved:     dualstore.SavedLocal,
		Outcome:   dualstore.RemoteFailed,
		RemoteErr: offline,
	}, nil)

	resp, err := f.h.UploadSequence(context.Background(), &wire.UploadSequenceRequest{
		PatientID: params.PatientID,
		FileName:  params.FileName,
		Content:   params.Content,
	})
	require.NoError(t, err)
	assert.Equal(t, seq, resp.Sequence)
	assert.Equal(t, wire.WriteStatus{Saved: "local", Outcome: "failed", Message: "Saved locally, cloud sync failed"}, resp.Status)
	assert.NotContains(t, resp.Status.Message, offline.Error())
}

func TestGenoGuard_UploadSequence_Invalid(t *testing.T) {
	t.Parallel()

	f := newGenoGuardFixture(t)
	f.authenticated()
	f.sequences.On("Upload", mock.Anything, f.identity, mock.Anything).
		Return(dualstore.WriteResult[model.Sequence]{}, model.NewValidationError("file", "Please upload a DNA sequence file"))

	_, err := f.h.UploadSequence(context.Background(), &wire.UploadSequenceRequest{PatientID: "P1"})
	st, _ := status.FromError(err)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Equal(t, "Please upload a DNA sequence file", st.Message())
}

func TestGenoGuard_ListSequences(t *testing.T) {
	t.Parallel()

	f := newGenoGuardFixture(t)
	f.authenticated()
	items := []model.Sequence{{ID: uuid.New()}, {ID: uuid.New()}}
	f.sequences.On("List", mock.Anything, f.identity).Return(dualstore.ReadResult[model.Sequence]{
		Items:   items,
		Source:  dualstore.SourceRemote,
		Outcome: dualstore.RemoteSucceeded,
	}, nil)

	resp, err := f.h.ListSequences(context.Background(), &wire.Empty{})
	require.NoError(t, err)
	assert.Len(t, resp.Sequences, 2)
	assert.Equal(t, wire.ReadStatus{Source: "remote", Outcome: "succeeded"}, resp.Status)
}

func TestGenoGuard_DeleteSequence(t *testing.T) {
	t.Parallel()

	f := newGenoGuardFixture(t)
	f.authenticated()
	id := uuid.New()
	f.sequences.On("Delete", mock.Anything, f.identity, id).Return(dualstore.ReadResult[model.Sequence]{
		Items:   []model.Sequence{},
		Source:  dualstore.SourceLocal,
		Outcome: dualstore.RemoteFailed,
	}, nil)

	_, err := f.h.DeleteSequence(context.Background(), &wire.DeleteRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	resp, err := f.h.DeleteSequence(context.Background(), &wire.DeleteRequest{ID: id})
	require.NoError(t, err)
	assert.Empty(t, resp.Sequences)
	assert.Equal(t, "local", resp.Status.Source)
}

func TestGenoGuard_RunAnalysis(t *testing.T) {
	t.Parallel()

	f := newGenoGuardFixture(t)
	f.authenticated()
	seqID := uuid.New()
	result := model.AnalysisResult{ID: uuid.New(), Name: "P1 - Pancreatic Cancer Analysis", MutationsFound: 5}
	f.analysis.On("Run", mock.Anything, f.identity, model.RunAnalysisParams{SequenceID: seqID}).
		Return(dualstore.WriteResult[model.AnalysisResult]{Record: result, Saved: dualstore.SavedRemote, Outcome: dualstore.RemoteSucceeded}, nil)
	f.analysis.On("Run", mock.Anything, f.identity, model.RunAnalysisParams{SequenceID: uuid.Nil}).
		Return(dualstore.WriteResult[model.AnalysisResult]{}, model.NewValidationError("sequenceId", "Please select a patient sequence"))

	resp, err := f.h.RunAnalysis(context.Background(), &wire.RunAnalysisRequest{SequenceID: seqID})
	require.NoError(t, err)
	assert.Equal(t, result, resp.Result)
	assert.Equal(t, wire.WriteStatus{Saved: "remote", Outcome: "succeeded"}, resp.Status)

	_, err = f.h.RunAnalysis(context.Background(), &wire.RunAnalysisRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGenoGuard_Results(t *testing.T) {
	t.Parallel()

	f := newGenoGuardFixture(t)
	f.authenticated()
	id := uuid.New()
	f.analysis.On("List", mock.Anything, f.identity).Return(dualstore.ReadResult[model.AnalysisResult]{
		Items:  []model.AnalysisResult{{ID: id}},
		Source: dualstore.SourceLocal,
	}, nil)
	f.analysis.On("Delete", mock.Anything, f.identity, id).Return(dualstore.ReadResult[model.AnalysisResult]{}, errors.New("cache unavailable"))

	resp, err := f.h.ListResults(context.Background(), &wire.Empty{})
	require.NoError(t, err)
	assert.Len(t, resp.Results, 1)

	_, err = f.h.DeleteResult(context.Background(), &wire.DeleteRequest{ID: id})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestGenoGuard_PushLocalData(t *testing.T) {
	t.Parallel()

	f := newGenoGuardFixture(t)
	f.authenticated()
	f.migration.On("Push", mock.Anything, f.identity).Return(service.PushReport{
		Sequences: dualstore.MigrationReport{Success: 2},
		Results:   dualstore.MigrationReport{Success: 1, Failed: 1},
	}, nil)

	resp, err := f.h.PushLocalData(context.Background(), &wire.Empty{})
	require.NoError(t, err)
	assert.Equal(t, wire.PushCount{Success: 2}, resp.Sequences)
	assert.Equal(t, wire.PushCount{Success: 1, Failed: 1}, resp.Results)
}
