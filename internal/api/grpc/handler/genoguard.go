package handler

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/genoguard-server/internal/api/grpc/wire"
	"github.com/dtroode/genoguard-server/internal/dualstore"
	"github.com/dtroode/genoguard-server/internal/logger"
	"github.com/dtroode/genoguard-server/internal/model"
	"github.com/dtroode/genoguard-server/internal/service"
)

var _ wire.GenoGuardServer = (*GenoGuard)(nil)

var errNoIdentity = errors.New("no identity in context")

// SequenceService defines sequence operations.
type SequenceService interface {
	Upload(ctx context.Context, identity model.Identity, params model.UploadSequenceParams) (dualstore.WriteResult[model.Sequence], error)
	List(ctx context.Context, identity model.Identity) (dualstore.ReadResult[model.Sequence], error)
	Delete(ctx context.Context, identity model.Identity, id uuid.UUID) (dualstore.ReadResult[model.Sequence], error)
}

// AnalysisService defines analysis operations.
type AnalysisService interface {
	Run(ctx context.Context, identity model.Identity, params model.RunAnalysisParams) (dualstore.WriteResult[model.AnalysisResult], error)
	List(ctx context.Context, identity model.Identity) (dualstore.ReadResult[model.AnalysisResult], error)
	Delete(ctx context.Context, identity model.Identity, id uuid.UUID) (dualstore.ReadResult[model.AnalysisResult], error)
}

// MigrationService pushes locally saved data to the remote store.
type MigrationService interface {
	Push(ctx context.Context, identity model.Identity) (service.PushReport, error)
}

// GenoGuard handles gRPC endpoints for sequences and analysis results.
type GenoGuard struct {
	sequences      SequenceService
	analysis       AnalysisService
	migration      MigrationService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewGenoGuard creates a new GenoGuard handler.
func NewGenoGuard(
	sequences SequenceService,
	analysis AnalysisService,
	migration MigrationService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *GenoGuard {
	return &GenoGuard{
		sequences:      sequences,
		analysis:       analysis,
		migration:      migration,
		contextManager: contextManager,
		logger:         logger,
	}
}

// UploadSequence stores a sequence file.
func (h *GenoGuard) UploadSequence(ctx context.Context, req *wire.UploadSequenceRequest) (*wire.UploadSequenceResponse, error) {
	h.logger.Debug("GenoGuard handler: processing upload request",
		"patient_id", req.PatientID,
		"file_name", req.FileName,
		"size", len(req.Content))

	identity, err := h.identity(ctx)
	if err != nil {
		return nil, err
	}

	res, err := h.sequences.Upload(ctx, identity, model.UploadSequenceParams{
		PatientID: req.PatientID,
		FileName:  req.FileName,
		Content:   req.Content,
	})
	if err != nil {
		h.logger.Error("GenoGuard handler: upload failed",
			"user_id", identity.UserID,
			"error", err)
		return nil, handleError(err)
	}

	return &wire.UploadSequenceResponse{
		Sequence: res.Record,
		Status:   h.writeStatus(identity, res.Saved, res.Outcome, res.RemoteErr),
	}, nil
}

// ListSequences returns the caller's sequences.
func (h *GenoGuard) ListSequences(ctx context.Context, _ *wire.Empty) (*wire.ListSequencesResponse, error) {
	identity, err := h.identity(ctx)
	if err != nil {
		return nil, err
	}

	res, err := h.sequences.List(ctx, identity)
	if err != nil {
		h.logger.Error("GenoGuard handler: list sequences failed",
			"user_id", identity.UserID,
			"error", err)
		return nil, handleError(err)
	}

	return toSequenceList(res), nil
}

// DeleteSequence removes a sequence and returns the remaining ones.
func (h *GenoGuard) DeleteSequence(ctx context.Context, req *wire.DeleteRequest) (*wire.ListSequencesResponse, error) {
	identity, err := h.identity(ctx)
	if err != nil {
		return nil, err
	}
	if req.ID == uuid.Nil {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	res, err := h.sequences.Delete(ctx, identity, req.ID)
	if err != nil {
		h.logger.Error("GenoGuard handler: delete sequence failed",
			"user_id", identity.UserID,
			"id", req.ID,
			"error", err)
		return nil, handleError(err)
	}

	return toSequenceList(res), nil
}

// RunAnalysis produces a mutation report for a sequence.
func (h *GenoGuard) RunAnalysis(ctx context.Context, req *wire.RunAnalysisRequest) (*wire.RunAnalysisResponse, error) {
	h.logger.Debug("GenoGuard handler: processing analysis request",
		"sequence_id", req.SequenceID)

	identity, err := h.identity(ctx)
	if err != nil {
		return nil, err
	}

	res, err := h.analysis.Run(ctx, identity, model.RunAnalysisParams{
		SequenceID: req.SequenceID,
		Name:       req.Name,
	})
	if err != nil {
		h.logger.Error("GenoGuard handler: analysis failed",
			"user_id", identity.UserID,
			"sequence_id", req.SequenceID,
			"error", err)
		return nil, handleError(err)
	}

	return &wire.RunAnalysisResponse{
		Result: res.Record,
		Status: h.writeStatus(identity, res.Saved, res.Outcome, res.RemoteErr),
	}, nil
}

// ListResults returns the caller's analysis results.
func (h *GenoGuard) ListResults(ctx context.Context, _ *wire.Empty) (*wire.ListResultsResponse, error) {
	identity, err := h.identity(ctx)
	if err != nil {
		return nil, err
	}

	res, err := h.analysis.List(ctx, identity)
	if err != nil {
		h.logger.Error("GenoGuard handler: list results failed",
			"user_id", identity.UserID,
			"error", err)
		return nil, handleError(err)
	}

	return toResultList(res), nil
}

// DeleteResult removes a result and returns the remaining ones.
func (h *GenoGuard) DeleteResult(ctx context.Context, req *wire.DeleteRequest) (*wire.ListResultsResponse, error) {
	identity, err := h.identity(ctx)
	if err != nil {
		return nil, err
	}
	if req.ID == uuid.Nil {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	res, err := h.analysis.Delete(ctx, identity, req.ID)
	if err != nil {
		h.logger.Error("GenoGuard handler: delete result failed",
			"user_id", identity.UserID,
			"id", req.ID,
			"error", err)
		return nil, handleError(err)
	}

	return toResultList(res), nil
}

// PushLocalData pushes records saved locally while the remote was down.
func (h *GenoGuard) PushLocalData(ctx context.Context, _ *wire.Empty) (*wire.PushLocalDataResponse, error) {
	identity, err := h.identity(ctx)
	if err != nil {
		return nil, err
	}

	report, err := h.migration.Push(ctx, identity)
	if err != nil {
		h.logger.Error("GenoGuard handler: push local data failed",
			"user_id", identity.UserID,
			"error", err)
		return nil, handleError(err)
	}

	return &wire.PushLocalDataResponse{
		Sequences: wire.PushCount{Success: report.Sequences.Success, Failed: report.Sequences.Failed},
		Results:   wire.PushCount{Success: report.Results.Success, Failed: report.Results.Failed},
	}, nil
}

func (h *GenoGuard) identity(ctx context.Context) (model.Identity, error) {
	identity, ok := h.contextManager.GetIdentityFromContext(ctx)
	if !ok {
		return model.Identity{}, status.Error(codes.Unauthenticated, errNoIdentity.Error())
	}
	return identity, nil
}

const syncFailedMessage = "Saved locally, cloud sync failed"

// writeStatus reports the save target. Remote error details stay in the log.
func (h *GenoGuard) writeStatus(identity model.Identity, saved dualstore.SaveTarget, outcome dualstore.RemoteOutcome, remoteErr error) wire.WriteStatus {
	ws := wire.WriteStatus{
		Saved:   saved.String(),
		Outcome: outcome.String(),
	}
	if saved == dualstore.SavedLocal && outcome == dualstore.RemoteFailed {
		h.logger.Warn("GenoGuard handler: remote save failed, kept locally",
			"user_id", identity.UserID,
			"error", remoteErr)
		ws.Message = syncFailedMessage
	}
	return ws
}

func readStatus(source dualstore.Source, outcome dualstore.RemoteOutcome) wire.ReadStatus {
	return wire.ReadStatus{Source: source.String(), Outcome: outcome.String()}
}

func toSequenceList(res dualstore.ReadResult[model.Sequence]) *wire.ListSequencesResponse {
	return &wire.ListSequencesResponse{
		Sequences: res.Items,
		Status:    readStatus(res.Source, res.Outcome),
	}
}

func toResultList(res dualstore.ReadResult[model.AnalysisResult]) *wire.ListResultsResponse {
	return &wire.ListResultsResponse{
		Results: res.Items,
		Status:  readStatus(res.Source, res.Outcome),
	}
}
