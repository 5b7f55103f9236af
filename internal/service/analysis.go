package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/genoguard-server/internal/analysis"
	"github.com/dtroode/genoguard-server/internal/dualstore"
	"github.com/dtroode/genoguard-server/internal/logger"
	"github.com/dtroode/genoguard-server/internal/model"
)

// ResultsCollection is the cache key suffix of analysis result lists.
const ResultsCollection = "analysis-results"

// AnalysisRecorder observes analysis runs.
type AnalysisRecorder interface {
	ObserveAnalysis(engine, saved string)
}

// Analysis runs the stub mutation analysis and manages its results.
type Analysis struct {
	results   *dualstore.Collection[model.AnalysisResult]
	sequences *Sequence
	delay     time.Duration
	logger    *logger.Logger
	recorder  AnalysisRecorder
	now       func() time.Time
}

// NewAnalysis creates an Analysis. recorder may be nil.
func NewAnalysis(
	results *dualstore.Collection[model.AnalysisResult],
	sequences *Sequence,
	delay time.Duration,
	logger *logger.Logger,
	recorder AnalysisRecorder,
) *Analysis {
	return &Analysis{
		results:   results,
		sequences: sequences,
		delay:     delay,
		logger:    logger,
		recorder:  recorder,
		now:       time.Now,
	}
}

// Run produces the panel report for a sequence after the configured delay.
// An empty name falls back to the default analysis name.
func (a *Analysis) Run(ctx context.Context, identity model.Identity, params model.RunAnalysisParams) (dualstore.WriteResult[model.AnalysisResult], error) {
	if params.SequenceID == uuid.Nil {
		return dualstore.WriteResult[model.AnalysisResult]{}, model.NewValidationError("sequenceId", "Please select a patient sequence")
	}
	if params.Name != "" && strings.TrimSpace(params.Name) == "" {
		return dualstore.WriteResult[model.AnalysisResult]{}, model.NewValidationError("name", "Please enter an analysis name")
	}

	sequence, err := a.sequences.Get(ctx, identity, params.SequenceID)
	if err != nil {
		return dualstore.WriteResult[model.AnalysisResult]{}, fmt.Errorf("failed to load sequence: %w", err)
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		name = analysis.DefaultName(sequence.PatientID)
	}

	a.logger.Debug("Analysis service: analysis started", "sequence_id", sequence.ID, "name", name)
	if err := a.wait(ctx); err != nil {
		return dualstore.WriteResult[model.AnalysisResult]{}, err
	}

	report := analysis.Report(sequence, name)
	report.OwnerID = identity.RecordOwner()
	report.CreatedAt = a.now().UTC()
	if err := analysis.Validate(report); err != nil {
		return dualstore.WriteResult[model.AnalysisResult]{}, fmt.Errorf("invalid report: %w", err)
	}

	res, err := a.results.Create(ctx, identity, report)
	if err != nil {
		a.logger.Error("Analysis service: failed to store result", "sequence_id", sequence.ID, "error", err)
		return dualstore.WriteResult[model.AnalysisResult]{}, err
	}

	if a.recorder != nil {
		a.recorder.ObserveAnalysis(analysis.StubEngine, res.Saved.String())
	}
	a.logger.Info("Analysis service: analysis completed",
		"id", res.Record.ID,
		"mutations", res.Record.MutationsFound,
		"saved", res.Saved.String())
	return res, nil
}

// List returns the caller's analysis results.
func (a *Analysis) List(ctx context.Context, identity model.Identity) (dualstore.ReadResult[model.AnalysisResult], error) {
	return a.results.List(ctx, identity)
}

// Delete removes a result and returns the remaining ones.
func (a *Analysis) Delete(ctx context.Context, identity model.Identity, id uuid.UUID) (dualstore.ReadResult[model.AnalysisResult], error) {
	res, err := a.results.Delete(ctx, identity, id)
	if err != nil {
		return dualstore.ReadResult[model.AnalysisResult]{}, err
	}
	a.logger.Info("Analysis service: result deleted", "id", id, "source", res.Source.String())
	return res, nil
}

// PushLocal moves locally saved results to the remote store.
func (a *Analysis) PushLocal(ctx context.Context, identity model.Identity) (dualstore.MigrationReport, error) {
	return a.results.PushLocal(ctx, identity)
}

func (a *Analysis) wait(ctx context.Context) error {
	if a.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(a.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
