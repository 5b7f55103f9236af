package service

import (
	"context"
	"fmt"

	"github.com/dtroode/genoguard-server/internal/dualstore"
	"github.com/dtroode/genoguard-server/internal/logger"
	"github.com/dtroode/genoguard-server/internal/model"
)

// PushReport summarizes a local data push per record kind.
type PushReport struct {
	Sequences dualstore.MigrationReport
	Results   dualstore.MigrationReport
}

// Migration pushes data saved locally while the remote store was
// unreachable.
type Migration struct {
	sequences *Sequence
	analysis  *Analysis
	logger    *logger.Logger
}

func NewMigration(sequences *Sequence, analysis *Analysis, logger *logger.Logger) *Migration {
	return &Migration{sequences: sequences, analysis: analysis, logger: logger}
}

// Push sends sequences before results so results can reference them.
func (m *Migration) Push(ctx context.Context, identity model.Identity) (PushReport, error) {
	var report PushReport

	seqReport, err := m.sequences.PushLocal(ctx, identity)
	if err != nil {
		return report, fmt.Errorf("failed to push sequences: %w", err)
	}
	report.Sequences = seqReport

	resReport, err := m.analysis.PushLocal(ctx, identity)
	if err != nil {
		return report, fmt.Errorf("failed to push results: %w", err)
	}
	report.Results = resReport

	m.logger.Info("Migration service: local data pushed",
		"user_id", identity.UserID,
		"sequences_pushed", seqReport.Success,
		"sequences_failed", seqReport.Failed,
		"results_pushed", resReport.Success,
		"results_failed", resReport.Failed)
	return report, nil
}
