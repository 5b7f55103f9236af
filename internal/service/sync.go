package service

import (
	"time"

	"github.com/dtroode/genoguard-server/internal/dualstore"
	"github.com/dtroode/genoguard-server/internal/logger"
	"github.com/dtroode/genoguard-server/internal/mirror"
	"github.com/dtroode/genoguard-server/internal/model"
)

// SyncDeps are the collaborators of the dual-store services.
type SyncDeps struct {
	Sequences   model.SequenceStore
	Results     model.ResultStore
	Cache       model.LocalCache
	Scheduler   dualstore.Scheduler
	EmptyPolicy dualstore.EmptyPolicy
	// Mirror is nil when file mirroring is disabled.
	Mirror           *mirror.Mirror
	SyncRecorder     dualstore.Recorder
	AnalysisRecorder AnalysisRecorder
	AnalysisDelay    time.Duration
	Logger           *logger.Logger
}

// NewSync builds the sequence, analysis and migration services over one
// cache and scheduler.
func NewSync(deps SyncDeps) (*Sequence, *Analysis, *Migration) {
	seqOpts := dualstore.Options[model.Sequence]{
		Name:        SequencesCollection,
		Remote:      SequenceRemote{Store: deps.Sequences},
		Cache:       deps.Cache,
		Scheduler:   deps.Scheduler,
		Logger:      deps.Logger,
		Recorder:    deps.SyncRecorder,
		EmptyPolicy: deps.EmptyPolicy,
	}
	resOpts := dualstore.Options[model.AnalysisResult]{
		Name:        ResultsCollection,
		Remote:      ResultRemote{Store: deps.Results},
		Cache:       deps.Cache,
		Scheduler:   deps.Scheduler,
		Logger:      deps.Logger,
		Recorder:    deps.SyncRecorder,
		EmptyPolicy: deps.EmptyPolicy,
	}
	if deps.Mirror != nil {
		seqOpts.AfterCreate = deps.Mirror.Sequence
		resOpts.AfterCreate = deps.Mirror.Result
	}

	sequences := NewSequence(dualstore.New(seqOpts), deps.Logger)
	analysis := NewAnalysis(dualstore.New(resOpts), sequences, deps.AnalysisDelay, deps.Logger, deps.AnalysisRecorder)
	migration := NewMigration(sequences, analysis, deps.Logger)

	return sequences, analysis, migration
}
