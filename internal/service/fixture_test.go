package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dtroode/genoguard-server/internal/background"
	"github.com/dtroode/genoguard-server/internal/cache/sqlite"
	"github.com/dtroode/genoguard-server/internal/dualstore"
	servermocks "github.com/dtroode/genoguard-server/internal/mocks"
	"github.com/dtroode/genoguard-server/internal/model"
	"github.com/dtroode/genoguard-server/internal/testutil"
)

type syncFixture struct {
	sequenceStore *servermocks.SequenceStore
	resultStore   *servermocks.ResultStore
	runner        *background.Runner

	sequences *Sequence
	analysis  *Analysis
	migration *Migration
	recorder  *analysisRecorder
}

type analysisRecorder struct {
	runs []string
}

func (r *analysisRecorder) ObserveAnalysis(engine, saved string) {
	r.runs = append(r.runs, engine+"/"+saved)
}

func newSyncFixture(t *testing.T) *syncFixture {
	t.Helper()

	log := testutil.MakeNoopLogger()
	cache, err := sqlite.NewStore(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	f := &syncFixture{
		sequenceStore: servermocks.NewSequenceStore(t),
		resultStore:   servermocks.NewResultStore(t),
		runner:        background.NewRunner(log, nil),
		recorder:      &analysisRecorder{},
	}
	// registered after the mocks so it runs before their expectations are checked
	t.Cleanup(func() { _ = f.runner.Close(context.Background()) })

	seqCollection := dualstore.New(dualstore.Options[model.Sequence]{
		Name:      SequencesCollection,
		Remote:    SequenceRemote{Store: f.sequenceStore},
		Cache:     cache,
		Scheduler: f.runner,
		Logger:    log,
	})
	resCollection := dualstore.New(dualstore.Options[model.AnalysisResult]{
		Name:      ResultsCollection,
		Remote:    ResultRemote{Store: f.resultStore},
		Cache:     cache,
		Scheduler: f.runner,
		Logger:    log,
	})

	f.sequences = NewSequence(seqCollection, log)
	f.analysis = NewAnalysis(resCollection, f.sequences, 0, log, f.recorder)
	f.migration = NewMigration(f.sequences, f.analysis, log)
	return f
}
