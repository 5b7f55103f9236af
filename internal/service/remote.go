package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/genoguard-server/internal/dualstore"
	"github.com/dtroode/genoguard-server/internal/model"
)

var (
	_ dualstore.RemoteStore[model.Sequence]       = SequenceRemote{}
	_ dualstore.RemoteStore[model.AnalysisResult] = ResultRemote{}
)

// SequenceRemote adapts a SequenceStore to the sync layer.
type SequenceRemote struct {
	Store model.SequenceStore
}

func (r SequenceRemote) List(ctx context.Context, owner uuid.UUID) ([]model.Sequence, error) {
	return r.Store.GetByUserID(ctx, owner)
}

func (r SequenceRemote) Insert(ctx context.Context, owner uuid.UUID, s model.Sequence) (model.Sequence, error) {
	s.OwnerID = owner
	return r.Store.Create(ctx, s)
}

func (r SequenceRemote) Delete(ctx context.Context, owner uuid.UUID, id uuid.UUID) error {
	return r.Store.Delete(ctx, owner, id)
}

// ResultRemote adapts a ResultStore to the sync layer.
type ResultRemote struct {
	Store model.ResultStore
}

func (r ResultRemote) List(ctx context.Context, owner uuid.UUID) ([]model.AnalysisResult, error) {
	return r.Store.GetByUserID(ctx, owner)
}

func (r ResultRemote) Insert(ctx context.Context, owner uuid.UUID, res model.AnalysisResult) (model.AnalysisResult, error) {
	res.OwnerID = owner
	return r.Store.Create(ctx, res)
}

func (r ResultRemote) Delete(ctx context.Context, owner uuid.UUID, id uuid.UUID) error {
	return r.Store.Delete(ctx, owner, id)
}
