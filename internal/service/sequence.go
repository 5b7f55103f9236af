package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/genoguard-server/internal/dualstore"
	"github.com/dtroode/genoguard-server/internal/fasta"
	"github.com/dtroode/genoguard-server/internal/logger"
	"github.com/dtroode/genoguard-server/internal/model"
)

// SequencesCollection is the cache key suffix of sequence lists.
const SequencesCollection = "patient-sequences"

// Sequence manages uploaded DNA sequences.
type Sequence struct {
	collection *dualstore.Collection[model.Sequence]
	logger     *logger.Logger
	now        func() time.Time
}

func NewSequence(collection *dualstore.Collection[model.Sequence], logger *logger.Logger) *Sequence {
	return &Sequence{
		collection: collection,
		logger:     logger,
		now:        time.Now,
	}
}

// Upload validates and parses a sequence file and stores it.
func (s *Sequence) Upload(ctx context.Context, identity model.Identity, params model.UploadSequenceParams) (dualstore.WriteResult[model.Sequence], error) {
	if len(params.Content) == 0 || strings.TrimSpace(params.FileName) == "" {
		return dualstore.WriteResult[model.Sequence]{}, model.NewValidationError("file", "Please upload a DNA sequence file")
	}
	patientID := strings.TrimSpace(params.PatientID)
	if patientID == "" {
		return dualstore.WriteResult[model.Sequence]{}, model.NewValidationError("patientId", "Please enter a patient/sample ID")
	}

	parsed, err := fasta.Parse(params.FileName, params.Content)
	if err != nil {
		if errors.Is(err, fasta.ErrUnsupportedFormat) {
			return dualstore.WriteResult[model.Sequence]{}, model.NewValidationError("file", "Please upload a .fasta, .fa, or .txt file containing DNA sequence")
		}
		return dualstore.WriteResult[model.Sequence]{}, err
	}

	sequence := model.Sequence{
		OwnerID:        identity.RecordOwner(),
		PatientID:      patientID,
		FileName:       params.FileName,
		UploadedAt:     s.now().UTC(),
		SequenceData:   string(params.Content),
		SequenceLength: parsed.Length,
		FileSize:       parsed.Size,
	}

	res, err := s.collection.Create(ctx, identity, sequence)
	if err != nil {
		s.logger.Error("Sequence service: failed to store sequence", "patient_id", patientID, "error", err)
		return dualstore.WriteResult[model.Sequence]{}, err
	}

	s.logger.Info("Sequence service: sequence uploaded",
		"id", res.Record.ID,
		"patient_id", patientID,
		"length", parsed.Length,
		"saved", res.Saved.String())
	return res, nil
}

// List returns the caller's sequences.
func (s *Sequence) List(ctx context.Context, identity model.Identity) (dualstore.ReadResult[model.Sequence], error) {
	return s.collection.List(ctx, identity)
}

// Get returns one of the caller's sequences.
func (s *Sequence) Get(ctx context.Context, identity model.Identity, id uuid.UUID) (model.Sequence, error) {
	res, err := s.collection.List(ctx, identity)
	if err != nil {
		return model.Sequence{}, err
	}
	for _, seq := range res.Items {
		if seq.ID == id {
			return seq, nil
		}
	}
	return model.Sequence{}, model.ErrNotFound
}

// Delete removes a sequence and returns the remaining ones.
func (s *Sequence) Delete(ctx context.Context, identity model.Identity, id uuid.UUID) (dualstore.ReadResult[model.Sequence], error) {
	res, err := s.collection.Delete(ctx, identity, id)
	if err != nil {
		return dualstore.ReadResult[model.Sequence]{}, err
	}
	s.logger.Info("Sequence service: sequence deleted", "id", id, "source", res.Source.String())
	return res, nil
}

// PushLocal moves locally saved sequences to the remote store.
func (s *Sequence) PushLocal(ctx context.Context, identity model.Identity) (dualstore.MigrationReport, error) {
	return s.collection.PushLocal(ctx, identity)
}
