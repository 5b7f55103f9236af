package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SequenceStore defines remote persistence operations for patient sequences.
type SequenceStore interface {
	Create(ctx context.Context, sequence Sequence) (Sequence, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]Sequence, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
	UpdateExternalRef(ctx context.Context, userID uuid.UUID, id uuid.UUID, ref string) error
}

// Sequence is an uploaded DNA sequence file.
type Sequence struct {
	ID             uuid.UUID `json:"id"`
	OwnerID        uuid.UUID `json:"ownerId"`
	PatientID      string    `json:"patientId"`
	FileName       string    `json:"name"`
	UploadedAt     time.Time `json:"uploadDate"`
	SequenceData   string    `json:"sequenceData,omitempty"`
	SequenceLength int       `json:"sequenceLength"`
	FileSize       string    `json:"size"`
	ExternalRef    string    `json:"externalRef,omitempty"`
}

// RecordID returns the sequence identifier.
func (s Sequence) RecordID() uuid.UUID { return s.ID }

// WithID returns a copy of the sequence carrying id.
func (s Sequence) WithID(id uuid.UUID) Sequence {
	s.ID = id
	return s
}

// UploadSequenceParams contains user input for a sequence upload.
type UploadSequenceParams struct {
	PatientID string
	FileName  string
	Content   []byte
}
