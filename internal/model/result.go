package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ResultStore defines remote persistence operations for analysis results.
type ResultStore interface {
	Create(ctx context.Context, result AnalysisResult) (AnalysisResult, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]AnalysisResult, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
	UpdateExternalReportRef(ctx context.Context, userID uuid.UUID, id uuid.UUID, ref string) error
}

// ResultStatus is the terminal state of an analysis.
type ResultStatus string

const (
	ResultStatusCompleted ResultStatus = "Completed"
	ResultStatusError     ResultStatus = "Error"
)

// Mutation is a single detected variant.
type Mutation struct {
	Gene          string `json:"gene"`
	Position      int    `json:"position"`
	Type          string `json:"type"`
	Reference     string `json:"reference"`
	Variant       string `json:"variant"`
	Impact        string `json:"impact"`
	Pathogenicity string `json:"pathogenicity"`
}

// AnalysisResult is a mutation report produced for a sequence.
type AnalysisResult struct {
	ID                     uuid.UUID    `json:"id"`
	OwnerID                uuid.UUID    `json:"ownerId"`
	SequenceID             *uuid.UUID   `json:"sequenceId,omitempty"`
	Name                   string       `json:"name"`
	PatientID              string       `json:"patientId"`
	GenesAnalyzed          []string     `json:"genesAnalyzed"`
	MutationsFound         int          `json:"mutationsFound"`
	MutatedGenes           []string     `json:"mutatedGenes"`
	Mutations              []Mutation   `json:"mutations"`
	Similarity             float64      `json:"similarity"`
	Status                 ResultStatus `json:"status"`
	CancerType             string       `json:"cancerType"`
	Pathogenicity          string       `json:"pathogenicity"`
	ClinicalInterpretation string       `json:"clinicalInterpretation"`
	Prognosis              string       `json:"prognosis"`
	Treatment              string       `json:"treatment"`
	ImmuneMarkers          []string     `json:"immuneMarkers"`
	ExternalReportRef      string       `json:"externalReportRef,omitempty"`
	CreatedAt              time.Time    `json:"analysisDate"`
}

// RecordID returns the result identifier.
func (r AnalysisResult) RecordID() uuid.UUID { return r.ID }

// WithID returns a copy of the result carrying id.
func (r AnalysisResult) WithID(id uuid.UUID) AnalysisResult {
	r.ID = id
	return r
}

// RunAnalysisParams contains user input for an analysis run.
type RunAnalysisParams struct {
	SequenceID uuid.UUID
	Name       string
}
