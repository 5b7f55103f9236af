// Package mirror copies confirmed records to an object store under the
// GenoGuard folder layout. Uploads are best effort: failures are returned to
// the background runner, which logs them, and are never retried.
package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/genoguard-server/internal/analysis"
	"github.com/dtroode/genoguard-server/internal/logger"
	"github.com/dtroode/genoguard-server/internal/model"
)

const (
	rootFolder      = "GenoGuard"
	sequencesFolder = "Sequences"
	resultsFolder   = "Results"
)

// Recorder observes mirror uploads.
type Recorder interface {
	ObserveMirror(kind, result string)
}

// Mirror uploads sequences and reports and records the object key remotely.
type Mirror struct {
	storage   model.Storage
	sequences model.SequenceStore
	results   model.ResultStore
	logger    *logger.Logger
	recorder  Recorder
	now       func() time.Time
}

// New creates a Mirror. recorder may be nil.
func New(storage model.Storage, sequences model.SequenceStore, results model.ResultStore, logger *logger.Logger, recorder Recorder) *Mirror {
	return &Mirror{
		storage:   storage,
		sequences: sequences,
		results:   results,
		logger:    logger,
		recorder:  recorder,
		now:       time.Now,
	}
}

// SequenceKey is the object key of a sequence file. The record id keeps
// repeated uploads of the same patient file apart.
func SequenceKey(owner uuid.UUID, s model.Sequence) string {
	name := sanitize(s.PatientID) + "_" + s.ID.String() + "_" + sanitize(s.FileName)
	return path.Join(rootFolder, sequencesFolder, owner.String(), name)
}

// ResultKey is the object key of a report document.
func ResultKey(owner uuid.UUID, r model.AnalysisResult) string {
	return path.Join(rootFolder, resultsFolder, owner.String(), r.ID.String()+".json")
}

// Sequence uploads the raw sequence text and stores the key on the record.
func (m *Mirror) Sequence(ctx context.Context, owner uuid.UUID, s model.Sequence) error {
	key := SequenceKey(owner, s)

	if err := m.storage.Upload(ctx, key, strings.NewReader(s.SequenceData), "text/plain"); err != nil {
		m.observe("sequence", "failed")
		return fmt.Errorf("failed to mirror sequence: %w", err)
	}
	m.observe("sequence", "uploaded")

	if err := m.sequences.UpdateExternalRef(ctx, owner, s.ID, key); err != nil {
		return fmt.Errorf("failed to record sequence mirror key: %w", err)
	}

	m.logger.Debug("Mirror: sequence uploaded", "key", key)
	return nil
}

// Result uploads the report document and stores the key on the record.
func (m *Mirror) Result(ctx context.Context, owner uuid.UUID, r model.AnalysisResult) error {
	key := ResultKey(owner, r)

	doc, err := RenderReport(r, m.now())
	if err != nil {
		return err
	}

	if err := m.storage.Upload(ctx, key, bytes.NewReader(doc), "application/json"); err != nil {
		m.observe("report", "failed")
		return fmt.Errorf("failed to mirror report: %w", err)
	}
	m.observe("report", "uploaded")

	if err := m.results.UpdateExternalReportRef(ctx, owner, r.ID, key); err != nil {
		return fmt.Errorf("failed to record report mirror key: %w", err)
	}

	m.logger.Debug("Mirror: report uploaded", "key", key)
	return nil
}

func (m *Mirror) observe(kind, result string) {
	if m.recorder != nil {
		m.recorder.ObserveMirror(kind, result)
	}
}

// Report is the document written for an analysis result.
type Report struct {
	Title       string               `json:"title"`
	GeneratedAt time.Time            `json:"generatedAt"`
	Engine      string               `json:"engine"`
	Result      model.AnalysisResult `json:"result"`
}

// RenderReport encodes r as an indented report document.
func RenderReport(r model.AnalysisResult, generatedAt time.Time) ([]byte, error) {
	doc, err := json.MarshalIndent(Report{
		Title:       "GenoGuard Mutation Report - " + r.Name,
		GeneratedAt: generatedAt.UTC(),
		Engine:      analysis.StubEngine,
		Result:      r,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return doc, nil
}

func sanitize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unnamed"
	}
	return strings.NewReplacer("/", "_", "\\", "_").Replace(s)
}
