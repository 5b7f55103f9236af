package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/genoguard-server/internal/model"
)

var _ model.ResultStore = (*ResultRepository)(nil)

const resultColumns = `id, user_id, sequence_id, name, patient_id, genes_analyzed, mutations_found, mutated_genes,
	mutations, similarity, status, cancer_type, pathogenicity, clinical_interpretation, prognosis,
	treatment, immune_markers, external_report_ref, analysis_date`

type ResultRepository struct {
	db *Connection
}

func NewResultRepository(db *Connection) *ResultRepository {
	return &ResultRepository{
		db: db,
	}
}

// Create inserts an analysis result. A nil id is replaced by one generated in the database.
func (r *ResultRepository) Create(ctx context.Context, result model.AnalysisResult) (model.AnalysisResult, error) {
	mutations, err := json.Marshal(nonNil(result.Mutations))
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("failed to encode mutations: %w", err)
	}

	query := `
		INSERT INTO analysis_results (id, user_id, sequence_id, name, patient_id, genes_analyzed, mutations_found,
			mutated_genes, mutations, similarity, status, cancer_type, pathogenicity, clinical_interpretation,
			prognosis, treatment, immune_markers, external_report_ref, analysis_date)
		VALUES (
			COALESCE(NULLIF($1::uuid, '00000000-0000-0000-0000-000000000000'), gen_random_uuid()),
			$2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, COALESCE($19, NOW())
		)
		RETURNING ` + resultColumns

	saved, err := scanResult(r.db.QueryRow(ctx, query,
		result.ID, result.OwnerID, result.SequenceID, result.Name, result.PatientID,
		nonNil(result.GenesAnalyzed), result.MutationsFound, nonNil(result.MutatedGenes), mutations,
		result.Similarity, string(result.Status), result.CancerType, result.Pathogenicity,
		result.ClinicalInterpretation, result.Prognosis, result.Treatment, nonNil(result.ImmuneMarkers),
		result.ExternalReportRef, nullableTime(result.CreatedAt),
	))
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("failed to create analysis result: %w", err)
	}

	return saved, nil
}

func (r *ResultRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.AnalysisResult, error) {
	query := `SELECT ` + resultColumns + `
		FROM analysis_results
		WHERE user_id = $1
		ORDER BY analysis_date DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis results: %w", err)
	}
	defer rows.Close()

	var results []model.AnalysisResult
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis result: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

func (r *ResultRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	const query = `DELETE FROM analysis_results WHERE id = $1 AND user_id = $2`
	cmd, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete analysis result: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *ResultRepository) UpdateExternalReportRef(ctx context.Context, userID uuid.UUID, id uuid.UUID, ref string) error {
	const query = `UPDATE analysis_results SET external_report_ref = $3 WHERE id = $1 AND user_id = $2`
	cmd, err := r.db.Exec(ctx, query, id, userID, ref)
	if err != nil {
		return fmt.Errorf("failed to update analysis result report ref: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func scanResult(row pgx.Row) (model.AnalysisResult, error) {
	var (
		res       model.AnalysisResult
		status    string
		mutations []byte
	)
	err := row.Scan(
		&res.ID, &res.OwnerID, &res.SequenceID, &res.Name, &res.PatientID,
		&res.GenesAnalyzed, &res.MutationsFound, &res.MutatedGenes, &mutations,
		&res.Similarity, &status, &res.CancerType, &res.Pathogenicity,
		&res.ClinicalInterpretation, &res.Prognosis, &res.Treatment, &res.ImmuneMarkers,
		&res.ExternalReportRef, &res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AnalysisResult{}, model.ErrNotFound
		}
		return model.AnalysisResult{}, err
	}

	res.Status = model.ResultStatus(status)
	if len(mutations) > 0 {
		if err := json.Unmarshal(mutations, &res.Mutations); err != nil {
			return model.AnalysisResult{}, fmt.Errorf("failed to decode mutations: %w", err)
		}
	}

	return res, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
