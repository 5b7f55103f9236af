package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/genoguard-server/internal/model"
)

var _ model.SequenceStore = (*SequenceRepository)(nil)

const sequenceColumns = `id, user_id, patient_id, name, upload_date, sequence_data, sequence_length, size, external_ref`

type SequenceRepository struct {
	db *Connection
}

func NewSequenceRepository(db *Connection) *SequenceRepository {
	return &SequenceRepository{
		db: db,
	}
}

// Create inserts a sequence. A nil id is replaced by one generated in the database.
func (r *SequenceRepository) Create(ctx context.Context, sequence model.Sequence) (model.Sequence, error) {
	query := `
		INSERT INTO patient_sequences (id, user_id, patient_id, name, upload_date, sequence_data, sequence_length, size, external_ref)
		VALUES (
			COALESCE(NULLIF($1::uuid, '00000000-0000-0000-0000-000000000000'), gen_random_uuid()),
			$2, $3, $4, COALESCE($5, NOW()), $6, $7, $8, $9
		)
		RETURNING ` + sequenceColumns

	saved, err := scanSequence(r.db.QueryRow(ctx, query,
		sequence.ID, sequence.OwnerID, sequence.PatientID, sequence.FileName,
		nullableTime(sequence.UploadedAt), sequence.SequenceData, sequence.SequenceLength,
		sequence.FileSize, sequence.ExternalRef,
	))
	if err != nil {
		return model.Sequence{}, fmt.Errorf("failed to create sequence: %w", err)
	}

	return saved, nil
}

func (r *SequenceRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.Sequence, error) {
	query := `SELECT ` + sequenceColumns + `
		FROM patient_sequences
		WHERE user_id = $1
		ORDER BY upload_date DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sequences: %w", err)
	}
	defer rows.Close()

	var sequences []model.Sequence
	for rows.Next() {
		sequence, err := scanSequence(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sequence: %w", err)
		}
		sequences = append(sequences, sequence)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sequences, nil
}

func (r *SequenceRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	const query = `DELETE FROM patient_sequences WHERE id = $1 AND user_id = $2`
	cmd, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete sequence: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *SequenceRepository) UpdateExternalRef(ctx context.Context, userID uuid.UUID, id uuid.UUID, ref string) error {
	const query = `UPDATE patient_sequences SET external_ref = $3 WHERE id = $1 AND user_id = $2`
	cmd, err := r.db.Exec(ctx, query, id, userID, ref)
	if err != nil {
		return fmt.Errorf("failed to update sequence external ref: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func scanSequence(row pgx.Row) (model.Sequence, error) {
	var s model.Sequence
	err := row.Scan(
		&s.ID, &s.OwnerID, &s.PatientID, &s.FileName, &s.UploadedAt,
		&s.SequenceData, &s.SequenceLength, &s.FileSize, &s.ExternalRef,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Sequence{}, model.ErrNotFound
		}
		return model.Sequence{}, err
	}
	return s, nil
}
