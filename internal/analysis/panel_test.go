package analysis

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/genoguard-server/internal/model"
)

func TestReport_Invariants(t *testing.T) {
	seq := model.Sequence{ID: uuid.New(), OwnerID: uuid.New(), PatientID: "P1", SequenceData: ">S1\nACGT"}

	result := Report(seq, DefaultName(seq.PatientID))

	require.NoError(t, Validate(result))
	assert.Equal(t, len(result.Mutations), result.MutationsFound)
	assert.Subset(t, result.GenesAnalyzed, result.MutatedGenes)
	assert.Equal(t, "P1 - Pancreatic Cancer Analysis", result.Name)
	assert.Equal(t, "P1", result.PatientID)
	assert.Equal(t, seq.OwnerID, result.OwnerID)
	require.NotNil(t, result.SequenceID)
	assert.Equal(t, seq.ID, *result.SequenceID)
	assert.Equal(t, model.ResultStatusCompleted, result.Status)
	assert.Contains(t, result.ClinicalInterpretation, "identified 3 pathogenic mutations across 4 critical genes")
	assert.Contains(t, result.ClinicalInterpretation, ">90% of pancreatic cancers")
}

func TestReport_IgnoresSequenceContent(t *testing.T) {
	a := Report(model.Sequence{PatientID: "P1", SequenceData: "AAAA"}, "n")
	b := Report(model.Sequence{PatientID: "P1", SequenceData: "CCCCGGGG"}, "n")

	assert.Equal(t, a, b)
}

func TestReport_UnknownPatientAndNoSequence(t *testing.T) {
	result := Report(model.Sequence{}, "n")

	assert.Equal(t, "Unknown", result.PatientID)
	assert.Nil(t, result.SequenceID)
}

func TestReport_ReturnsIndependentSlices(t *testing.T) {
	first := Report(model.Sequence{PatientID: "P1"}, "n")
	first.GenesAnalyzed[0] = "XXX"
	first.Mutations[0].Gene = "XXX"

	second := Report(model.Sequence{PatientID: "P1"}, "n")
	assert.Equal(t, "KRAS", second.GenesAnalyzed[0])
	assert.Equal(t, "KRAS", second.Mutations[0].Gene)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		result  model.AnalysisResult
		wantErr error
	}{
		{
			name: "valid",
			result: model.AnalysisResult{
				GenesAnalyzed:  []string{"KRAS", "TP53"},
				MutatedGenes:   []string{"KRAS"},
				MutationsFound: 1,
				Mutations:      []model.Mutation{{Gene: "KRAS"}},
			},
		},
		{
			name: "count mismatch",
			result: model.AnalysisResult{
				GenesAnalyzed:  []string{"KRAS"},
				MutationsFound: 2,
				Mutations:      []model.Mutation{{Gene: "KRAS"}},
			},
			wantErr: ErrMutationCount,
		},
		{
			name: "mutated gene outside panel",
			result: model.AnalysisResult{
				GenesAnalyzed: []string{"KRAS"},
				MutatedGenes:  []string{"EGFR"},
			},
			wantErr: ErrGeneNotInPanel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.result)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
