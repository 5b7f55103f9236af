package analysis

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dtroode/genoguard-server/internal/model"
)

var (
	ErrMutationCount  = errors.New("mutation count does not match mutation entries")
	ErrGeneNotInPanel = errors.New("mutated gene was not analyzed")
)

// Validate checks the structural invariants of a report.
func Validate(result model.AnalysisResult) error {
	if len(result.Mutations) != result.MutationsFound {
		return fmt.Errorf("%w: found=%d entries=%d", ErrMutationCount, result.MutationsFound, len(result.Mutations))
	}

	for _, gene := range result.MutatedGenes {
		if !slices.Contains(result.GenesAnalyzed, gene) {
			return fmt.Errorf("%w: %s", ErrGeneNotInPanel, gene)
		}
	}

	return nil
}
