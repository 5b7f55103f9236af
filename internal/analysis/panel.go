// Package analysis holds the stub mutation analysis. It does not inspect the
// uploaded nucleotides: every run yields the same pancreatic cancer panel
// report.
package analysis

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/genoguard-server/internal/model"
)

// StubEngine identifies reports produced without real sequence analysis.
const StubEngine = "stub-fixed-panel"

// GenePanel lists the genes every report claims to have analyzed.
var GenePanel = []string{"KRAS", "TP53", "SMAD4", "CDKN2A", "BRCA1", "BRCA2", "ATM", "STK11"}

var detectedGenes = []string{"KRAS", "TP53", "SMAD4", "BRCA2"}

var panelMutations = []model.Mutation{
	{
		Gene:          "KRAS",
		Position:      12,
		Type:          "Missense mutation (G12D)",
		Reference:     "GGT",
		Variant:       "GAT",
		Impact:        "High",
		Pathogenicity: "Pathogenic",
	},
	{
		Gene:          "TP53",
		Position:      273,
		Type:          "Missense mutation (R273H)",
		Reference:     "CGT",
		Variant:       "CAT",
		Impact:        "High",
		Pathogenicity: "Pathogenic",
	},
	{
		Gene:          "SMAD4",
		Position:      361,
		Type:          "Missense mutation (R361H)",
		Reference:     "CGT",
		Variant:       "CAT",
		Impact:        "High",
		Pathogenicity: "Likely Pathogenic",
	},
}

const (
	cancerType    = "Pancreatic Ductal Adenocarcinoma (PDAC)"
	riskLabel     = "High Risk - Multiple Pathogenic Mutations Detected"
	prognosis     = "Poor - aggressive disease progression likely"
	treatment     = "FOLFIRINOX or gemcitabine-based chemotherapy recommended. KRAS G12D is not currently targetable, but clinical trials for KRAS inhibitors may be available. TP53 and SMAD4 mutations suggest platinum-based therapy may be beneficial. Consider genetic counseling and germline testing for hereditary cancer syndromes."
	similarity    = 97.2
	interpretTmpl = "Comprehensive genomic analysis identified %d pathogenic mutations across %d critical genes associated with pancreatic ductal adenocarcinoma (PDAC). The KRAS G12D mutation is a driver mutation found in >90%% of pancreatic cancers and is sufficient to initiate tumorigenesis. Combined with TP53 R273H (a hotspot mutation associated with aggressive disease) and SMAD4 R361H (linked to metastatic potential), this mutation profile is characteristic of advanced pancreatic cancer with poor prognosis."
)

var immuneMarkers = []string{
	"Loss of immune surveillance likely",
	"Tumor-promoting microenvironment",
	"Reduced MHC-I expression expected",
}

// DefaultName is the analysis name used when the caller gives none.
func DefaultName(patientID string) string {
	return fmt.Sprintf("%s - Pancreatic Cancer Analysis", patientID)
}

// Report builds the fixed panel report for a sequence. Slices are copied so
// callers may modify the result.
func Report(sequence model.Sequence, name string) model.AnalysisResult {
	patientID := sequence.PatientID
	if patientID == "" {
		patientID = "Unknown"
	}

	result := model.AnalysisResult{
		OwnerID:                sequence.OwnerID,
		Name:                   name,
		PatientID:              patientID,
		GenesAnalyzed:          append([]string(nil), GenePanel...),
		MutationsFound:         len(panelMutations),
		MutatedGenes:           append([]string(nil), detectedGenes...),
		Mutations:              append([]model.Mutation(nil), panelMutations...),
		Similarity:             similarity,
		Status:                 model.ResultStatusCompleted,
		CancerType:             cancerType,
		Pathogenicity:          riskLabel,
		ClinicalInterpretation: fmt.Sprintf(interpretTmpl, len(panelMutations), len(detectedGenes)),
		Prognosis:              prognosis,
		Treatment:              treatment,
		ImmuneMarkers:          append([]string(nil), immuneMarkers...),
	}
	if sequence.ID != uuid.Nil {
		id := sequence.ID
		result.SequenceID = &id
	}

	return result
}
