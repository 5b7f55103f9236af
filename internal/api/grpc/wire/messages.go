package wire

import (
	"github.com/google/uuid"

	"github.com/dtroode/genoguard-server/internal/model"
)

// Empty is a message without fields.
type Empty struct{}

type SignUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Session carries issued tokens. Demo sessions have no refresh token.
type Session struct {
	UserID       uuid.UUID `json:"userId"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	Demo         bool      `json:"demo"`
}

type UploadSequenceRequest struct {
	PatientID string `json:"patientId"`
	FileName  string `json:"fileName"`
	Content   []byte `json:"content"`
}

// WriteStatus tells where a record ended up. Message is set when the record
// was kept locally because the remote store could not take it.
type WriteStatus struct {
	Saved   string `json:"saved"`
	Outcome string `json:"outcome"`
	Message string `json:"message,omitempty"`
}

type UploadSequenceResponse struct {
	Sequence model.Sequence `json:"sequence"`
	Status   WriteStatus    `json:"status"`
}

// ReadStatus tells which store served a list.
type ReadStatus struct {
	Source  string `json:"source"`
	Outcome string `json:"outcome"`
}

type ListSequencesResponse struct {
	Sequences []model.Sequence `json:"sequences"`
	Status    ReadStatus       `json:"status"`
}

type DeleteRequest struct {
	ID uuid.UUID `json:"id"`
}

type RunAnalysisRequest struct {
	SequenceID uuid.UUID `json:"sequenceId"`
	Name       string    `json:"name,omitempty"`
}

type RunAnalysisResponse struct {
	Result model.AnalysisResult `json:"result"`
	Status WriteStatus          `json:"status"`
}

type ListResultsResponse struct {
	Results []model.AnalysisResult `json:"results"`
	Status  ReadStatus             `json:"status"`
}

// PushCount is the outcome of pushing one record kind.
type PushCount struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

type PushLocalDataResponse struct {
	Sequences PushCount `json:"sequences"`
	Results   PushCount `json:"results"`
}
