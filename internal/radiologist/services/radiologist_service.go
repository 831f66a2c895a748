package services

import (
	"context"

	"github.com/c14220110/radiology-client/internal/common/models"
	"github.com/c14220110/radiology-client/pkg/apiclient"
)

// RadiologistService issues the radiologist-scoped REST calls.
type RadiologistService struct {
	api *apiclient.Client
}

func NewRadiologistService(api *apiclient.Client) *RadiologistService {
	return &RadiologistService{api: api}
}

// ReadyCases lists the cases with uploaded scans awaiting analysis.
func (s *RadiologistService) ReadyCases(ctx context.Context) ([]models.Case, error) {
	env, err := s.api.Get(ctx, "/radio/cases")
	if err != nil {
		return nil, err
	}
	var payload struct {
		Cases []models.Case `json:"cases"`
	}
	if err := env.Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Cases, nil
}

// RunAIAnalysis asks the backend to generate an AI report for the case. The
// inference itself is server-side; this returns once the report is stored.
func (s *RadiologistService) RunAIAnalysis(ctx context.Context, caseID string) (string, error) {
	env, err := s.api.Post(ctx, "/radio/ai-analyze/"+caseID, nil)
	if err != nil {
		return "", err
	}
	var payload struct {
		Report string `json:"report"`
	}
	if err := env.Decode(&payload); err != nil {
		return "", err
	}
	return payload.Report, nil
}

func (s *RadiologistService) SaveNotes(ctx context.Context, caseID, notes string) error {
	_, err := s.api.Post(ctx, "/radio/notes/"+caseID, map[string]string{"notes": notes})
	return err
}

// AskAI sends a free-form question about a case to the AI assistant.
func (s *RadiologistService) AskAI(ctx context.Context, caseID, question string) (string, error) {
	env, err := s.api.Post(ctx, "/ai/chat/"+caseID, map[string]string{"question": question})
	if err != nil {
		return "", err
	}
	var payload struct {
		Answer string `json:"answer"`
	}
	if err := env.Decode(&payload); err != nil {
		return "", err
	}
	return payload.Answer, nil
}
