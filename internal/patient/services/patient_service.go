package services

import (
	"context"

	"github.com/c14220110/radiology-client/internal/common/models"
	"github.com/c14220110/radiology-client/pkg/apiclient"
)

// PatientService issues the patient-facing REST calls.
type PatientService struct {
	api *apiclient.Client
}

func NewPatientService(api *apiclient.Client) *PatientService {
	return &PatientService{api: api}
}

func (s *PatientService) Cases(ctx context.Context, patientID string) ([]models.Case, error) {
	return s.caseList(ctx, "/patient/cases/"+patientID)
}

func (s *PatientService) History(ctx context.Context, patientID string) ([]models.Case, error) {
	return s.caseList(ctx, "/patient/history/"+patientID)
}

func (s *PatientService) caseList(ctx context.Context, path string) ([]models.Case, error) {
	env, err := s.api.Get(ctx, path)
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

// ReportURL builds the PDF download link for a case. The report is opened
// out-of-band (browser, curl), never fetched through the client.
func (s *PatientService) ReportURL(caseID string) string {
	return s.api.BaseURL + "/patient/pdf/" + caseID
}
