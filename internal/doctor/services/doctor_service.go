package services

import (
	"context"

	"github.com/c14220110/radiology-client/internal/common/models"
	"github.com/c14220110/radiology-client/pkg/apiclient"
)

// DoctorService issues the doctor-scoped REST calls.
type DoctorService struct {
	api *apiclient.Client
}

func NewDoctorService(api *apiclient.Client) *DoctorService {
	return &DoctorService{api: api}
}

func (s *DoctorService) Cases(ctx context.Context, doctorID string) ([]models.Case, error) {
	env, err := s.api.Get(ctx, "/doctor/cases/"+doctorID)
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

func (s *DoctorService) SaveDiagnosis(ctx context.Context, caseID, diagnosis string) error {
	_, err := s.api.Post(ctx, "/doctor/diagnosis/"+caseID, map[string]string{"diagnosis": diagnosis})
	return err
}

func (s *DoctorService) SaveNotes(ctx context.Context, caseID, notes string) error {
	_, err := s.api.Post(ctx, "/doctor/notes/"+caseID, map[string]string{"notes": notes})
	return err
}

func (s *DoctorService) Prescribe(ctx context.Context, caseID, prescription string) error {
	_, err := s.api.Post(ctx, "/doctor/prescribe/"+caseID, map[string]string{"prescription": prescription})
	return err
}

type CreateCaseRequest struct {
	Patient  string `json:"patient"`
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
	ScanType string `json:"scanType"`
	Priority string `json:"priority"`
	Symptoms string `json:"symptoms"`
}

func (s *DoctorService) CreateCase(ctx context.Context, req CreateCaseRequest) error {
	_, err := s.api.Post(ctx, "/doctor/create-case", req)
	return err
}
