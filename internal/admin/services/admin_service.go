package services

import (
	"context"

	"github.com/c14220110/radiology-client/internal/common/models"
	"github.com/c14220110/radiology-client/pkg/apiclient"
)

// AdminService issues the admin-scoped REST calls.
type AdminService struct {
	api *apiclient.Client
}

func NewAdminService(api *apiclient.Client) *AdminService {
	return &AdminService{api: api}
}

type CreateUserRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	BasePriority string `json:"basePriority,omitempty"`
}

func (s *AdminService) CreateDoctor(ctx context.Context, req CreateUserRequest) error {
	_, err := s.api.Post(ctx, "/admin/doctor", req)
	return err
}

func (s *AdminService) CreateTechnician(ctx context.Context, req CreateUserRequest) error {
	_, err := s.api.Post(ctx, "/admin/technician", req)
	return err
}

func (s *AdminService) CreateRadiologist(ctx context.Context, req CreateUserRequest) error {
	_, err := s.api.Post(ctx, "/admin/radiologist", req)
	return err
}

func (s *AdminService) CreatePatient(ctx context.Context, req CreateUserRequest) error {
	_, err := s.api.Post(ctx, "/admin/patient", req)
	return err
}

// PickLists are the patient/doctor dropdown sources for case scheduling.
type PickLists struct {
	Patients []models.UserRef `json:"patients"`
	Doctors  []models.UserRef `json:"doctors"`
}

func (s *AdminService) PickLists(ctx context.Context) (*PickLists, error) {
	env, err := s.api.Get(ctx, "/admin/lists")
	if err != nil {
		return nil, err
	}
	lists := &PickLists{}
	if err := env.Decode(lists); err != nil {
		return nil, err
	}
	return lists, nil
}

type ScheduleCaseRequest struct {
	Patient   string `json:"patient"`
	Doctor    string `json:"doctor"`
	Date      string `json:"date"`
	TimeSlot  string `json:"timeSlot"`
	ScanType  string `json:"scanType"`
	Priority  string `json:"priority"`
	RefDoctor string `json:"refDoctor"`
	Symptoms  string `json:"symptoms"`
}

func (s *AdminService) ScheduleCase(ctx context.Context, req ScheduleCaseRequest) error {
	_, err := s.api.Post(ctx, "/admin/case", req)
	return err
}

func (s *AdminService) ListCases(ctx context.Context) ([]models.Case, error) {
	env, err := s.api.Get(ctx, "/admin/cases")
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

func (s *AdminService) DeleteCase(ctx context.Context, id string) error {
	_, err := s.api.Delete(ctx, "/admin/case/"+id)
	return err
}
