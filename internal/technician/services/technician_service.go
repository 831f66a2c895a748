package services

import (
	"context"
	"io"

	"github.com/c14220110/radiology-client/internal/common/models"
	"github.com/c14220110/radiology-client/pkg/apiclient"
)

// TechnicianService issues the technician-scoped REST calls.
type TechnicianService struct {
	api *apiclient.Client
}

func NewTechnicianService(api *apiclient.Client) *TechnicianService {
	return &TechnicianService{api: api}
}

// PendingCases lists the cases still waiting for scan uploads.
func (s *TechnicianService) PendingCases(ctx context.Context) ([]models.Case, error) {
	env, err := s.api.Get(ctx, "/tech/cases")
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

// UploadImage posts one scan image as multipart/form-data. The transport
// sets its own boundary content type; the body is never JSON-wrapped.
func (s *TechnicianService) UploadImage(ctx context.Context, caseID, filename string, image io.Reader) error {
	_, err := s.api.PostMultipart(ctx, "/tech/upload/"+caseID, nil, "image", filename, image)
	return err
}
