package controllers

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/c14220110/radiology-client/internal/common/cards"
	"github.com/c14220110/radiology-client/internal/common/models"
	"github.com/c14220110/radiology-client/internal/patient/services"
	"github.com/c14220110/radiology-client/internal/session"
	"github.com/c14220110/radiology-client/internal/view"
)

// PatientController renders the patient's reports and visit history.
type PatientController struct {
	service  *services.PatientService
	sessions *session.Store
	surface  *view.Surface
	log      zerolog.Logger
}

func NewPatientController(service *services.PatientService, sessions *session.Store, surface *view.Surface) *PatientController {
	return &PatientController{
		service:  service,
		sessions: sessions,
		surface:  surface,
		log:      log.With().Str("controller", "patient").Logger(),
	}
}

// Render fetches and draws the patient's current cases.
func (c *PatientController) Render(ctx context.Context) {
	c.renderInto(ctx, view.SectionPatientCases, c.service.Cases, "No reports yet.")
}

// RenderHistory fetches and draws the patient's past encounters.
func (c *PatientController) RenderHistory(ctx context.Context) {
	c.renderInto(ctx, view.SectionPatientHistory, c.service.History, "No history found.")
}

// Refresh is the realtime hook: both patient sections re-fetch.
func (c *PatientController) Refresh(ctx context.Context) {
	c.Render(ctx)
	c.RenderHistory(ctx)
}

func (c *PatientController) renderInto(
	ctx context.Context,
	sectionID string,
	fetch func(context.Context, string) ([]models.Case, error),
	emptyText string,
) {
	sec := c.surface.Section(sectionID)
	if sec == nil {
		return
	}
	sess := c.sessions.Current()
	if sess == nil {
		return
	}
	sec.SetContent("Loading reports...")
	list, err := fetch(ctx, sess.UserID)
	if err != nil {
		sec.SetError("Error loading reports: " + view.ErrorMessage(err))
		return
	}
	sec.SetContent(cards.RenderList(list, emptyText))
}

// ShowReportLink appends the PDF download link for a case to the reports
// section. The link is opened externally, never fetched here.
func (c *PatientController) ShowReportLink(caseID string) {
	sec := c.surface.Section(view.SectionPatientCases)
	if sec == nil {
		return
	}
	if strings.TrimSpace(caseID) == "" {
		sec.SetError("Case id is required.")
		return
	}
	sec.SetContent(sec.Content() + "\nReport: " + c.service.ReportURL(caseID))
}
