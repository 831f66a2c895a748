package controllers

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/c14220110/radiology-client/internal/common/cards"
	"github.com/c14220110/radiology-client/internal/doctor/services"
	"github.com/c14220110/radiology-client/internal/session"
	"github.com/c14220110/radiology-client/internal/view"
)

// DoctorController renders the doctor's assigned cases and owns the case
// annotations (diagnosis, notes, prescription) plus doctor-initiated case
// creation.
type DoctorController struct {
	service  *services.DoctorService
	sessions *session.Store
	surface  *view.Surface
	emit     func(event string)
	log      zerolog.Logger
}

func NewDoctorController(service *services.DoctorService, sessions *session.Store, surface *view.Surface, emit func(string)) *DoctorController {
	if emit == nil {
		emit = func(string) {}
	}
	return &DoctorController{
		service:  service,
		sessions: sessions,
		surface:  surface,
		emit:     emit,
		log:      log.With().Str("controller", "doctor").Logger(),
	}
}

// Render fetches and draws the cases assigned to the logged-in doctor.
func (c *DoctorController) Render(ctx context.Context) {
	sec := c.surface.Section(view.SectionDoctorCases)
	if sec == nil {
		return
	}
	sess := c.sessions.Current()
	if sess == nil {
		return
	}
	sec.SetContent("Fetching doctor cases...")
	list, err := c.service.Cases(ctx, sess.UserID)
	if err != nil {
		sec.SetError("Error loading cases: " + view.ErrorMessage(err))
		return
	}
	sec.SetContent(cards.RenderList(list, "No cases assigned."))
}

// Refresh is the realtime hook.
func (c *DoctorController) Refresh(ctx context.Context) {
	c.Render(ctx)
}

// SaveDiagnosis attaches a diagnosis to a case.
func (c *DoctorController) SaveDiagnosis(ctx context.Context, caseID string) {
	c.annotate(ctx, caseID, "diagnosis", c.service.SaveDiagnosis, "Diagnosis saved.")
}

// SaveNotes attaches clinical notes to a case.
func (c *DoctorController) SaveNotes(ctx context.Context, caseID string) {
	c.annotate(ctx, caseID, "notes", c.service.SaveNotes, "Notes saved.")
}

// Prescribe attaches a prescription to a case.
func (c *DoctorController) Prescribe(ctx context.Context, caseID string) {
	c.annotate(ctx, caseID, "prescription", c.service.Prescribe, "Prescription saved.")
}

func (c *DoctorController) annotate(
	ctx context.Context,
	caseID, field string,
	save func(context.Context, string, string) error,
	successMsg string,
) {
	sec := c.surface.Section(view.SectionDoctorCases)
	if sec == nil {
		return
	}
	if caseID == "" {
		sec.SetError("Case id is required.")
		return
	}
	values, err := sec.RequireFields(field)
	if err != nil {
		sec.SetError(view.ErrorMessage(err))
		return
	}
	if err := save(ctx, caseID, values[field]); err != nil {
		sec.SetError(view.ErrorMessage(err))
		return
	}
	sec.Flash(successMsg)
	sec.ResetFields(field)
	c.Render(ctx)
	c.emit("doctor-updated")
}

// CreateCase schedules a case directly from the doctor's form.
func (c *DoctorController) CreateCase(ctx context.Context) {
	sec := c.surface.Section(view.SectionDoctorNewCase)
	if sec == nil {
		return
	}
	values, err := sec.RequireFields("patient", "date", "timeSlot", "scanType", "priority")
	if err != nil {
		sec.SetError(view.ErrorMessage(err))
		return
	}
	err = c.service.CreateCase(ctx, services.CreateCaseRequest{
		Patient:  values["patient"],
		Date:     values["date"],
		TimeSlot: values["timeSlot"],
		ScanType: values["scanType"],
		Priority: values["priority"],
		Symptoms: sec.Field("symptoms"),
	})
	if err != nil {
		sec.SetError(view.ErrorMessage(err))
		return
	}
	sec.Flash("Case created.")
	sec.ResetFields()
	c.Render(ctx)
	c.emit("case-created")
}
