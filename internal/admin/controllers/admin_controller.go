package controllers

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/c14220110/radiology-client/internal/admin/services"
	"github.com/c14220110/radiology-client/internal/common/cards"
	"github.com/c14220110/radiology-client/internal/view"
)

// AdminController owns the three admin sections: user management, case
// scheduling (with the patient/doctor pick-lists) and the full case list.
type AdminController struct {
	service *services.AdminService
	surface *view.Surface
	emit    func(event string)
	log     zerolog.Logger
}

func NewAdminController(service *services.AdminService, surface *view.Surface, emit func(string)) *AdminController {
	if emit == nil {
		emit = func(string) {}
	}
	return &AdminController{
		service: service,
		surface: surface,
		emit:    emit,
		log:     log.With().Str("controller", "admin").Logger(),
	}
}

// Render fetches and draws the full case list.
func (c *AdminController) Render(ctx context.Context) {
	sec := c.surface.Section(view.SectionAdminCases)
	if sec == nil {
		return
	}
	sec.SetContent("Loading cases...")
	list, err := c.service.ListCases(ctx)
	if err != nil {
		sec.SetError("Error loading cases: " + view.ErrorMessage(err))
		return
	}
	sec.SetContent(cards.RenderList(list, "No cases found."))
}

// RefreshPickLists redraws the scheduling dropdown sources.
func (c *AdminController) RefreshPickLists(ctx context.Context) {
	sec := c.surface.Section(view.SectionAdminSchedule)
	if sec == nil {
		return
	}
	lists, err := c.service.PickLists(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("could not load pick-lists")
		return
	}
	var sb strings.Builder
	sb.WriteString("Patients:\n")
	for _, p := range lists.Patients {
		sb.WriteString("  " + p.ID + "  " + p.Name + " (" + p.Username + ")\n")
	}
	sb.WriteString("Doctors:\n")
	for _, d := range lists.Doctors {
		sb.WriteString("  " + d.ID + "  " + d.Name + " (" + d.Username + ")\n")
	}
	sec.SetContent(strings.TrimRight(sb.String(), "\n"))
}

// Refresh is the realtime hook: pick-lists plus case list.
func (c *AdminController) Refresh(ctx context.Context) {
	c.RefreshPickLists(ctx)
	c.Render(ctx)
}

// AddDoctor creates a doctor account from the user-management form.
func (c *AdminController) AddDoctor(ctx context.Context) {
	c.createUser(ctx, "docName", "docEmail", "docUser", "docPass", "", c.service.CreateDoctor, "Doctor created.")
}

func (c *AdminController) AddTechnician(ctx context.Context) {
	c.createUser(ctx, "techName", "techEmail", "techUser", "techPass", "", c.service.CreateTechnician, "Technician created.")
}

func (c *AdminController) AddRadiologist(ctx context.Context) {
	c.createUser(ctx, "radioName", "radioEmail", "radioUser", "radioPass", "", c.service.CreateRadiologist, "Radiologist created.")
}

// AddPatient additionally carries the patient's base priority.
func (c *AdminController) AddPatient(ctx context.Context) {
	sec := c.surface.Section(view.SectionAdminUsers)
	if sec == nil {
		return
	}
	priority := sec.Field("patPriority")
	c.createUser(ctx, "patName", "patEmail", "patUser", "patPass", priority, c.service.CreatePatient, "Patient created.")
}

func (c *AdminController) createUser(
	ctx context.Context,
	nameField, emailField, userField, passField, basePriority string,
	create func(context.Context, services.CreateUserRequest) error,
	successMsg string,
) {
	sec := c.surface.Section(view.SectionAdminUsers)
	if sec == nil {
		return
	}
	values, err := sec.RequireFields(nameField, emailField, userField, passField)
	if err != nil {
		sec.SetError(view.ErrorMessage(err))
		return
	}
	err = create(ctx, services.CreateUserRequest{
		Name:         values[nameField],
		Email:        values[emailField],
		Username:     values[userField],
		Password:     values[passField],
		BasePriority: basePriority,
	})
	if err != nil {
		sec.SetError(view.ErrorMessage(err))
		return
	}
	sec.Flash(successMsg)
	sec.ResetFields(nameField, emailField, userField, passField)
	c.RefreshPickLists(ctx)
	c.emit("admin-updated")
}

// ScheduleCase creates a case from the scheduling form.
func (c *AdminController) ScheduleCase(ctx context.Context) {
	sec := c.surface.Section(view.SectionAdminSchedule)
	if sec == nil {
		return
	}
	values, err := sec.RequireFields("casePatient", "caseDoctor", "caseDate", "caseSlot", "caseScanType", "casePriority")
	if err != nil {
		sec.SetError(view.ErrorMessage(err))
		return
	}
	err = c.service.ScheduleCase(ctx, services.ScheduleCaseRequest{
		Patient:   values["casePatient"],
		Doctor:    values["caseDoctor"],
		Date:      values["caseDate"],
		TimeSlot:  values["caseSlot"],
		ScanType:  values["caseScanType"],
		Priority:  values["casePriority"],
		RefDoctor: sec.Field("caseRefDoc"),
		Symptoms:  sec.Field("caseSymptoms"),
	})
	if err != nil {
		sec.SetError(view.ErrorMessage(err))
		return
	}
	sec.Flash("Case scheduled.")
	sec.ResetFields("caseRefDoc", "caseSymptoms")
	c.Render(ctx)
	c.emit("case-created")
}

// DeleteCase removes a case and redraws the list.
func (c *AdminController) DeleteCase(ctx context.Context, id string) {
	sec := c.surface.Section(view.SectionAdminCases)
	if sec == nil {
		return
	}
	if strings.TrimSpace(id) == "" {
		sec.SetError("Case id is required.")
		return
	}
	if err := c.service.DeleteCase(ctx, id); err != nil {
		sec.SetError(view.ErrorMessage(err))
		return
	}
	sec.Flash("Case deleted.")
	c.Render(ctx)
	c.emit("case-created")
}
