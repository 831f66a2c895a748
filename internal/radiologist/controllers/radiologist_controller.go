package controllers

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/c14220110/radiology-client/internal/common/cards"
	"github.com/c14220110/radiology-client/internal/radiologist/services"
	"github.com/c14220110/radiology-client/internal/view"
)

// RadiologistController renders the analysis queue and owns AI analysis,
// radiologist notes and the per-case AI chat.
type RadiologistController struct {
	service *services.RadiologistService
	surface *view.Surface
	emit    func(event string)
	log     zerolog.Logger
}

func NewRadiologistController(service *services.RadiologistService, surface *view.Surface, emit func(string)) *RadiologistController {
	if emit == nil {
		emit = func(string) {}
	}
	return &RadiologistController{
		service: service,
		surface: surface,
		emit:    emit,
		log:     log.With().Str("controller", "radiologist").Logger(),
	}
}

// Render fetches and draws the cases ready for analysis.
func (c *RadiologistController) Render(ctx context.Context) {
	sec := c.surface.Section(view.SectionRadioCases)
	if sec == nil {
		return
	}
	sec.SetContent("Loading analysis queue...")
	list, err := c.service.ReadyCases(ctx)
	if err != nil {
		sec.SetError("Error loading cases: " + view.ErrorMessage(err))
		return
	}
	sec.SetContent(cards.RenderList(list, "No scans to analyze."))
}

// Refresh is the realtime hook.
func (c *RadiologistController) Refresh(ctx context.Context) {
	c.Render(ctx)
}

// RunAIAnalysis triggers server-side report generation for a case.
func (c *RadiologistController) RunAIAnalysis(ctx context.Context, caseID string) {
	sec := c.surface.Section(view.SectionRadioCases)
	if sec == nil {
		return
	}
	if strings.TrimSpace(caseID) == "" {
		sec.SetError("Case id is required.")
		return
	}
	report, err := c.service.RunAIAnalysis(ctx, caseID)
	if err != nil {
		sec.SetError("AI analysis failed: " + view.ErrorMessage(err))
		return
	}
	c.log.Info().Str("case", caseID).Int("report_len", len(report)).Msg("ai report generated")
	sec.Flash("AI report generated.")
	c.Render(ctx)
	c.emit("ai-report-generated")
}

// SaveNotes attaches radiologist notes to a case.
func (c *RadiologistController) SaveNotes(ctx context.Context, caseID string) {
	sec := c.surface.Section(view.SectionRadioCases)
	if sec == nil {
		return
	}
	if strings.TrimSpace(caseID) == "" {
		sec.SetError("Case id is required.")
		return
	}
	values, err := sec.RequireFields("notes")
	if err != nil {
		sec.SetError(view.ErrorMessage(err))
		return
	}
	if err := c.service.SaveNotes(ctx, caseID, values["notes"]); err != nil {
		sec.SetError(view.ErrorMessage(err))
		return
	}
	sec.Flash("Notes saved.")
	sec.ResetFields("notes")
	c.Render(ctx)
	c.emit("radiologist-updated")
}

// AskAI appends a question/answer exchange about a case to the section.
func (c *RadiologistController) AskAI(ctx context.Context, caseID, question string) {
	sec := c.surface.Section(view.SectionRadioCases)
	if sec == nil {
		return
	}
	if strings.TrimSpace(caseID) == "" || strings.TrimSpace(question) == "" {
		sec.SetError("Case id and question are required.")
		return
	}
	answer, err := c.service.AskAI(ctx, caseID, question)
	if err != nil {
		sec.SetError("AI chat failed: " + view.ErrorMessage(err))
		return
	}
	sec.SetContent(sec.Content() + "\nQ: " + question + "\nA: " + answer)
}
