package controllers

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/c14220110/radiology-client/internal/common/cards"
	"github.com/c14220110/radiology-client/internal/technician/services"
	"github.com/c14220110/radiology-client/internal/view"
)

// TechnicianController renders the upload queue and owns the scan upload
// action.
type TechnicianController struct {
	service *services.TechnicianService
	surface *view.Surface
	emit    func(event string)
	log     zerolog.Logger
}

func NewTechnicianController(service *services.TechnicianService, surface *view.Surface, emit func(string)) *TechnicianController {
	if emit == nil {
		emit = func(string) {}
	}
	return &TechnicianController{
		service: service,
		surface: surface,
		emit:    emit,
		log:     log.With().Str("controller", "technician").Logger(),
	}
}

// Render fetches and draws the cases pending upload.
func (c *TechnicianController) Render(ctx context.Context) {
	sec := c.surface.Section(view.SectionTechCases)
	if sec == nil {
		return
	}
	sec.SetContent("Loading upload queue...")
	list, err := c.service.PendingCases(ctx)
	if err != nil {
		sec.SetError("Error loading cases: " + view.ErrorMessage(err))
		return
	}
	sec.SetContent(cards.RenderList(list, "No cases awaiting upload."))
}

// Refresh is the realtime hook.
func (c *TechnicianController) Refresh(ctx context.Context) {
	c.Render(ctx)
}

// UploadImage sends one scan for a case. The submit control is disabled
// while the upload is in flight and re-enabled on failure so the technician
// can retry.
func (c *TechnicianController) UploadImage(ctx context.Context, caseID, filename string, image io.Reader) {
	sec := c.surface.Section(view.SectionTechCases)
	if sec == nil {
		return
	}
	if strings.TrimSpace(caseID) == "" {
		sec.SetError("Case id is required.")
		return
	}
	if strings.TrimSpace(filename) == "" || image == nil {
		sec.SetError("Choose an image to upload.")
		return
	}
	if sec.Busy() {
		return
	}
	sec.SetBusy(true)
	if err := c.service.UploadImage(ctx, caseID, filename, image); err != nil {
		sec.SetBusy(false)
		sec.SetError("Upload failed: " + view.ErrorMessage(err))
		return
	}
	sec.SetBusy(false)
	sec.Flash("Image uploaded.")
	c.Render(ctx)
	c.emit("images-updated")
}
