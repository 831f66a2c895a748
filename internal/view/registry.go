package view

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/c14220110/radiology-client/internal/common/models"
)

// Section identifiers, one per navigable dashboard view.
const (
	SectionAdminUsers     = "adminUsers"
	SectionAdminSchedule  = "adminSchedule"
	SectionAdminCases     = "adminCases"
	SectionDoctorCases    = "doctorCases"
	SectionDoctorNewCase  = "doctorNewCase"
	SectionTechCases      = "techCases"
	SectionRadioCases     = "radioCases"
	SectionPatientCases   = "patientCases"
	SectionPatientHistory = "patientHistory"
)

// NavItem is one sidebar entry: a label and the section it reveals.
type NavItem struct {
	Label  string
	Target string
}

// RoleViews maps each role to its ordered sidebar. Static, read-only after
// definition.
var RoleViews = map[models.Role][]NavItem{
	models.RoleAdmin: {
		{Label: "Manage Users", Target: SectionAdminUsers},
		{Label: "Schedule Case", Target: SectionAdminSchedule},
		{Label: "All Cases", Target: SectionAdminCases},
	},
	models.RoleDoctor: {
		{Label: "My Cases", Target: SectionDoctorCases},
		{Label: "New Case", Target: SectionDoctorNewCase},
	},
	models.RoleTechnician: {
		{Label: "Upload Scans", Target: SectionTechCases},
	},
	models.RoleRadiologist: {
		{Label: "Analyze Cases", Target: SectionRadioCases},
	},
	models.RolePatient: {
		{Label: "My Reports", Target: SectionPatientCases},
		{Label: "History", Target: SectionPatientHistory},
	},
}

// RenderFunc is a section's initial-data fetch, bound at startup.
type RenderFunc func(ctx context.Context)

// Registry owns the sidebar state and the section -> render binding. Unlike
// the string-keyed DOM lookups of the web UI, an unbound target is caught at
// startup by Validate instead of silently doing nothing at click time.
type Registry struct {
	surface   *Surface
	renderers map[string]RenderFunc

	nav    []NavItem
	active int

	log zerolog.Logger
}

func NewRegistry(surface *Surface) *Registry {
	return &Registry{
		surface:   surface,
		renderers: make(map[string]RenderFunc),
		active:    -1,
		log:       log.With().Str("component", "view").Logger(),
	}
}

// Bind attaches the initial-data fetch for a section and registers the
// section on the surface.
func (r *Registry) Bind(target string, fn RenderFunc) {
	r.surface.Register(target)
	r.renderers[target] = fn
}

// Validate fails fast when any role's sidebar points at a section that was
// never registered or never bound to a renderer.
func (r *Registry) Validate() error {
	for role, items := range RoleViews {
		for _, item := range items {
			if r.surface.Section(item.Target) == nil {
				return fmt.Errorf("role %s: section %q is not registered", role, item.Target)
			}
			if r.renderers[item.Target] == nil {
				return fmt.Errorf("role %s: section %q has no renderer bound", role, item.Target)
			}
		}
	}
	return nil
}

// BuildNavigation replaces the sidebar with the role's entries and activates
// the first one, the simulated first click of the web UI.
func (r *Registry) BuildNavigation(ctx context.Context, role models.Role) {
	r.nav = append([]NavItem(nil), RoleViews[role]...)
	r.active = -1
	if len(r.nav) > 0 {
		r.Select(ctx, r.nav[0].Target)
	}
}

// Select is an explicit navigation click: swap the visible section, update
// the page title, and fire that section's data fetch exactly once.
func (r *Registry) Select(ctx context.Context, target string) {
	for i, item := range r.nav {
		if item.Target != target {
			continue
		}
		r.active = i
		r.surface.SetTitle(item.Label)
		r.surface.ShowOnly(item.Target)
		if fn := r.renderers[item.Target]; fn != nil {
			fn(ctx)
		}
		return
	}
	r.log.Debug().Str("target", target).Msg("select ignored, target not in current nav")
}

// ShowSection swaps visibility without refetching. Unknown ids no-op.
func (r *Registry) ShowSection(target string) {
	r.surface.ShowOnly(target)
}

// Nav returns the current sidebar entries.
func (r *Registry) Nav() []NavItem {
	return append([]NavItem(nil), r.nav...)
}

// ActiveIndex is the selected sidebar position, -1 before any selection.
func (r *Registry) ActiveIndex() int {
	return r.active
}
