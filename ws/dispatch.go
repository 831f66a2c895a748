package ws

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/c14220110/radiology-client/internal/common/models"
)

// Push-channel event names, as emitted by the backend and by this client.
const (
	EventCaseCreated       = "case-created"
	EventImagesUpdated     = "images-updated"
	EventDoctorUpdated     = "doctor-updated"
	EventRadiologistUpdate = "radiologist-updated"
	EventAIReportGenerated = "ai-report-generated"
	EventAdminUpdated      = "admin-updated"
)

// interests is the one dispatch table: which roles care about which event.
// The policy lives here and nowhere else, so it can be audited and tested
// on its own.
var interests = map[string][]models.Role{
	EventCaseCreated:       {models.RoleAdmin, models.RoleDoctor, models.RoleTechnician, models.RolePatient},
	EventImagesUpdated:     {models.RoleTechnician, models.RoleRadiologist, models.RoleDoctor},
	EventDoctorUpdated:     {models.RoleRadiologist, models.RolePatient, models.RoleAdmin},
	EventRadiologistUpdate: {models.RoleDoctor, models.RolePatient},
	EventAIReportGenerated: {models.RoleRadiologist, models.RoleDoctor, models.RolePatient},
	EventAdminUpdated:      {models.RoleAdmin},
}

// RefreshFunc re-renders one role's dashboard.
type RefreshFunc func(ctx context.Context)

// Dispatcher routes an incoming event to the refresh of exactly the
// controllers whose role cares about it. The role is read at dispatch time,
// not at subscription time.
type Dispatcher struct {
	role    func() models.Role
	refresh map[models.Role]RefreshFunc
	log     zerolog.Logger
}

// NewDispatcher builds a dispatcher over the given current-role provider.
func NewDispatcher(role func() models.Role) *Dispatcher {
	return &Dispatcher{
		role:    role,
		refresh: make(map[models.Role]RefreshFunc),
		log:     log.With().Str("component", "ws.dispatch").Logger(),
	}
}

// BindRole attaches a role's refresh function.
func (d *Dispatcher) BindRole(role models.Role, fn RefreshFunc) {
	d.refresh[role] = fn
}

// Dispatch refreshes the current role's dashboard when that role is listed
// for the event. Anything else is a no-op. Events are never queued or
// replayed; an event landing while a render is in flight simply starts an
// overlapping render, which is accepted (last write wins).
func (d *Dispatcher) Dispatch(ctx context.Context, event string) {
	current := d.role()
	if current == "" {
		return
	}
	roles, known := interests[event]
	if !known {
		d.log.Debug().Str("event", event).Msg("unknown event ignored")
		return
	}
	for _, role := range roles {
		if role != current {
			continue
		}
		fn := d.refresh[role]
		if fn == nil {
			return
		}
		d.log.Debug().Str("event", event).Str("role", string(role)).Msg("refreshing")
		fn(ctx)
		return
	}
}
