package app

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/c14220110/radiology-client/config"
	adminControllers "github.com/c14220110/radiology-client/internal/admin/controllers"
	adminServices "github.com/c14220110/radiology-client/internal/admin/services"
	"github.com/c14220110/radiology-client/internal/common/models"
	doctorControllers "github.com/c14220110/radiology-client/internal/doctor/controllers"
	doctorServices "github.com/c14220110/radiology-client/internal/doctor/services"
	patientControllers "github.com/c14220110/radiology-client/internal/patient/controllers"
	patientServices "github.com/c14220110/radiology-client/internal/patient/services"
	radiologistControllers "github.com/c14220110/radiology-client/internal/radiologist/controllers"
	radiologistServices "github.com/c14220110/radiology-client/internal/radiologist/services"
	"github.com/c14220110/radiology-client/internal/session"
	technicianControllers "github.com/c14220110/radiology-client/internal/technician/controllers"
	technicianServices "github.com/c14220110/radiology-client/internal/technician/services"
	"github.com/c14220110/radiology-client/internal/view"
	"github.com/c14220110/radiology-client/pkg/apiclient"
	"github.com/c14220110/radiology-client/ws"
)

// App is the single top-level application state: session, surface,
// navigation, controllers and the push channel. Every component receives
// what it needs from here; there are no package-level globals.
type App struct {
	cfg *config.Config

	API      *apiclient.Client
	Sessions *session.Store
	Surface  *view.Surface
	Registry *view.Registry
	Notifier *ws.Notifier

	Admin       *adminControllers.AdminController
	Doctor      *doctorControllers.DoctorController
	Technician  *technicianControllers.TechnicianController
	Radiologist *radiologistControllers.RadiologistController
	Patient     *patientControllers.PatientController

	log zerolog.Logger
}

// New wires services, controllers, the view registry and the realtime
// dispatcher, then validates that every navigable section is bound.
func New(cfg *config.Config, out io.Writer) (*App, error) {
	api := apiclient.New(cfg.APIBaseURL, cfg.HTTPTimeout)
	sessions := session.NewStore(api)
	surface := view.NewSurface(out)
	registry := view.NewRegistry(surface)

	wsURL, err := ws.ParseURL(cfg.WSURL)
	if err != nil {
		return nil, err
	}
	dispatcher := ws.NewDispatcher(sessions.Role)
	notifier := ws.NewNotifier(wsURL, api.HTTPClient.Jar, dispatcher)

	admin := adminControllers.NewAdminController(adminServices.NewAdminService(api), surface, notifier.Emit)
	doctor := doctorControllers.NewDoctorController(doctorServices.NewDoctorService(api), sessions, surface, notifier.Emit)
	technician := technicianControllers.NewTechnicianController(technicianServices.NewTechnicianService(api), surface, notifier.Emit)
	radiologist := radiologistControllers.NewRadiologistController(radiologistServices.NewRadiologistService(api), surface, notifier.Emit)
	patient := patientControllers.NewPatientController(patientServices.NewPatientService(api), sessions, surface)

	dispatcher.BindRole(models.RoleAdmin, admin.Refresh)
	dispatcher.BindRole(models.RoleDoctor, doctor.Refresh)
	dispatcher.BindRole(models.RoleTechnician, technician.Refresh)
	dispatcher.BindRole(models.RoleRadiologist, radiologist.Refresh)
	dispatcher.BindRole(models.RolePatient, patient.Refresh)

	registry.Bind(view.SectionAdminUsers, staticSection(surface, view.SectionAdminUsers,
		"Create doctor, technician, radiologist or patient accounts."))
	registry.Bind(view.SectionAdminSchedule, admin.RefreshPickLists)
	registry.Bind(view.SectionAdminCases, admin.Render)
	registry.Bind(view.SectionDoctorCases, doctor.Render)
	registry.Bind(view.SectionDoctorNewCase, staticSection(surface, view.SectionDoctorNewCase,
		"Schedule a new case for one of your patients."))
	registry.Bind(view.SectionTechCases, technician.Render)
	registry.Bind(view.SectionRadioCases, radiologist.Render)
	registry.Bind(view.SectionPatientCases, patient.Render)
	registry.Bind(view.SectionPatientHistory, patient.RenderHistory)

	if err := registry.Validate(); err != nil {
		return nil, err
	}

	return &App{
		cfg:         cfg,
		API:         api,
		Sessions:    sessions,
		Surface:     surface,
		Registry:    registry,
		Notifier:    notifier,
		Admin:       admin,
		Doctor:      doctor,
		Technician:  technician,
		Radiologist: radiologist,
		Patient:     patient,
		log:         log.With().Str("component", "app").Logger(),
	}, nil
}

// staticSection renders fixed helper text for form-only sections.
func staticSection(surface *view.Surface, id, text string) view.RenderFunc {
	return func(context.Context) {
		if sec := surface.Section(id); sec != nil {
			sec.SetContent(text)
		}
	}
}

// Start attempts the silent session restore. A missing session is the
// normal logged-out state, not an error.
func (a *App) Start(ctx context.Context) {
	if sess := a.Sessions.Restore(ctx); sess != nil {
		a.enterDashboard(ctx, sess)
	}
}

// Login authenticates and, on success, brings up the role's dashboard. A
// rejection comes back as an error whose message is shown to the user; it
// is never re-thrown past the caller.
func (a *App) Login(ctx context.Context, identity, secret string, role models.Role) error {
	sess, err := a.Sessions.Login(ctx, identity, secret, role)
	if err != nil {
		return err
	}
	a.enterDashboard(ctx, sess)
	return nil
}

// Logout drops the push channel, notifies the server best-effort and
// returns to the logged-out view.
func (a *App) Logout(ctx context.Context) {
	a.Notifier.Close()
	a.Sessions.Logout(ctx)
	a.Surface.SetHeader("")
	a.Surface.SetTitle("")
	a.Surface.ShowOnly("")
}

func (a *App) enterDashboard(ctx context.Context, sess *models.Session) {
	a.Surface.SetHeader(sess.Identity + " / " + string(sess.Role))
	a.Registry.BuildNavigation(ctx, sess.Role)
	// A dead push channel degrades to manual refresh, same as the web UI.
	if err := a.Notifier.Connect(ctx); err != nil {
		a.log.Warn().Err(err).Msg("push channel unavailable")
	}
}
