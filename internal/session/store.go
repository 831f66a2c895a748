package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/c14220110/radiology-client/internal/common/models"
	"github.com/c14220110/radiology-client/pkg/apiclient"
	"github.com/c14220110/radiology-client/pkg/utils"
)

// Store owns the one Session of the page lifetime. The render loop and the
// websocket read pump both read it, so access goes through an RWMutex.
type Store struct {
	api *apiclient.Client

	mu      sync.RWMutex
	current *models.Session

	log zerolog.Logger
}

func NewStore(api *apiclient.Client) *Store {
	return &Store{
		api: api,
		log: log.With().Str("component", "session").Logger(),
	}
}

// Current returns the active session, or nil when not logged in.
func (s *Store) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// Role returns the CURRENT role, empty when logged out. The realtime
// dispatcher consults this on every event.
func (s *Store) Role() models.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Role
}

type authPayload struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Restore asks the backend who the session cookie belongs to. Failure of any
// kind, network included, is the expected "not logged in" state: the session
// stays empty and nothing is reported.
func (s *Store) Restore(ctx context.Context) *models.Session {
	env, err := s.api.Get(ctx, "/auth/me")
	if err != nil {
		s.log.Debug().Err(err).Msg("no session to restore")
		s.clear()
		return nil
	}
	sess := s.sessionFromPayload(env)
	if sess == nil {
		s.clear()
		return nil
	}
	s.set(*sess)
	s.log.Info().Str("identity", sess.Identity).Str("role", string(sess.Role)).Msg("session restored")
	return s.Current()
}

// Login authenticates and populates the session. Bad credentials come back
// as an *apiclient.APIError whose message is meant for display; the caller
// shows it and moves on.
func (s *Store) Login(ctx context.Context, identity, secret string, role models.Role) (*models.Session, error) {
	if identity == "" {
		return nil, &apiclient.ValidationError{Field: "username"}
	}
	if secret == "" {
		return nil, &apiclient.ValidationError{Field: "password"}
	}
	if !models.ValidRole(role) {
		return nil, &apiclient.ValidationError{Field: "role"}
	}

	env, err := s.api.Post(ctx, "/auth/login", map[string]string{
		"username": identity,
		"password": secret,
		"role":     string(role),
	})
	if err != nil {
		return nil, err
	}

	sess := s.sessionFromPayload(env)
	if sess == nil {
		return nil, &apiclient.APIError{Status: 200, Message: "login response carried no user"}
	}
	s.set(*sess)
	s.log.Info().Str("identity", sess.Identity).Str("role", string(sess.Role)).Msg("logged in")
	return s.Current(), nil
}

// Logout notifies the server best-effort and clears the session regardless.
func (s *Store) Logout(ctx context.Context) {
	if _, err := s.api.Post(ctx, "/auth/logout", nil); err != nil {
		s.log.Debug().Err(err).Msg("logout request failed, clearing session anyway")
	}
	s.clear()
}

// sessionFromPayload extracts identity+role from an auth response. Newer
// backends return a user object; older ones only a signed token, in which
// case the unverified claims fill in.
func (s *Store) sessionFromPayload(env apiclient.Envelope) *models.Session {
	var payload authPayload
	if err := env.Decode(&payload); err != nil {
		return nil
	}
	if payload.User.Username != "" && models.ValidRole(payload.User.Role) {
		userID := payload.User.ID
		if userID == "" {
			userID = payload.User.Username
		}
		return &models.Session{Identity: payload.User.Username, UserID: userID, Role: payload.User.Role}
	}
	if payload.Token != "" {
		claims, err := utils.PeekClaims(payload.Token)
		if err == nil && models.ValidRole(models.Role(claims.Role)) {
			userID := claims.Subject
			if userID == "" {
				userID = claims.Username
			}
			return &models.Session{Identity: claims.Username, UserID: userID, Role: models.Role(claims.Role)}
		}
	}
	return nil
}

func (s *Store) set(sess models.Session) {
	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
}

func (s *Store) clear() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}
