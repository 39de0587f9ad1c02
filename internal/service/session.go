package service

import (
	"log/slog"
	"time"

	"github.com/efreitasn/fuelcalc/internal/domain"
	"github.com/efreitasn/fuelcalc/internal/engine"
	"github.com/efreitasn/fuelcalc/internal/store"
	"github.com/efreitasn/fuelcalc/internal/urlstate"
	"github.com/google/uuid"
)

// SessionView is a form view plus session metadata, ready for rendering.
type SessionView struct {
	SessionID string
	View      domain.FormView
	Display   string // formatted result; empty when View.HasResult is false
	ExpiresAt time.Time
}

// SessionService manages server-side calculator forms: every change to a
// field recomputes the evaluation, and sessions idle for longer than the
// TTL are expired.
type SessionService struct {
	store  *store.SessionStore
	expiry *engine.ExpiryManager
	calc   *CalculatorService
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// NewSessionService creates a SessionService and registers it as the
// expiry manager's expirer.
func NewSessionService(
	store *store.SessionStore,
	expiry *engine.ExpiryManager,
	calc *CalculatorService,
	ttl time.Duration,
	logger *slog.Logger,
) *SessionService {
	s := &SessionService{
		store:  store,
		expiry: expiry,
		calc:   calc,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
	expiry.SetExpirer(s)
	return s
}

// Create starts a session holding in. Fields in touched show their
// errors immediately, which is how shared links surface bad values.
func (s *SessionService) Create(in domain.RawInput, touched domain.FieldSet) (*SessionView, error) {
	now := s.now()
	form := domain.NewForm(in, engine.Evaluate)
	for _, f := range domain.Fields {
		if touched.Has(f) {
			form.Touch(f)
		}
	}

	sess := &domain.Session{
		SessionID:    uuid.New().String(),
		Form:         form,
		CreatedAt:    now,
		LastAccessAt: now,
	}
	s.store.Create(sess)
	s.expiry.Track(sess.SessionID, now.Add(s.ttl))

	s.logger.Debug("session created", slog.String("session_id", sess.SessionID))

	sess.Mu.Lock()
	defer sess.Mu.Unlock()
	return s.view(sess)
}

// Get returns the current view of a session.
func (s *SessionService) Get(id string) (*SessionView, error) {
	return s.update(id, func(*domain.Form) {})
}

// SetField replaces one field's raw text and recomputes.
func (s *SessionService) SetField(id string, field domain.Field, value string) (*SessionView, error) {
	return s.update(id, func(f *domain.Form) {
		f.Set(field, value)
	})
}

// Touch marks a field as interacted with.
func (s *SessionService) Touch(id string, field domain.Field) (*SessionView, error) {
	return s.update(id, func(f *domain.Form) {
		f.Touch(field)
	})
}

// Share returns the query string that reproduces the session's input.
func (s *SessionService) Share(id string) (string, error) {
	var query string
	_, err := s.update(id, func(f *domain.Form) {
		query = urlstate.Query(f.Input)
	})
	if err != nil {
		return "", err
	}
	return query, nil
}

// Delete removes a session. It returns domain.ErrSessionNotFound if the
// session does not exist.
func (s *SessionService) Delete(id string) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.expiry.Forget(id)
	s.logger.Debug("session deleted", slog.String("session_id", id))
	return nil
}

// ExpireSession removes a session whose idle deadline has passed. A
// session accessed after its deadline was scheduled is left alone; the
// access already re-tracked it.
func (s *SessionService) ExpireSession(id string, now time.Time) {
	sess, err := s.store.Get(id)
	if err != nil {
		return
	}

	sess.Mu.Lock()
	lastAccess := sess.LastAccessAt
	sess.Mu.Unlock()
	alive := lastAccess.Add(s.ttl).After(now)
	if alive {
		return
	}

	if err := s.store.Delete(id); err != nil {
		return
	}
	s.logger.Info("session expired",
		slog.String("session_id", id),
		slog.Time("last_access_at", lastAccess),
	)
}

// update looks up a session, applies fn under its lock, refreshes the idle
// deadline and returns the new view. A session past its deadline that
// has not been swept yet is reported as not found.
func (s *SessionService) update(id string, fn func(*domain.Form)) (*SessionView, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sess.Mu.Lock()
	defer sess.Mu.Unlock()

	if !sess.LastAccessAt.Add(s.ttl).After(now) {
		_ = s.store.Delete(id)
		s.expiry.Forget(id)
		return nil, domain.ErrSessionNotFound
	}

	fn(sess.Form)
	sess.LastAccessAt = now
	s.expiry.Track(id, now.Add(s.ttl))
	return s.view(sess)
}

// view must be called with sess.Mu held.
func (s *SessionService) view(sess *domain.Session) (*SessionView, error) {
	v := &SessionView{
		SessionID: sess.SessionID,
		View:      sess.Form.View(),
		ExpiresAt: sess.LastAccessAt.Add(s.ttl),
	}
	if v.View.HasResult {
		display, err := s.calc.Format(v.View.Result)
		if err != nil {
			return nil, err
		}
		v.Display = display
	}
	return v, nil
}
