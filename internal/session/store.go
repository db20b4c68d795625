package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/apiclient"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/domain"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/events"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/navigation"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/storage"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/timer"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/validation"
	"go.uber.org/zap"
)

// AuthAPI is the part of the remote API the session needs.
type AuthAPI interface {
	Me(ctx context.Context) (domain.UserProfile, error)
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	Register(ctx context.Context, reg domain.Registration) error
	UpdatePhone(ctx context.Context, userID, phone string) error
	UpdateEmail(ctx context.Context, userID, email string) error
}

// Store owns the auth state and mirrors it into durable storage.
// Network failures never escape: every operation resolves to a bool and a
// queued notification.
type Store struct {
	mu    sync.RWMutex
	state domain.Session

	api      AuthAPI
	storage  storage.Store
	notifier domain.Notifier
	nav      navigation.Navigator
	events   events.Publisher
	clock    timer.Clock
	logger   *logger.Logger
}

func NewStore(api AuthAPI, st storage.Store, notifier domain.Notifier, nav navigation.Navigator, pub events.Publisher, clock timer.Clock, log *logger.Logger) *Store {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Store{
		api:      api,
		storage:  st,
		notifier: notifier,
		nav:      nav,
		events:   pub,
		clock:    clock,
		logger:   log.Named("SessionStore"),
	}
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.state
	if s.state.User != nil {
		u := *s.state.User
		out.User = &u
	}
	return out
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsLoggedIn
}

// AuthContext attaches the current bearer token to ctx.
func (s *Store) AuthContext(ctx context.Context) context.Context {
	return apiclient.WithToken(ctx, s.Token())
}

// Hydrate restores the session persisted by a previous run and re-checks the
// token with the API. A rejected token silently resets to logged-out.
func (s *Store) Hydrate(ctx context.Context) bool {
	token, cached, ok := s.readPersisted(ctx)
	if !ok {
		s.reset(ctx)
		return false
	}

	if expired, exp := tokenExpired(token, s.clock.Now()); expired {
		s.logger.Info("persisted token already expired", zap.Time("expired_at", exp))
		s.reset(ctx)
		return false
	}

	fresh, err := s.api.Me(apiclient.WithToken(ctx, token))
	if err != nil {
		s.logger.Info("persisted token rejected, starting logged out", zap.Error(err))
		s.reset(ctx)
		return false
	}

	profile := mergeProfile(cached, fresh)
	s.withDays(&profile)
	s.persistProfile(ctx, profile)

	s.mu.Lock()
	s.state = domain.Session{IsLoggedIn: true, Token: token, User: &profile}
	s.mu.Unlock()

	s.logger.Info("session restored", zap.String("user_id", profile.ID))
	return true
}

// Login accepts an email (anything containing "@") or a phone number.
// Success is defined by receiving a token; a failed profile fetch afterwards
// only degrades the cached profile.
func (s *Store) Login(ctx context.Context, identifier, password string) bool {
	identifier = strings.TrimSpace(identifier)
	if err := validation.Login(identifier, password); err != nil {
		s.notifier.Push(err.(validation.Errors).Message(), domain.KindWarning)
		return false
	}

	creds := Credentials(identifier, password)
	token, err := s.api.Login(ctx, creds)
	if err != nil {
		s.logger.Info("login rejected", zap.Bool("by_email", creds.Email != ""), zap.Error(err))
		s.notifier.Push("Ошибка входа: "+err.Error(), domain.KindDanger)
		return false
	}

	if err := s.storage.Set(ctx, storage.KeyToken, token); err != nil {
		s.logger.Error("failed to persist token", zap.Error(err))
	}
	s.mu.Lock()
	s.state = domain.Session{IsLoggedIn: true, Token: token}
	s.mu.Unlock()

	profile, err := s.api.Me(apiclient.WithToken(ctx, token))
	if err != nil {
		s.logger.Warn("profile fetch after login failed, using minimal profile", zap.Error(err))
		profile = minimalProfile(creds)
	}
	s.withDays(&profile)

	s.mu.Lock()
	// a concurrent logout wins
	current := s.state.Token == token
	if current {
		s.state.User = &profile
	}
	s.mu.Unlock()
	if current {
		s.persistProfile(ctx, profile)
	}

	s.notifier.Push("Вы успешно вошли в аккаунт", domain.KindSuccess)
	s.publish(ctx, events.SubjectSessionLogin, map[string]string{"user_id": profile.ID})
	return true
}

// Logout clears everything and sends the user home.
func (s *Store) Logout(ctx context.Context) {
	userID := s.userID()
	s.reset(ctx)
	s.notifier.Push("Вы вышли из аккаунта", domain.KindInfo)
	s.nav.Navigate(navigation.RouteHome)
	s.publish(ctx, events.SubjectSessionLogout, map[string]string{"user_id": userID})
}

// Expire is the reaction to a 401 from any authenticated call: logout and
// redirect to sign-in.
func (s *Store) Expire(ctx context.Context) {
	if !s.IsLoggedIn() {
		return
	}
	userID := s.userID()
	s.reset(ctx)
	s.notifier.Push("Сессия истекла, войдите снова", domain.KindWarning)
	s.nav.Navigate(navigation.RouteSignIn)
	s.publish(ctx, events.SubjectSessionExpired, map[string]string{"user_id": userID})
}

// Register never logs the user in.
func (s *Store) Register(ctx context.Context, reg domain.Registration) bool {
	if err := validation.Registration(reg); err != nil {
		s.notifier.Push(err.(validation.Errors).Message(), domain.KindWarning)
		return false
	}

	if err := s.api.Register(ctx, reg); err != nil {
		s.logger.Info("registration rejected", zap.Error(err))
		if apiclient.IsValidation(err) {
			msg := err.Error()
			var apiErr *apiclient.Error
			if errors.As(err, &apiErr) {
				msg = apiErr.Hint()
			}
			s.notifier.Push("Проверьте данные:\n"+msg, domain.KindDanger)
		} else {
			s.notifier.Push(err.Error(), domain.KindDanger)
		}
		return false
	}

	s.notifier.Push("Регистрация прошла успешно. Войдите в аккаунт", domain.KindSuccess)
	s.nav.Navigate(navigation.RouteSignIn)
	return true
}

// UpdateProfile pushes phone/email changes through their own endpoints and
// only then merges the patch locally. Any failed call aborts the whole update.
func (s *Store) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) bool {
	current := s.Snapshot()
	if !current.IsLoggedIn || current.User == nil {
		s.notifier.Push("Войдите, чтобы изменить профиль", domain.KindWarning)
		return false
	}
	if err := validation.ProfilePatch(patch); err != nil {
		s.notifier.Push(err.(validation.Errors).Message(), domain.KindWarning)
		return false
	}

	authCtx := apiclient.WithToken(ctx, current.Token)
	user := current.User

	if patch.Phone != nil && *patch.Phone != user.Phone {
		if err := s.api.UpdatePhone(authCtx, user.ID, *patch.Phone); err != nil {
			s.failUpdate(ctx, "телефон", err)
			return false
		}
	}
	if patch.Email != nil && *patch.Email != user.Email {
		if err := s.api.UpdateEmail(authCtx, user.ID, *patch.Email); err != nil {
			s.failUpdate(ctx, "email", err)
			return false
		}
	}

	s.mu.Lock()
	if s.state.Token != current.Token || s.state.User == nil {
		s.mu.Unlock()
		return false
	}
	updated := *s.state.User
	applyPatch(&updated, patch)
	s.state.User = &updated
	s.mu.Unlock()

	s.persistProfile(ctx, updated)
	s.notifier.Push("Профиль обновлён", domain.KindSuccess)
	s.publish(ctx, events.SubjectProfileUpdated, map[string]string{"user_id": updated.ID})
	return true
}

func (s *Store) failUpdate(ctx context.Context, field string, err error) {
	s.logger.Info("profile field update rejected", zap.String("field", field), zap.Error(err))
	if apiclient.IsUnauthorized(err) {
		s.Expire(ctx)
		return
	}
	s.notifier.Push("Не удалось обновить "+field+": "+err.Error(), domain.KindDanger)
}

func (s *Store) readPersisted(ctx context.Context) (string, *domain.UserProfile, bool) {
	token, ok, err := s.storage.Get(ctx, storage.KeyToken)
	if err != nil {
		s.logger.Warn("failed to read persisted token", zap.Error(err))
		return "", nil, false
	}
	if !ok || token == "" {
		return "", nil, false
	}

	raw, ok, err := s.storage.Get(ctx, storage.KeyUser)
	if err != nil || !ok {
		return "", nil, false
	}
	var cached domain.UserProfile
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		s.logger.Warn("persisted profile is not valid JSON, ignoring it", zap.Error(err))
		return "", nil, false
	}
	return token, &cached, true
}

func (s *Store) persistProfile(ctx context.Context, p domain.UserProfile) {
	data, err := json.Marshal(p)
	if err != nil {
		s.logger.Error("failed to encode profile", zap.Error(err))
		return
	}
	if err := s.storage.Set(ctx, storage.KeyUser, string(data)); err != nil {
		s.logger.Error("failed to persist profile", zap.Error(err))
	}
}

func (s *Store) reset(ctx context.Context) {
	if err := s.storage.Delete(ctx, storage.KeyToken, storage.KeyUser); err != nil {
		s.logger.Error("failed to clear persisted session", zap.Error(err))
	}
	s.mu.Lock()
	s.state = domain.Session{}
	s.mu.Unlock()
}

func (s *Store) userID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return ""
	}
	return s.state.User.ID
}

func (s *Store) withDays(p *domain.UserProfile) {
	p.DaysSinceRegistration = 0
	if reg, ok := domain.ParseDate(p.RegistrationDate); ok {
		p.DaysSinceRegistration = domain.DaysBetween(reg, s.clock.Now())
	}
}

func (s *Store) publish(ctx context.Context, subject string, data interface{}) {
	if err := s.events.Publish(ctx, subject, data); err != nil {
		s.logger.Warn("failed to publish session event", zap.String("subject", subject), zap.Error(err))
	}
}
