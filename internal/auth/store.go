package auth

import (
	"context"
	"sync"

	"github.com/crema-dev/crema/internal/api"
	"github.com/crema-dev/crema/internal/log"
	"github.com/crema-dev/crema/internal/model"
)

// Snapshot is a point-in-time copy of the session state for rendering.
type Snapshot struct {
	User               *model.User
	Token              string
	IsAuthenticated    bool
	Loading            bool
	CheckingAuthStatus bool
	Err                string
}

// Result is the outcome of a login or register attempt. These operations
// report failure through the result rather than an error so callers can
// surface the message without unwrapping.
type Result struct {
	Success bool
	Error   string
	// Details carries the server's per-field error payload, when present
	// (register returns one for duplicate emails and weak passwords).
	Details map[string][]string
}

// Store is the process-wide authentication session. Exactly one instance
// exists per running client; every view reads it through Snapshot.
type Store struct {
	client *api.Client
	keys   *Keychain
	logger *log.Logger

	mu                 sync.Mutex
	user               *model.User
	isAuthenticated    bool
	loading            bool
	checkingAuthStatus bool
	err                string
}

// NewStore creates the session store. The keychain seeds the initial
// state: a persisted token means rehydration is pending, so
// CheckingAuthStatus starts true.
func NewStore(client *api.Client, keys *Keychain, logger *log.Logger) *Store {
	s := &Store{
		client: client,
		keys:   keys,
		logger: logger,
	}
	if keys.Token() != "" {
		s.checkingAuthStatus = true
	}
	return s
}

// Snapshot returns a copy of the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		User:               s.user,
		Token:              s.keys.Token(),
		IsAuthenticated:    s.isAuthenticated,
		Loading:            s.loading,
		CheckingAuthStatus: s.checkingAuthStatus,
		Err:                s.err,
	}
}

// Rehydrate validates a persisted token by fetching the current user.
// On success the session becomes authenticated; on failure the token is
// discarded and the session stays anonymous. Always ends the
// checking-auth phase.
func (s *Store) Rehydrate(ctx context.Context) {
	if s.keys.Token() == "" {
		s.mu.Lock()
		s.checkingAuthStatus = false
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.checkingAuthStatus = true
	s.mu.Unlock()

	user, err := s.client.CurrentUser(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkingAuthStatus = false

	if err != nil {
		// Token is invalid or expired; drop it. The 401 hook may have
		// cleared the keychain already, which is fine.
		_ = s.keys.Clear()
		s.user = nil
		s.isAuthenticated = false
		s.log(log.Event{Event: log.EventAuthRejected, Error: err.Error()})
		return
	}

	s.user = user
	s.isAuthenticated = true
	s.log(log.Event{Event: log.EventAuthRehydrated, Email: user.Email})
}

// Login exchanges credentials for a session. Never returns an error;
// failures come back in the Result with the server message or the
// generic fallback.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.client.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		msg := api.ErrorMessage(err, "Login failed")
		s.fail(msg)
		s.log(log.Event{Event: log.EventLoginFailed, Email: email, Error: msg})
		return Result{Error: msg}
	}

	if err := s.keys.Save(resp.Token, resp.User); err != nil {
		s.fail(err.Error())
		return Result{Error: err.Error()}
	}

	s.mu.Lock()
	s.user = &resp.User
	s.isAuthenticated = true
	s.err = ""
	s.mu.Unlock()

	s.log(log.Event{Event: log.EventLogin, Email: resp.User.Email})
	return Result{Success: true}
}

// Register creates an account and logs the session in. Shape matches
// Login; the result additionally carries per-field details when the
// server rejects the payload.
func (s *Store) Register(ctx context.Context, name, email, password, confirmation string) Result {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.client.Register(ctx, api.RegisterRequest{
		Name:                 name,
		Email:                email,
		Password:             password,
		PasswordConfirmation: confirmation,
	})
	if err != nil {
		msg := api.ErrorMessage(err, "Registration failed")
		s.fail(msg)
		s.log(log.Event{Event: log.EventRegisterFailed, Email: email, Error: msg})
		return Result{Error: msg, Details: api.FieldErrors(err)}
	}

	if err := s.keys.Save(resp.Token, resp.User); err != nil {
		s.fail(err.Error())
		return Result{Error: err.Error()}
	}

	s.mu.Lock()
	s.user = &resp.User
	s.isAuthenticated = true
	s.err = ""
	s.mu.Unlock()

	s.log(log.Event{Event: log.EventRegister, Email: resp.User.Email})
	return Result{Success: true}
}

// Logout calls the logout endpoint best-effort and unconditionally tears
// the local session down. A server failure is logged, never surfaced:
// local teardown must proceed regardless of reachability.
func (s *Store) Logout(ctx context.Context) {
	if err := s.client.Logout(ctx); err != nil {
		s.log(log.Event{Event: log.EventLogoutFailed, Error: err.Error()})
	}

	_ = s.keys.Clear()

	s.mu.Lock()
	s.user = nil
	s.isAuthenticated = false
	s.loading = false
	s.err = ""
	s.mu.Unlock()

	s.log(log.Event{Event: log.EventLogout})
}

// Invalidate is the global 401 path: it clears persisted credentials and
// resets the session. Returns true only for the call that performed the
// teardown, so concurrent 401s trigger the redirect exactly once.
func (s *Store) Invalidate() bool {
	s.mu.Lock()
	hadSession := s.isAuthenticated || s.keys.Token() != ""
	s.user = nil
	s.isAuthenticated = false
	s.checkingAuthStatus = false
	if hadSession {
		// Clear under the store lock so a concurrent 401 observes the
		// session as already gone.
		_ = s.keys.Clear()
	}
	s.mu.Unlock()

	if !hadSession {
		return false
	}

	s.log(log.Event{Event: log.EventAuthRejected, Reason: "unauthorized"})
	return true
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	if v {
		s.err = ""
	}
	s.mu.Unlock()
}

func (s *Store) fail(msg string) {
	s.mu.Lock()
	s.user = nil
	s.isAuthenticated = false
	s.err = msg
	s.mu.Unlock()
}

func (s *Store) log(e log.Event) {
	if s.logger != nil {
		_ = s.logger.Append(e)
	}
}
