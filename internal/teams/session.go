package teams

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/alwaysgreen/alwaysgreen/internal/logger"
)

// Default service endpoints. Fields on the session so tests can point them at
// a local server.
const (
	defaultODCBaseURL = "https://odc.officeapps.live.com/odc/v2.1"

	defaultConsumerAuthzURL = "https://teams.live.com/api/auth/v1.0/authz/consumer"
	defaultOrgAuthzURL      = "https://authsvc.teams.microsoft.com/v1.0/authz"

	defaultConsumerPresenceURL = "https://presence.teams.live.com/v1/me/forceavailability"
	defaultOrgPresenceURL      = "https://presence.teams.microsoft.com/v1/me/forceavailability"
)

// httpTimeout bounds each individual request to Microsoft's services.
const httpTimeout = 30 * time.Second

// Session holds one credential's account classification, OAuth client and
// token state, and issues presence updates with them. Cached fields are
// mutated in place; construct one Session per credential and drive it from a
// single goroutine. SetActivity serializes itself in case a slow cycle ever
// overlaps the next tick.
type Session struct {
	email    string
	password string

	httpClient *http.Client
	limiter    *RateLimiter
	log        zerolog.Logger

	// requestID correlates this session's calls in Microsoft-side logs.
	requestID string

	// prompt receives the device-code instruction message. Defaults to
	// stdout.
	prompt func(message string)

	// newAuthClient builds the OAuth client for a profile. Swapped for a
	// fake in tests.
	newAuthClient func(profile AuthProfile) (authClient, error)

	odcBaseURL          string
	consumerAuthzURL    string
	orgAuthzURL         string
	consumerPresenceURL string
	orgPresenceURL      string

	mu sync.Mutex

	kind      AccountKind
	auth      authClient
	profile   AuthProfile
	needLogin bool
	token     TokenSet
	silentTok string
	skypeTok  string
}

// NewSession creates a session for one credential. The HTTP client is
// long-lived and owned by the session; connections are reused across the
// classification, broker and presence calls.
func NewSession(email, password string) *Session {
	id := uuid.NewString()
	return &Session{
		email:      email,
		password:   password,
		httpClient: &http.Client{Timeout: httpTimeout},
		limiter:    NewRateLimiter(ServicePresence),
		log:        logger.Get().With().Str("session_id", id).Logger(),
		requestID:  id,
		prompt: func(message string) {
			fmt.Fprintln(os.Stdout, message)
		},
		newAuthClient:       newAuthClient,
		odcBaseURL:          defaultODCBaseURL,
		consumerAuthzURL:    defaultConsumerAuthzURL,
		orgAuthzURL:         defaultOrgAuthzURL,
		consumerPresenceURL: defaultConsumerPresenceURL,
		orgPresenceURL:      defaultOrgPresenceURL,
		needLogin:           true,
	}
}

// Email returns the identity the session was constructed with.
func (s *Session) Email() string {
	return s.email
}

// client returns the cached OAuth client, constructing it on first use.
// Fails with ErrClientUnavailable when the account kind is unknown or the
// selected profile carries no client id, and with ErrNoTenant when an
// organizational account's tenant could not be discovered.
func (s *Session) client(ctx context.Context) (authClient, AuthProfile, error) {
	if s.auth != nil {
		return s.auth, s.profile, nil
	}

	profile := s.authProfile(ctx)
	if profile.IsZero() {
		return nil, AuthProfile{}, ErrClientUnavailable
	}
	if profile.Tenant == "" {
		return nil, AuthProfile{}, ErrNoTenant
	}

	auth, err := s.newAuthClient(profile)
	if err != nil {
		return nil, AuthProfile{}, fmt.Errorf("%w: %v", ErrClientUnavailable, err)
	}

	s.auth = auth
	s.profile = profile
	return s.auth, s.profile, nil
}
