package teams

import (
	"context"
	"fmt"
	"time"
)

// TokenSet is the access token state for a session. MSAL retains the refresh
// token internally; renewal goes through the client's cached account instead
// of a raw refresh-token field.
type TokenSet struct {
	AccessToken string
	Expiry      time.Time
}

// Expired reports whether the access token's expiry has been reached.
func (t TokenSet) Expired(now time.Time) bool {
	return !now.Before(t.Expiry)
}

// IsTokenExpired reports whether the session's access token has expired.
// False immediately after a successful login.
func (s *Session) IsTokenExpired() bool {
	return s.token.Expired(time.Now())
}

// login performs the initial token acquisition: username/password for
// organizational accounts, device-code for personal ones. Only ever called
// while no token has been obtained; once any login succeeds the session
// relies solely on silent renewal. On failure the token state is untouched.
func (s *Session) login(ctx context.Context) error {
	auth, profile, err := s.client(ctx)
	if err != nil {
		return err
	}

	var res authResult
	switch s.kind {
	case AccountPersonal:
		s.log.Info().Msg("starting device-code sign-in")
		res, err = auth.AcquireByDeviceCode(ctx, profile.Scope, s.prompt)
	case AccountOrganizational:
		res, err = auth.AcquireByUsernamePassword(ctx, profile.Scope, s.email, s.password)
	default:
		return ErrUnknownAccount
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	s.setToken(res)
	s.log.Info().Time("expiry", res.ExpiresOn).Msg("signed in")
	return nil
}

// refresh renews the token set from the client's cached account. Requires a
// prior login; with no account enrolled it fails without mutating the token.
func (s *Session) refresh(ctx context.Context) error {
	auth, profile, err := s.client(ctx)
	if err != nil {
		return err
	}
	if !auth.HasAccount() {
		return ErrNoAccount
	}

	res, err := auth.AcquireSilent(ctx, profile.Scope)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	s.setToken(res)
	return nil
}

// setToken overwrites the token state after a successful grant.
func (s *Session) setToken(res authResult) {
	s.needLogin = false
	s.token = TokenSet{AccessToken: res.AccessToken, Expiry: res.ExpiresOn}
}

// accessToken returns a usable access token, logging in on first use and
// renewing once the expiry has been reached. A failed renewal is non-fatal
// here; the stale token is returned and the presence call's status check
// decides. Re-login is never attempted after the first success, even if
// renewal keeps failing.
func (s *Session) accessToken(ctx context.Context) (string, error) {
	if s.needLogin {
		if err := s.login(ctx); err != nil {
			return "", err
		}
	}

	if s.IsTokenExpired() {
		if err := s.refresh(ctx); err != nil {
			s.log.Warn().Err(err).Msg("token renewal failed, keeping previous token")
		}
	}

	if s.token.AccessToken == "" {
		return "", ErrNoAccessToken
	}
	return s.token.AccessToken, nil
}

// silentToken returns the consumer-scope token a personal account exchanges
// for a skype token. Cached per session. Requires an enrolled account; with
// none present this fails cleanly instead of indexing into an empty list.
func (s *Session) silentToken(ctx context.Context) (string, error) {
	if s.silentTok != "" {
		return s.silentTok, nil
	}

	auth, _, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	res, err := auth.AcquireSilent(ctx, consumerScope)
	if err != nil {
		return "", fmt.Errorf("silent token: %w", err)
	}

	s.silentTok = res.AccessToken
	return s.silentTok, nil
}
