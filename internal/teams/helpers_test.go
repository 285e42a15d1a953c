package teams

import (
	"context"
	"time"
)

// fakeAuth implements authClient for token-lifecycle tests.
type fakeAuth struct {
	result     authResult
	err        error
	hasAccount bool

	passwordCalls   int
	deviceCodeCalls int
	silentCalls     int

	// promptMessage is handed to the device-code prompt when non-empty.
	promptMessage string

	// silentResults, when set, is consumed one result per AcquireSilent
	// call after the first.
	silentResults []authResult
}

func (f *fakeAuth) AcquireByUsernamePassword(
	_ context.Context, _, _, _ string,
) (authResult, error) {
	f.passwordCalls++
	if f.err != nil {
		return authResult{}, f.err
	}
	f.hasAccount = true
	return f.result, nil
}

func (f *fakeAuth) AcquireByDeviceCode(
	_ context.Context, _ string, prompt func(string),
) (authResult, error) {
	f.deviceCodeCalls++
	if f.err != nil {
		return authResult{}, f.err
	}
	if f.promptMessage != "" && prompt != nil {
		prompt(f.promptMessage)
	}
	f.hasAccount = true
	return f.result, nil
}

func (f *fakeAuth) AcquireSilent(_ context.Context, _ string) (authResult, error) {
	f.silentCalls++
	if !f.hasAccount {
		return authResult{}, ErrNoAccount
	}
	if f.err != nil {
		return authResult{}, f.err
	}
	if len(f.silentResults) > 0 {
		res := f.silentResults[0]
		f.silentResults = f.silentResults[1:]
		return res, nil
	}
	return f.result, nil
}

func (f *fakeAuth) HasAccount() bool {
	return f.hasAccount
}

// newTestSession builds a session whose OAuth client is the given fake and
// whose account kind is already classified.
func newTestSession(kind AccountKind, auth *fakeAuth) *Session {
	s := NewSession("user@example.com", "hunter2")
	s.kind = kind
	s.newAuthClient = func(AuthProfile) (authClient, error) {
		return auth, nil
	}
	if kind == AccountOrganizational {
		// Skip tenant discovery; the fake never dials the authority.
		s.profile = AuthProfile{Scope: orgScope, ClientID: orgClientID, Tenant: "abc-123"}
		s.auth = auth
	}
	return s
}

func validResult() authResult {
	return authResult{
		AccessToken: "access-token-1",
		ExpiresOn:   time.Now().Add(time.Hour),
	}
}

func expiredResult() authResult {
	return authResult{
		AccessToken: "stale-token",
		ExpiresOn:   time.Now().Add(-time.Minute),
	}
}
