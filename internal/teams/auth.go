package teams

import (
	"context"
	"fmt"
	"time"

	"github.com/AzureAD/microsoft-authentication-library-for-go/apps/public"
)

// authResult is the slice of an MSAL authentication result the session cares
// about. MSAL keeps the refresh token internal; its cached account stands in
// for it when renewing.
type authResult struct {
	AccessToken string
	ExpiresOn   time.Time
}

// authClient is the surface of the MSAL public client the session uses.
// Narrowed to an interface so token-lifecycle tests can run without the real
// authority.
type authClient interface {
	// AcquireByUsernamePassword performs the resource-owner password grant.
	AcquireByUsernamePassword(ctx context.Context, scope, username, password string) (authResult, error)
	// AcquireByDeviceCode starts the device-code flow, hands the user-facing
	// instruction message to prompt, then blocks until the user completes
	// verification or ctx is cancelled.
	AcquireByDeviceCode(ctx context.Context, scope string, prompt func(message string)) (authResult, error)
	// AcquireSilent renews a token for scope from the client's cached
	// account without user interaction. Fails with ErrNoAccount when no
	// account has been enrolled by a previous login.
	AcquireSilent(ctx context.Context, scope string) (authResult, error)
	// HasAccount reports whether a login has enrolled an account.
	HasAccount() bool
}

// msalClient adapts the MSAL public client to authClient.
type msalClient struct {
	pca public.Client
}

// newAuthClient builds an MSAL public client bound to the profile's
// authority. Injected as a field on Session so tests can substitute a fake.
func newAuthClient(profile AuthProfile) (authClient, error) {
	pca, err := public.New(profile.ClientID, public.WithAuthority(profile.Authority()))
	if err != nil {
		return nil, fmt.Errorf("msal client: %w", err)
	}
	return &msalClient{pca: pca}, nil
}

func (c *msalClient) AcquireByUsernamePassword(
	ctx context.Context, scope, username, password string,
) (authResult, error) {
	res, err := c.pca.AcquireTokenByUsernamePassword(ctx, []string{scope}, username, password)
	if err != nil {
		return authResult{}, fmt.Errorf("username/password grant: %w", err)
	}
	return authResult{AccessToken: res.AccessToken, ExpiresOn: res.ExpiresOn}, nil
}

func (c *msalClient) AcquireByDeviceCode(
	ctx context.Context, scope string, prompt func(string),
) (authResult, error) {
	dc, err := c.pca.AcquireTokenByDeviceCode(ctx, []string{scope})
	if err != nil {
		return authResult{}, fmt.Errorf("initiate device flow: %w", err)
	}

	if msg := dc.Result.Message; msg != "" && prompt != nil {
		prompt(msg)
	}

	// Blocks until the user completes sign-in out of band.
	res, err := dc.AuthenticationResult(ctx)
	if err != nil {
		return authResult{}, fmt.Errorf("device flow: %w", err)
	}
	return authResult{AccessToken: res.AccessToken, ExpiresOn: res.ExpiresOn}, nil
}

func (c *msalClient) AcquireSilent(ctx context.Context, scope string) (authResult, error) {
	accounts := c.pca.Accounts()
	if len(accounts) == 0 {
		return authResult{}, ErrNoAccount
	}

	res, err := c.pca.AcquireTokenSilent(ctx, []string{scope}, public.WithSilentAccount(accounts[0]))
	if err != nil {
		return authResult{}, fmt.Errorf("silent grant: %w", err)
	}
	return authResult{AccessToken: res.AccessToken, ExpiresOn: res.ExpiresOn}, nil
}

func (c *msalClient) HasAccount() bool {
	return len(c.pca.Accounts()) > 0
}
