package teams

import (
	"errors"
	"net/http"
)

// Error types for the presence and auth broker endpoints.
var (
	// ErrUnknownAccount indicates the email could not be classified as a
	// personal or organizational account.
	ErrUnknownAccount = errors.New("teams: account could not be classified")

	// ErrNoTenant indicates tenant discovery found no tenant id for the
	// email's domain.
	ErrNoTenant = errors.New("teams: no tenant id for domain")

	// ErrClientUnavailable indicates no OAuth client could be constructed
	// for the account.
	ErrClientUnavailable = errors.New("teams: auth client unavailable")

	// ErrLoginFailed indicates the initial login did not yield a token.
	ErrLoginFailed = errors.New("teams: login failed")

	// ErrNoAccount indicates MSAL has no cached account to renew tokens
	// from. Refresh and silent acquisition require a prior login.
	ErrNoAccount = errors.New("teams: no cached account")

	// ErrNoAccessToken indicates no usable access token is held. A presence
	// update is never attempted in this state.
	ErrNoAccessToken = errors.New("teams: no access token")

	// ErrNoSkypeToken indicates the auth broker did not yield a skype token
	// for a personal account.
	ErrNoSkypeToken = errors.New("teams: skype token unobtainable")

	// ErrUnauthorised indicates the access token was rejected.
	ErrUnauthorised = errors.New("teams: unauthorised")

	// ErrForbidden indicates the account lacks permission for the call.
	ErrForbidden = errors.New("teams: forbidden")

	// ErrRateLimited indicates the request was throttled.
	ErrRateLimited = errors.New("teams: rate limited")

	// ErrBadRequest indicates the request was malformed.
	ErrBadRequest = errors.New("teams: bad request")

	// ErrServerError indicates a server-side failure.
	ErrServerError = errors.New("teams: server error")
)

// WrapError converts an HTTP status code to an appropriate error.
// Returns nil for 2xx responses.
func WrapError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorised
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusBadRequest:
		return ErrBadRequest
	default:
		if statusCode >= 500 {
			return ErrServerError
		}
		if statusCode >= 200 && statusCode < 300 {
			return nil
		}
		return ErrBadRequest
	}
}

// IsRateLimited checks if the status code indicates throttling.
func IsRateLimited(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests
}
