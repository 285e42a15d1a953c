package teams

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// AccountKind identifies which side of Microsoft's identity split an email
// lives on. Consumer and organizational accounts use different OAuth
// parameters and different presence hosts.
type AccountKind int

const (
	// AccountUnknown means classification has not succeeded. No presence
	// update can proceed in this state.
	AccountUnknown AccountKind = iota
	// AccountPersonal is a consumer Microsoft account (MSA).
	AccountPersonal
	// AccountOrganizational is an Azure AD (work or school) account.
	AccountOrganizational
)

// String implements fmt.Stringer.
func (k AccountKind) String() string {
	switch k {
	case AccountPersonal:
		return "personal"
	case AccountOrganizational:
		return "organizational"
	default:
		return "unknown"
	}
}

// idpResponse is the identity-discovery answer for an email address.
type idpResponse struct {
	Account string `json:"account"`
}

// federationResponse is the federation-provider answer for a domain.
type federationResponse struct {
	TenantID string `json:"tenantId"`
}

// AccountKind classifies the session's email by asking the identity-discovery
// endpoint which account type it maps to. The result is cached for the
// session's lifetime; any failure (transport, non-2xx, malformed body,
// unrecognised account value) yields AccountUnknown without caching, so a
// later call may still succeed.
func (s *Session) AccountKind(ctx context.Context) AccountKind {
	if s.kind != AccountUnknown {
		return s.kind
	}

	reqURL := fmt.Sprintf("%s/idp?hm=10&emailAddress=%s&forcerefresh=true",
		s.odcBaseURL, url.QueryEscape(s.email))

	var idp idpResponse
	if err := s.getJSON(ctx, reqURL, &idp); err != nil {
		s.log.Debug().Err(err).Msg("account classification failed")
		return AccountUnknown
	}

	switch {
	case idp.Account == "MSAccount":
		s.kind = AccountPersonal
	case strings.Contains(idp.Account, "OrgId"):
		s.kind = AccountOrganizational
	}

	return s.kind
}

// TenantID resolves the Azure AD tenant for the session's email domain via
// the federation-provider endpoint. Only meaningful for organizational
// accounts. Returns "" when the email has no domain part, the request fails,
// or the response carries no tenant id. Not cached; the lookup is cheap and
// idempotent.
func (s *Session) TenantID(ctx context.Context) string {
	at := strings.LastIndex(s.email, "@")
	if at < 0 || at == len(s.email)-1 {
		return ""
	}
	domain := s.email[at+1:]

	reqURL := fmt.Sprintf("%s/federationprovider?domain=%s", s.odcBaseURL, url.QueryEscape(domain))

	var fed federationResponse
	if err := s.getJSON(ctx, reqURL, &fed); err != nil {
		s.log.Debug().Err(err).Str("domain", domain).Msg("tenant lookup failed")
		return ""
	}

	return fed.TenantID
}

// getJSON performs a GET and decodes a JSON body into out. Non-2xx statuses
// are reported through WrapError.
func (s *Session) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-ms-client-request-id", s.requestID)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("discovery request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("discovery request failed with status %d: %w",
			resp.StatusCode, WrapError(resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode discovery response: %w", err)
	}
	return nil
}
