package teams

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// brokerUserAgent mimics the Teams mobile client; the broker rejects unknown
// agents.
const brokerUserAgent = "okhttp/4.9.2"

// authzResponse covers both shapes the auth broker is known to answer with.
// The consumer broker nests the token under skypeToken.skypetoken, the
// organizational one under tokens.skypeToken.
type authzResponse struct {
	SkypeToken struct {
		Skypetoken string `json:"skypetoken"`
	} `json:"skypeToken"`
	Tokens struct {
		SkypeToken string `json:"skypeToken"`
	} `json:"tokens"`
}

// token returns the first populated extraction path, or "".
func (r authzResponse) token() string {
	if r.SkypeToken.Skypetoken != "" {
		return r.SkypeToken.Skypetoken
	}
	return r.Tokens.SkypeToken
}

// SkypeToken exchanges the session's token for the secondary "skype token"
// at the auth broker. Personal accounts present their silent consumer-scope
// token to the consumer broker; organizational accounts present their access
// token to the organizational broker, though their presence endpoint does not
// require the result. Cached per session. Returns ErrNoSkypeToken when the
// broker fails or answers in neither known shape.
func (s *Session) SkypeToken(ctx context.Context) (string, error) {
	if s.skypeTok != "" {
		return s.skypeTok, nil
	}

	_, profile, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	brokerURL := s.orgAuthzURL
	token, err := s.accessToken(ctx)
	if s.kind == AccountPersonal {
		brokerURL = s.consumerAuthzURL
		token, err = s.silentToken(ctx)
	}
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, brokerURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create authz request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("ms-teams-authz-type", "ExplicitLogin")
	req.Header.Set("tenantid", profile.Tenant)
	req.Header.Set("User-Agent", brokerUserAgent)
	req.Header.Set("username", s.email)
	req.Header.Set("x-ms-client-request-id", s.requestID)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoSkypeToken, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if IsRateLimited(resp.StatusCode) {
			s.limiter.RecordRateLimitError(retryAfterSeconds(resp))
		}
		return "", fmt.Errorf("authz request failed with status %d: %w",
			resp.StatusCode, ErrNoSkypeToken)
	}

	var authz authzResponse
	if err := json.NewDecoder(resp.Body).Decode(&authz); err != nil {
		return "", fmt.Errorf("decode authz response: %w", ErrNoSkypeToken)
	}

	tok := authz.token()
	if tok == "" {
		return "", ErrNoSkypeToken
	}

	s.skypeTok = tok
	return tok, nil
}
