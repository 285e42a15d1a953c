package teams

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// presenceBody is the payload of the force-availability call.
type presenceBody struct {
	Activity     string `json:"activity"`
	Availability string `json:"availability"`
	DeviceType   string `json:"deviceType"`
}

// SetActivity asserts the given activity and availability against the
// account's presence endpoint. It classifies the account, obtains or renews
// tokens and derives the skype token as needed, all lazily. Returns true iff
// the terminal PUT answered 2xx; every ordinary remote failure comes back as
// (false, err) rather than a panic, and an unclassifiable account fails
// before any further network call.
func (s *Session) SetActivity(ctx context.Context, activity, availability string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.AccountKind(ctx) == AccountUnknown {
		return false, ErrUnknownAccount
	}

	token, err := s.accessToken(ctx)
	if err != nil {
		return false, err
	}

	presenceURL := s.orgPresenceURL
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+token)
	headers.Set("Content-Type", "application/json")
	headers.Set("x-ms-client-request-id", s.requestID)

	if s.kind == AccountPersonal {
		presenceURL = s.consumerPresenceURL
		headers.Set("x-ms-client-consumer-type", "teams4life")

		skypeTok, err := s.SkypeToken(ctx)
		if err != nil {
			return false, err
		}
		headers.Set("x-skypetoken", skypeTok)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return false, fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(presenceBody{
		Activity:     activity,
		Availability: availability,
		DeviceType:   "Mobile",
	})
	if err != nil {
		return false, fmt.Errorf("encode presence body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, presenceURL, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("create presence request: %w", err)
	}
	req.Header = headers

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("presence request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if IsRateLimited(resp.StatusCode) {
			s.limiter.RecordRateLimitError(retryAfterSeconds(resp))
		}
		return false, fmt.Errorf("presence update failed with status %d: %w",
			resp.StatusCode, WrapError(resp.StatusCode))
	}

	s.log.Debug().Str("availability", availability).Str("activity", activity).
		Int("status", resp.StatusCode).Msg("presence updated")
	return true, nil
}

// retryAfterSeconds parses the Retry-After header of a throttled response.
// Returns 0 when absent or not a plain number of seconds.
func retryAfterSeconds(resp *http.Response) int {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
