package teams

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthProfile_Personal(t *testing.T) {
	s := NewSession("user@outlook.com", "")
	s.kind = AccountPersonal

	profile := s.authProfile(context.Background())

	// The consumer triple is fixed.
	assert.Equal(t, consumerScope, profile.Scope)
	assert.Equal(t, "8ec6bc83-69c8-4392-8f08-b3c986009232", profile.ClientID)
	assert.Equal(t, "9188040d-6c67-4c5b-b112-36a304b66dad", profile.Tenant)
	assert.False(t, profile.IsZero())
}

func TestAuthProfile_Organizational(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"tenantId":"abc-123"}`))
	}))
	defer srv.Close()

	s := NewSession("user@contoso.com", "hunter2")
	s.kind = AccountOrganizational
	s.odcBaseURL = srv.URL

	profile := s.authProfile(context.Background())

	assert.Equal(t, orgScope, profile.Scope)
	assert.Equal(t, "1fec8e78-bce4-4aaf-ab1b-5451cc387264", profile.ClientID)
	assert.Equal(t, "abc-123", profile.Tenant, "organizational profile must carry the resolved tenant")
}

func TestAuthProfile_Unknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewSession("user@example.com", "")
	s.odcBaseURL = srv.URL

	assert.True(t, s.authProfile(context.Background()).IsZero())
}

func TestAuthProfile_Authority(t *testing.T) {
	p := AuthProfile{ClientID: "id", Tenant: "abc-123"}
	assert.Equal(t, "https://login.microsoftonline.com/abc-123", p.Authority())
}

func TestSession_Client_Sentinels(t *testing.T) {
	t.Run("unknown account", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		s := NewSession("user@example.com", "")
		s.odcBaseURL = srv.URL

		_, _, err := s.client(context.Background())
		assert.ErrorIs(t, err, ErrClientUnavailable)
	})

	t.Run("organizational without tenant", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/idp" {
				_, _ = w.Write([]byte(`{"account":"OrgId:Managed"}`))
				return
			}
			_, _ = w.Write([]byte(`{}`)) // federationprovider: no tenantId
		}))
		defer srv.Close()

		s := NewSession("user@contoso.com", "hunter2")
		s.odcBaseURL = srv.URL

		_, _, err := s.client(context.Background())
		assert.ErrorIs(t, err, ErrNoTenant)
	})
}

func TestSession_Client_Cached(t *testing.T) {
	auth := &fakeAuth{result: validResult()}
	factoryCalls := 0

	s := NewSession("user@outlook.com", "")
	s.kind = AccountPersonal
	s.newAuthClient = func(profile AuthProfile) (authClient, error) {
		factoryCalls++
		assert.Equal(t, consumerClientID, profile.ClientID)
		return auth, nil
	}

	for i := 0; i < 3; i++ {
		got, _, err := s.client(context.Background())
		assert.NoError(t, err)
		assert.Same(t, auth, got.(*fakeAuth))
	}
	assert.Equal(t, 1, factoryCalls, "auth client must be cached for the session")
}
