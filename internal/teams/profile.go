package teams

import "context"

// OAuth parameters for the two account kinds. The client ids are the
// well-known public Teams mobile/desktop application ids; the consumer tenant
// is the fixed MSA tenant.
const (
	consumerScope    = "openid offline_access profile service::api.fl.spaces.skype.com::MBI_SSL"
	consumerClientID = "8ec6bc83-69c8-4392-8f08-b3c986009232"
	consumerTenant   = "9188040d-6c67-4c5b-b112-36a304b66dad"

	orgScope    = "https://api.spaces.skype.com/.default"
	orgClientID = "1fec8e78-bce4-4aaf-ab1b-5451cc387264"

	authorityBase = "https://login.microsoftonline.com/"
)

// AuthProfile is the scope/client/tenant triple an account authenticates
// with. It is a pure function of the account kind, plus the discovered tenant
// for organizational accounts.
type AuthProfile struct {
	Scope    string
	ClientID string
	Tenant   string
}

// IsZero reports whether no profile could be selected.
func (p AuthProfile) IsZero() bool {
	return p.ClientID == ""
}

// Authority returns the login authority URL the profile binds to.
func (p AuthProfile) Authority() string {
	return authorityBase + p.Tenant
}

// authProfile selects the OAuth parameters for the session's account kind.
// Unknown accounts get a zero profile.
func (s *Session) authProfile(ctx context.Context) AuthProfile {
	switch s.AccountKind(ctx) {
	case AccountPersonal:
		return AuthProfile{Scope: consumerScope, ClientID: consumerClientID, Tenant: consumerTenant}
	case AccountOrganizational:
		return AuthProfile{Scope: orgScope, ClientID: orgClientID, Tenant: s.TenantID(ctx)}
	default:
		return AuthProfile{}
	}
}
