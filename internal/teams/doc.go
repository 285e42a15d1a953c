// Package teams keeps a Microsoft Teams presence status pinned by talking to
// Microsoft's undocumented presence API.
//
// This package provides:
//   - Account classification (personal Microsoft account vs Azure AD account)
//   - Tenant discovery for organizational accounts
//   - OAuth2 token acquisition via MSAL (device-code or username/password)
//   - Skype token derivation for the consumer presence endpoint
//   - The presence update call itself
//
// # Account kinds
//
// Microsoft routes consumer and organizational accounts through different
// hosts. The identity-discovery endpoint at odc.officeapps.live.com reports
// which kind an email belongs to, and everything downstream (OAuth scope,
// client id, tenant, presence host) is selected from that answer:
//   - Personal:       presence.teams.live.com, device-code login
//   - Organizational: presence.teams.microsoft.com, username/password login
//
// # Token lifecycle
//
// A Session logs in once, then relies on MSAL's cached account to renew
// tokens silently. Personal accounts additionally exchange a silent token for
// a "skype token" at an auth broker; the consumer presence endpoint rejects
// requests without it.
//
// One Session per credential. A Session serializes its own presence updates
// but is otherwise intended to be driven by a single goroutine.
package teams
