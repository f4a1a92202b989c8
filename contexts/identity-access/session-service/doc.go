// Package sessionservice resolves request credentials into caller identities.
// Browser cookies and session tokens are checked against the Ory frontend
// API; tokenized sessions are verified locally.
package sessionservice
