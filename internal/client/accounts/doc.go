// Package accounts wraps the /api/auth endpoints: registration, JWT login and
// refresh, the current user's profile and the admin user directory.
//
// Register, Login and Refresh are public endpoints and never carry a
// credential; the transport decides that from the path. The rest need a
// stored access token, and the admin calls additionally need the admin role,
// which the backend enforces.
package accounts
