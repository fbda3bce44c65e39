// Package transport talks HTTP to the marketplace backend.
//
// # Overview
//
// Client is bound to a single backend origin and a fixed request timeout,
// both taken from config at construction time. Every request goes through an
// http.RoundTripper that decides, from the request path alone, whether to
// attach a bearer credential:
//
//   - paths starting with /api/auth/register, /api/auth/login or
//     /api/auth/refresh are sent untouched;
//   - every other request asks the credentials.Provider for a token and, if
//     one is found, sets "Authorization: Bearer <token>". Without a token the
//     request still goes out; rejecting it is the backend's call.
//
// # Error Handling
//
// Nothing is retried or translated. Network and timeout failures are the
// errors returned by net/http (*url.Error). A non-2xx response becomes a
// *StatusError carrying the status code and the raw body; errors.Is matches
// it against ErrUnauthorized (401, 403) and ErrNotFound (404).
package transport
