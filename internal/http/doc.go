// Package http provides HTTP handlers and middleware for the room booking API.
//
// The router exposes the following endpoints:
//   - POST /login: issues a bearer token. Body: {"email","password"}. Response:
//     {"token","expires_at","principal":{"user_id","email","display_name"}} with the
//     token also surfaced via the `X-Session-Token` header and a `session_token` cookie.
//   - POST /logout: revokes the token extracted from the Authorization header,
//     `X-Session-Token` header or session cookie. Returns 204 No Content and clears the cookie.
//   - GET /sessions: today's sessions in ascending start order (`sessionDTO`).
//   - GET /sessions/default?now=RFC3339: the current-or-next session.
//   - GET /sessions/{id}/rooms: {"session","available","unavailable"} partition of the
//     room list for the session.
//   - GET /rooms: the room inventory in configuration order (`roomDTO`).
//   - GET /rooms/{id}/availability?session_id=: {"room_id","session_id","available"}.
//   - GET /bookings, POST /bookings: list bookings or book {"room_id","session_id"}.
//     A second booking of the same pair answers 409 with error_code BOOKING_ALREADY_BOOKED.
//
// Every route except /login and /logout requires a valid token. Errors are
// returned as {"error_code","message","errors"}.
package http
