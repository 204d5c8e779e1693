package common

// AuthorizationHeaderName is the HTTP header used to carry the access token
// on outbound requests, in "Bearer <token>" form.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName carries a per-request correlation id so client logs can
// be matched against server logs.
const RequestIDHeaderName = "X-Request-Id"
