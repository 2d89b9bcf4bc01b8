package common

// SessionTokenHeaderName is the HTTP header used to carry the session
// token on authenticated requests.
const SessionTokenHeaderName = "X-Session-Token"
